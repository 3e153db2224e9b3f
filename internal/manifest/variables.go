package manifest

import (
	"sort"
	"strings"

	"github.com/zclconf/go-cty/cty"
)

// Variables describe the launch a manifest is being decoded for. They are
// exposed to manifest expressions under the names below.
type Variables struct {
	LauncherDir string            // launcher_dir: directory holding the manifest
	GraphDir    string            // graph_dir: the resolved graph directory
	Classpath   []string          // classpath_dirs, and classpath joined by the OS list separator
	PathListSep string            // separator used to build classpath
	Env         map[string]string // env: process environment merged with per-graph .env files
}

func (v Variables) joinedClasspath() string {
	sep := v.PathListSep
	if sep == "" {
		sep = ":"
	}
	return strings.Join(v.Classpath, sep)
}

// ctyVariables converts the launch variables into the cty values used by the
// HCL evaluation context.
func (v Variables) ctyVariables() map[string]cty.Value {
	dirs := cty.ListValEmpty(cty.String)
	if len(v.Classpath) > 0 {
		vals := make([]cty.Value, 0, len(v.Classpath))
		for _, d := range v.Classpath {
			vals = append(vals, cty.StringVal(d))
		}
		dirs = cty.ListVal(vals)
	}

	env := cty.MapValEmpty(cty.String)
	if len(v.Env) > 0 {
		vals := make(map[string]cty.Value, len(v.Env))
		for k, val := range v.Env {
			vals[k] = cty.StringVal(val)
		}
		env = cty.MapVal(vals)
	}

	return map[string]cty.Value{
		"launcher_dir":   cty.StringVal(v.LauncherDir),
		"graph_dir":      cty.StringVal(v.GraphDir),
		"classpath":      cty.StringVal(v.joinedClasspath()),
		"classpath_dirs": dirs,
		"env":            env,
	}
}

// lookup resolves a placeholder name used by text-based formats. Names are
// the HCL variable names; environment entries use the "env." prefix.
func (v Variables) lookup(name string) (string, bool) {
	switch name {
	case "launcher_dir":
		return v.LauncherDir, true
	case "graph_dir":
		return v.GraphDir, true
	case "classpath":
		return v.joinedClasspath(), true
	}
	if key, ok := strings.CutPrefix(name, "env."); ok {
		val, found := v.Env[key]
		return val, found
	}
	return "", false
}

// names lists the placeholder names available to text-based formats.
func (v Variables) names() []string {
	names := []string{"classpath", "graph_dir", "launcher_dir"}
	keys := make([]string, 0, len(v.Env))
	for k := range v.Env {
		keys = append(keys, "env."+k)
	}
	sort.Strings(keys)
	return append(names, keys...)
}
