package loader

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/specialistvlad/graphvalidator/internal/classpath"
	"github.com/specialistvlad/graphvalidator/internal/ctxlog"
	"github.com/specialistvlad/graphvalidator/internal/fsutil"
	"github.com/specialistvlad/graphvalidator/internal/manifest"
	"github.com/specialistvlad/graphvalidator/internal/registry"
)

// EnvFileName is the per-graph environment file read from every classpath
// directory.
const EnvFileName = ".env"

// Options configure the process-facing side of loaded exports.
type Options struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	// Environ is the base environment in "KEY=value" form. Nil means os.Environ().
	Environ []string
}

// Loader loads entry modules against an explicit classpath and registry.
type Loader struct {
	registry  *registry.Registry
	classpath *classpath.Classpath
	opts      Options
}

// New creates a Loader. Unset writers default to the process streams.
func New(reg *registry.Registry, cp *classpath.Classpath, opts Options) *Loader {
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Environ == nil {
		opts.Environ = os.Environ()
	}
	return &Loader{registry: reg, classpath: cp, opts: opts}
}

// Load reads the entry manifest at path and binds its exports. It returns
// only once the module is fully decoded and validated. graphDir is the
// directory the launch is for; it is exposed to manifest expressions and to
// every export. All failures are reported as *ModuleLoadError.
func (l *Loader) Load(ctx context.Context, path, graphDir string) (*Module, error) {
	logger := ctxlog.FromContext(ctx)

	if err := ctx.Err(); err != nil {
		return nil, &ModuleLoadError{Path: path, Err: err}
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, &ModuleLoadError{Path: path, Err: err}
	}
	logger.Debug("Loading entry module...", "path", absPath, "classpath", l.classpath.Dirs())

	env, err := l.environment(ctx)
	if err != nil {
		return nil, &ModuleLoadError{Path: absPath, Err: err}
	}

	vars := manifest.Variables{
		LauncherDir: filepath.Dir(absPath),
		GraphDir:    graphDir,
		Classpath:   l.classpath.Dirs(),
		PathListSep: string(os.PathListSeparator),
		Env:         env,
	}

	m, err := manifest.Load(ctx, absPath, vars)
	if err != nil {
		return nil, &ModuleLoadError{Path: absPath, Err: err}
	}

	if err := l.registry.ValidateManifest(ctx, m); err != nil {
		return nil, &ModuleLoadError{Path: absPath, Err: err}
	}

	if err := ctx.Err(); err != nil {
		return nil, &ModuleLoadError{Path: absPath, Err: err}
	}

	mod := &Module{
		Name:        m.Name,
		Description: m.Description,
		Path:        absPath,
		exports:     make(map[string]Export, len(m.Exports)),
	}
	for _, e := range m.Exports {
		mod.exports[e.Name] = l.bind(e, graphDir, env)
	}

	logger.Info("Entry module loaded.", "module", mod.Name, "path", absPath, "exports", mod.Exports())
	return mod, nil
}

// bind turns a manifest export into an executable Export.
func (l *Loader) bind(e *manifest.Export, graphDir string, env map[string]string) Export {
	if e.IsCommand() {
		return &commandExport{
			name:      e.Name,
			command:   e.Command,
			dir:       e.Dir,
			env:       mergeEnv(env, e.Env),
			classpath: l.classpath,
			graphDir:  graphDir,
			opts:      l.opts,
		}
	}
	handler, _ := l.registry.Handler(e.Handler)
	return &handlerExport{
		name:      e.Name,
		handler:   handler,
		classpath: l.classpath,
		graphDir:  graphDir,
		env:       env,
		opts:      l.opts,
	}
}

// environment builds the environment visible to manifests and exports: the
// base environment, then .env files from classpath directories in
// registration order. Keys already set are never overridden.
func (l *Loader) environment(ctx context.Context) (map[string]string, error) {
	logger := ctxlog.FromContext(ctx)

	env := make(map[string]string, len(l.opts.Environ))
	for _, kv := range l.opts.Environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		env[k] = v
	}

	for _, dir := range l.classpath.Dirs() {
		envFile := filepath.Join(dir, EnvFileName)
		if !fsutil.IsFile(envFile) {
			continue
		}
		values, err := godotenv.Read(envFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read environment file %s: %w", envFile, err)
		}
		added := 0
		for k, v := range values {
			if _, exists := env[k]; exists {
				continue
			}
			env[k] = v
			added++
		}
		logger.Debug("Environment file applied.", "path", envFile, "keys", len(values), "added", added)
	}

	return env, nil
}

// mergeEnv returns base overlaid with extra.
func mergeEnv(base, extra map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}
