package manifest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"

	"github.com/specialistvlad/graphvalidator/internal/ctxlog"
	"gopkg.in/yaml.v3"
)

// YAMLDecoder is the YAML implementation of Decoder. String values may use
// ${name} placeholders; see Variables for the available names.
type YAMLDecoder struct{}

// NewYAMLDecoder creates a new YAML manifest decoder.
func NewYAMLDecoder() *YAMLDecoder {
	return &YAMLDecoder{}
}

type yamlRoot struct {
	Module *yamlModule `yaml:"module"`
}

type yamlModule struct {
	Name        string                 `yaml:"name"`
	Description string                 `yaml:"description,omitempty"`
	Exports     map[string]*yamlExport `yaml:"exports"`
}

type yamlExport struct {
	Handler string            `yaml:"handler,omitempty"`
	Command []string          `yaml:"command,omitempty"`
	Env     map[string]string `yaml:"env,omitempty"`
	Dir     string            `yaml:"dir,omitempty"`
}

// Decode parses and decodes a YAML manifest.
func (d *YAMLDecoder) Decode(ctx context.Context, path string, src []byte, vars Variables) (*Module, error) {
	logger := ctxlog.FromContext(ctx)

	dec := yaml.NewDecoder(bytes.NewReader(src))
	dec.KnownFields(true)

	var root yamlRoot
	if err := dec.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %s: file is empty", ErrMalformed, path)
		}
		return nil, fmt.Errorf("%w: failed to parse YAML file %s: %w", ErrMalformed, path, err)
	}
	if root.Module == nil {
		return nil, fmt.Errorf("%w: %s: missing 'module' key", ErrInvalid, path)
	}

	x := &expander{vars: vars}
	m := &Module{
		Name:        root.Module.Name,
		Description: root.Module.Description,
	}

	names := make([]string, 0, len(root.Module.Exports))
	for name := range root.Module.Exports {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ye := root.Module.Exports[name]
		if ye == nil {
			ye = &yamlExport{}
		}
		e := &Export{
			Name:    name,
			Handler: ye.Handler,
			Dir:     x.expand(ye.Dir),
		}
		for _, arg := range ye.Command {
			e.Command = append(e.Command, x.expand(arg))
		}
		if len(ye.Env) > 0 {
			e.Env = make(map[string]string, len(ye.Env))
			for k, v := range ye.Env {
				e.Env[k] = x.expand(v)
			}
		}
		m.Exports = append(m.Exports, e)
	}

	if len(x.unknown) > 0 {
		return nil, fmt.Errorf("%w: %s: unknown variables %s (available: %s)",
			ErrInvalid, path, strings.Join(x.unknown, ", "), strings.Join(vars.names(), ", "))
	}

	logger.Debug("YAML manifest decoded.", "module", m.Name, "exports", len(m.Exports))
	return m, nil
}

var placeholder = regexp.MustCompile(`\$\{([^}]+)\}`)

// expander substitutes ${name} placeholders and remembers names it could
// not resolve. A bare $ is left alone so shell snippets pass through.
type expander struct {
	vars    Variables
	unknown []string
}

func (x *expander) expand(s string) string {
	return placeholder.ReplaceAllStringFunc(s, func(match string) string {
		name := strings.TrimSpace(match[2 : len(match)-1])
		val, ok := x.vars.lookup(name)
		if !ok {
			x.unknown = append(x.unknown, name)
		}
		return val
	})
}
