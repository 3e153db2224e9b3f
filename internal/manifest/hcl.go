package manifest

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/graphvalidator/internal/ctxlog"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// HCLDecoder is the HCL implementation of Decoder.
type HCLDecoder struct{}

// NewHCLDecoder creates a new HCL manifest decoder.
func NewHCLDecoder() *HCLDecoder {
	return &HCLDecoder{}
}

// hclRoot is the top-level structure of an HCL manifest file.
type hclRoot struct {
	Modules []*hclModule `hcl:"module,block"`
}

// hclModule represents a single 'module' block.
type hclModule struct {
	Name        string       `hcl:"name,label"`
	Description *string      `hcl:"description,optional"`
	Exports     []*hclExport `hcl:"export,block"`
}

// hclExport represents an 'export' block inside a module.
type hclExport struct {
	Name    string            `hcl:"name,label"`
	Handler *string           `hcl:"handler,optional"`
	Command []string          `hcl:"command,optional"`
	Env     map[string]string `hcl:"env,optional"`
	Dir     *string           `hcl:"dir,optional"`
}

// evalFunctions are the functions manifest expressions may call.
var evalFunctions = map[string]function.Function{
	"concat": stdlib.ConcatFunc,
	"format": stdlib.FormatFunc,
	"join":   stdlib.JoinFunc,
	"lower":  stdlib.LowerFunc,
	"upper":  stdlib.UpperFunc,
}

// Decode parses and decodes an HCL manifest.
func (d *HCLDecoder) Decode(ctx context.Context, path string, src []byte, vars Variables) (*Module, error) {
	logger := ctxlog.FromContext(ctx)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: failed to parse HCL file %s: %w", ErrMalformed, path, diags)
	}

	evalCtx := &hcl.EvalContext{
		Variables: vars.ctyVariables(),
		Functions: evalFunctions,
	}

	var root hclRoot
	diags = gohcl.DecodeBody(file.Body, evalCtx, &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: failed to decode HCL file %s: %w", ErrMalformed, path, diags)
	}

	if len(root.Modules) != 1 {
		return nil, fmt.Errorf("%w: %s: expected exactly one 'module' block, found %d", ErrInvalid, path, len(root.Modules))
	}

	m := translateHCLModule(root.Modules[0])
	logger.Debug("HCL manifest decoded.", "module", m.Name, "exports", len(m.Exports))
	return m, nil
}

func translateHCLModule(hm *hclModule) *Module {
	m := &Module{
		Name:        hm.Name,
		Description: deref(hm.Description),
	}
	for _, he := range hm.Exports {
		m.Exports = append(m.Exports, &Export{
			Name:    he.Name,
			Handler: deref(he.Handler),
			Command: he.Command,
			Env:     he.Env,
			Dir:     deref(he.Dir),
		})
	}
	return m
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
