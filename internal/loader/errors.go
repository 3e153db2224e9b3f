package loader

import (
	"fmt"
	"strings"
)

// ModuleLoadError is returned when an entry module cannot be found, read,
// decoded or bound to its handlers.
type ModuleLoadError struct {
	Path string
	Err  error
}

func (e *ModuleLoadError) Error() string {
	return fmt.Sprintf("failed to load entry module %s: %v", e.Path, e.Err)
}

func (e *ModuleLoadError) Unwrap() error {
	return e.Err
}

// MissingExportError is returned when a loaded module does not provide a
// requested export.
type MissingExportError struct {
	Module    string
	Path      string
	Export    string
	Available []string
}

func (e *MissingExportError) Error() string {
	available := "none"
	if len(e.Available) > 0 {
		available = strings.Join(e.Available, ", ")
	}
	return fmt.Sprintf("entry module '%s' (%s) does not export '%s' (exports: %s)", e.Module, e.Path, e.Export, available)
}
