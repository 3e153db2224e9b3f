package loader

import (
	"context"
	"sort"
)

// Export is a single callable capability of a loaded module.
type Export interface {
	// Execute runs the export once with the forwarded argument vector.
	Execute(ctx context.Context, args []string) error
}

// Module is a loaded entry module.
type Module struct {
	Name        string
	Description string
	Path        string
	exports     map[string]Export
}

// Export returns the export registered under name, or a *MissingExportError.
func (m *Module) Export(name string) (Export, error) {
	if e, ok := m.exports[name]; ok {
		return e, nil
	}
	return nil, &MissingExportError{
		Module:    m.Name,
		Path:      m.Path,
		Export:    name,
		Available: m.Exports(),
	}
}

// Exports returns the names of the module's exports, sorted.
func (m *Module) Exports() []string {
	names := make([]string, 0, len(m.exports))
	for name := range m.exports {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
