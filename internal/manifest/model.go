// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Module, the format-agnostic description of an entry
// module and the exports it makes available to the launcher.
package manifest

import "sort"

// Module is the format-agnostic representation of an entry manifest.
type Module struct {
	Name        string
	Description string
	SourcePath  string
	Exports     []*Export
}

// Export describes one named capability of a module. Exactly one of Handler
// or Command is set.
type Export struct {
	Name    string
	Handler string
	Command []string
	Env     map[string]string
	Dir     string
}

// IsCommand reports whether the export runs an external command.
func (e *Export) IsCommand() bool {
	return len(e.Command) > 0
}

// Export returns the export with the given name.
func (m *Module) Export(name string) (*Export, bool) {
	for _, e := range m.Exports {
		if e.Name == name {
			return e, true
		}
	}
	return nil, false
}

// ExportNames returns the names of all exports, sorted.
func (m *Module) ExportNames() []string {
	names := make([]string, 0, len(m.Exports))
	for _, e := range m.Exports {
		names = append(names, e.Name)
	}
	sort.Strings(names)
	return names
}
