package manifest

import (
	"fmt"
	"strings"
)

// Validate checks the structural rules every manifest must satisfy,
// regardless of the format it was written in.
func Validate(m *Module) error {
	var errs []string

	if m.Name == "" {
		errs = append(errs, "module name must not be empty")
	}

	seen := make(map[string]struct{}, len(m.Exports))
	for _, e := range m.Exports {
		if e.Name == "" {
			errs = append(errs, "export name must not be empty")
			continue
		}
		if _, dup := seen[e.Name]; dup {
			errs = append(errs, fmt.Sprintf("export '%s' is declared more than once", e.Name))
		}
		seen[e.Name] = struct{}{}

		switch {
		case e.Handler != "" && len(e.Command) > 0:
			errs = append(errs, fmt.Sprintf("export '%s': 'handler' and 'command' are mutually exclusive", e.Name))
		case e.Handler == "" && len(e.Command) == 0:
			errs = append(errs, fmt.Sprintf("export '%s': one of 'handler' or 'command' is required", e.Name))
		}
		if len(e.Command) > 0 && strings.TrimSpace(e.Command[0]) == "" {
			errs = append(errs, fmt.Sprintf("export '%s': command program must not be empty", e.Name))
		}
		if e.Handler != "" && (e.Dir != "" || len(e.Env) > 0) {
			errs = append(errs, fmt.Sprintf("export '%s': 'dir' and 'env' only apply to commands", e.Name))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s:\n- %s", ErrInvalid, m.SourcePath, strings.Join(errs, "\n- "))
	}
	return nil
}
