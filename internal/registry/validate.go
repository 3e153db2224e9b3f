package registry

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/specialistvlad/graphvalidator/internal/ctxlog"
	"github.com/specialistvlad/graphvalidator/internal/manifest"
)

// ErrUnknownHandler is wrapped by ValidateManifest when an export names a
// handler that is not registered.
var ErrUnknownHandler = errors.New("unknown handler")

// ValidateManifest performs a parity check between a manifest and the
// registered Go handlers.
func (r *Registry) ValidateManifest(ctx context.Context, m *manifest.Module) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	for _, e := range m.Exports {
		if e.IsCommand() {
			logger.Debug("Export runs an external command, skipping handler check.", "module", m.Name, "export", e.Name)
			continue
		}
		if _, ok := r.handlers[e.Handler]; !ok {
			errs = append(errs, fmt.Sprintf("export '%s' is bound to handler '%s', which is not registered (registered: %s)",
				e.Name, e.Handler, strings.Join(r.Names(), ", ")))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: module '%s':\n- %s", ErrUnknownHandler, m.Name, strings.Join(errs, "\n- "))
	}
	return nil
}
