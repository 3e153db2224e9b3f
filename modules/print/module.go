package print

import (
	"context"
	"fmt"

	"github.com/specialistvlad/graphvalidator/internal/ctxlog"
	"github.com/specialistvlad/graphvalidator/internal/registry"
)

// HandlerName is the name manifests use to bind an export to this handler.
const HandlerName = "print"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Print writes every forwarded argument on its own line, prefixed with its
// position.
func Print(ctx context.Context, inv *registry.Invocation) error {
	ctxlog.FromContext(ctx).Info("Printing arguments", "count", len(inv.Args))

	if len(inv.Args) == 0 {
		_, err := fmt.Fprintln(inv.Stdout, "(no arguments)")
		return err
	}

	for i, arg := range inv.Args {
		if _, err := fmt.Fprintf(inv.Stdout, "[%d] %s\n", i, arg); err != nil {
			return err
		}
	}
	return nil
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterHandler(HandlerName, Print)
}
