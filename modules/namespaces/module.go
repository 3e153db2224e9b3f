// Package namespaces provides a handler that reports the user namespaces an
// entry module could resolve on the current classpath.
package namespaces

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/specialistvlad/graphvalidator/internal/ctxlog"
	"github.com/specialistvlad/graphvalidator/internal/registry"
)

// HandlerName is the name manifests use to bind an export to this handler.
const HandlerName = "namespaces"

// Module implements the registry.Module interface for this package.
type Module struct{}

// List writes one line per namespace found on the classpath: the namespace
// and the file it resolves to.
func List(ctx context.Context, inv *registry.Invocation) error {
	logger := ctxlog.FromContext(ctx)

	if inv.Classpath == nil {
		return fmt.Errorf("no classpath available")
	}

	entries, err := inv.Classpath.Namespaces()
	if err != nil {
		return fmt.Errorf("failed to list namespaces: %w", err)
	}
	logger.Info("Namespaces discovered.", "count", len(entries), "classpath", inv.Classpath.Dirs())

	if len(entries) == 0 {
		_, err := fmt.Fprintf(inv.Stdout, "no namespaces found on classpath %s\n", inv.Classpath.String())
		return err
	}

	w := tabwriter.NewWriter(inv.Stdout, 0, 4, 2, ' ', 0)
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\n", e.Namespace, e.Path)
	}
	return w.Flush()
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterHandler(HandlerName, List)
}
