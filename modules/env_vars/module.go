package env_vars

import (
	"context"
	"fmt"
	"sort"

	"github.com/specialistvlad/graphvalidator/internal/registry"
)

// HandlerName is the name manifests use to bind an export to this handler.
const HandlerName = "env_vars"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Dump writes the environment the entry module runs with, one KEY=value
// line per variable, sorted by key. Arguments after the graph directory,
// when present, restrict the output to those keys.
func Dump(ctx context.Context, inv *registry.Invocation) error {
	keys := make([]string, 0, len(inv.Env))
	if len(inv.Args) > 1 {
		seen := make(map[string]struct{}, len(inv.Args)-1)
		for _, k := range inv.Args[1:] {
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			if _, ok := inv.Env[k]; ok {
				keys = append(keys, k)
			}
		}
	} else {
		for k := range inv.Env {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	for _, k := range keys {
		if _, err := fmt.Fprintf(inv.Stdout, "%s=%s\n", k, inv.Env[k]); err != nil {
			return err
		}
	}
	return nil
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterHandler(HandlerName, Dump)
}
