// Package manifest decodes entry module manifests into a format-agnostic
// model.
//
// A manifest names one module and the exports it provides. Each export is
// either bound to a Go handler compiled into the binary or to an external
// command. Manifests can be written in HCL or YAML; both are translated into
// the same Module value so the loader never needs to know which format a
// file used.
//
// Expressions in a manifest can refer to a small set of variables describing
// the current launch (see Variables), so a manifest can point a command at
// files next to itself or pass the classpath through.
package manifest
