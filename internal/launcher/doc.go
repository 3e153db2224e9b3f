// Package launcher implements the launch sequence: derive the graph
// directory from the first argument, register its user directory on the
// classpath, load the entry module and hand the full argument vector to its
// main export.
//
// The launcher does not catch or retry anything. A load failure means main
// is never called; a failure inside main is wrapped in a DelegateError and
// returned to the caller unchanged otherwise.
package launcher
