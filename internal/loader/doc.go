// Package loader turns an entry manifest on disk into a Module whose exports
// can be executed.
//
// Two kinds of export exist. A handler export calls a Go function registered
// in the registry. A command export starts an external program, appends the
// forwarded arguments to its command line and passes the classpath through
// the GRAPH_VALIDATOR_CLASSPATH environment variable. Both satisfy Export, so
// callers never branch on the kind.
package loader
