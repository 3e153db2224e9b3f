// Package app contains the core application wiring. It builds the logger,
// the handler registry, the classpath and the entry module loader for one
// launch, decoupled from any specific entrypoint like a CLI.
package app
