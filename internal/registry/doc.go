// Package registry provides the central "glue" between entry manifests and
// the Go code compiled into the launcher.
//
// The Registry stores mappings between the string identifiers used in
// manifests (e.g., handler = "print") and the Go functions that implement
// them. Modules add themselves through the Module interface during startup.
//
// Before an entry module is executed, ValidateManifest checks that every
// export bound to a handler names one that was actually registered, so a
// typo in a manifest fails at load time rather than when main is invoked.
package registry
