// Package cli is responsible for turning the process environment into the
// application's configuration and for process-level concerns like exit
// codes. It never consumes command-line arguments: those belong to the
// entry module and are forwarded untouched.
package cli
