package cli

import (
	"log/slog"
	"strings"

	"github.com/specialistvlad/graphvalidator/internal/app"
	"github.com/specialistvlad/graphvalidator/internal/launcher"
)

// Environment variables that configure the launcher itself.
const (
	EnvLogLevel  = "GRAPH_VALIDATOR_LOG_LEVEL"
	EnvLogFormat = "GRAPH_VALIDATOR_LOG_FORMAT"
	EnvEntry     = "GRAPH_VALIDATOR_ENTRY"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// ExitCode reports the process exit code for this error.
func (e *ExitError) ExitCode() int {
	return e.Code
}

// defaultEntryPath is replaced in tests.
var defaultEntryPath = launcher.DefaultEntryPath

// Parse builds the application configuration from environ, a list of
// "KEY=value" pairs as returned by os.Environ. environ is also kept as the
// base environment for entry modules.
func Parse(environ []string) (*app.Config, error) {
	slog.Debug("CLI parser started.")

	env := make(map[string]string, len(environ))
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}

	entry := env[EnvEntry]
	if entry == "" {
		path, err := defaultEntryPath()
		if err != nil {
			return nil, &ExitError{Code: 1, Message: err.Error()}
		}
		entry = path
	}
	slog.Debug("Entry path determined.", "path", entry)

	config, err := app.NewConfig(app.Config{
		EntryPath: entry,
		LogFormat: strings.ToLower(strings.TrimSpace(env[EnvLogFormat])),
		LogLevel:  strings.ToLower(strings.TrimSpace(env[EnvLogLevel])),
		Environ:   environ,
	})
	if err != nil {
		return nil, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "entry", config.EntryPath, "log_level", config.LogLevel, "log_format", config.LogFormat)
	return config, nil
}
