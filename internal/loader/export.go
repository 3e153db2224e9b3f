package loader

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"sort"
	"time"

	"github.com/carlmjohnson/exitcode"
	"github.com/specialistvlad/graphvalidator/internal/classpath"
	"github.com/specialistvlad/graphvalidator/internal/ctxlog"
	"github.com/specialistvlad/graphvalidator/internal/registry"
)

// Environment variables set for command exports.
const (
	ClasspathEnvVar = "GRAPH_VALIDATOR_CLASSPATH"
	GraphDirEnvVar  = "GRAPH_VALIDATOR_GRAPH_DIR"
)

// commandWaitDelay bounds how long a cancelled command may hold its output
// pipes open, e.g. through a grandchild that outlives the killed process.
const commandWaitDelay = 2 * time.Second

// handlerExport calls a Go handler compiled into the binary.
type handlerExport struct {
	name      string
	handler   registry.Handler
	classpath *classpath.Classpath
	graphDir  string
	env       map[string]string
	opts      Options
}

func (e *handlerExport) Execute(ctx context.Context, args []string) error {
	ctxlog.FromContext(ctx).Debug("Invoking handler export.", "export", e.name, "args", args)
	return e.handler(ctx, &registry.Invocation{
		Args:      append([]string(nil), args...),
		GraphDir:  e.graphDir,
		Classpath: e.classpath,
		Env:       e.env,
		Stdout:    e.opts.Stdout,
		Stderr:    e.opts.Stderr,
	})
}

// commandExport runs an external program with the forwarded arguments
// appended to its command line.
type commandExport struct {
	name      string
	command   []string
	dir       string
	env       map[string]string
	classpath *classpath.Classpath
	graphDir  string
	opts      Options
}

func (e *commandExport) Execute(ctx context.Context, args []string) error {
	logger := ctxlog.FromContext(ctx)

	argv := append(append([]string(nil), e.command[1:]...), args...)
	cmd := exec.CommandContext(ctx, e.command[0], argv...)
	cmd.Dir = e.dir
	cmd.Env = e.environ()
	cmd.Stdin = e.opts.Stdin
	cmd.Stdout = e.opts.Stdout
	cmd.Stderr = e.opts.Stderr
	cmd.WaitDelay = commandWaitDelay

	logger.Debug("Starting command export.", "export", e.name, "program", e.command[0], "args", argv, "dir", e.dir)

	err := cmd.Run()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
		return exitcode.Set(fmt.Errorf("command %s exited with status %d", e.command[0], exitErr.ExitCode()), exitErr.ExitCode())
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("command %s interrupted: %w", e.command[0], ctxErr)
	}
	return fmt.Errorf("failed to run command %s: %w", e.command[0], err)
}

// environ renders the export environment, including the launcher-provided
// variables, in a stable order.
func (e *commandExport) environ() []string {
	env := mergeEnv(e.env, map[string]string{
		ClasspathEnvVar: e.classpath.String(),
		GraphDirEnvVar:  e.graphDir,
	})
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+"="+env[k])
	}
	return out
}
