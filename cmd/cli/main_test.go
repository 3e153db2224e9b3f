package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/carlmjohnson/exitcode"
	"github.com/specialistvlad/graphvalidator/internal/app"
	"github.com/specialistvlad/graphvalidator/internal/cli"
	"github.com/specialistvlad/graphvalidator/internal/launcher"
	"github.com/specialistvlad/graphvalidator/internal/loader"
	"github.com/specialistvlad/graphvalidator/internal/registry"
	"github.com/specialistvlad/graphvalidator/internal/testutil"
	"github.com/stretchr/testify/require"
)

func newStdio() (app.Stdio, *bytes.Buffer, *bytes.Buffer) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	return app.Stdio{In: bytes.NewReader(nil), Out: out, Err: errOut}, out, errOut
}

func TestRun_ForwardsArgumentsToMain(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	root := testutil.WriteFiles(t, map[string]string{
		"bin/action.hcl": `
			module "action" {
				export "main" {
					handler = "print"
				}
			}
		`,
	})
	graphDir := filepath.Join(root, "graph")
	environ := []string{
		cli.EnvEntry + "=" + filepath.Join(root, "bin", "action.hcl"),
		cli.EnvLogLevel + "=debug",
	}
	stdio, out, logs := newStdio()

	// --- Act ---
	err := run(context.Background(), stdio, []string{graphDir, "extra1", "extra2"}, environ)

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, 0, exitcode.Get(err))
	require.Equal(t, "[0] "+graphDir+"\n[1] extra1\n[2] extra2\n", out.String())
	require.Contains(t, logs.String(), filepath.Join(graphDir, launcher.ClasspathSuffix))
}

func TestRun_InvalidSettings(t *testing.T) {
	t.Parallel()

	stdio, out, _ := newStdio()
	environ := []string{
		cli.EnvEntry + "=/nowhere/action.hcl",
		cli.EnvLogFormat + "=xml",
	}

	err := run(context.Background(), stdio, []string{"/repo/graph"}, environ)

	require.Error(t, err)
	require.Equal(t, 2, exitcode.Get(err))
	require.Empty(t, out.String())
}

func TestRun_MissingEntryModule(t *testing.T) {
	t.Parallel()

	stdio, out, _ := newStdio()
	environ := []string{cli.EnvEntry + "=" + filepath.Join(t.TempDir(), "action.hcl")}

	err := run(context.Background(), stdio, []string{"/repo/graph"}, environ)

	var loadErr *loader.ModuleLoadError
	require.ErrorAs(t, err, &loadErr)
	require.Equal(t, 1, exitcode.Get(err))
	require.Empty(t, out.String())
}

func TestRun_CommandExitStatus(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("uses /bin/sh")
	}

	root := testutil.WriteFiles(t, map[string]string{
		"bin/action.hcl": `
			module "action" {
				export "main" {
					command = ["sh", "-c", "echo \"validating $1\"; exit 5", "sh"]
				}
			}
		`,
	})
	stdio, out, _ := newStdio()
	environ := []string{
		cli.EnvEntry + "=" + filepath.Join(root, "bin", "action.hcl"),
		"PATH=" + os.Getenv("PATH"),
	}

	err := run(context.Background(), stdio, []string{"/repo/graph"}, environ)

	var delegateErr *launcher.DelegateError
	require.ErrorAs(t, err, &delegateErr)
	require.Equal(t, 5, exitcode.Get(err))
	require.Equal(t, "validating /repo/graph\n", out.String())
}

func TestRun_PanicRecovery(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// Two modules claiming the same handler name make registration panic
	// inside app.NewApp.
	dup := &testutil.SimpleModule{HandlerName: "print", Handler: func(context.Context, *registry.Invocation) error { return nil }}
	stdio, _, _ := newStdio()
	environ := []string{cli.EnvEntry + "=/nowhere/action.hcl"}

	// --- Act ---
	err := run(context.Background(), stdio, []string{"/repo/graph"}, environ, dup, dup)

	// --- Assert ---
	require.Error(t, err, "run() should have returned an error after recovering from a panic")
	require.Contains(t, err.Error(), "application startup panicked")
	require.Contains(t, err.Error(), "already registered")
	require.Equal(t, 1, exitcode.Get(err))
}
