package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/carlmjohnson/exitcode"
	"github.com/specialistvlad/graphvalidator/internal/app"
	"github.com/specialistvlad/graphvalidator/internal/cli"
	"github.com/specialistvlad/graphvalidator/internal/registry"
)

// main is the entrypoint for the graph-validator launcher.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	stdio := app.Stdio{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}

	// The real main function handles errors; exit codes travel on the error.
	err := run(ctx, stdio, os.Args[1:], os.Environ())
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(exitcode.Get(err))
}

// run encapsulates the main application logic for easier testing and error
// handling. modules replaces the core modules when given.
func run(ctx context.Context, stdio app.Stdio, args, environ []string, modules ...registry.Module) (err error) {
	appConfig, err := cli.Parse(environ)
	if err != nil {
		return err
	}

	// Registration mistakes panic during startup, so we recover here to
	// provide a clean exit message to the user.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("application startup panicked: %v", r)
		}
	}()

	launcherApp := app.NewApp(stdio, appConfig, modules...)
	return launcherApp.Run(ctx, args)
}
