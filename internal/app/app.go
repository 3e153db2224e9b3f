package app

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/specialistvlad/graphvalidator/internal/classpath"
	"github.com/specialistvlad/graphvalidator/internal/ctxlog"
	"github.com/specialistvlad/graphvalidator/internal/launcher"
	"github.com/specialistvlad/graphvalidator/internal/loader"
	"github.com/specialistvlad/graphvalidator/internal/registry"
)

// Stdio are the streams entry modules read from and write to. Logs go to Err.
type Stdio struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	logger    *slog.Logger
	registry  *registry.Registry
	classpath *classpath.Classpath
	launcher  *launcher.Launcher
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger, registry and
// classpath. With no modules given, the core modules are registered.
func NewApp(stdio Stdio, cfg *Config, modules ...registry.Module) *App {
	if stdio.In == nil {
		stdio.In = os.Stdin
	}
	if stdio.Out == nil {
		stdio.Out = os.Stdout
	}
	if stdio.Err == nil {
		stdio.Err = os.Stderr
	}

	logger := newLogger(cfg.Level, cfg.LogFormat, stdio.Err)
	logger.Debug("Logger configured successfully.")

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All Go modules registered.", "count", len(modules), "handlers", reg.Names())

	cp := classpath.New()
	ldr := loader.New(reg, cp, loader.Options{
		Stdin:   stdio.In,
		Stdout:  stdio.Out,
		Stderr:  stdio.Err,
		Environ: cfg.Environ,
	})

	return &App{
		logger:    logger,
		registry:  reg,
		classpath: cp,
		launcher:  launcher.New(ldr, cp, cfg.EntryPath),
	}
}

// Run launches the entry module with args, the process arguments without
// the program name.
func (a *App) Run(ctx context.Context, args []string) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "args", args)

	if err := a.launcher.Run(ctx, args); err != nil {
		a.logger.Debug("Launch failed.", "error", err)
		return err
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Classpath returns the application's classpath. This is primarily for testing.
func (a *App) Classpath() *classpath.Classpath {
	return a.classpath
}
