package launcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/specialistvlad/graphvalidator/internal/ctxlog"
	"github.com/specialistvlad/graphvalidator/internal/loader"
)

const (
	// ClasspathSuffix is the graph subdirectory holding user namespaces.
	ClasspathSuffix = ".graph-validator"
	// MainExport is the export invoked with the argument vector.
	MainExport = "main"
	// EntryFileName is the entry manifest looked up next to the executable.
	EntryFileName = "action.hcl"
)

// EntryLoader loads an entry module. *loader.Loader implements it.
type EntryLoader interface {
	Load(ctx context.Context, path, graphDir string) (*loader.Module, error)
}

// ClasspathRegistrar accepts classpath directories. *classpath.Classpath
// implements it.
type ClasspathRegistrar interface {
	Add(dir string) error
}

// Launcher runs the launch sequence once per Run call.
type Launcher struct {
	loader    EntryLoader
	classpath ClasspathRegistrar
	entryPath string
	getwd     func() (string, error)
}

// Option customises a Launcher.
type Option func(*Launcher)

// WithGetwd replaces os.Getwd, which is used only when no absolute graph
// directory is given.
func WithGetwd(getwd func() (string, error)) Option {
	return func(l *Launcher) { l.getwd = getwd }
}

// New creates a Launcher that loads the manifest at entryPath.
func New(entryLoader EntryLoader, cp ClasspathRegistrar, entryPath string, opts ...Option) *Launcher {
	l := &Launcher{
		loader:    entryLoader,
		classpath: cp,
		entryPath: entryPath,
		getwd:     os.Getwd,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// ClasspathDir derives the graph directory and its classpath directory from
// the argument vector. args[0] is the graph directory when present and
// non-empty; otherwise cwd is used. Relative paths are resolved against cwd.
func ClasspathDir(cwd string, args []string) (graphDir, dir string) {
	base := cwd
	if len(args) > 0 && args[0] != "" {
		base = args[0]
	}
	if !filepath.IsAbs(base) {
		base = filepath.Join(cwd, base)
	}
	graphDir = filepath.Clean(base)
	return graphDir, filepath.Join(graphDir, ClasspathSuffix)
}

// Run executes the launch sequence with args, the process arguments without
// the program name. args are passed to main unchanged.
func (l *Launcher) Run(ctx context.Context, args []string) error {
	logger := ctxlog.FromContext(ctx)

	var cwd string
	if len(args) == 0 || !filepath.IsAbs(args[0]) {
		var err error
		if cwd, err = l.getwd(); err != nil {
			return fmt.Errorf("failed to determine working directory: %w", err)
		}
	}

	graphDir, dir := ClasspathDir(cwd, args)
	if err := l.classpath.Add(dir); err != nil {
		return fmt.Errorf("failed to register classpath directory %s: %w", dir, err)
	}
	logger.Debug("Classpath directory registered.", "dir", dir, "graph_dir", graphDir)

	mod, err := l.loader.Load(ctx, l.entryPath, graphDir)
	if err != nil {
		return err
	}

	main, err := mod.Export(MainExport)
	if err != nil {
		return err
	}

	logger.Debug("Invoking entry point.", "module", mod.Name, "export", MainExport, "args", args)
	if err := main.Execute(ctx, args); err != nil {
		return &DelegateError{Module: mod.Name, Export: MainExport, Err: err}
	}

	logger.Debug("Entry point returned.", "module", mod.Name)
	return nil
}

// DefaultEntryPath returns EntryFileName in the directory of the running
// executable, with symlinks resolved.
func DefaultEntryPath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(exe), EntryFileName), nil
}
