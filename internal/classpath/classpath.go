// Package classpath holds the ordered list of directories that user
// namespaces are resolved against while an entry module runs.
//
// A Classpath is an explicit value: the app creates one, the launcher adds
// the graph's user directory to it, and the loader hands it to every export
// it executes. Nothing in this package is global.
package classpath

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/specialistvlad/graphvalidator/internal/fsutil"
)

// DefaultExtensions are the file extensions tried, in order, when a
// namespace is resolved.
var DefaultExtensions = []string{".cljs", ".cljc", ".hcl", ".yaml", ".yml"}

// ErrNamespaceNotFound is returned by Resolve when no directory on the
// classpath contains a file for the namespace.
var ErrNamespaceNotFound = errors.New("namespace not found on classpath")

// Classpath is an append-only, concurrency-safe list of absolute directories.
type Classpath struct {
	mu         sync.RWMutex
	dirs       []string
	extensions []string
}

// New creates a classpath with the given initial directories. It panics if a
// directory is not absolute, since that is a wiring mistake.
func New(dirs ...string) *Classpath {
	cp := &Classpath{extensions: DefaultExtensions}
	for _, dir := range dirs {
		if err := cp.Add(dir); err != nil {
			panic(err)
		}
	}
	return cp
}

// WithExtensions replaces the extensions used for namespace resolution.
func (c *Classpath) WithExtensions(extensions ...string) *Classpath {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.extensions = append([]string(nil), extensions...)
	return c
}

// Add appends dir to the classpath. The directory does not need to exist.
func (c *Classpath) Add(dir string) error {
	if dir == "" {
		return errors.New("classpath directory must not be empty")
	}
	if !filepath.IsAbs(dir) {
		return fmt.Errorf("classpath directory %q is not absolute", dir)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.dirs = append(c.dirs, filepath.Clean(dir))
	return nil
}

// Dirs returns a copy of the registered directories in registration order.
func (c *Classpath) Dirs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.dirs...)
}

// Len returns the number of registered directories.
func (c *Classpath) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.dirs)
}

// String joins the directories with the OS path list separator, the form
// child processes receive.
func (c *Classpath) String() string {
	return strings.Join(c.Dirs(), string(os.PathListSeparator))
}

// NamespacePath maps a dotted namespace to its relative file path without an
// extension: "rules.my-rule" becomes "rules/my_rule".
func NamespacePath(namespace string) string {
	p := strings.ReplaceAll(namespace, "-", "_")
	return filepath.Join(strings.Split(p, ".")...)
}

// Resolve returns the first existing file for namespace, searching
// directories in registration order and extensions in configured order.
func (c *Classpath) Resolve(namespace string) (string, error) {
	if namespace == "" {
		return "", errors.New("namespace must not be empty")
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	if path, ok := resolveIn(c.dirs, c.extensions, namespace); ok {
		return path, nil
	}
	return "", fmt.Errorf("%w: %s", ErrNamespaceNotFound, namespace)
}

func resolveIn(dirs, extensions []string, namespace string) (string, bool) {
	rel := NamespacePath(namespace)
	for _, dir := range dirs {
		for _, ext := range extensions {
			candidate := filepath.Join(dir, rel+ext)
			if fsutil.IsFile(candidate) {
				return candidate, true
			}
		}
	}
	return "", false
}

// Entry is a namespace discovered on the classpath and the file it resolves to.
type Entry struct {
	Namespace string
	Path      string
}

// Namespaces walks every classpath directory and returns the namespaces it
// can resolve, sorted by name. Each entry's Path is what Resolve returns for
// that namespace.
func (c *Classpath) Namespaces() ([]Entry, error) {
	c.mu.RLock()
	dirs := append([]string(nil), c.dirs...)
	extensions := append([]string(nil), c.extensions...)
	c.mu.RUnlock()

	if len(extensions) == 0 {
		return nil, nil
	}

	candidates := make(map[string]struct{})
	for _, dir := range dirs {
		files, err := fsutil.FindFilesByExtension(dir, extensions...)
		if err != nil {
			return nil, fmt.Errorf("failed to scan classpath directory %s: %w", dir, err)
		}
		for _, file := range files {
			if ns, ok := namespaceOf(dir, file, extensions); ok {
				candidates[ns] = struct{}{}
			}
		}
	}

	names := make([]string, 0, len(candidates))
	for ns := range candidates {
		names = append(names, ns)
	}
	sort.Strings(names)

	entries := make([]Entry, 0, len(names))
	for _, ns := range names {
		// A file whose name does not round-trip through NamespacePath, such
		// as rules/no-orphans.cljs, is not reachable and is left out.
		if path, ok := resolveIn(dirs, extensions, ns); ok {
			entries = append(entries, Entry{Namespace: ns, Path: path})
		}
	}
	return entries, nil
}

// namespaceOf is the inverse of NamespacePath for a file under dir.
func namespaceOf(dir, file string, extensions []string) (string, bool) {
	rel, err := filepath.Rel(dir, file)
	if err != nil {
		return "", false
	}
	for _, ext := range extensions {
		if strings.HasSuffix(rel, ext) {
			rel = strings.TrimSuffix(rel, ext)
			parts := strings.Split(filepath.ToSlash(rel), "/")
			for _, part := range parts {
				if part == "" || strings.HasPrefix(part, ".") {
					return "", false
				}
			}
			return strings.ReplaceAll(strings.Join(parts, "."), "_", "-"), true
		}
	}
	return "", false
}
