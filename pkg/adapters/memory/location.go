package memory

import (
	"bytes"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/aretw0/marionette/pkg/domain"
	"github.com/aretw0/marionette/pkg/ports"
)

// FS is an in-memory tree of script and image files keyed by slash path.
// Safe for concurrent use.
type FS struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// NewFS creates a tree holding the given files (slash paths to contents).
func NewFS(files map[string]string) *FS {
	fs := &FS{files: make(map[string][]byte, len(files))}
	for p, content := range files {
		fs.files[clean(p)] = []byte(content)
	}
	return fs
}

// Put stores data at p, replacing any previous content.
func (fs *FS) Put(p string, data []byte) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.files[clean(p)] = bytes.Clone(data)
}

// Paths returns every stored path in sorted order.
func (fs *FS) Paths() []string {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	paths := make([]string, 0, len(fs.files))
	for p := range fs.files {
		paths = append(paths, p)
	}
	sort.Strings(paths) // Deterministic order
	return paths
}

// Locate returns the location of p inside the tree.
func (fs *FS) Locate(p string) *Location {
	return &Location{fs: fs, path: clean(p)}
}

func (fs *FS) exists(p string) bool {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	_, ok := fs.files[p]
	return ok
}

// Location implements ports.Location over an FS.
type Location struct {
	fs   *FS
	path string
}

// String returns the slash path of the location.
func (l *Location) String() string { return l.path }

// Refer resolves target next to this location, falling back to the tree root.
// A leading slash always addresses the root.
func (l *Location) Refer(target string) ports.Location {
	if !path.IsAbs(target) {
		candidate := path.Join(path.Dir(l.path), target)
		if l.fs.exists(candidate) {
			return &Location{fs: l.fs, path: candidate}
		}
	}
	return l.fs.Locate(target)
}

// Open returns the file content.
func (l *Location) Open() (io.ReadCloser, error) {
	l.fs.mu.RLock()
	data, ok := l.fs.files[l.path]
	l.fs.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("open %s: %w: file does not exist", l.path, domain.ErrIO)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func clean(p string) string {
	return strings.TrimPrefix(path.Clean("/"+p), "/")
}
