// Package file provides a filesystem-backed ports.Location.
package file

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/aretw0/marionette/pkg/domain"
	"github.com/aretw0/marionette/pkg/ports"
)

// Location addresses a file by forward-slash path.
type Location struct {
	path string
}

// New creates a location for p, normalizing OS separators to forward slashes.
func New(p string) *Location {
	return &Location{path: filepath.ToSlash(p)}
}

// String returns the forward-slash path.
func (l *Location) String() string { return l.path }

// Path returns the path in OS form.
func (l *Location) Path() string { return filepath.FromSlash(l.path) }

// Refer resolves target against the directory of this location when that file
// exists, otherwise target is taken as given (absolute or relative to the working directory).
func (l *Location) Refer(target string) ports.Location {
	target = filepath.ToSlash(target)
	if !filepath.IsAbs(filepath.FromSlash(target)) && !path.IsAbs(target) {
		candidate := path.Join(path.Dir(l.path), target)
		if _, err := os.Stat(filepath.FromSlash(candidate)); err == nil {
			return &Location{path: candidate}
		}
	}
	return New(target)
}

// Open opens the file for reading.
func (l *Location) Open() (io.ReadCloser, error) {
	f, err := os.Open(l.Path())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrIO, err)
	}
	return f, nil
}
