package ports

import "io"

// Location defines an addressable, openable source of script or image bytes.
// Implementations are value-like and immutable.
type Location interface {
	// String returns the identifier of the location (e.g. a forward-slash path).
	String() string

	// Refer resolves target against this location.
	// If this location has a parent segment and parent/target exists, that location
	// is returned; otherwise target is treated as a standalone absolute location.
	Refer(target string) Location

	// Open returns a reader over the location's bytes.
	// It fails with an error wrapping domain.ErrIO if the resource cannot be read.
	Open() (io.ReadCloser, error)
}
