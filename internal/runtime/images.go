package runtime

import (
	"errors"
	"fmt"
	"image"
	"maps"
	"slices"

	// Decoders for the formats recorder tooling produces.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"

	"github.com/aretw0/marionette/pkg/domain"
	"github.com/aretw0/marionette/pkg/ports"
)

// Images is the named bitmap store of a Script.
// Bitmaps are shared by reference and live as long as the store.
type Images struct {
	owner  ports.Location
	images map[string]image.Image
}

// NewImages creates an empty store resolving file references against owner.
func NewImages(owner ports.Location) *Images {
	return &Images{
		owner:  owner,
		images: make(map[string]image.Image),
	}
}

// Set stores img under name, replacing any previous entry.
func (s *Images) Set(name string, img image.Image) {
	s.images[name] = img
}

// Remove deletes name. Removing an absent name is a no-op.
func (s *Images) Remove(name string) {
	delete(s.images, name)
}

// Get returns the bitmap stored under name or ErrNotFound.
func (s *Images) Get(name string) (image.Image, error) {
	img, ok := s.images[name]
	if !ok {
		return nil, fmt.Errorf("image %q: %w", name, domain.ErrNotFound)
	}
	return img, nil
}

// Names returns the sorted image names.
func (s *Images) Names() []string {
	return slices.Sorted(maps.Keys(s.images))
}

// Load resolves token against the owning location and decodes it.
// The result is returned but not stored.
func (s *Images) Load(token string) (image.Image, error) {
	if s.owner == nil {
		return nil, fmt.Errorf("image %q: no owning location: %w", token, domain.ErrIO)
	}
	loc := s.owner.Refer(token)
	rc, err := loc.Open()
	if err != nil {
		return nil, fmt.Errorf("image %q: %w", token, err)
	}
	defer rc.Close()

	img, _, err := image.Decode(rc)
	if err != nil {
		return nil, fmt.Errorf("image %s: %w: %v", loc, domain.ErrDecode, err)
	}
	return img, nil
}

// GetOrLoad returns the stored bitmap named token, falling back to Load when no
// such entry exists. This lets one parameter slot hold either a name or a path.
func (s *Images) GetOrLoad(token string) (image.Image, error) {
	img, err := s.Get(token)
	if err == nil {
		return img, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	return s.Load(token)
}
