package runtime_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"testing"

	"github.com/aretw0/marionette/internal/runtime"
	"github.com/aretw0/marionette/pkg/adapters/memory"
	"github.com/aretw0/marionette/pkg/domain"
	"github.com/aretw0/marionette/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingLocation counts Refer and Open calls on the wrapped location.
type countingLocation struct {
	ports.Location
	refers, opens *int
}

func (c countingLocation) Refer(target string) ports.Location {
	*c.refers++
	return countingLocation{Location: c.Location.Refer(target), refers: c.refers, opens: c.opens}
}

func (c countingLocation) Open() (io.ReadCloser, error) {
	*c.opens++
	return c.Location.Open()
}

func encodePNG(t *testing.T, img image.Image) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.String()
}

func TestImages_GetOrLoad(t *testing.T) {
	icon := image.NewRGBA(image.Rect(0, 0, 2, 2))
	icon.Set(0, 0, color.RGBA{B: 0xff, A: 0xff})

	fs := memory.NewFS(map[string]string{
		"main.txt":    "",
		"icons/x.png": encodePNG(t, icon),
	})
	var refers, opens int
	owner := countingLocation{Location: fs.Locate("main.txt"), refers: &refers, opens: &opens}

	images := runtime.NewImages(owner)
	logo := image.NewRGBA(image.Rect(0, 0, 1, 1))
	images.Set("logo", logo)

	got, err := images.GetOrLoad("logo")
	require.NoError(t, err)
	assert.Same(t, logo, got)
	assert.Zero(t, refers)
	assert.Zero(t, opens)

	got, err = images.GetOrLoad("icons/x.png")
	require.NoError(t, err)
	assert.Equal(t, 1, refers)
	assert.Equal(t, 1, opens)
	assert.Equal(t, icon.Bounds(), got.Bounds())

	_, err = images.Get("icons/x.png")
	assert.ErrorIs(t, err, domain.ErrNotFound, "loaded images are not stored")
}

func TestImages_LoadErrors(t *testing.T) {
	fs := memory.NewFS(map[string]string{
		"main.txt": "",
		"bad.png":  "not an image",
	})
	images := runtime.NewImages(fs.Locate("main.txt"))

	_, err := images.Load("missing.png")
	assert.ErrorIs(t, err, domain.ErrIO)

	_, err = images.Load("bad.png")
	assert.ErrorIs(t, err, domain.ErrDecode)

	images.Set("a", image.NewRGBA(image.Rect(0, 0, 1, 1)))
	images.Set("b", image.NewRGBA(image.Rect(0, 0, 1, 1)))
	images.Remove("a")
	assert.Equal(t, []string{"b"}, images.Names())
}
