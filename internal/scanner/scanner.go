// Package scanner finds sub-images inside a bounded region of a source image.
//
// Candidate positions are visited in column-major order: every y for x=fromX,
// then every y for x=fromX+1, and so on. A hit requires every pixel of the
// sub-image to equal the source pixel underneath it.
package scanner

import (
	"bytes"
	"fmt"
	"image"

	"golang.org/x/image/draw"

	"github.com/aretw0/marionette/pkg/domain"
)

// Scanner searches one source image within fixed bounds.
// Bounds are inclusive (from) / exclusive (to); negative values mean unconstrained.
type Scanner struct {
	src                    *image.RGBA
	fromX, fromY, toX, toY int
}

// New creates a scanner over src. The source is copied once into a 0-origin RGBA buffer.
func New(src image.Image, fromX, fromY, toX, toY int) *Scanner {
	return &Scanner{
		src:   normalize(src),
		fromX: fromX,
		fromY: fromY,
		toX:   toX,
		toY:   toY,
	}
}

// Bounds returns the search bounds as given, before clamping.
func (s *Scanner) Bounds() (fromX, fromY, toX, toY int) {
	return s.fromX, s.fromY, s.toX, s.toY
}

// XYOf returns the top-left position of the occurrence-th match of sub (1-based).
// The boolean is false when fewer matches exist or the clamped region is empty.
func (s *Scanner) XYOf(sub image.Image, occurrence int) (image.Point, bool, error) {
	if occurrence < 1 {
		return image.Point{}, false, fmt.Errorf("%w: occurrence must be >= 1, got %d", domain.ErrInvalidArgument, occurrence)
	}

	needle := normalize(sub)
	subW, subH := needle.Rect.Dx(), needle.Rect.Dy()
	srcW, srcH := s.src.Rect.Dx(), s.src.Rect.Dy()

	fromX, toX := clamp(s.fromX, s.toX, srcW-subW+1)
	fromY, toY := clamp(s.fromY, s.toY, srcH-subH+1)

	hits := 0
	for x := fromX; x < toX; x++ {
		for y := fromY; y < toY; y++ {
			if !s.matchAt(needle, x, y) {
				continue
			}
			hits++
			if hits == occurrence {
				return image.Point{X: x, Y: y}, true, nil
			}
		}
	}
	return image.Point{}, false, nil
}

// Contains reports whether sub occurs at least once within the bounds.
func (s *Scanner) Contains(sub image.Image) bool {
	_, ok, _ := s.XYOf(sub, 1)
	return ok
}

// matchAt compares needle row by row against the source at (x, y).
func (s *Scanner) matchAt(needle *image.RGBA, x, y int) bool {
	rowLen := needle.Rect.Dx() * 4
	for row := 0; row < needle.Rect.Dy(); row++ {
		srcOff := s.src.PixOffset(x, y+row)
		subOff := needle.PixOffset(0, row)
		if !bytes.Equal(s.src.Pix[srcOff:srcOff+rowLen], needle.Pix[subOff:subOff+rowLen]) {
			return false
		}
	}
	return true
}

// clamp limits [from, to) to [0, max).
func clamp(from, to, max int) (int, int) {
	if from < 0 {
		from = 0
	}
	if to < 0 || to > max {
		to = max
	}
	return from, to
}

// normalize copies img into an RGBA buffer whose origin is (0, 0).
func normalize(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}
