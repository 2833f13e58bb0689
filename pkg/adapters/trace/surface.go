// Package trace provides a ports.Surface that writes each input event as a
// script instruction line instead of driving a real desktop.
//
// Its output can be fed back to the loader, which makes it useful for dry runs
// and for checking what a script would do before pointing it at a live session.
package trace

import (
	"context"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"sync"
	"time"

	"github.com/aretw0/marionette/pkg/adapters/screen"
	"github.com/aretw0/marionette/pkg/domain"
)

// Surface writes input events to w and sleeps for real on delays.
// Safe for concurrent use.
type Surface struct {
	mu     sync.Mutex
	w      io.Writer
	screen image.Image
	sleep  bool
}

// Option configures a Surface.
type Option func(*Surface)

// WithScreen sets the image returned by captures and pixel samples.
func WithScreen(img image.Image) Option {
	return func(s *Surface) {
		s.screen = img
	}
}

// WithoutSleep makes delays return immediately after being written.
func WithoutSleep() Option {
	return func(s *Surface) {
		s.sleep = false
	}
}

// New creates a trace surface writing to w.
func New(w io.Writer, opts ...Option) *Surface {
	s := &Surface{w: w, sleep: true}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoadScreen decodes an image file to serve as the captured screen.
func LoadScreen(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrIO, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("screen %s: %w: %v", path, domain.ErrDecode, err)
	}
	return img, nil
}

func (s *Surface) emit(format string, args ...any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := fmt.Fprintf(s.w, format+"\n", args...)
	return err
}

func (s *Surface) KeyPress(_ context.Context, key domain.Key) error {
	return s.emit("key_press %s", key)
}

func (s *Surface) KeyRelease(_ context.Context, key domain.Key) error {
	return s.emit("key_release %s", key)
}

func (s *Surface) MouseMove(_ context.Context, x, y int) error {
	return s.emit("mouse_move %d %d", x, y)
}

func (s *Surface) MousePress(_ context.Context, button domain.Button) error {
	return s.emit("mouse_press %s", button)
}

func (s *Surface) MouseRelease(_ context.Context, button domain.Button) error {
	return s.emit("mouse_release %s", button)
}

func (s *Surface) MouseWheel(_ context.Context, amount int) error {
	return s.emit("mouse_wheel %d", amount)
}

func (s *Surface) Pixel(_ context.Context, x, y int) (color.Color, error) {
	if s.screen == nil {
		return color.Black, nil
	}
	b := s.screen.Bounds()
	pt := image.Pt(x, y).Add(b.Min)
	if !pt.In(b) {
		return nil, fmt.Errorf("pixel %d,%d: %w: outside the screen", x, y, domain.ErrInvalidArgument)
	}
	return s.screen.At(pt.X, pt.Y), nil
}

// Capture returns the configured screen cropped to region.
// Without a screen it returns an empty image, on which no search ever matches.
func (s *Surface) Capture(_ context.Context, region image.Rectangle) (image.Image, error) {
	if s.screen == nil {
		return image.NewRGBA(image.Rectangle{}), nil
	}
	return screen.Crop(s.screen, region), nil
}

// Delay writes the delay and then sleeps, returning early with the context error on cancellation.
func (s *Surface) Delay(ctx context.Context, d time.Duration) error {
	if err := s.emit("delay %d", d.Milliseconds()); err != nil {
		return err
	}
	if !s.sleep || d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
