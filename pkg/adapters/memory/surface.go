package memory

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"sync"
	"time"

	"github.com/aretw0/marionette/pkg/adapters/screen"
	"github.com/aretw0/marionette/pkg/domain"
)

// EventKind identifies a recorded surface call.
type EventKind string

const (
	KeyPress     EventKind = "key_press"
	KeyRelease   EventKind = "key_release"
	MouseMove    EventKind = "mouse_move"
	MousePress   EventKind = "mouse_press"
	MouseRelease EventKind = "mouse_release"
	MouseWheel   EventKind = "mouse_wheel"
	Delay        EventKind = "delay"
	Capture      EventKind = "capture"
	Pixel        EventKind = "pixel"
)

// Event is one recorded surface call. Only the fields relevant to Kind are set.
type Event struct {
	Kind     EventKind
	Key      domain.Key
	Button   domain.Button
	X, Y     int
	Amount   int
	Duration time.Duration
	Region   image.Rectangle
}

// Surface implements ports.Surface by recording every call.
// Delays advance a virtual clock instead of sleeping.
// Safe for concurrent use.
type Surface struct {
	mu      sync.Mutex
	events  []Event
	screens []image.Image
	next    int
	current image.Image
	elapsed time.Duration
}

// NewSurface creates a recording surface. Captures return screens in order;
// the last one repeats once the sequence is exhausted.
func NewSurface(screens ...image.Image) *Surface {
	return &Surface{screens: screens}
}

// SetScreens replaces the capture sequence.
func (s *Surface) SetScreens(screens ...image.Image) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.screens = screens
	s.next = 0
	s.current = nil
}

// Events returns a copy of the recorded calls.
func (s *Surface) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Event(nil), s.events...)
}

// Elapsed returns the total virtual delay.
func (s *Surface) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.elapsed
}

// Reset clears the recorded calls and the virtual clock.
func (s *Surface) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = nil
	s.elapsed = 0
}

func (s *Surface) record(e Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
}

func (s *Surface) KeyPress(_ context.Context, key domain.Key) error {
	s.record(Event{Kind: KeyPress, Key: key})
	return nil
}

func (s *Surface) KeyRelease(_ context.Context, key domain.Key) error {
	s.record(Event{Kind: KeyRelease, Key: key})
	return nil
}

func (s *Surface) MouseMove(_ context.Context, x, y int) error {
	s.record(Event{Kind: MouseMove, X: x, Y: y})
	return nil
}

func (s *Surface) MousePress(_ context.Context, button domain.Button) error {
	s.record(Event{Kind: MousePress, Button: button})
	return nil
}

func (s *Surface) MouseRelease(_ context.Context, button domain.Button) error {
	s.record(Event{Kind: MouseRelease, Button: button})
	return nil
}

func (s *Surface) MouseWheel(_ context.Context, amount int) error {
	s.record(Event{Kind: MouseWheel, Amount: amount})
	return nil
}

// Pixel samples the most recently captured screen, or the first one if none was captured.
func (s *Surface) Pixel(_ context.Context, x, y int) (color.Color, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, Event{Kind: Pixel, X: x, Y: y})

	img := s.current
	if img == nil && len(s.screens) > 0 {
		img = s.screens[0]
	}
	if img == nil {
		return nil, fmt.Errorf("pixel %d,%d: %w: no screen", x, y, domain.ErrIO)
	}
	pt := image.Pt(x, y).Add(img.Bounds().Min)
	if !pt.In(img.Bounds()) {
		return nil, fmt.Errorf("pixel %d,%d: %w: outside the screen", x, y, domain.ErrInvalidArgument)
	}
	return img.At(pt.X, pt.Y), nil
}

// Capture returns the next screen of the sequence, cropped to region.
func (s *Surface) Capture(_ context.Context, region image.Rectangle) (image.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, Event{Kind: Capture, Region: region})

	if len(s.screens) == 0 {
		return nil, fmt.Errorf("capture: %w: no screen", domain.ErrIO)
	}
	s.current = s.screens[s.next]
	if s.next < len(s.screens)-1 {
		s.next++
	}
	return screen.Crop(s.current, region), nil
}

func (s *Surface) Delay(_ context.Context, d time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, Event{Kind: Delay, Duration: d})
	s.elapsed += d
	return nil
}
