package ports

import (
	"context"
	"image"
	"image/color"
	"time"

	"github.com/aretw0/marionette/pkg/domain"
)

// Surface defines the primitive event-generation operations.
// The engine emits calls in script order and never implements them itself.
type Surface interface {
	KeyPress(ctx context.Context, key domain.Key) error
	KeyRelease(ctx context.Context, key domain.Key) error

	// MouseMove moves the pointer to absolute screen coordinates.
	MouseMove(ctx context.Context, x, y int) error
	MousePress(ctx context.Context, button domain.Button) error
	MouseRelease(ctx context.Context, button domain.Button) error
	// MouseWheel scrolls by amount notches; negative values scroll up.
	MouseWheel(ctx context.Context, amount int) error

	// Pixel samples the screen color at the given coordinates.
	Pixel(ctx context.Context, x, y int) (color.Color, error)

	// Capture grabs a region of the screen. An empty rectangle captures the whole screen.
	Capture(ctx context.Context, region image.Rectangle) (image.Image, error)

	// Delay blocks for the given duration.
	Delay(ctx context.Context, d time.Duration) error
}
