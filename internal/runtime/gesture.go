package runtime

import (
	"context"

	"github.com/aretw0/marionette/pkg/ports"
)

// Gesture is a single executable automation step.
type Gesture interface {
	Play(ctx context.Context, s *Script, surface ports.Surface) error
}

// GestureFunc adapts a function to the Gesture interface.
type GestureFunc func(ctx context.Context, s *Script, surface ports.Surface) error

// Play calls f.
func (f GestureFunc) Play(ctx context.Context, s *Script, surface ports.Surface) error {
	return f(ctx, s, surface)
}

// Referrer is implemented by gestures that may load other scripts.
// References returns the locators they name, relative to the owning script.
type Referrer interface {
	References() []string
}
