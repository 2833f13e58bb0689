package runtime

import (
	"context"
	"time"

	"github.com/aretw0/marionette/pkg/domain"
	"github.com/aretw0/marionette/pkg/ports"
)

// Macro is a named or nameless ordered sequence of Gestures.
type Macro struct {
	name     string
	gestures []Gesture
}

// NewMacro creates a macro. An empty name makes it nameless.
func NewMacro(name string, gestures ...Gesture) *Macro {
	return &Macro{name: name, gestures: gestures}
}

// Name returns the macro name ("" for nameless macros).
func (m *Macro) Name() string { return m.name }

// Gestures returns the gesture sequence.
func (m *Macro) Gestures() []Gesture { return m.gestures }

// Play executes the gestures in order inside one guard level.
// The first failing gesture aborts the sequence; the guard is always released.
func (m *Macro) Play(ctx context.Context, s *Script, surface ports.Surface) (err error) {
	guard := s.loader.guard
	if err := guard.Increment(); err != nil {
		return err
	}
	defer guard.Decrement()

	hooks := s.loader.hooks
	depth := guard.Depth()
	if hooks.OnMacroEnter != nil {
		hooks.OnMacroEnter(ctx, m.event(domain.EventMacroEnter, s, depth))
	}
	s.loader.logger.Debug("macro enter", "macro", m.name, "source", s.location.String(), "depth", depth)

	defer func() {
		if hooks.OnMacroLeave != nil {
			ev := m.event(domain.EventMacroLeave, s, depth)
			ev.Err = err
			hooks.OnMacroLeave(ctx, ev)
		}
		s.loader.logger.Debug("macro leave", "macro", m.name, "source", s.location.String(), "depth", depth, "err", err)
	}()

	for _, g := range m.gestures {
		if err := g.Play(ctx, s, surface); err != nil {
			return err
		}
	}
	return nil
}

func (m *Macro) event(kind domain.EventType, s *Script, depth int) *domain.MacroEvent {
	return &domain.MacroEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: kind, Source: s.location.String()},
		Macro:     m.name,
		Depth:     depth,
	}
}
