package runtime

import (
	"context"
	"fmt"

	"github.com/aretw0/marionette/pkg/domain"
	"github.com/aretw0/marionette/pkg/ports"
)

// Script binds the Macros loaded from one Location to their variable and image stores.
// It is loaded exactly once, at construction.
type Script struct {
	location ports.Location
	loader   *Loader
	vars     *Variables
	images   *Images
	macros   []*Macro
}

// NewScript opens loc and parses it with loader.
func NewScript(loc ports.Location, loader *Loader) (*Script, error) {
	rc, err := loc.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open script %s: %w", loc, err)
	}
	defer rc.Close()

	macros, err := loader.Load(rc, loc.String())
	if err != nil {
		return nil, err
	}

	loader.logger.Info("script loaded", "source", loc.String(), "macros", len(macros))

	return &Script{
		location: loc,
		loader:   loader,
		vars:     NewVariables(),
		images:   NewImages(loc),
		macros:   macros,
	}, nil
}

// Location returns the script's location.
func (s *Script) Location() ports.Location { return s.location }

// Loader returns the shared loader that produced the script.
func (s *Script) Loader() *Loader { return s.loader }

// Variables returns the script's variable store.
func (s *Script) Variables() *Variables { return s.vars }

// Images returns the script's image store.
func (s *Script) Images() *Images { return s.images }

// Macros returns the loaded macros in load order.
func (s *Script) Macros() []*Macro { return s.macros }

// MacroNames returns the names of the named macros in load order, shadowed duplicates included.
func (s *Script) MacroNames() []string {
	var names []string
	for _, m := range s.macros {
		if m.name != "" {
			names = append(names, m.name)
		}
	}
	return names
}

// Macro returns the first macro called name.
func (s *Script) Macro(name string) (*Macro, error) {
	for _, m := range s.macros {
		if m.name == name {
			return m, nil
		}
	}
	return nil, fmt.Errorf("macro %q in %s: %w", name, s.location, domain.ErrNotFound)
}

// Play plays the first loaded macro times times. It is a no-op without macros.
func (s *Script) Play(ctx context.Context, surface ports.Surface, times int) error {
	if len(s.macros) == 0 {
		return nil
	}
	return s.repeat(ctx, surface, s.macros[0], times)
}

// PlayMacro plays the first macro called name times times.
func (s *Script) PlayMacro(ctx context.Context, surface ports.Surface, name string, times int) error {
	m, err := s.Macro(name)
	if err != nil {
		return err
	}
	return s.repeat(ctx, surface, m, times)
}

func (s *Script) repeat(ctx context.Context, surface ports.Surface, m *Macro, times int) error {
	for i := 0; i < times; i++ {
		if err := m.Play(ctx, s, surface); err != nil {
			return err
		}
	}
	return nil
}
