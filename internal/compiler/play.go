package compiler

import (
	"context"

	"github.com/aretw0/marionette/internal/runtime"
	"github.com/aretw0/marionette/pkg/domain"
	"github.com/aretw0/marionette/pkg/ports"
)

// playGesture plays a macro of this or another script.
type playGesture struct {
	spec  macroSpec
	times string
	cond  []string
}

// playCommand: play SPEC [TIMES [LEFT OP RIGHT]]
func playCommand() *runtime.Command {
	return runtime.NewCommand("play", 1, 5, func(args runtime.Args) (runtime.Gesture, error) {
		f := args.Fields
		if len(f) == 3 || len(f) == 4 {
			return nil, domain.NewSyntaxError("play expects SPEC [TIMES [LEFT OP RIGHT]]")
		}

		spec, err := parseSpec(f[0])
		if err != nil {
			return nil, err
		}

		g := &playGesture{spec: spec, times: "1"}
		if len(f) >= 2 {
			g.times = f[1]
		}
		if len(f) == 5 {
			if !runtime.IsLogicalOp(f[3]) {
				return nil, domain.NewSyntaxError("play condition needs a logical operator, got %q", f[3])
			}
			g.cond = f[2:5]
		}
		return g, nil
	})
}

func (g *playGesture) Play(ctx context.Context, s *runtime.Script, surface ports.Surface) error {
	if g.cond != nil {
		ok, err := s.Variables().Logical(g.cond[0], g.cond[1], g.cond[2])
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}

	times, err := s.Variables().Value(g.times)
	if err != nil {
		return err
	}
	return g.spec.play(ctx, s, surface, times)
}

func (g *playGesture) References() []string {
	return g.spec.references()
}
