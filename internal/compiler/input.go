package compiler

import (
	"context"

	"github.com/aretw0/marionette/internal/runtime"
	"github.com/aretw0/marionette/pkg/domain"
	"github.com/aretw0/marionette/pkg/ports"
)

// keyCommand builds key_press, key_release and key_type.
func keyCommand(name string, press, release bool) *runtime.Command {
	return runtime.NewCommand(name, 1, 1, func(args runtime.Args) (runtime.Gesture, error) {
		key := domain.KeyFromName(args.Fields[0])
		if key == domain.KeyNone {
			return nil, domain.NewSyntaxError("unknown key %q", args.Fields[0])
		}
		return runtime.GestureFunc(func(ctx context.Context, _ *runtime.Script, surface ports.Surface) error {
			if press {
				if err := surface.KeyPress(ctx, key); err != nil {
					return err
				}
			}
			if release {
				return surface.KeyRelease(ctx, key)
			}
			return nil
		}), nil
	})
}

// buttonCommand builds mouse_press, mouse_release and mouse_click.
func buttonCommand(name string, press, release bool) *runtime.Command {
	return runtime.NewCommand(name, 1, 1, func(args runtime.Args) (runtime.Gesture, error) {
		button, err := domain.ButtonFromName(args.Fields[0])
		if err != nil {
			return nil, err
		}
		return runtime.GestureFunc(func(ctx context.Context, _ *runtime.Script, surface ports.Surface) error {
			if press {
				if err := surface.MousePress(ctx, button); err != nil {
					return err
				}
			}
			if release {
				return surface.MouseRelease(ctx, button)
			}
			return nil
		}), nil
	})
}

func mouseMoveCommand() *runtime.Command {
	return runtime.NewCommand("mouse_move", 2, 2, func(args runtime.Args) (runtime.Gesture, error) {
		x, y := args.Fields[0], args.Fields[1]
		return runtime.GestureFunc(func(ctx context.Context, s *runtime.Script, surface ports.Surface) error {
			v, err := resolve(s, x, y)
			if err != nil {
				return err
			}
			return surface.MouseMove(ctx, v[0], v[1])
		}), nil
	})
}

func mouseWheelCommand() *runtime.Command {
	return runtime.NewCommand("mouse_wheel", 1, 1, func(args runtime.Args) (runtime.Gesture, error) {
		amount := args.Fields[0]
		return runtime.GestureFunc(func(ctx context.Context, s *runtime.Script, surface ports.Surface) error {
			v, err := s.Variables().Value(amount)
			if err != nil {
				return err
			}
			return surface.MouseWheel(ctx, v)
		}), nil
	})
}
