package compiler

import (
	"context"
	"fmt"
	"time"

	"github.com/aretw0/marionette/internal/runtime"
	"github.com/aretw0/marionette/pkg/domain"
	"github.com/aretw0/marionette/pkg/ports"
)

// delayCommand: delay MS
func delayCommand() *runtime.Command {
	return runtime.NewCommand("delay", 1, 1, func(args runtime.Args) (runtime.Gesture, error) {
		ms := args.Fields[0]
		return runtime.GestureFunc(func(ctx context.Context, s *runtime.Script, surface ports.Surface) error {
			v, err := s.Variables().Value(ms)
			if err != nil {
				return err
			}
			return surface.Delay(ctx, millis(v))
		}), nil
	})
}

// printCommand writes the rest of the line verbatim.
func printCommand() *runtime.Command {
	return runtime.NewCommand("print", 0, -1, func(args runtime.Args) (runtime.Gesture, error) {
		text := args.Rest
		return runtime.GestureFunc(func(_ context.Context, s *runtime.Script, _ ports.Surface) error {
			_, err := fmt.Fprintln(s.Loader().Output(), text)
			return err
		}), nil
	})
}

// setCommand: set NAME VALUE | set NAME LEFT OP RIGHT
func setCommand() *runtime.Command {
	return runtime.NewCommand("set", 2, 4, func(args runtime.Args) (runtime.Gesture, error) {
		f := args.Fields
		if err := checkIdentifier("variable", f[0]); err != nil {
			return nil, err
		}
		name := f[0]

		switch len(f) {
		case 2:
			token := f[1]
			return runtime.GestureFunc(func(_ context.Context, s *runtime.Script, _ ports.Surface) error {
				v, err := s.Variables().Value(token)
				if err != nil {
					return err
				}
				s.Variables().Set(name, v)
				return nil
			}), nil
		case 4:
			left, op, right := f[1], f[2], f[3]
			if !runtime.IsArithmeticOp(op) && !runtime.IsLogicalOp(op) {
				return nil, domain.NewSyntaxError("unknown operator %q", op)
			}
			return runtime.GestureFunc(func(_ context.Context, s *runtime.Script, _ ports.Surface) error {
				v, err := s.Variables().Evaluate(left, op, right)
				if err != nil {
					return err
				}
				s.Variables().Set(name, v)
				return nil
			}), nil
		default:
			return nil, domain.NewSyntaxError("set expects NAME VALUE or NAME LEFT OP RIGHT")
		}
	})
}

func unsetCommand() *runtime.Command {
	return runtime.NewCommand("unset", 1, 1, func(args runtime.Args) (runtime.Gesture, error) {
		name := args.Fields[0]
		return runtime.GestureFunc(func(_ context.Context, s *runtime.Script, _ ports.Surface) error {
			s.Variables().Remove(name)
			return nil
		}), nil
	})
}

// exitCommand stops playback with an optional status code.
func exitCommand() *runtime.Command {
	return runtime.NewCommand("exit", 0, 1, func(args runtime.Args) (runtime.Gesture, error) {
		code := "0"
		if len(args.Fields) == 1 {
			code = args.Fields[0]
		}
		return runtime.GestureFunc(func(_ context.Context, s *runtime.Script, _ ports.Surface) error {
			v, err := s.Variables().Value(code)
			if err != nil {
				return err
			}
			return &domain.ExitError{Code: v}
		}), nil
	})
}

func millis(v int) time.Duration {
	if v < 0 {
		return 0
	}
	return time.Duration(v) * time.Millisecond
}
