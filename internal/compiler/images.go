package compiler

import (
	"context"
	"fmt"
	"image"

	"github.com/aretw0/marionette/internal/runtime"
	"github.com/aretw0/marionette/pkg/domain"
	"github.com/aretw0/marionette/pkg/ports"
)

// loadCommand: load NAME LOCATION
func loadCommand() *runtime.Command {
	return runtime.NewCommand("load", 2, 2, func(args runtime.Args) (runtime.Gesture, error) {
		name, target := args.Fields[0], args.Fields[1]
		return runtime.GestureFunc(func(_ context.Context, s *runtime.Script, _ ports.Surface) error {
			img, err := s.Images().Load(target)
			if err != nil {
				return err
			}
			s.Images().Set(name, img)
			return nil
		}), nil
	})
}

func freeCommand() *runtime.Command {
	return runtime.NewCommand("free", 1, 1, func(args runtime.Args) (runtime.Gesture, error) {
		name := args.Fields[0]
		return runtime.GestureFunc(func(_ context.Context, s *runtime.Script, _ ports.Surface) error {
			s.Images().Remove(name)
			return nil
		}), nil
	})
}

// screenshotCommand: screenshot NAME [X Y W H]
func screenshotCommand() *runtime.Command {
	return runtime.NewCommand("screenshot", 1, 5, func(args runtime.Args) (runtime.Gesture, error) {
		f := args.Fields
		if len(f) != 1 && len(f) != 5 {
			return nil, domain.NewSyntaxError("screenshot expects NAME or NAME X Y WIDTH HEIGHT")
		}
		name, region := f[0], f[1:]
		return runtime.GestureFunc(func(ctx context.Context, s *runtime.Script, surface ports.Surface) error {
			var rect image.Rectangle
			if len(region) == 4 {
				v, err := resolve(s, region...)
				if err != nil {
					return err
				}
				if v[2] <= 0 || v[3] <= 0 {
					return fmt.Errorf("%w: screenshot region must have a positive size, got %dx%d", domain.ErrInvalidArgument, v[2], v[3])
				}
				rect = image.Rect(v[0], v[1], v[0]+v[2], v[1]+v[3])
			}
			img, err := surface.Capture(ctx, rect)
			if err != nil {
				return err
			}
			s.Images().Set(name, img)
			return nil
		}), nil
	})
}

// pixelCommand: pixel NAME X Y stores the sampled color as 0xRRGGBB.
func pixelCommand() *runtime.Command {
	return runtime.NewCommand("pixel", 3, 3, func(args runtime.Args) (runtime.Gesture, error) {
		f := args.Fields
		if err := checkIdentifier("variable", f[0]); err != nil {
			return nil, err
		}
		name, x, y := f[0], f[1], f[2]
		return runtime.GestureFunc(func(ctx context.Context, s *runtime.Script, surface ports.Surface) error {
			v, err := resolve(s, x, y)
			if err != nil {
				return err
			}
			c, err := surface.Pixel(ctx, v[0], v[1])
			if err != nil {
				return err
			}
			r, g, b, _ := c.RGBA()
			s.Variables().Set(name, int(r>>8)<<16|int(g>>8)<<8|int(b>>8))
			return nil
		}), nil
	})
}
