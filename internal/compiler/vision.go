package compiler

import (
	"context"
	"image"
	"strconv"

	"github.com/aretw0/marionette/internal/runtime"
	"github.com/aretw0/marionette/internal/scanner"
	"github.com/aretw0/marionette/pkg/domain"
	"github.com/aretw0/marionette/pkg/ports"
)

// noCallback marks an absent found/missing macro in scan.
const noCallback = "-"

// region holds the value tokens of a search window and an occurrence.
type region struct {
	fromX, fromY, toX, toY string
	occurrence             string
}

var unbounded = region{fromX: "-1", fromY: "-1", toX: "-1", toY: "-1", occurrence: "1"}

func (r region) resolve(s *runtime.Script) (fromX, fromY, toX, toY, occurrence int, err error) {
	v, err := resolve(s, r.fromX, r.fromY, r.toX, r.toY, r.occurrence)
	if err != nil {
		return 0, 0, 0, 0, 0, err
	}
	return v[0], v[1], v[2], v[3], v[4], nil
}

// locate captures the full screen and searches it for img within r.
func locate(ctx context.Context, s *runtime.Script, surface ports.Surface, img image.Image, r region) (image.Point, bool, error) {
	fromX, fromY, toX, toY, occurrence, err := r.resolve(s)
	if err != nil {
		return image.Point{}, false, err
	}
	screen, err := surface.Capture(ctx, image.Rectangle{})
	if err != nil {
		return image.Point{}, false, err
	}
	return scanner.New(screen, fromX, fromY, toX, toY).XYOf(img, occurrence)
}

type scanGesture struct {
	image        string
	xVar, yVar   string
	times, delay string
	region       region
	found        *macroSpec
	missing      *macroSpec
}

// scanCommand: scan IMG XVAR YVAR TIMES DELAY [FX FY TX TY OCC] [FOUND [MISSING]]
func scanCommand() *runtime.Command {
	return runtime.NewCommand("scan", 5, 12, func(args runtime.Args) (runtime.Gesture, error) {
		f := args.Fields
		switch len(f) {
		case 5, 6, 7, 10, 11, 12:
		default:
			return nil, domain.NewSyntaxError("scan expects IMG XVAR YVAR TIMES DELAY [FX FY TX TY OCC] [FOUND [MISSING]]")
		}
		for _, name := range f[1:3] {
			if err := checkIdentifier("variable", name); err != nil {
				return nil, err
			}
		}

		g := &scanGesture{
			image:  f[0],
			xVar:   f[1],
			yVar:   f[2],
			times:  f[3],
			delay:  f[4],
			region: unbounded,
		}

		callbacks := f[5:]
		if len(f) >= 10 {
			g.region = region{fromX: f[5], fromY: f[6], toX: f[7], toY: f[8], occurrence: f[9]}
			callbacks = f[10:]
		}

		var err error
		if len(callbacks) > 0 {
			if g.found, err = parseCallback(callbacks[0]); err != nil {
				return nil, err
			}
		}
		if len(callbacks) > 1 {
			if g.missing, err = parseCallback(callbacks[1]); err != nil {
				return nil, err
			}
		}
		return g, nil
	})
}

func parseCallback(token string) (*macroSpec, error) {
	if token == noCallback {
		return nil, nil
	}
	// No locator or macro reference is a bare integer; such a token is a bound
	// of a truncated region.
	if _, err := strconv.Atoi(token); err == nil {
		return nil, domain.NewSyntaxError("scan expects a macro reference or %q as callback, got %q", noCallback, token)
	}
	spec, err := parseSpec(token)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

func (g *scanGesture) Play(ctx context.Context, s *runtime.Script, surface ports.Surface) error {
	img, err := s.Images().GetOrLoad(g.image)
	if err != nil {
		return err
	}
	v, err := resolve(s, g.times, g.delay)
	if err != nil {
		return err
	}
	times, delay := v[0], millis(v[1])

	var (
		at    image.Point
		found bool
	)
	for attempt := 0; attempt < times && !found; attempt++ {
		if attempt > 0 {
			if err := surface.Delay(ctx, delay); err != nil {
				return err
			}
		}
		at, found, err = locate(ctx, s, surface, img, g.region)
		if err != nil {
			return err
		}
	}

	if !found {
		at = image.Pt(-1, -1)
	}
	s.Variables().Set(g.xVar, at.X)
	s.Variables().Set(g.yVar, at.Y)

	next := g.missing
	if found {
		next = g.found
	}
	if next == nil {
		return nil
	}
	return next.play(ctx, s, surface, 1)
}

func (g *scanGesture) References() []string {
	var refs []string
	for _, cb := range []*macroSpec{g.found, g.missing} {
		if cb != nil {
			refs = append(refs, cb.references()...)
		}
	}
	return refs
}

type waitGesture struct {
	image  string
	gone   bool
	region region
}

// waitCommand: wait IMG [gone|present] [FX FY TX TY]
func waitCommand() *runtime.Command {
	return runtime.NewCommand("wait", 1, 6, func(args runtime.Args) (runtime.Gesture, error) {
		f := args.Fields
		g := &waitGesture{image: f[0], region: unbounded}

		bounds := f[1:]
		if len(f) == 2 || len(f) == 6 {
			switch f[1] {
			case "gone":
				g.gone = true
			case "present":
			default:
				return nil, domain.NewSyntaxError("wait condition must be gone or present, got %q", f[1])
			}
			bounds = f[2:]
		}

		switch len(bounds) {
		case 0:
		case 4:
			g.region = region{fromX: bounds[0], fromY: bounds[1], toX: bounds[2], toY: bounds[3], occurrence: "1"}
		default:
			return nil, domain.NewSyntaxError("wait expects IMG [gone|present] [FX FY TX TY]")
		}
		return g, nil
	})
}

// Play polls until the image presence matches. It has no iteration bound.
func (g *waitGesture) Play(ctx context.Context, s *runtime.Script, surface ports.Surface) error {
	img, err := s.Images().GetOrLoad(g.image)
	if err != nil {
		return err
	}
	interval := s.Loader().WaitInterval()
	for {
		_, found, err := locate(ctx, s, surface, img, g.region)
		if err != nil {
			return err
		}
		if found != g.gone {
			return nil
		}
		if err := surface.Delay(ctx, interval); err != nil {
			return err
		}
	}
}
