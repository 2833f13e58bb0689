package marionette

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/marionette/internal/compiler"
	"github.com/aretw0/marionette/internal/logging"
	"github.com/aretw0/marionette/internal/runtime"
	"github.com/aretw0/marionette/internal/validator"
	"github.com/aretw0/marionette/pkg/adapters/file"
	"github.com/aretw0/marionette/pkg/domain"
	"github.com/aretw0/marionette/pkg/ports"
)

// Script is a loaded script bound to its variables, images and macros.
type Script = runtime.Script

// Loader parses scripts and owns the recursion guard they share.
type Loader = runtime.Loader

// Engine is the high-level entry point for the marionette library.
// It wraps one Loader so that every script it loads shares a single recursion bound.
type Engine struct {
	loader       *runtime.Loader
	logger       *slog.Logger
	hooks        domain.LifecycleHooks
	output       io.Writer
	limit        int
	waitInterval time.Duration
	extra        []*runtime.Command
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithOutput sets the writer used by print instructions.
func WithOutput(w io.Writer) Option {
	return func(e *Engine) {
		e.output = w
	}
}

// WithRecursionLimit bounds the total nesting depth of macro playback.
func WithRecursionLimit(limit int) Option {
	return func(e *Engine) {
		e.limit = limit
	}
}

// WithWaitInterval sets the polling period of wait instructions.
func WithWaitInterval(d time.Duration) Option {
	return func(e *Engine) {
		e.waitInterval = d
	}
}

// WithCommands appends custom instructions after the standard set.
// Standard commands keep precedence on name clashes.
func WithCommands(commands ...*runtime.Command) Option {
	return func(e *Engine) {
		e.extra = append(e.extra, commands...)
	}
}

// New initializes a new Engine with the standard instruction set.
func New(opts ...Option) *Engine {
	eng := &Engine{
		logger: logging.NewNop(),
		limit:  runtime.DefaultRecursionLimit,
	}
	for _, opt := range opts {
		opt(eng)
	}

	commands := append(compiler.Commands(), eng.extra...)
	eng.loader = runtime.NewLoader(commands,
		runtime.WithLogger(eng.logger),
		runtime.WithLifecycleHooks(eng.hooks),
		runtime.WithOutput(eng.output),
		runtime.WithRecursionLimit(eng.limit),
		runtime.WithWaitInterval(eng.waitInterval),
	)
	return eng
}

// Loader returns the underlying loader.
func (e *Engine) Loader() *runtime.Loader {
	return e.loader
}

// Load parses the script at loc.
func (e *Engine) Load(loc ports.Location) (*Script, error) {
	return e.loader.LoadScript(loc)
}

// LoadFile parses the script at a filesystem path.
func (e *Engine) LoadFile(path string) (*Script, error) {
	return e.Load(file.New(path))
}

// Run plays macro of s (the first macro when empty) times times.
// An exit instruction surfaces as a *domain.ExitError.
func (e *Engine) Run(ctx context.Context, s *Script, surface ports.Surface, macro string, times int) error {
	if times < 0 {
		return fmt.Errorf("%w: times must not be negative, got %d", domain.ErrInvalidArgument, times)
	}
	if macro == "" {
		return s.Play(ctx, surface, times)
	}
	return s.PlayMacro(ctx, surface, macro, times)
}

// Validate checks that the script at loc and every script it references parse cleanly.
func (e *Engine) Validate(loc ports.Location) error {
	return validator.ValidateScript(e.loader, loc)
}

// Inspect loads the script at loc and every script it references.
// Scripts that fail to load are reported in the error and left out of the result.
func (e *Engine) Inspect(loc ports.Location) ([]*Script, error) {
	return validator.Crawl(e.loader, loc)
}
