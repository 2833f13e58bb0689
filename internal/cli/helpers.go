package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"

	"github.com/aretw0/marionette/internal/config"
	"github.com/aretw0/marionette/internal/logging"
	"github.com/aretw0/marionette/pkg/domain"
)

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel func()
	start  sync.Once
	stop   sync.Once
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGINT or SIGTERM.
// It acts as a drop-in replacement for signal.NotifyContext but allows retrieving the signal.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}

	sc.start.Do(func() {
		signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			select {
			case sig := <-sc.sigCh:
				sc.mu.Lock()
				sc.sigVal = sig
				sc.mu.Unlock()
				sc.Cancel()
			case <-sc.Context.Done():
				// Context cancelled elsewhere
			}
			sc.stop.Do(func() {
				signal.Stop(sc.sigCh)
			})
		}()
	})

	return sc
}

// Signal returns the signal that caused the context to be cancelled, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// createLogger configures the application logger from the log settings.
func createLogger(cfg config.LogConfig, w io.Writer) (*slog.Logger, error) {
	if strings.EqualFold(cfg.Level, "off") {
		return logging.NewNop(), nil
	}
	level, err := logging.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	return logging.NewWithWriter(w, level, cfg.Format), nil
}

// printSystemMessage prints a standardized system message.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}

// parseAssignments turns "name=value" pairs into integer variables.
func parseAssignments(pairs []string) (map[string]int, error) {
	vars := make(map[string]int, len(pairs))
	for _, pair := range pairs {
		name, raw, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("%w: --set expects name=value, got %q", domain.ErrInvalidArgument, pair)
		}
		if _, err := strconv.Atoi(name); err == nil {
			return nil, fmt.Errorf("%w: variable name %q must not be a number", domain.ErrInvalidArgument, name)
		}
		v, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("%w: value of %s must be an integer, got %q", domain.ErrInvalidArgument, name, raw)
		}
		vars[name] = v
	}
	return vars, nil
}

func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnMacroEnter: func(ctx context.Context, e *domain.MacroEvent) {
			logger.Debug("Enter Macro", "macro", e.Macro, "source", e.Source, "depth", e.Depth)
		},
		OnMacroLeave: func(ctx context.Context, e *domain.MacroEvent) {
			if e.Err != nil {
				logger.Debug("Leave Macro (Error)", "macro", e.Macro, "err", e.Err)
				return
			}
			logger.Debug("Leave Macro", "macro", e.Macro)
		},
		OnGestureDone: func(ctx context.Context, e *domain.GestureEvent) {
			logger.Debug("Gesture Done", "command", e.Command, "line", e.Line, "duration", e.Duration)
		},
	}
}

// mergeHooks calls every non-nil hook of each set in order.
func mergeHooks(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	var (
		enter, leave []func(context.Context, *domain.MacroEvent)
		start, done  []func(context.Context, *domain.GestureEvent)
	)
	for _, h := range sets {
		if h.OnMacroEnter != nil {
			enter = append(enter, h.OnMacroEnter)
		}
		if h.OnMacroLeave != nil {
			leave = append(leave, h.OnMacroLeave)
		}
		if h.OnGesture != nil {
			start = append(start, h.OnGesture)
		}
		if h.OnGestureDone != nil {
			done = append(done, h.OnGestureDone)
		}
	}

	macro := func(fns []func(context.Context, *domain.MacroEvent)) func(context.Context, *domain.MacroEvent) {
		if len(fns) == 0 {
			return nil
		}
		return func(ctx context.Context, e *domain.MacroEvent) {
			for _, fn := range fns {
				fn(ctx, e)
			}
		}
	}
	gesture := func(fns []func(context.Context, *domain.GestureEvent)) func(context.Context, *domain.GestureEvent) {
		if len(fns) == 0 {
			return nil
		}
		return func(ctx context.Context, e *domain.GestureEvent) {
			for _, fn := range fns {
				fn(ctx, e)
			}
		}
	}

	return domain.LifecycleHooks{
		OnMacroEnter:  macro(enter),
		OnMacroLeave:  macro(leave),
		OnGesture:     gesture(start),
		OnGestureDone: gesture(done),
	}
}
