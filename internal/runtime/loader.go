package runtime

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"
	"github.com/aretw0/marionette/pkg/domain"
	"github.com/aretw0/marionette/pkg/ports"
)

// DefaultWaitInterval is the polling period of wait gestures.
const DefaultWaitInterval = 250 * time.Millisecond

// Loader turns script text into Macros using an ordered command registry.
// It owns the RecursionGuard shared by every Script it loads.
type Loader struct {
	commands     []*Command
	guard        *RecursionGuard
	limit        int
	logger       *slog.Logger
	output       io.Writer
	waitInterval time.Duration
	hooks        domain.LifecycleHooks
}

// LoaderOption defines a functional option for configuring the Loader.
type LoaderOption func(*Loader)

// WithRecursionLimit sets the nesting bound of the shared guard.
func WithRecursionLimit(limit int) LoaderOption {
	return func(l *Loader) {
		if limit > 0 {
			l.limit = limit
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithOutput sets the writer used by print gestures.
func WithOutput(w io.Writer) LoaderOption {
	return func(l *Loader) {
		if w != nil {
			l.output = w
		}
	}
}

// WithWaitInterval sets the polling period of wait gestures.
func WithWaitInterval(d time.Duration) LoaderOption {
	return func(l *Loader) {
		if d > 0 {
			l.waitInterval = d
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) LoaderOption {
	return func(l *Loader) {
		l.hooks = hooks
	}
}

// NewLoader creates a loader over commands. The order of commands is the match order.
func NewLoader(commands []*Command, opts ...LoaderOption) *Loader {
	l := &Loader{
		commands:     commands,
		limit:        DefaultRecursionLimit,
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		output:       io.Discard,
		waitInterval: DefaultWaitInterval,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.guard = NewRecursionGuard(l.limit)
	return l
}

// Guard returns the recursion guard shared by all scripts of this loader.
func (l *Loader) Guard() *RecursionGuard { return l.guard }

// Logger returns the loader's logger.
func (l *Loader) Logger() *slog.Logger { return l.logger }

// Output returns the writer used by print gestures.
func (l *Loader) Output() io.Writer { return l.output }

// WaitInterval returns the polling period of wait gestures.
func (l *Loader) WaitInterval() time.Duration { return l.waitInterval }

// Commands returns the registry in match order.
func (l *Loader) Commands() []*Command { return l.commands }

// LoadScript opens loc and builds a Script sharing this loader.
func (l *Loader) LoadScript(loc ports.Location) (*Script, error) {
	return NewScript(loc, l)
}

// Load parses r into macros. Parsing is eager and atomic: the first syntax
// error aborts the whole load.
func (l *Loader) Load(r io.Reader, source string) ([]*Macro, error) {
	var (
		macros   []*Macro
		name     string
		gestures []Gesture
		lineNo   int
	)

	flush := func() {
		if len(gestures) > 0 {
			macros = append(macros, NewMacro(name, gestures...))
		}
		name = ""
		gestures = nil
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "":
			flush()
			continue
		case strings.HasPrefix(trimmed, "#"):
			continue
		}

		fields := strings.Fields(trimmed)
		if fields[0] == "name" {
			if len(fields) != 2 {
				return nil, &domain.SyntaxError{Source: source, Line: lineNo, Text: line, Msg: "name expects exactly one identifier"}
			}
			name = fields[1]
			continue
		}

		g, err := l.parseLine(line)
		if err != nil {
			return nil, l.locate(err, source, lineNo, line)
		}
		gestures = append(gestures, &step{
			command: fields[0],
			source:  source,
			line:    lineNo,
			gesture: g,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w: %v", source, domain.ErrIO, err)
	}
	flush()

	l.logger.Debug("script parsed", "source", source, "lines", lineNo, "macros", len(macros))
	return macros, nil
}

func (l *Loader) parseLine(line string) (Gesture, error) {
	for _, c := range l.commands {
		if c.Supports(line) {
			return c.Parse(line)
		}
	}

	word := strings.Fields(line)[0]
	msg := fmt.Sprintf("unknown command %q", word)
	if hint := l.suggest(word); hint != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", hint)
	}
	return nil, &domain.SyntaxError{Msg: msg}
}

// suggest returns the closest registered command name within edit distance 2.
func (l *Loader) suggest(word string) string {
	best, bestDist := "", 3
	for _, c := range l.commands {
		if d := levenshtein.ComputeDistance(word, c.name); d < bestDist {
			best, bestDist = c.name, d
		}
	}
	return best
}

// locate fills in position information of a syntax error.
func (l *Loader) locate(err error, source string, lineNo int, line string) error {
	syn, ok := err.(*domain.SyntaxError)
	if !ok {
		return &domain.SyntaxError{Source: source, Line: lineNo, Text: line, Msg: "invalid instruction", Cause: err}
	}
	located := *syn
	located.Source, located.Line, located.Text = source, lineNo, line
	return &located
}

// step decorates a parsed gesture with its origin for hooks, logs and error context.
type step struct {
	command string
	source  string
	line    int
	gesture Gesture
}

// Command returns the instruction keyword of the step.
func (st *step) Command() string { return st.command }

// Line returns the 1-based line number of the step.
func (st *step) Line() int { return st.line }

// Unwrap returns the decorated gesture.
func (st *step) Unwrap() Gesture { return st.gesture }

// References forwards to the decorated gesture when it loads other scripts.
func (st *step) References() []string {
	if r, ok := st.gesture.(Referrer); ok {
		return r.References()
	}
	return nil
}

func (st *step) Play(ctx context.Context, s *Script, surface ports.Surface) error {
	hooks := s.loader.hooks
	ev := &domain.GestureEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventGesture, Source: st.source},
		Command:   st.command,
		Line:      st.line,
	}
	if hooks.OnGesture != nil {
		hooks.OnGesture(ctx, ev)
	}
	s.loader.logger.Debug("gesture", "command", st.command, "source", st.source, "line", st.line)

	start := time.Now()
	err := st.gesture.Play(ctx, s, surface)
	if err != nil {
		err = fmt.Errorf("%s:%d: %s: %w", st.source, st.line, st.command, err)
	}

	if hooks.OnGestureDone != nil {
		done := *ev
		done.Type = domain.EventGestureDone
		done.Timestamp = time.Now()
		done.Duration = time.Since(start)
		done.Err = err
		hooks.OnGestureDone(ctx, &done)
	}
	return err
}
