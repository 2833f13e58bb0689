package runtime

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/marionette/pkg/domain"
)

// Args holds the parameters of one instruction line.
type Args struct {
	// Fields are the whitespace-separated tokens following the command name.
	Fields []string
	// Rest is the verbatim remainder of the line after the command name.
	Rest string
}

// Builder validates the parameters of a command and captures them in a Gesture.
type Builder func(args Args) (Gesture, error)

// Command recognizes and parses one line-shaped instruction.
// Max < 0 means the parameter count is unbounded.
type Command struct {
	name  string
	min   int
	max   int
	build Builder
}

// NewCommand creates a recognizer for name accepting between min and max parameters.
func NewCommand(name string, min, max int, build Builder) *Command {
	return &Command{name: name, min: min, max: max, build: build}
}

// Name returns the command keyword.
func (c *Command) Name() string { return c.name }

// Arity returns the inclusive parameter range.
func (c *Command) Arity() (min, max int) { return c.min, c.max }

// Supports reports whether the first token of line is the command name.
func (c *Command) Supports(line string) bool {
	fields := strings.Fields(line)
	return len(fields) > 0 && fields[0] == c.name
}

// Parse validates line and builds its Gesture.
// Every failure is reported as a *domain.SyntaxError.
func (c *Command) Parse(line string) (Gesture, error) {
	trimmed := strings.TrimLeft(line, " \t")
	fields := strings.Fields(trimmed)
	if len(fields) == 0 || fields[0] != c.name {
		return nil, domain.NewSyntaxError("line is not a %s instruction", c.name)
	}
	params := fields[1:]

	if len(params) < c.min || (c.max >= 0 && len(params) > c.max) {
		return nil, domain.NewSyntaxError("%s expects %s, got %d", c.name, c.arityText(), len(params))
	}

	rest := strings.TrimLeft(trimmed[len(c.name):], " \t")
	g, err := c.build(Args{Fields: params, Rest: rest})
	if err != nil {
		var syn *domain.SyntaxError
		if errors.As(err, &syn) {
			return nil, err
		}
		return nil, &domain.SyntaxError{Msg: "invalid " + c.name + " parameters", Cause: err}
	}
	return g, nil
}

func (c *Command) arityText() string {
	switch {
	case c.max < 0:
		return fmt.Sprintf("at least %d parameter(s)", c.min)
	case c.min == c.max:
		return fmt.Sprintf("%d parameter(s)", c.min)
	default:
		return fmt.Sprintf("between %d and %d parameters", c.min, c.max)
	}
}
