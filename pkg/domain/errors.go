package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrSyntax is returned for grammar violations: unknown commands, wrong arity,
	// unknown operators or malformed parameters.
	ErrSyntax = errors.New("syntax error")

	// ErrRecursionExceeded is returned when nested macro playback reaches the guard limit.
	ErrRecursionExceeded = errors.New("recursion limit exceeded")

	// ErrNotFound is returned when a variable, image or macro does not exist.
	ErrNotFound = errors.New("not found")

	// ErrArithmetic is returned for division or modulo by zero.
	ErrArithmetic = errors.New("arithmetic error")

	// ErrIO is returned when a Location cannot be opened or read.
	ErrIO = errors.New("io error")

	// ErrDecode is returned when image bytes cannot be decoded.
	ErrDecode = errors.New("decode error")

	// ErrInvalidArgument is returned when an argument is outside its accepted domain.
	ErrInvalidArgument = errors.New("invalid argument")
)

// SyntaxError describes a grammar violation.
// Source and Line are filled in by the loader; evaluator errors leave them empty.
type SyntaxError struct {
	Source string
	Line   int
	Text   string
	Msg    string
	Cause  error
}

// NewSyntaxError creates a SyntaxError without position information.
func NewSyntaxError(format string, args ...any) *SyntaxError {
	return &SyntaxError{Msg: fmt.Sprintf(format, args...)}
}

func (e *SyntaxError) Error() string {
	msg := e.Msg
	if e.Text != "" {
		msg = fmt.Sprintf("%s in %q", msg, e.Text)
	}
	if e.Source != "" || e.Line > 0 {
		msg = fmt.Sprintf("%s:%d: %s", e.Source, e.Line, msg)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return "syntax error: " + msg
}

// Unwrap exposes ErrSyntax and, when present, the underlying cause.
func (e *SyntaxError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrSyntax}
	}
	return []error{ErrSyntax, e.Cause}
}

// ExitError is raised by the exit command to stop playback.
// Drivers treat it as a clean termination with the given status code.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit requested (code %d)", e.Code)
}

// IsExit reports whether err carries an exit request and returns its code.
func IsExit(err error) (int, bool) {
	var exit *ExitError
	if errors.As(err, &exit) {
		return exit.Code, true
	}
	return 0, false
}
