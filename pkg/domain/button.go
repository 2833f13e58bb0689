package domain

import (
	"fmt"
	"strings"
)

// Button represents a mouse button.
type Button uint8

const (
	// ButtonNone indicates no button.
	ButtonNone Button = iota
	// ButtonLeft is the primary (left) mouse button.
	ButtonLeft
	// ButtonMiddle is the middle mouse button (scroll wheel click).
	ButtonMiddle
	// ButtonRight is the secondary (right) mouse button.
	ButtonRight
)

// String returns a string representation of the button.
func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonMiddle:
		return "middle"
	case ButtonRight:
		return "right"
	default:
		return "none"
	}
}

// ButtonFromName parses "1", "BUTTON1", "left" (and the middle/right equivalents).
func ButtonFromName(name string) (Button, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "1", "button1", "left":
		return ButtonLeft, nil
	case "2", "button2", "middle":
		return ButtonMiddle, nil
	case "3", "button3", "right":
		return ButtonRight, nil
	}
	return ButtonNone, fmt.Errorf("%w: unknown mouse button %q", ErrInvalidArgument, name)
}
