package compiler

import (
	"strconv"

	"github.com/aretw0/marionette/internal/runtime"
	"github.com/aretw0/marionette/pkg/domain"
)

// Commands returns the standard instruction registry in match order.
func Commands() []*runtime.Command {
	return []*runtime.Command{
		keyCommand("key_press", true, false),
		keyCommand("key_release", false, true),
		keyCommand("key_type", true, true),
		mouseMoveCommand(),
		buttonCommand("mouse_press", true, false),
		buttonCommand("mouse_release", false, true),
		buttonCommand("mouse_click", true, true),
		mouseWheelCommand(),
		delayCommand(),
		printCommand(),
		setCommand(),
		unsetCommand(),
		exitCommand(),
		loadCommand(),
		freeCommand(),
		screenshotCommand(),
		pixelCommand(),
		playCommand(),
		scanCommand(),
		waitCommand(),
	}
}

// checkIdentifier rejects names that would be read back as integer literals.
func checkIdentifier(kind, name string) error {
	if _, err := strconv.Atoi(name); err == nil {
		return domain.NewSyntaxError("%s name %q must not be a number", kind, name)
	}
	return nil
}

// resolve evaluates value tokens against the playing script.
func resolve(s *runtime.Script, tokens ...string) ([]int, error) {
	vars := s.Variables()
	out := make([]int, len(tokens))
	for i, tok := range tokens {
		v, err := vars.Value(tok)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
