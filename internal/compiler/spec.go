package compiler

import (
	"context"
	"strings"

	"github.com/aretw0/marionette/internal/runtime"
	"github.com/aretw0/marionette/pkg/domain"
	"github.com/aretw0/marionette/pkg/ports"
)

// binding forwards one value token into a freshly loaded script.
type binding struct {
	name  string
	value string
}

// macroSpec addresses a macro: [location(:var=value)*][->macro].
// An empty location means the playing script.
type macroSpec struct {
	raw      string
	location string
	bindings []binding
	macro    string
}

func parseSpec(token string) (macroSpec, error) {
	spec := macroSpec{raw: token}

	locator, macro, _ := strings.Cut(token, "->")
	spec.macro = macro

	parts := strings.Split(locator, ":")
	if len(parts) > 1 && hasDrive(parts[0], parts[1]) {
		parts = append([]string{parts[0] + ":" + parts[1]}, parts[2:]...)
	}
	spec.location = parts[0]
	for _, part := range parts[1:] {
		name, value, ok := strings.Cut(part, "=")
		if !ok || name == "" || value == "" {
			return macroSpec{}, domain.NewSyntaxError("variable binding %q in %q must be name=value", part, token)
		}
		if err := checkIdentifier("variable", name); err != nil {
			return macroSpec{}, err
		}
		spec.bindings = append(spec.bindings, binding{name: name, value: value})
	}

	if spec.location == "" && len(spec.bindings) > 0 {
		return macroSpec{}, domain.NewSyntaxError("variable bindings in %q need a script location", token)
	}
	return spec, nil
}

// hasDrive reports whether head:rest is a Windows drive path such as C:/x.txt.
func hasDrive(head, rest string) bool {
	if len(head) != 1 || !strings.HasPrefix(rest, "/") && !strings.HasPrefix(rest, `\`) {
		return false
	}
	c := head[0]
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

// target returns the script the spec plays against. Cross-script targets are
// loaded fresh on every call, sharing the caller's loader.
func (sp macroSpec) target(s *runtime.Script) (*runtime.Script, error) {
	if sp.location == "" {
		return s, nil
	}

	values := make([]int, len(sp.bindings))
	for i, b := range sp.bindings {
		v, err := s.Variables().Value(b.value)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}

	next, err := s.Loader().LoadScript(s.Location().Refer(sp.location))
	if err != nil {
		return nil, err
	}
	for i, b := range sp.bindings {
		next.Variables().Set(b.name, values[i])
	}
	return next, nil
}

func (sp macroSpec) play(ctx context.Context, s *runtime.Script, surface ports.Surface, times int) error {
	target, err := sp.target(s)
	if err != nil {
		return err
	}
	if sp.macro == "" {
		return target.Play(ctx, surface, times)
	}
	return target.PlayMacro(ctx, surface, sp.macro, times)
}

func (sp macroSpec) references() []string {
	if sp.location == "" {
		return nil
	}
	return []string{sp.location}
}
