package validator

import (
	"fmt"
	"strings"

	"github.com/aretw0/marionette/internal/runtime"
	"github.com/aretw0/marionette/pkg/ports"
)

// Error aggregates every problem found while crawling a script graph.
type Error struct {
	Problems []error
	// Failed lists the locations of the scripts that could not be loaded.
	Failed []string
}

func (e *Error) Error() string {
	lines := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		lines[i] = p.Error()
	}
	return fmt.Sprintf("found %d errors:\n- %s", len(e.Problems), strings.Join(lines, "\n- "))
}

// Unwrap exposes the individual problems to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	return e.Problems
}

// Crawl loads root and every script statically referenced from it, breadth-first.
// References are the locators named by play and scan instructions; variable
// bindings are ignored. Scripts that fail to load are reported, not returned.
func Crawl(loader *runtime.Loader, root ports.Location) ([]*runtime.Script, error) {
	visited := make(map[string]bool)
	queue := []ports.Location{root}

	var (
		scripts  []*runtime.Script
		problems []error
		failed   []string
	)

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if visited[current.String()] {
			continue
		}
		visited[current.String()] = true

		s, err := loader.LoadScript(current)
		if err != nil {
			problems = append(problems, err)
			failed = append(failed, current.String())
			continue
		}
		scripts = append(scripts, s)

		for _, m := range s.Macros() {
			for _, g := range m.Gestures() {
				r, ok := g.(runtime.Referrer)
				if !ok {
					continue
				}
				for _, ref := range r.References() {
					next := current.Refer(ref)
					if !visited[next.String()] {
						queue = append(queue, next)
					}
				}
			}
		}
	}

	if len(problems) > 0 {
		return scripts, &Error{Problems: problems, Failed: failed}
	}
	return scripts, nil
}

// ValidateScript checks that root and every script it references parse cleanly.
func ValidateScript(loader *runtime.Loader, root ports.Location) error {
	_, err := Crawl(loader, root)
	return err
}
