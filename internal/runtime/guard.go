package runtime

import (
	"fmt"
	"sync"

	"github.com/aretw0/marionette/pkg/domain"
)

// DefaultRecursionLimit is the nesting bound used when no limit is configured.
const DefaultRecursionLimit = 64

// RecursionGuard is a bounded nesting counter shared by every Script of a Loader.
// It is safe for concurrent use.
type RecursionGuard struct {
	mu    sync.Mutex
	count int
	limit int
}

// NewRecursionGuard creates a guard with the given limit.
// Increment fails once the post-increment count would reach limit.
func NewRecursionGuard(limit int) *RecursionGuard {
	if limit <= 0 {
		limit = DefaultRecursionLimit
	}
	return &RecursionGuard{limit: limit}
}

// Increment enters one nesting level.
func (g *RecursionGuard) Increment() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.count+1 >= g.limit {
		return fmt.Errorf("%w: depth %d of %d", domain.ErrRecursionExceeded, g.count+1, g.limit)
	}
	g.count++
	return nil
}

// Decrement leaves one nesting level.
func (g *RecursionGuard) Decrement() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.count > 0 {
		g.count--
	}
}

// Depth returns the current nesting depth.
func (g *RecursionGuard) Depth() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.count
}

// Limit returns the configured bound.
func (g *RecursionGuard) Limit() int {
	return g.limit
}
