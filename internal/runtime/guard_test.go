package runtime_test

import (
	"testing"

	"github.com/aretw0/marionette/internal/runtime"
	"github.com/aretw0/marionette/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecursionGuard_FailsOnLimitthIncrement(t *testing.T) {
	g := runtime.NewRecursionGuard(4)
	for i := 1; i < 4; i++ {
		require.NoError(t, g.Increment(), "increment %d", i)
	}
	assert.ErrorIs(t, g.Increment(), domain.ErrRecursionExceeded)
	assert.Equal(t, 3, g.Depth(), "failed increment leaves the count untouched")

	for range 3 {
		g.Decrement()
	}
	assert.Zero(t, g.Depth())
}

func TestRecursionGuard_Defaults(t *testing.T) {
	g := runtime.NewRecursionGuard(0)
	assert.Equal(t, runtime.DefaultRecursionLimit, g.Limit())

	g.Decrement()
	assert.Zero(t, g.Depth(), "decrement never goes below zero")
}
