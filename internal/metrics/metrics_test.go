package metrics_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aretw0/marionette/internal/metrics"
	"github.com/aretw0/marionette/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, h http.Handler) string {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

func TestCollector_Hooks(t *testing.T) {
	c := metrics.New()
	hooks := c.Hooks()
	ctx := context.Background()

	hooks.OnMacroEnter(ctx, &domain.MacroEvent{Macro: "login"})
	hooks.OnMacroEnter(ctx, &domain.MacroEvent{})
	hooks.OnGesture(ctx, &domain.GestureEvent{Command: "delay"})
	hooks.OnGestureDone(ctx, &domain.GestureEvent{Command: "delay", Duration: 10 * time.Millisecond})
	hooks.OnGesture(ctx, &domain.GestureEvent{Command: "set"})
	hooks.OnGestureDone(ctx, &domain.GestureEvent{Command: "set", Err: errors.New("boom")})

	body := scrape(t, c.Handler())
	assert.Contains(t, body, `marionette_macro_plays_total{macro="login"} 1`)
	assert.Contains(t, body, `marionette_macro_plays_total{macro="(first)"} 1`)
	assert.Contains(t, body, `marionette_gestures_total{command="delay"} 1`)
	assert.Contains(t, body, `marionette_gesture_errors_total{command="set"} 1`)
	assert.Contains(t, body, `marionette_gesture_duration_seconds_count{command="delay"} 1`)
	assert.NotContains(t, body, `marionette_gesture_errors_total{command="delay"}`)
}

func TestCollector_Healthz(t *testing.T) {
	rec := httptest.NewRecorder()
	metrics.New().Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
