// Package metrics exposes playback counters to Prometheus through lifecycle hooks.
package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/marionette/pkg/domain"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the playback metrics of one process.
type Collector struct {
	registry      *prometheus.Registry
	macroPlays    *prometheus.CounterVec
	gestures      *prometheus.CounterVec
	gestureErrors *prometheus.CounterVec
	duration      *prometheus.HistogramVec
}

// New creates a collector with its own registry.
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		macroPlays: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marionette_macro_plays_total",
				Help: "Total number of macro playbacks started",
			},
			[]string{"macro"},
		),
		gestures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marionette_gestures_total",
				Help: "Total number of gestures executed",
			},
			[]string{"command"},
		),
		gestureErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marionette_gesture_errors_total",
				Help: "Total number of gestures that failed",
			},
			[]string{"command"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "marionette_gesture_duration_seconds",
				Help:    "Duration of gesture executions",
				Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
			},
			[]string{"command"},
		),
	}
	c.registry.MustRegister(c.macroPlays, c.gestures, c.gestureErrors, c.duration)
	return c
}

// Hooks returns lifecycle hooks that record into the collector.
func (c *Collector) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnMacroEnter: func(_ context.Context, e *domain.MacroEvent) {
			name := e.Macro
			if name == "" {
				name = "(first)"
			}
			c.macroPlays.WithLabelValues(name).Inc()
		},
		OnGesture: func(_ context.Context, e *domain.GestureEvent) {
			c.gestures.WithLabelValues(e.Command).Inc()
		},
		OnGestureDone: func(_ context.Context, e *domain.GestureEvent) {
			c.duration.WithLabelValues(e.Command).Observe(e.Duration.Seconds())
			if e.Err != nil {
				c.gestureErrors.WithLabelValues(e.Command).Inc()
			}
		},
	}
}

// Handler serves the registry at /metrics.
func (c *Collector) Handler() http.Handler {
	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{}))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return r
}

// Serve exposes Handler on addr until ctx is done.
func (c *Collector) Serve(ctx context.Context, addr string, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           c.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting metrics server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
