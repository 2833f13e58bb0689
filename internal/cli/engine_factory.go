package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/marionette"
	"github.com/aretw0/marionette/internal/config"
	"github.com/aretw0/marionette/pkg/adapters/file"
	"github.com/aretw0/marionette/pkg/adapters/redis"
	"github.com/aretw0/marionette/pkg/adapters/trace"
	"github.com/aretw0/marionette/pkg/domain"
	"github.com/aretw0/marionette/pkg/ports"
)

// createEngine initializes an engine with standard CLI conventions.
func createEngine(cfg config.Config, logger *slog.Logger, hooks domain.LifecycleHooks, output io.Writer) *marionette.Engine {
	return marionette.New(
		marionette.WithLogger(logger),
		marionette.WithLifecycleHooks(hooks),
		marionette.WithOutput(output),
		marionette.WithRecursionLimit(cfg.RecursionLimit),
		marionette.WithWaitInterval(cfg.WaitInterval),
	)
}

// source resolves script paths either on disk or in Redis.
type source struct {
	repo *redis.Repository
}

// openSource connects to Redis when configured; otherwise scripts come from the filesystem.
func openSource(ctx context.Context, cfg config.RedisConfig) (*source, error) {
	if cfg.Addr == "" {
		return &source{}, nil
	}
	repo := redis.New(cfg.Addr, cfg.Password, cfg.DB, redis.WithPrefix(cfg.Prefix))
	if err := repo.Ping(ctx); err != nil {
		_ = repo.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}
	return &source{repo: repo}, nil
}

func (s *source) locate(path string) ports.Location {
	if s.repo != nil {
		return s.repo.Locate(path)
	}
	return file.New(path)
}

// locker returns the cross-process surface lock, or nil for filesystem scripts.
func (s *source) locker() ports.Locker {
	if s.repo != nil {
		return s.repo
	}
	return nil
}

func (s *source) Close() error {
	if s.repo != nil {
		return s.repo.Close()
	}
	return nil
}

// createSurface builds the trace surface, optionally backed by a screen image.
func createSurface(cfg config.Config, w io.Writer, sleep bool) (ports.Surface, error) {
	var opts []trace.Option
	if cfg.Screen != "" {
		screen, err := trace.LoadScreen(cfg.Screen)
		if err != nil {
			return nil, err
		}
		opts = append(opts, trace.WithScreen(screen))
	}
	if !sleep {
		opts = append(opts, trace.WithoutSleep())
	}
	return trace.New(w, opts...), nil
}
