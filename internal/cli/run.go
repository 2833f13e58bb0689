package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/marionette"
	"github.com/aretw0/marionette/internal/config"
	"github.com/aretw0/marionette/internal/metrics"
	"github.com/aretw0/marionette/internal/presentation/tui"
	"github.com/aretw0/marionette/pkg/domain"
	"github.com/google/uuid"
)

// RunOptions contains all the configuration for the Run command.
type RunOptions struct {
	ScriptPath string
	Macro      string
	Times      int
	Set        []string
	NoSleep    bool
	Banner     bool
}

// Run loads a script, seeds its variables and plays it on the trace surface.
// An exit instruction with code 0 ends the run without error.
func Run(ctx context.Context, cfg config.Config, opts RunOptions, stdout, stderr io.Writer) error {
	logger, err := createLogger(cfg.Log, stderr)
	if err != nil {
		return err
	}
	runID := uuid.NewString()
	logger = logger.With("run_id", runID)

	vars, err := parseAssignments(opts.Set)
	if err != nil {
		return err
	}

	if opts.Banner {
		tui.PrintBanner(stderr, marionette.Version)
	}

	hooks := createDebugHooks(logger)
	if cfg.Metrics.Addr != "" {
		collector := metrics.New()
		hooks = mergeHooks(hooks, collector.Hooks())

		metricsCtx, stop := context.WithCancel(ctx)
		defer stop()
		go func() {
			if err := collector.Serve(metricsCtx, cfg.Metrics.Addr, logger); err != nil {
				logger.Error("Metrics server failed", "err", err)
			}
		}()
	}

	src, err := openSource(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer src.Close()

	if locker := src.locker(); locker != nil && cfg.Redis.Lock {
		unlock, err := locker.Lock(ctx, "surface", cfg.Redis.LockTTL)
		if err != nil {
			return err
		}
		defer func() {
			if err := unlock(context.Background()); err != nil {
				logger.Warn("Failed to release surface lock", "err", err)
			}
		}()
	}

	engine := createEngine(cfg, logger, hooks, stdout)
	script, err := engine.Load(src.locate(opts.ScriptPath))
	if err != nil {
		return err
	}
	for name, v := range vars {
		script.Variables().Set(name, v)
	}

	surface, err := createSurface(cfg, stdout, !opts.NoSleep)
	if err != nil {
		return err
	}

	logger.Info("Run started", "script", opts.ScriptPath, "macro", opts.Macro, "times", opts.Times)
	err = engine.Run(ctx, script, surface, opts.Macro, opts.Times)

	if code, ok := domain.IsExit(err); ok {
		logger.Info("Exit requested", "code", code)
		if code == 0 {
			return nil
		}
		return err
	}
	if errors.Is(err, context.Canceled) {
		logger.Info("Run interrupted")
		return fmt.Errorf("interrupted: %w", err)
	}
	if err != nil {
		return err
	}

	logger.Info("Run finished")
	return nil
}
