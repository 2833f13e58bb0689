package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/aretw0/marionette/internal/config"
	"github.com/aretw0/marionette/internal/logging"
	"github.com/aretw0/marionette/pkg/domain"
)

// Validate checks a script and every script it references.
func Validate(ctx context.Context, cfg config.Config, path string) error {
	src, err := openSource(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer src.Close()

	engine := createEngine(cfg, logging.NewNop(), domain.LifecycleHooks{}, io.Discard)
	return engine.Validate(src.locate(path))
}

func reportValidation(w io.Writer, path string, err error) {
	if err != nil {
		printSystemMessage(w, "Validation failed for '%s': %v", path, err)
		return
	}
	printSystemMessage(w, "'%s' is valid.", path)
}

// ValidateOnce runs Validate and reports the outcome to w.
func ValidateOnce(ctx context.Context, cfg config.Config, path string, w io.Writer) error {
	err := Validate(ctx, cfg, path)
	reportValidation(w, path, err)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}
