package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/marionette/internal/config"
	"github.com/aretw0/marionette/internal/logging"
	"github.com/aretw0/marionette/internal/presentation/graph"
	"github.com/aretw0/marionette/internal/presentation/tui"
	"github.com/aretw0/marionette/internal/validator"
	"github.com/aretw0/marionette/pkg/domain"
)

// InspectOptions selects the inspect output.
type InspectOptions struct {
	ScriptPath string
	Mermaid    bool
	Render     bool
}

// Inspect describes the macros of a script and of every script it references.
// Scripts that fail to load are listed after the description and make Inspect fail.
func Inspect(ctx context.Context, cfg config.Config, opts InspectOptions, w io.Writer) error {
	src, err := openSource(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer src.Close()

	engine := createEngine(cfg, logging.NewNop(), domain.LifecycleHooks{}, io.Discard)
	scripts, crawlErr := engine.Inspect(src.locate(opts.ScriptPath))

	if opts.Mermaid {
		var overlay *graph.Overlay
		var verr *validator.Error
		if errors.As(crawlErr, &verr) {
			overlay = &graph.Overlay{Failed: verr.Failed}
		}
		fmt.Fprint(w, graph.GenerateMermaid(scripts, overlay))
		return crawlErr
	}

	md := tui.InspectMarkdown(scripts)
	if crawlErr != nil {
		md += "\n## Problems\n\n```\n" + crawlErr.Error() + "\n```\n"
	}
	if opts.Render {
		if out, err := tui.NewRenderer()(md); err == nil {
			md = out
		}
	}
	fmt.Fprint(w, md)
	return crawlErr
}
