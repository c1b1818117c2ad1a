// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/xkilldash9x/layoutcore/internal/browser/fontmetrics"
	"github.com/xkilldash9x/layoutcore/internal/browser/layout"
	"github.com/xkilldash9x/layoutcore/internal/browser/markup"
	"github.com/xkilldash9x/layoutcore/internal/browser/paint"
	"github.com/xkilldash9x/layoutcore/internal/browser/style"
	"github.com/xkilldash9x/layoutcore/internal/config"
)

// Result is everything one layout pass produces.
type Result struct {
	PassID  string                   `json:"pass_id"`
	Width   float64                  `json:"width"`
	Root    *layout.Box              `json:"-"`
	Display paint.DisplayList        `json:"display"`
	Regions []layout.ClickableRegion `json:"regions"`
}

// Renderer turns markup into display lists and clickable regions. A
// Renderer is safe for concurrent use.
type Renderer struct {
	engine        *layout.Engine
	metrics       fontmetrics.Provider
	maxConcurrent int
	logger        *zap.Logger
}

// NewRenderer wraps a configured layout engine. maxConcurrent bounds
// RenderWidths; values below one mean one pass at a time.
func NewRenderer(engine *layout.Engine, logger *zap.Logger, maxConcurrent int) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renderer{
		engine:        engine,
		maxConcurrent: max(maxConcurrent, 1),
		logger:        logger.Named("pipeline"),
	}
}

// NewFromConfig assembles the style resolver, metrics provider and layout
// engine described by cfg.
func NewFromConfig(cfg config.LayoutConfig, logger *zap.Logger) (*Renderer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var sheets []string
	if cfg.UserStylesheet != "" {
		css, err := os.ReadFile(cfg.UserStylesheet)
		if err != nil {
			return nil, fmt.Errorf("failed to read user stylesheet: %w", err)
		}
		sheets = append(sheets, string(css))
	}
	resolver, err := style.NewResolver(logger, sheets...)
	if err != nil {
		return nil, fmt.Errorf("failed to load stylesheets: %w", err)
	}

	metrics, err := NewProvider(cfg)
	if err != nil {
		return nil, err
	}

	engine := layout.NewEngine(style.NewEngine(resolver), metrics, logger, layout.Options{
		BreakLongRuns:    cfg.BreakLongRuns,
		MeasureCacheSize: cfg.MeasureCacheSize,
	})
	r := NewRenderer(engine, logger, cfg.MaxConcurrentPasses)
	r.metrics = metrics
	r.logger.Debug("renderer ready",
		zap.String("font_provider", cfg.FontProvider),
		zap.String("font_family", cfg.FontFamily),
		zap.Bool("user_stylesheet", cfg.UserStylesheet != ""))
	return r, nil
}

// NewProvider creates the font metrics provider named by cfg.
func NewProvider(cfg config.LayoutConfig) (fontmetrics.Provider, error) {
	switch cfg.FontProvider {
	case config.FontProviderCore, "":
		return fontmetrics.NewCoreProvider(cfg.FontFamily)
	case config.FontProviderOpenType:
		return fontmetrics.NewOpenTypeProvider()
	default:
		return nil, fmt.Errorf("unknown font provider %q", cfg.FontProvider)
	}
}

// Engine returns the layout engine passes run on.
func (r *Renderer) Engine() *layout.Engine { return r.engine }

// Close releases the metrics provider, if it holds resources.
func (r *Renderer) Close() error {
	if c, ok := r.metrics.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Render runs one complete layout pass at the given viewport width.
func (r *Renderer) Render(ctx context.Context, doc *markup.Node, width float64) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	passID := uuid.NewString()
	logger := r.logger.With(zap.String("pass_id", passID), zap.Float64("width", width))
	start := time.Now()

	root, err := r.engine.Layout(doc, width)
	if err != nil {
		logger.Warn("layout pass failed", zap.Error(err))
		return nil, fmt.Errorf("layout pass %s: %w", passID, err)
	}
	if err := layout.Validate(root); err != nil {
		logger.Error("layout produced an invalid tree", zap.Error(err))
		return nil, fmt.Errorf("layout pass %s: %w", passID, err)
	}

	res := &Result{
		PassID:  passID,
		Width:   width,
		Root:    root,
		Display: paint.NewDisplayList(root),
		Regions: layout.ClickableRegions(root),
	}
	logger.Info("layout pass complete",
		zap.Float64("height", root.Height),
		zap.Int("commands", len(res.Display.Commands)),
		zap.Int("regions", len(res.Regions)),
		zap.Duration("duration", time.Since(start)))
	return res, nil
}

// RenderWidths lays the same document out once per width, concurrently.
// Results are in the order of widths. The first failure cancels the
// remaining passes.
func (r *Renderer) RenderWidths(ctx context.Context, doc *markup.Node, widths []float64) ([]*Result, error) {
	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(r.maxConcurrent)

	results := make([]*Result, len(widths))
	for i, w := range widths {
		g.Go(func() error {
			res, err := r.Render(groupCtx, doc, w)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// RenderOrFallback renders doc and, when layout fails, renders an error
// page describing the failure instead. The layout error is returned
// alongside the fallback result.
func (r *Renderer) RenderOrFallback(ctx context.Context, doc *markup.Node, width float64) (*Result, error) {
	res, err := r.Render(ctx, doc, width)
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return res, err
	}

	fallback, ferr := r.Render(ctx, ErrorDocument(err), width)
	if ferr != nil {
		return nil, multierr.Append(err, ferr)
	}
	return fallback, err
}

// ErrorDocument builds the page shown in place of a document that could not
// be laid out.
func ErrorDocument(err error) *markup.Node {
	return markup.NewElement("body", nil,
		markup.NewElement("h1", nil, markup.NewText("This page could not be displayed")),
		markup.NewElement("p", nil, markup.NewText(err.Error())),
	)
}
