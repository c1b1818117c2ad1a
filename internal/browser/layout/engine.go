// internal/browser/layout/engine.go
package layout

import (
	"fmt"
	"io"
	"math"

	"go.uber.org/zap"

	"github.com/xkilldash9x/layoutcore/internal/browser/fontmetrics"
	"github.com/xkilldash9x/layoutcore/internal/browser/markup"
	"github.com/xkilldash9x/layoutcore/internal/browser/style"
)

// Options tune a layout pass.
type Options struct {
	// BreakLongRuns splits a text run wider than its whole line into
	// fragments. When false such runs overflow the line unsplit.
	BreakLongRuns bool
	// MeasureCacheSize bounds the per-pass measurement cache.
	MeasureCacheSize int
}

// Engine runs style resolution, tree building and flow for one document at
// a time. An Engine holds no per-pass state and may run passes on several
// goroutines, provided the metrics provider is safe for concurrent use.
type Engine struct {
	styles  *style.Engine
	metrics fontmetrics.Provider
	opts    Options
	log     *zap.Logger
}

func NewEngine(styles *style.Engine, metrics fontmetrics.Provider, logger *zap.Logger, opts Options) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		styles:  styles,
		metrics: metrics,
		opts:    opts,
		log:     logger.Named("layout"),
	}
}

// Layout styles, builds and positions root for a viewport width. The
// returned tree is owned by the caller.
func (e *Engine) Layout(root *markup.Node, viewportWidth float64) (*Box, error) {
	if root == nil {
		return nil, fmt.Errorf("layout: document is nil")
	}
	if !(viewportWidth > 0) || math.IsInf(viewportWidth, 0) {
		return nil, newError(ErrMissingWidth, nil, "viewport width %v is not a positive number", viewportWidth)
	}

	metrics := fontmetrics.NewCache(e.metrics, e.opts.MeasureCacheSize)

	box, err := NewBuilder(metrics).Build(e.styles.BuildTree(root))
	if err != nil {
		return nil, err
	}
	box.moveTo(0, 0)
	box.SetWidth(viewportWidth)

	if err := e.flow(metrics).layoutBlock(box); err != nil {
		return nil, err
	}

	hits, misses := metrics.Stats()
	e.log.Debug("layout pass complete",
		zap.Float64("viewport_width", viewportWidth),
		zap.Float64("document_height", box.Height),
		zap.Uint64("measure_hits", hits),
		zap.Uint64("measure_misses", misses))
	return box, nil
}

// Load parses an HTML document and strips its source formatting, deciding
// inline runs with this engine's stylesheets. The returned document is
// ready for any number of concurrent Layout passes.
func (e *Engine) Load(r io.Reader) (*markup.Document, error) {
	doc, err := markup.Parse(r)
	if err != nil {
		return nil, err
	}
	e.styles.NormalizeWhitespace(doc.Root)
	return doc, nil
}

// LayoutTree positions a tree produced by a Builder. The caller places the
// root and assigns its width with SetWidth first.
func (e *Engine) LayoutTree(root *Box) error {
	if root == nil {
		return fmt.Errorf("layout: tree is nil")
	}
	if !root.widthResolved {
		return newError(ErrMissingWidth, root, "root width must be assigned with SetWidth before layout")
	}
	root.moveTo(root.X, root.Y)
	return e.flow(e.metrics).layoutBlock(root)
}

func (e *Engine) flow(metrics fontmetrics.Provider) *flow {
	return &flow{
		metrics:       metrics,
		breakLongRuns: e.opts.BreakLongRuns,
		log:           e.log,
	}
}
