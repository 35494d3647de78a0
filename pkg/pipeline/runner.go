package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cfgview/pkg/cache"
	"github.com/matzehuels/cfgview/pkg/cfg"
	"github.com/matzehuels/cfgview/pkg/diagram"
	"github.com/matzehuels/cfgview/pkg/layout"
	"github.com/matzehuels/cfgview/pkg/observability"
	"github.com/matzehuels/cfgview/pkg/render/block"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for its collaborators. Each Execute call
// builds its own block container, so multiple goroutines can share one
// Runner as long as Engine and Measurer are safe for concurrent use.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// Engine lays functions out. Defaults to Graphviz.
	Engine layout.Engine

	// Measurer sizes blocks. Nil builds a font measurer per run at the
	// requested font size.
	Measurer block.Measurer
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		Engine: layout.NewGraphviz(logger),
	}
}

// Execute runs the complete parse → materialize → layout → render pipeline
// on a compile result document.
//
// A document without a cfg yields a Result with Skipped set and no error.
func (r *Runner) Execute(ctx context.Context, data []byte, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		CFGHash:   cache.Hash(data),
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Parse
	parseStart := time.Now()
	parsed, ok, err := Parse(data, opts.Function)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	result.Stats.ParseTime = time.Since(parseStart)
	if !ok {
		r.Logger.Info("no cfg in compile result, nothing to draw")
		result.Skipped = true
		return result, nil
	}
	result.Function = parsed.Name
	result.Dropped = parsed.Result.Dropped
	for _, d := range result.Dropped {
		r.Logger.Warn("dropped edge", "function", d.Function, "from", d.Edge.From, "to", d.Edge.To, "reason", d.Reason)
	}

	r.Logger.Info("parsed cfg",
		"functions", parsed.Result.Len(),
		"function", parsed.Name,
		"nodes", len(parsed.Function.Nodes),
		"edges", len(parsed.Function.Edges))

	// Stage 2: Materialize
	measurer, err := r.measurer(opts)
	if err != nil {
		return nil, err
	}
	container := block.NewContainer()
	materializeStart := time.Now()
	if err := Materialize(ctx, container, parsed.Name, parsed.Function, measurer); err != nil {
		return nil, err
	}
	result.Stats.MaterializeTime = time.Since(materializeStart)

	// Stage 3: Layout
	layoutStart := time.Now()
	d, layoutHit, err := r.LayoutWithCacheInfo(ctx, parsed.Name, parsed.Function, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Diagram = d
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.BlockCount = len(d.Blocks)
	result.Stats.EdgeCount = d.EdgeCount()
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"blocks", len(d.Blocks),
		"size", fmt.Sprintf("%.0fx%.0f", d.Width, d.Height),
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 4: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, d, container, parsed.Name, parsed.Function, lineHeight(measurer), opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LayoutWithCacheInfo lays out a materialized function with caching and
// returns cache hit info. The key covers the sized function, so a font
// change is a miss.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, name string, fn *cfg.Function, opts Options) (diagram.Diagram, bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return diagram.Diagram{}, false, err
	}

	fnHash, err := cache.HashJSON(fn)
	if err != nil {
		return diagram.Diagram{}, false, fmt.Errorf("layout cache key: %w", err)
	}
	engine := r.engine()
	cacheKey := r.Keyer.LayoutKey(fnHash, opts.LayoutKeyOpts(name, engineName(engine)))
	hooks := observability.Cache()

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if cached, err := diagram.Unmarshal(data); err == nil {
				hooks.OnCacheHit(ctx, cacheKey)
				return cached, true, nil
			}
			// If deserialization fails, fall through to recompute
		}
		hooks.OnCacheMiss(ctx, cacheKey)
	}

	d, err := GenerateLayout(ctx, engine, fn)
	if err != nil {
		return diagram.Diagram{}, false, err
	}

	if data, err := diagram.Marshal(d); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout); err != nil {
			r.Logger.Debug("cache layout failed", "error", err)
		} else {
			hooks.OnCacheSet(ctx, cacheKey, len(data))
		}
	}
	return d, false, nil
}

// RenderWithCacheInfo generates artifacts with caching and returns cache
// hit info. Artifacts are served from cache only when every requested
// format is present.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, d diagram.Diagram, c *block.Container, name string, fn *cfg.Function, lineHeight float64, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	layoutData, err := diagram.Marshal(d)
	if err != nil {
		return nil, false, fmt.Errorf("serialize diagram for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)
	hooks := observability.Cache()

	if !opts.Refresh {
		artifacts := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(layoutHash, r.artifactKeyOpts(name, format, opts))
			data, hit, err := r.Cache.Get(ctx, cacheKey)
			if err != nil || !hit {
				hooks.OnCacheMiss(ctx, cacheKey)
				break
			}
			hooks.OnCacheHit(ctx, cacheKey)
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	rendered, err := Render(ctx, d, c, name, fn, lineHeight, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, r.artifactKeyOpts(name, format, opts))
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact); err != nil {
			r.Logger.Debug("cache artifact failed", "format", format, "error", err)
			continue
		}
		hooks.OnCacheSet(ctx, cacheKey, len(data))
	}
	return rendered, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// artifactKeyOpts keys artifacts by title as well, since the diagram alone
// does not name its function.
func (r *Runner) artifactKeyOpts(name, format string, opts Options) cache.ArtifactKeyOpts {
	k := opts.ArtifactKeyOpts(format)
	k.Title = opts.Title
	if k.Title == "" {
		k.Title = "CFG " + name
	}
	return k
}

func (r *Runner) engine() layout.Engine {
	if r.Engine == nil {
		return layout.NewGraphviz(r.Logger)
	}
	return r.Engine
}

func (r *Runner) measurer(opts Options) (block.Measurer, error) {
	if r.Measurer != nil {
		return r.Measurer, nil
	}
	m, err := block.NewFontMeasurer(opts.FontSize, block.DefaultBox)
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	return m, nil
}

func lineHeight(m block.Measurer) float64 {
	if lh, ok := m.(interface{ LineHeight() float64 }); ok {
		return lh.LineHeight()
	}
	return 0
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
