package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mindmap/pkg/cache"
	"github.com/matzehuels/mindmap/pkg/errors"
	"github.com/matzehuels/mindmap/pkg/mindmap"
	"github.com/matzehuels/mindmap/pkg/observability"
	"github.com/matzehuels/mindmap/pkg/text"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache, logger and its measurers;
// it doesn't store pipeline results. Multiple goroutines can safely use the
// same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL overrides TTLLayout and TTLArtifact when positive.
	TTL time.Duration

	mu        sync.Mutex
	measurers map[string]text.Measurer
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
		Cache:     c,
		Keyer:     keyer,
		Logger:    logger,
		measurers: make(map[string]text.Measurer),
	}
}

// UseMeasurer registers m under name, replacing the built-in measurer of
// that name. Tests use it to inject deterministic widths.
func (r *Runner) UseMeasurer(name string, m text.Measurer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.measurers[name] = m
}

// measurer returns the shared measurer for name, creating it on first use.
// FontMeasurer caches font faces internally and is safe for concurrent use.
func (r *Runner) measurer(name string) (text.Measurer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.measurers[name]; ok {
		return m, nil
	}
	m, err := NewMeasurer(name)
	if err != nil {
		return nil, err
	}
	r.measurers[name] = m
	return m, nil
}

// Execute runs the complete layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, data any, opts Options) (*Result, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid options")
	}
	if err := opts.ValidateForRender(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid options")
	}
	r.applyLogger(&opts)

	result := &Result{Warnings: opts.Warnings()}
	for _, w := range result.Warnings {
		r.Logger.Warn(w)
	}

	// Stage 1: Layout
	layoutStart := time.Now()
	l, hash, layoutHit, err := r.layout(ctx, data, opts)
	if err != nil {
		return nil, err
	}
	result.Layout = l
	result.InputHash = hash
	result.Stats.PlacedCount = len(l.Nodes)
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"nodes", len(l.Nodes),
		"mode", l.Mode,
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		return nil, err
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

// LayoutWithCacheInfo lays out data with caching and returns cache hit info.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, data any, opts Options) (*mindmap.Layout, bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid options")
	}
	r.applyLogger(&opts)
	l, _, hit, err := r.layout(ctx, data, opts)
	return l, hit, err
}

// Layout is a convenience wrapper that calls LayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, data any, opts Options) (*mindmap.Layout, error) {
	l, _, err := r.LayoutWithCacheInfo(ctx, data, opts)
	return l, err
}

func (r *Runner) layout(ctx context.Context, data any, opts Options) (*mindmap.Layout, string, bool, error) {
	inputHash, err := cache.HashJSON(data)
	if err != nil {
		return nil, "", false, errors.Wrap(errors.ErrCodeInvalidInput, err, "hash input")
	}
	cacheKey := r.Keyer.LayoutKey(inputHash, opts.LayoutKeyOpts())

	if !opts.Refresh {
		if cached, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if l, err := mindmap.UnmarshalLayout(cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return l, inputHash, true, nil
			}
			// If deserialization fails, fall through to recompute
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	m, err := r.measurer(opts.Measurer)
	if err != nil {
		return nil, "", false, errors.Wrap(errors.ErrCodeInternal, err, "create %s measurer", opts.Measurer)
	}

	mode := string(opts.Layout.Mode)
	start := time.Now()
	observability.Layout().OnLayoutStart(ctx, mode, 0)
	l, err := GenerateLayout(data, m, opts)
	placed := 0
	if l != nil {
		placed = len(l.Nodes)
	}
	observability.Layout().OnLayoutComplete(ctx, mode, placed, time.Since(start), err)
	if err != nil {
		return nil, "", false, err
	}

	if encoded, err := mindmap.MarshalLayout(l); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, encoded, r.ttl(TTLLayout)); err != nil {
			r.Logger.Warn("cache layout", "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "layout", len(encoded))
		}
	}
	return l, inputHash, false, nil
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l *mindmap.Layout, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid options")
	}
	r.applyLogger(&opts)

	layoutData, err := mindmap.MarshalLayout(l)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	artifacts := make(map[string][]byte, len(opts.Formats))
	allCached := true
	for _, format := range opts.Formats {
		if _, done := artifacts[format]; done {
			continue
		}
		key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "artifact")
				artifacts[format] = data
				continue
			}
			observability.Cache().OnCacheMiss(ctx, "artifact")
		}
		allCached = false

		start := time.Now()
		observability.Layout().OnRenderStart(ctx, format)
		data, err := RenderFormat(ctx, l, format, opts, artifacts)
		observability.Layout().OnRenderComplete(ctx, format, len(data), time.Since(start), err)
		if err != nil {
			return nil, false, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data

		if err := r.Cache.Set(ctx, key, data, r.ttl(TTLArtifact)); err != nil {
			r.Logger.Warn("cache artifact", "format", format, "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}
	return artifacts, allCached, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, l *mindmap.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, opts)
	return artifacts, err
}

// Close releases resources held by the runner (the cache and any font
// measurers).
func (r *Runner) Close() error {
	r.mu.Lock()
	for name, m := range r.measurers {
		if c, ok := m.(interface{ Close() error }); ok {
			_ = c.Close()
		}
		delete(r.measurers, name)
	}
	r.mu.Unlock()

	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) ttl(def time.Duration) time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return def
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
