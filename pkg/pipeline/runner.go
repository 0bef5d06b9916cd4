package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/wordsphere/pkg/cache"
	"github.com/matzehuels/wordsphere/pkg/cloud"
	"github.com/matzehuels/wordsphere/pkg/errors"
	"github.com/matzehuels/wordsphere/pkg/observability"
)

// Analyzer fetches weighted keywords for an article. *analysis.Client
// implements it.
type Analyzer interface {
	Analyze(ctx context.Context, url string, refresh bool) ([]cloud.WordItem, error)
}

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for its collaborators - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Analyzer Analyzer
	Cache    cache.Cache
	Keyer    cache.Keyer
	Logger   *log.Logger
}

// NewRunner creates a runner.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
// A nil analyzer is allowed when callers always supply word lists.
func NewRunner(a Analyzer, c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
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
		Analyzer: a,
		Cache:    c,
		Keyer:    keyer,
		Logger:   logger,
	}
}

// Execute runs the complete analyze → layout → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateForAnalyze(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	result := &Result{
		SessionID: uuid.NewString(),
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Analyze
	words := opts.Words
	if words == nil {
		start := time.Now()
		var err error
		words, err = r.Analyze(ctx, opts.URL, opts.Refresh)
		if err != nil {
			return nil, fmt.Errorf("analyze: %w", err)
		}
		result.Stats.AnalyzeTime = time.Since(start)
	}
	result.Words = words
	result.Stats.WordCount = len(words)

	// Stage 2: Layout
	layoutStart := time.Now()
	snap, err := r.Layout(ctx, words, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Snapshot = snap
	result.Stats.LayoutTime = time.Since(layoutStart)
	if data, err := cloud.MarshalSnapshot(snap); err == nil {
		result.LayoutHash = cache.Hash(data)
	}

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, snap, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"session", result.SessionID,
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Analyze fetches the word list for url through the configured Analyzer.
func (r *Runner) Analyze(ctx context.Context, url string, refresh bool) ([]cloud.WordItem, error) {
	if r.Analyzer == nil {
		return nil, errors.New(errors.ErrCodeUnsupported, "no analysis service configured")
	}
	hooks := observability.Pipeline()
	hooks.OnAnalyzeStart(ctx, url)
	start := time.Now()

	words, err := r.Analyzer.Analyze(ctx, url, refresh)
	hooks.OnAnalyzeComplete(ctx, url, len(words), time.Since(start), err)
	if err != nil {
		return nil, err
	}

	r.Logger.Info("analyzed article",
		"url", url,
		"words", len(words),
		"duration", time.Since(start))
	return words, nil
}

// Layout places words on the sphere and reports the stage to the hooks.
func (r *Runner) Layout(ctx context.Context, words []cloud.WordItem, opts Options) (cloud.Snapshot, error) {
	r.applyLogger(&opts)
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, len(words))
	start := time.Now()

	snap, err := Layout(words, opts)
	hooks.OnLayoutComplete(ctx, len(words), time.Since(start), err)
	if err != nil {
		return cloud.Snapshot{}, err
	}

	r.Logger.Debug("computed layout",
		"words", len(snap.Words),
		"radius", snap.Radius,
		"duration", time.Since(start))
	return snap, nil
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, snap cloud.Snapshot, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// Compute cache key from layout data
	layoutData, err := cloud.MarshalSnapshot(snap)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	// Try to get all formats from cache
	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil || !hit {
			observability.Cache().OnCacheMiss(ctx, "artifact")
			break
		}
		observability.Cache().OnCacheHit(ctx, "artifact")
		artifacts[format] = data
	}
	if len(artifacts) == len(opts.Formats) {
		return artifacts, true, nil
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := Render(snap, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.ArtifactTTL); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, snap cloud.Snapshot, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, snap, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
