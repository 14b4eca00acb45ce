package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mondrian/pkg/buildinfo"
	"github.com/matzehuels/mondrian/pkg/cache"
	"github.com/matzehuels/mondrian/pkg/core/composition"
	"github.com/matzehuels/mondrian/pkg/core/generator"
	"github.com/matzehuels/mondrian/pkg/observability"
	"github.com/matzehuels/mondrian/pkg/render/sink"
)

// Key types reported to the cache hooks.
const (
	keyTypeComposition = "composition"
	keyTypeArtifact    = "artifact"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options; every run owns its random stream.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// Effect produces compositions. Defaults to the Mondrian generator.
	Effect generator.GenerativeEffect

	// Generator identifies this build in JSON exports.
	Generator string
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
		Effect:    generator.New(),
		Generator: buildinfo.Generator(),
	}
}

// Execute runs the complete generate → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{}

	// Stage 1: Generate
	start := time.Now()
	c, hit, err := r.GenerateWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	result.Composition = c
	result.Stats.GenerateTime = time.Since(start)
	result.Stats.Primitives = len(c.Primitives)
	result.Stats.RectCount = c.RectCount
	result.CacheInfo.GenerateHit = hit

	r.Logger.Info("generated composition",
		"id", c.ID,
		"seed", c.Seed,
		"palette", c.Palette,
		"rects", c.RectCount,
		"duration", result.Stats.GenerateTime)

	// Stage 2: Render
	start = time.Now()
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, c, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(start)
	result.CacheInfo.RenderHit = hit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// GenerateWithCacheInfo generates a composition with caching and returns
// cache hit info.
func (r *Runner) GenerateWithCacheInfo(ctx context.Context, opts Options) (composition.Composition, bool, error) {
	if err := opts.ValidateForGenerate(); err != nil {
		return composition.Composition{}, false, err
	}
	if err := ctx.Err(); err != nil {
		return composition.Composition{}, false, err
	}
	r.applyLogger(&opts)
	hooks := observability.Pipeline()

	if opts.Cacheable() {
		id := generator.CompositionID(opts.Config)
		if c, err := r.Lookup(ctx, id); err == nil {
			r.Logger.Debug("composition cache hit", "id", id)
			return c, true, nil
		}
	}

	hooks.OnGenerateStart(ctx, opts.Palette, opts.Seed)
	start := time.Now()
	c := r.Effect.Generate(opts.Config)
	hooks.OnGenerateComplete(ctx, c.Palette, c.RectCount, time.Since(start))

	if c.ID != "" {
		if data, err := sink.RenderJSON(c, sink.WithJSONCompact()); err == nil {
			r.store(ctx, keyTypeComposition, r.Keyer.CompositionKey(c.ID), data, cache.TTLComposition)
		}
	}
	return c, false, nil
}

// Generate is a convenience wrapper that calls GenerateWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Generate(ctx context.Context, opts Options) (composition.Composition, error) {
	c, _, err := r.GenerateWithCacheInfo(ctx, opts)
	return c, err
}

// Lookup returns the cached composition with the given ID, or
// [cache.ErrCacheMiss].
func (r *Runner) Lookup(ctx context.Context, id string) (composition.Composition, error) {
	data, hit, err := r.Cache.Get(ctx, r.Keyer.CompositionKey(id))
	if err != nil {
		r.Logger.Warn("cache read failed", "key_type", keyTypeComposition, "err", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, keyTypeComposition)
		return composition.Composition{}, cache.ErrCacheMiss
	}
	c, err := sink.ReadJSON(data)
	if err != nil {
		observability.Cache().OnCacheMiss(ctx, keyTypeComposition)
		return composition.Composition{}, cache.ErrCacheMiss
	}
	observability.Cache().OnCacheHit(ctx, keyTypeComposition)
	return c, nil
}

// RenderWithCacheInfo renders c in every requested format with caching and
// returns whether all artifacts came from cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, c composition.Composition, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		if c.ID == "" || opts.Refresh {
			missing = append(missing, format)
			continue
		}
		key := r.Keyer.ArtifactKey(c.ID, opts.ArtifactKeyOpts(format, r.Generator))
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, keyTypeArtifact)
			artifacts[format] = data
			continue
		}
		observability.Cache().OnCacheMiss(ctx, keyTypeArtifact)
		missing = append(missing, format)
	}

	if len(missing) == 0 {
		return artifacts, true, nil // All artifacts from cache
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, missing)
	start := time.Now()
	rendered, err := Render(ctx, c, missing, opts.SinkOptions(r.Generator))
	hooks.OnRenderComplete(ctx, missing, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		artifacts[format] = data
		if c.ID != "" {
			key := r.Keyer.ArtifactKey(c.ID, opts.ArtifactKeyOpts(format, r.Generator))
			r.store(ctx, keyTypeArtifact, key, data, cache.TTLArtifact)
		}
	}
	return artifacts, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Render(ctx context.Context, c composition.Composition, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, c, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// store writes to the cache. Failures are logged, never returned: a broken
// cache degrades to recomputation.
func (r *Runner) store(ctx context.Context, keyType, key string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "key_type", keyType, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
