package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mulnet/pkg/cache"
	"github.com/matzehuels/mulnet/pkg/compare"
	mio "github.com/matzehuels/mulnet/pkg/io"
	"github.com/matzehuels/mulnet/pkg/observability"
	"github.com/matzehuels/mulnet/pkg/reticulate"
)

// Runner encapsulates comparisons with caching.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
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
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Build turns a loaded source into its paired representation.
func (r *Runner) Build(ctx context.Context, src *mio.Source, opts Options) (*reticulate.ReticulateTree, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	start := time.Now()
	rt, err := reticulate.New(src.Input, opts.FoldParams())
	elapsed := time.Since(start)

	kind := src.Input.Kind().String()
	if err != nil {
		observability.Compare().OnLoad(ctx, src.Name, kind, 0, elapsed, err)
		return nil, err
	}
	observability.Compare().OnLoad(ctx, src.Name, kind, len(rt.Reticulations()), elapsed, nil)

	_, sisterWarnings := rt.ReticulationSisters()
	for _, w := range append(rt.Warnings(), sisterWarnings...) {
		opts.Logger.Warn(w.Message, "input", src.Name, "code", w.Code)
	}
	opts.Logger.Debug("built network",
		"input", src.Name,
		"kind", kind,
		"fold", opts.FoldKey(),
		"nodes", rt.Network().NodeCount(),
		"reticulations", len(rt.Reticulations()),
		"duration", elapsed)
	return rt, nil
}

// CompareFiles loads two files and compares them. It never returns an
// error; failures are reported in the record.
func (r *Runner) CompareFiles(ctx context.Context, pathA, pathB string, opts Options) Record {
	rec := Record{A: pathA, B: pathB}
	start := time.Now()
	defer func() { rec.Duration = time.Since(start) }()

	a, err := mio.LoadFile(pathA)
	if err != nil {
		rec.fail(err)
		return rec
	}
	b, err := mio.LoadFile(pathB)
	if err != nil {
		rec.fail(err)
		return rec
	}
	rec = r.CompareSources(ctx, a, b, opts)
	rec.Duration = time.Since(start)
	return rec
}

// cachedRecord is what a comparison stores in the cache.
type cachedRecord struct {
	Metrics  map[string]float64 `json:"metrics"`
	Warnings []string           `json:"warnings,omitempty"`
}

// CompareSources compares two loaded inputs, consulting the cache first
// unless opts.Refresh is set.
func (r *Runner) CompareSources(ctx context.Context, a, b *mio.Source, opts Options) Record {
	rec := Record{A: a.Name, B: b.Name}
	start := time.Now()
	defer func() { rec.Duration = time.Since(start) }()

	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		rec.fail(err)
		return rec
	}

	key := r.Keyer.CompareKey(cache.Hash(a.Data), cache.Hash(b.Data), opts.CompareKeyOpts())
	if !opts.Refresh {
		if cached, ok := r.lookup(ctx, key); ok {
			rec.Status = StatusSuccess
			rec.Metrics = cached.Metrics
			rec.Warnings = cached.Warnings
			rec.CacheHit = true
			return rec
		}
	}

	observability.Compare().OnCompareStart(ctx, a.Name, b.Name)
	m, err := r.compare(ctx, a, b, opts)
	observability.Compare().OnCompareComplete(ctx, a.Name, b.Name, time.Since(start), err)
	if err != nil {
		opts.Logger.Debug("comparison failed", "a", a.Name, "b", b.Name, "error", err)
		rec.fail(err)
		return rec
	}

	rec.Status = StatusSuccess
	rec.Metrics = m.Flatten()
	for _, w := range m.Warnings {
		rec.Warnings = append(rec.Warnings, w.String())
	}
	opts.Logger.Info("compared networks",
		"a", a.Name,
		"b", b.Name,
		"warnings", len(rec.Warnings),
		"duration", time.Since(start))

	r.store(ctx, key, cachedRecord{Metrics: rec.Metrics, Warnings: rec.Warnings})
	return rec
}

func (r *Runner) compare(ctx context.Context, a, b *mio.Source, opts Options) (*compare.Metrics, error) {
	ra, err := r.Build(ctx, a, opts)
	if err != nil {
		return nil, err
	}
	rb, err := r.Build(ctx, b, opts)
	if err != nil {
		return nil, err
	}
	m, err := compare.Compare(ctx, ra, rb, opts.CompareOptions())
	if err != nil {
		return nil, err
	}
	searches := []struct {
		variant string
		ed      *compare.EditDistance
	}{{"network", m.EditDistance}, {"multree", m.EditDistanceMulTree}}
	for _, s := range searches {
		variant, ed := s.variant, s.ed
		if ed == nil {
			continue
		}
		observability.Compare().OnEditDistance(ctx, variant, ed.Explored, ed.Exact)
		if !ed.Exact {
			opts.Logger.Warn("edit distance search stopped early; value is an upper bound",
				"variant", variant, "a", a.Name, "b", b.Name, "value", ed.Value)
		}
	}
	return m, nil
}

func (r *Runner) lookup(ctx context.Context, key string) (cachedRecord, bool) {
	var out cachedRecord
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "error", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, "compare")
		return out, false
	}
	if err := json.Unmarshal(data, &out); err != nil || out.Metrics == nil {
		observability.Cache().OnCacheMiss(ctx, "compare")
		return out, false
	}
	observability.Cache().OnCacheHit(ctx, "compare")
	return out, true
}

func (r *Runner) store(ctx context.Context, key string, v cachedRecord) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, cache.TTLCompare); err != nil {
		r.Logger.Warn("cache write failed", "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, "compare", len(data))
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
