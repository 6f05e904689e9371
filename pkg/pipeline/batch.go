package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// BatchResult holds the records of one batch run in input order.
type BatchResult struct {
	RunID    string
	Records  []Record
	Summary  Summary
	Duration time.Duration
}

// RunBatch compares every pair with up to opts.Workers comparisons in
// flight. onRecord, if non-nil, is called once per finished record and
// never concurrently. A failed comparison is recorded and does not stop the
// batch; only cancellation of ctx does, in which case the records finished so
// far are returned together with the context error.
func (r *Runner) RunBatch(ctx context.Context, pairs []Pair, opts Options, onRecord func(Record)) (*BatchResult, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	start := time.Now()
	runID := uuid.NewString()
	opts.Logger.Info("starting batch", "run_id", runID, "pairs", len(pairs), "workers", opts.Workers)

	records := make([]Record, len(pairs))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i, p := range pairs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rec := r.CompareFiles(gctx, p.A, p.B, opts)
			rec.RunID, rec.Name = runID, p.Name
			if !rec.OK() {
				opts.Logger.Warn("comparison failed", "name", p.Name, "code", rec.ErrorCode, "error", rec.Error)
			}
			records[i] = rec
			if onRecord != nil {
				mu.Lock()
				onRecord(rec)
				mu.Unlock()
			}
			return nil
		})
	}
	err := g.Wait()

	done := records[:0:0]
	for _, rec := range records {
		if rec.Status != "" {
			done = append(done, rec)
		}
	}
	res := &BatchResult{
		RunID:    runID,
		Records:  done,
		Summary:  Summarize(done),
		Duration: time.Since(start),
	}
	opts.Logger.Info("finished batch",
		"run_id", runID,
		"succeeded", res.Summary.Succeeded,
		"failed", res.Summary.Failed,
		"cache_hits", res.Summary.CacheHits,
		"duration", res.Duration)
	return res, err
}
