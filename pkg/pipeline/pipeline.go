// Package pipeline runs comparisons between network files.
//
// This package implements the load → build → compare flow shared by the
// command line tool and the HTTP server. Results are cached by content hash
// and recorded as flat [Record] values, so one bad input never aborts a batch.
//
// # Usage
//
// Compare two files:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	rec := runner.CompareFiles(ctx, "truth.nwk", "inferred.enwk", pipeline.Options{})
//	if rec.Status == pipeline.StatusError {
//	    log.Fatal(rec.Error)
//	}
//	fmt.Println(rec.Metrics["ret_leaf_jaccard.dist"])
//
// Run a manifest of pairs concurrently:
//
//	m, err := pipeline.LoadManifest("runs.toml")
//	res, err := runner.RunBatch(ctx, m.Pairs, m.Options, func(r pipeline.Record) {
//	    sink.Write(ctx, r)
//	})
//	fmt.Println(res.Summary.Metrics["rf.normalized"].Mean)
package pipeline

import (
	"fmt"
	"io"
	"math"
	"runtime"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mulnet/pkg/cache"
	"github.com/matzehuels/mulnet/pkg/compare"
	"github.com/matzehuels/mulnet/pkg/errors"
	"github.com/matzehuels/mulnet/pkg/ged"
	"github.com/matzehuels/mulnet/pkg/reticulate"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

// DefaultGEDTimeout bounds each edit distance search.
const DefaultGEDTimeout = ged.DefaultTimeout

// DefaultWorkers returns the batch concurrency used when Options.Workers
// is zero.
func DefaultWorkers() int { return runtime.NumCPU() }

// Format constants for conversion outputs.
const (
	FormatNewick  = "newick"
	FormatENewick = "enewick"
	FormatJSON    = "json"
)

// ValidFormats is the set of supported conversion formats.
var ValidFormats = map[string]bool{
	FormatNewick:  true,
	FormatENewick: true,
	FormatJSON:    true,
}

// ValidateFormat checks that a conversion format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: newick, enewick, json)", format)
	}
	return nil
}

// =============================================================================
// Options - Comparison Configuration
// =============================================================================

// Options configures loading and comparing. It doubles as the JSON body of
// server requests and the options table of batch manifests.
type Options struct {
	// Fold options. Both nil selects strict folding.
	Threshold *float64 `json:"threshold,omitempty" toml:"threshold" yaml:"threshold"`
	Normalize *bool    `json:"normalize,omitempty" toml:"normalize" yaml:"normalize"`

	// Compare options. A negative GEDTimeout disables the search limit.
	GEDTimeout       time.Duration `json:"ged_timeout_ns,omitempty" toml:"ged_timeout" yaml:"ged_timeout"`
	SkipEditDistance bool          `json:"skip_edit_distance,omitempty" toml:"skip_edit_distance" yaml:"skip_edit_distance"`

	// Runtime options
	Refresh bool `json:"refresh,omitempty" toml:"refresh" yaml:"refresh"`
	Workers int  `json:"-" toml:"workers" yaml:"workers"`

	Logger *log.Logger `json:"-" toml:"-" yaml:"-"`

	// GEDProgress, if set, receives edit distance search progress.
	GEDProgress func(explored, pruned, best int) `json:"-" toml:"-" yaml:"-"`

	validated bool
}

// ValidateAndSetDefaults checks fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.Validate(); err != nil {
		return err
	}
	if o.GEDTimeout == 0 {
		o.GEDTimeout = DefaultGEDTimeout
	}
	if o.Workers <= 0 {
		o.Workers = DefaultWorkers()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// Validate checks fields without applying defaults.
func (o *Options) Validate() error {
	if o.Threshold != nil && (*o.Threshold < 0 || math.IsNaN(*o.Threshold)) {
		return errors.New(errors.ErrCodeInvalidConfig, "threshold must be non-negative, got %v", *o.Threshold)
	}
	if o.Workers < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "workers must not be negative")
	}
	return nil
}

// FoldParams returns the folding parameters for tree inputs.
func (o *Options) FoldParams() reticulate.FoldParams {
	return reticulate.FoldParams{Threshold: o.Threshold, Normalize: o.Normalize}
}

// FoldKey describes the folding variant for cache keys and logs.
func (o *Options) FoldKey() string {
	p := o.FoldParams()
	switch {
	case p.IsPartial():
		return "strict:partial"
	case !p.IsRelaxed():
		return "strict"
	}
	return fmt.Sprintf("relaxed:%g:%t", *p.Threshold, *p.Normalize)
}

// CompareOptions returns the options passed to [compare.Compare].
func (o *Options) CompareOptions() compare.Options {
	return compare.Options{
		GED:              ged.Options{Timeout: o.GEDTimeout, Progress: o.GEDProgress},
		SkipEditDistance: o.SkipEditDistance,
	}
}

// CompareKeyOpts returns cache key options for a comparison.
func (o *Options) CompareKeyOpts() cache.CompareKeyOpts {
	return cache.CompareKeyOpts{
		Fold:             o.FoldKey(),
		GEDTimeout:       o.GEDTimeout,
		SkipEditDistance: o.SkipEditDistance,
	}
}

// ConvertKeyOpts returns cache key options for a conversion.
func (o *Options) ConvertKeyOpts(format string) cache.ConvertKeyOpts {
	return cache.ConvertKeyOpts{Fold: o.FoldKey(), Format: format}
}
