package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mulnet/pkg/errors"
	"github.com/matzehuels/mulnet/pkg/pipeline"
	"github.com/matzehuels/mulnet/pkg/store"
)

// batchCommand creates the batch command.
func (c *CLI) batchCommand() *cobra.Command {
	var (
		workers int
		tui     bool
		sink    string
		noCache bool
		refresh bool
		asJSON  bool
	)
	cmd := &cobra.Command{
		Use:   "batch <manifest>",
		Short: "Compare every pair listed in a manifest",
		Long: `Compare every pair listed in a TOML or YAML manifest, several at a time.

A failed pair is recorded with its error code and does not stop the batch.
Records are written to --sink as they finish: a JSONL file, "-" for stdout,
or a mongodb:// URI. A summary with per-metric statistics is printed at the
end.

Manifest (runs.toml):

  [options]
  threshold = 0.2
  normalize = true

  [[pairs]]
  name = "sim-001"
  a = "truth/001.enwk"
  b = "inferred/001.enwk"`,
		Example: `  mulnet batch runs.toml --workers 8 --sink results.jsonl
  mulnet batch runs.yaml --tui --sink "mongodb://localhost:27017/mulnet?collection=runs"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			m, err := pipeline.LoadManifest(args[0])
			if err != nil {
				return err
			}

			opts := c.batchOptions(m.Options)
			if cmd.Flags().Changed("workers") {
				opts.Workers = workers
			}
			opts.Refresh = opts.Refresh || refresh

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			if !cmd.Flags().Changed("sink") {
				sink = c.config().Store.Target
			}
			var sk store.Sink
			if sink != "" {
				if sk, err = store.Open(ctx, sink); err != nil {
					return err
				}
				defer sk.Close()
			}
			write := func(rec pipeline.Record) {
				if sk == nil {
					return
				}
				if err := sk.Write(ctx, rec); err != nil {
					c.Logger.Warn("sink write failed", "name", rec.Name, "error", err)
				}
			}

			prog := newProgress(c.Logger)
			var res *pipeline.BatchResult
			if tui {
				res, err = c.runBatchTUI(ctx, runner, m.Pairs, opts, write)
			} else {
				res, err = runner.RunBatch(ctx, m.Pairs, opts, func(rec pipeline.Record) {
					write(rec)
					if !asJSON && sink != "-" {
						fmt.Fprintln(c.out, recordLine(rec))
					}
				})
			}
			if res == nil {
				return err
			}
			prog.done(fmt.Sprintf("Compared %d pairs", len(res.Records)))

			if err := c.printBatchSummary(res, asJSON, sink == "-"); err != nil {
				return err
			}
			if err != nil {
				return err
			}
			if res.Summary.Failed > 0 {
				return fmt.Errorf("%d of %d comparisons failed", res.Summary.Failed, res.Summary.Total)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "concurrent comparisons (default: number of CPUs)")
	cmd.Flags().BoolVar(&tui, "tui", false, "show a live progress view")
	cmd.Flags().StringVar(&sink, "sink", "", `write records to a JSONL file, "-" (stdout) or a mongodb:// URI`)
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even if cached")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the summary as JSON")
	return cmd
}

// batchOptions overlays manifest options on the configured defaults.
func (c *CLI) batchOptions(m pipeline.Options) pipeline.Options {
	opts := c.options(nil, nil)
	if m.Threshold != nil || m.Normalize != nil {
		opts.Threshold, opts.Normalize = m.Threshold, m.Normalize
	}
	if m.GEDTimeout != 0 {
		opts.GEDTimeout = m.GEDTimeout
	}
	if m.Workers > 0 {
		opts.Workers = m.Workers
	}
	opts.SkipEditDistance = opts.SkipEditDistance || m.SkipEditDistance
	opts.Refresh = m.Refresh
	return opts
}

func (c *CLI) runBatchTUI(ctx context.Context, runner *pipeline.Runner, pairs []pipeline.Pair, opts pipeline.Options, write func(pipeline.Record)) (*pipeline.BatchResult, error) {
	parent := ctx
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Log lines would tear the view; records still reach the sink.
	opts.Logger = log.NewWithOptions(io.Discard, log.Options{})

	p := tea.NewProgram(newBatchModel(len(pairs), cancel), tea.WithContext(parent), tea.WithOutput(os.Stderr))
	go func() {
		res, err := runner.RunBatch(ctx, pairs, opts, func(rec pipeline.Record) {
			write(rec)
			p.Send(recordMsg(rec))
		})
		p.Send(batchDoneMsg{res: res, err: err})
	}()

	final, err := p.Run()
	if m, ok := final.(batchModel); ok && m.Result != nil {
		return m.Result, m.Err
	}
	if err != nil {
		return nil, err
	}
	return nil, context.Canceled
}

func (c *CLI) printBatchSummary(res *pipeline.BatchResult, asJSON, quiet bool) error {
	if asJSON {
		enc := json.NewEncoder(c.out)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			RunID    string           `json:"run_id"`
			Duration time.Duration    `json:"duration_ns"`
			Summary  pipeline.Summary `json:"summary"`
		}{res.RunID, res.Duration, res.Summary})
	}
	if quiet {
		return nil
	}
	s := res.Summary
	fmt.Fprintln(c.out)
	printKeyValue(c.out, "Run", res.RunID)
	printKeyValue(c.out, "Pairs", fmt.Sprintf("%d ok · %d failed · %d cached", s.Succeeded, s.Failed, s.CacheHits))
	if len(s.Metrics) > 0 {
		fmt.Fprintln(c.out, renderSummary(s))
	}
	codes := make([]string, 0, len(s.ErrorCodes))
	for code := range s.ErrorCodes {
		codes = append(codes, string(code))
	}
	sort.Strings(codes)
	for _, code := range codes {
		printWarning(c.out, "%s: %d", code, s.ErrorCodes[errors.Code(code)])
	}
	return nil
}
