package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mulnet/pkg/pipeline"
)

// compareCommand creates the compare command.
func (c *CLI) compareCommand() *cobra.Command {
	var (
		ff         foldFlags
		gedTimeout time.Duration
		skipGED    bool
		noCache    bool
		refresh    bool
		asJSON     bool
	)
	cmd := &cobra.Command{
		Use:   "compare <a> <b>",
		Short: "Compare two networks",
		Long: `Compare network b against reference network a.

Each input may be Newick, extended Newick or a JSON graph, given as a file or
inline. Tree inputs are folded first. The report covers reticulation counts,
ploidy, reticulation leaf sets and sisters, Robinson-Foulds distance between
the unfolded MUL-trees, and graph edit distance.

The edit distance search stops after --ged-timeout and reports the best
value found so far as an upper bound.`,
		Example: `  mulnet compare truth.enwk inferred.enwk
  mulnet compare truth.nwk inferred.json --threshold 0.1 --json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			opts := c.options(cmd, &ff)
			if cmd.Flags().Changed("ged-timeout") {
				opts.GEDTimeout = gedTimeout
			}
			if skipGED {
				opts.SkipEditDistance = true
			}
			opts.Refresh = refresh

			sl := newSearchLogger(ctx, opts.GEDTimeout)
			opts.GEDProgress = sl.onProgress

			a, err := loadArg(args[0])
			if err != nil {
				return err
			}
			b, err := loadArg(args[1])
			if err != nil {
				return err
			}
			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			var sp *Spinner
			if !asJSON && !c.verbose {
				sp = newSpinner(ctx, os.Stderr, "Comparing networks...")
				sp.Start()
			}
			rec := runner.CompareSources(ctx, a, b, opts)
			if sp != nil {
				sp.Stop()
			}
			if asJSON {
				enc := json.NewEncoder(c.out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(rec); err != nil {
					return err
				}
			} else {
				printRecord(c.out, rec)
				if rec.OK() {
					printDetail(c.out, "%s", rec.Duration.Round(time.Millisecond))
				}
			}
			if !rec.OK() {
				return fmt.Errorf("%s: %s", rec.ErrorCode, rec.Error)
			}
			return nil
		},
	}
	ff.register(cmd)
	cmd.Flags().DurationVar(&gedTimeout, "ged-timeout", pipeline.DefaultGEDTimeout, "edit distance search limit (negative disables)")
	cmd.Flags().BoolVar(&skipGED, "skip-ged", false, "skip the edit distance metrics")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even if cached")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the record as JSON")
	return cmd
}
