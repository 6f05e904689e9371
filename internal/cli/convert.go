package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mulnet/pkg/pipeline"
)

// foldCommand creates the fold command.
func (c *CLI) foldCommand() *cobra.Command {
	var ff foldFlags
	cmd := &cobra.Command{
		Use:   "fold <newick|file>",
		Short: "Fold a MUL-tree into a network and print it as extended Newick",
		Long: `Fold a multi-labelled tree into a phylogenetic network. Repeated subtrees
become reticulations, written as #H markers in extended Newick.

Strict folding merges only identical subtrees. Pass --threshold (and
optionally --normalize) to merge subtrees whose edit distance is within the
threshold.`,
		Example: `  mulnet fold '((A,A),B);'
  mulnet fold tree.nwk --threshold 0.2 --normalize`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runConvert(cmd, args[0], pipeline.FormatENewick, "", &ff, false)
		},
	}
	ff.register(cmd)
	return cmd
}

// unfoldCommand creates the unfold command.
func (c *CLI) unfoldCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "unfold <enewick|file>",
		Short:   "Unfold an extended Newick network into a MUL-tree",
		Example: `  mulnet unfold '(((A)#H1,#H1),B);'`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runConvert(cmd, args[0], pipeline.FormatNewick, "", nil, false)
		},
	}
}

// convertCommand creates the convert command.
func (c *CLI) convertCommand() *cobra.Command {
	var (
		ff      foldFlags
		to      string
		output  string
		noCache bool
	)
	cmd := &cobra.Command{
		Use:   "convert <input>",
		Short: "Convert between Newick, extended Newick and JSON",
		Long: `Convert an input to another representation.

Input may be Newick, extended Newick or a JSON graph file. Output formats:
  newick   the MUL-tree
  enewick  the network in extended Newick
  json     the network as {nodes, edges}`,
		Example: `  mulnet convert tree.nwk --to json -o network.json
  mulnet convert network.json --to enewick`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runConvert(cmd, args[0], to, output, &ff, noCache)
		},
	}
	cmd.Flags().StringVarP(&to, "to", "t", pipeline.FormatENewick, "output format: newick, enewick, json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	ff.register(cmd)
	return cmd
}

func (c *CLI) runConvert(cmd *cobra.Command, arg, format, output string, ff *foldFlags, noCache bool) error {
	if err := pipeline.ValidateFormat(format); err != nil {
		return err
	}
	ctx := cmd.Context()
	src, err := loadArg(arg)
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	out, hit, err := runner.Convert(ctx, src, format, c.options(cmd, ff))
	if err != nil {
		return err
	}
	loggerFromContext(ctx).Debug("converted", "input", src.Name, "format", format, "cached", hit)

	if output == "" {
		_, err = c.out.Write(out)
		return err
	}
	if err := os.WriteFile(output, out, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	printSuccess(c.out, "Wrote %s", format)
	printFile(c.out, output)
	return nil
}
