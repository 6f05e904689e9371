package cli

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mulnet/pkg/buildinfo"
	"github.com/matzehuels/mulnet/pkg/cache"
	"github.com/matzehuels/mulnet/pkg/config"
	mio "github.com/matzehuels/mulnet/pkg/io"
	"github.com/matzehuels/mulnet/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = config.AppName

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is loaded before any subcommand runs.
	Config *config.Config

	out        io.Writer
	verbose    bool
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		out:    os.Stdout,
	}
}

// SetOutput redirects command output (not logs).
func (c *CLI) SetOutput(w io.Writer) { c.out = w }

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "mulnet folds MUL-trees into phylogenetic networks and compares them",
		Long: `mulnet converts between multi-labelled trees and phylogenetic networks
with reticulations, reads and writes extended Newick, and scores inferred
networks against a reference with reticulation-aware metrics.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ~/.config/mulnet/config.toml)")

	// Register all subcommands
	root.AddCommand(c.foldCommand())
	root.AddCommand(c.unfoldCommand())
	root.AddCommand(c.convertCommand())
	root.AddCommand(c.compareCommand())
	root.AddCommand(c.batchCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) loadConfig() error {
	var (
		cfg *config.Config
		err error
	)
	if c.configPath != "" {
		cfg, err = config.Load(c.configPath)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return err
	}
	for _, w := range cfg.Warnings {
		c.Logger.Warn(w)
	}
	c.Config = cfg
	return nil
}

func (c *CLI) config() *config.Config {
	if c.Config == nil {
		c.Config = config.Default()
	}
	return c.Config
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cc, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cc, nil, c.Logger), nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	cfg := c.config().Cache
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch cfg.Backend {
	case config.CacheNone:
		return cache.NewNullCache(), nil
	case config.CacheRedis:
		return cache.NewRedisCache(ctx, cfg.RedisURL)
	}
	if cfg.Dir == "" {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(cfg.Dir)
}

// =============================================================================
// Options Helpers
// =============================================================================

// foldFlags holds the folding flags shared by several commands.
type foldFlags struct {
	threshold float64
	normalize bool
}

func (f *foldFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.threshold, "threshold", 0, "relaxed folding: merge subtrees within this edit distance")
	cmd.Flags().BoolVar(&f.normalize, "normalize", true, "relaxed folding: compare normalized edit distances")
}

// apply overrides the configured fold settings with flags the user set.
// Relaxed folding needs both values; a partial pair is reported and
// replaced by strict folding when the network is built.
func (f *foldFlags) apply(cmd *cobra.Command, opts *pipeline.Options) {
	if cmd.Flags().Changed("threshold") {
		th := f.threshold
		opts.Threshold = &th
	}
	if cmd.Flags().Changed("normalize") {
		n := f.normalize
		opts.Normalize = &n
	}
}

// options returns the configured runner options with fold flags applied.
func (c *CLI) options(cmd *cobra.Command, f *foldFlags) pipeline.Options {
	opts := c.config().PipelineOptions()
	opts.Logger = c.Logger
	if f != nil {
		f.apply(cmd, &opts)
	}
	return opts
}

// loadArg reads a command argument that is either a file path or literal
// tree text.
func loadArg(arg string) (*mio.Source, error) {
	if arg == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, err
		}
		return mio.Load("stdin", data)
	}
	if info, err := os.Stat(arg); err == nil && !info.IsDir() {
		return mio.LoadFile(arg)
	}
	if strings.ContainsAny(arg, "(;") {
		return mio.Load("argument", []byte(arg))
	}
	return mio.LoadFile(arg)
}
