// Package cli wires the benchpages subcommands to their implementations.
package cli

import (
	"errors"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"benchpages/internal/assemble"
	"benchpages/internal/category"
	"benchpages/internal/config"
	"benchpages/internal/history"
	"benchpages/internal/prepare"
)

// ErrNoSubcommand is returned when benchpages is run without a subcommand
var ErrNoSubcommand = errors.New("missing subcommand: usage: benchpages <prepare-history|assemble> [flags]")

// PrepareFlags holds the prepare-history flags.
type PrepareFlags struct {
	PreviousPagesDir string // --previous-pages-dir <path>
	OutputDir        string // --output-dir <path>
}

// AssembleFlags holds the assemble flags.
type AssembleFlags struct {
	MicroResults       string // --micro-results <path>
	IntegrationResults string // --integration-results <path>
	PreviousPagesDir   string // --previous-pages-dir <path>
	OutputDir          string // --output-dir <path>
	CommitSHA          string // --commit-sha <sha>
	MaxHistory         int    // --max-history <n>
	ConfigPath         string // --config <file>
}

type app struct {
	stdout  io.Writer
	stderr  io.Writer
	verbose bool
	logger  *zap.Logger
}

// NewRootCommand builds the command tree. Progress output goes to stdout;
// cobra's own messages and --verbose diagnostics go to stderr.
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr, logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "benchpages",
		Short: "Assemble benchmark history and results for static publication",
		Long: `benchpages prepares and assembles benchmark artifacts for a static pages site.

Run prepare-history before benchmarks are computed to seed trend data from the
previously published pages, then assemble afterwards to merge history, enforce
retention and combine results, badges and metadata into one output tree.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.logger = newLogger(a.stderr, a.verbose)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return ErrNoSubcommand
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")

	root.AddCommand(a.prepareCommand())
	root.AddCommand(a.assembleCommand())
	return root
}

// newLogger returns a production-encoded zap logger writing to w. Debug
// entries are only emitted when verbose is set.
func newLogger(w io.Writer, verbose bool) *zap.Logger {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if verbose {
		level.SetLevel(zapcore.DebugLevel)
	}
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.Lock(zapcore.AddSync(w)),
		level,
	)
	return zap.New(core, zap.ErrorOutput(zapcore.Lock(zapcore.AddSync(w))))
}

func (a *app) prepareCommand() *cobra.Command {
	var f PrepareFlags

	cmd := &cobra.Command{
		Use:   "prepare-history",
		Short: "Copy previously published history into working directories",
		Long: `Copies <previous-pages-dir>/<category>/history/*.json into
<output-dir>/<category>/ for the micro and integration categories so that the
benchmark build can compute trends. A missing previous-pages directory is not
an error.

Example:
  benchpages prepare-history \
    --previous-pages-dir previous-pages/benchmarks \
    --output-dir benchmark-history`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := prepare.Run(f.PreviousPagesDir, f.OutputDir, a.stdout, a.logger)
			return err
		},
	}

	cmd.Flags().StringVar(&f.PreviousPagesDir, "previous-pages-dir", "", "Path to the previously deployed pages (required)")
	cmd.Flags().StringVar(&f.OutputDir, "output-dir", "", "Directory receiving the history files (required)")
	cmd.MarkFlagRequired("previous-pages-dir")
	cmd.MarkFlagRequired("output-dir")
	return cmd
}

func (a *app) assembleCommand() *cobra.Command {
	var f AssembleFlags

	cmd := &cobra.Command{
		Use:   "assemble",
		Short: "Merge history, enforce retention and combine artifacts for deployment",
		Long: `Merges previously published history into each results directory without
overwriting entries of the current run, keeps the newest --max-history
entries, then copies every results directory, the promoted badges and a
metadata.json into --output-dir.

Example:
  benchpages assemble \
    --micro-results benchmark-core/target/benchmark-results/gh-pages-ready \
    --integration-results benchmark-integration/target/benchmark-results/gh-pages-ready \
    --previous-pages-dir previous-pages/benchmarks \
    --output-dir gh-pages \
    --commit-sha "$COMMIT_SHA"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := f.options(cmd.Flags().Changed("max-history"))
			if err != nil {
				return err
			}
			_, err = assemble.Run(opts, a.stdout, a.logger)
			return err
		},
	}

	cmd.Flags().StringVar(&f.MicroResults, "micro-results", "", "Path to the micro benchmark results directory")
	cmd.Flags().StringVar(&f.IntegrationResults, "integration-results", "", "Path to the integration benchmark results directory")
	cmd.Flags().StringVar(&f.PreviousPagesDir, "previous-pages-dir", "", "Path to the previously deployed pages for history merging")
	cmd.Flags().StringVar(&f.OutputDir, "output-dir", "", "Output directory for the combined deployment artifacts (required)")
	cmd.Flags().StringVar(&f.CommitSHA, "commit-sha", "", "Commit SHA recorded in metadata.json (required)")
	cmd.Flags().IntVar(&f.MaxHistory, "max-history", history.DefaultMaxEntries, "Maximum number of history entries to retain; negative values are rejected")
	cmd.Flags().StringVar(&f.ConfigPath, "config", "", "Optional YAML file overriding max_history and badge mappings")
	cmd.MarkFlagRequired("output-dir")
	cmd.MarkFlagRequired("commit-sha")
	return cmd
}

// options converts the flags into assembly options. An explicit
// --max-history wins over the configuration file.
func (f AssembleFlags) options(maxHistorySet bool) (assemble.Options, error) {
	opts := assemble.DefaultOptions()
	opts.Results[category.Micro] = f.MicroResults
	opts.Results[category.Integration] = f.IntegrationResults
	opts.PreviousPagesDir = f.PreviousPagesDir
	opts.OutputDir = f.OutputDir
	opts.CommitSHA = f.CommitSHA

	if f.MicroResults == "" && f.IntegrationResults == "" {
		return opts, assemble.ErrNoResults
	}

	cfg := config.Default()
	if f.ConfigPath != "" {
		var err error
		cfg, err = config.Load(f.ConfigPath)
		if err != nil {
			return opts, err
		}
	}

	opts.Badges = cfg.Badges
	opts.MaxHistory = cfg.MaxHistory
	if maxHistorySet {
		opts.MaxHistory = f.MaxHistory
	}

	return opts, opts.Validate()
}
