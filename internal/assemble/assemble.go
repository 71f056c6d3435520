// Package assemble merges, prunes and combines benchmark results into the
// output tree that gets published.
//
// A run is a fixed sequence of stages: merge previous history, enforce
// retention, combine results and badges, write metadata, print a summary.
// Missing optional inputs are reported and skipped; any other filesystem
// error aborts the run.
package assemble

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"benchpages/internal/category"
	"benchpages/internal/deploy"
	"benchpages/internal/fsutil"
	"benchpages/internal/history"
	"benchpages/internal/pages"
	"benchpages/internal/report"
)

// BadgesDirName is the badges folder, both inside a results directory and at
// the output root.
const BadgesDirName = "badges"

// Result reports what an assembly run did.
type Result struct {
	Merged   map[category.Name]int // Previous entries added per category
	Removed  map[category.Name]int // Entries pruned per category
	Copied   []category.Name       // Categories copied into the output tree
	Skipped  []category.Name       // Categories whose results directory was missing
	Badges   []string              // Badge files written to the shared badges folder
	Metadata deploy.Metadata
	Entries  []report.Entry // Top-level listing of the output directory
}

type assembler struct {
	opts    Options
	mods    []module
	out     io.Writer
	logger  *zap.Logger
	result  Result
	started time.Time
}

// Run executes every stage in order. Progress lines are written to out.
func Run(opts Options, out io.Writer, logger *zap.Logger) (Result, error) {
	if err := opts.Validate(); err != nil {
		return Result{}, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Badges == nil {
		opts.Badges = category.DefaultBadges()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	a := &assembler{
		opts:    opts,
		mods:    opts.modules(),
		out:     out,
		logger:  logger,
		started: now(),
		result: Result{
			Merged:  make(map[category.Name]int),
			Removed: make(map[category.Name]int),
		},
	}

	stages := []struct {
		name string
		run  func() error
	}{
		{"merge", a.merge},
		{"retain", a.retain},
		{"combine", a.combine},
		{"metadata", a.writeMetadata},
		{"summary", a.summarize},
	}
	for _, stage := range stages {
		logger.Debug("stage", zap.String("name", stage.name))
		if err := stage.run(); err != nil {
			return a.result, err
		}
	}

	return a.result, nil
}

// historyDir returns the history folder of a results directory.
func historyDir(resultsDir string) string {
	return filepath.Join(resultsDir, pages.HistoryDirName)
}

// merge copies previously published history into each results history
// folder. Entries of the current run are never overwritten.
func (a *assembler) merge() error {
	snapshot := pages.NewSnapshot(a.opts.PreviousPagesDir)
	if !snapshot.Exists() {
		return nil
	}

	for _, m := range a.mods {
		if !snapshot.HasHistory(m.Name) {
			continue
		}

		store := history.NewStore(historyDir(m.ResultsDir), a.logger)
		count, err := store.Merge(snapshot.HistoryDir(m.Name))
		if err != nil {
			return fmt.Errorf("merge %s history: %w", m.Name, err)
		}

		a.result.Merged[m.Name] = count
		fmt.Fprintf(a.out, "Merged %d previous %s history files\n", count, m.Name)
	}
	return nil
}

// retain prunes each results history folder to the configured limit.
func (a *assembler) retain() error {
	for _, m := range a.mods {
		store := history.NewStore(historyDir(m.ResultsDir), a.logger)

		names, err := store.List()
		if err != nil {
			return fmt.Errorf("list %s history: %w", m.Name, err)
		}
		for _, issue := range history.CheckNames(names) {
			fmt.Fprintln(a.out, history.FormatIssue(string(m.Name), issue))
		}

		removed, err := store.Retain(a.opts.MaxHistory)
		if err != nil {
			return fmt.Errorf("enforce %s retention: %w", m.Name, err)
		}

		a.result.Removed[m.Name] = removed
		if removed > 0 {
			fmt.Fprintf(a.out, "Removed %d old %s history files (retention: %d)\n", removed, m.Name, a.opts.MaxHistory)
		}
	}
	return nil
}

// combine copies every results directory into the output tree and promotes
// badges into the shared badges folder.
func (a *assembler) combine() error {
	badgesDir := filepath.Join(a.opts.OutputDir, BadgesDirName)
	if err := os.MkdirAll(badgesDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	for _, m := range a.mods {
		if !fsutil.IsDir(m.ResultsDir) {
			a.result.Skipped = append(a.result.Skipped, m.Name)
			fmt.Fprintf(a.out, "Warning: %s results not found at %s, skipping\n", m.Name, m.ResultsDir)
			continue
		}

		dst := filepath.Join(a.opts.OutputDir, string(m.Name))
		if _, err := fsutil.CopyTree(m.ResultsDir, dst, a.logger); err != nil {
			return fmt.Errorf("copy %s results: %w", m.Name, err)
		}
		a.result.Copied = append(a.result.Copied, m.Name)
		fmt.Fprintf(a.out, "Copied %s benchmark artifacts to %s\n", m.Name, dst)

		written, err := promoteBadges(filepath.Join(m.ResultsDir, BadgesDirName), badgesDir, a.opts.Badges.For(m.Name), a.logger)
		if err != nil {
			return fmt.Errorf("promote %s badges: %w", m.Name, err)
		}
		a.result.Badges = append(a.result.Badges, written...)
	}
	return nil
}

// writeMetadata writes metadata.json at the output root.
func (a *assembler) writeMetadata() error {
	meta := deploy.NewMetadata(a.started, a.opts.CommitSHA)
	if err := meta.WriteToFile(filepath.Join(a.opts.OutputDir, deploy.FileName)); err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}
	a.result.Metadata = meta
	return nil
}

// summarize prints the output directory listing.
func (a *assembler) summarize() error {
	entries, err := report.ListEntries(a.opts.OutputDir)
	if err != nil {
		return fmt.Errorf("list output directory: %w", err)
	}
	a.result.Entries = entries
	fmt.Fprint(a.out, report.FormatSummary(a.opts.OutputDir, entries))
	return nil
}
