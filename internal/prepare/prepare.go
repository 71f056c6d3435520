// Package prepare seeds working directories with previously published
// history before benchmark results are computed.
package prepare

import (
	"fmt"
	"io"
	"path/filepath"

	"go.uber.org/zap"

	"benchpages/internal/category"
	"benchpages/internal/fsutil"
	"benchpages/internal/pages"
)

// Result reports what a preparation run copied.
type Result struct {
	SnapshotMissing bool
	Copied          map[category.Name]int // Only categories with a history folder
}

// Run copies <snapshotDir>/<category>/history/*.json into <outputDir>/<category>/
// for every category. A missing snapshot or category history folder is not an
// error. Progress lines are written to out.
func Run(snapshotDir, outputDir string, out io.Writer, logger *zap.Logger) (Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	result := Result{Copied: make(map[category.Name]int)}
	snapshot := pages.NewSnapshot(snapshotDir)

	if !snapshot.Exists() {
		result.SnapshotMissing = true
		fmt.Fprintf(out, "No previous pages directory found at %s, skipping history preparation\n", snapshotDir)
		return result, nil
	}

	for _, name := range category.All() {
		if !snapshot.HasHistory(name) {
			logger.Debug("no previous history", zap.String("category", string(name)))
			continue
		}

		count, err := fsutil.CopyJSONFiles(snapshot.HistoryDir(name), filepath.Join(outputDir, string(name)), false, logger)
		if err != nil {
			return result, fmt.Errorf("prepare %s history: %w", name, err)
		}

		result.Copied[name] = count
		fmt.Fprintf(out, "Prepared %d %s history files\n", count, name)
	}

	return result, nil
}
