// Package pages reads the previously published pages snapshot, the merge
// source for benchmark history. A snapshot is never written to.
package pages

import (
	"path/filepath"

	"benchpages/internal/category"
	"benchpages/internal/fsutil"
)

// HistoryDirName is the folder holding history entries inside a category.
const HistoryDirName = "history"

// Snapshot is a previous-pages tree laid out as <root>/<category>/history/*.json.
type Snapshot struct {
	Root string // Empty when no snapshot was supplied
}

// NewSnapshot creates a snapshot rooted at root.
func NewSnapshot(root string) Snapshot {
	return Snapshot{Root: root}
}

// Configured reports whether a snapshot path was supplied at all.
func (s Snapshot) Configured() bool {
	return s.Root != ""
}

// Exists reports whether the snapshot root is an existing directory.
func (s Snapshot) Exists() bool {
	return s.Configured() && fsutil.IsDir(s.Root)
}

// HistoryDir returns the history folder of a category.
func (s Snapshot) HistoryDir(name category.Name) string {
	return filepath.Join(s.Root, string(name), HistoryDirName)
}

// HasHistory reports whether the category's history folder exists.
func (s Snapshot) HasHistory(name category.Name) bool {
	return s.Exists() && fsutil.IsDir(s.HistoryDir(name))
}
