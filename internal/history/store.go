// Package history manages a category's history/ folder: merging previously
// published entries into it and pruning it to the newest N entries.
//
// Entries are ordered by file name only. Callers must guarantee that history
// file names sort lexicographically in capture order, for example by carrying
// a zero-padded timestamp such as 2024-01-15T10-30-00Z. Content and
// modification times are never consulted. CheckNames reports entries that do
// not look sortable.
package history

import (
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"benchpages/internal/fsutil"
)

// DefaultMaxEntries is the retention limit used when none is configured.
const DefaultMaxEntries = 10

// Store manages the entries of one history folder.
type Store struct {
	Dir    string // The history/ folder
	Logger *zap.Logger
}

// NewStore creates a store for the given history folder.
func NewStore(dir string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{Dir: dir, Logger: logger}
}

// List returns the entry names, newest first.
// A missing folder has no entries.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !fsutil.IsJSONName(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}

	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	return names, nil
}

// Merge copies the entries of srcDir into the store without overwriting
// entries that already exist. Returns the number of entries added.
func (s *Store) Merge(srcDir string) (int, error) {
	return fsutil.CopyJSONFiles(srcDir, s.Dir, true, s.Logger)
}

// Retain deletes every entry beyond the newest max.
// Returns the number of entries deleted.
func (s *Store) Retain(max int) (int, error) {
	if !fsutil.IsDir(s.Dir) {
		return 0, nil
	}

	names, err := s.List()
	if err != nil {
		return 0, err
	}
	if max < 0 {
		max = 0
	}
	if len(names) <= max {
		return 0, nil
	}

	removed := 0
	for _, name := range names[max:] {
		path := filepath.Join(s.Dir, name)
		if err := os.Remove(path); err != nil {
			return removed, err
		}
		s.Logger.Debug("removed history entry", zap.String("path", path))
		removed++
	}

	return removed, nil
}

// EnforceRetention keeps only the newest max entries of dir.
// A missing dir is a no-op. Returns the number of entries deleted.
func EnforceRetention(dir string, max int, logger *zap.Logger) (int, error) {
	return NewStore(dir, logger).Retain(max)
}
