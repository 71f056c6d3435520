// Package report formats the end-of-run summary of an assembled output tree.
package report

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Entry is one top-level item of the output directory.
type Entry struct {
	Name  string
	IsDir bool
}

// ListEntries returns the top-level entries of dir sorted by name.
func ListEntries(dir string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, e := range dirEntries {
		isDir := e.IsDir()
		if !isDir && e.Type()&os.ModeSymlink != 0 {
			if info, err := os.Stat(filepath.Join(dir, e.Name())); err == nil {
				isDir = info.IsDir()
			}
		}
		entries = append(entries, Entry{Name: e.Name(), IsDir: isDir})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return entries, nil
}

// FormatSummary formats the summary block printed after assembly: a blank
// line, a header naming dir, then one indented line per entry with a
// trailing slash on directories.
func FormatSummary(dir string, entries []Entry) string {
	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString("Assembled deployment artifacts in " + strings.TrimRight(dir, "/") + "/\n")

	for _, e := range entries {
		if e.IsDir {
			sb.WriteString("  " + e.Name + "/\n")
		} else {
			sb.WriteString("  " + e.Name + "\n")
		}
	}

	return sb.String()
}
