// Package category defines the benchmark categories and the badge files each
// of them promotes into the shared badges directory.
package category

// Name identifies a benchmark category.
type Name string

const (
	Micro       Name = "micro"
	Integration Name = "integration"
)

// Badge maps a badge file inside a category's badges/ folder to its file
// name in the shared root badges/ folder.
type Badge struct {
	Source      string
	Destination string
}

// all is the fixed category order used by every command.
var all = []Name{Micro, Integration}

var defaultBadges = map[Name][]Badge{
	Micro: {
		{Source: "performance-badge.json", Destination: "performance-badge.json"},
		{Source: "trend-badge.json", Destination: "trend-badge.json"},
		{Source: "last-run-badge.json", Destination: "last-run-badge.json"},
	},
	Integration: {
		{Source: "integration-performance-badge.json", Destination: "integration-performance-badge.json"},
		{Source: "integration-trend-badge.json", Destination: "integration-trend-badge.json"},
		{Source: "last-run-badge.json", Destination: "integration-last-run-badge.json"},
	},
}

// All returns the known categories in processing order.
func All() []Name {
	return append([]Name(nil), all...)
}

// Known reports whether name is one of the fixed categories.
func Known(name string) bool {
	for _, c := range all {
		if string(c) == name {
			return true
		}
	}
	return false
}

// BadgeTable is a per-category badge mapping.
type BadgeTable map[Name][]Badge

// DefaultBadges returns a copy of the built-in badge mapping.
func DefaultBadges() BadgeTable {
	table := make(BadgeTable, len(defaultBadges))
	for name, badges := range defaultBadges {
		table[name] = append([]Badge(nil), badges...)
	}
	return table
}

// For returns the badges of a category, or nil when it has none.
func (t BadgeTable) For(name Name) []Badge {
	return t[name]
}
