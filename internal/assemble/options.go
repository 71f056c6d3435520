package assemble

import (
	"errors"
	"time"

	"benchpages/internal/category"
	"benchpages/internal/history"
)

// ErrNoResults is returned when no category results directory is configured.
var ErrNoResults = errors.New("at least one of --micro-results or --integration-results is required")

// ErrNegativeMaxHistory is returned when the retention limit is below zero.
// Zero is accepted and prunes every history entry.
var ErrNegativeMaxHistory = errors.New("max history must not be negative")

// Options configures one assembly run.
type Options struct {
	Results          map[category.Name]string // Results directory per category; empty paths are ignored
	PreviousPagesDir string                   // Optional previous-pages snapshot
	OutputDir        string
	CommitSHA        string
	MaxHistory       int
	Badges           category.BadgeTable // nil means category.DefaultBadges()
	Now              func() time.Time    // nil means time.Now
}

// module is a configured category and its results directory.
type module struct {
	Name       category.Name
	ResultsDir string
}

// DefaultOptions returns options with the built-in retention limit and badge table.
func DefaultOptions() Options {
	return Options{
		Results:    make(map[category.Name]string),
		MaxHistory: history.DefaultMaxEntries,
		Badges:     category.DefaultBadges(),
	}
}

// modules returns the configured categories in processing order.
func (o Options) modules() []module {
	var mods []module
	for _, name := range category.All() {
		if dir := o.Results[name]; dir != "" {
			mods = append(mods, module{Name: name, ResultsDir: dir})
		}
	}
	return mods
}

// Validate checks the options for usage errors: at least one results
// directory must be set and MaxHistory must not be negative.
func (o Options) Validate() error {
	if len(o.modules()) == 0 {
		return ErrNoResults
	}
	if o.MaxHistory < 0 {
		return ErrNegativeMaxHistory
	}
	return nil
}
