// Package config loads the optional pipeline configuration file that
// overrides the retention limit and the badge mapping.
package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"benchpages/internal/category"
	"benchpages/internal/history"
)

// ErrUnknownCategory is returned when the file names a category that does not exist.
var ErrUnknownCategory = errors.New("unknown category")

// ErrNegativeMaxHistory is returned when max_history is below zero.
var ErrNegativeMaxHistory = errors.New("max_history must not be negative")

// Config is the effective pipeline configuration.
type Config struct {
	MaxHistory int
	Badges     category.BadgeTable
}

// configFile represents the YAML file structure
type configFile struct {
	MaxHistory *int                         `yaml:"max_history,omitempty"`
	Badges     map[string]map[string]string `yaml:"badges,omitempty"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		MaxHistory: history.DefaultMaxEntries,
		Badges:     category.DefaultBadges(),
	}
}

// Parse parses YAML content on top of the built-in configuration.
func Parse(content []byte) (Config, error) {
	var cf configFile
	if err := yaml.Unmarshal(content, &cf); err != nil {
		return Config{}, fmt.Errorf("invalid YAML: %w", err)
	}

	cfg := Default()

	if cf.MaxHistory != nil {
		if *cf.MaxHistory < 0 {
			return Config{}, fmt.Errorf("%w: %d", ErrNegativeMaxHistory, *cf.MaxHistory)
		}
		cfg.MaxHistory = *cf.MaxHistory
	}

	for name, mapping := range cf.Badges {
		if !category.Known(name) {
			return Config{}, fmt.Errorf("%w: '%s'", ErrUnknownCategory, name)
		}

		// YAML maps are unordered; sort for a stable copy order
		sources := make([]string, 0, len(mapping))
		for src := range mapping {
			sources = append(sources, src)
		}
		sort.Strings(sources)

		badges := make([]category.Badge, 0, len(mapping))
		for _, src := range sources {
			dst := mapping[src]
			if err := validateFileName(src); err != nil {
				return Config{}, fmt.Errorf("badge source for '%s': %w", name, err)
			}
			if err := validateFileName(dst); err != nil {
				return Config{}, fmt.Errorf("badge destination for '%s': %w", name, err)
			}
			badges = append(badges, category.Badge{Source: src, Destination: dst})
		}
		cfg.Badges[category.Name(name)] = badges
	}

	if err := checkDestinations(cfg.Badges); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Load reads and parses a configuration file.
func Load(path string) (Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	return Parse(content)
}

// validateFileName rejects empty names and anything that is not a plain file name.
func validateFileName(name string) error {
	if name == "" {
		return errors.New("empty file name")
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("'%s' is not a plain file name", name)
	}
	return nil
}

// checkDestinations ensures no two badges land on the same shared file.
func checkDestinations(table category.BadgeTable) error {
	owner := make(map[string]category.Name)
	for _, name := range category.All() {
		for _, b := range table.For(name) {
			if other, ok := owner[b.Destination]; ok {
				return fmt.Errorf("badge destination '%s' used by both '%s' and '%s'", b.Destination, other, name)
			}
			owner[b.Destination] = name
		}
	}
	return nil
}
