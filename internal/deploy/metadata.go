// Package deploy produces the deployment metadata document written at the
// root of the assembled output tree.
package deploy

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// FileName is the metadata document name inside the output directory.
const FileName = "metadata.json"

// TimestampLayout formats UTC times as YYYY-MM-DDTHH:MM:SSZ.
const TimestampLayout = "2006-01-02T15:04:05Z"

// Metadata describes one assembled deployment.
type Metadata struct {
	Timestamp string `json:"timestamp"` // UTC, TimestampLayout
	Commit    string `json:"commit"`
}

// NewMetadata builds metadata for a deployment assembled at now.
func NewMetadata(now time.Time, commit string) Metadata {
	return Metadata{
		Timestamp: now.UTC().Format(TimestampLayout),
		Commit:    commit,
	}
}

// ToJSON serializes the metadata with two-space indentation and a trailing newline.
func (m Metadata) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// WriteToFile writes the metadata to path, creating parent directories if
// needed and replacing any existing file.
func (m Metadata) WriteToFile(path string) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	data, err := m.ToJSON()
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
