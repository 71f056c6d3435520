package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestRun_PrepareHistory_MissingSnapshot(t *testing.T) {
	previous := filepath.Join(t.TempDir(), "previous-pages", "benchmarks")
	output := filepath.Join(t.TempDir(), "benchmark-history")

	code, stdout, stderr := runCLI("prepare-history", "--previous-pages-dir", previous, "--output-dir", output)

	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, previous)
	assert.Contains(t, stdout, "skipping history preparation")
	assert.Empty(t, stderr)
	assert.NoDirExists(t, output)
}

func TestRun_Assemble_NoResults(t *testing.T) {
	code, stdout, stderr := runCLI("assemble", "--output-dir", t.TempDir(), "--commit-sha", "abc")

	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Equal(t, "Error: at least one of --micro-results or --integration-results is required\n", stderr)
}

func TestRun_Assemble_OnlyMicro(t *testing.T) {
	root := t.TempDir()
	micro := filepath.Join(root, "micro-results")
	writeFile(t, filepath.Join(micro, "badges", "performance-badge.json"), `{"message": "42 ops/s"}`)
	out := filepath.Join(root, "gh-pages")

	code, stdout, stderr := runCLI("assemble", "--micro-results", micro, "--output-dir", out, "--commit-sha", "abc")

	require.Equal(t, 0, code, "stderr: %s", stderr)
	assert.FileExists(t, filepath.Join(out, "badges", "performance-badge.json"))
	assert.NoDirExists(t, filepath.Join(out, "integration"))
	assert.Contains(t, stdout, "Assembled deployment artifacts in "+out+"/\n")
}

func TestRun_Assemble_RetentionScenario(t *testing.T) {
	root := t.TempDir()
	micro := filepath.Join(root, "micro-results")
	for d := 1; d <= 15; d++ {
		writeFile(t, filepath.Join(micro, "history", fmt.Sprintf("2024-01-%02d.json", d)), "{}")
	}
	out := filepath.Join(root, "gh-pages")

	code, _, stderr := runCLI("assemble", "--micro-results", micro, "--output-dir", out,
		"--commit-sha", "abc", "--max-history", "10")
	require.Equal(t, 0, code, "stderr: %s", stderr)

	entries, err := os.ReadDir(filepath.Join(micro, "history"))
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	var want []string
	for d := 6; d <= 15; d++ {
		want = append(want, fmt.Sprintf("2024-01-%02d.json", d))
	}
	assert.Equal(t, want, names)
}

func TestRun_Assemble_Metadata(t *testing.T) {
	root := t.TempDir()
	integration := filepath.Join(root, "integration-results")
	writeFile(t, filepath.Join(integration, "badges", "last-run-badge.json"), "{}")
	out := filepath.Join(root, "gh-pages")

	code, _, stderr := runCLI("assemble", "--integration-results", integration, "--output-dir", out, "--commit-sha", "0123abcd")
	require.Equal(t, 0, code, "stderr: %s", stderr)

	data, err := os.ReadFile(filepath.Join(out, "metadata.json"))
	require.NoError(t, err)

	var meta map[string]string
	require.NoError(t, json.Unmarshal(data, &meta))
	assert.Equal(t, "0123abcd", meta["commit"])
	assert.Regexp(t, regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}Z$`), meta["timestamp"])
	assert.True(t, strings.HasSuffix(string(data), "}\n"))

	assert.FileExists(t, filepath.Join(out, "badges", "integration-last-run-badge.json"))
	assert.NoDirExists(t, filepath.Join(out, "micro"))
}

func TestRun_Assemble_MissingResultsIsPartialSuccess(t *testing.T) {
	root := t.TempDir()
	micro := filepath.Join(root, "micro-results")
	writeFile(t, filepath.Join(micro, "index.html"), "<html>")
	missing := filepath.Join(root, "integration-results")
	out := filepath.Join(root, "gh-pages")

	code, stdout, _ := runCLI("assemble", "--micro-results", micro, "--integration-results", missing,
		"--output-dir", out, "--commit-sha", "abc")

	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "Warning: integration results not found at "+missing+", skipping")
	assert.FileExists(t, filepath.Join(out, "micro", "index.html"))
}

func TestRun_NoArguments(t *testing.T) {
	code, _, stderr := runCLI()

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "missing subcommand")
}

func TestRun_UnknownFlag(t *testing.T) {
	code, _, stderr := runCLI("prepare-history", "--previous-pages", "x", "--output-dir", "y")

	assert.Equal(t, 1, code)
	assert.True(t, strings.HasPrefix(stderr, "Error:"))
}
