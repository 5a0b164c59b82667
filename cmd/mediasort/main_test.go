package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nomadcxx/mediasort/internal/reporter"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	t.Cleanup(func() { cfgFile = "" })
	return out.String(), err
}

func touch(t *testing.T, paths ...string) {
	t.Helper()
	for _, p := range paths {
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte("data"), 0644))
	}
}

func TestParse(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "The.Office.US.S02E05.720p.mkv")

	out, err := execute(t, "parse", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Type:     TV Show")
	assert.Contains(t, out, "Season:   2")
	assert.Contains(t, out, "Episode:  05")
	assert.Contains(t, out, "Rename:   The Office Us - S02E05")
}

func TestParseJSON(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "parse", "--json", "--root", dir, filepath.Join(dir, "Inception.2010.1080p.mkv"))
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))
	assert.Equal(t, "Movie", parsed["type"])
	assert.Equal(t, "Inception (2010)", parsed["rename"])
}

func TestScanJSON(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	root := t.TempDir()
	touch(t,
		filepath.Join(root, "show.s01e01.mkv"),
		filepath.Join(root, "show.s01e02.mkv"),
		filepath.Join(root, "notes.txt"),
	)

	out, err := execute(t, "--config", cfgPath, "scan", "--json", "--year", "2024", root)
	require.NoError(t, err)

	var report reporter.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 2, report.TotalFiles)
	require.Len(t, report.Containers, 1)
	assert.Equal(t, "Show", report.Containers[0].Title)
}

func TestScanText(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	root := t.TempDir()
	touch(t, filepath.Join(root, "Inception.2010.1080p.mkv"))

	out, err := execute(t, "--config", cfgPath, "scan", root)
	require.NoError(t, err)
	assert.Contains(t, out, "MEDIASORT SCAN REPORT")
	assert.Contains(t, out, "MOVIES")
}

func TestScanNoRoots(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	_, err := execute(t, "--config", cfgPath, "scan")
	assert.Error(t, err)
}

func TestScanBadThreshold(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	_, err := execute(t, "--config", cfgPath, "scan", "--threshold", "2", t.TempDir())
	assert.Error(t, err)
}

func TestPlan(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	root := t.TempDir()
	library := t.TempDir()
	touch(t, filepath.Join(root, "show.s01e01.mkv"))

	out, err := execute(t, "--config", cfgPath, "scan", "--json", "--year", "2024", root)
	require.NoError(t, err)
	reportFile := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, os.WriteFile(reportFile, []byte(out), 0644))

	out, err = execute(t, "--config", cfgPath, "plan", "--media", library, reportFile)
	require.NoError(t, err)
	assert.Contains(t, out, "Moves: 1")
	assert.Contains(t, out, filepath.Join(library, "TV Shows", "Show", "Season 01", "Show - S01E01.mkv"))
}

func TestConfigInitAndPath(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "mediasort", "config.toml")

	out, err := execute(t, "--config", cfgPath, "config", "path")
	require.NoError(t, err)
	assert.Equal(t, cfgPath+"\n", out)

	out, err = execute(t, "--config", cfgPath, "config")
	require.NoError(t, err)
	assert.Contains(t, out, "does not exist")

	_, err = execute(t, "--config", cfgPath, "config", "init")
	require.NoError(t, err)
	assert.FileExists(t, cfgPath)

	_, err = execute(t, "--config", cfgPath, "config", "init")
	assert.Error(t, err)

	out, err = execute(t, "--config", cfgPath, "config")
	require.NoError(t, err)
	assert.Contains(t, out, "similarity_threshold = 0.7")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "mediasort dev")
}
