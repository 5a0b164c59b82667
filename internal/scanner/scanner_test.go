package scanner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nomadcxx/mediasort/internal/matcher"
	"github.com/Nomadcxx/mediasort/internal/media"
)

// writeTree creates empty files (and their directories) under root.
func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("test content"), 0644))
	}
}

func relPaths(t *testing.T, root string, candidates []Candidate) []string {
	t.Helper()
	var out []string
	for _, c := range candidates {
		rel, err := filepath.Rel(root, c.Path)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func TestDiscoverOrderAndFilter(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"b/ep2.mkv",
		"b/ep1.mkv",
		"a.mp4",
		"z.avi",
		"B2/x.mkv",
		"b/sub/deep.m4v",
		"notes.txt",
		"b/cover.jpg",
		"UPPER.MKV",
		"noext",
	)

	candidates, err := Discover(context.Background(), []string{root}, DefaultExtensions)
	require.NoError(t, err)

	// Files of a directory come before files of its subdirectories.
	assert.Equal(t, []string{
		"UPPER.MKV",
		"a.mp4",
		"z.avi",
		"B2/x.mkv",
		"b/ep1.mkv",
		"b/ep2.mkv",
		"b/sub/deep.m4v",
	}, relPaths(t, root, candidates))

	for _, c := range candidates {
		assert.Equal(t, root, c.Root)
		assert.Equal(t, int64(len("test content")), c.Size)
	}
}

func TestDiscoverFollowsFileSymlinks(t *testing.T) {
	root := t.TempDir()
	outside := t.TempDir()
	writeTree(t, outside, "real.mkv", "folder.mkv/inner.txt")
	writeTree(t, root, "local.mkv")

	if err := os.Symlink(filepath.Join(outside, "real.mkv"), filepath.Join(root, "linked.mkv")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
	require.NoError(t, os.Symlink(filepath.Join(outside, "missing.mkv"), filepath.Join(root, "broken.mkv")))
	require.NoError(t, os.Symlink(filepath.Join(outside, "folder.mkv"), filepath.Join(root, "dir.mkv")))

	candidates, err := Discover(context.Background(), []string{root}, DefaultExtensions)
	require.NoError(t, err)

	assert.Equal(t, []string{"linked.mkv", "local.mkv"}, relPaths(t, root, candidates))
	assert.Equal(t, int64(len("test content")), candidates[0].Size)
}

func TestDiscoverMultipleRoots(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	writeTree(t, first, "z.mkv")
	writeTree(t, second, "a.mkv")

	candidates, err := Discover(context.Background(), []string{first, second}, []string{".MKV"})
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.Equal(t, first, candidates[0].Root)
	assert.Equal(t, second, candidates[1].Root)
}

func TestDiscoverMissingRoot(t *testing.T) {
	_, err := Discover(context.Background(), []string{filepath.Join(t.TempDir(), "missing")}, DefaultExtensions)
	assert.Error(t, err)
}

func TestExtensionSet(t *testing.T) {
	set := ExtensionSet([]string{"MKV", ".mp4", " avi ", ""})
	assert.Equal(t, map[string]bool{"mkv": true, "mp4": true, "avi": true}, set)

	assert.True(t, isMediaFile("show.S01E01.MKV", set))
	assert.False(t, isMediaFile(".mkv", set))
	assert.False(t, isMediaFile("show.srt", set))
}

func TestScan(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"Inception.2010.1080p.BluRay.mkv",
		"The Matrix 1999.mkv",
		"The Office (US)/The.Office.US.S02E05.720p.mkv",
		"The Office (US)/The.Office.US.S02E06.720p.mkv",
		"The Office (US)/Extras/bloopers.MKV",
		"readme.txt",
	)

	opts := DefaultOptions()
	opts.Year = 2024
	opts.Workers = 2

	progressCh := make(chan ScanProgress, 100)
	result, err := Scan(context.Background(), []string{root}, opts, progressCh)
	require.NoError(t, err)
	close(progressCh)

	require.Len(t, result.Files, 5)
	assert.Equal(t, "Inception.2010.1080p.BluRay.mkv", result.Files[0].FileName)
	assert.Equal(t, "bloopers.MKV", result.Files[4].FileName)

	require.Len(t, result.Containers, 3)

	inception := result.Containers[0]
	assert.Equal(t, "Inception", inception.Title)
	assert.Equal(t, media.Movie, inception.Type)
	assert.Equal(t, "Inception (2010)", inception.MediaFiles[0].Rename)

	matrix := result.Containers[1]
	assert.Equal(t, "The Matrix", matrix.Title)
	assert.Equal(t, "The Matrix (1999)", matrix.MediaFiles[0].Rename)

	office := result.Containers[2]
	assert.Equal(t, media.TVShow, office.Type)
	assert.Equal(t, "The Office (Us)", office.Title)
	require.Len(t, office.MediaFiles, 3)
	assert.Equal(t, "The Office (Us) - S02E05", office.MediaFiles[0].Rename)
	assert.Equal(t, "The Office (Us) - S02E06", office.MediaFiles[1].Rename)
	assert.True(t, office.MediaFiles[2].IsExtras())
	assert.Equal(t, "Bloopers", office.MediaFiles[2].Rename)

	var last ScanProgress
	for p := range progressCh {
		last = p
	}
	assert.Equal(t, StageComplete, last.Stage)
	assert.Equal(t, 5, last.FilesFound)
	assert.Equal(t, 3, last.ContainersFound)
}

func TestScanDeterministic(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"Show A/show.a.s01e01.mkv",
		"Show A/show.a.s01e02.mkv",
		"Show B/show.b.s01e01.mkv",
		"Other/Film.2001.mkv",
		"Other/Film.2001.Directors.Cut.mkv",
	)

	opts := DefaultOptions()
	opts.Year = 2024

	titles := func(workers int) []string {
		opts.Workers = workers
		result, err := Scan(context.Background(), []string{root}, opts, nil)
		require.NoError(t, err)
		var out []string
		for _, c := range result.Containers {
			out = append(out, c.Title)
		}
		return out
	}

	assert.Equal(t, titles(1), titles(8))
}

func TestScanCancelled(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "show.s01e01.mkv")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Scan(ctx, []string{root}, DefaultOptions(), nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScanNoRoots(t *testing.T) {
	_, err := Scan(context.Background(), nil, DefaultOptions(), nil)
	assert.Error(t, err)
}

func TestClassifyParallelKeepsOrder(t *testing.T) {
	candidates := []Candidate{
		{Path: "/dl/c.s01e03.mkv", Root: "/dl"},
		{Path: "/dl/a.s01e01.mkv", Root: "/dl"},
		{Path: "/dl/b.s01e02.mkv", Root: "/dl"},
	}

	files, err := ClassifyParallel(context.Background(), media.NewClassifier(matcher.New(2024)), candidates, ParallelConfig{Workers: 3}, NewProgressReporter(nil))
	require.NoError(t, err)
	require.Len(t, files, 3)
	assert.Equal(t, "c.s01e03.mkv", files[0].FileName)
	assert.Equal(t, "a.s01e01.mkv", files[1].FileName)
	assert.Equal(t, "b.s01e02.mkv", files[2].FileName)
}
