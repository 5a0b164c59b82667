package planner

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nomadcxx/mediasort/internal/matcher"
	"github.com/Nomadcxx/mediasort/internal/media"
)

var classifier = media.NewClassifier(matcher.New(2024))

func group(t *testing.T, paths ...string) []*media.MediaContainer {
	t.Helper()
	var files []*media.MediaFile
	for _, p := range paths {
		f := classifier.Classify(filepath.FromSlash(p), filepath.FromSlash("/dl"))
		f.Size = 100
		files = append(files, f)
	}
	media.ApplyTopFolderTitles(files)

	var containers []*media.MediaContainer
	for _, f := range files {
		containers = media.AddToGroup(f, containers, media.DefaultThreshold)
	}
	return containers
}

func lib(parts ...string) string {
	return filepath.Join(append([]string{filepath.FromSlash("/library")}, parts...)...)
}

func TestBuild(t *testing.T) {
	containers := group(t,
		"/dl/The.Office.US.S02E05.mkv",
		"/dl/The.Office.UK.S01E01.mkv",
		"/dl/Inception.2010.1080p.mkv",
		"/dl/Show/Extras/show.s01e99.mkv",
	)

	plan, err := Build(containers, filepath.FromSlash("/library"))
	require.NoError(t, err)
	require.Len(t, plan.Operations, 4)

	dests := make(map[string]string)
	for _, op := range plan.Operations {
		assert.Equal(t, OpMove, op.Type)
		dests[filepath.Base(op.Source)] = op.Destination
	}

	assert.Equal(t, lib("TV Shows", "The Office", "Season 02", "The Office Us - S02E05.mkv"), dests["The.Office.US.S02E05.mkv"])
	assert.Equal(t, lib("TV Shows", "The Office", "Season 01", "The Office Uk - S01E01.mkv"), dests["The.Office.UK.S01E01.mkv"])
	assert.Equal(t, lib("Movies", "Inception (2010).mkv"), dests["Inception.2010.1080p.mkv"])
	assert.Equal(t, lib("TV Shows", "Show", "Extras", "Show S01e99.mkv"), dests["show.s01e99.mkv"])

	assert.Equal(t, int64(400), plan.TotalSize())
	assert.Len(t, plan.Moves(), 4)
}

func TestBuildSkipsUnselected(t *testing.T) {
	containers := group(t, "/dl/show.s01e01.mkv", "/dl/show.s01e02.mkv")
	containers[0].MediaFiles[1].Selected = false

	plan, err := Build(containers, filepath.FromSlash("/library"))
	require.NoError(t, err)
	require.Len(t, plan.Operations, 1)
	assert.Equal(t, filepath.FromSlash("/dl/show.s01e01.mkv"), plan.Operations[0].Source)
}

func TestBuildDuplicateDestination(t *testing.T) {
	containers := group(t, "/dl/a/show.s01e01.mkv", "/dl/b/show.s01e01.mkv")

	plan, err := Build(containers, filepath.FromSlash("/library"))
	require.NoError(t, err)
	require.Len(t, plan.Operations, 2)

	assert.Equal(t, OpMove, plan.Operations[0].Type)
	assert.Equal(t, OpSkip, plan.Operations[1].Type)
	assert.Contains(t, plan.Operations[1].Reason, "already claimed")
	assert.Len(t, plan.Moves(), 1)
}

func TestBuildAlreadyOrganized(t *testing.T) {
	f := classifier.Classify(lib("Movies", "Inception (2010).mkv"), filepath.FromSlash("/library"))
	containers := []*media.MediaContainer{media.NewContainer(f)}

	plan, err := Build(containers, filepath.FromSlash("/library"))
	require.NoError(t, err)
	require.Len(t, plan.Operations, 1)
	assert.Equal(t, OpSkip, plan.Operations[0].Type)
	assert.Equal(t, "already organized", plan.Operations[0].Reason)
}

func TestSkipExisting(t *testing.T) {
	containers := group(t, "/dl/show.s01e01.mkv", "/dl/show.s01e02.mkv")

	plan, err := Build(containers, filepath.FromSlash("/library"))
	require.NoError(t, err)

	existing := lib("TV Shows", "Show", "Season 01", "Show - S01E02.mkv")
	plan.SkipExisting(func(path string) bool { return path == existing })

	assert.Equal(t, OpMove, plan.Operations[0].Type)
	assert.Equal(t, OpSkip, plan.Operations[1].Type)
	assert.Equal(t, "destination exists", plan.Operations[1].Reason)
}

func TestBuildInvalidRoot(t *testing.T) {
	tests := []struct {
		name string
		root string
	}{
		{"empty", ""},
		{"relative", "library"},
		{"protected", "/etc/media"},
		{"protected exact", "/usr"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(nil, tt.root)
			assert.Error(t, err)
		})
	}
}

func TestDestinationWithoutSeason(t *testing.T) {
	f := &media.MediaFile{Title: "Show", Type: media.TVShow, Rename: "Show Special", Extension: "mkv"}
	c := &media.MediaContainer{Title: "Show", Type: media.TVShow}
	assert.Equal(t, lib("TV Shows", "Show", "Show Special.mkv"), Destination(filepath.FromSlash("/library"), c, f))
}

func TestSeasonDir(t *testing.T) {
	assert.Equal(t, "Season 01", SeasonDir(1))
	assert.Equal(t, "Season 12", SeasonDir(12))
}

func TestIsProtectedPath(t *testing.T) {
	assert.True(t, isProtectedPath("/usr/local", ProtectedPaths))
	assert.False(t, isProtectedPath("/usrdata/media", ProtectedPaths))
	assert.False(t, isProtectedPath("/mnt/media", ProtectedPaths))
}
