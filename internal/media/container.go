package media

import (
	"strings"
)

// DefaultThreshold is the similarity a title needs to join a container.
const DefaultThreshold = 0.7

// MediaContainer groups files believed to be the same show or movie. Its
// title narrows to the words all members share.
type MediaContainer struct {
	Title      string       `json:"title"`
	Type       Type         `json:"type"`
	MediaFiles []*MediaFile `json:"media_files"`
}

// NewContainer starts a container defined by f.
func NewContainer(f *MediaFile) *MediaContainer {
	return &MediaContainer{
		Title:      f.Title,
		Type:       f.Type,
		MediaFiles: []*MediaFile{f},
	}
}

// Accepts reports whether f is close enough to join c.
func (c *MediaContainer) Accepts(f *MediaFile, threshold float64) bool {
	return c.Type == f.Type && SimilarityRatio(c.Title, f.Title) >= threshold
}

// Merge adds f to c if it is accepted, narrowing the container title to the
// words it shares with f. It reports whether f joined.
func (c *MediaContainer) Merge(f *MediaFile, threshold float64) bool {
	if !c.Accepts(f, threshold) {
		return false
	}
	c.MediaFiles = append(c.MediaFiles, f)
	if narrowed := commonWords(c.Title, f.Title); narrowed != "" {
		c.Title = narrowed
	}
	return true
}

// AddToGroup places f in the first container that accepts it, in order,
// or appends a new container for it. The result depends on the order files
// are added in.
func AddToGroup(f *MediaFile, containers []*MediaContainer, threshold float64) []*MediaContainer {
	for _, c := range containers {
		if c.Merge(f, threshold) {
			return containers
		}
	}
	return append(containers, NewContainer(f))
}

// commonWords keeps the words of base, in order, that also appear in other.
func commonWords(base, other string) string {
	present := make(map[string]bool)
	for _, w := range strings.Fields(other) {
		present[strings.ToLower(w)] = true
	}

	var kept []string
	for _, w := range strings.Fields(base) {
		if present[strings.ToLower(w)] {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, " ")
}
