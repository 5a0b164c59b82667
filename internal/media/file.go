// Package media infers titles, types and canonical names for media files
// and clusters them into containers of the same show or movie.
package media

import (
	"github.com/Nomadcxx/mediasort/internal/matcher"
)

// Type is the inferred media kind.
type Type string

const (
	TVShow Type = "TV Show"
	Movie  Type = "Movie"
)

// SeasonExtras is the season assigned to bonus content found under an
// "Extras" directory. It is not a real season index.
const SeasonExtras = -1

// MediaFile is the inferred record for one discovered file.
type MediaFile struct {
	Path      string           `json:"path"`
	OriginDir string           `json:"origin_dir"`
	FileName  string           `json:"file_name"`
	Extension string           `json:"extension"`
	Size      int64            `json:"size,omitempty"`
	Marker    string           `json:"marker,omitempty"`
	Season    *int             `json:"season,omitempty"`
	Episode   *matcher.Episode `json:"episode,omitempty"`
	Year      string           `json:"year,omitempty"`
	TopFolder string           `json:"top_folder,omitempty"`
	Title     string           `json:"title"`
	Type      Type             `json:"type"`
	Rename    string           `json:"rename"`
	Selected  bool             `json:"selected"`
}

// IsExtras reports whether the file carries the extras season.
func (f *MediaFile) IsExtras() bool {
	return f.Season != nil && *f.Season == SeasonExtras
}

// HasEpisode reports whether the file is a numbered episode of a real
// season, which is what gets an SxxEyy rename.
func (f *MediaFile) HasEpisode() bool {
	return f.Type == TVShow && f.Season != nil && !f.IsExtras() && f.Episode != nil
}
