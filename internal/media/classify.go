package media

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Nomadcxx/mediasort/internal/matcher"
)

// Classifier turns a discovered path into a MediaFile. It holds no state
// besides its matcher and is safe for concurrent use.
type Classifier struct {
	matcher *matcher.Matcher
}

// NewClassifier returns a Classifier backed by m.
func NewClassifier(m *matcher.Matcher) *Classifier {
	return &Classifier{matcher: m}
}

// Classify infers a MediaFile for the current calendar year.
func Classify(path, originDir string) *MediaFile {
	return NewClassifier(matcher.Default()).Classify(path, originDir)
}

// Classify infers season, episode, title, type and rename for path, which
// was discovered beneath originDir. It never fails: a name with no usable
// marker becomes a Movie titled after the file.
func (c *Classifier) Classify(path, originDir string) *MediaFile {
	fileName := filepath.Base(path)
	stem, ext := splitExt(fileName)
	parent := filepath.Base(filepath.Dir(path))

	f := &MediaFile{
		Path:      path,
		OriginDir: originDir,
		FileName:  fileName,
		Extension: strings.ToLower(ext),
		Selected:  true,
	}

	if top := topFolder(path, originDir); top != "" {
		f.TopFolder = TopFolderTitle(top, c.matcher.MatchSeasonFolder(top).Marker)
	}

	res := c.matcher.Match(stem)
	fromFolders := false
	if !res.Found() {
		res = c.matcher.MatchFallback(stem, parent)
		fromFolders = res.Found()
	}
	f.Marker = res.Marker
	f.Season = res.Season
	f.Episode = res.Episode

	if f.Season == nil && f.Episode != nil && f.TopFolder != "" {
		season := 1
		f.Season = &season
	}
	if isExtrasDir(parent) {
		season := SeasonExtras
		f.Season = &season
	}
	if f.Season == nil && f.Episode != nil {
		// A lone number with no show folder around it is part of a movie title.
		f.Marker = ""
		f.Episode = nil
	}

	f.Type = Movie
	if f.Marker != "" || f.Season != nil || f.Episode != nil {
		f.Type = TVShow
	}

	titled := titleCase(stem)
	title := titled
	if f.Marker != "" {
		title, _ = cutAtMarker(titled, f.Marker)
	}
	title = stripNoise(title)
	cleaned := stripNoise(titled)

	switch {
	case f.Type == TVShow && fromFolders && f.TopFolder != "":
		title = f.TopFolder
	case f.Type == Movie:
		if year := ExtractYear(stem); year != "" {
			if t, ok := removeYear(title, year); ok {
				title = t
				f.Year = year
			}
		}
	}

	if title == "" {
		title = stem
	}
	if cleaned == "" {
		cleaned = stem
	}
	f.Title = title
	f.Rename = buildRename(f, cleaned)
	return f
}

// buildRename derives the canonical target name (without extension).
func buildRename(f *MediaFile, cleaned string) string {
	var rename string
	switch {
	case f.HasEpisode():
		rename = fmt.Sprintf("%s - S%02dE%s", f.Title, *f.Season, f.Episode)
	case f.Type == TVShow:
		rename = cleaned
	case f.Year != "":
		rename = f.Title + " (" + f.Year + ")"
	default:
		rename = f.Title
	}

	if strings.TrimSpace(rename) == "" {
		stem, _ := splitExt(f.FileName)
		return stem
	}
	return rename
}

// SetTitle replaces the inferred title and rebuilds any rename derived
// from it.
func (f *MediaFile) SetTitle(title string) {
	if title == "" || title == f.Title {
		return
	}
	f.Title = title
	if f.HasEpisode() || f.Type == Movie {
		f.Rename = buildRename(f, f.Rename)
	}
}

// splitExt splits "name.ext" into ("name", "ext"). A leading dot alone
// (".hidden") is not an extension.
func splitExt(fileName string) (string, string) {
	idx := strings.LastIndex(fileName, ".")
	if idx <= 0 {
		return fileName, ""
	}
	return fileName[:idx], fileName[idx+1:]
}

// topFolder returns the first directory beneath originDir on the way to
// path, or "" when the file sits directly in originDir.
func topFolder(path, originDir string) string {
	rel, err := filepath.Rel(originDir, filepath.Dir(path))
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return ""
	}
	return strings.Split(rel, string(filepath.Separator))[0]
}

func isExtrasDir(dir string) bool {
	for _, token := range strings.Fields(cleanText(dir)) {
		if strings.EqualFold(trimParens(token), "extras") {
			return true
		}
	}
	return false
}
