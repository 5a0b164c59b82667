// Package matcher extracts season and episode markers from media file names
// using an ordered table of lexical rules.
package matcher

import (
	"time"
)

// Result is what a rule recovered from a name. Marker is the literal text
// that matched and is empty when nothing did.
type Result struct {
	Rule    string
	Marker  string
	Season  *int
	Episode *Episode
}

// Found reports whether a season or an episode was recovered.
func (r Result) Found() bool {
	return r.Season != nil || r.Episode != nil
}

// Matcher evaluates rule tables relative to a reference year. The year only
// matters for the bare-digit rule, which refuses numbers that look like a
// recent release year.
type Matcher struct {
	year int
}

// New returns a Matcher using year as the reference calendar year.
func New(year int) *Matcher {
	return &Matcher{year: year}
}

// Default returns a Matcher for the current calendar year.
func Default() *Matcher {
	return New(time.Now().Year())
}

// Year returns the reference year.
func (m *Matcher) Year() int {
	return m.year
}

// Match runs FileRules against a file stem (extension already removed).
func (m *Matcher) Match(stem string) Result {
	return m.apply(FileRules, stem)
}

// MatchSeasonFolder looks for a season in a directory name.
func (m *Matcher) MatchSeasonFolder(dir string) Result {
	return m.apply(SeasonFolderRules, dir)
}

// MatchFallback is the ancestor pass used when Match found nothing: the
// episode comes from the stem, the season from the parent directory. The
// marker is only the part found in the stem.
func (m *Matcher) MatchFallback(stem, parent string) Result {
	res := m.apply(EpisodeFallbackRules, stem)

	if season := m.MatchSeasonFolder(parent); season.Season != nil {
		res.Season = season.Season
		if res.Rule == "" {
			res.Rule = season.Rule
		}
	}
	return res
}

func (m *Matcher) apply(rules []Rule, name string) Result {
	if name == "" {
		return Result{}
	}

	for _, rule := range rules {
		groups := rule.Pattern.FindStringSubmatch(name)
		if groups == nil {
			continue
		}
		res, ok := rule.Extract(groups, m.year)
		if !ok {
			continue
		}
		res.Rule = rule.Name
		return res
	}
	return Result{}
}
