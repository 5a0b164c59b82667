package matcher

import (
	"regexp"
	"strconv"
)

// Rule is one lexical season/episode pattern. Pattern group 1 is always the
// whole marker; the remaining groups belong to Extract.
type Rule struct {
	Name    string
	Pattern *regexp.Regexp
	Extract func(groups []string, year int) (Result, bool)
}

// Reference-year window and false positives for the bare-digit rule.
const (
	yearWindow     = 30
	maxBareEpisode = 30
)

var bareFalsePositives = map[string]bool{
	"360":  true,
	"480":  true,
	"720":  true,
	"1080": true,
	"264":  true,
}

// FileRules are evaluated top-down against a file stem; the first rule that
// both matches and extracts wins.
var FileRules []Rule

// SeasonFolderRules recover a season from a parent directory name
// ("S02", "Season 2", "season_02").
var SeasonFolderRules []Rule

// EpisodeFallbackRules recover a lone episode from a file stem ("E05",
// "Episode 5") once FileRules found nothing.
var EpisodeFallbackRules []Rule

func init() {
	FileRules = []Rule{
		{
			Name:    "SxxEyy",
			Pattern: bounded(`s(\d{1,2})e(\d{1,2})(?:-?e(\d{1,2})|-(\d{1,2}))?`),
			Extract: extractSeasonEpisodeRange,
		},
		{
			Name:    "Sxx Eyy",
			Pattern: bounded(`s(\d{1,2})[^\p{L}\p{N}]e(\d{1,2})`),
			Extract: extractSeasonEpisode,
		},
		{
			Name:    "AxB",
			Pattern: bounded(`(\d{1,2})x(\d{1,2})`),
			Extract: extractSeasonEpisode,
		},
		{
			Name:    "Season N Episode M",
			Pattern: bounded(`season[^\p{L}\p{N}]+(\d{1,2})[^\p{L}\p{N}]+episode[^\p{L}\p{N}]+(\d{1,2})`),
			Extract: extractSeasonEpisode,
		},
		{
			Name:    "bare digits",
			Pattern: bounded(`(\d{3,4})`),
			Extract: extractBareDigits,
		},
	}

	SeasonFolderRules = []Rule{
		{
			Name:    "Sxx",
			Pattern: bounded(`s(\d{1,2})`),
			Extract: extractSeasonOnly,
		},
		{
			Name:    "Season N",
			Pattern: bounded(`season[^\p{L}\p{N}]*(\d{1,2})`),
			Extract: extractSeasonOnly,
		},
	}

	EpisodeFallbackRules = []Rule{
		{
			Name:    "Eyy",
			Pattern: bounded(`e(\d{1,2})`),
			Extract: extractEpisodeOnly,
		},
		{
			Name:    "Episode N",
			Pattern: bounded(`episode[^\p{L}\p{N}]+(\d{1,2})`),
			Extract: extractEpisodeOnly,
		},
	}
}

// bounded wraps core so it only matches between separators or the ends of
// the string, case-insensitively.
func bounded(core string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)(?:^|[^\p{L}\p{N}])(` + core + `)(?:[^\p{L}\p{N}]|$)`)
}

func extractSeasonEpisodeRange(groups []string, _ int) (Result, bool) {
	res, ok := extractSeasonEpisode(groups, 0)
	if !ok {
		return res, false
	}

	second := groups[4]
	if second == "" {
		second = groups[5]
	}
	if second != "" {
		last, _ := strconv.Atoi(second)
		ep := Range(res.Episode.First, last)
		res.Episode = &ep
	}
	return res, true
}

func extractSeasonEpisode(groups []string, _ int) (Result, bool) {
	season, err := strconv.Atoi(groups[2])
	if err != nil {
		return Result{}, false
	}
	episode, err := strconv.Atoi(groups[3])
	if err != nil {
		return Result{}, false
	}

	ep := Single(episode)
	return Result{Marker: groups[1], Season: &season, Episode: &ep}, true
}

func extractSeasonOnly(groups []string, _ int) (Result, bool) {
	season, err := strconv.Atoi(groups[2])
	if err != nil {
		return Result{}, false
	}
	return Result{Marker: groups[1], Season: &season}, true
}

func extractEpisodeOnly(groups []string, _ int) (Result, bool) {
	episode, err := strconv.Atoi(groups[2])
	if err != nil {
		return Result{}, false
	}
	ep := Single(episode)
	return Result{Marker: groups[1], Episode: &ep}, true
}

// extractBareDigits decodes "101" as S1E01 and "1004" as S10E04, rejecting
// resolutions, implausible episode numbers and recent years.
func extractBareDigits(groups []string, year int) (Result, bool) {
	digits := groups[2]
	if bareFalsePositives[digits] {
		return Result{}, false
	}

	n, err := strconv.Atoi(digits)
	if err != nil {
		return Result{}, false
	}
	if n >= year-yearWindow && n <= year {
		return Result{}, false
	}

	split := len(digits) - 2
	episode, _ := strconv.Atoi(digits[split:])
	if episode == 0 || episode >= maxBareEpisode {
		return Result{}, false
	}
	season, _ := strconv.Atoi(digits[:split])

	ep := Single(episode)
	return Result{Marker: digits, Season: &season, Episode: &ep}, true
}
