package media

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	separatorRegex *regexp.Regexp
	ordinalRegex   *regexp.Regexp
	noiseRegexes   []*regexp.Regexp
)

// Widths that look like years.
var resolutionYears = map[string]bool{
	"1920": true,
}

func init() {
	separatorRegex = regexp.MustCompile(`[^\p{L}\p{N}()]+`)
	ordinalRegex = regexp.MustCompile(`(?i)^(\(?\d+)(st|nd|rd|th)(\)?)$`)

	// Release noise, matched against single title-cased words.
	patterns := []string{
		`\d{3,4}[pi]`,
		`4k|uhd|hdr|hdr10`,
		`x26[45]|h26[45]|hevc|avc|xvid|divx`,
		`bluray|bdrip|brrip|webrip|webdl|hdtv|pdtv|dvdrip|dvdscr|hdrip|remux`,
		`aac|ac3|eac3|dts|truehd|atmos|ddp\d*`,
		`10bit|8bit`,
		`proper|repack`,
	}
	for _, p := range patterns {
		noiseRegexes = append(noiseRegexes, regexp.MustCompile(`(?i)^\(?(?:`+p+`)\)?$`))
	}
}

// cleanText replaces runs of anything but letters, digits and parentheses
// with a single space.
func cleanText(s string) string {
	return strings.TrimSpace(separatorRegex.ReplaceAllString(s, " "))
}

// titleCase cleans s and capitalizes each word. Ordinal suffixes stay lower
// case ("2nd", not "2Nd").
func titleCase(s string) string {
	s = cleanText(s)
	if s == "" {
		return ""
	}

	words := strings.Fields(cases.Title(language.English).String(s))
	for i, w := range words {
		if m := ordinalRegex.FindStringSubmatch(w); m != nil {
			words[i] = m[1] + strings.ToLower(m[2]) + m[3]
		}
	}
	return strings.Join(words, " ")
}

// cutAtMarker returns the part of a title-cased string that names the show:
// the words before the first whole-word occurrence of marker, or the words
// after it when the marker leads. ok is false when the marker is absent or
// nothing is left on either side.
func cutAtMarker(titled, marker string) (string, bool) {
	markerWords := strings.Fields(cleanText(marker))
	words := strings.Fields(titled)
	if len(markerWords) == 0 || len(markerWords) >= len(words) {
		return titled, false
	}

	for i := 0; i+len(markerWords) <= len(words); i++ {
		if !wordsEqualFold(words[i:i+len(markerWords)], markerWords) {
			continue
		}
		title := dropBareParens(append([]string{}, words[:i]...))
		if len(title) == 0 {
			title = dropBareParens(append([]string{}, words[i+len(markerWords):]...))
		}
		if len(title) == 0 {
			return titled, false
		}
		return strings.Join(title, " "), true
	}
	return titled, false
}

func wordsEqualFold(a, b []string) bool {
	for i := range a {
		if !strings.EqualFold(trimParens(a[i]), trimParens(b[i])) {
			return false
		}
	}
	return true
}

func trimParens(w string) string {
	return strings.Trim(w, "()")
}

func dropBareParens(words []string) []string {
	out := words[:0]
	for _, w := range words {
		if trimParens(w) == "" {
			continue
		}
		out = append(out, w)
	}
	return out
}

func isNoise(word string) bool {
	for _, re := range noiseRegexes {
		if re.MatchString(word) {
			return true
		}
	}
	return false
}

// stripNoise truncates a title at its first release-noise word ("720p",
// "Bluray", "X264"). A title that starts with noise is returned unchanged.
func stripNoise(titled string) string {
	words := strings.Fields(titled)
	for i, w := range words {
		if !isNoise(w) && !(strings.EqualFold(w, "web") && i+1 < len(words) && strings.EqualFold(words[i+1], "dl")) {
			continue
		}
		if i == 0 {
			return titled
		}
		return strings.Join(dropBareParens(words[:i]), " ")
	}
	return titled
}

// ExtractYear returns the last standalone 19xx/20xx number in name,
// skipping widths such as 1920. Empty when there is none.
func ExtractYear(name string) string {
	var year string
	numbers := strings.FieldsFunc(name, func(r rune) bool { return r < '0' || r > '9' })
	for _, n := range numbers {
		if len(n) != 4 || resolutionYears[n] {
			continue
		}
		if strings.HasPrefix(n, "19") || strings.HasPrefix(n, "20") {
			year = n
		}
	}
	return year
}

// removeYear drops the last word equal to year, with or without
// parentheses. ok is false if the year is absent or is the only word.
func removeYear(titled, year string) (string, bool) {
	if year == "" {
		return titled, false
	}

	words := strings.Fields(titled)
	for i := len(words) - 1; i >= 0; i-- {
		if trimParens(words[i]) != year {
			continue
		}
		rest := append(append([]string{}, words[:i]...), words[i+1:]...)
		rest = dropBareParens(rest)
		if len(rest) == 0 {
			return titled, false
		}
		return strings.Join(rest, " "), true
	}
	return titled, false
}

// TopFolderTitle cleans a top-level directory name into a show title:
// title-cased, without season markers or release noise. Empty when nothing
// is left.
func TopFolderTitle(dir string, seasonMarker string) string {
	titled := titleCase(dir)
	if titled == "" {
		return ""
	}

	if seasonMarker != "" {
		if isOnlyMarker(titled, seasonMarker) {
			return ""
		}
		titled, _ = cutAtMarker(titled, seasonMarker)
	}
	return stripNoise(titled)
}

func isOnlyMarker(titled, marker string) bool {
	words := strings.Fields(titled)
	markerWords := strings.Fields(cleanText(marker))
	return len(words) == len(markerWords) && wordsEqualFold(words, markerWords)
}
