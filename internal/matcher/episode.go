package matcher

import (
	"fmt"
	"strconv"
	"strings"
)

// Episode is a single episode number or a contiguous range of episodes
// (multi-episode files such as S01E02E03).
type Episode struct {
	First int
	Last  int
}

// Single returns an Episode covering one episode number.
func Single(n int) Episode {
	return Episode{First: n, Last: n}
}

// Range returns an Episode spanning first..last. A range whose ends are
// equal collapses to a single episode.
func Range(first, last int) Episode {
	return Episode{First: first, Last: last}
}

// IsRange reports whether the episode spans more than one number.
func (e Episode) IsRange() bool {
	return e.First != e.Last
}

// String renders the episode zero-padded: "05" or "02-03".
func (e Episode) String() string {
	if e.IsRange() {
		return fmt.Sprintf("%02d-%02d", e.First, e.Last)
	}
	return fmt.Sprintf("%02d", e.First)
}

// MarshalText implements encoding.TextMarshaler so reports carry "02-03"
// rather than a nested object.
func (e Episode) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// UnmarshalText parses the form produced by MarshalText.
func (e *Episode) UnmarshalText(text []byte) error {
	parsed, err := ParseEpisode(string(text))
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

// ParseEpisode parses "5", "05" or "02-03".
func ParseEpisode(s string) (Episode, error) {
	s = strings.TrimSpace(s)
	first, last, isRange := strings.Cut(s, "-")

	a, err := strconv.Atoi(first)
	if err != nil {
		return Episode{}, fmt.Errorf("invalid episode %q: %w", s, err)
	}
	if !isRange {
		return Single(a), nil
	}

	b, err := strconv.Atoi(last)
	if err != nil {
		return Episode{}, fmt.Errorf("invalid episode range %q: %w", s, err)
	}
	return Range(a, b), nil
}
