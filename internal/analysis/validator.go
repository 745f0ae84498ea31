package analysis

import (
	"fmt"
	"strings"
)

// minLyricWords is the floor below which lyrics are rejected before any
// model call is made.
const minLyricWords = 20

// placeholderMarkers flag boilerplate and filler that looks like the user
// submitted the input field's own prompt text.
var placeholderMarkers = []string{
	"paste lyrics here",
	"lorem ipsum",
	"your lyrics",
	"insert lyrics",
	"sample text",
}

// artistSentinels are artist values treated as "no artist given".
var artistSentinels = map[string]bool{
	"unknown": true,
	"n/a":     true,
	"na":      true,
	"none":    true,
	"-":       true,
}

// Verdict is the once-per-request validation outcome. It is computed before
// the model is invoked and attached to the final result unchanged.
type Verdict struct {
	LyricsOK  bool
	ArtistOK  bool
	Notes     string
	WordCount int
}

// Validate checks the submitted lyrics and artist. It is a pure function:
// no side effects, same verdict for the same input. A lyrics failure is
// returned as a *Rejection so the pipeline stops before the model call.
func Validate(lyrics, artist string) (Verdict, error) {
	trimmed := strings.TrimSpace(lyrics)
	words := countWords(trimmed)

	v := Verdict{
		ArtistOK:  artistValid(artist),
		WordCount: words,
	}

	if isPlaceholder(trimmed) {
		v.Notes = "lyrics look like placeholder text"
		return v, &Rejection{
			Code:      CodeLyricsPlaceholder,
			Message:   "Lyrics appear to be placeholder text, not a song.",
			Detail:    fmt.Sprintf("detected boilerplate content (%d words)", words),
			WordCount: words,
		}
	}

	if words < minLyricWords {
		v.Notes = fmt.Sprintf("lyrics too short: %d words, need at least %d", words, minLyricWords)
		return v, &Rejection{
			Code:      CodeLyricsTooShort,
			Message:   fmt.Sprintf("Lyrics must be at least %d words to analyze.", minLyricWords),
			Detail:    fmt.Sprintf("got %d words after trimming", words),
			WordCount: words,
		}
	}

	v.LyricsOK = true
	if v.ArtistOK {
		v.Notes = "lyrics and artist accepted"
	} else {
		v.Notes = "lyrics accepted; artist missing or a sentinel value, analysis is text-internal"
	}
	return v, nil
}

// PromptArtist returns the artist value handed to the model: the trimmed
// input when valid, otherwise the neutral "no artist" so the engine performs
// a purely text-internal reading.
func PromptArtist(artist string, v Verdict) string {
	if v.ArtistOK {
		return strings.TrimSpace(artist)
	}
	return "no artist"
}

func artistValid(artist string) bool {
	a := strings.TrimSpace(artist)
	if a == "" {
		return false
	}
	return !artistSentinels[strings.ToLower(a)]
}

func isPlaceholder(trimmed string) bool {
	lower := strings.ToLower(trimmed)
	for _, marker := range placeholderMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

func countWords(s string) int {
	return len(strings.Fields(s))
}

// countLines counts non-empty lines after trimming each line.
func countLines(s string) int {
	n := 0
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	return n
}
