package analysis

import (
	"strings"

	"lyra/internal/schema"
)

// artistNotSpecified is the display sentinel used when no valid artist
// was submitted.
const artistNotSpecified = "Artist Not Specified"

// Finalize overlays the server-computed metadata onto a parsed result.
// Line count, word count, artist display, and the validity verdict are
// authoritative here and always overwrite whatever the model claimed.
// Idempotent and side-effect-free; the last step before a success response.
func Finalize(result *schema.AnalysisResult, lyrics, artist string, verdict Verdict) *schema.AnalysisResult {
	result.Metadata.LineCount = countLines(lyrics)
	result.Metadata.WordCount = countWords(lyrics)

	if verdict.ArtistOK {
		result.Metadata.ArtistDisplay = strings.TrimSpace(artist)
	} else {
		result.Metadata.ArtistDisplay = artistNotSpecified
		// Without a valid artist there is no contextual lens; the model
		// must not assert one into existence.
		result.ContextNote.IsApplicable = false
	}

	result.Validity = schema.Validity{
		LyricsOK: verdict.LyricsOK,
		ArtistOK: verdict.ArtistOK,
		Notes:    verdict.Notes,
	}

	return result
}
