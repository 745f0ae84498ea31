package analysis

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validLyrics is a 23-word text that passes the length floor.
const validLyrics = `The river carries every name I gave you
down past the mill and out beyond the bend
where nothing I said can follow`

func TestValidate_Lyrics(t *testing.T) {
	t.Run("accepts lyrics at or above the word floor", func(t *testing.T) {
		v, err := Validate(validLyrics, "Townes Van Zandt")
		require.NoError(t, err)
		assert.True(t, v.LyricsOK)
		assert.True(t, v.ArtistOK)
		assert.GreaterOrEqual(t, v.WordCount, minLyricWords)
	})

	t.Run("rejects short lyrics before any model call", func(t *testing.T) {
		_, err := Validate("too short to analyze", "")
		require.Error(t, err)

		var rej *Rejection
		require.True(t, errors.As(err, &rej))
		assert.Equal(t, CodeLyricsTooShort, rej.Code)
		assert.Equal(t, 4, rej.WordCount)
	})

	t.Run("word count ignores surrounding whitespace", func(t *testing.T) {
		_, err := Validate("   \n\n  one two three  \n  ", "")
		var rej *Rejection
		require.True(t, errors.As(err, &rej))
		assert.Equal(t, 3, rej.WordCount)
	})

	t.Run("rejects placeholder markers regardless of length", func(t *testing.T) {
		padding := strings.Repeat("word ", 30)
		for _, marker := range []string{"Paste lyrics here", "LOREM IPSUM", "your lyrics"} {
			_, err := Validate(padding+marker+" "+padding, "")
			var rej *Rejection
			require.True(t, errors.As(err, &rej), "marker %q", marker)
			assert.Equal(t, CodeLyricsPlaceholder, rej.Code)
		}
	})

	t.Run("placeholder check wins over the length floor", func(t *testing.T) {
		_, err := Validate("paste lyrics here", "")
		var rej *Rejection
		require.True(t, errors.As(err, &rej))
		assert.Equal(t, CodeLyricsPlaceholder, rej.Code)
	})

	t.Run("is deterministic for the same input", func(t *testing.T) {
		v1, err1 := Validate(validLyrics, "someone")
		v2, err2 := Validate(validLyrics, "someone")
		assert.Equal(t, v1, v2)
		assert.Equal(t, err1, err2)
	})
}

func TestValidate_Artist(t *testing.T) {
	t.Run("sentinel values mark the artist invalid", func(t *testing.T) {
		for _, sentinel := range []string{"", "  ", "unknown", "Unknown", "N/A", "na", "none", "-"} {
			v, err := Validate(validLyrics, sentinel)
			require.NoError(t, err, "artist %q", sentinel)
			assert.False(t, v.ArtistOK, "artist %q", sentinel)
		}
	})

	t.Run("an invalid artist never rejects the request", func(t *testing.T) {
		v, err := Validate(validLyrics, "unknown")
		require.NoError(t, err)
		assert.True(t, v.LyricsOK)
		assert.Contains(t, v.Notes, "text-internal")
	})
}

func TestPromptArtist(t *testing.T) {
	v, err := Validate(validLyrics, "  Leonard Cohen  ")
	require.NoError(t, err)
	assert.Equal(t, "Leonard Cohen", PromptArtist("  Leonard Cohen  ", v))

	v, err = Validate(validLyrics, "n/a")
	require.NoError(t, err)
	assert.Equal(t, "no artist", PromptArtist("n/a", v))
}

func TestCountLines(t *testing.T) {
	assert.Equal(t, 0, countLines(""))
	assert.Equal(t, 2, countLines("first line\n\n   \nsecond line\n"))
}
