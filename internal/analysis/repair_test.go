package analysis

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lyra/internal/schema"
)

const minimalResultJSON = `{
  "validity": {"lyrics_ok": true, "artist_ok": false, "notes": "model notes"},
  "metadata": {"inferred_title": "River Names", "artist_display": "guess", "line_count": 99, "word_count": 99},
  "core_insight": {"thesis": "Naming is an act of surrender.", "one_line_summary": "s", "central_conflict": "holding vs. letting go"},
  "mood_arc": {"primary_mood": "elegiac", "emotional_quality": "resigned melancholy", "shape": "falling", "stages": []},
  "key_motifs": [],
  "lyrical_highlights": [],
  "context_note": {"is_applicable": true, "insight": "unwarranted"},
  "takeaway": {"interpretation": "Letting the river carry it is the only mercy left.", "universal_hook": ""},
  "ui_optimized": {"tone_tags": ["elegiac"], "theme_tags": ["loss"], "complexity_score": 3, "color_palette": "muted"}
}`

func TestParseStructured(t *testing.T) {
	t.Run("parses a bare JSON document", func(t *testing.T) {
		result := ParseStructured(minimalResultJSON)
		require.NotNil(t, result)
		assert.Equal(t, "Naming is an act of surrender.", result.CoreInsight.Thesis)
		assert.Equal(t, schema.ShapeFalling, result.MoodArc.Shape)
	})

	t.Run("strips code fences before parsing", func(t *testing.T) {
		bare := ParseStructured(minimalResultJSON)
		require.NotNil(t, bare)

		for _, wrapped := range []string{
			"```json\n" + minimalResultJSON + "\n```",
			"```\n" + minimalResultJSON + "\n```",
			"\n\n```json\n" + minimalResultJSON + "\n```\n\n",
		} {
			fenced := ParseStructured(wrapped)
			require.NotNil(t, fenced)
			assert.Empty(t, cmp.Diff(bare, fenced))
		}
	})

	t.Run("returns nil for prose around the document", func(t *testing.T) {
		assert.Nil(t, ParseStructured("Here is your analysis:\n"+minimalResultJSON))
		assert.Nil(t, ParseStructured(minimalResultJSON+"\nLet me know if you need more."))
	})

	t.Run("returns nil for malformed JSON", func(t *testing.T) {
		assert.Nil(t, ParseStructured(""))
		assert.Nil(t, ParseStructured("not json at all"))
		assert.Nil(t, ParseStructured(`{"validity": {`))
		assert.Nil(t, ParseStructured(`{"core_insight": {"thesis": "x"}`))
	})

	t.Run("returns nil when structural validation fails", func(t *testing.T) {
		assert.Nil(t, ParseStructured(`{"core_insight": {"thesis": ""}}`), "empty thesis")

		badShape := fmt.Sprintf(`{
  "core_insight": {"thesis": "t"},
  "takeaway": {"interpretation": "i"},
  "mood_arc": {"shape": %q}
}`, "spiraling")
		assert.Nil(t, ParseStructured(badShape))

		badScore := `{
  "core_insight": {"thesis": "t"},
  "takeaway": {"interpretation": "i"},
  "ui_optimized": {"complexity_score": 9}
}`
		assert.Nil(t, ParseStructured(badScore))
	})

	t.Run("never panics on hostile input", func(t *testing.T) {
		for _, raw := range []string{"{", "}", "{}", "```", "```json```", "{\"a\":}"} {
			assert.NotPanics(t, func() { ParseStructured(raw) }, "input %q", raw)
		}
	})
}
