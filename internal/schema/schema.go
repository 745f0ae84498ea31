// Package schema defines the wire contract between the lyra server and
// its clients: the analysis request, the structured analysis document the
// engine produces, and the error envelope for failures. JSON tags here are
// the protocol; renaming a field is a breaking change.
package schema

import (
	"errors"
	"fmt"
	"strings"
)

// Mood arc shapes the engine may choose from.
const (
	ShapeStatic         = "static"
	ShapeRising         = "rising"
	ShapeFalling        = "falling"
	ShapeCyclical       = "cyclical"
	ShapeVolatile       = "volatile"
	ShapeTransformative = "transformative"
	ShapeCascading      = "cascading"
)

// Suggested emotional color palettes.
const (
	PaletteWarm    = "warm"
	PaletteCool    = "cool"
	PaletteNeutral = "neutral"
	PaletteVibrant = "vibrant"
	PaletteMuted   = "muted"
	PaletteDark    = "dark"
)

var validShapes = map[string]bool{
	ShapeStatic:         true,
	ShapeRising:         true,
	ShapeFalling:        true,
	ShapeCyclical:       true,
	ShapeVolatile:       true,
	ShapeTransformative: true,
	ShapeCascading:      true,
}

// AnalysisRequest is the body of POST /analyze.
type AnalysisRequest struct {
	Lyrics string `json:"lyrics"`
	Artist string `json:"artist,omitempty"`
}

// Validity records the server's verdict on the submitted input. It is
// computed before the model call and overwritten into the result, so the
// model cannot vouch for its own input.
type Validity struct {
	LyricsOK bool   `json:"lyrics_ok"`
	ArtistOK bool   `json:"artist_ok"`
	Notes    string `json:"notes"`
}

// Metadata describes the analyzed text. Line count, word count, and the
// artist display value are server-computed; only the inferred title comes
// from the model.
type Metadata struct {
	InferredTitle string `json:"inferred_title"`
	ArtistDisplay string `json:"artist_display"`
	LineCount     int    `json:"line_count"`
	WordCount     int    `json:"word_count"`
}

// CoreInsight is the argumentative center of the analysis.
type CoreInsight struct {
	Thesis          string `json:"thesis"`
	OneLineSummary  string `json:"one_line_summary"`
	CentralConflict string `json:"central_conflict"`
}

// MoodStage is one step in the emotional progression, anchored to a quoted
// fragment of the lyrics.
type MoodStage struct {
	Stage            string `json:"stage"`
	Description      string `json:"description"`
	EvidenceFragment string `json:"evidence_fragment"`
}

// MoodArc traces the emotional trajectory of the song.
type MoodArc struct {
	PrimaryMood      string      `json:"primary_mood"`
	EmotionalQuality string      `json:"emotional_quality"`
	Shape            string      `json:"shape"`
	Stages           []MoodStage `json:"stages"`
}

// Motif is a recurring image or idea and its role in the thesis.
type Motif struct {
	Motif            string `json:"motif"`
	Role             string `json:"role"`
	EvidenceFragment string `json:"evidence_fragment"`
}

// Highlight calls out one piece of lyrical craft.
type Highlight struct {
	Device   string `json:"device"`
	Fragment string `json:"fragment"`
	Insight  string `json:"insight"`
}

// ContextNote carries artist-contextual insight. IsApplicable is forced to
// false server-side whenever no valid artist was submitted.
type ContextNote struct {
	IsApplicable bool   `json:"is_applicable"`
	Insight      string `json:"insight"`
}

// Takeaway is the song's ultimate claim and why it resonates.
type Takeaway struct {
	Interpretation string `json:"interpretation"`
	UniversalHook  string `json:"universal_hook"`
}

// UIOptimized holds presentation hints for clients.
type UIOptimized struct {
	ToneTags        []string `json:"tone_tags"`
	ThemeTags       []string `json:"theme_tags"`
	ComplexityScore int      `json:"complexity_score"`
	ColorPalette    string   `json:"color_palette"`
}

// AnalysisResult is the complete analysis document returned on success.
type AnalysisResult struct {
	Validity          Validity    `json:"validity"`
	Metadata          Metadata    `json:"metadata"`
	CoreInsight       CoreInsight `json:"core_insight"`
	MoodArc           MoodArc     `json:"mood_arc"`
	KeyMotifs         []Motif     `json:"key_motifs"`
	LyricalHighlights []Highlight `json:"lyrical_highlights"`
	ContextNote       ContextNote `json:"context_note"`
	Takeaway          Takeaway    `json:"takeaway"`
	UIOptimized       UIOptimized `json:"ui_optimized"`
}

// Validate checks that a decoded result is structurally usable: the fields
// a client cannot render without must be present and enum-valued fields
// must be in range. It does not judge the quality of the analysis.
func (r *AnalysisResult) Validate() error {
	if strings.TrimSpace(r.CoreInsight.Thesis) == "" {
		return errors.New("core_insight.thesis is empty")
	}
	if strings.TrimSpace(r.Takeaway.Interpretation) == "" {
		return errors.New("takeaway.interpretation is empty")
	}
	if r.MoodArc.Shape != "" && !validShapes[r.MoodArc.Shape] {
		return fmt.Errorf("mood_arc.shape %q is not a known shape", r.MoodArc.Shape)
	}
	if r.UIOptimized.ComplexityScore < 0 || r.UIOptimized.ComplexityScore > 5 {
		return fmt.Errorf("ui_optimized.complexity_score %d out of range", r.UIOptimized.ComplexityScore)
	}
	return nil
}
