package tui

import (
	"fmt"
	"strings"

	"lyra/internal/schema"
)

// renderResult turns the finalized analysis into markdown and runs it
// through glamour. Section order follows the result page: insight, mood
// arc, motifs, highlights, context, takeaway, tags.
func (m Model) renderResult(res *schema.AnalysisResult) string {
	md := buildMarkdown(res)
	if m.renderer == nil {
		return md
	}
	out, err := m.renderer.Render(md)
	if err != nil {
		return md
	}
	return out
}

func buildMarkdown(res *schema.AnalysisResult) string {
	var sb strings.Builder

	title := res.Metadata.InferredTitle
	if title == "" {
		title = "Analysis"
	}
	fmt.Fprintf(&sb, "# %s\n\n", title)
	fmt.Fprintf(&sb, "*%s — %d lines, %d words*\n\n",
		res.Metadata.ArtistDisplay, res.Metadata.LineCount, res.Metadata.WordCount)

	sb.WriteString("## Core insight\n\n")
	fmt.Fprintf(&sb, "%s\n\n", res.CoreInsight.Thesis)
	if res.CoreInsight.CentralConflict != "" {
		fmt.Fprintf(&sb, "**Central conflict:** %s\n\n", res.CoreInsight.CentralConflict)
	}

	if len(res.MoodArc.Stages) > 0 || res.MoodArc.PrimaryMood != "" {
		sb.WriteString("## Mood arc\n\n")
		fmt.Fprintf(&sb, "%s (%s, %s)\n\n",
			res.MoodArc.PrimaryMood, res.MoodArc.EmotionalQuality, res.MoodArc.Shape)
		for _, stage := range res.MoodArc.Stages {
			fmt.Fprintf(&sb, "- **%s** — %s *(\"%s\")*\n", stage.Stage, stage.Description, stage.EvidenceFragment)
		}
		sb.WriteString("\n")
	}

	if len(res.KeyMotifs) > 0 {
		sb.WriteString("## Key motifs\n\n")
		for _, motif := range res.KeyMotifs {
			fmt.Fprintf(&sb, "- **%s** — %s *(\"%s\")*\n", motif.Motif, motif.Role, motif.EvidenceFragment)
		}
		sb.WriteString("\n")
	}

	if len(res.LyricalHighlights) > 0 {
		sb.WriteString("## Lyrical highlights\n\n")
		for _, h := range res.LyricalHighlights {
			fmt.Fprintf(&sb, "- **%s**: \"%s\" — %s\n", h.Device, h.Fragment, h.Insight)
		}
		sb.WriteString("\n")
	}

	if res.ContextNote.IsApplicable && res.ContextNote.Insight != "" {
		sb.WriteString("## Context\n\n")
		fmt.Fprintf(&sb, "%s\n\n", res.ContextNote.Insight)
	}

	sb.WriteString("## Takeaway\n\n")
	fmt.Fprintf(&sb, "%s\n\n", res.Takeaway.Interpretation)
	if res.Takeaway.UniversalHook != "" {
		fmt.Fprintf(&sb, "*%s*\n\n", res.Takeaway.UniversalHook)
	}

	if len(res.UIOptimized.ToneTags) > 0 || len(res.UIOptimized.ThemeTags) > 0 {
		tags := append([]string{}, res.UIOptimized.ToneTags...)
		tags = append(tags, res.UIOptimized.ThemeTags...)
		fmt.Fprintf(&sb, "`%s`\n", strings.Join(tags, "` `"))
	}

	return sb.String()
}
