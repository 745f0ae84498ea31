package tui

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"lyra/internal/client"
	"lyra/internal/lifecycle"
)

func (m Model) View() string {
	if !m.ready {
		return "starting..."
	}

	var sb strings.Builder

	sb.WriteString(m.styles.Title.Render("lyra"))
	sb.WriteString(m.styles.Muted.Render("  unlock the hidden meanings behind your favorite lyrics"))
	sb.WriteString("\n\n")

	switch m.controller.State() {
	case lifecycle.StateLoading:
		sb.WriteString(m.viewLoading())
	case lifecycle.StateDone:
		sb.WriteString(m.viewResult())
	case lifecycle.StateError:
		sb.WriteString(m.viewError())
		sb.WriteString("\n")
		sb.WriteString(m.viewForm())
	default:
		sb.WriteString(m.viewForm())
	}

	sb.WriteString("\n")
	sb.WriteString(m.viewHelp())
	return sb.String()
}

func (m Model) viewForm() string {
	var sb strings.Builder

	sb.WriteString(m.styles.Label.Render("Lyrics"))
	sb.WriteString("\n")
	sb.WriteString(m.textarea.View())
	sb.WriteString("\n")

	count := utf8.RuneCountInString(m.textarea.Value())
	counter := fmt.Sprintf("%d/%d", count, lifecycle.MaxLyricsChars)
	if count > lifecycle.MaxLyricsChars {
		sb.WriteString(m.styles.OverCap.Render(counter + " — too long"))
	} else {
		sb.WriteString(m.styles.Counter.Render(counter))
	}
	sb.WriteString("\n\n")

	sb.WriteString(m.styles.Label.Render("Artist (optional)"))
	sb.WriteString("\n")
	sb.WriteString(m.artist.View())
	sb.WriteString("\n")

	return sb.String()
}

func (m Model) viewLoading() string {
	var sb strings.Builder

	sb.WriteString(m.spinner.View())
	sb.WriteString(" Analyzing... reading tone, themes, and emotional signals.\n\n")

	p := m.controller.Progress()
	sb.WriteString(m.progress.ViewAs(p.Fraction()))
	sb.WriteString("\n")
	if p.Mode == lifecycle.ModeFinishing {
		sb.WriteString(m.styles.Muted.Render("finishing up..."))
	} else {
		sb.WriteString(m.styles.Muted.Render(fmt.Sprintf("about %ds remaining", p.RemainingSeconds)))
	}
	sb.WriteString("\n")

	return sb.String()
}

func (m Model) viewResult() string {
	return m.viewport.View() + "\n"
}

// viewError renders the failure. Retryable failures get the Ctrl+R hint;
// input rejections show their detail so the user can fix the submission.
func (m Model) viewError() string {
	err := m.controller.Err()
	if err == nil {
		return ""
	}

	var lines []string
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		lines = append(lines, apiErr.Message)
		if apiErr.Rejection() && apiErr.Detail != "" {
			lines = append(lines, apiErr.Detail)
		}
		if apiErr.Retryable() {
			lines = append(lines, "Press Ctrl+R to try again with the same lyrics.")
		}
		if apiErr.RawPreview != "" {
			lines = append(lines, "engine output: "+apiErr.RawPreview)
		}
	} else {
		lines = append(lines, err.Error(), "Press Ctrl+R to try again.")
	}

	return m.styles.ErrorBox.Render(strings.Join(lines, "\n")) + "\n"
}

func (m Model) viewHelp() string {
	switch m.controller.State() {
	case lifecycle.StateLoading:
		return m.styles.Help.Render("esc cancel • ctrl+c quit")
	case lifecycle.StateDone:
		return m.styles.Help.Render("↑/↓ scroll • ctrl+d analyze again • esc quit")
	case lifecycle.StateError:
		return m.styles.Help.Render("ctrl+r retry • ctrl+d submit edited lyrics • esc quit")
	default:
		return m.styles.Help.Render("tab switch field • ctrl+d analyze • esc quit")
	}
}
