package tui

import (
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"lyra/internal/lifecycle"
	"lyra/internal/schema"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		w := msg.Width - 4
		if w > 100 {
			w = 100
		}
		if w < 20 {
			w = 20
		}
		m.textarea.SetWidth(w)
		m.artist.Width = w
		m.progress.Width = w
		m.viewport.Width = w
		m.viewport.Height = msg.Height - 6
		return m, nil

	case analysisMsg:
		// The controller discards stale and cancelled responses; only a
		// genuine transition reaches the view.
		if !m.controller.Resolve(msg.id, msg.result, msg.err) {
			return m, nil
		}
		if m.controller.State() == lifecycle.StateDone {
			m.viewport.SetContent(m.renderResult(m.controller.Result()))
			m.viewport.GotoTop()
		}
		return m, nil

	case tickMsg:
		if !m.controller.Tick(msg.id) {
			// Stale timer: do not reschedule.
			return m, nil
		}
		return m, tickCmd(msg.id)

	default:
		if m.controller.State() == lifecycle.StateLoading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit

	case tea.KeyEsc:
		if m.controller.State() == lifecycle.StateLoading {
			// Synchronous, unconditional transition; the transport abort
			// resolves on its own time and is then discarded as stale.
			m.controller.Cancel()
			return m, nil
		}
		return m, tea.Quit

	case tea.KeyTab, tea.KeyShiftTab:
		if m.focus == focusLyrics {
			m.focus = focusArtist
			m.textarea.Blur()
			m.artist.Focus()
		} else {
			m.focus = focusLyrics
			m.artist.Blur()
			m.textarea.Focus()
		}
		return m, nil

	case tea.KeyCtrlD:
		return m.submit()

	case tea.KeyCtrlR:
		if m.controller.State() != lifecycle.StateError {
			return m, nil
		}
		ticket, err := m.controller.Retry()
		if err != nil {
			return m, nil
		}
		lyrics, artist := m.controller.Input()
		return m, tea.Batch(
			m.analyzeCmd(ticket, schema.AnalysisRequest{Lyrics: lyrics, Artist: artist}),
			m.spinner.Tick,
			tickCmd(ticket.ID),
		)
	}

	// Route remaining keys to the focused widget. Input stays editable in
	// done/error so the next submission starts from the previous text.
	var cmd tea.Cmd
	if m.focus == focusArtist {
		m.artist, cmd = m.artist.Update(msg)
	} else {
		m.textarea, cmd = m.textarea.Update(msg)
	}

	// Viewport scrolling for the result while it is showing.
	if m.controller.State() == lifecycle.StateDone {
		switch msg.Type {
		case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown:
			var vpCmd tea.Cmd
			m.viewport, vpCmd = m.viewport.Update(msg)
			return m, tea.Batch(cmd, vpCmd)
		}
	}

	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	ticket, err := m.controller.Begin(m.textarea.Value(), m.artist.Value())
	if err != nil {
		// Pre-check failures (empty, too long, already loading) are shown
		// inline by the view; no state machine transition happened.
		return m, nil
	}

	lyrics, artist := m.controller.Input()
	return m, tea.Batch(
		m.analyzeCmd(ticket, schema.AnalysisRequest{Lyrics: lyrics, Artist: artist}),
		m.spinner.Tick,
		tickCmd(ticket.ID),
		textarea.Blink,
	)
}
