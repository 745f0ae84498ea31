package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"lyra/internal/client"
	"lyra/internal/lifecycle"
	"lyra/internal/schema"
)

// focusArea tracks which input widget receives keystrokes.
type focusArea int

const (
	focusLyrics focusArea = iota
	focusArtist
)

// Messages produced by async commands. Each one carries the request
// identity it belongs to; Update routes them through the controller, which
// drops anything stale.
type (
	analysisMsg struct {
		id     int64
		result *schema.AnalysisResult
		err    error
	}
	tickMsg struct {
		id int64
	}
)

// Model is the bubbletea model for the analysis client.
type Model struct {
	textarea textarea.Model
	artist   textinput.Model
	spinner  spinner.Model
	progress progress.Model
	viewport viewport.Model
	renderer *glamour.TermRenderer
	styles   Styles

	controller *lifecycle.Controller
	transport  *client.Client

	focus  focusArea
	width  int
	height int
	ready  bool
}

// New builds the TUI model against the given server transport.
func New(transport *client.Client) Model {
	styles := DefaultStyles()

	ta := textarea.New()
	ta.Placeholder = "Paste lyrics here..."
	ta.CharLimit = lifecycle.MaxLyricsChars
	ta.SetWidth(80)
	ta.SetHeight(12)
	ta.Focus()

	ti := textinput.New()
	ti.Placeholder = "Artist (optional)"
	ti.CharLimit = 200
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	pb := progress.New(progress.WithGradient(string(colorPurple), string(colorPink)))

	vp := viewport.New(80, 20)

	renderer, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)

	return Model{
		textarea:   ta,
		artist:     ti,
		spinner:    sp,
		progress:   pb,
		viewport:   vp,
		renderer:   renderer,
		styles:     styles,
		controller: lifecycle.NewController(),
		transport:  transport,
		focus:      focusLyrics,
	}
}

// Init starts the textarea cursor blink.
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// analyzeCmd runs the transport call for one ticket. The returned message
// is tagged with the ticket's identity so a superseded or cancelled
// request can never mutate visible state.
func (m Model) analyzeCmd(t lifecycle.Ticket, req schema.AnalysisRequest) tea.Cmd {
	transport := m.transport
	return func() tea.Msg {
		result, err := transport.Analyze(t.Ctx, req)
		return analysisMsg{id: t.ID, result: result, err: err}
	}
}

// tickCmd schedules the next one-second progress tick for request id.
func tickCmd(id int64) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{id: id}
	})
}
