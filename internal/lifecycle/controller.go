// Package lifecycle implements the client-side request state machine:
// one active analysis request at a time, identified by a monotonically
// increasing id. Issuing a new request or cancelling invalidates the
// previous identity synchronously; any resolution arriving for a stale
// identity is discarded unconditionally, regardless of arrival order.
//
// The controller is not internally synchronized. It is designed to be
// driven from a single goroutine (the UI update loop); the identity check
// at every resumption point is the sole serialization mechanism.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"lyra/internal/schema"
)

// State is the controller's visible state.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateDone
	StateError
)

// String returns the display name for each state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateDone:
		return "done"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// MaxLyricsChars is the client-side input cap, matched to the submission
// form's counter.
const MaxLyricsChars = 8000

// Local pre-check failures. These never leave the client.
var (
	ErrEmptyInput     = errors.New("lyrics are empty")
	ErrInputTooLong   = fmt.Errorf("lyrics exceed %d characters", MaxLyricsChars)
	ErrAlreadyLoading = errors.New("a request is already in flight")
	ErrNotRetryable   = errors.New("no failed request to retry")
)

// Ticket identifies one issued request. The id is purely local, never sent
// over the wire; Ctx is cancelled when the request is superseded or
// cancelled, so the transport can abandon the upstream work promptly.
type Ticket struct {
	ID  int64
	Ctx context.Context
}

// Controller owns the single in-flight request for a client session.
type Controller struct {
	state    State
	nextID   int64
	activeID int64
	cancel   context.CancelFunc

	lyrics string
	artist string

	result   *schema.AnalysisResult
	lastErr  error
	progress Progress
}

// NewController returns a controller in the idle state.
func NewController() *Controller {
	return &Controller{state: StateIdle}
}

// State returns the current state.
func (c *Controller) State() State { return c.state }

// ActiveID returns the identity of the in-flight request, or 0 when none.
func (c *Controller) ActiveID() int64 { return c.activeID }

// Result returns the last successful analysis, valid only in StateDone.
func (c *Controller) Result() *schema.AnalysisResult { return c.result }

// Err returns the failure behind StateError.
func (c *Controller) Err() error { return c.lastErr }

// Input returns the lyrics and artist of the most recent submission.
func (c *Controller) Input() (lyrics, artist string) { return c.lyrics, c.artist }

// Begin issues a new request. Allowed from idle, done, and error; in
// loading it fails with ErrAlreadyLoading (the UI disables submission, this
// is the backstop). Any previous in-flight context is cancelled before the
// new identity is allocated, so a stale transport call is actively
// abandoned rather than merely ignored.
func (c *Controller) Begin(lyrics, artist string) (Ticket, error) {
	if c.state == StateLoading {
		return Ticket{}, ErrAlreadyLoading
	}
	if strings.TrimSpace(lyrics) == "" {
		return Ticket{}, ErrEmptyInput
	}
	if utf8.RuneCountInString(lyrics) > MaxLyricsChars {
		return Ticket{}, ErrInputTooLong
	}

	c.invalidate()

	c.nextID++
	c.activeID = c.nextID
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel

	c.lyrics = lyrics
	c.artist = artist
	c.result = nil
	c.lastErr = nil
	c.progress = NewProgress(EstimateSeconds(lyrics))
	c.state = StateLoading

	return Ticket{ID: c.activeID, Ctx: ctx}, nil
}

// Retry re-issues the last failed submission. Only valid from StateError.
func (c *Controller) Retry() (Ticket, error) {
	if c.state != StateError {
		return Ticket{}, ErrNotRetryable
	}
	return c.Begin(c.lyrics, c.artist)
}

// Cancel aborts the in-flight request and returns to idle. The transition
// is synchronous and unconditional; it does not wait for the transport to
// honor the abort. No-op outside StateLoading.
func (c *Controller) Cancel() {
	if c.state != StateLoading {
		return
	}
	c.invalidate()
	c.state = StateIdle
}

// Resolve delivers the outcome of request id. It reports whether the
// controller's visible state changed: false means the response was stale
// (superseded or cancelled) and was discarded without any mutation. A
// cancellation error for the active id is absorbed the same way, since the
// state transition already happened in Cancel or Begin.
func (c *Controller) Resolve(id int64, result *schema.AnalysisResult, err error) bool {
	if id != c.activeID || c.state != StateLoading {
		return false
	}
	if err != nil && errors.Is(err, context.Canceled) {
		return false
	}

	c.clearActive()
	c.progress = Progress{}

	if err != nil {
		c.lastErr = err
		c.state = StateError
		return true
	}

	c.result = result
	c.state = StateDone
	return true
}

// Tick advances the cosmetic progress estimate for request id. Stale ticks
// are discarded like stale resolutions.
func (c *Controller) Tick(id int64) bool {
	if id != c.activeID || c.state != StateLoading {
		return false
	}
	c.progress = c.progress.Advance()
	return true
}

// Progress returns the current estimate; meaningful only in StateLoading.
func (c *Controller) Progress() Progress { return c.progress }

// invalidate cancels any in-flight context and clears the active identity,
// making every outstanding resolution stale.
func (c *Controller) invalidate() {
	if c.cancel != nil {
		c.cancel()
	}
	c.clearActive()
	c.progress = Progress{}
}

func (c *Controller) clearActive() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.activeID = 0
}
