package lifecycle

import "strings"

// Progress modes. Countdown ticks toward zero; Finishing holds steady when
// the estimate ran out before the real response arrived.
type Mode string

const (
	ModeCountdown Mode = "countdown"
	ModeFinishing Mode = "finishing"
)

// Progress is a purely cosmetic completion estimate. It carries no
// correctness guarantee and is discarded whenever the controller leaves
// the loading state.
type Progress struct {
	TotalSeconds     int
	RemainingSeconds int
	Mode             Mode
}

// Estimate bounds.
const (
	baseSeconds    = 8
	wordsPerSecond = 40
	minEstimate    = 10
	maxEstimate    = 45
)

// EstimateSeconds derives the countdown length deterministically from the
// input size: longer lyrics, longer estimate, clamped to a sane window.
func EstimateSeconds(lyrics string) int {
	words := len(strings.Fields(lyrics))
	est := baseSeconds + words/wordsPerSecond
	if est < minEstimate {
		return minEstimate
	}
	if est > maxEstimate {
		return maxEstimate
	}
	return est
}

// NewProgress starts a countdown of total seconds.
func NewProgress(total int) Progress {
	return Progress{
		TotalSeconds:     total,
		RemainingSeconds: total,
		Mode:             ModeCountdown,
	}
}

// Advance moves the estimate one second forward. When the countdown runs
// out it flips to finishing and stays there; it never claims completion.
func (p Progress) Advance() Progress {
	if p.Mode == ModeFinishing {
		return p
	}
	p.RemainingSeconds--
	if p.RemainingSeconds <= 0 {
		p.RemainingSeconds = 0
		p.Mode = ModeFinishing
	}
	return p
}

// Fraction reports estimated completion in [0,1). It is capped below 1 so
// the UI never shows a full bar before the real response lands.
func (p Progress) Fraction() float64 {
	if p.TotalSeconds <= 0 {
		return 0
	}
	frac := float64(p.TotalSeconds-p.RemainingSeconds) / float64(p.TotalSeconds)
	if frac > 0.95 {
		return 0.95
	}
	if frac < 0 {
		return 0
	}
	return frac
}
