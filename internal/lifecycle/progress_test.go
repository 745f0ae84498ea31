package lifecycle

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateSeconds(t *testing.T) {
	t.Run("clamps to the floor for short lyrics", func(t *testing.T) {
		assert.Equal(t, minEstimate, EstimateSeconds(""))
		assert.Equal(t, minEstimate, EstimateSeconds("just a few words"))
	})

	t.Run("grows with input size", func(t *testing.T) {
		short := EstimateSeconds(strings.Repeat("word ", 200))
		long := EstimateSeconds(strings.Repeat("word ", 800))
		assert.Greater(t, long, short)
	})

	t.Run("clamps to the ceiling for huge lyrics", func(t *testing.T) {
		assert.Equal(t, maxEstimate, EstimateSeconds(strings.Repeat("word ", 5000)))
	})

	t.Run("is deterministic", func(t *testing.T) {
		lyrics := strings.Repeat("word ", 300)
		assert.Equal(t, EstimateSeconds(lyrics), EstimateSeconds(lyrics))
	})
}

func TestProgressAdvance(t *testing.T) {
	t.Run("counts down then flips to finishing", func(t *testing.T) {
		p := NewProgress(3)
		assert.Equal(t, ModeCountdown, p.Mode)

		p = p.Advance()
		assert.Equal(t, 2, p.RemainingSeconds)
		assert.Equal(t, ModeCountdown, p.Mode)

		p = p.Advance().Advance()
		assert.Equal(t, 0, p.RemainingSeconds)
		assert.Equal(t, ModeFinishing, p.Mode)
	})

	t.Run("finishing is sticky", func(t *testing.T) {
		p := NewProgress(1).Advance()
		assert.Equal(t, ModeFinishing, p.Mode)

		for i := 0; i < 10; i++ {
			p = p.Advance()
		}
		assert.Equal(t, ModeFinishing, p.Mode)
		assert.Equal(t, 0, p.RemainingSeconds)
	})
}

func TestProgressFraction(t *testing.T) {
	t.Run("never reaches one", func(t *testing.T) {
		p := NewProgress(4)
		assert.Equal(t, 0.0, p.Fraction())

		for i := 0; i < 20; i++ {
			p = p.Advance()
			assert.LessOrEqual(t, p.Fraction(), 0.95)
		}
		assert.Equal(t, 0.95, p.Fraction())
	})

	t.Run("zero total is safe", func(t *testing.T) {
		assert.Equal(t, 0.0, Progress{}.Fraction())
	})
}
