package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validResult() *AnalysisResult {
	r := &AnalysisResult{}
	r.CoreInsight.Thesis = "a thesis"
	r.Takeaway.Interpretation = "an interpretation"
	return r
}

func TestAnalysisResultValidate(t *testing.T) {
	t.Run("minimal valid result passes", func(t *testing.T) {
		assert.NoError(t, validResult().Validate())
	})

	t.Run("thesis is required", func(t *testing.T) {
		r := validResult()
		r.CoreInsight.Thesis = "   "
		assert.Error(t, r.Validate())
	})

	t.Run("interpretation is required", func(t *testing.T) {
		r := validResult()
		r.Takeaway.Interpretation = ""
		assert.Error(t, r.Validate())
	})

	t.Run("shape must be a known value when present", func(t *testing.T) {
		r := validResult()
		r.MoodArc.Shape = ShapeCascading
		assert.NoError(t, r.Validate())

		r.MoodArc.Shape = "spiraling"
		assert.Error(t, r.Validate())

		r.MoodArc.Shape = ""
		assert.NoError(t, r.Validate(), "absent shape is tolerated")
	})

	t.Run("complexity score range", func(t *testing.T) {
		r := validResult()
		for score := 0; score <= 5; score++ {
			r.UIOptimized.ComplexityScore = score
			assert.NoError(t, r.Validate(), "score %d", score)
		}
		r.UIOptimized.ComplexityScore = 6
		assert.Error(t, r.Validate())
		r.UIOptimized.ComplexityScore = -1
		assert.Error(t, r.Validate())
	})
}
