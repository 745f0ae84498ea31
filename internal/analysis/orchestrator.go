// Package analysis implements the server-side analysis pipeline:
// validate the submitted lyrics, invoke the generative engine, repair or
// retry malformed output, and overlay authoritative metadata before the
// result leaves the package. Every failure exits as one of the typed
// errors in errors.go; nothing rawer escapes.
package analysis

import (
	"context"
	"time"

	"go.uber.org/zap"

	"lyra/internal/schema"
)

// maxModelAttempts bounds the number of model invocations per request:
// the original call plus one repair retry. The bound is a deliberate
// cost/latency tradeoff, not a resilience knob to turn up.
const maxModelAttempts = 2

// Invoker is the generative capability: given prompts, it returns free
// text that is usually, but not reliably, the requested JSON.
type Invoker interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Analyzer orchestrates one analysis request end to end. It is stateless
// across requests; concurrent calls share nothing mutable.
type Analyzer struct {
	invoker Invoker
	logger  *zap.Logger
}

// NewAnalyzer builds an Analyzer. A nil logger is replaced with a no-op
// logger.
func NewAnalyzer(invoker Invoker, logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{invoker: invoker, logger: logger}
}

// Analyze runs the full pipeline for one request.
//
// Error contract: a *Rejection for invalid input (the model is never
// invoked), gemini.ErrOverloaded / gemini.ErrInvalidModel passed through
// from the invoker, an *UnparseableError when both attempts produced
// unusable output, or the context error on cancellation.
func (a *Analyzer) Analyze(ctx context.Context, req schema.AnalysisRequest) (*schema.AnalysisResult, error) {
	start := time.Now()

	verdict, err := Validate(req.Lyrics, req.Artist)
	if err != nil {
		a.logger.Info("request rejected",
			zap.Int("word_count", verdict.WordCount),
			zap.Error(err))
		return nil, err
	}

	artistDisplay := PromptArtist(req.Artist, verdict)

	var raw string
	for attempt := 1; attempt <= maxModelAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		userPrompt := buildUserPrompt(req.Lyrics, artistDisplay, attempt > 1)
		raw, err = a.invoker.Complete(ctx, systemPrompt, userPrompt)
		if err != nil {
			return nil, err
		}

		result := ParseStructured(raw)
		if result == nil {
			a.logger.Warn("model output failed structural parse",
				zap.Int("attempt", attempt),
				zap.Int("raw_len", len(raw)))
			continue
		}

		Finalize(result, req.Lyrics, req.Artist, verdict)
		a.logger.Info("analysis completed",
			zap.Int("attempt", attempt),
			zap.Int("word_count", result.Metadata.WordCount),
			zap.Duration("elapsed", time.Since(start)))
		return result, nil
	}

	a.logger.Error("model output unparseable after retry",
		zap.Int("attempts", maxModelAttempts),
		zap.Int("raw_len", len(raw)))
	return nil, newUnparseableError(raw)
}
