package analysis

import (
	"fmt"

	"lyra/internal/schema"
)

// Error codes re-exported from the wire contract so callers inside the
// pipeline do not import schema just for constants.
const (
	CodeLyricsTooShort    = schema.CodeLyricsTooShort
	CodeLyricsPlaceholder = schema.CodeLyricsPlaceholder
	CodeInvalidLyrics     = schema.CodeInvalidLyrics
)

// rawPreviewLimit bounds the diagnostic preview attached to an
// unparseable-output error. Never the full payload.
const rawPreviewLimit = 240

// Rejection is a validation failure: client-correctable, never retried
// automatically, and mapped to a 4xx by the server.
type Rejection struct {
	Code      string
	Message   string
	Detail    string
	WordCount int
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("%s: %s", r.Code, r.Detail)
}

// UnparseableError means the model produced structurally invalid output on
// both the original attempt and the single repair retry. Retrying the whole
// request may help since generation is non-deterministic.
type UnparseableError struct {
	Preview string
}

func (e *UnparseableError) Error() string {
	return fmt.Sprintf("model output unparseable after retry: %s", e.Preview)
}

func newUnparseableError(raw string) *UnparseableError {
	preview := raw
	if len(preview) > rawPreviewLimit {
		preview = preview[:rawPreviewLimit]
	}
	return &UnparseableError{Preview: preview}
}
