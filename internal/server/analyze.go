package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"lyra/internal/analysis"
	"lyra/internal/gemini"
	"lyra/internal/schema"
)

func jsonEncode(w io.Writer, body any) error {
	return json.NewEncoder(w).Encode(body)
}

// handleAnalyze is the POST /analyze endpoint. The request context is
// passed straight into the pipeline, so a client disconnect aborts the
// upstream model call instead of letting it run to waste.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, schema.ErrorBody{
			Message: "method not allowed",
		})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req schema.AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, schema.ErrorBody{
			Message: "request body must be JSON with a lyrics field",
			Code:    schema.CodeInvalidLyrics,
			Detail:  err.Error(),
		})
		return
	}

	result, err := s.analyzer.Analyze(r.Context(), req)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// respondError maps the pipeline's error taxonomy onto the wire contract.
// Every exit path lands on a category; nothing falls through uncategorized
// except the final 500.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	var rejection *analysis.Rejection
	if errors.As(err, &rejection) {
		wc := rejection.WordCount
		writeError(w, http.StatusBadRequest, schema.ErrorBody{
			Message:   rejection.Message,
			Code:      rejection.Code,
			Detail:    rejection.Detail,
			WordCount: &wc,
		})
		return
	}

	if errors.Is(err, gemini.ErrOverloaded) {
		writeError(w, http.StatusServiceUnavailable, schema.ErrorBody{
			Message: "The analysis engine is overloaded. It is safe to resubmit the same lyrics.",
			Code:    schema.CodeModelOverloaded,
		})
		return
	}

	if errors.Is(err, gemini.ErrInvalidModel) {
		writeError(w, http.StatusBadGateway, schema.ErrorBody{
			Message: "The configured analysis model was rejected upstream.",
			Code:    schema.CodeInvalidModel,
			Detail:  err.Error(),
		})
		return
	}

	var unparseable *analysis.UnparseableError
	if errors.As(err, &unparseable) {
		writeError(w, http.StatusBadGateway, schema.ErrorBody{
			Message:    "The analysis engine returned output that could not be parsed.",
			Code:       schema.CodeUnparseableOutput,
			RawPreview: unparseable.Preview,
		})
		return
	}

	if errors.Is(err, context.Canceled) && r.Context().Err() != nil {
		// The client went away; acknowledge and move on.
		writeError(w, statusClientClosedRequest, schema.ErrorBody{
			Message: "request canceled by client",
			Code:    schema.CodeCanceled,
		})
		return
	}

	s.logger.Error("analysis failed", zap.Error(err))
	writeError(w, http.StatusInternalServerError, schema.ErrorBody{
		Message: "Failed to analyze lyrics.",
		Detail:  err.Error(),
	})
}
