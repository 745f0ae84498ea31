package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lyra/internal/schema"
)

func TestAnalyze_Success(t *testing.T) {
	var got schema.AnalysisRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/analyze", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		res := schema.AnalysisResult{}
		res.CoreInsight.Thesis = "a thesis"
		res.Metadata.WordCount = 23
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(res)
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	result, err := c.Analyze(context.Background(), schema.AnalysisRequest{
		Lyrics: "some lyrics",
		Artist: "someone",
	})
	require.NoError(t, err)

	assert.Equal(t, "some lyrics", got.Lyrics)
	assert.Equal(t, "someone", got.Artist)
	assert.Equal(t, "a thesis", result.CoreInsight.Thesis)
	assert.Equal(t, 23, result.Metadata.WordCount)
}

func TestAnalyze_ErrorEnvelope(t *testing.T) {
	wc := 12
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(schema.ErrorBody{
			Message:   "Lyrics must be at least 20 words to analyze.",
			Code:      schema.CodeLyricsTooShort,
			Detail:    "got 12 words after trimming",
			WordCount: &wc,
		})
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	_, err := c.Analyze(context.Background(), schema.AnalysisRequest{Lyrics: "short"})
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, schema.CodeLyricsTooShort, apiErr.Code)
	require.NotNil(t, apiErr.WordCount)
	assert.Equal(t, 12, *apiErr.WordCount)
	assert.True(t, apiErr.Rejection())
	assert.False(t, apiErr.Retryable())
}

func TestAnalyze_NonJSONError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>upstream proxy error</html>"))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	_, err := c.Analyze(context.Background(), schema.AnalysisRequest{Lyrics: "x"})

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Contains(t, apiErr.Message, "unexpected response")
}

func TestAnalyze_Cancellation(t *testing.T) {
	started := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Drain the body so the server's background read can observe the
		// client disconnect; otherwise r.Context() is never canceled and
		// srv.Close deadlocks.
		_, _ = io.Copy(io.Discard, r.Body)
		close(started)
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	c := New(srv.URL, 30*time.Second)
	go func() {
		_, err := c.Analyze(ctx, schema.AnalysisRequest{Lyrics: "x"})
		errCh <- err
	}()

	<-started
	cancel()

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("cancellation did not abort the request")
	}
}

func TestAPIError_Classification(t *testing.T) {
	cases := []struct {
		code      string
		retryable bool
		rejection bool
	}{
		{schema.CodeLyricsTooShort, false, true},
		{schema.CodeLyricsPlaceholder, false, true},
		{schema.CodeInvalidLyrics, false, true},
		{schema.CodeModelOverloaded, true, false},
		{schema.CodeUnparseableOutput, true, false},
		{schema.CodeInvalidModel, false, false},
		{"", false, false},
	}
	for _, tc := range cases {
		e := &APIError{ErrorBody: schema.ErrorBody{Code: tc.code}}
		assert.Equal(t, tc.retryable, e.Retryable(), "retryable for %q", tc.code)
		assert.Equal(t, tc.rejection, e.Rejection(), "rejection for %q", tc.code)
	}
}
