// Package client is the HTTP transport the TUI uses to reach the analysis
// server. Calls are cancellable mid-flight through the caller's context;
// request identities stay local to the lifecycle controller and are never
// sent over the wire.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"lyra/internal/schema"
)

// Client talks to a lyra server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New builds a client for baseURL (no trailing slash required).
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// APIError is a non-2xx response decoded into the wire error envelope.
type APIError struct {
	Status int
	schema.ErrorBody
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s (%d): %s", e.Code, e.Status, e.Message)
	}
	return fmt.Sprintf("analysis failed (%d): %s", e.Status, e.Message)
}

// Retryable reports whether resubmitting the identical request is safe and
// potentially useful.
func (e *APIError) Retryable() bool {
	switch e.Code {
	case schema.CodeModelOverloaded, schema.CodeUnparseableOutput:
		return true
	default:
		return false
	}
}

// Rejection reports whether the failure is a client-correctable input
// problem rather than a server or upstream fault.
func (e *APIError) Rejection() bool {
	switch e.Code {
	case schema.CodeLyricsTooShort, schema.CodeLyricsPlaceholder, schema.CodeInvalidLyrics:
		return true
	default:
		return false
	}
}

// Analyze posts the request and returns the finalized analysis. Context
// cancellation aborts the call and surfaces as ctx.Err(), which the
// lifecycle controller absorbs as a non-error.
func (c *Client) Analyze(ctx context.Context, req schema.AnalysisRequest) (*schema.AnalysisResult, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/analyze", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{Status: resp.StatusCode}
		if err := json.Unmarshal(body, &apiErr.ErrorBody); err != nil {
			apiErr.Message = fmt.Sprintf("unexpected response: %s", truncate(string(body), 120))
		}
		return nil, apiErr
	}

	var result schema.AnalysisResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode result: %w", err)
	}
	return &result, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
