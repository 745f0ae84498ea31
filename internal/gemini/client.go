// Package gemini wraps a single call to the Gemini generateContent endpoint.
// The client is deliberately thin: one attempt per call, typed errors for
// the failure modes the orchestrator must tell apart, and no retry policy
// of its own. Overload retries are the caller's decision.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Sentinel errors for the failure modes the orchestrator classifies.
var (
	// ErrOverloaded means the upstream returned 429 or 503. Resubmitting
	// the identical request later is safe.
	ErrOverloaded = errors.New("gemini: model overloaded")

	// ErrInvalidModel means the upstream rejected the configured model
	// identifier. Retrying will not help; this is operator-facing.
	ErrInvalidModel = errors.New("gemini: invalid model identifier")
)

// Config holds client configuration.
type Config struct {
	APIKey          string
	BaseURL         string
	Model           string
	Timeout         time.Duration
	MaxOutputTokens int
	Temperature     float64
	TopP            float64
}

// DefaultConfig returns sampling knobs tuned for schema compliance over
// creativity and an output cap that bounds latency and cost.
func DefaultConfig(apiKey string) Config {
	return Config{
		APIKey:          apiKey,
		BaseURL:         "https://generativelanguage.googleapis.com/v1beta",
		Model:           "gemini-2.5-flash",
		Timeout:         90 * time.Second,
		MaxOutputTokens: 4096,
		Temperature:     0.4,
		TopP:            0.9,
	}
}

// Client calls the Gemini REST API.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a client from config. A nil logger is replaced with
// a no-op logger.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultConfig("").BaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultConfig("").Model
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig("").Timeout
	}
	if cfg.MaxOutputTokens <= 0 {
		cfg.MaxOutputTokens = DefaultConfig("").MaxOutputTokens
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

// Model returns the configured model identifier.
func (c *Client) Model() string {
	return c.cfg.Model
}

type generateRequest struct {
	Contents          []content        `json:"contents"`
	SystemInstruction *content         `json:"systemInstruction,omitempty"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopP            float64 `json:"topP,omitempty"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Complete sends one generation request and returns the flattened text of
// the first candidate. Context cancellation aborts the upstream call.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if c.cfg.APIKey == "" {
		return "", fmt.Errorf("gemini: API key not configured")
	}

	// Auto-apply timeout if the context has no deadline, so a hung
	// upstream call surfaces as a transport failure instead of a stall.
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	start := time.Now()

	reqBody := generateRequest{
		Contents: []content{
			{Role: "user", Parts: []part{{Text: userPrompt}}},
		},
		SystemInstruction: &content{
			Parts: []part{{Text: systemPrompt}},
		},
		GenerationConfig: generationConfig{
			Temperature:     c.cfg.Temperature,
			TopP:            c.cfg.TopP,
			MaxOutputTokens: c.cfg.MaxOutputTokens,
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("gemini: marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.cfg.BaseURL, c.cfg.Model, c.cfg.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("gemini: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("gemini: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("gemini: read response: %w", err)
	}

	if err := classifyStatus(resp.StatusCode, body); err != nil {
		c.logger.Warn("gemini call failed",
			zap.Int("status", resp.StatusCode),
			zap.String("model", c.cfg.Model),
			zap.Error(err))
		return "", err
	}

	var genResp generateResponse
	if err := json.Unmarshal(body, &genResp); err != nil {
		return "", fmt.Errorf("gemini: parse response: %w", err)
	}
	if genResp.Error != nil {
		return "", fmt.Errorf("gemini: API error: %s", genResp.Error.Message)
	}
	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini: no completion returned")
	}

	var sb strings.Builder
	for _, p := range genResp.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	text := strings.TrimSpace(sb.String())

	c.logger.Debug("gemini call completed",
		zap.String("model", c.cfg.Model),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("response_len", len(text)))

	return text, nil
}

// classifyStatus maps upstream HTTP failures onto the sentinel errors the
// orchestrator distinguishes.
func classifyStatus(status int, body []byte) error {
	switch {
	case status == http.StatusOK:
		return nil
	case status == http.StatusTooManyRequests || status == http.StatusServiceUnavailable:
		return fmt.Errorf("%w (status %d)", ErrOverloaded, status)
	case status == http.StatusBadRequest || status == http.StatusNotFound:
		if bytes.Contains(bytes.ToLower(body), []byte("model")) {
			return fmt.Errorf("%w: %s", ErrInvalidModel, truncate(string(body), 200))
		}
		return fmt.Errorf("gemini: request rejected with status %d: %s", status, truncate(string(body), 200))
	default:
		return fmt.Errorf("gemini: request failed with status %d: %s", status, truncate(string(body), 200))
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
