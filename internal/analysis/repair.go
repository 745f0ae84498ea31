package analysis

import (
	"encoding/json"
	"strings"

	"lyra/internal/schema"
)

// ParseStructured turns raw model text into a validated AnalysisResult, or
// nil when the text is not a usable document. It never panics and never
// propagates a parse error; nil is the only failure signal, which keeps the
// retry decision in the orchestrator.
func ParseStructured(raw string) *schema.AnalysisResult {
	text := stripFences(raw)

	// Cheap pre-check before attempting a full parse. The engine is told
	// the response must begin with { and end with }.
	if !strings.HasPrefix(text, "{") || !strings.HasSuffix(text, "}") {
		return nil
	}

	var result schema.AnalysisResult
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return nil
	}
	if err := result.Validate(); err != nil {
		return nil
	}
	return &result
}

// stripFences removes code-fence wrapping the producer sometimes adds
// around the JSON payload despite instructions.
func stripFences(raw string) string {
	text := strings.TrimSpace(raw)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
