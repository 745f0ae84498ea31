package schema

// Machine-readable error codes carried in the error envelope.
const (
	CodeLyricsTooShort    = "LYRICS_TOO_SHORT"
	CodeLyricsPlaceholder = "LYRICS_PLACEHOLDER"
	CodeInvalidLyrics     = "INVALID_LYRICS"
	CodeModelOverloaded   = "MODEL_OVERLOADED"
	CodeInvalidModel      = "INVALID_MODEL"
	CodeUnparseableOutput = "UNPARSEABLE_OUTPUT"
	CodeCanceled          = "CANCELED"
)

// ErrorBody is the JSON envelope for every non-2xx response. Message is
// always set; the rest is populated per error category.
type ErrorBody struct {
	Message    string `json:"message"`
	Code       string `json:"code,omitempty"`
	Detail     string `json:"detail,omitempty"`
	WordCount  *int   `json:"word_count,omitempty"`
	RawPreview string `json:"rawPreview,omitempty"`
}
