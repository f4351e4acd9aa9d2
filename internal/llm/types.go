package llm

// Message represents a chat message.
type Message struct {
	Role    string `json:"role"` // "system", "user", "assistant"
	Content string `json:"content"`
}

// Chunk is one piece of a streamed provider response. A provider sends
// zero or more text chunks and closes the channel when done; a failed
// stream carries the error in its final chunk.
type Chunk struct {
	Text string
	Err  error
}

// ErrorType classifies provider errors for retry decisions and reporting.
type ErrorType int

const (
	ErrorUnknown      ErrorType = iota
	ErrorRateLimit              // 429
	ErrorAuth                   // 401/403
	ErrorInvalidInput           // 400
	ErrorServerError            // 500+
	ErrorTimeout                // context deadline exceeded
	ErrorNetwork                // connection refused, DNS, etc.
	ErrorEmpty                  // provider returned only whitespace
)

// String returns a short tag used in attempt logs.
func (t ErrorType) String() string {
	switch t {
	case ErrorRateLimit:
		return "rate_limit"
	case ErrorAuth:
		return "auth"
	case ErrorInvalidInput:
		return "invalid_input"
	case ErrorServerError:
		return "server_error"
	case ErrorTimeout:
		return "timeout"
	case ErrorNetwork:
		return "network"
	case ErrorEmpty:
		return "empty_response"
	default:
		return "unknown"
	}
}
