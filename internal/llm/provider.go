package llm

import "context"

// Provider is the interface all text-generation backends must implement.
// Every adapter normalizes its output to the same contract: a lazy,
// finite, non-restartable sequence of text chunks.
type Provider interface {
	// Stream sends a chat completion request and returns the response as
	// a channel of chunks. The channel is closed when the response is
	// complete; a mid-stream failure is delivered as a final chunk with
	// Err set. Implementations must honor ctx cancellation.
	Stream(ctx context.Context, model string, messages []Message) (<-chan Chunk, error)

	// Name returns the catalog name of the provider (e.g. "openai").
	Name() string

	// SupportsModel reports whether the provider accepts the model name.
	SupportsModel(model string) bool
}

// LLMError wraps an error with a classification for fallback logic.
type LLMError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *LLMError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *LLMError) Unwrap() error {
	return e.Err
}
