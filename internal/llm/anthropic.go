package llm

import (
	"context"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const anthropicMaxTokens = 4096

// AnthropicProvider implements Provider using the Anthropic Messages API.
type AnthropicProvider struct {
	client anthropic.Client
	name   string
	models map[string]bool
}

// AnthropicConfig holds configuration for the Anthropic provider.
type AnthropicConfig struct {
	Name   string
	APIKey string
	Models []string
}

// NewAnthropicProvider creates a new Anthropic provider.
func NewAnthropicProvider(cfg AnthropicConfig) *AnthropicProvider {
	name := cfg.Name
	if name == "" {
		name = "anthropic"
	}
	return &AnthropicProvider{
		client: anthropic.NewClient(option.WithAPIKey(cfg.APIKey)),
		name:   name,
		models: modelSet(cfg.Models),
	}
}

func (p *AnthropicProvider) Name() string { return p.name }

func (p *AnthropicProvider) SupportsModel(model string) bool {
	return len(p.models) == 0 || p.models[model]
}

func (p *AnthropicProvider) Stream(ctx context.Context, model string, messages []Message) (<-chan Chunk, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: anthropicMaxTokens,
	}

	// Anthropic takes the system prompt out of band.
	for _, m := range messages {
		switch m.Role {
		case "system":
			params.System = []anthropic.TextBlockParam{{Text: m.Content}}
		case "assistant":
			params.Messages = append(params.Messages, anthropic.NewAssistantMessage(
				anthropic.NewTextBlock(m.Content),
			))
		default:
			params.Messages = append(params.Messages, anthropic.NewUserMessage(
				anthropic.NewTextBlock(m.Content),
			))
		}
	}

	stream := p.client.Messages.NewStreaming(ctx, params)
	ch := make(chan Chunk, 64)

	go func() {
		defer close(ch)
		for stream.Next() {
			event := stream.Current()
			switch e := event.AsAny().(type) {
			case anthropic.ContentBlockDeltaEvent:
				if e.Delta.Type != "text_delta" || e.Delta.Text == "" {
					continue
				}
				select {
				case ch <- Chunk{Text: e.Delta.Text}:
				case <-ctx.Done():
					return
				}
			}
		}
		if err := stream.Err(); err != nil {
			select {
			case ch <- Chunk{Err: classifyAnthropicError(err)}:
			case <-ctx.Done():
			}
		}
	}()

	return ch, nil
}

func classifyAnthropicError(err error) *LLMError {
	msg := err.Error()
	lower := strings.ToLower(msg)
	llmErr := &LLMError{Err: err, Message: msg}

	switch {
	case strings.Contains(lower, "401") || strings.Contains(lower, "authentication"):
		llmErr.Type = ErrorAuth
	case strings.Contains(lower, "429") || strings.Contains(lower, "rate_limit"):
		llmErr.Type = ErrorRateLimit
	case strings.Contains(lower, "400") || strings.Contains(lower, "invalid_request"):
		llmErr.Type = ErrorInvalidInput
	case strings.Contains(lower, "500") || strings.Contains(lower, "overloaded"):
		llmErr.Type = ErrorServerError
	case strings.Contains(lower, "timeout") || strings.Contains(lower, "deadline"):
		llmErr.Type = ErrorTimeout
	default:
		llmErr.Type = ErrorUnknown
	}
	return llmErr
}
