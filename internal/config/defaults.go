package config

import "github.com/AITechnologyDev/G4FChat/internal/llm"

// Defaults returns a Config with sensible default values.
func Defaults() *Config {
	return &Config{
		Chat: ChatConfig{
			SystemPrompt: "You are a friendly and helpful AI assistant.",
			DefaultModel: "gpt-4o",
			DefaultLang:  "en",
			Models: []string{
				"gpt-4o", "gpt-4o-mini", "gpt-4", "gpt-3.5-turbo",
				"o1", "o1-mini", "o3-mini", "o4-mini",
				"gpt-4.1", "gpt-4.1-mini", "gpt-4.1-nano",
				"llama-3.1-8b", "llama-3.1-70b", "llama-3.3-70b",
				"mistral-7b", "mixtral-8x7b", "mistral-nemo",
				"gemini-1.5-flash", "gemini-1.5-pro", "gemini-2.0-flash",
				"qwen-2.5-72b", "qwen-2.5-coder-32b", "qwq-32b",
				"deepseek-v3", "deepseek-r1",
				"claude-3.5-sonnet", "claude-3-opus", "claude-3-haiku",
			},
		},
		Generation: GenerationConfig{
			TimeoutSecs:      60,
			MaxResponseChars: 10000,
			RetryDelayMS:     300,
		},
		Providers: []llm.EntrySpec{
			{Name: "openai", Kind: "openai", APIKey: "env:OPENAI_API_KEY", Working: true},
			{Name: "openrouter", Kind: "openai", APIKey: "env:OPENROUTER_API_KEY", BaseURL: "https://openrouter.ai/api/v1", Working: true},
			{Name: "anthropic", Kind: "anthropic", APIKey: "env:ANTHROPIC_API_KEY", Working: true},
			{Name: "you", Kind: "openai", APIKey: "env:YOU_API_KEY", BaseURL: "https://api.you.com/v1", Working: true},
			{Name: "local", Kind: "openai", BaseURL: "http://localhost:11434/v1", Working: false},
		},
		Registry: llm.RegistryConfig{
			Backup:   []string{"you"},
			Fallback: "you",
		},
		Channels: ChannelsConfig{},
	}
}
