package config

import "github.com/AITechnologyDev/G4FChat/internal/llm"

// Config is the top-level application configuration.
type Config struct {
	Chat       ChatConfig         `json:"chat"`
	Generation GenerationConfig   `json:"generation"`
	Providers  []llm.EntrySpec    `json:"providers"`
	Registry   llm.RegistryConfig `json:"registry"`
	Channels   ChannelsConfig     `json:"channels"`
}

type ChatConfig struct {
	// SystemPrompt seeds the first history entry of every new chat.
	SystemPrompt string `json:"system_prompt"`
	DefaultModel string `json:"default_model"`
	DefaultLang  string `json:"default_lang"`
	// Models is the list accepted by /setmodel.
	Models []string `json:"models"`
}

type GenerationConfig struct {
	// TimeoutSecs bounds a single provider attempt.
	TimeoutSecs int `json:"timeout_secs"`
	// MaxResponseChars caps accumulated streamed output (hard truncation).
	MaxResponseChars int `json:"max_response_chars"`
	// RetryDelayMS is the pause between ranked attempts.
	RetryDelayMS int `json:"retry_delay_ms"`
}

type ChannelsConfig struct {
	Telegram *TelegramConfig `json:"telegram,omitempty"`
}

type TelegramConfig struct {
	Token      string  `json:"token"`
	AllowedIDs []int64 `json:"allowed_ids,omitempty"`
}
