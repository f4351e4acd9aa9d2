// Package session persists per-user chat sessions, model choice and
// language preference to JSON files.
package session

import (
	"time"

	"github.com/AITechnologyDev/G4FChat/internal/llm"
)

// Chat is one persisted conversation. History is append-only and always
// starts with the system message seeded at creation. Provider is the
// sticky provider name remembered after the most recent successful
// generation; empty means none.
type Chat struct {
	History  []llm.Message `json:"history"`
	Provider string        `json:"provider,omitempty"`
	Created  time.Time     `json:"created"`
}

// Store is the session persistence contract consumed by the generator
// and the chat service.
type Store interface {
	// Model returns the user's configured model, or "" if unset.
	Model(userID string) string
	SetModel(userID, model string) error

	// Lang returns the user's language code, or "" if unset.
	Lang(userID string) string
	SetLang(userID, lang string) error

	// NewChat creates a chat seeded with the system prompt, makes it
	// active and returns its ID.
	NewChat(userID string) (string, error)
	Chat(userID, chatID string) (Chat, bool)
	// Chats returns the user's chat IDs (oldest first) and the active ID.
	Chats(userID string) ([]string, string)
	SetActive(userID, chatID string) error
	// ActiveChat returns the user's active chat ID, creating a chat if
	// the user has none.
	ActiveChat(userID string) (string, error)
	// DeleteChat removes a chat. If it was active, another chat becomes
	// active (a fresh one is created when none remain); the resulting
	// active ID is returned.
	DeleteChat(userID, chatID string) (string, error)

	AppendMessage(userID, chatID string, msg llm.Message) error
	// SetProvider records the chat's sticky provider; "" clears it.
	SetProvider(userID, chatID, provider string) error

	// Users returns the number of users with a stored model choice.
	Users() int
}
