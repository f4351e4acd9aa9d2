// Package channel abstracts where user messages come from: the console
// by default, Telegram when configured. Every channel feeds inbound
// messages to a single handler; the sender ID keys all per-user state.
package channel

import (
	"context"
	"time"
)

// InboundMessage is one message received from a channel.
type InboundMessage struct {
	ChannelName string
	SenderID    string
	SenderName  string
	Text        string
	Timestamp   time.Time
}

// OutboundMessage is a reply to send through a channel. RecipientID is
// the channel-specific address of the user (for Telegram, the chat ID).
type OutboundMessage struct {
	RecipientID string
	Text        string
}

// Channel is a messaging surface the client can serve.
type Channel interface {
	Name() string
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Send(ctx context.Context, msg OutboundMessage) error
	OnMessage(handler func(InboundMessage))
	IsRunning() bool
}
