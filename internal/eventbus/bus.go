// Package eventbus is a small in-process pub/sub bus used to observe
// generation attempts and message flow without coupling components.
package eventbus

import (
	"sync"
	"time"
)

// Topic represents an event topic.
type Topic string

const (
	TopicInboundMessage  Topic = "inbound_message"
	TopicOutboundMessage Topic = "outbound_message"
	TopicAttemptStarted  Topic = "attempt_started"
	TopicAttemptFailed   Topic = "attempt_failed"
	TopicGenerationDone  Topic = "generation_done"
	TopicExhausted       Topic = "exhausted"
	TopicError           Topic = "error"
)

// AttemptEvent is the payload for attempt topics.
type AttemptEvent struct {
	Provider string
	Model    string
	Sticky   bool
	Err      string
}

// Event is a message passed through the bus.
type Event struct {
	Topic     Topic
	Payload   any
	Timestamp time.Time
}

// Handler processes an event.
type Handler func(Event)

// Bus dispatches events to subscribers. Handlers run synchronously in
// registration order.
type Bus struct {
	mu       sync.RWMutex
	handlers map[Topic][]Handler
}

// New creates a new event bus.
func New() *Bus {
	return &Bus{
		handlers: make(map[Topic][]Handler),
	}
}

// Subscribe registers a handler for a topic.
func (b *Bus) Subscribe(topic Topic, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[topic] = append(b.handlers[topic], handler)
}

// Publish sends an event to all subscribers of the topic. A nil bus is
// a no-op so components can treat observation as optional.
func (b *Bus) Publish(topic Topic, payload any) {
	if b == nil {
		return
	}
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[topic]))
	copy(handlers, b.handlers[topic])
	b.mu.RUnlock()

	event := Event{
		Topic:     topic,
		Payload:   payload,
		Timestamp: time.Now(),
	}
	for _, h := range handlers {
		h(event)
	}
}
