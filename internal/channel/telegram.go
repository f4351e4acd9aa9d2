package channel

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	tele "gopkg.in/telebot.v3"

	"github.com/AITechnologyDev/G4FChat/internal/config"
)

// telegram caps messages at 4096 chars; we split a bit below that.
const telegramChunkLimit = 4000

// TelegramChannel serves the client over the Telegram Bot API. Each
// sender's numeric ID becomes the userID for session state, so multiple
// Telegram users get isolated chats, models and languages.
type TelegramChannel struct {
	mu         sync.Mutex
	token      string
	allowedIDs map[int64]bool
	bot        *tele.Bot
	handler    func(InboundMessage)
	running    bool
}

// NewTelegramChannel creates a Telegram channel from config. An empty
// AllowedIDs list admits everyone.
func NewTelegramChannel(cfg config.TelegramConfig) *TelegramChannel {
	allowed := make(map[int64]bool, len(cfg.AllowedIDs))
	for _, id := range cfg.AllowedIDs {
		allowed[id] = true
	}
	return &TelegramChannel{token: cfg.Token, allowedIDs: allowed}
}

func (t *TelegramChannel) Name() string { return "telegram" }

func (t *TelegramChannel) Start(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.running {
		return nil
	}

	bot, err := tele.NewBot(tele.Settings{
		Token:  t.token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		return fmt.Errorf("telegram bot init: %w", err)
	}

	bot.Handle(tele.OnText, func(c tele.Context) error {
		sender := c.Sender()
		if len(t.allowedIDs) > 0 && !t.allowedIDs[sender.ID] {
			log.Printf("[telegram] ignoring message from unauthorized user %d (%s)", sender.ID, sender.Username)
			return nil
		}

		t.mu.Lock()
		handler := t.handler
		t.mu.Unlock()
		if handler != nil {
			handler(InboundMessage{
				ChannelName: t.Name(),
				SenderID:    strconv.FormatInt(sender.ID, 10),
				SenderName:  sender.FirstName,
				Text:        c.Text(),
				Timestamp:   time.Now(),
			})
		}
		return nil
	})

	t.bot = bot
	t.running = true

	go bot.Start()
	go func() {
		<-ctx.Done()
		bot.Stop()
	}()

	return nil
}

func (t *TelegramChannel) Stop(_ context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.bot != nil {
		t.bot.Stop()
	}
	t.running = false
	return nil
}

func (t *TelegramChannel) Send(_ context.Context, msg OutboundMessage) error {
	t.mu.Lock()
	bot := t.bot
	t.mu.Unlock()

	if bot == nil {
		return fmt.Errorf("telegram bot not started")
	}

	id, err := strconv.ParseInt(msg.RecipientID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid recipient ID %q: %w", msg.RecipientID, err)
	}
	recipient := &tele.Chat{ID: id}

	for _, chunk := range splitMessage(msg.Text, telegramChunkLimit) {
		if _, err := bot.Send(recipient, chunk); err != nil {
			return fmt.Errorf("telegram send: %w", err)
		}
	}
	return nil
}

func (t *TelegramChannel) OnMessage(handler func(InboundMessage)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.handler = handler
}

func (t *TelegramChannel) IsRunning() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

// splitMessage cuts text into rune-safe chunks of at most limit runes.
func splitMessage(text string, limit int) []string {
	if text == "" {
		return nil
	}
	runes := []rune(text)
	var chunks []string
	for len(runes) > 0 {
		n := limit
		if n > len(runes) {
			n = len(runes)
		}
		chunks = append(chunks, string(runes[:n]))
		runes = runes[n:]
	}
	return chunks
}
