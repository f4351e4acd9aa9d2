package channel

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/AITechnologyDev/G4FChat/internal/ui"
)

// ConsoleUserID is the sender ID every console message carries; the
// console is inherently single-user.
const ConsoleUserID = "local"

// ConsoleChannel reads lines from stdin and prints styled replies to
// stdout. `/exit` and `/quit` invoke the quit callback instead of being
// forwarded.
type ConsoleChannel struct {
	mu      sync.Mutex
	in      io.Reader
	out     io.Writer
	handler func(InboundMessage)
	quit    func()
	running bool
	cancel  context.CancelFunc
}

func NewConsoleChannel() *ConsoleChannel {
	return &ConsoleChannel{in: os.Stdin, out: os.Stdout}
}

func (c *ConsoleChannel) Name() string { return "console" }

// OnQuit registers the callback for `/exit`.
func (c *ConsoleChannel) OnQuit(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.quit = fn
}

func (c *ConsoleChannel) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		return nil
	}
	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.running = true

	go c.readLoop(ctx)
	return nil
}

func (c *ConsoleChannel) Stop(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
	}
	c.running = false
	return nil
}

func (c *ConsoleChannel) Send(_ context.Context, msg OutboundMessage) error {
	c.mu.Lock()
	out := c.out
	c.mu.Unlock()

	fmt.Fprintf(out, "\n%s\n\n%s", msg.Text, ui.Prompt())
	return nil
}

func (c *ConsoleChannel) OnMessage(handler func(InboundMessage)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handler = handler
}

func (c *ConsoleChannel) IsRunning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

func (c *ConsoleChannel) readLoop(ctx context.Context) {
	scanner := bufio.NewScanner(c.in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	fmt.Fprint(c.out, ui.Prompt())

	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		text := scanner.Text()
		if text == "" {
			fmt.Fprint(c.out, ui.Prompt())
			continue
		}
		if text == "/exit" || text == "/quit" {
			c.mu.Lock()
			quit := c.quit
			c.mu.Unlock()
			if quit != nil {
				quit()
			}
			return
		}

		c.mu.Lock()
		handler := c.handler
		c.mu.Unlock()
		if handler != nil {
			handler(InboundMessage{
				ChannelName: c.Name(),
				SenderID:    ConsoleUserID,
				SenderName:  "You",
				Text:        text,
				Timestamp:   time.Now(),
			})
		}
	}
}
