package channel

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

type fakeChannel struct {
	mu      sync.Mutex
	name    string
	running bool
	starts  int
	stops   int
	failure error
}

func (f *fakeChannel) Name() string { return f.name }

func (f *fakeChannel) Start(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.starts++
	if f.failure != nil {
		return f.failure
	}
	f.running = true
	return nil
}

func (f *fakeChannel) Stop(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stops++
	f.running = false
	return nil
}

func (f *fakeChannel) Send(context.Context, OutboundMessage) error { return nil }
func (f *fakeChannel) OnMessage(func(InboundMessage))              {}

func (f *fakeChannel) IsRunning() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.running
}

func TestManagerStartStopAll(t *testing.T) {
	m := NewManager()
	a := &fakeChannel{name: "alpha"}
	b := &fakeChannel{name: "beta"}
	m.Register(a)
	m.Register(b)

	if err := m.StartAll(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !a.IsRunning() || !b.IsRunning() {
		t.Fatal("channels not running after StartAll")
	}

	list := m.List()
	if len(list) != 2 || !list["alpha"] || !list["beta"] {
		t.Errorf("list = %v", list)
	}

	m.StopAll(context.Background())
	if a.IsRunning() || b.IsRunning() {
		t.Fatal("channels still running after StopAll")
	}
}

func TestManagerGet(t *testing.T) {
	m := NewManager()
	m.Register(&fakeChannel{name: "alpha"})
	if _, ok := m.Get("alpha"); !ok {
		t.Fatal("registered channel not found")
	}
	if _, ok := m.Get("missing"); ok {
		t.Fatal("unexpected channel")
	}
}

func TestConsoleDeliversMessages(t *testing.T) {
	var out bytes.Buffer
	c := &ConsoleChannel{in: strings.NewReader("hello\n"), out: &out}

	got := make(chan InboundMessage, 1)
	c.OnMessage(func(msg InboundMessage) { got <- msg })

	if err := c.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer c.Stop(context.Background())

	select {
	case msg := <-got:
		if msg.SenderID != ConsoleUserID {
			t.Errorf("sender = %q", msg.SenderID)
		}
		if msg.Text != "hello" {
			t.Errorf("text = %q", msg.Text)
		}
	case <-time.After(time.Second):
		t.Fatal("no message delivered")
	}
}

func TestConsoleExitInvokesQuit(t *testing.T) {
	var out bytes.Buffer
	c := &ConsoleChannel{in: strings.NewReader("/exit\n"), out: &out}

	quit := make(chan struct{})
	c.OnQuit(func() { close(quit) })
	c.OnMessage(func(InboundMessage) { t.Error("/exit must not reach the handler") })

	if err := c.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer c.Stop(context.Background())

	select {
	case <-quit:
	case <-time.After(time.Second):
		t.Fatal("quit callback not invoked")
	}
}

func TestSplitMessage(t *testing.T) {
	chunks := splitMessage(strings.Repeat("я", 9001), 4000)
	if len(chunks) != 3 {
		t.Fatalf("chunks = %d, want 3", len(chunks))
	}
	if n := len([]rune(chunks[0])); n != 4000 {
		t.Errorf("first chunk runes = %d", n)
	}
	if n := len([]rune(chunks[2])); n != 1001 {
		t.Errorf("last chunk runes = %d", n)
	}
	if splitMessage("", 4000) != nil {
		t.Error("empty text must yield no chunks")
	}
}
