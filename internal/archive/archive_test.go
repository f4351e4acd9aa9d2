package archive

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/AITechnologyDev/G4FChat/internal/llm"
)

func newTestArchive(t *testing.T) *Archive {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "archive.db")
	a, err := New(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

func TestSaveAndHistory(t *testing.T) {
	a := newTestArchive(t)
	ctx := context.Background()

	msgs := []llm.Message{
		{Role: "user", Content: "Hello"},
		{Role: "assistant", Content: "Hi there!"},
		{Role: "user", Content: "How are you?"},
	}
	for i, m := range msgs {
		provider := ""
		if m.Role == "assistant" {
			provider = "Beta"
		}
		if err := a.SaveMessage(ctx, "1", "chat1", m, provider); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	history, err := a.History(ctx, "1", "chat1", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(history))
	}
	if history[0].Content != "Hello" || history[2].Content != "How are you?" {
		t.Fatalf("wrong order: %v", history)
	}
}

func TestHistoryLimit(t *testing.T) {
	a := newTestArchive(t)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		a.SaveMessage(ctx, "1", "chat1", llm.Message{Role: "user", Content: "msg"}, "")
	}

	history, err := a.History(ctx, "1", "chat1", 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(history))
	}
}

func TestIsolatedChats(t *testing.T) {
	a := newTestArchive(t)
	ctx := context.Background()

	a.SaveMessage(ctx, "1", "chat1", llm.Message{Role: "user", Content: "chat1 msg"}, "")
	a.SaveMessage(ctx, "1", "chat2", llm.Message{Role: "user", Content: "chat2 msg"}, "")
	a.SaveMessage(ctx, "2", "chat1", llm.Message{Role: "user", Content: "other user"}, "")

	h, _ := a.History(ctx, "1", "chat1", 10)
	if len(h) != 1 || h[0].Content != "chat1 msg" {
		t.Fatalf("chat history bled: %v", h)
	}
}

func TestCounters(t *testing.T) {
	a := newTestArchive(t)
	ctx := context.Background()

	if v, _ := a.Counter(ctx, CounterAPICalls); v != 0 {
		t.Fatalf("expected 0, got %d", v)
	}
	a.Bump(ctx, CounterAPICalls, 1)
	a.Bump(ctx, CounterAPICalls, 1)
	a.Bump(ctx, CounterSavedCodeBlocks, 3)

	if v, _ := a.Counter(ctx, CounterAPICalls); v != 2 {
		t.Fatalf("expected 2, got %d", v)
	}
	if v, _ := a.Counter(ctx, CounterSavedCodeBlocks); v != 3 {
		t.Fatalf("expected 3, got %d", v)
	}
}

func TestStats(t *testing.T) {
	a := newTestArchive(t)
	ctx := context.Background()

	a.SaveMessage(ctx, "1", "chat1", llm.Message{Role: "user", Content: "hi"}, "")
	a.SaveMessage(ctx, "1", "chat1", llm.Message{Role: "assistant", Content: "hello"}, "Beta")
	a.SaveMessage(ctx, "1", "chat2", llm.Message{Role: "user", Content: "hi"}, "")
	a.Bump(ctx, CounterAPICalls, 2)

	stats, err := a.Stats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalMessages != 3 {
		t.Fatalf("expected 3 messages, got %d", stats.TotalMessages)
	}
	if stats.ActiveChats != 2 {
		t.Fatalf("expected 2 chats, got %d", stats.ActiveChats)
	}
	if stats.APICalls != 2 {
		t.Fatalf("expected 2 api calls, got %d", stats.APICalls)
	}
}
