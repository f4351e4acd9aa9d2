package chat

import (
	"context"
	"strings"
	"testing"

	"github.com/AITechnologyDev/G4FChat/internal/archive"
	"github.com/AITechnologyDev/G4FChat/internal/eventbus"
	"github.com/AITechnologyDev/G4FChat/internal/generator"
	"github.com/AITechnologyDev/G4FChat/internal/llm"
	"github.com/AITechnologyDev/G4FChat/internal/session"
)

type fakeResponder struct {
	reply string
	calls int
}

func (f *fakeResponder) Generate(_ context.Context, _, _ string, _ []llm.Message) string {
	f.calls++
	return f.reply
}

type fakeProviders struct{ names []string }

func (f *fakeProviders) Names() []string { return f.names }

type archivedMsg struct {
	userID, chatID, role, provider string
}

type fakeArchiver struct {
	saved    []archivedMsg
	counters map[string]int64
}

func newFakeArchiver() *fakeArchiver {
	return &fakeArchiver{counters: make(map[string]int64)}
}

func (f *fakeArchiver) SaveMessage(_ context.Context, userID, chatID string, msg llm.Message, provider string) error {
	f.saved = append(f.saved, archivedMsg{userID, chatID, msg.Role, provider})
	return nil
}

func (f *fakeArchiver) Bump(_ context.Context, name string, delta int64) error {
	f.counters[name] += delta
	return nil
}

func (f *fakeArchiver) Stats(_ context.Context) (archive.Stats, error) {
	return archive.Stats{
		TotalMessages: int64(len(f.saved)),
		APICalls:      f.counters[archive.CounterAPICalls],
	}, nil
}

func newService(t *testing.T, responder Responder, arch Archiver) (*Service, session.Store) {
	t.Helper()
	store := session.NewFileStore(t.TempDir(), "You are a helpful assistant.")
	s := New(store, responder, &fakeProviders{names: []string{"openai", "you"}}, arch, eventbus.New(), Options{
		Models:       []string{"gpt-4o", "deepseek-v3"},
		DefaultModel: "gpt-4o",
	})
	return s, store
}

func TestHelpListsCommands(t *testing.T) {
	s, _ := newService(t, &fakeResponder{}, nil)
	reply := s.Handle(context.Background(), "u1", "/help")
	for _, want := range []string{"/newchat", "/setmodel", "/providers", "/lang"} {
		if !strings.Contains(reply.Text, want) {
			t.Errorf("help missing %q:\n%s", want, reply.Text)
		}
	}
}

func TestUnknownCommand(t *testing.T) {
	s, _ := newService(t, &fakeResponder{}, nil)
	reply := s.Handle(context.Background(), "u1", "/frobnicate")
	if !strings.Contains(reply.Text, "Unknown command") {
		t.Errorf("reply = %q", reply.Text)
	}
}

func TestConversePersistsTurn(t *testing.T) {
	arch := newFakeArchiver()
	resp := &fakeResponder{reply: "Hi there"}
	s, store := newService(t, resp, arch)

	reply := s.Handle(context.Background(), "u1", "hello")
	if reply.Failure {
		t.Fatal("unexpected failure reply")
	}
	if reply.Text != "Hi there" {
		t.Errorf("text = %q", reply.Text)
	}
	if resp.calls != 1 {
		t.Errorf("responder calls = %d", resp.calls)
	}

	chatID, err := store.ActiveChat("u1")
	if err != nil {
		t.Fatal(err)
	}
	chat, ok := store.Chat("u1", chatID)
	if !ok {
		t.Fatal("active chat missing")
	}
	roles := make([]string, 0, len(chat.History))
	for _, m := range chat.History {
		roles = append(roles, m.Role)
	}
	if got := strings.Join(roles, ","); got != "system,user,assistant" {
		t.Errorf("history roles = %s", got)
	}
	if len(arch.saved) != 2 {
		t.Errorf("archived %d messages, want 2", len(arch.saved))
	}
	if arch.counters[archive.CounterAPICalls] != 1 {
		t.Errorf("api calls = %d", arch.counters[archive.CounterAPICalls])
	}
}

func TestFailureReportNotPersisted(t *testing.T) {
	resp := &fakeResponder{reply: generator.ReportMarker + " All providers are unavailable."}
	s, store := newService(t, resp, nil)

	reply := s.Handle(context.Background(), "u1", "hello")
	if !reply.Failure {
		t.Fatal("expected failure reply")
	}
	chatID, _ := store.ActiveChat("u1")
	chat, _ := store.Chat("u1", chatID)
	// system + user only: the report must not enter history
	if len(chat.History) != 2 {
		t.Fatalf("history length = %d, want 2", len(chat.History))
	}
	if last := chat.History[len(chat.History)-1]; last.Role != "user" {
		t.Errorf("last role = %s", last.Role)
	}
}

func TestThinkingStripped(t *testing.T) {
	resp := &fakeResponder{reply: "<thinking>pondering</thinking>The answer."}
	s, store := newService(t, resp, nil)

	reply := s.Handle(context.Background(), "u1", "question")
	if reply.Text != "The answer." {
		t.Errorf("text = %q", reply.Text)
	}
	if len(reply.Thoughts) != 1 || reply.Thoughts[0] != "pondering" {
		t.Errorf("thoughts = %v", reply.Thoughts)
	}
	chatID, _ := store.ActiveChat("u1")
	chat, _ := store.Chat("u1", chatID)
	if got := chat.History[len(chat.History)-1].Content; got != "The answer." {
		t.Errorf("stored assistant content = %q", got)
	}
}

func TestCodeBlocksSaved(t *testing.T) {
	arch := newFakeArchiver()
	resp := &fakeResponder{reply: "Here:\n\n```go\npackage main\n```\n"}
	store := session.NewFileStore(t.TempDir(), "sys")
	s := New(store, resp, &fakeProviders{}, arch, nil, Options{
		Models:       []string{"gpt-4o"},
		DefaultModel: "gpt-4o",
		CodeDir:      t.TempDir(),
	})

	reply := s.Handle(context.Background(), "u1", "show me code")
	if len(reply.SavedFiles) != 1 {
		t.Fatalf("saved files = %v", reply.SavedFiles)
	}
	if arch.counters[archive.CounterSavedCodeBlocks] != 1 {
		t.Errorf("saved counter = %d", arch.counters[archive.CounterSavedCodeBlocks])
	}
}

func TestSetModelValidation(t *testing.T) {
	s, store := newService(t, &fakeResponder{}, nil)
	ctx := context.Background()

	if reply := s.Handle(ctx, "u1", "/setmodel bogus-model"); !strings.Contains(reply.Text, "not available") {
		t.Errorf("reply = %q", reply.Text)
	}
	if reply := s.Handle(ctx, "u1", "/setmodel"); !strings.Contains(reply.Text, "Specify") {
		t.Errorf("reply = %q", reply.Text)
	}
	if reply := s.Handle(ctx, "u1", "/setmodel deepseek-v3"); !strings.Contains(reply.Text, "deepseek-v3") {
		t.Errorf("reply = %q", reply.Text)
	}
	if got := store.Model("u1"); got != "deepseek-v3" {
		t.Errorf("stored model = %q", got)
	}
	if reply := s.Handle(ctx, "u1", "/mymodel"); !strings.Contains(reply.Text, "deepseek-v3") {
		t.Errorf("reply = %q", reply.Text)
	}
}

func TestModelsMarksCurrent(t *testing.T) {
	s, _ := newService(t, &fakeResponder{}, nil)
	reply := s.Handle(context.Background(), "u1", "/models")
	if !strings.Contains(reply.Text, "*  1. gpt-4o") {
		t.Errorf("default model not marked:\n%s", reply.Text)
	}
}

func TestLangSwitch(t *testing.T) {
	s, _ := newService(t, &fakeResponder{}, nil)
	ctx := context.Background()

	if reply := s.Handle(ctx, "u1", "/lang xx"); !strings.Contains(reply.Text, "Invalid language") {
		t.Errorf("reply = %q", reply.Text)
	}
	if reply := s.Handle(ctx, "u1", "/lang ru"); !strings.Contains(reply.Text, "Язык установлен") {
		t.Errorf("reply = %q", reply.Text)
	}
	// subsequent replies come back in Russian
	if reply := s.Handle(ctx, "u1", "/help"); !strings.Contains(reply.Text, "Команды") {
		t.Errorf("help not localized:\n%s", reply.Text)
	}
}

func TestChatLifecycleCommands(t *testing.T) {
	s, _ := newService(t, &fakeResponder{}, nil)
	ctx := context.Background()

	created := s.Handle(ctx, "u1", "/newchat")
	parts := strings.Split(created.Text, ": ")
	if len(parts) != 2 {
		t.Fatalf("unexpected newchat reply %q", created.Text)
	}
	chatID := parts[1]

	listing := s.Handle(ctx, "u1", "/chats")
	if !strings.Contains(listing.Text, "* "+chatID) {
		t.Errorf("new chat not active in listing:\n%s", listing.Text)
	}

	if reply := s.Handle(ctx, "u1", "/usechat nope1234"); !strings.Contains(reply.Text, "not found") {
		t.Errorf("reply = %q", reply.Text)
	}
	if reply := s.Handle(ctx, "u1", "/usechat"); !strings.Contains(reply.Text, "Enter the chat ID") {
		t.Errorf("reply = %q", reply.Text)
	}

	second := s.Handle(ctx, "u1", "/newchat")
	secondID := strings.Split(second.Text, ": ")[1]
	if reply := s.Handle(ctx, "u1", "/usechat "+chatID); !strings.Contains(reply.Text, chatID) {
		t.Errorf("reply = %q", reply.Text)
	}

	deleted := s.Handle(ctx, "u1", "/delchat "+secondID)
	if !strings.Contains(deleted.Text, "deleted") {
		t.Errorf("reply = %q", deleted.Text)
	}
	listing = s.Handle(ctx, "u1", "/chats")
	if strings.Contains(listing.Text, secondID) {
		t.Errorf("deleted chat still listed:\n%s", listing.Text)
	}
}

func TestProvidersAndStatus(t *testing.T) {
	arch := newFakeArchiver()
	s, _ := newService(t, &fakeResponder{reply: "ok"}, arch)
	ctx := context.Background()

	providers := s.Handle(ctx, "u1", "/providers")
	if !strings.Contains(providers.Text, "openai") || !strings.Contains(providers.Text, "you") {
		t.Errorf("providers reply:\n%s", providers.Text)
	}

	s.Handle(ctx, "u1", "hello")
	status := s.Handle(ctx, "u1", "/status")
	if !strings.Contains(status.Text, "api calls: 1") {
		t.Errorf("status reply:\n%s", status.Text)
	}
	if !strings.Contains(status.Text, "messages: 2") {
		t.Errorf("status reply:\n%s", status.Text)
	}
}

func TestRegisterCustomCommand(t *testing.T) {
	s, _ := newService(t, &fakeResponder{}, nil)
	s.Register("/ping", func(_ context.Context, _, _ string) string { return "pong" })
	if reply := s.Handle(context.Background(), "u1", "/ping"); reply.Text != "pong" {
		t.Errorf("reply = %q", reply.Text)
	}
}
