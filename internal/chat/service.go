// Package chat turns inbound user text into replies: slash commands are
// dispatched through a command table, anything else becomes a
// conversation turn run through the generator.
package chat

import (
	"context"
	"log"
	"strings"

	"github.com/AITechnologyDev/G4FChat/internal/archive"
	"github.com/AITechnologyDev/G4FChat/internal/eventbus"
	"github.com/AITechnologyDev/G4FChat/internal/generator"
	"github.com/AITechnologyDev/G4FChat/internal/i18n"
	"github.com/AITechnologyDev/G4FChat/internal/llm"
	"github.com/AITechnologyDev/G4FChat/internal/markdown"
	"github.com/AITechnologyDev/G4FChat/internal/session"
)

// Responder produces a reply for a chat history. *generator.Generator
// satisfies it.
type Responder interface {
	Generate(ctx context.Context, userID, chatID string, history []llm.Message) string
}

// ProviderInfo exposes the provider names for /providers.
type ProviderInfo interface {
	Names() []string
}

// Archiver is the slice of the transcript archive this service writes
// to. May be backed by archive.Archive or left nil to disable.
type Archiver interface {
	SaveMessage(ctx context.Context, userID, chatID string, msg llm.Message, provider string) error
	Bump(ctx context.Context, name string, delta int64) error
	Stats(ctx context.Context) (archive.Stats, error)
}

// Reply is the outcome of handling one inbound message.
type Reply struct {
	Text       string
	Thoughts   []string // stripped reasoning sections, console shows them dimmed
	SavedFiles []string // code block files written during this turn
	Failure    bool     // Text is an exhaustion report, not an answer
}

// Handler handles one slash command. args is the text after the command
// word, already trimmed.
type Handler func(ctx context.Context, userID, args string) string

// Options configure a Service.
type Options struct {
	Models       []string // models offered by /models, validated by /setmodel
	DefaultModel string
	CodeDir      string // where extracted code blocks are written
}

// Service owns the command table and the conversation flow.
type Service struct {
	sessions  session.Store
	responder Responder
	providers ProviderInfo
	archiver  Archiver
	bus       *eventbus.Bus
	opts      Options
	commands  map[string]Handler
}

// New creates a Service with the built-in command set registered.
func New(sessions session.Store, responder Responder, providers ProviderInfo, archiver Archiver, bus *eventbus.Bus, opts Options) *Service {
	s := &Service{
		sessions:  sessions,
		responder: responder,
		providers: providers,
		archiver:  archiver,
		bus:       bus,
		opts:      opts,
	}
	s.commands = map[string]Handler{
		"/help":      s.cmdHelp,
		"/newchat":   s.cmdNewChat,
		"/usechat":   s.cmdUseChat,
		"/delchat":   s.cmdDelChat,
		"/chats":     s.cmdChats,
		"/setmodel":  s.cmdSetModel,
		"/mymodel":   s.cmdMyModel,
		"/models":    s.cmdModels,
		"/providers": s.cmdProviders,
		"/status":    s.cmdStatus,
		"/lang":      s.cmdLang,
	}
	return s
}

// Register adds or replaces a command handler. The name must carry the
// leading slash.
func (s *Service) Register(name string, h Handler) {
	s.commands[name] = h
}

// Commands returns the registered command names.
func (s *Service) Commands() []string {
	names := make([]string, 0, len(s.commands))
	for name := range s.commands {
		names = append(names, name)
	}
	return names
}

// Handle processes one inbound message for a user and always produces a
// reply. Internal faults are logged and reported in the user's language.
func (s *Service) Handle(ctx context.Context, userID, text string) Reply {
	text = strings.TrimSpace(text)
	lang := s.lang(userID)

	if strings.HasPrefix(text, "/") {
		word, args, _ := strings.Cut(text, " ")
		handler, ok := s.commands[word]
		if !ok {
			return Reply{Text: i18n.T("unknown_command", lang)}
		}
		return Reply{Text: handler(ctx, userID, strings.TrimSpace(args))}
	}

	return s.converse(ctx, userID, text)
}

// converse runs one conversation turn: persist the user message,
// generate, and when the pipeline produced a real answer, persist and
// archive it, strip reasoning sections and save code blocks.
func (s *Service) converse(ctx context.Context, userID, text string) Reply {
	lang := s.lang(userID)

	chatID, err := s.sessions.ActiveChat(userID)
	if err != nil {
		log.Printf("[chat] active chat for %s: %v", userID, err)
		return Reply{Text: i18n.T("loop_error", lang), Failure: true}
	}

	userMsg := llm.Message{Role: "user", Content: text}
	if err := s.sessions.AppendMessage(userID, chatID, userMsg); err != nil {
		log.Printf("[chat] append user message: %v", err)
		return Reply{Text: i18n.T("loop_error", lang), Failure: true}
	}
	s.archiveMessage(ctx, userID, chatID, userMsg, "")

	current, _ := s.sessions.Chat(userID, chatID)
	raw := s.responder.Generate(ctx, userID, chatID, current.History)
	s.bump(ctx, archive.CounterAPICalls, 1)

	if generator.IsFailureReport(raw) {
		return Reply{Text: raw, Failure: true}
	}

	clean, thoughts := markdown.StripThinking(raw)
	if clean == "" {
		clean = raw
	}

	assistantMsg := llm.Message{Role: "assistant", Content: clean}
	if err := s.sessions.AppendMessage(userID, chatID, assistantMsg); err != nil {
		log.Printf("[chat] append assistant message: %v", err)
	}
	after, _ := s.sessions.Chat(userID, chatID)
	s.archiveMessage(ctx, userID, chatID, assistantMsg, after.Provider)

	var saved []string
	if s.opts.CodeDir != "" {
		saved, err = markdown.SaveCodeBlocks(clean, s.opts.CodeDir, chatID)
		if err != nil {
			log.Printf("[chat] save code blocks: %v", err)
		}
		if len(saved) > 0 {
			s.bump(ctx, archive.CounterSavedCodeBlocks, int64(len(saved)))
		}
	}

	s.bus.Publish(eventbus.TopicOutboundMessage, chatID)
	return Reply{Text: clean, Thoughts: thoughts, SavedFiles: saved}
}

func (s *Service) lang(userID string) string {
	if lang := s.sessions.Lang(userID); lang != "" {
		return lang
	}
	return "en"
}

func (s *Service) archiveMessage(ctx context.Context, userID, chatID string, msg llm.Message, provider string) {
	if s.archiver == nil {
		return
	}
	if err := s.archiver.SaveMessage(ctx, userID, chatID, msg, provider); err != nil {
		log.Printf("[chat] archive message: %v", err)
	}
}

func (s *Service) bump(ctx context.Context, counter string, delta int64) {
	if s.archiver == nil {
		return
	}
	if err := s.archiver.Bump(ctx, counter, delta); err != nil {
		log.Printf("[chat] bump %s: %v", counter, err)
	}
}

