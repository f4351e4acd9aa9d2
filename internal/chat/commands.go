package chat

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/AITechnologyDev/G4FChat/internal/i18n"
)

func (s *Service) cmdHelp(_ context.Context, userID, _ string) string {
	lang := s.lang(userID)
	lines := []string{
		i18n.T("commands", lang) + ":",
		"  /newchat          - " + i18n.T("new_chat", lang),
		"  /usechat <id>     - " + i18n.T("switch_chat", lang),
		"  /delchat <id>     - " + i18n.T("delete_chat", lang),
		"  /chats            - " + i18n.T("list_chats", lang),
		"  /setmodel <name>  - " + i18n.T("set_model", lang),
		"  /mymodel          - " + i18n.T("current_model", lang),
		"  /models           - " + i18n.T("list_models", lang),
		"  /providers        - " + i18n.T("list_providers", lang),
		"  /status           - " + i18n.T("system_status", lang),
		"  /lang <en|ru>     - " + i18n.T("set_lang", lang),
		"  /exit             - " + i18n.T("exit", lang),
		"",
		i18n.T("free_text", lang),
	}
	return strings.Join(lines, "\n")
}

func (s *Service) cmdNewChat(_ context.Context, userID, _ string) string {
	lang := s.lang(userID)
	chatID, err := s.sessions.NewChat(userID)
	if err != nil {
		log.Printf("[chat] new chat: %v", err)
		return i18n.T("loop_error", lang)
	}
	return fmt.Sprintf("%s: %s", i18n.T("chat_created", lang), chatID)
}

func (s *Service) cmdUseChat(_ context.Context, userID, args string) string {
	lang := s.lang(userID)
	if args == "" {
		return i18n.T("enter_chat_id", lang)
	}
	if err := s.sessions.SetActive(userID, args); err != nil {
		return i18n.T("chat_not_found", lang)
	}
	return fmt.Sprintf("%s %s", i18n.T("chat_switched", lang), args)
}

func (s *Service) cmdDelChat(_ context.Context, userID, args string) string {
	lang := s.lang(userID)
	if args == "" {
		return i18n.T("enter_chat_id", lang)
	}
	if _, ok := s.sessions.Chat(userID, args); !ok {
		return i18n.T("chat_not_found", lang)
	}
	active, err := s.sessions.DeleteChat(userID, args)
	if err != nil {
		log.Printf("[chat] delete chat: %v", err)
		return i18n.T("loop_error", lang)
	}
	return fmt.Sprintf("%s. %s %s", i18n.T("chat_deleted", lang), i18n.T("chat_switched", lang), active)
}

func (s *Service) cmdChats(_ context.Context, userID, _ string) string {
	lang := s.lang(userID)
	ids, active := s.sessions.Chats(userID)
	if len(ids) == 0 {
		return i18n.T("no_chats", lang)
	}
	var b strings.Builder
	b.WriteString(i18n.T("your_chats", lang) + ":")
	for _, id := range ids {
		marker := "  "
		if id == active {
			marker = "* "
		}
		chat, _ := s.sessions.Chat(userID, id)
		// history always carries the seeded system message
		turns := len(chat.History) - 1
		if turns < 0 {
			turns = 0
		}
		fmt.Fprintf(&b, "\n%s%s  (%d, %s)", marker, id, turns, chat.Created.Format("2006-01-02 15:04"))
	}
	return b.String()
}

func (s *Service) cmdSetModel(_ context.Context, userID, args string) string {
	lang := s.lang(userID)
	if args == "" {
		return i18n.T("specify_model", lang)
	}
	if !s.modelKnown(args) {
		return i18n.T("model_invalid", lang)
	}
	if err := s.sessions.SetModel(userID, args); err != nil {
		log.Printf("[chat] set model: %v", err)
		return i18n.T("loop_error", lang)
	}
	return fmt.Sprintf("%s: %s", i18n.T("model_set", lang), args)
}

func (s *Service) cmdMyModel(_ context.Context, userID, _ string) string {
	lang := s.lang(userID)
	model := s.sessions.Model(userID)
	if model == "" {
		model = s.opts.DefaultModel
	}
	return fmt.Sprintf("%s: %s", i18n.T("current_model", lang), model)
}

func (s *Service) cmdModels(_ context.Context, userID, _ string) string {
	lang := s.lang(userID)
	current := s.sessions.Model(userID)
	if current == "" {
		current = s.opts.DefaultModel
	}
	var b strings.Builder
	b.WriteString(i18n.T("models_title", lang) + ":")
	for i, m := range s.opts.Models {
		marker := "  "
		if m == current {
			marker = "* "
		}
		fmt.Fprintf(&b, "\n%s%2d. %s", marker, i+1, m)
	}
	return b.String()
}

func (s *Service) cmdProviders(_ context.Context, userID, _ string) string {
	lang := s.lang(userID)
	names := s.providers.Names()
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s: %d):", i18n.T("providers_title", lang), i18n.T("total", lang), len(names))
	for i, name := range names {
		fmt.Fprintf(&b, "\n  %2d. %s", i+1, name)
	}
	return b.String()
}

func (s *Service) cmdStatus(ctx context.Context, userID, _ string) string {
	lang := s.lang(userID)
	var b strings.Builder
	b.WriteString(i18n.T("status_title", lang))
	fmt.Fprintf(&b, "\n  users: %d", s.sessions.Users())
	fmt.Fprintf(&b, "\n  providers: %d", len(s.providers.Names()))
	if s.archiver != nil {
		stats, err := s.archiver.Stats(ctx)
		if err != nil {
			log.Printf("[chat] stats: %v", err)
		} else {
			fmt.Fprintf(&b, "\n  messages: %d", stats.TotalMessages)
			fmt.Fprintf(&b, "\n  chats: %d", stats.ActiveChats)
			fmt.Fprintf(&b, "\n  api calls: %d", stats.APICalls)
			fmt.Fprintf(&b, "\n  code blocks saved: %d", stats.SavedCodeBlocks)
			if !stats.LastActivity.IsZero() {
				fmt.Fprintf(&b, "\n  last activity: %s", stats.LastActivity.Format("2006-01-02 15:04:05"))
			}
		}
	}
	return b.String()
}

func (s *Service) cmdLang(_ context.Context, userID, args string) string {
	lang := s.lang(userID)
	args = strings.ToLower(args)
	if !i18n.Valid(args) {
		return i18n.T("invalid_lang", lang)
	}
	if err := s.sessions.SetLang(userID, args); err != nil {
		log.Printf("[chat] set lang: %v", err)
		return i18n.T("loop_error", lang)
	}
	return fmt.Sprintf("%s: %s", i18n.T("lang_set", args), args)
}

func (s *Service) modelKnown(model string) bool {
	for _, m := range s.opts.Models {
		if m == model {
			return true
		}
	}
	return false
}
