package ui

import (
	"fmt"
	"strings"

	"github.com/AITechnologyDev/G4FChat/internal/chat"
	"github.com/AITechnologyDev/G4FChat/internal/i18n"
)

// RenderReply formats a reply for the console: styled answer, dimmed
// reasoning sections, a note about saved code files, red failures.
func RenderReply(r chat.Reply, lang string) string {
	if r.Failure {
		return ErrorLine(r.Text)
	}

	var parts []string
	if len(r.Thoughts) > 0 {
		parts = append(parts, dimStyle.Render(i18n.T("thinking_title", lang)+"\n"+strings.Join(r.Thoughts, "\n---\n")))
	}
	parts = append(parts, assistantStyle.Render(r.Text))
	if len(r.SavedFiles) > 0 {
		note := fmt.Sprintf(i18n.T("code_saved", lang), len(r.SavedFiles))
		parts = append(parts, Success(note+": "+strings.Join(r.SavedFiles, ", ")))
	}
	return strings.Join(parts, "\n\n")
}

// PlainReply formats a reply without terminal styling, for channels
// that do their own presentation (Telegram).
func PlainReply(r chat.Reply, lang string) string {
	text := r.Text
	if len(r.SavedFiles) > 0 {
		note := fmt.Sprintf(i18n.T("code_saved", lang), len(r.SavedFiles))
		text += "\n\n" + note
	}
	return text
}
