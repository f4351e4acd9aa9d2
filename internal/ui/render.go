package ui

import (
	"fmt"
	"strings"
)

// Panel renders a bordered box with a bold title line followed by body.
func Panel(title, body string) string {
	content := titleStyle.Render(title)
	if body != "" {
		content += "\n" + body
	}
	return panelBorder.Render(content)
}

// Prompt returns the styled input prompt for the console loop.
func Prompt() string {
	return promptStyle.Render("you> ")
}

// UserLine echoes the user's own message back in the transcript style.
func UserLine(text string) string {
	return userStyle.Render("you: ") + text
}

// AssistantReply styles a model response, with the providing backend
// noted underneath in dim text.
func AssistantReply(text, provider string) string {
	out := assistantStyle.Render(text)
	if provider != "" {
		out += "\n" + dimStyle.Render("["+provider+"]")
	}
	return out
}

// ErrorLine styles a failure message.
func ErrorLine(text string) string {
	return errorStyle.Render(text)
}

// Success styles a confirmation message.
func Success(text string) string {
	return successStyle.Render(text)
}

// Warn styles a non-fatal notice.
func Warn(text string) string {
	return warnStyle.Render(text)
}

// NumberedList renders items as an aligned numbered list, marking the
// active entry with an arrow.
func NumberedList(items []string, active int) string {
	var b strings.Builder
	for i, item := range items {
		marker := "  "
		line := fmt.Sprintf("%s%2d. %s", marker, i+1, item)
		if i == active {
			line = successStyle.Render(fmt.Sprintf("> %2d. %s", i+1, item))
		}
		b.WriteString(line)
		if i < len(items)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Banner renders the startup header.
func Banner(version string) string {
	return Panel("G4FChat "+version, dimStyle.Render("type /help for commands, /exit to quit"))
}
