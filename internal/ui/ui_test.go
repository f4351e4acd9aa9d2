package ui

import (
	"strings"
	"testing"

	"github.com/AITechnologyDev/G4FChat/internal/chat"
)

func TestRenderReplyAnswer(t *testing.T) {
	out := RenderReply(chat.Reply{
		Text:       "The answer.",
		Thoughts:   []string{"step one"},
		SavedFiles: []string{"/tmp/code_a_1_0.go"},
	}, "en")
	for _, want := range []string{"The answer.", "step one", "Saved 1 code block(s)", "code_a_1_0.go"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderReplyFailure(t *testing.T) {
	out := RenderReply(chat.Reply{Text: "⚠️ nothing worked", Failure: true}, "en")
	if !strings.Contains(out, "nothing worked") {
		t.Errorf("output = %q", out)
	}
}

func TestPlainReply(t *testing.T) {
	out := PlainReply(chat.Reply{Text: "hi", SavedFiles: []string{"f.go"}}, "en")
	if !strings.Contains(out, "hi") || !strings.Contains(out, "Saved 1 code block(s)") {
		t.Errorf("output = %q", out)
	}
	if strings.Contains(out, "f.go") {
		t.Errorf("plain reply should not list file paths: %q", out)
	}
}

func TestNumberedListMarksActive(t *testing.T) {
	out := NumberedList([]string{"gpt-4o", "deepseek-v3"}, 1)
	if !strings.Contains(out, ">  2. deepseek-v3") {
		t.Errorf("active entry not marked:\n%s", out)
	}
}
