package markdown

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExtractCodeBlocks(t *testing.T) {
	text := "intro\n\n```go\nfunc main() {}\n```\n\nmiddle\n\n```\nplain text\n```\n"
	blocks := ExtractCodeBlocks(text)
	if len(blocks) != 2 {
		t.Fatalf("blocks = %d, want 2", len(blocks))
	}
	if blocks[0].Lang != "go" {
		t.Errorf("lang = %q, want go", blocks[0].Lang)
	}
	if !strings.Contains(blocks[0].Code, "func main()") {
		t.Errorf("code = %q", blocks[0].Code)
	}
	if blocks[1].Lang != "" {
		t.Errorf("second lang = %q, want empty", blocks[1].Lang)
	}
}

func TestExtractCodeBlocksNone(t *testing.T) {
	if blocks := ExtractCodeBlocks("just prose, no fences"); blocks != nil {
		t.Fatalf("blocks = %v, want nil", blocks)
	}
}

func TestSaveCodeBlocks(t *testing.T) {
	dir := t.TempDir()
	text := "```python\nprint('hi')\n```\n\n```\nnotes\n```\n"
	paths, err := SaveCodeBlocks(text, dir, "abc12345")
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 2 {
		t.Fatalf("paths = %d, want 2", len(paths))
	}
	if !strings.HasSuffix(paths[0], ".python") {
		t.Errorf("first path = %q, want .python suffix", paths[0])
	}
	if !strings.HasSuffix(paths[1], ".txt") {
		t.Errorf("second path = %q, want .txt suffix", paths[1])
	}
	base := filepath.Base(paths[0])
	if !strings.HasPrefix(base, "code_abc12345_") {
		t.Errorf("file name = %q", base)
	}
	data, err := os.ReadFile(paths[0])
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "print('hi')") {
		t.Errorf("saved content = %q", data)
	}
}

func TestSaveCodeBlocksEmpty(t *testing.T) {
	paths, err := SaveCodeBlocks("no code here", t.TempDir(), "c1")
	if err != nil {
		t.Fatal(err)
	}
	if paths != nil {
		t.Fatalf("paths = %v, want nil", paths)
	}
}

func TestStripThinking(t *testing.T) {
	text := "<thinking>working it out</thinking>The answer is 4."
	clean, thoughts := StripThinking(text)
	if clean != "The answer is 4." {
		t.Errorf("clean = %q", clean)
	}
	if len(thoughts) != 1 || thoughts[0] != "working it out" {
		t.Errorf("thoughts = %v", thoughts)
	}
}

func TestStripThinkingMultipleStyles(t *testing.T) {
	text := "<analysis>first</analysis>answer[reasoning]second[/reasoning] here"
	clean, thoughts := StripThinking(text)
	if clean != "answer here" {
		t.Errorf("clean = %q", clean)
	}
	if len(thoughts) != 2 {
		t.Fatalf("thoughts = %v, want 2", thoughts)
	}
}

func TestStripThinkingNoTags(t *testing.T) {
	clean, thoughts := StripThinking("plain answer")
	if clean != "plain answer" {
		t.Errorf("clean = %q", clean)
	}
	if thoughts != nil {
		t.Errorf("thoughts = %v, want nil", thoughts)
	}
}
