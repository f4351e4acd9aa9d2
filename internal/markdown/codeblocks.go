// Package markdown post-processes model output: extracting fenced code
// blocks to files and separating out "thinking" sections.
package markdown

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"
)

// CodeBlock is one fenced code block found in a response.
type CodeBlock struct {
	Lang string
	Code string
}

// ExtractCodeBlocks walks the markdown AST and returns all fenced code
// blocks in document order.
func ExtractCodeBlocks(text string) []CodeBlock {
	source := []byte(text)
	root := goldmark.New().Parser().Parse(gmtext.NewReader(source))

	var blocks []CodeBlock
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fcb, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}
		var buf bytes.Buffer
		lines := fcb.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			buf.Write(seg.Value(source))
		}
		blocks = append(blocks, CodeBlock{
			Lang: string(fcb.Language(source)),
			Code: buf.String(),
		})
		return ast.WalkContinue, nil
	})
	return blocks
}

// SaveCodeBlocks writes every fenced code block of a response into dir
// as code_<chatID>_<timestamp>_<n>.<ext> and returns the file paths.
func SaveCodeBlocks(text, dir, chatID string) ([]string, error) {
	blocks := ExtractCodeBlocks(text)
	if len(blocks) == 0 {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}

	timestamp := time.Now().Format("20060102_150405")
	var saved []string
	for idx, block := range blocks {
		ext := block.Lang
		if ext == "" {
			ext = "txt"
		}
		name := fmt.Sprintf("code_%s_%s_%d.%s", chatID, timestamp, idx, ext)
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(block.Code), 0600); err != nil {
			return saved, err
		}
		saved = append(saved, path)
	}
	return saved, nil
}
