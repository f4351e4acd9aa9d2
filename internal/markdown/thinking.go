package markdown

import (
	"regexp"
	"strings"
)

// Some models interleave reasoning traces with the answer, wrapped in
// tags that vary by provider. We strip them from the text shown to the
// user but keep the traces for anyone who wants to inspect them.
var thinkingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?s)<thinking>(.*?)</thinking>`),
	regexp.MustCompile(`(?s)<analysis>(.*?)</analysis>`),
	regexp.MustCompile(`(?s)\[reasoning\](.*?)\[/reasoning\]`),
}

// StripThinking removes reasoning sections from a response. It returns
// the cleaned text and the removed sections in order of appearance.
func StripThinking(text string) (string, []string) {
	var thoughts []string
	clean := text
	for _, re := range thinkingPatterns {
		for _, match := range re.FindAllStringSubmatch(clean, -1) {
			if t := strings.TrimSpace(match[1]); t != "" {
				thoughts = append(thoughts, t)
			}
		}
		clean = re.ReplaceAllString(clean, "")
	}
	return strings.TrimSpace(clean), thoughts
}
