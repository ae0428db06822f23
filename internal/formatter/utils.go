package formatter

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"
)

// defaultWidth is the wrap width for terminal output
const defaultWidth = 80

// wrap word-wraps text to width and splits it into lines
func wrap(text string, width int) []string {
	if text == "" {
		return []string{""}
	}
	return strings.Split(wordwrap.String(text, width), "\n")
}

// escapeMarkdownCell makes text safe inside a markdown table cell
func escapeMarkdownCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
