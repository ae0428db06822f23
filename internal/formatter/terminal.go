package formatter

import (
	"fmt"
	"strings"

	"github.com/yildizm/go-termfmt"

	"github.com/yildizm/ingredient-copilot/internal/common"
	"github.com/yildizm/ingredient-copilot/internal/emoji"
)

// terminalFormatter formats output as plain text for terminal display using go-termfmt
type terminalFormatter struct {
	opts  *termfmt.TerminalOptions
	width int
}

// NewTerminal creates a new terminal formatter with optional color support
func NewTerminal(color bool) Formatter {
	opts := termfmt.DefaultOptions()
	opts.Color = color
	opts.Emoji = !emoji.IsEmojiDisabled()
	return &terminalFormatter{opts: opts, width: defaultWidth}
}

func (f *terminalFormatter) Format(result *common.AnalysisResult) ([]byte, error) {
	var b strings.Builder

	f.writeHeader(&b, "Ingredient Analysis")
	f.writeSections(&b, result.Sections())

	return []byte(b.String()), nil
}

func (f *terminalFormatter) FormatSamples(samples []common.SampleProduct) ([]byte, error) {
	var b strings.Builder

	f.writeHeader(&b, "Sample Products")
	if len(samples) == 0 {
		b.WriteString("No samples available\n")
		return []byte(b.String()), nil
	}

	items := make([]termfmt.TreeItem, 0, len(samples))
	for i, s := range samples {
		items = append(items, termfmt.TreeItem{
			Label:    fmt.Sprintf("%s %d. %s", emoji.GetEmoji("sample"), i+1, s.Name),
			Value:    "id " + s.ID,
			Children: f.textItems(s.Ingredients),
			Last:     i == len(samples)-1,
		})
	}

	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n")
	return []byte(b.String()), nil
}

// writeSections writes the five result fields as a tree in display order
func (f *terminalFormatter) writeSections(b *strings.Builder, sections []common.Section) {
	items := make([]termfmt.TreeItem, 0, len(sections))
	for i, s := range sections {
		items = append(items, termfmt.TreeItem{
			Label:    emoji.ForSection(s.Key) + " " + s.Label,
			Children: f.textItems(s.Text),
			Last:     i == len(sections)-1,
		})
	}

	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n")
}

func (f *terminalFormatter) textItems(text string) []termfmt.TreeItem {
	lines := wrap(text, f.width-6)
	items := make([]termfmt.TreeItem, 0, len(lines))
	for i, line := range lines {
		items = append(items, termfmt.TreeItem{Label: line, Last: i == len(lines)-1})
	}
	return items
}

// writeHeader writes a boxed title
func (f *terminalFormatter) writeHeader(b *strings.Builder, title string) {
	width := len([]rune(title))

	b.WriteString("╔" + strings.Repeat("═", width+2) + "╗\n")
	b.WriteString("║ " + title + " ║\n")
	b.WriteString("╚" + strings.Repeat("═", width+2) + "╝\n\n")
}
