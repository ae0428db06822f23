package formatter

import (
	"fmt"
	"strings"

	"github.com/yildizm/ingredient-copilot/internal/common"
)

// markdownFormatter formats output as Markdown
type markdownFormatter struct{}

// NewMarkdown creates a new Markdown formatter
func NewMarkdown() Formatter {
	return &markdownFormatter{}
}

func (f *markdownFormatter) Format(result *common.AnalysisResult) ([]byte, error) {
	return []byte(ResultMarkdown(result)), nil
}

func (f *markdownFormatter) FormatSamples(samples []common.SampleProduct) ([]byte, error) {
	return []byte(SamplesMarkdown(samples)), nil
}

// ResultMarkdown renders the five result sections as a markdown document
func ResultMarkdown(result *common.AnalysisResult) string {
	var b strings.Builder

	b.WriteString("# Ingredient Analysis\n\n")
	for _, s := range result.Sections() {
		fmt.Fprintf(&b, "## %s\n\n", s.Label)
		if s.Text != "" {
			b.WriteString(s.Text + "\n\n")
		}
	}

	return b.String()
}

// SamplesMarkdown renders the sample list as a markdown table
func SamplesMarkdown(samples []common.SampleProduct) string {
	var b strings.Builder

	b.WriteString("# Sample Products\n\n")
	b.WriteString("| # | Name | Ingredients |\n")
	b.WriteString("|---|------|-------------|\n")
	for i, s := range samples {
		fmt.Fprintf(&b, "| %d | %s | %s |\n", i+1, escapeMarkdownCell(s.Name), escapeMarkdownCell(s.Ingredients))
	}

	return b.String()
}
