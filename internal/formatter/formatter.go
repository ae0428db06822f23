package formatter

import (
	"fmt"

	"github.com/yildizm/ingredient-copilot/internal/common"
)

// Formats accepted by New
const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
	FormatCSV      = "csv"
	FormatPretty   = "pretty"
)

// Formatter defines the interface for output formatting
type Formatter interface {
	Format(result *common.AnalysisResult) ([]byte, error)
	FormatSamples(samples []common.SampleProduct) ([]byte, error)
}

// New returns the formatter for format. Color only affects the text and
// pretty formats.
func New(format string, color bool) (Formatter, error) {
	switch format {
	case FormatJSON:
		return NewJSON(), nil
	case FormatMarkdown:
		return NewMarkdown(), nil
	case FormatCSV:
		return NewCSV(), nil
	case FormatPretty:
		return NewPretty(color, defaultWidth)
	case FormatText, "":
		return NewTerminal(color), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}
