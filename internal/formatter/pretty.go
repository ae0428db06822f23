package formatter

import (
	"fmt"

	"github.com/charmbracelet/glamour"

	"github.com/yildizm/ingredient-copilot/internal/common"
)

// prettyFormatter renders the markdown output through glamour
type prettyFormatter struct {
	renderer *glamour.TermRenderer
}

// NewPretty creates a glamour-backed formatter. Without color the notty
// style is used so output stays plain.
func NewPretty(color bool, width int) (Formatter, error) {
	renderer, err := newRenderer(color, width)
	if err != nil {
		return nil, err
	}
	return &prettyFormatter{renderer: renderer}, nil
}

// newRenderer builds a glamour renderer wrapping at width
func newRenderer(color bool, width int) (*glamour.TermRenderer, error) {
	style := glamour.WithAutoStyle()
	if !color {
		style = glamour.WithStandardStyle("notty")
	}

	renderer, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(width))
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	return renderer, nil
}

func (f *prettyFormatter) Format(result *common.AnalysisResult) ([]byte, error) {
	out, err := f.renderer.Render(ResultMarkdown(result))
	if err != nil {
		return nil, fmt.Errorf("failed to render analysis: %w", err)
	}
	return []byte(out), nil
}

func (f *prettyFormatter) FormatSamples(samples []common.SampleProduct) ([]byte, error) {
	out, err := f.renderer.Render(SamplesMarkdown(samples))
	if err != nil {
		return nil, fmt.Errorf("failed to render samples: %w", err)
	}
	return []byte(out), nil
}
