package formatter

import (
	"encoding/json"

	"github.com/yildizm/ingredient-copilot/internal/common"
)

// jsonFormatter formats output as JSON using the service wire shape
type jsonFormatter struct{}

// NewJSON creates a new JSON formatter
func NewJSON() Formatter {
	return &jsonFormatter{}
}

func (f *jsonFormatter) Format(result *common.AnalysisResult) ([]byte, error) {
	return json.MarshalIndent(result, "", "  ")
}

func (f *jsonFormatter) FormatSamples(samples []common.SampleProduct) ([]byte, error) {
	if samples == nil {
		samples = []common.SampleProduct{}
	}
	return json.MarshalIndent(samples, "", "  ")
}
