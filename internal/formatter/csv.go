package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/yildizm/ingredient-copilot/internal/common"
)

// csvFormatter formats output as CSV
type csvFormatter struct{}

// NewCSV creates a new CSV formatter
func NewCSV() Formatter {
	return &csvFormatter{}
}

func (f *csvFormatter) Format(result *common.AnalysisResult) ([]byte, error) {
	records := [][]string{{"field", "label", "value"}}
	for _, s := range result.Sections() {
		records = append(records, []string{string(s.Key), s.Label, s.Text})
	}
	return writeCSV(records)
}

func (f *csvFormatter) FormatSamples(samples []common.SampleProduct) ([]byte, error) {
	records := [][]string{{"id", "name", "ingredients"}}
	for _, s := range samples {
		records = append(records, []string{s.ID, s.Name, s.Ingredients})
	}
	return writeCSV(records)
}

func writeCSV(records [][]string) ([]byte, error) {
	var b bytes.Buffer
	writer := csv.NewWriter(&b)

	if err := writer.WriteAll(records); err != nil {
		return nil, fmt.Errorf("failed to write CSV: %w", err)
	}

	return b.Bytes(), nil
}
