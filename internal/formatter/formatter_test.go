package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yildizm/ingredient-copilot/internal/common"
	"github.com/yildizm/ingredient-copilot/internal/emoji"
)

func testResult() *common.AnalysisResult {
	return &common.AnalysisResult{
		InferredIntent: "Deciding whether this drink fits a daily routine",
		WhatStandsOut:  "High fructose corn syrup and Red 40 | plus caffeine",
		WhyItMatters:   "Added sugar and stimulants add up over a day.",
		Uncertainty:    "Amounts per serving are not listed.",
		Recommendation: "Treat it as an occasional drink.",
	}
}

// assertOrdered checks that each needle appears after the previous one
func assertOrdered(t *testing.T, out string, needles ...string) {
	t.Helper()
	last := -1
	for _, n := range needles {
		idx := strings.Index(out, n)
		require.NotEqual(t, -1, idx, "missing %q", n)
		assert.Greater(t, idx, last, "%q out of order", n)
		last = idx
	}
}

func TestNew(t *testing.T) {
	for _, format := range []string{"", FormatText, FormatJSON, FormatMarkdown, FormatCSV, FormatPretty} {
		f, err := New(format, false)
		require.NoError(t, err, format)
		assert.NotNil(t, f)
	}

	_, err := New("yaml", false)
	assert.Error(t, err)
}

func TestTerminalFormatter(t *testing.T) {
	emoji.SetEmojiDisabled(true)
	defer emoji.SetEmojiDisabled(false)

	out, err := NewTerminal(false).Format(testResult())
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "Ingredient Analysis")
	assertOrdered(t, text,
		"Inferred Intent", "Deciding whether",
		"What Stands Out", "High fructose",
		"Why It Might Matter", "Added sugar",
		"What's Uncertain", "Amounts per serving",
		"How To Think About It", "occasional drink",
	)
	assert.Contains(t, text, "[>]")
	assert.NotContains(t, text, "🎯")
}

func TestTerminalFormatter_Samples(t *testing.T) {
	out, err := NewTerminal(false).FormatSamples(common.FallbackSamples())
	require.NoError(t, err)
	assertOrdered(t, string(out), "1. Energy Drink", "2. Almond Milk", "3. Potato Chips")

	out, err = NewTerminal(false).FormatSamples(nil)
	require.NoError(t, err)
	assert.Contains(t, string(out), "No samples available")
}

func TestMarkdownFormatter(t *testing.T) {
	out, err := NewMarkdown().Format(testResult())
	require.NoError(t, err)

	md := string(out)
	assert.True(t, strings.HasPrefix(md, "# Ingredient Analysis\n"))
	assertOrdered(t, md,
		"## Inferred Intent", "## What Stands Out", "## Why It Might Matter",
		"## What's Uncertain", "## How To Think About It",
	)
	assert.Contains(t, md, "Red 40 | plus caffeine", "result text is verbatim")
}

func TestMarkdownFormatter_Samples(t *testing.T) {
	samples := []common.SampleProduct{{ID: "1", Name: "Mix | Match", Ingredients: "A,\nB"}}

	out, err := NewMarkdown().FormatSamples(samples)
	require.NoError(t, err)
	assert.Contains(t, string(out), `| 1 | Mix \| Match | A, B |`)
}

func TestJSONFormatter(t *testing.T) {
	out, err := NewJSON().Format(testResult())
	require.NoError(t, err)

	var decoded common.AnalysisResult
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, *testResult(), decoded)
	assert.Contains(t, string(out), `"inferred_intent"`)

	out, err = NewJSON().FormatSamples(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(out))
}

func TestCSVFormatter(t *testing.T) {
	out, err := NewCSV().Format(testResult())
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 6)
	assert.Equal(t, []string{"field", "label", "value"}, records[0])
	assert.Equal(t, []string{"inferred_intent", "Inferred Intent", testResult().InferredIntent}, records[1])
	assert.Equal(t, []string{"recommendation", "How To Think About It", testResult().Recommendation}, records[5])
}

func TestCSVFormatter_Samples(t *testing.T) {
	out, err := NewCSV().FormatSamples(common.FallbackSamples())
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"2", "Almond Milk", "Filtered Water, Almonds, Sea Salt, Gellan Gum"}, records[2])
}

func TestPrettyFormatter(t *testing.T) {
	f, err := NewPretty(false, 60)
	require.NoError(t, err)

	out, err := f.Format(testResult())
	require.NoError(t, err)
	assertOrdered(t, string(out), "Inferred Intent", "What Stands Out", "How To Think About It")
	assert.Contains(t, string(out), "occasional drink")
}

func TestFormat_EmptyResult(t *testing.T) {
	for _, format := range []string{FormatText, FormatMarkdown, FormatCSV} {
		f, err := New(format, false)
		require.NoError(t, err)

		out, err := f.Format(&common.AnalysisResult{})
		require.NoError(t, err, format)
		assert.Contains(t, string(out), "How To Think About It", format)
	}
}

func TestWrap(t *testing.T) {
	lines := wrap("one two three four five six", 10)
	assert.Greater(t, len(lines), 1)
	for _, l := range lines {
		assert.LessOrEqual(t, len(l), 10)
	}
	assert.Equal(t, []string{""}, wrap("", 10))
}
