package common

import "strings"

// SampleProduct is a predefined ingredient list offered as a one-click example
type SampleProduct struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Ingredients string `json:"ingredients" yaml:"ingredients"`
}

// AnalysisRequest is the body sent to the analysis endpoint
type AnalysisRequest struct {
	IngredientsText string `json:"ingredients_text"`
	ProductName     string `json:"product_name,omitempty"`
}

// NewAnalysisRequest creates a request for the given ingredient text
func NewAnalysisRequest(text string) *AnalysisRequest {
	return &AnalysisRequest{IngredientsText: text}
}

// AnalysisResult is the five-field explanation returned by the analysis service
type AnalysisResult struct {
	WhatStandsOut  string `json:"what_stands_out"`
	WhyItMatters   string `json:"why_it_matters"`
	Uncertainty    string `json:"uncertainty"`
	Recommendation string `json:"recommendation"`
	InferredIntent string `json:"inferred_intent"`
}

// SectionKey identifies one field of an AnalysisResult
type SectionKey string

const (
	SectionInferredIntent SectionKey = "inferred_intent"
	SectionWhatStandsOut  SectionKey = "what_stands_out"
	SectionWhyItMatters   SectionKey = "why_it_matters"
	SectionUncertainty    SectionKey = "uncertainty"
	SectionRecommendation SectionKey = "recommendation"
)

// Section is a labelled result field ready for display
type Section struct {
	Key   SectionKey `json:"key"`
	Label string     `json:"label"`
	Text  string     `json:"text"`
}

// sectionLabels holds display labels in display order
var sectionLabels = []struct {
	key   SectionKey
	label string
}{
	{SectionInferredIntent, "Inferred Intent"},
	{SectionWhatStandsOut, "What Stands Out"},
	{SectionWhyItMatters, "Why It Might Matter"},
	{SectionUncertainty, "What's Uncertain"},
	{SectionRecommendation, "How To Think About It"},
}

// Sections returns the result fields in fixed display order:
// inferred intent, what stands out, why it matters, uncertainty, recommendation.
func (r *AnalysisResult) Sections() []Section {
	sections := make([]Section, 0, len(sectionLabels))
	for _, l := range sectionLabels {
		sections = append(sections, Section{Key: l.key, Label: l.label, Text: r.Field(l.key)})
	}
	return sections
}

// Field returns the text stored under key
func (r *AnalysisResult) Field(key SectionKey) string {
	if r == nil {
		return ""
	}
	switch key {
	case SectionInferredIntent:
		return r.InferredIntent
	case SectionWhatStandsOut:
		return r.WhatStandsOut
	case SectionWhyItMatters:
		return r.WhyItMatters
	case SectionUncertainty:
		return r.Uncertainty
	case SectionRecommendation:
		return r.Recommendation
	default:
		return ""
	}
}

// IsEmpty reports whether every field is blank
func (r *AnalysisResult) IsEmpty() bool {
	for _, l := range sectionLabels {
		if strings.TrimSpace(r.Field(l.key)) != "" {
			return false
		}
	}
	return true
}
