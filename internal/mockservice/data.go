package mockservice

import "github.com/yildizm/ingredient-copilot/internal/common"

// DefaultSamples returns the products served by /sample-data
func DefaultSamples() []common.SampleProduct {
	return []common.SampleProduct{
		{
			ID:          "1",
			Name:        "Energy Drink",
			Ingredients: "Carbonated Water, High Fructose Corn Syrup, Citric Acid, Natural Flavors, Caffeine, Sodium Benzoate, Red 40",
		},
		{
			ID:          "2",
			Name:        "Organic Almond Milk",
			Ingredients: "Almond Base (Filtered Water, Almonds), Sea Salt, Locust Bean Gum, Sunflower Lecithin, Gellan Gum, Vitamin A Palmitate, Ergocalciferol (Vitamin D2)",
		},
		{
			ID:          "3",
			Name:        "Potato Chips",
			Ingredients: "Potatoes, Vegetable Oil (Sunflower, Corn, and/or Canola Oil), Salt",
		},
	}
}

// DefaultResult returns the canned analysis served by /analyze
func DefaultResult() *common.AnalysisResult {
	return &common.AnalysisResult{
		InferredIntent: "Is this a healthy snack choice?",
		WhatStandsOut:  "Mock analysis: no model is configured for this service.",
		WhyItMatters:   "This local server only returns canned text and cannot reason about ingredients.",
		Uncertainty:    "Everything is uncertain in mock mode.",
		Recommendation: "Point service.base_url at a real analysis service for actual answers.",
	}
}
