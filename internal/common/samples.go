package common

// User-facing analysis failure messages
const (
	// MsgBackendFailed is shown when the service answered with a non-success status
	MsgBackendFailed = "Failed to analyze ingredients. Check if backend is running."

	// MsgUnreachable is shown when no usable response was received
	MsgUnreachable = "An error occurred. Make sure the backend API is accessible."
)

// fallbackSamples is used whenever the sample endpoint cannot be read
var fallbackSamples = [...]SampleProduct{
	{ID: "1", Name: "Energy Drink", Ingredients: "Carbonated Water, High Fructose Corn Syrup, Caffeine, Red 40"},
	{ID: "2", Name: "Almond Milk", Ingredients: "Filtered Water, Almonds, Sea Salt, Gellan Gum"},
	{ID: "3", Name: "Potato Chips", Ingredients: "Potatoes, Vegetable Oil, Salt"},
}

// FallbackSamples returns a fresh copy of the built-in three-item sample list
func FallbackSamples() []SampleProduct {
	samples := make([]SampleProduct, len(fallbackSamples))
	copy(samples, fallbackSamples[:])
	return samples
}
