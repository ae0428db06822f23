package service

import (
	"net/url"
	"time"
)

// Config holds analysis service client configuration
type Config struct {
	// BaseURL is the analysis service root
	BaseURL string `json:"base_url"`

	// Timeout bounds a single analysis request
	Timeout time.Duration `json:"timeout"`

	// SampleTimeout bounds the sample list request
	SampleTimeout time.Duration `json:"sample_timeout"`

	// UserAgent is sent with every request
	UserAgent string `json:"user_agent"`
}

// DefaultConfig returns a default client configuration
func DefaultConfig() *Config {
	return &Config{
		BaseURL:       "http://localhost:8000",
		Timeout:       30 * time.Second,
		SampleTimeout: 10 * time.Second,
		UserAgent:     "ingredient-copilot/1.0",
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return NewConfigurationError("base_url", "base URL is required")
	}

	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return NewConfigurationError("base_url", "invalid base URL: "+err.Error())
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return NewConfigurationError("base_url", "base URL must use http or https")
	}
	if u.Host == "" {
		return NewConfigurationError("base_url", "base URL must include a host")
	}

	if c.Timeout <= 0 {
		return NewConfigurationError("timeout", "timeout must be positive")
	}

	if c.SampleTimeout <= 0 {
		return NewConfigurationError("sample_timeout", "sample timeout must be positive")
	}

	return nil
}
