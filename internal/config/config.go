package config

import (
	"fmt"
	"slices"
	"time"

	"github.com/yildizm/ingredient-copilot/internal/logger"
	"github.com/yildizm/ingredient-copilot/internal/service"
)

// Config holds the complete application configuration
type Config struct {
	Version string        `yaml:"version" json:"version"`
	Service ServiceConfig `yaml:"service" json:"service"`
	UI      UIConfig      `yaml:"ui" json:"ui"`
	Output  OutputConfig  `yaml:"output" json:"output"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
	Serve   ServeConfig   `yaml:"serve" json:"serve"`
}

// ServiceConfig configures the analysis service client
type ServiceConfig struct {
	BaseURL       string        `yaml:"base_url" json:"base_url"`             // analysis service root
	Timeout       time.Duration `yaml:"timeout" json:"timeout"`               // per-analysis timeout
	SampleTimeout time.Duration `yaml:"sample_timeout" json:"sample_timeout"` // sample list timeout
	UserAgent     string        `yaml:"user_agent" json:"user_agent"`
}

// UIConfig configures the interactive terminal view
type UIConfig struct {
	Theme            string `yaml:"theme" json:"theme"`                           // default|high-contrast|minimal
	ClearResetsError bool   `yaml:"clear_resets_error" json:"clear_resets_error"` // Clear also hides the error line
	NoEmoji          bool   `yaml:"no_emoji" json:"no_emoji"`
}

// OutputConfig configures output formatting and display
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"` // text|json|markdown|csv|pretty
	ColorMode     string `yaml:"color_mode" json:"color_mode"`         // auto|always|never
	Verbose       bool   `yaml:"verbose" json:"verbose"`               // default verbosity
}

// LoggingConfig configures diagnostic logging
type LoggingConfig struct {
	Level  string `yaml:"level" json:"level"`   // debug|info|warn|error
	Format string `yaml:"format" json:"format"` // console|json
	File   string `yaml:"file" json:"file"`     // log file; required for logs in the TUI
}

// ServeConfig configures the local mock analysis service
type ServeConfig struct {
	Addr            string        `yaml:"addr" json:"addr"`
	ResponseDelay   time.Duration `yaml:"response_delay" json:"response_delay"` // artificial latency for /analyze
	RateLimit       float64       `yaml:"rate_limit" json:"rate_limit"`         // requests per second, 0 disables
	RateBurst       int           `yaml:"rate_burst" json:"rate_burst"`
	AllowedOrigins  []string      `yaml:"allowed_origins" json:"allowed_origins"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" json:"shutdown_timeout"`
}

// Supported values
var (
	validFormats    = []string{"text", "json", "markdown", "csv", "pretty"}
	validColorModes = []string{"auto", "always", "never"}
	validThemes     = []string{"default", "high-contrast", "minimal"}
)

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	svc := service.DefaultConfig()
	return &Config{
		Version: "1.0",
		Service: ServiceConfig{
			BaseURL:       svc.BaseURL,
			Timeout:       svc.Timeout,
			SampleTimeout: svc.SampleTimeout,
			UserAgent:     svc.UserAgent,
		},
		UI: UIConfig{
			Theme:            "default",
			ClearResetsError: false,
			NoEmoji:          false,
		},
		Output: OutputConfig{
			DefaultFormat: "text",
			ColorMode:     "auto",
			Verbose:       false,
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: logger.FormatConsole,
		},
		Serve: ServeConfig{
			Addr:            ":8000",
			ResponseDelay:   0,
			RateLimit:       10,
			RateBurst:       20,
			AllowedOrigins:  []string{"*"},
			ShutdownTimeout: 5 * time.Second,
		},
	}
}

// ServiceClientConfig converts the service section into client configuration
func (c *Config) ServiceClientConfig() *service.Config {
	return &service.Config{
		BaseURL:       c.Service.BaseURL,
		Timeout:       c.Service.Timeout,
		SampleTimeout: c.Service.SampleTimeout,
		UserAgent:     c.Service.UserAgent,
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.validateServiceConfig(); err != nil {
		return err
	}
	if err := c.validateUIConfig(); err != nil {
		return err
	}
	if err := c.validateOutputConfig(); err != nil {
		return err
	}
	if err := c.validateLoggingConfig(); err != nil {
		return err
	}
	if err := c.validateServeConfig(); err != nil {
		return err
	}
	return nil
}

// validateServiceConfig validates the analysis service section
func (c *Config) validateServiceConfig() error {
	if err := c.ServiceClientConfig().Validate(); err != nil {
		return fmt.Errorf("service: %w", err)
	}
	return nil
}

func (c *Config) validateUIConfig() error {
	if c.UI.Theme != "" && !slices.Contains(validThemes, c.UI.Theme) {
		return fmt.Errorf("invalid theme: %s (must be one of: default, high-contrast, minimal)", c.UI.Theme)
	}
	return nil
}

// validateOutputConfig validates output-related configuration
func (c *Config) validateOutputConfig() error {
	if c.Output.DefaultFormat != "" && !slices.Contains(validFormats, c.Output.DefaultFormat) {
		return fmt.Errorf("invalid output format: %s (must be one of: text, json, markdown, csv, pretty)", c.Output.DefaultFormat)
	}
	if c.Output.ColorMode != "" && !slices.Contains(validColorModes, c.Output.ColorMode) {
		return fmt.Errorf("invalid color mode: %s (must be one of: auto, always, never)", c.Output.ColorMode)
	}
	return nil
}

func (c *Config) validateLoggingConfig() error {
	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	switch c.Logging.Format {
	case "", logger.FormatConsole, logger.FormatJSON:
	default:
		return fmt.Errorf("invalid log format: %s (must be one of: console, json)", c.Logging.Format)
	}
	return nil
}

// validateServeConfig validates the mock service section
func (c *Config) validateServeConfig() error {
	if c.Serve.Addr == "" {
		return fmt.Errorf("serve addr is required")
	}
	if c.Serve.ResponseDelay < 0 {
		return fmt.Errorf("response_delay must be non-negative")
	}
	if c.Serve.RateLimit < 0 {
		return fmt.Errorf("rate_limit must be non-negative")
	}
	if c.Serve.RateLimit > 0 && c.Serve.RateBurst < 1 {
		return fmt.Errorf("rate_burst must be greater than 0 when rate_limit is set")
	}
	if c.Serve.ShutdownTimeout < 0 {
		return fmt.Errorf("shutdown_timeout must be non-negative")
	}
	return nil
}
