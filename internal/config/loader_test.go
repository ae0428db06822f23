package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// testLoader builds a loader that only sees the given paths and environment
func testLoader(paths []string, env map[string]string) (*Loader, *bytes.Buffer) {
	var warnings bytes.Buffer
	return &Loader{
		configPaths: paths,
		warnings:    &warnings,
		getenv:      func(k string) string { return env[k] },
	}, &warnings
}

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write test config file: %v", err)
	}
	return path
}

func TestNewLoader(t *testing.T) {
	loader := NewLoader()
	if loader == nil {
		t.Fatal("NewLoader returned nil")
	}
	if len(loader.configPaths) != 3 {
		t.Errorf("Expected 3 config paths, got %d", len(loader.configPaths))
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	loader, _ := testLoader([]string{filepath.Join(t.TempDir(), "missing.yaml")}, nil)

	cfg, err := loader.LoadConfig("")
	if err != nil {
		t.Fatalf("Failed to load default config: %v", err)
	}

	if cfg.Service.BaseURL != "http://localhost:8000" {
		t.Errorf("Expected default base URL, got %s", cfg.Service.BaseURL)
	}
	if cfg.Output.DefaultFormat != "text" {
		t.Errorf("Expected default output format text, got %s", cfg.Output.DefaultFormat)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	configPath := writeConfig(t, t.TempDir(), "test-config.yaml", `version: "1.0"
service:
  base_url: "http://analysis.internal:9000"
  timeout: 60s
ui:
  clear_resets_error: true
output:
  default_format: "json"
  verbose: true
serve:
  allowed_origins: ["http://localhost:3000"]
`)

	loader, _ := testLoader(nil, nil)
	cfg, err := loader.LoadConfig(configPath)
	if err != nil {
		t.Fatalf("Failed to load config from file: %v", err)
	}

	if cfg.Service.BaseURL != "http://analysis.internal:9000" {
		t.Errorf("Expected base URL from file, got %s", cfg.Service.BaseURL)
	}
	if cfg.Service.Timeout != 60*time.Second {
		t.Errorf("Expected timeout 60s, got %v", cfg.Service.Timeout)
	}
	if cfg.Service.SampleTimeout != 10*time.Second {
		t.Errorf("Expected untouched sample timeout 10s, got %v", cfg.Service.SampleTimeout)
	}
	if !cfg.UI.ClearResetsError {
		t.Error("Expected clear_resets_error to be true")
	}
	if cfg.Output.DefaultFormat != "json" {
		t.Errorf("Expected output format json, got %s", cfg.Output.DefaultFormat)
	}
	if !cfg.Output.Verbose {
		t.Error("Expected verbose to be true")
	}
	if cfg.Output.ColorMode != "auto" {
		t.Errorf("Expected untouched color mode auto, got %s", cfg.Output.ColorMode)
	}
	if len(cfg.Serve.AllowedOrigins) != 1 || cfg.Serve.AllowedOrigins[0] != "http://localhost:3000" {
		t.Errorf("Expected allowed origins from file, got %v", cfg.Serve.AllowedOrigins)
	}
}

func TestLoadConfigPriority(t *testing.T) {
	dir := t.TempDir()
	project := writeConfig(t, dir, "project.yaml", `service:
  base_url: "http://project:8000"
`)
	user := writeConfig(t, dir, "user.yaml", `service:
  base_url: "http://user:8000"
  timeout: 45s
ui:
  theme: "minimal"
`)

	loader, _ := testLoader([]string{project, user}, nil)
	cfg, err := loader.LoadConfig("")
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Service.BaseURL != "http://project:8000" {
		t.Errorf("Expected project file to win, got %s", cfg.Service.BaseURL)
	}
	if cfg.Service.Timeout != 45*time.Second {
		t.Errorf("Expected timeout from user file, got %v", cfg.Service.Timeout)
	}
	if cfg.UI.Theme != "minimal" {
		t.Errorf("Expected theme from user file, got %s", cfg.UI.Theme)
	}
}

func TestLoadConfigBrokenFileIsSkipped(t *testing.T) {
	dir := t.TempDir()
	broken := writeConfig(t, dir, "broken.yaml", "service: [unclosed\n")
	good := writeConfig(t, dir, "good.yaml", `output:
  default_format: "markdown"
`)

	loader, warnings := testLoader([]string{broken, good}, nil)
	cfg, err := loader.LoadConfig("")
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Output.DefaultFormat != "markdown" {
		t.Errorf("Expected format from good file, got %s", cfg.Output.DefaultFormat)
	}
	if !strings.Contains(warnings.String(), broken) {
		t.Errorf("Expected a warning naming %s, got %q", broken, warnings.String())
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	configPath := writeConfig(t, t.TempDir(), "invalid-config.yaml", `version: "1.0"
service:
  base_url: "http://localhost:8000
  timeout: 60s
`)

	loader, _ := testLoader(nil, nil)
	if _, err := loader.LoadConfig(configPath); err == nil {
		t.Error("Expected error loading invalid YAML config, but got none")
	}
}

func TestLoadConfigInvalidValues(t *testing.T) {
	configPath := writeConfig(t, t.TempDir(), "bad-values.yaml", `output:
  default_format: "xml"
`)

	loader, _ := testLoader(nil, nil)
	_, err := loader.LoadConfig(configPath)
	if err == nil {
		t.Fatal("Expected validation error, but got none")
	}
	if !strings.Contains(err.Error(), "configuration validation failed") {
		t.Errorf("Expected validation failure, got %v", err)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	loader, _ := testLoader(nil, map[string]string{
		"COPILOT_SERVICE_BASE_URL":      "https://copilot.example.com",
		"COPILOT_SERVICE_TIMEOUT":       "12s",
		"COPILOT_UI_CLEAR_RESETS_ERROR": "true",
		"COPILOT_OUTPUT_VERBOSE":        "true",
		"COPILOT_LOGGING_LEVEL":         "debug",
		"COPILOT_SERVE_RATE_LIMIT":      "2.5",
		"COPILOT_SERVE_RATE_BURST":      "4",
		"COPILOT_SERVE_ALLOWED_ORIGINS": "http://a.test, http://b.test ,",
	})
	cfg := DefaultConfig()

	if err := loader.applyEnvOverrides(cfg); err != nil {
		t.Fatalf("Failed to apply env overrides: %v", err)
	}

	if cfg.Service.BaseURL != "https://copilot.example.com" {
		t.Errorf("Expected base URL override, got %s", cfg.Service.BaseURL)
	}
	if cfg.Service.Timeout != 12*time.Second {
		t.Errorf("Expected timeout 12s, got %v", cfg.Service.Timeout)
	}
	if !cfg.UI.ClearResetsError {
		t.Error("Expected clear_resets_error to be true")
	}
	if !cfg.Output.Verbose {
		t.Error("Expected verbose to be true")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Expected log level debug, got %s", cfg.Logging.Level)
	}
	if cfg.Serve.RateLimit != 2.5 || cfg.Serve.RateBurst != 4 {
		t.Errorf("Expected rate 2.5/4, got %v/%d", cfg.Serve.RateLimit, cfg.Serve.RateBurst)
	}
	expected := []string{"http://a.test", "http://b.test"}
	if len(cfg.Serve.AllowedOrigins) != len(expected) {
		t.Fatalf("Expected %d origins, got %v", len(expected), cfg.Serve.AllowedOrigins)
	}
	for i, origin := range expected {
		if cfg.Serve.AllowedOrigins[i] != origin {
			t.Errorf("Expected origin %s, got %s", origin, cfg.Serve.AllowedOrigins[i])
		}
	}
}

func TestApplyEnvOverridesInvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		envVar string
		value  string
	}{
		{"invalid int", "COPILOT_SERVE_RATE_BURST", "not-a-number"},
		{"invalid float", "COPILOT_SERVE_RATE_LIMIT", "fast"},
		{"invalid bool", "COPILOT_OUTPUT_VERBOSE", "not-a-bool"},
		{"invalid duration", "COPILOT_SERVICE_TIMEOUT", "not-a-duration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader, _ := testLoader(nil, map[string]string{tt.envVar: tt.value})
			if err := loader.applyEnvOverrides(DefaultConfig()); err == nil {
				t.Error("Expected error for invalid env var value, but got none")
			}
		})
	}
}

func TestLoadConfigEnvBeatsFile(t *testing.T) {
	configPath := writeConfig(t, t.TempDir(), "c.yaml", `service:
  base_url: "http://file:8000"
`)

	loader, _ := testLoader(nil, map[string]string{"COPILOT_SERVICE_BASE_URL": "http://env:8000"})
	cfg, err := loader.LoadConfig(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Service.BaseURL != "http://env:8000" {
		t.Errorf("Expected env override to win, got %s", cfg.Service.BaseURL)
	}
}

func TestValidateConfigPath(t *testing.T) {
	tests := []struct {
		path    string
		wantErr bool
	}{
		{"config.yaml", false},
		{"config.yml", false},
		{"/tmp/copilot/config.yaml", false},
		{"../config.yaml", true},
		{"config.json", true},
		{"/proc/self/environ.yaml", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			err := validateConfigPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateConfigPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	if got := expandPath("~/.config/copilot/config.yaml"); got != filepath.Join(home, ".config/copilot/config.yaml") {
		t.Errorf("Unexpected expansion: %s", got)
	}
	if got := expandPath("/etc/copilot/config.yaml"); got != "/etc/copilot/config.yaml" {
		t.Errorf("Absolute path should be unchanged, got %s", got)
	}
}

func TestParseHelpers(t *testing.T) {
	var d time.Duration
	if err := parseDuration("30s", &d); err != nil || d != 30*time.Second {
		t.Errorf("parseDuration: got %v, %v", d, err)
	}
	if err := parseDuration("invalid", &d); err == nil {
		t.Error("Expected error for invalid duration, but got none")
	}

	var i int
	if err := parseInt("42", &i); err != nil || i != 42 {
		t.Errorf("parseInt: got %d, %v", i, err)
	}

	var f float64
	if err := parseFloat("0.5", &f); err != nil || f != 0.5 {
		t.Errorf("parseFloat: got %v, %v", f, err)
	}

	var b bool
	if err := parseBool("true", &b); err != nil || !b {
		t.Errorf("parseBool: got %v, %v", b, err)
	}
	if err := parseBool("not-a-bool", &b); err == nil {
		t.Error("Expected error for invalid bool, but got none")
	}
}
