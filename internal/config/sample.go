package config

// SampleConfig returns a fully documented configuration file
func SampleConfig() string {
	return `# Ingredient Copilot configuration
#
# Search order (first match wins for each key):
#   ./.copilot.yaml
#   ~/.config/copilot/config.yaml
#   /etc/copilot/config.yaml
# Any key can be overridden with a COPILOT_<SECTION>_<KEY> environment
# variable, e.g. COPILOT_SERVICE_BASE_URL.

version: "1.0"

service:
  # Root URL of the analysis service
  base_url: "http://localhost:8000"
  # Upper bound for a single analysis request
  timeout: 30s
  # Upper bound for loading the sample product list
  sample_timeout: 10s
  user_agent: "ingredient-copilot/1.0"

ui:
  # default | high-contrast | minimal
  theme: "default"
  # When true, Clear also hides the last error message
  clear_resets_error: false
  no_emoji: false

output:
  # text | json | markdown | csv | pretty
  default_format: "text"
  # auto | always | never
  color_mode: "auto"
  verbose: false

logging:
  # debug | info | warn | error
  level: "warn"
  # console | json
  format: "console"
  # The interactive view only logs when a file is set
  file: ""

serve:
  # Listen address of the local mock service (copilot serve)
  addr: ":8000"
  # Artificial latency added to every analysis
  response_delay: 0s
  # Requests per second, 0 disables limiting
  rate_limit: 10
  rate_burst: 20
  allowed_origins:
    - "*"
  shutdown_timeout: 5s
`
}

// MinimalSampleConfig returns a compact configuration with essential settings
func MinimalSampleConfig() string {
	return `version: "1.0"

service:
  base_url: "http://localhost:8000"
  timeout: 30s

output:
  default_format: "text"
`
}
