package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/yildizm/go-promptfmt"
	"github.com/yildizm/ingredient-copilot/internal/common"
)

// Endpoint paths of the analysis service
const (
	PathRoot    = "/"
	PathSamples = "/sample-data"
	PathAnalyze = "/analyze"
)

// RequestIDHeader carries a per-request identifier for log correlation
const RequestIDHeader = "X-Request-ID"

// maxBodyBytes caps how much of a response body is read
const maxBodyBytes = 1 << 20

// Client talks to the ingredient analysis service over HTTP
type Client struct {
	config  *Config
	client  *http.Client
	baseURL *url.URL
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.client = hc
		}
	}
}

// New creates a new service client
func New(config *Config, opts ...Option) (*Client, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	baseURL, err := url.Parse(config.BaseURL)
	if err != nil {
		return nil, NewConfigurationError("base_url", "invalid base URL: "+err.Error())
	}

	c := &Client{
		config:  config,
		client:  &http.Client{},
		baseURL: baseURL,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// BaseURL returns the service root the client is bound to
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Timeout returns the per-analysis request timeout
func (c *Client) Timeout() time.Duration {
	return c.config.Timeout
}

// FetchSamples retrieves the ordered list of sample products
func (c *Client) FetchSamples(ctx context.Context) ([]common.SampleProduct, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.SampleTimeout)
	defer cancel()

	body, err := c.do(ctx, http.MethodGet, PathSamples, nil)
	if err != nil {
		return nil, err
	}

	var samples []common.SampleProduct
	if err := decodeJSON(body, &samples); err != nil {
		return nil, NewServiceErrorWithCause(ErrTypeDecode, "failed to decode sample list", PathSamples, err)
	}

	return samples, nil
}

// Analyze submits an ingredient list and returns the structured analysis
func (c *Client) Analyze(ctx context.Context, req *common.AnalysisRequest) (*common.AnalysisResult, error) {
	if req == nil {
		return nil, NewServiceError(ErrTypeValidation, "analysis request is required", PathAnalyze)
	}

	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, NewServiceErrorWithCause(ErrTypeInternal, "failed to marshal request", PathAnalyze, err)
	}

	body, err := c.do(ctx, http.MethodPost, PathAnalyze, payload)
	if err != nil {
		return nil, err
	}

	var result common.AnalysisResult
	if err := decodeJSON(body, &result); err != nil {
		return nil, NewServiceErrorWithCause(ErrTypeDecode, "failed to decode analysis", PathAnalyze, err)
	}
	if result.IsEmpty() {
		return nil, NewServiceError(ErrTypeDecode, "analysis has no content", PathAnalyze)
	}

	return &result, nil
}

// Ping fetches the service banner from the root endpoint
func (c *Client) Ping(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.SampleTimeout)
	defer cancel()

	body, err := c.do(ctx, http.MethodGet, PathRoot, nil)
	if err != nil {
		return "", err
	}

	var banner struct {
		Message string `json:"message"`
	}
	if err := decodeJSON(body, &banner); err != nil {
		return "", NewServiceErrorWithCause(ErrTypeDecode, "failed to decode banner", PathRoot, err)
	}

	return banner.Message, nil
}

// do performs one request and returns the body of a 200 response
func (c *Client) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	endpoint := c.baseURL.JoinPath(path)

	var reqBody io.Reader = http.NoBody
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, endpoint.String(), reqBody)
	if err != nil {
		return nil, NewServiceErrorWithCause(ErrTypeInternal, "failed to create request", path, err)
	}

	if payload != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.config.UserAgent)
	httpReq.Header.Set(RequestIDHeader, uuid.NewString())

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, transportError(ctx, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, NewStatusError(path, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, transportError(ctx, path, fmt.Errorf("failed to read response body: %w", err))
	}
	if len(body) > maxBodyBytes {
		return nil, NewServiceError(ErrTypeDecode, fmt.Sprintf("response body exceeds %d bytes", maxBodyBytes), path)
	}

	return body, nil
}

// decodeJSON decodes body strictly, falling back to extracting a JSON value
// embedded in surrounding text or code fences.
func decodeJSON(body []byte, v any) error {
	err := json.Unmarshal(body, v)
	if err == nil {
		return nil
	}

	parsed := promptfmt.NewResponse(string(body)).TryParseJSON(v)
	if parsed.Success {
		return nil
	}

	return err
}
