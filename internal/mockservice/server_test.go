package mockservice

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/yildizm/ingredient-copilot/internal/common"
	"github.com/yildizm/ingredient-copilot/internal/service"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestServer(t *testing.T, opts Options) (*httptest.Server, *service.Client) {
	t.Helper()

	ts := httptest.NewServer(New(opts, nil).Handler())
	t.Cleanup(ts.Close)

	cfg := service.DefaultConfig()
	cfg.BaseURL = ts.URL
	client, err := service.New(cfg, service.WithHTTPClient(ts.Client()))
	require.NoError(t, err)
	return ts, client
}

func TestServer_Root(t *testing.T) {
	_, client := newTestServer(t, Options{})

	msg, err := client.Ping(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Banner, msg)
}

func TestServer_Samples(t *testing.T) {
	_, client := newTestServer(t, Options{})

	samples, err := client.FetchSamples(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DefaultSamples(), samples)
}

func TestServer_Analyze(t *testing.T) {
	_, client := newTestServer(t, Options{})

	result, err := client.Analyze(context.Background(), common.NewAnalysisRequest("Potatoes, Salt"))
	require.NoError(t, err)
	assert.Equal(t, DefaultResult(), result)
}

func TestServer_AnalyzeProductNameOnly(t *testing.T) {
	ts, _ := newTestServer(t, Options{})

	resp, err := ts.Client().Post(ts.URL+"/analyze", "application/json", strings.NewReader(`{"product_name":"Cola"}`))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServer_AnalyzeRejects(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"no input", `{"ingredients_text":""}`, http.StatusBadRequest},
		{"empty object", `{}`, http.StatusBadRequest},
		{"malformed", `{"ingredients_text":`, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, _ := newTestServer(t, Options{})

			resp, err := ts.Client().Post(ts.URL+"/analyze", "application/json", strings.NewReader(tt.body))
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestServer_AnalyzeEmptyIsBackendFailure(t *testing.T) {
	_, client := newTestServer(t, Options{})

	_, err := client.Analyze(context.Background(), common.NewAnalysisRequest(""))
	require.Error(t, err)
	assert.True(t, service.IsStatusError(err))
	assert.Equal(t, common.MsgBackendFailed, service.UserMessage(err))
}

func TestServer_CORS(t *testing.T) {
	ts, _ := newTestServer(t, Options{AllowedOrigins: []string{"http://localhost:3000", "chrome-extension://*"}})

	tests := []struct {
		origin  string
		allowed bool
	}{
		{"http://localhost:3000", true},
		{"chrome-extension://abc", true},
		{"http://evil.test", false},
	}

	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodOptions, ts.URL+"/analyze", nil)
			require.NoError(t, err)
			req.Header.Set("Origin", tt.origin)
			req.Header.Set("Access-Control-Request-Method", "POST")

			resp, err := ts.Client().Do(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			assert.Equal(t, http.StatusNoContent, resp.StatusCode)
			if tt.allowed {
				assert.Equal(t, tt.origin, resp.Header.Get("Access-Control-Allow-Origin"))
			} else {
				assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
			}
		})
	}
}

func TestServer_RateLimit(t *testing.T) {
	ts, _ := newTestServer(t, Options{RateLimit: 0.001, RateBurst: 2})

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		resp, err := ts.Client().Get(ts.URL + "/")
		require.NoError(t, err)
		statuses = append(statuses, resp.StatusCode)
		_ = resp.Body.Close()
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, statuses)
}

func TestServer_ResponseDelay(t *testing.T) {
	_, client := newTestServer(t, Options{ResponseDelay: 80 * time.Millisecond})

	start := time.Now()
	_, err := client.Analyze(context.Background(), common.NewAnalysisRequest("Salt"))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
}

func TestServer_NotFound(t *testing.T) {
	ts, _ := newTestServer(t, Options{})

	resp, err := ts.Client().Get(ts.URL + "/nope")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_ServeAndShutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- New(Options{}, nil).Serve(ctx, ln, time.Second)
	}()

	cfg := service.DefaultConfig()
	cfg.BaseURL = "http://" + ln.Addr().String()
	transport := &http.Transport{}
	client, err := service.New(cfg, service.WithHTTPClient(&http.Client{Transport: transport}))
	require.NoError(t, err)

	msg, err := client.Ping(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Banner, msg)
	transport.CloseIdleConnections()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestIsAllowedOrigin(t *testing.T) {
	assert.True(t, isAllowedOrigin("http://any.test", []string{"*"}))
	assert.False(t, isAllowedOrigin("http://any.test", nil))
	assert.True(t, isAllowedOrigin("http://a.test", []string{"http://b.test", "http://a.test"}))
}
