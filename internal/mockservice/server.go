// Package mockservice is a local stand-in for the ingredient analysis
// service. It serves the same three endpoints with canned data.
package mockservice

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"github.com/yildizm/ingredient-copilot/internal/common"
	"github.com/yildizm/ingredient-copilot/internal/logger"
)

// Banner is returned by the root endpoint
const Banner = "Ingredient Copilot API is running"

// MsgNoInput is the detail returned when an analysis has nothing to analyze
const MsgNoInput = "No ingredients or product name provided"

// Options configures a Server
type Options struct {
	// ResponseDelay is added before every analysis response
	ResponseDelay time.Duration

	// RateLimit is requests per second across all clients, 0 disables limiting
	RateLimit float64
	RateBurst int

	// AllowedOrigins lists CORS origins; a trailing * matches a prefix
	AllowedOrigins []string

	// Samples overrides the built-in sample products
	Samples []common.SampleProduct

	// Result overrides the canned analysis
	Result *common.AnalysisResult
}

// Server serves the analysis endpoints
type Server struct {
	opts   Options
	router *chi.Mux
	log    *logger.Logger
}

// New creates a server with routes and middleware installed
func New(opts Options, log *logger.Logger) *Server {
	if log == nil {
		log = logger.Nop()
	}
	if opts.Samples == nil {
		opts.Samples = DefaultSamples()
	}
	if opts.Result == nil {
		opts.Result = DefaultResult()
	}

	s := &Server{
		opts:   opts,
		router: chi.NewRouter(),
		log:    log.WithComponent("mockservice"),
	}

	s.setupRoutes()
	return s
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(requestLogger(s.log))
	s.router.Use(middleware.Recoverer)
	s.router.Use(corsMiddleware(s.opts.AllowedOrigins))
	if s.opts.RateLimit > 0 {
		s.router.Use(rateLimitMiddleware(rate.NewLimiter(rate.Limit(s.opts.RateLimit), s.opts.RateBurst)))
	}

	s.router.Get("/", s.handleRoot)
	s.router.Get("/sample-data", s.handleSamples)
	s.router.With(delayMiddleware(s.opts.ResponseDelay)).Post("/analyze", s.handleAnalyze)

	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeDetail(w, http.StatusNotFound, "Not Found")
	})
	s.router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeDetail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": Banner})
}

func (s *Server) handleSamples(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.opts.Samples)
}

// analysisRequest mirrors the service request body. Image input is accepted
// on the wire but never analyzed.
type analysisRequest struct {
	IngredientsText string `json:"ingredients_text"`
	ImageData       string `json:"image_data,omitempty"`
	ProductName     string `json:"product_name,omitempty"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analysisRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		s.log.DebugWithFields("rejecting malformed analysis body", []logger.Field{logger.Error(err)})
		writeDetail(w, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}

	input := req.IngredientsText
	if input == "" {
		input = req.ProductName
	}
	if input == "" {
		writeDetail(w, http.StatusBadRequest, MsgNoInput)
		return
	}

	s.log.InfoWithFields("analysis requested", []logger.Field{
		logger.F("request_id", middleware.GetReqID(r.Context())),
		logger.F("ingredients", len(strings.Split(input, ","))),
	})
	writeJSON(w, http.StatusOK, s.opts.Result)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
