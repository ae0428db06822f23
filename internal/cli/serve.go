package cli

import (
	"fmt"
	"net"
	"time"

	"github.com/spf13/cobra"

	"github.com/yildizm/ingredient-copilot/internal/emoji"
	"github.com/yildizm/ingredient-copilot/internal/logger"
	"github.com/yildizm/ingredient-copilot/internal/mockservice"
)

var (
	serveAddr      string
	serveDelay     time.Duration
	serveRateLimit float64
)

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a local mock analysis service",
		Long: `Serve the analysis endpoints locally with canned data, for working
offline or trying the interactive view without a real backend.

Endpoints:
  GET  /             service banner
  GET  /sample-data  sample products
  POST /analyze      canned analysis

Examples:
  copilot serve
  copilot serve --addr 127.0.0.1:9000 --delay 2s`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	cmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, :8000)")
	cmd.Flags().DurationVar(&serveDelay, "delay", 0, "artificial latency added to /analyze")
	cmd.Flags().Float64Var(&serveRateLimit, "rate-limit", 0, "requests per second, 0 keeps the configured limit")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig().Serve

	if serveAddr != "" {
		cfg.Addr = serveAddr
	}
	if cmd.Flags().Changed("delay") {
		cfg.ResponseDelay = serveDelay
	}
	if serveRateLimit > 0 {
		cfg.RateLimit = serveRateLimit
	}

	log, err := newServeLogger(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = log.Close() }()

	srv := mockservice.New(mockservice.Options{
		ResponseDelay:  cfg.ResponseDelay,
		RateLimit:      cfg.RateLimit,
		RateBurst:      cfg.RateBurst,
		AllowedOrigins: cfg.AllowedOrigins,
	}, log)

	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.Addr, err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s Mock analysis service listening on http://%s\n", emoji.GetEmoji("server"), ln.Addr())
	return srv.Serve(cmd.Context(), ln, cfg.ShutdownTimeout)
}

// newServeLogger logs requests to stderr unless a log file is configured
func newServeLogger(cmd *cobra.Command) (*logger.Logger, error) {
	cfg := GetGlobalConfig().Logging
	opts := logger.Options{
		Level:   cfg.Level,
		Format:  cfg.Format,
		File:    cfg.File,
		Verbose: isVerbose(),
	}
	if opts.File == "" {
		opts.Writer = cmd.ErrOrStderr()
	}
	return logger.New("serve", opts)
}
