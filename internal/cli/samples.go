package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/yildizm/ingredient-copilot/internal/emoji"
	"github.com/yildizm/ingredient-copilot/internal/formatter"
	"github.com/yildizm/ingredient-copilot/internal/service"
)

func newSamplesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "samples",
		Short: "List the sample products",
		Long: `Fetch the sample products from the analysis service.

When the service cannot be reached the built-in samples are listed instead.`,
		Args: cobra.NoArgs,
		RunE: runSamples,
	}
}

func runSamples(cmd *cobra.Command, args []string) error {
	log, err := newLogger(cmd, false)
	if err != nil {
		return err
	}
	defer func() { _ = log.Close() }()

	ctrl, err := newController(cmd, log)
	if err != nil {
		return err
	}
	defer ctrl.Store().Close()

	samples, fromService := ctrl.LoadSamples(cmd.Context())
	if !fromService {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "%s Service unavailable, showing built-in samples\n", emoji.GetEmoji("warning"))
	}

	w := cmd.OutOrStdout()
	f, err := formatter.New(getOutputFormat(), useColor(w))
	if err != nil {
		return err
	}
	data, err := f.FormatSamples(samples)
	if err != nil {
		return fmt.Errorf("failed to format samples: %w", err)
	}
	_, err = w.Write(data)
	return err
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check that the analysis service is reachable",
		Args:  cobra.NoArgs,
		RunE:  runStatus,
	}
}

func runStatus(cmd *cobra.Command, args []string) error {
	client, err := newServiceClient()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	start := time.Now()
	banner, err := client.Ping(cmd.Context())
	elapsed := time.Since(start).Round(time.Millisecond)

	if err != nil {
		_, _ = fmt.Fprintf(out, "%s %s is not reachable\n", emoji.GetEmoji("error"), client.BaseURL())
		if isVerbose() {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "   %v\n", err)
		}
		return fmt.Errorf("%s", service.UserMessage(err))
	}

	_, _ = fmt.Fprintf(out, "%s %s\n", emoji.GetEmoji("server"), banner)
	_, _ = fmt.Fprintf(out, "   URL: %s\n", client.BaseURL())
	_, _ = fmt.Fprintf(out, "   Latency: %s\n", elapsed)
	return nil
}
