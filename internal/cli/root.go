package cli

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/yildizm/ingredient-copilot/internal/config"
	"github.com/yildizm/ingredient-copilot/internal/emoji"
	"github.com/yildizm/ingredient-copilot/internal/logger"
	"github.com/yildizm/ingredient-copilot/internal/service"
	"github.com/yildizm/ingredient-copilot/internal/session"
	"github.com/yildizm/ingredient-copilot/internal/ui"
)

var (
	cfgFile   string
	verbose   bool
	noColor   bool
	noEmoji   bool
	outputFmt string
	baseURL   string

	globalConfig *config.Config
)

// NewRootCommand creates the root command
func NewRootCommand(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "copilot",
		Short: "AI health companion for food ingredient labels",
		Long: `Ingredient Copilot sends a food ingredient list to an analysis service and
shows what stands out, why it might matter, what is uncertain, and how to
think about it.

Run without a subcommand to open the interactive view. Paste an ingredient
list or pick one of the sample products.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			applyEmojiSetting(cmd)
			return initConfig(cmd)
		},
		RunE: runInteractive,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&noEmoji, "no-emoji", false, "disable emoji output (useful for Windows terminals)")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "text", "output format (text, json, markdown, csv, pretty)")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "analysis service base URL")

	rootCmd.AddCommand(newAnalyzeCommand())
	rootCmd.AddCommand(newSamplesCommand())
	rootCmd.AddCommand(newStatusCommand())
	rootCmd.AddCommand(newWatchCommand())
	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newVersionCommand(version, commit, date))

	return rootCmd
}

func newVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display version number, build commit, date, and runtime information",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			applyEmojiSetting(cmd)
		},
		Run: func(cmd *cobra.Command, args []string) {
			displayVersion := version
			displayCommit := commit
			displayDate := date

			if version == "dev" || version == "" {
				displayVersion = "development"
			}
			if commit == "none" || commit == "" {
				displayCommit = "local-build"
			}
			if date == "unknown" || date == "" {
				displayDate = "local-build"
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "Ingredient Copilot %s (%s) built on %s\n", displayVersion, displayCommit, displayDate)
			_, _ = fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
			_, _ = fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

// applyEmojiSetting disables emoji on Windows unless the flag was given
func applyEmojiSetting(cmd *cobra.Command) {
	if runtime.GOOS == "windows" {
		if f := cmd.Flags().Lookup("no-emoji"); f != nil && !f.Changed {
			noEmoji = true
		}
	}
	emoji.SetEmojiDisabled(noEmoji)
}

// initConfig loads the configuration and layers the global flags on top
func initConfig(cmd *cobra.Command) error {
	loader := config.NewLoader()
	cfg, err := loader.LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	flags := cmd.Flags()
	if f := flags.Lookup("base-url"); f != nil && f.Changed {
		cfg.Service.BaseURL = baseURL
	}
	if f := flags.Lookup("output"); f != nil && f.Changed {
		cfg.Output.DefaultFormat = outputFmt
	}
	if verbose {
		cfg.Output.Verbose = true
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	if cfg.UI.NoEmoji {
		emoji.SetEmojiDisabled(true)
	}
	ui.SetThemeByName(cfg.UI.Theme)

	globalConfig = cfg
	return nil
}

// GetGlobalConfig returns the loaded configuration, or defaults before loading
func GetGlobalConfig() *config.Config {
	if globalConfig == nil {
		return config.DefaultConfig()
	}
	return globalConfig
}

// Global helpers
func isVerbose() bool {
	return verbose || GetGlobalConfig().Output.Verbose
}

func getOutputFormat() string {
	return GetGlobalConfig().Output.DefaultFormat
}

// useColor decides whether output written to w gets ANSI styling
func useColor(w io.Writer) bool {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	switch GetGlobalConfig().Output.ColorMode {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// newLogger builds the command logger. Diagnostics go to the configured log
// file; without one they reach stderr only in verbose mode. The interactive
// view never logs to the terminal.
func newLogger(cmd *cobra.Command, interactive bool) (*logger.Logger, error) {
	cfg := GetGlobalConfig()
	opts := logger.Options{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		File:    cfg.Logging.File,
		Verbose: isVerbose(),
	}
	if opts.File == "" && !interactive && isVerbose() {
		opts.Writer = cmd.ErrOrStderr()
	}
	return logger.New("cli", opts)
}

// newServiceClient builds the analysis service client from configuration
func newServiceClient() (*service.Client, error) {
	return service.New(GetGlobalConfig().ServiceClientConfig())
}

// newController wires a fresh store to the service client
func newController(cmd *cobra.Command, log *logger.Logger, opts ...session.Option) (*session.Controller, error) {
	client, err := newServiceClient()
	if err != nil {
		return nil, err
	}

	cfg := GetGlobalConfig()
	base := []session.Option{
		session.WithContext(cmd.Context()),
		session.WithTimeout(cfg.Service.Timeout),
		session.WithClearResetsError(cfg.UI.ClearResetsError),
	}
	store := session.NewStore(append(base, opts...)...)
	return session.NewController(store, client, log), nil
}

// runInteractive opens the terminal UI
func runInteractive(cmd *cobra.Command, args []string) error {
	log, err := newLogger(cmd, true)
	if err != nil {
		return err
	}
	defer func() { _ = log.Close() }()

	ctrl, err := newController(cmd, log)
	if err != nil {
		return err
	}

	color := useColor(os.Stdout)

	log.Info("starting interactive view against %s", GetGlobalConfig().Service.BaseURL)
	return ui.Run(cmd.Context(), ctrl, ui.Options{Color: color})
}
