package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yildizm/ingredient-copilot/internal/config"
	"github.com/yildizm/ingredient-copilot/internal/emoji"
)

const defaultConfigFile = ".copilot.yaml"

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create, inspect and check copilot config files",
		// subcommands load the file themselves so a broken one can be reported
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			applyEmojiSetting(cmd)
		},
	}

	cmd.AddCommand(
		newConfigInitCommand(),
		newConfigShowCommand(),
		newConfigValidateCommand(),
		newConfigPathCommand(),
	)
	return cmd
}

func newConfigInitCommand() *cobra.Command {
	var (
		path    string
		minimal bool
		force   bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter config file",
		Example: `  copilot config init
  copilot config init --minimal --output ~/.config/copilot/config.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				path = defaultConfigFile
			}
			if !force && fileExists(path) {
				return fmt.Errorf("config file already exists at %s (use --force to overwrite)", path)
			}

			if dir := filepath.Dir(path); dir != "." {
				if err := os.MkdirAll(dir, 0o750); err != nil {
					return fmt.Errorf("create %s: %w", dir, err)
				}
			}

			content := config.SampleConfig()
			if minimal {
				content = config.MinimalSampleConfig()
			}
			if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
				return fmt.Errorf("write config: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s Wrote config to %s\n", emoji.GetEmoji("success"), path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "output", "o", "", "where to write the file (default "+defaultConfigFile+")")
	cmd.Flags().BoolVarP(&minimal, "minimal", "m", false, "only the service and output settings")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	return cmd
}

func newConfigShowCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective config after files and COPILOT_* variables are merged",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewLoader().LoadConfig(cfgFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			return encodeConfig(cmd.OutOrStdout(), cfg, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "yaml or json")
	return cmd
}

func encodeConfig(w io.Writer, cfg *config.Config, format string) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case "yaml":
		data, err = yaml.Marshal(cfg)
	case "json":
		data, err = json.MarshalIndent(cfg, "", "  ")
		data = append(data, '\n')
	default:
		return fmt.Errorf("unsupported format %q (use yaml or json)", format)
	}
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	_, err = w.Write(data)
	return err
}

func newConfigValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check that the config parses and its values are usable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			cfg, err := config.NewLoader().LoadConfig(cfgFile)
			if err != nil {
				_, _ = fmt.Fprintf(out, "%s Configuration validation failed: %v\n", emoji.GetEmoji("error"), err)
				return err
			}

			_, _ = fmt.Fprintf(out, "%s Configuration is valid\n", emoji.GetEmoji("success"))
			_, _ = fmt.Fprintf(out, "  service: %s (timeout %s)\n", cfg.Service.BaseURL, cfg.Service.Timeout)
			_, _ = fmt.Fprintf(out, "  output:  %s\n", cfg.Output.DefaultFormat)
			_, _ = fmt.Fprintf(out, "  theme:   %s\n", cfg.UI.Theme)
			return nil
		},
	}
}

func newConfigPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "List the config locations in lookup order",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()

			for i, path := range config.GetConfigPaths() {
				state := "missing"
				if fileExists(path) {
					state = "found"
				}
				_, _ = fmt.Fprintf(out, "%d. %s (%s)\n", i+1, path, state)
			}

			if current, ok := config.FindConfigFile(); ok {
				_, _ = fmt.Fprintf(out, "\n%s Using %s\n", emoji.GetEmoji("folder"), current)
			} else {
				_, _ = fmt.Fprintf(out, "\n%s No config file found, using defaults\n", emoji.GetEmoji("info"))
			}
			_, _ = fmt.Fprintf(out, "%s variables override file values\n", config.EnvPrefix+"*")
		},
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
