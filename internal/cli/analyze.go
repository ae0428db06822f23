package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yildizm/ingredient-copilot/internal/emoji"
	"github.com/yildizm/ingredient-copilot/internal/formatter"
	"github.com/yildizm/ingredient-copilot/internal/session"
)

// maxInputBytes caps ingredient text read from files or stdin
const maxInputBytes = 1 << 20

var errInputTooLarge = fmt.Errorf("ingredient text exceeds %d bytes", maxInputBytes)

var (
	analyzeFile       string
	analyzeProduct    string
	analyzeOutputFile string
)

func newAnalyzeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [ingredients]",
		Short: "Analyze an ingredient list",
		Long: `Send one ingredient list to the analysis service and print the result.

The text comes from the argument, from --file, or from stdin, in that order.

Examples:
  copilot analyze "Carbonated Water, Sugar, Caffeine, Red 40"
  copilot analyze --file label.txt --output markdown
  pbpaste | copilot analyze -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: runAnalyze,
	}

	cmd.Flags().StringVarP(&analyzeFile, "file", "f", "", "read the ingredient list from a file")
	cmd.Flags().StringVarP(&analyzeProduct, "product", "p", "", "product name sent along with the ingredients")
	cmd.Flags().StringVar(&analyzeOutputFile, "output-file", "", "save output to file instead of stdout")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	text, err := readIngredients(cmd.InOrStdin(), args, analyzeFile)
	if err != nil {
		return err
	}

	log, err := newLogger(cmd, false)
	if err != nil {
		return err
	}
	defer func() { _ = log.Close() }()

	var opts []session.Option
	if analyzeProduct != "" {
		opts = append(opts, session.WithProductName(analyzeProduct))
	}
	ctrl, err := newController(cmd, log, opts...)
	if err != nil {
		return err
	}
	defer ctrl.Store().Close()

	out, err := ctrl.Submit(text)
	if errors.Is(err, session.ErrEmptyInput) {
		return fmt.Errorf("no ingredient text provided")
	}
	if err != nil {
		return err
	}

	// the controller has already logged the cause
	if out.Err != nil {
		return errors.New(out.Message)
	}

	return writeResult(cmd, out)
}

// writeResult formats a successful outcome to stdout or --output-file
func writeResult(cmd *cobra.Command, out session.Outcome) error {
	w := cmd.OutOrStdout()
	color := useColor(w)

	if analyzeOutputFile != "" {
		color = false
	}

	f, err := formatter.New(getOutputFormat(), color)
	if err != nil {
		return err
	}
	data, err := f.Format(out.Result)
	if err != nil {
		return fmt.Errorf("failed to format result: %w", err)
	}

	if analyzeOutputFile != "" {
		if err := os.WriteFile(filepath.Clean(analyzeOutputFile), data, 0o600); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		if isVerbose() {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "%s Result written to %s\n", emoji.GetEmoji("success"), analyzeOutputFile)
		}
		return nil
	}

	_, err = w.Write(data)
	return err
}

// readIngredients picks the ingredient text from args, a file or stdin
func readIngredients(stdin io.Reader, args []string, file string) (string, error) {
	switch {
	case len(args) > 0:
		return args[0], nil
	case file != "":
		return readIngredientFile(file)
	}

	if f, ok := stdin.(*os.File); ok {
		if info, err := f.Stat(); err == nil && info.Mode()&os.ModeCharDevice != 0 {
			return "", fmt.Errorf("no ingredient text provided (pass it as an argument, --file, or stdin)")
		}
	}

	text, err := readLimited(stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return text, nil
}

// readIngredientFile reads a whole ingredient file with trailing newlines
// removed
func readIngredientFile(path string) (string, error) {
	if err := validateFilePath(path); err != nil {
		return "", fmt.Errorf("invalid file path: %w", err)
	}

	// #nosec G304 - path is validated above
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	text, err := readLimited(f)
	if err != nil {
		return "", fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return text, nil
}

// readLimited reads all of r, refusing input over maxInputBytes rather than
// sending a cut-off ingredient list
func readLimited(r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxInputBytes+1))
	if err != nil {
		return "", err
	}
	if len(data) > maxInputBytes {
		return "", errInputTooLarge
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

// validateFilePath validates that a file path is safe to read
func validateFilePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("empty file path")
	}

	cleanPath := filepath.Clean(path)
	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path traversal not allowed")
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("path is a directory, must be a file")
	}

	return nil
}
