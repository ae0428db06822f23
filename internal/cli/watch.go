package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/yildizm/ingredient-copilot/internal/emoji"
	"github.com/yildizm/ingredient-copilot/internal/formatter"
	"github.com/yildizm/ingredient-copilot/internal/logger"
	"github.com/yildizm/ingredient-copilot/internal/session"
)

func newWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch [file]",
		Short: "Re-analyze an ingredient file whenever it changes",
		Long: `Analyze an ingredient file, then analyze it again every time it is written.

A change that arrives while an analysis is still running cancels that
analysis and starts a new one. Press Ctrl+C to stop watching.

Examples:
  copilot watch label.txt
  copilot watch --output markdown label.txt`,
		Args: cobra.ExactArgs(1),
		RunE: runWatch,
	}
}

func runWatch(cmd *cobra.Command, args []string) error {
	filename := args[0]
	if err := validateFilePath(filename); err != nil {
		return fmt.Errorf("invalid file path: %w", err)
	}

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

	out := cmd.OutOrStdout()
	f, err := formatter.New(getOutputFormat(), useColor(out))
	if err != nil {
		return err
	}

	watcher, err := createWatcher(filename)
	if err != nil {
		return err
	}
	defer cleanupWatcher(watcher, log)

	if isVerbose() {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "%s Watching file: %s\nPress Ctrl+C to stop...\n\n", emoji.GetEmoji("watch"), filename)
	}

	w := &fileWatch{
		filename:  filename,
		ctrl:      ctrl,
		formatter: f,
		out:       out,
		errOut:    cmd.ErrOrStderr(),
		log:       log.WithComponent("watch"),
	}
	return w.run(cmd.Context(), watcher.Events, watcher.Errors)
}

// fileWatch re-submits a file's contents on every change and prints each
// outcome that is still current
type fileWatch struct {
	filename  string
	ctrl      *session.Controller
	formatter formatter.Formatter
	out       io.Writer
	errOut    io.Writer
	log       *logger.Logger
}

// run submits the file once, then again on each write event, until ctx is
// done or the watcher shuts down
func (w *fileWatch) run(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	outcomes := make(chan session.Outcome)
	w.submit(ctx, outcomes)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-events:
			if !ok {
				return errors.New("watcher events channel closed")
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				w.log.Debug("change detected: %s", event)
				w.submit(ctx, outcomes)
			}

		case o := <-outcomes:
			if w.ctrl.Store().Apply(o) {
				w.print(o)
			}

		case err, ok := <-errs:
			if !ok {
				return errors.New("watcher errors channel closed")
			}
			w.log.WarnWithFields("watcher error", []logger.Field{logger.Error(err)})
		}
	}
}

// submit reads the file and supersedes any pending analysis with it
func (w *fileWatch) submit(ctx context.Context, outcomes chan<- session.Outcome) {
	text, err := readIngredientFile(w.filename)
	if err != nil {
		w.log.WarnWithFields("failed to read ingredient file", []logger.Field{logger.Error(err)})
		return
	}

	sub, err := w.ctrl.Store().Supersede(text)
	if err != nil {
		// an empty file while the user edits it is expected
		w.log.Debug("skipping submission: %v", err)
		return
	}

	go func() {
		o := w.ctrl.Analyze(sub)
		select {
		case outcomes <- o:
		case <-ctx.Done():
		}
	}()
}

func (w *fileWatch) print(o session.Outcome) {
	stamp := time.Now().Format("15:04:05")
	if o.Err != nil {
		_, _ = fmt.Fprintf(w.errOut, "[%s] %s %s\n", stamp, emoji.GetEmoji("error"), o.Message)
		return
	}

	data, err := w.formatter.Format(o.Result)
	if err != nil {
		_, _ = fmt.Fprintf(w.errOut, "[%s] failed to format result: %v\n", stamp, err)
		return
	}
	_, _ = fmt.Fprintf(w.out, "[%s] %s\n", stamp, w.filename)
	_, _ = w.out.Write(data)
}

// createWatcher creates and configures a new file system watcher
func createWatcher(filename string) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := watcher.Add(filename); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch file: %w", err)
	}

	return watcher, nil
}

// cleanupWatcher safely closes watcher with error logging
func cleanupWatcher(watcher *fsnotify.Watcher, log *logger.Logger) {
	if err := watcher.Close(); err != nil {
		log.Warn("failed to close watcher: %v", err)
	}
}
