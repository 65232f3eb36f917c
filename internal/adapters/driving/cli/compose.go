package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/composer/internal/adapters/driving/tui"
	"github.com/custodia-labs/composer/internal/core/domain"
	"github.com/custodia-labs/composer/internal/core/ports/driven"
	"github.com/custodia-labs/composer/internal/logger"
)

var composeCmd = &cobra.Command{
	Use:   "compose",
	Short: "Open the terminal composer",
	Long: `Open the interactive composer.

Type a message and press Enter to send it. Sent messages are printed in
the --to format when the composer exits. With --channel the draft for
that channel is restored on start and saved as you type.

With --file the message is mirrored to a file, and edits made to the
file by another program are loaded back into the composer.

Controls:
  Enter              - Send / accept suggestion
  Ctrl+J, Alt+Enter  - New line
  Ctrl+B, Alt+I      - Bold, italic
  Ctrl+U, Alt+L      - Underline, bullet list
  Ctrl+Z, Ctrl+Y     - Undo, redo
  F1                 - Toggle help
  Ctrl+C             - Quit`,
	Args: cobra.NoArgs,
	RunE: runCompose,
}

var (
	composePlain   bool
	composeChannel string
	composeFile    string
	composeValue   string
	composeTo      string
	composeOnce    bool
)

func init() {
	composeCmd.Flags().BoolVar(&composePlain, "plain", false, "edit plain text without formatting")
	composeCmd.Flags().StringVarP(&composeChannel, "channel", "c", "", "channel whose draft is restored and autosaved")
	composeCmd.Flags().StringVarP(&composeFile, "file", "f", "", "mirror the message to this file and follow its edits")
	composeCmd.Flags().StringVar(&composeValue, "value", "", "initial value in any supported format")
	composeCmd.Flags().StringVarP(&composeTo, "to", "t", "canonical", "format of the printed messages")
	composeCmd.Flags().BoolVar(&composeOnce, "once", false, "exit after the first message is sent")
	rootCmd.AddCommand(composeCmd)
}

func runCompose(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in composer: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	to, err := domain.ParseFormat(composeTo)
	if err != nil {
		return err
	}

	// The alternate screen owns stderr while the program runs.
	if verbose && logPath != "" {
		closer, err := logger.SetOutputFile(logPath)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer func() {
			logger.SetOutput(os.Stderr)
			_ = closer.Close()
		}()
	}

	app, closeWatcher, err := newComposeApp(cmd)
	if err != nil {
		return err
	}
	defer closeWatcher()

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("composer error: %w", err)
	}

	return printSent(cmd.OutOrStdout(), app.Sent(), to)
}

// newComposeApp builds the composer app from the flags and services.
// The returned func releases the file watcher, if any.
func newComposeApp(cmd *cobra.Command) (*tui.App, func(), error) {
	if composerFactory == nil {
		return nil, nil, errors.New("composer not configured")
	}

	opts := tui.Options{
		Channel:      composeChannel,
		Value:        composeValue,
		QuitOnSubmit: composeOnce,
		Placeholder:  "Write a message",
	}
	if composePlain {
		opts.Mode = domain.ModePlain
	}
	if settingsService != nil {
		settings, err := settingsService.Get()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load settings: %w", err)
		}
		opts.AutosaveEvery = time.Duration(settings.AutosaveIntervalMs) * time.Millisecond
	}
	if composeChannel != "" {
		opts.Placeholder = "Message #" + composeChannel
	}

	closeWatcher := func() {}
	if composeFile != "" {
		watcher, err := openWatcher(composeFile)
		if err != nil {
			return nil, nil, err
		}
		if opts.Value == "" {
			opts.Value = currentValue(watcher)
		}
		opts.Watcher = watcher
		closeWatcher = func() {
			if err := watcher.Close(); err != nil {
				logger.Warn("closing watcher: %v", err)
			}
		}
	}

	ports := &tui.Ports{
		Composer:  composerFactory,
		Drafts:    draftService,
		Directory: directoryService,
		Clipboard: clipboardPort,
	}

	app, err := tui.NewApp(ports, opts)
	if err != nil {
		closeWatcher()
		return nil, nil, fmt.Errorf("failed to create composer: %w", err)
	}
	app.WithContext(cmd.Context())

	return app, closeWatcher, nil
}

func openWatcher(path string) (driven.ValueWatcher, error) {
	if watcherFactory == nil {
		return nil, errors.New("file watching not configured")
	}
	watcher, err := watcherFactory(path)
	if err != nil {
		return nil, fmt.Errorf("failed to watch %s: %w", path, err)
	}
	return watcher, nil
}

// currentValue returns the file contents the watcher started from.
func currentValue(w driven.ValueWatcher) string {
	if c, ok := w.(interface{ Current() string }); ok {
		return c.Current()
	}
	return ""
}

// printSent writes each sent message in the requested format, one per line.
func printSent(w io.Writer, sent []string, to domain.Format) error {
	if len(sent) > 0 && conversionService == nil {
		return errors.New("conversion service not configured")
	}
	for _, value := range sent {
		out, err := conversionService.Convert(value, to)
		if err != nil {
			return fmt.Errorf("failed to convert sent message: %w", err)
		}
		fmt.Fprintln(w, out)
	}
	return nil
}
