// Package cli provides the cobra command tree for the composer binary.
// Services are injected from main through the setters in this file.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/composer/internal/core/ports/driven"
	"github.com/custodia-labs/composer/internal/core/ports/driving"
	"github.com/custodia-labs/composer/internal/logger"
)

// version is set at build time with -ldflags.
var version = "dev"

var verbose bool

var (
	conversionService driving.ConversionService
	composerFactory   driving.ComposerFactory
	draftService      driving.DraftService
	directoryService  driving.DirectoryService
	settingsService   driving.SettingsService
	clipboardPort     driven.Clipboard
	watcherFactory    func(path string) (driven.ValueWatcher, error)
	logPath           string
)

var rootCmd = &cobra.Command{
	Use:   "composer",
	Short: "Rich-text message composer",
	Long: `composer edits chat messages with formatting, lists, @mentions and
auto-linked URLs, and converts stored messages between the canonical
document form, legacy markup and plain text.

Run 'composer compose' to open the terminal composer.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug logs to stderr")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with ctx, which is cancelled on
// interrupt by main.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// SetVersion sets the version reported by 'composer version'.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Services holds the ports the commands depend on.
type Services struct {
	Conversion driving.ConversionService
	Composer   driving.ComposerFactory
	Drafts     driving.DraftService
	Directory  driving.DirectoryService
	Settings   driving.SettingsService
	Clipboard  driven.Clipboard

	// Watcher opens a watcher for 'compose --file'.
	Watcher func(path string) (driven.ValueWatcher, error)

	// LogPath receives verbose logs while the terminal composer runs.
	LogPath string
}

// SetServices injects the services used by the commands.
func SetServices(s Services) {
	conversionService = s.Conversion
	composerFactory = s.Composer
	draftService = s.Drafts
	directoryService = s.Directory
	settingsService = s.Settings
	clipboardPort = s.Clipboard
	watcherFactory = s.Watcher
	logPath = s.LogPath
}

func currentServices() Services {
	return Services{
		Conversion: conversionService,
		Composer:   composerFactory,
		Drafts:     draftService,
		Directory:  directoryService,
		Settings:   settingsService,
		Clipboard:  clipboardPort,
		Watcher:    watcherFactory,
		LogPath:    logPath,
	}
}
