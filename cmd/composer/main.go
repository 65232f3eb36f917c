// Command composer is the terminal rich-text message composer.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/custodia-labs/composer/internal/adapters/driven/clipboard"
	"github.com/custodia-labs/composer/internal/adapters/driven/config/file"
	"github.com/custodia-labs/composer/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/composer/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/composer/internal/adapters/driven/watch"
	"github.com/custodia-labs/composer/internal/adapters/driving/cli"
	"github.com/custodia-labs/composer/internal/codecs/canonical"
	"github.com/custodia-labs/composer/internal/codecs/markup"
	"github.com/custodia-labs/composer/internal/codecs/plaintext"
	"github.com/custodia-labs/composer/internal/core/ports/driven"
	"github.com/custodia-labs/composer/internal/core/services"
	"github.com/custodia-labs/composer/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "composer: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("getting home directory: %w", err)
	}
	baseDir := filepath.Join(home, ".composer")

	configStore, err := file.NewConfigStore(baseDir)
	if err != nil {
		return err
	}

	var (
		draftStore  driven.DraftStore
		memberStore driven.MemberStore
	)
	store, err := sqlite.NewStore(filepath.Join(baseDir, "data"))
	if err != nil {
		logger.Warn("draft database unavailable, drafts will not persist: %v", err)
		draftStore = memory.NewDraftStore()
		memberStore = memory.NewMemberStore()
	} else {
		defer store.Close()
		draftStore = store.DraftStore()
		memberStore = store.MemberStore()
	}

	settingsService := services.NewSettingsService(configStore)
	conversionService := services.NewConversionService(plaintext.New(), markup.New(), canonical.New())

	autosave := time.Duration(settingsService.GetDefaults().AutosaveIntervalMs) * time.Millisecond
	if settings, err := settingsService.Get(); err == nil {
		autosave = time.Duration(settings.AutosaveIntervalMs) * time.Millisecond
	}

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Conversion: conversionService,
		Composer:   services.NewComposerService(conversionService, settingsService),
		Drafts:     services.NewDraftService(draftStore, conversionService, autosave),
		Directory:  services.NewDirectoryService(memberStore, configStore),
		Settings:   settingsService,
		Clipboard:  clipboard.New(),
		Watcher: func(path string) (driven.ValueWatcher, error) {
			return watch.NewFileWatcher(path)
		},
		LogPath: filepath.Join(baseDir, "composer.log"),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return cli.ExecuteContext(ctx)
}
