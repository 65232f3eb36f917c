package cli

import (
	"bytes"
	"context"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/composer/internal/adapters/driven/clipboard"
	"github.com/custodia-labs/composer/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/composer/internal/codecs/canonical"
	"github.com/custodia-labs/composer/internal/codecs/markup"
	"github.com/custodia-labs/composer/internal/codecs/plaintext"
	"github.com/custodia-labs/composer/internal/core/domain"
	"github.com/custodia-labs/composer/internal/core/services"
)

// testServices are the services installed by setupTestServices.
type testServices struct {
	Services
	clipboard *clipboard.Memory
	config    *memory.ConfigStore
}

// setupTestServices installs memory-backed services with two members,
// Ada and Alan, and returns a func restoring the previous ones.
func setupTestServices() (*testServices, func()) {
	previous := currentServices()

	config := memory.NewConfigStore()
	conversion := services.NewConversionService(plaintext.New(), markup.New(), canonical.New())
	settings := services.NewSettingsService(config)
	members := memory.NewMemberStore(
		domain.Mention{ID: "u1", Name: "Ada"},
		domain.Mention{ID: "u2", Name: "Alan"},
	)
	clip := clipboard.NewMemory()

	ts := &testServices{
		Services: Services{
			Conversion: conversion,
			Composer:   services.NewComposerService(conversion, settings),
			Drafts:     services.NewDraftService(memory.NewDraftStore(), conversion, 0),
			Directory:  services.NewDirectoryService(members, config),
			Settings:   settings,
			Clipboard:  clip,
		},
		clipboard: clip,
		config:    config,
	}
	SetServices(ts.Services)

	return ts, func() {
		SetServices(previous)
		resetFlags(rootCmd)
	}
}

// resetFlags restores every flag in the tree, and the variable behind
// it, to its default so runs do not leak into each other.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// execute runs the root command with args and stdin, returning its output.
func execute(stdin string, args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		resetFlags(rootCmd)
	}()

	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}
