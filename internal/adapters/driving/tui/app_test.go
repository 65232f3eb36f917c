package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/composer/internal/adapters/driven/clipboard"
	"github.com/custodia-labs/composer/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/composer/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/composer/internal/codecs/canonical"
	"github.com/custodia-labs/composer/internal/codecs/markup"
	"github.com/custodia-labs/composer/internal/codecs/plaintext"
	"github.com/custodia-labs/composer/internal/core/domain"
	"github.com/custodia-labs/composer/internal/core/services"
)

type testEnv struct {
	conversion *services.ConversionService
	drafts     *services.DraftService
	clipboard  *clipboard.Memory
}

func newTestApp(t *testing.T, opts Options) (*App, *testEnv) {
	t.Helper()
	conversion := services.NewConversionService(plaintext.New(), markup.New(), canonical.New())
	env := &testEnv{
		conversion: conversion,
		drafts:     services.NewDraftService(memory.NewDraftStore(), conversion, 0),
		clipboard:  clipboard.NewMemory(),
	}
	app, err := NewApp(&Ports{
		Composer:  services.NewComposerService(conversion, nil),
		Drafts:    env.drafts,
		Directory: services.NewDirectoryService(memory.NewMemberStore(), nil),
		Clipboard: env.clipboard,
	}, opts)
	require.NoError(t, err)
	app.SetDimensions(80, 24)
	return app, env
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeKeys(a *App, text string) tea.Cmd {
	var cmd tea.Cmd
	for _, r := range text {
		if r == ' ' {
			_, cmd = a.Update(tea.KeyMsg{Type: tea.KeySpace})
			continue
		}
		_, cmd = a.Update(runes(string(r)))
	}
	return cmd
}

// collect runs cmd and any batched commands, returning their messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func plain(t *testing.T, env *testEnv, value string) string {
	t.Helper()
	out, err := env.conversion.Convert(value, domain.FormatPlain)
	require.NoError(t, err)
	return out
}

func TestNewApp_ValidatesPorts(t *testing.T) {
	_, err := NewApp(nil, Options{})
	assert.ErrorIs(t, err, ErrInvalidPorts)

	_, err = NewApp(&Ports{}, Options{})
	assert.ErrorIs(t, err, ErrMissingComposer)
}

func TestApp_ViewBeforeSize(t *testing.T) {
	app, _ := newTestApp(t, Options{})
	app.ready = false

	assert.Equal(t, "Initialising...", app.View())
}

func TestApp_TypingRendersAndMarksDirty(t *testing.T) {
	app, _ := newTestApp(t, Options{Channel: "general"})

	typeKeys(app, "hello world")

	assert.True(t, app.Dirty())
	assert.True(t, app.Typing())
	view := ansi.Strip(app.View())
	assert.Contains(t, view, "hello world")
	assert.Contains(t, view, "#general")
	assert.Contains(t, view, "unsaved")
}

func TestApp_EnterSubmitsAndClears(t *testing.T) {
	app, env := newTestApp(t, Options{Channel: "general"})
	ctx := context.Background()
	typeKeys(app, "ship it")
	_, err := env.drafts.Save(ctx, "general", app.Composer().Value())
	require.NoError(t, err)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.Len(t, app.Sent(), 1)
	assert.Equal(t, "ship it", plain(t, env, app.Sent()[0]))
	assert.Empty(t, app.Composer().PlainText())
	assert.False(t, app.Dirty())

	msgs := collect(cmd)
	require.Len(t, msgs, 1)
	assert.IsType(t, messages.Submitted{}, msgs[0])
	_, err = env.drafts.ForChannel(ctx, "general")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApp_EnterOnEmptyDoesNotSubmit(t *testing.T) {
	app, _ := newTestApp(t, Options{})

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Empty(t, app.Sent())
}

func TestApp_QuitOnSubmit(t *testing.T) {
	app, _ := newTestApp(t, Options{QuitOnSubmit: true})
	typeKeys(app, "bye")

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	assert.Len(t, app.Sent(), 1)
}

func TestApp_NewlineDoesNotSubmit(t *testing.T) {
	app, env := newTestApp(t, Options{})
	typeKeys(app, "one")

	app.Update(tea.KeyMsg{Type: tea.KeyCtrlJ})
	typeKeys(app, "two")

	assert.Empty(t, app.Sent())
	assert.Equal(t, "one\ntwo", plain(t, env, app.Composer().Value()))
}

func TestApp_MentionSuggestions(t *testing.T) {
	app, env := newTestApp(t, Options{})
	app.Update(messages.DirectoryLoaded{Members: []domain.Mention{
		{ID: "u1", Name: "Ada"},
		{ID: "u2", Name: "Alan"},
	}})

	typeKeys(app, "hi @ad")

	view := ansi.Strip(app.View())
	assert.Contains(t, view, "@Ada")
	assert.NotContains(t, view, "@Alan")

	app.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Empty(t, app.Sent(), "enter commits the mention instead of sending")
	assert.Equal(t, "hi @Ada ", plain(t, env, app.Composer().Value()))
	assert.Equal(t, []domain.Mention{{ID: "u1", Name: "Ada"}}, app.mentions)
}

func TestApp_BracketedPasteLinksURL(t *testing.T) {
	app, _ := newTestApp(t, Options{})

	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("https://go.dev"), Paste: true})

	block := app.Composer().Snapshot().Doc.Blocks[0]
	linked := block.URL == "https://go.dev"
	for _, r := range block.Runs {
		linked = linked || r.URL == "https://go.dev"
	}
	assert.True(t, linked)
	assert.Equal(t, "https://go.dev", app.Composer().PlainText())
}

func TestApp_ClipboardPaste(t *testing.T) {
	app, env := newTestApp(t, Options{})
	require.NoError(t, env.clipboard.WriteText("from clipboard"))

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlV})
	msgs := collect(cmd)
	require.Len(t, msgs, 1)
	app.Update(msgs[0])

	assert.Equal(t, "from clipboard", app.Composer().PlainText())
}

func TestApp_CopyWritesPlainText(t *testing.T) {
	app, env := newTestApp(t, Options{})
	typeKeys(app, "copy me")

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}, Alt: true})
	for _, msg := range collect(cmd) {
		app.Update(msg)
	}

	text, err := env.clipboard.ReadText()
	require.NoError(t, err)
	assert.Equal(t, "copy me", text)
	assert.Contains(t, ansi.Strip(app.View()), "copied")
}

func TestApp_MissingClipboard(t *testing.T) {
	app, _ := newTestApp(t, Options{})
	app.ports.Clipboard = nil

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlV})
	for _, msg := range collect(cmd) {
		app.Update(msg)
	}

	assert.ErrorIs(t, app.Err(), ErrNoClipboard)
}

func TestApp_FormattingBindings(t *testing.T) {
	app, _ := newTestApp(t, Options{})

	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'i'}, Alt: true})
	app.Update(tea.KeyMsg{Type: tea.KeyCtrlB})

	marks := app.Composer().Snapshot().Marks
	assert.True(t, marks.Italic)
	assert.True(t, marks.Bold)

	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'l'}, Alt: true})
	assert.Equal(t, domain.KindBulletedList, app.Composer().Snapshot().List)
}

func TestApp_RestoresDraft(t *testing.T) {
	app, env := newTestApp(t, Options{Channel: "general"})
	_, err := env.drafts.Save(context.Background(), "general", "draft text")
	require.NoError(t, err)

	for _, msg := range collect(app.loadDraft()) {
		app.Update(msg)
	}

	assert.Equal(t, "draft text", app.Composer().PlainText())
	assert.False(t, app.Dirty())
}

func TestApp_AutosaveTick(t *testing.T) {
	app, env := newTestApp(t, Options{Channel: "general", AutosaveEvery: 1})
	typeKeys(app, "keep me")

	_, cmd := app.Update(messages.AutosaveTick{})
	require.NotNil(t, cmd)
	app.Update(collect(app.saveDraft(true))[0])

	d, err := env.drafts.ForChannel(context.Background(), "general")
	require.NoError(t, err)
	assert.Equal(t, "keep me", d.Preview)
	assert.False(t, app.Dirty())
	assert.Contains(t, ansi.Strip(app.View()), "draft saved")
}

func TestApp_AutosaveSkippedWithoutChannel(t *testing.T) {
	app, _ := newTestApp(t, Options{})
	typeKeys(app, "no channel")

	_, cmd := app.Update(messages.AutosaveTick{})

	assert.Nil(t, cmd, "autosave disabled and no tick interval")
	assert.True(t, app.Dirty())
}

func TestApp_ExternalValueReplacesContent(t *testing.T) {
	app, _ := newTestApp(t, Options{})
	typeKeys(app, "local")

	app.Update(messages.ExternalValue{Value: "<p>from <b>disk</b></p>"})

	assert.Equal(t, "from disk", app.Composer().PlainText())
}

func TestApp_WatchStopped(t *testing.T) {
	app, _ := newTestApp(t, Options{})
	values := make(chan string)
	close(values)

	_, cmd := app.Update(messages.WatchStarted{Values: values})
	msgs := collect(cmd)

	require.Len(t, msgs, 1)
	assert.IsType(t, messages.WatchStopped{}, msgs[0])
}

func TestApp_QuitWithoutDrafts(t *testing.T) {
	app, _ := newTestApp(t, Options{})

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestApp_HelpToggle(t *testing.T) {
	app, _ := newTestApp(t, Options{})

	app.Update(tea.KeyMsg{Type: tea.KeyF1})

	assert.Contains(t, ansi.Strip(app.View()), "save draft")
}

func TestApp_PlainModeHints(t *testing.T) {
	app, _ := newTestApp(t, Options{Mode: domain.ModePlain})
	typeKeys(app, "a")

	view := ansi.Strip(app.View())

	assert.Contains(t, view, "plain")
	assert.Contains(t, view, "ctrl+v: paste")
}
