package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/composer/internal/adapters/driving/tui/components/popover"
	"github.com/custodia-labs/composer/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/composer/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/composer/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/composer/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/composer/internal/adapters/driving/tui/views/editor"
	"github.com/custodia-labs/composer/internal/core/domain"
	"github.com/custodia-labs/composer/internal/core/ports/driven"
	"github.com/custodia-labs/composer/internal/core/ports/driving"
	"github.com/custodia-labs/composer/internal/logger"
)

// Options configures a composer session in the terminal.
type Options struct {
	// Channel names the conversation. Drafts are kept per channel;
	// an empty channel disables drafts.
	Channel string

	// Mode selects rich or plain editing. Empty uses the configured mode.
	Mode domain.Mode

	// Value is the initial value. When empty, the channel draft is restored.
	Value string

	// Watcher mirrors the value to a file and applies external edits.
	Watcher driven.ValueWatcher

	// AutosaveEvery is the autosave tick. Zero disables autosave.
	AutosaveEvery time.Duration

	// QuitOnSubmit exits after the first message is sent.
	QuitOnSubmit bool

	// Placeholder is shown while the composer is empty.
	Placeholder string
}

// App is the terminal composer following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports *Ports
	opts  Options
	ctx   context.Context

	styles  *styles.Styles
	keymap  *keymap.KeyMap
	help    help.Model
	editor  *editor.View
	popover *popover.Popover
	status  *status.Bar

	composer driving.Composer

	// dirty is set by every change and cleared once the draft is saved.
	dirty bool

	// submitPending is set by the composer's submit callback and consumed
	// after the key that triggered it.
	submitPending bool

	// values delivers externally written values once watching starts.
	values <-chan string

	typing   bool
	mentions []domain.Mention
	sent     []string
	showHelp bool
	err      error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a terminal composer with the given ports.
func NewApp(ports *Ports, opts Options) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	a := &App{
		ports:   ports,
		opts:    opts,
		ctx:     context.Background(),
		styles:  s,
		keymap:  km,
		help:    help.New(),
		editor:  editor.NewView(s, opts.Placeholder),
		popover: popover.New(s),
		status:  status.NewBar(s, km),
	}

	a.composer = ports.Composer.NewComposer(driving.ComposerOptions{
		Mode:       opts.Mode,
		Value:      opts.Value,
		OnChange:   a.onChange,
		OnSubmit:   func() { a.submitPending = true },
		OnTyping:   func(has bool) { a.typing = has },
		OnMentions: func(m []domain.Mention) { a.mentions = m },
	})
	a.typing = strings.TrimSpace(a.composer.PlainText()) != ""
	if opts.Channel != "" {
		a.status.SetMessage("#" + opts.Channel)
	}
	a.status.SetFormat(a.composer.Snapshot())
	return a, nil
}

// WithContext sets the context for background work.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

func (a *App) onChange(value string) {
	a.dirty = true
	if a.opts.Watcher != nil {
		if err := a.opts.Watcher.Write(value); err != nil {
			logger.Warn("mirroring value to watched file: %v", err)
		}
	}
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	title := "composer"
	if a.opts.Channel != "" {
		title += " #" + a.opts.Channel
	}
	cmds := []tea.Cmd{tea.SetWindowTitle(title), a.loadDirectory()}
	if a.opts.Value == "" {
		cmds = append(cmds, a.loadDraft())
	}
	if a.opts.Watcher != nil {
		cmds = append(cmds, a.startWatch())
	}
	cmds = append(cmds, a.tick())
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case messages.DirectoryLoaded:
		if msg.Err != nil {
			return a, a.fail(fmt.Errorf("loading directory: %w", msg.Err))
		}
		a.composer.SetDirectory(msg.Members)
		return a, nil

	case messages.DraftLoaded:
		if msg.Err != nil {
			return a, a.fail(fmt.Errorf("loading draft: %w", msg.Err))
		}
		if msg.Draft != nil && a.composer.Value() == "" {
			a.composer.SetValue(msg.Draft.Value)
			a.status.SetState(status.StateSaved)
			a.status.SetMessage(msg.Draft.UpdatedAt.Format("15:04"))
		}
		return a, nil

	case messages.AutosaveTick:
		if !a.dirty || !a.draftsEnabled() {
			return a, a.tick()
		}
		return a, tea.Batch(a.saveDraft(true), a.tick())

	case messages.DraftSaved:
		if msg.Err != nil {
			return a, a.fail(fmt.Errorf("saving draft: %w", msg.Err))
		}
		if !msg.Saved {
			return a, nil
		}
		a.status.SetState(status.StateSaved)
		if msg.Draft != nil && msg.Draft.Value == a.composer.Value() {
			a.dirty = false
			a.status.SetMessage(msg.Draft.UpdatedAt.Format("15:04"))
		} else {
			a.status.SetMessage("")
		}
		return a, nil

	case messages.WatchStarted:
		if msg.Err != nil {
			return a, a.fail(fmt.Errorf("watching file: %w", msg.Err))
		}
		a.values = msg.Values
		return a, a.nextValue()

	case messages.ExternalValue:
		a.composer.SetValue(msg.Value)
		a.dirty = true
		a.status.SetFormat(a.composer.Snapshot())
		return a, a.nextValue()

	case messages.WatchStopped:
		logger.Debug("file watcher stopped")
		return a, nil

	case messages.ClipboardRead:
		if msg.Err != nil {
			return a, a.fail(fmt.Errorf("reading clipboard: %w", msg.Err))
		}
		a.composer.Paste(msg.Text)
		return a, a.afterEdit()

	case messages.ClipboardWritten:
		if msg.Err != nil {
			return a, a.fail(fmt.Errorf("writing clipboard: %w", msg.Err))
		}
		a.status.SetState(status.StateReady)
		a.status.SetMessage("copied")
		return a, nil

	case messages.Submitted:
		a.status.SetState(status.StateSent)
		a.status.SetMessage("")
		return a, nil

	case messages.ErrorOccurred:
		return a, a.fail(msg.Err)

	case messages.Quit:
		return a, a.quit()
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keymap.Quit):
		return a, a.quit()
	case key.Matches(msg, a.keymap.Help):
		a.showHelp = !a.showHelp
		return a, nil
	case msg.Paste:
		a.composer.Paste(string(msg.Runes))
		return a, a.afterEdit()
	case key.Matches(msg, a.keymap.Paste):
		return a, a.readClipboard()
	case key.Matches(msg, a.keymap.Copy):
		return a, a.writeClipboard(a.composer.PlainText())
	case key.Matches(msg, a.keymap.SaveDraft):
		if !a.draftsEnabled() {
			return a, nil
		}
		return a, a.saveDraft(false)
	case key.Matches(msg, a.keymap.Italic):
		a.composer.ToggleMark(domain.MarkItalic)
		return a, a.afterEdit()
	case key.Matches(msg, a.keymap.BulletList):
		a.composer.ToggleList(domain.KindBulletedList)
		return a, a.afterEdit()
	case key.Matches(msg, a.keymap.NumberedList):
		a.composer.ToggleList(domain.KindNumberedList)
		return a, a.afterEdit()
	case key.Matches(msg, a.keymap.ResetFormatting):
		a.composer.ResetFormatting()
		return a, a.afterEdit()
	}

	if ev, ok := keyEvent(msg); ok {
		a.composer.HandleKey(ev)
	} else if msg.Type == tea.KeyRunes {
		a.composer.InsertText(string(msg.Runes))
	}
	return a, a.afterEdit()
}

// afterEdit refreshes the status bar and sends a pending submit.
func (a *App) afterEdit() tea.Cmd {
	a.status.SetFormat(a.composer.Snapshot())
	if a.dirty && a.status.State() != status.StateError {
		a.status.SetState(status.StateEditing)
	}
	if !a.submitPending {
		return nil
	}
	a.submitPending = false
	return a.submit()
}

func (a *App) submit() tea.Cmd {
	if strings.TrimSpace(a.composer.PlainText()) == "" {
		return nil
	}
	value := a.composer.Value()
	a.sent = append(a.sent, value)
	a.composer.Clear()
	a.dirty = false
	a.status.SetFormat(a.composer.Snapshot())

	var cmds []tea.Cmd
	if a.draftsEnabled() {
		drafts, channel, ctx := a.ports.Drafts, a.opts.Channel, a.ctx
		cmds = append(cmds, func() tea.Msg {
			if err := drafts.Discard(ctx, channel); err != nil {
				return messages.ErrorOccurred{Err: fmt.Errorf("discarding draft: %w", err)}
			}
			return messages.Submitted{Value: value}
		})
	} else {
		cmds = append(cmds, func() tea.Msg { return messages.Submitted{Value: value} })
	}
	if a.opts.QuitOnSubmit {
		return tea.Sequence(tea.Batch(cmds...), tea.Quit)
	}
	return tea.Batch(cmds...)
}

func (a *App) quit() tea.Cmd {
	if a.dirty && a.draftsEnabled() {
		return tea.Sequence(a.saveDraft(false), tea.Quit)
	}
	return tea.Quit
}

func (a *App) fail(err error) tea.Cmd {
	a.err = err
	logger.Warn("%v", err)
	a.status.SetState(status.StateError)
	a.status.SetMessage(err.Error())
	return nil
}

func (a *App) draftsEnabled() bool {
	return a.ports.Drafts != nil && a.opts.Channel != ""
}

func (a *App) loadDirectory() tea.Cmd {
	if a.ports.Directory == nil {
		return nil
	}
	dir, ctx := a.ports.Directory, a.ctx
	return func() tea.Msg {
		members, err := dir.List(ctx)
		return messages.DirectoryLoaded{Members: members, Err: err}
	}
}

func (a *App) loadDraft() tea.Cmd {
	if !a.draftsEnabled() {
		return nil
	}
	drafts, channel, ctx := a.ports.Drafts, a.opts.Channel, a.ctx
	return func() tea.Msg {
		d, err := drafts.ForChannel(ctx, channel)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return messages.DraftLoaded{}
			}
			return messages.DraftLoaded{Err: err}
		}
		return messages.DraftLoaded{Draft: d}
	}
}

// saveDraft writes the current value. With throttle it goes through
// autosave and may be skipped.
func (a *App) saveDraft(throttle bool) tea.Cmd {
	drafts, channel, ctx := a.ports.Drafts, a.opts.Channel, a.ctx
	value := a.composer.Value()
	return func() tea.Msg {
		if throttle {
			saved, err := drafts.Autosave(ctx, channel, value)
			if err != nil || !saved {
				return messages.DraftSaved{Saved: saved, Err: err}
			}
			d, err := drafts.ForChannel(ctx, channel)
			if errors.Is(err, domain.ErrNotFound) {
				return messages.DraftSaved{Saved: true}
			}
			return messages.DraftSaved{Draft: d, Saved: true, Err: err}
		}
		d, err := drafts.Save(ctx, channel, value)
		return messages.DraftSaved{Draft: d, Saved: err == nil, Err: err}
	}
}

func (a *App) tick() tea.Cmd {
	if a.opts.AutosaveEvery <= 0 {
		return nil
	}
	return tea.Tick(a.opts.AutosaveEvery, func(t time.Time) tea.Msg {
		return messages.AutosaveTick{At: t}
	})
}

func (a *App) startWatch() tea.Cmd {
	w, ctx := a.opts.Watcher, a.ctx
	return func() tea.Msg {
		values, err := w.Watch(ctx)
		return messages.WatchStarted{Values: values, Err: err}
	}
}

func (a *App) nextValue() tea.Cmd {
	if a.values == nil {
		return nil
	}
	return waitForValue(a.values)
}

func waitForValue(values <-chan string) tea.Cmd {
	return func() tea.Msg {
		v, ok := <-values
		if !ok {
			return messages.WatchStopped{}
		}
		return messages.ExternalValue{Value: v}
	}
}

func (a *App) readClipboard() tea.Cmd {
	cb := a.ports.Clipboard
	return func() tea.Msg {
		if cb == nil {
			return messages.ClipboardRead{Err: ErrNoClipboard}
		}
		text, err := cb.ReadText()
		return messages.ClipboardRead{Text: text, Err: err}
	}
}

func (a *App) writeClipboard(text string) tea.Cmd {
	cb := a.ports.Clipboard
	return func() tea.Msg {
		if cb == nil {
			return messages.ClipboardWritten{Err: ErrNoClipboard}
		}
		return messages.ClipboardWritten{Err: cb.WriteText(text)}
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	snap := a.composer.Snapshot()
	sections := []string{a.viewHeader()}
	sections = append(sections, a.editor.Render(snap))
	if pop := a.popover.Render(snap.Suggestion); pop != "" {
		sections = append(sections, pop)
	}
	if a.showHelp {
		sections = append(sections, a.help.FullHelpView(a.keymap.FullHelp()))
	}

	body := lipgloss.JoinVertical(lipgloss.Left, sections...)
	gap := a.height - lipgloss.Height(body) - 1
	if gap > 0 {
		body += strings.Repeat("\n", gap)
	}
	return body + "\n" + a.status.View()
}

func (a *App) viewHeader() string {
	header := a.styles.Title.Render("composer")
	if a.opts.Channel != "" {
		header += " " + a.styles.Normal.Render("#"+a.opts.Channel)
	}
	if len(a.mentions) > 0 {
		names := make([]string, len(a.mentions))
		for i, m := range a.mentions {
			names[i] = "@" + m.Name
		}
		header += "  " + a.styles.Muted.Render("to "+strings.Join(names, ", "))
	}
	return header
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.editor.SetWidth(width)
	a.popover.SetWidth(min(width, 40))
	a.status.SetWidth(width)
	a.help.Width = width
}

// Composer returns the editing session.
func (a *App) Composer() driving.Composer {
	return a.composer
}

// Sent returns the values submitted so far, oldest first.
func (a *App) Sent() []string {
	return a.sent
}

// Typing reports whether the composer holds content.
func (a *App) Typing() bool {
	return a.typing
}

// Dirty reports whether changes have not been saved as a draft.
func (a *App) Dirty() bool {
	return a.dirty
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been sized.
func (a *App) Ready() bool {
	return a.ready
}
