package services

import (
	"unicode"

	"github.com/custodia-labs/composer/internal/core/domain"
	"github.com/custodia-labs/composer/internal/core/editor"
	"github.com/custodia-labs/composer/internal/core/ports/driving"
	"github.com/custodia-labs/composer/internal/core/suggest"
	"github.com/custodia-labs/composer/internal/core/trigger"
	"github.com/custodia-labs/composer/internal/logger"
)

// Ensure ComposerService implements the interface.
var _ driving.ComposerFactory = (*ComposerService)(nil)

// Ensure Composer implements the interface.
var _ driving.Composer = (*Composer)(nil)

// ComposerService creates composer sessions configured from settings.
type ComposerService struct {
	conversion driving.ConversionService
	settings   driving.SettingsService
}

// NewComposerService creates a composer factory. settings may be nil,
// in which case the defaults apply.
func NewComposerService(conversion driving.ConversionService, settings driving.SettingsService) *ComposerService {
	return &ComposerService{conversion: conversion, settings: settings}
}

// NewComposer creates a session bound to opts.
func (s *ComposerService) NewComposer(opts driving.ComposerOptions) driving.Composer {
	cfg := domain.DefaultSettings()
	if s.settings != nil {
		if loaded, err := s.settings.Get(); err == nil {
			cfg = *loaded
		} else {
			logger.Warn("composer settings unavailable, using defaults: %v", err)
		}
	}
	if !opts.Mode.IsValid() {
		opts.Mode = cfg.Mode
	}
	return NewComposer(s.conversion, opts, cfg.MaxCandidates, cfg.HistoryLimit)
}

// Composer is one editing session. It owns the editor state, the command
// history and the suggestion controller, and reports changes to the host
// through the callbacks in its options.
//
// A Composer is not safe for concurrent use; the TUI drives it from its
// update loop.
type Composer struct {
	conversion driving.ConversionService
	opts       driving.ComposerOptions
	mode       domain.Mode
	disabled   bool

	state    editor.State
	history  *editor.History
	suggest  *suggest.Controller
	lastSent string
	hasValue bool
}

// NewComposer creates a session over conversion, loading opts.Value.
func NewComposer(conversion driving.ConversionService, opts driving.ComposerOptions, maxCandidates, historyLimit int) *Composer {
	mode := opts.Mode
	if !mode.IsValid() {
		mode = domain.ModeRich
	}
	c := &Composer{
		conversion: conversion,
		opts:       opts,
		mode:       mode,
		disabled:   opts.Disabled,
		history:    editor.NewHistory(historyLimit),
		suggest:    suggest.New(opts.Directory, maxCandidates),
		lastSent:   opts.Value,
	}
	c.state = editor.NewStateAtEnd(c.load(opts.Value))
	c.hasValue = !c.state.Doc.FirstBlockEmpty()
	return c
}

func (c *Composer) load(value string) domain.Document {
	if value == "" {
		return domain.EmptyDocument()
	}
	if c.mode == domain.ModePlain {
		return domain.NewDocument(domain.Paragraph(domain.TextRun(value)))
	}
	return c.conversion.Load(value)
}

func (c *Composer) rich() bool {
	return c.mode == domain.ModeRich
}

// HandleKey processes a key press and reports whether it was consumed.
func (c *Composer) HandleKey(ev domain.KeyEvent) bool {
	if c.disabled {
		return false
	}
	if c.rich() && c.suggest.Active() {
		consumed, commit := c.suggest.HandleKey(ev)
		if commit != nil {
			c.edit("mention", func(st editor.State) editor.State {
				return editor.InsertMention(st, commit.Range, commit.Member)
			})
		}
		if consumed {
			return true
		}
	}
	if ev.IsShortcut() {
		return c.shortcut(ev)
	}

	switch ev.Key {
	case domain.KeyRune:
		if ev.Alt || !unicode.IsPrint(ev.Rune) {
			return false
		}
		c.typeRune(ev.Rune)
	case domain.KeyEnter:
		// Enter inside a link leaves it instead of submitting.
		if c.rich() && editor.IsLinkActive(c.state) {
			c.newline()
			return true
		}
		if !ev.Shift && c.opts.OnSubmit != nil {
			c.opts.OnSubmit()
			return true
		}
		c.newline()
	case domain.KeyTab:
		if !c.rich() {
			return false
		}
		if _, inList := editor.CurrentList(c.state); !inList {
			return false
		}
		if ev.Shift {
			c.edit("outdent", editor.OutdentList)
		} else {
			c.edit("indent", editor.IndentList)
		}
	case domain.KeyBackspace:
		if c.rich() {
			c.edit("backspace", editor.Backspace)
		} else {
			c.edit("backspace", editor.DeleteBackward)
		}
	case domain.KeyDelete:
		c.edit("delete", editor.DeleteForward)
	case domain.KeyLeft:
		c.move(editor.Left, ev.Shift)
	case domain.KeyRight:
		c.move(editor.Right, ev.Shift)
	case domain.KeyUp:
		c.move(editor.Up, ev.Shift)
	case domain.KeyDown:
		c.move(editor.Down, ev.Shift)
	case domain.KeyHome:
		c.move(editor.LineStart, ev.Shift)
	case domain.KeyEnd:
		c.move(editor.LineEnd, ev.Shift)
	default:
		return false
	}
	return true
}

// shortcut handles Ctrl or Meta chords.
func (c *Composer) shortcut(ev domain.KeyEvent) bool {
	if ev.Key == domain.KeyEnter {
		c.newline()
		return true
	}
	if ev.Key != domain.KeyRune {
		return false
	}
	switch unicode.ToLower(ev.Rune) {
	case 'b':
		c.ToggleMark(domain.MarkBold)
	case 'i':
		c.ToggleMark(domain.MarkItalic)
	case 'u':
		c.ToggleMark(domain.MarkUnderline)
	case 's':
		c.ToggleMark(domain.MarkStrikethrough)
	case 'z':
		if ev.Shift {
			c.Redo()
		} else {
			c.Undo()
		}
	case 'y':
		c.Redo()
	case 'a':
		c.state = editor.SelectAll(c.state)
		c.suggest.Dismiss()
	default:
		return false
	}
	return true
}

func (c *Composer) typeRune(r rune) {
	if !c.rich() {
		c.edit("insert", editor.Insert(string(r)))
		return
	}
	if r == ' ' {
		if _, ok := editor.AutoListFormat(c.state); ok {
			c.edit("auto-list", func(st editor.State) editor.State {
				out, _ := editor.AutoListFormat(st)
				return out
			})
			return
		}
		c.edit("insert", editor.Pipeline(editor.ExitLinkWrap, editor.Insert(" ")))
		return
	}
	c.edit("insert", editor.Insert(string(r)))
}

func (c *Composer) newline() {
	if !c.rich() {
		c.edit("newline", func(st editor.State) editor.State {
			return editor.InsertLiteral(st, "\n")
		})
		return
	}
	c.edit("split", editor.Pipeline(editor.ExitLinkWrap, editor.SplitBlock))
}

func (c *Composer) move(dir editor.Direction, extend bool) {
	c.state = editor.Move(c.state, dir, extend)
	c.observe()
}

// edit applies pass through the history, runs the auto-link step and
// refreshes the suggestion state, then emits the new value.
func (c *Composer) edit(name string, pass editor.Pass) {
	if c.rich() {
		pass = editor.Pipeline(pass, trigger.Pass())
	}
	c.state = c.history.Apply(name, pass, c.state)
	c.observe()
	c.emit()
}

// observe feeds the scan at the caret to the suggestion controller.
func (c *Composer) observe() {
	if !c.rich() {
		return
	}
	c.suggest.Observe(trigger.Scan(c.state))
}

// emit serialises the document and notifies the host when the value
// differs from the last one it was sent.
func (c *Composer) emit() {
	value, err := c.conversion.Save(c.state.Doc, c.mode)
	if err != nil {
		logger.Warn("composer value not emitted: %v", err)
		return
	}
	c.signalTyping()
	if value == c.lastSent {
		return
	}
	c.lastSent = value
	if c.opts.OnChange != nil {
		c.opts.OnChange(value)
	}
	if c.opts.OnMentions != nil {
		c.opts.OnMentions(c.state.Doc.Mentions())
	}
}

func (c *Composer) signalTyping() {
	has := !c.state.Doc.FirstBlockEmpty()
	if has == c.hasValue {
		return
	}
	c.hasValue = has
	if c.opts.OnTyping != nil {
		c.opts.OnTyping(has)
	}
}

// InsertText types text at the caret.
func (c *Composer) InsertText(text string) {
	if c.disabled || text == "" {
		return
	}
	if !c.rich() {
		c.edit("insert", func(st editor.State) editor.State {
			return editor.InsertLiteral(st, text)
		})
		return
	}
	c.edit("insert", editor.Insert(text))
}

// Paste inserts clipboard text.
func (c *Composer) Paste(text string) {
	if c.disabled || text == "" {
		return
	}
	if !c.rich() {
		c.InsertText(text)
		return
	}
	c.edit("paste", func(st editor.State) editor.State {
		return editor.Paste(st, text)
	})
}

// SetValue applies a value changed by the host. The value last emitted
// is ignored so a host echoing onChange back does not reset the caret.
// An empty value clears the content and its formatting.
func (c *Composer) SetValue(value string) {
	if value == c.lastSent {
		return
	}
	c.lastSent = value
	c.history.Clear()
	c.suggest.Dismiss()
	if value == "" {
		c.state = editor.NewState(domain.EmptyDocument())
	} else {
		c.state = editor.NewStateAtEnd(c.load(value))
	}
	logger.Debug("composer value replaced (%d bytes)", len(value))
	c.signalTyping()
}

// Value returns the serialised value last emitted or applied.
func (c *Composer) Value() string {
	return c.lastSent
}

// PlainText returns the document as plain text.
func (c *Composer) PlainText() string {
	out, err := c.conversion.Encode(c.state.Doc, domain.FormatPlain)
	if err != nil {
		return ""
	}
	return out
}

// Document returns a copy of the current document.
func (c *Composer) Document() domain.Document {
	return c.state.Doc.Clone()
}

// Snapshot returns the current render state.
func (c *Composer) Snapshot() driving.ComposerSnapshot {
	snap := driving.ComposerSnapshot{
		Doc:       c.state.Doc.Clone(),
		Selection: c.state.Selection,
		Mode:      c.mode,
		Disabled:  c.disabled,
		CanUndo:   c.history.CanUndo(),
		CanRedo:   c.history.CanRedo(),
	}
	if !c.rich() {
		return snap
	}
	snap.Marks = editor.MarksAt(c.state, c.state.Selection.Range())
	if kind, ok := editor.CurrentList(c.state); ok {
		snap.List = kind
	}
	snap.InLink = editor.IsLinkActive(c.state)
	if c.suggest.Status() == suggest.Suggesting {
		snap.Suggestion = driving.SuggestionView{
			Open:        true,
			Prefix:      c.suggest.Prefix(),
			Candidates:  c.suggest.Candidates(),
			Highlighted: c.suggest.Highlighted(),
			Anchor:      c.suggest.Anchor(),
		}
	}
	return snap
}

// ToggleMark toggles mark over the selection. Plain composers ignore it.
func (c *Composer) ToggleMark(mark domain.Mark) {
	if c.disabled || !c.rich() {
		return
	}
	c.edit("mark "+string(mark), editor.Mark(mark))
}

// ToggleList toggles a list of kind over the selection.
func (c *Composer) ToggleList(kind domain.BlockKind) {
	if c.disabled || !c.rich() {
		return
	}
	c.edit("list "+string(kind), editor.ListOf(kind))
}

// Indent raises the indent of the selected blocks.
func (c *Composer) Indent() {
	if c.disabled || !c.rich() {
		return
	}
	c.edit("indent", editor.IndentList)
}

// Outdent lowers the indent of the selected blocks.
func (c *Composer) Outdent() {
	if c.disabled || !c.rich() {
		return
	}
	c.edit("outdent", editor.OutdentList)
}

// Undo reverts the last command.
func (c *Composer) Undo() bool {
	if c.disabled {
		return false
	}
	st, ok := c.history.Undo()
	if !ok {
		return false
	}
	c.state = st
	c.observe()
	c.emit()
	return true
}

// Redo re-applies the last undone command.
func (c *Composer) Redo() bool {
	if c.disabled {
		return false
	}
	st, ok := c.history.Redo()
	if !ok {
		return false
	}
	c.state = st
	c.observe()
	c.emit()
	return true
}

// SetDirectory replaces the mention directory.
func (c *Composer) SetDirectory(directory []domain.Mention) {
	c.opts.Directory = directory
	c.suggest.SetDirectory(directory)
}

// SetDisabled enables or disables editing.
func (c *Composer) SetDisabled(disabled bool) {
	c.disabled = disabled
	if disabled {
		c.suggest.Dismiss()
	}
}

// ResetFormatting clears marks, lists and indents in the document.
func (c *Composer) ResetFormatting() {
	if c.disabled || !c.rich() {
		return
	}
	c.edit("reset formatting", editor.ResetFormatting)
}

// Clear resets the content, marks and lists, keeping the clear undoable.
func (c *Composer) Clear() {
	if c.disabled {
		return
	}
	c.edit("clear", func(editor.State) editor.State {
		return editor.NewState(domain.EmptyDocument())
	})
}
