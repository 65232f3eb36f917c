package driving

import "github.com/custodia-labs/composer/internal/core/domain"

// ComposerOptions configures a composer session.
type ComposerOptions struct {
	// Mode selects rich or plain editing.
	Mode domain.Mode

	// Value is the initial host value.
	Value string

	// Directory is the list of members that can be mentioned.
	Directory []domain.Mention

	// Disabled rejects every edit.
	Disabled bool

	// OnChange receives the serialised value after each content change.
	OnChange func(value string)

	// OnSubmit fires when Enter is pressed without modifiers and no
	// suggestion list is open.
	OnSubmit func()

	// OnTyping fires when the first block turns empty or non-empty.
	OnTyping func(hasValue bool)

	// OnMentions receives the mentions in the document after each change.
	OnMentions func(mentions []domain.Mention)
}

// SuggestionView is the render state of the suggestion list.
type SuggestionView struct {
	Open        bool
	Prefix      string
	Candidates  []domain.Mention
	Highlighted int
	Anchor      domain.Point
}

// ComposerSnapshot is everything a view needs to draw the composer.
type ComposerSnapshot struct {
	Doc        domain.Document
	Selection  domain.Selection
	Marks      domain.Marks
	List       domain.BlockKind
	InLink     bool
	Suggestion SuggestionView
	Mode       domain.Mode
	Disabled   bool
	CanUndo    bool
	CanRedo    bool
}

// Composer is one editing session bound to a host value.
type Composer interface {
	// HandleKey processes a key press and reports whether it was consumed.
	HandleKey(ev domain.KeyEvent) bool

	// InsertText types text at the caret.
	InsertText(text string)

	// Paste inserts clipboard text; a lone URL becomes a link.
	Paste(text string)

	// SetValue applies an externally changed host value.
	SetValue(value string)

	// Value returns the serialised value last emitted.
	Value() string

	// PlainText returns the document as plain text.
	PlainText() string

	// Snapshot returns the current render state.
	Snapshot() ComposerSnapshot

	// ToggleMark toggles a mark over the selection.
	ToggleMark(mark domain.Mark)

	// ToggleList toggles a list of kind over the selection.
	ToggleList(kind domain.BlockKind)

	// Indent raises the indent of the selected blocks.
	Indent()

	// Outdent lowers the indent of the selected blocks.
	Outdent()

	// ResetFormatting clears marks, lists and indents.
	ResetFormatting()

	// Undo reverts the last command.
	Undo() bool

	// Redo re-applies the last undone command.
	Redo() bool

	// SetDirectory replaces the mention directory.
	SetDirectory(directory []domain.Mention)

	// SetDisabled enables or disables editing.
	SetDisabled(disabled bool)

	// Clear resets the composer to an empty document.
	Clear()
}

// ComposerFactory creates composer sessions.
type ComposerFactory interface {
	// NewComposer creates a session.
	NewComposer(opts ComposerOptions) Composer
}
