// Package keymap defines keybindings for the composer TUI.
//
// Terminals deliver Ctrl+I as Tab and Ctrl+M as Enter, so italics and
// newlines get alternative bindings here. Bindings not listed are passed
// to the composer as key events.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the composer.
type KeyMap struct {
	// Quit saves the draft and exits.
	Quit key.Binding

	// Help toggles the full key reference.
	Help key.Binding

	// Submit sends the message.
	Submit key.Binding

	// Newline splits the block without sending.
	Newline key.Binding

	// Bold toggles bold.
	Bold key.Binding

	// Italic toggles italic.
	Italic key.Binding

	// Underline toggles underline.
	Underline key.Binding

	// Strikethrough toggles strikethrough.
	Strikethrough key.Binding

	// BulletList toggles a bulleted list.
	BulletList key.Binding

	// NumberedList toggles a numbered list.
	NumberedList key.Binding

	// ResetFormatting clears marks, lists and indents.
	ResetFormatting key.Binding

	// Undo reverts the last edit.
	Undo key.Binding

	// Redo re-applies the last undone edit.
	Redo key.Binding

	// Paste inserts the clipboard contents.
	Paste key.Binding

	// Copy copies the message as plain text.
	Copy key.Binding

	// SaveDraft saves the draft immediately.
	SaveDraft key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+d"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "help"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "send"),
		),
		Newline: key.NewBinding(
			key.WithKeys("ctrl+j", "alt+enter"),
			key.WithHelp("ctrl+j", "newline"),
		),
		Bold: key.NewBinding(
			key.WithKeys("ctrl+b"),
			key.WithHelp("ctrl+b", "bold"),
		),
		Italic: key.NewBinding(
			key.WithKeys("alt+i"),
			key.WithHelp("alt+i", "italic"),
		),
		Underline: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "underline"),
		),
		Strikethrough: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "strike"),
		),
		BulletList: key.NewBinding(
			key.WithKeys("alt+l"),
			key.WithHelp("alt+l", "bullets"),
		),
		NumberedList: key.NewBinding(
			key.WithKeys("alt+n"),
			key.WithHelp("alt+n", "numbers"),
		),
		ResetFormatting: key.NewBinding(
			key.WithKeys("alt+r"),
			key.WithHelp("alt+r", "plain"),
		),
		Undo: key.NewBinding(
			key.WithKeys("ctrl+z"),
			key.WithHelp("ctrl+z", "undo"),
		),
		Redo: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "redo"),
		),
		Paste: key.NewBinding(
			key.WithKeys("ctrl+v"),
			key.WithHelp("ctrl+v", "paste"),
		),
		Copy: key.NewBinding(
			key.WithKeys("alt+c"),
			key.WithHelp("alt+c", "copy"),
		),
		SaveDraft: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "save draft"),
		),
	}
}

// ShortHelp returns the hints shown in the status bar.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Newline, k.Help, k.Quit}
}

// PlainHelp returns the hints shown in plain mode.
func (k *KeyMap) PlainHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Newline, k.Paste, k.Quit}
}

// FullHelp returns the full list of keybindings for the help panel.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Newline, k.Undo, k.Redo},
		{k.Bold, k.Italic, k.Underline, k.Strikethrough},
		{k.BulletList, k.NumberedList, k.ResetFormatting},
		{k.Paste, k.Copy, k.SaveDraft, k.Quit},
	}
}
