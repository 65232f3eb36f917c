package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap_Keys(t *testing.T) {
	km := DefaultKeyMap()
	require.NotNil(t, km)

	tests := []struct {
		name    string
		binding key.Binding
		keys    []string
	}{
		{"quit", km.Quit, []string{"ctrl+c", "ctrl+d"}},
		{"submit", km.Submit, []string{"enter"}},
		{"newline", km.Newline, []string{"ctrl+j", "alt+enter"}},
		{"bold", km.Bold, []string{"ctrl+b"}},
		{"italic", km.Italic, []string{"alt+i"}},
		{"undo", km.Undo, []string{"ctrl+z"}},
		{"paste", km.Paste, []string{"ctrl+v"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.keys, tt.binding.Keys())
		})
	}
}

func TestDefaultKeyMap_ItalicAvoidsTab(t *testing.T) {
	km := DefaultKeyMap()

	assert.NotContains(t, km.Italic.Keys(), "ctrl+i")
	assert.False(t, key.Matches(tea.KeyMsg{Type: tea.KeyTab}, km.Italic))
}

func TestDefaultKeyMap_MatchesAltRune(t *testing.T) {
	km := DefaultKeyMap()
	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'l'}, Alt: true}

	assert.True(t, key.Matches(msg, km.BulletList))
	assert.False(t, key.Matches(msg, km.NumberedList))
}

func TestShortHelp(t *testing.T) {
	km := DefaultKeyMap()

	help := km.ShortHelp()

	require.Len(t, help, 4)
	assert.Equal(t, "send", help[0].Help().Desc)
}

func TestFullHelp_CoversFormatting(t *testing.T) {
	km := DefaultKeyMap()

	var descs []string
	for _, group := range km.FullHelp() {
		for _, b := range group {
			descs = append(descs, b.Help().Desc)
		}
	}

	assert.Contains(t, descs, "bold")
	assert.Contains(t, descs, "bullets")
	assert.Contains(t, descs, "save draft")
}
