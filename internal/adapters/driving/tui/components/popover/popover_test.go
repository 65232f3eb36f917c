package popover

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/composer/internal/core/domain"
	"github.com/custodia-labs/composer/internal/core/ports/driving"
)

func members(names ...string) []domain.Mention {
	out := make([]domain.Mention, len(names))
	for i, n := range names {
		out[i] = domain.Mention{ID: strings.ToLower(n), Name: n}
	}
	return out
}

func TestRender_Closed(t *testing.T) {
	p := New(nil)

	assert.Empty(t, p.Render(driving.SuggestionView{}))
}

func TestRender_Candidates(t *testing.T) {
	p := New(nil)

	out := ansi.Strip(p.Render(driving.SuggestionView{
		Open:        true,
		Prefix:      "a",
		Candidates:  members("Ada", "Alan"),
		Highlighted: 1,
	}))

	assert.Contains(t, out, "@a")
	assert.Contains(t, out, "@Ada")
	assert.Contains(t, out, "@Alan")
}

func TestRender_NoMatches(t *testing.T) {
	p := New(nil)

	out := ansi.Strip(p.Render(driving.SuggestionView{Open: true, Prefix: "zz"}))

	assert.Contains(t, out, "no matches")
}

func TestRender_ScrollHints(t *testing.T) {
	p := New(nil)
	p.SetMaxItems(2)

	out := ansi.Strip(p.Render(driving.SuggestionView{
		Open:        true,
		Candidates:  members("A1", "A2", "A3", "A4", "A5"),
		Highlighted: 2,
	}))

	assert.Contains(t, out, "↑ 1 more")
	assert.Contains(t, out, "@A2")
	assert.Contains(t, out, "@A3")
	assert.Contains(t, out, "↓ 2 more")
	assert.NotContains(t, out, "@A5")
}

func TestWindow(t *testing.T) {
	tests := []struct {
		name               string
		n, highlight, sz   int
		wantStart, wantEnd int
	}{
		{"fits", 3, 2, 6, 0, 3},
		{"top", 10, 0, 4, 0, 4},
		{"middle", 10, 5, 4, 3, 7},
		{"bottom", 10, 9, 4, 6, 10},
		{"out of range", 10, 42, 4, 6, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := Window(tt.n, tt.highlight, tt.sz)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestTruncate_WideRunes(t *testing.T) {
	got := Truncate("@山田太郎さん", 8)

	assert.LessOrEqual(t, runewidth.StringWidth(got), 8)
	assert.True(t, strings.HasSuffix(got, ellipsis))
}

func TestPad(t *testing.T) {
	assert.Equal(t, 6, runewidth.StringWidth(Pad("@山", 6)))
}
