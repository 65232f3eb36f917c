// Package popover renders the mention suggestion list under the composer.
package popover

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/custodia-labs/composer/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/composer/internal/core/ports/driving"
)

const (
	defaultWidth    = 32
	defaultMaxItems = 6
	ellipsis        = "…"
)

// Popover draws a window of candidates around the highlighted one.
type Popover struct {
	styles   *styles.Styles
	width    int
	maxItems int
}

// New creates a popover.
func New(s *styles.Styles) *Popover {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &Popover{styles: s, width: defaultWidth, maxItems: defaultMaxItems}
}

// SetWidth sets the outer width. Candidate names are truncated to fit.
func (p *Popover) SetWidth(width int) {
	p.width = width
}

// SetMaxItems caps the number of visible candidates.
func (p *Popover) SetMaxItems(n int) {
	if n > 0 {
		p.maxItems = n
	}
}

// Render draws view, or returns "" when the list is closed.
func (p *Popover) Render(view driving.SuggestionView) string {
	if !view.Open {
		return ""
	}

	// Border and padding take two columns each side.
	inner := max(p.width-4, 4)
	lines := []string{p.styles.Muted.Render(Truncate("@"+view.Prefix, inner))}

	if len(view.Candidates) == 0 {
		lines = append(lines, p.styles.Muted.Render("no matches"))
		return p.styles.Popover.Width(p.width - 2).Render(strings.Join(lines, "\n"))
	}

	start, end := Window(len(view.Candidates), view.Highlighted, p.maxItems)
	if start > 0 {
		lines = append(lines, p.styles.Muted.Render(fmt.Sprintf("↑ %d more", start)))
	}
	for i := start; i < end; i++ {
		label := Pad(Truncate("@"+view.Candidates[i].Name, inner), inner)
		if i == view.Highlighted {
			lines = append(lines, p.styles.PopoverSelected.Render(label))
		} else {
			lines = append(lines, p.styles.PopoverItem.Render(label))
		}
	}
	if rest := len(view.Candidates) - end; rest > 0 {
		lines = append(lines, p.styles.Muted.Render(fmt.Sprintf("↓ %d more", rest)))
	}

	return p.styles.Popover.Width(p.width - 2).Render(strings.Join(lines, "\n"))
}

// Window returns the half-open range of n items to show so that
// highlighted stays visible with at most size items.
func Window(n, highlighted, size int) (int, int) {
	if n <= size {
		return 0, n
	}
	highlighted = min(max(highlighted, 0), n-1)
	start := highlighted - size/2
	start = min(max(start, 0), n-size)
	return start, start + size
}

// Truncate shortens s to width display cells, ending with an ellipsis.
func Truncate(s string, width int) string {
	return runewidth.Truncate(s, width, ellipsis)
}

// Pad fills s with spaces to width display cells.
func Pad(s string, width int) string {
	return runewidth.FillRight(s, width)
}
