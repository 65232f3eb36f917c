// Package editor renders the composer document, caret and selection.
package editor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/composer/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/composer/internal/core/domain"
	"github.com/custodia-labs/composer/internal/core/ports/driving"
)

const defaultPlaceholder = "Write a message…"

var bullets = []string{"•", "◦", "▪"}

// View renders a composer snapshot inside a bordered frame.
type View struct {
	styles      *styles.Styles
	placeholder string
	width       int
}

// NewView creates an editor view. An empty placeholder uses the default.
func NewView(s *styles.Styles, placeholder string) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if placeholder == "" {
		placeholder = defaultPlaceholder
	}
	return &View{styles: s, placeholder: placeholder, width: 80}
}

// SetWidth sets the outer width of the frame.
func (v *View) SetWidth(width int) {
	v.width = width
}

// Width returns the outer width of the frame.
func (v *View) Width() int {
	return v.width
}

// Render draws snap.
func (v *View) Render(snap driving.ComposerSnapshot) string {
	frame := v.styles.Editor
	if snap.Disabled {
		frame = v.styles.EditorDisabled
	}
	// The border takes one column on each side.
	frame = frame.Width(max(v.width-2, 10))

	if isBlank(snap.Doc) {
		return frame.Render(v.renderPlaceholder(snap))
	}
	return frame.Render(strings.Join(v.renderBlocks(snap), "\n"))
}

func isBlank(doc domain.Document) bool {
	return len(doc.Blocks) == 1 && doc.Blocks[0].Kind == domain.KindParagraph &&
		doc.Blocks[0].Indent == 0 && doc.Blocks[0].IsEmpty()
}

func (v *View) renderPlaceholder(snap driving.ComposerSnapshot) string {
	if snap.Disabled {
		return v.styles.Muted.Render(v.placeholder)
	}
	return v.styles.Cursor.Render(" ") + v.styles.Muted.Render(v.placeholder)
}

func (v *View) renderBlocks(snap driving.ComposerSnapshot) []string {
	var lines []string
	for i, b := range snap.Doc.Blocks {
		if !b.Kind.IsList() {
			prefix := strings.Repeat("  ", b.Indent)
			lines = append(lines, prefixLines(prefix, v.renderLeaf(b, domain.Path{i}, snap))...)
			continue
		}

		counters := make([]int, domain.MaxIndent+1)
		for j, item := range b.Items {
			depth := min(max(item.Indent, 0), domain.MaxIndent)
			counters[depth]++
			for k := depth + 1; k < len(counters); k++ {
				counters[k] = 0
			}
			marker := bullets[depth%len(bullets)]
			if b.Kind == domain.KindNumberedList {
				marker = fmt.Sprintf("%d.", counters[depth])
			}
			prefix := strings.Repeat("  ", depth) + v.styles.ListMarker.Render(marker) + " "
			lines = append(lines, prefixLines(prefix, v.renderLeaf(item, domain.Path{i, j}, snap))...)
		}
	}
	return lines
}

// prefixLines puts prefix before the first line and aligns the rest under it.
func prefixLines(prefix string, lines []string) []string {
	pad := strings.Repeat(" ", lipgloss.Width(prefix))
	for i := range lines {
		if i == 0 {
			lines[i] = prefix + lines[i]
		} else {
			lines[i] = pad + lines[i]
		}
	}
	return lines
}

type unitState uint8

const (
	unitNormal unitState = iota
	unitSelected
	unitCursor
)

// leafRenderer walks the units of one text-bearing block.
type leafRenderer struct {
	view   *View
	path   domain.Path
	sel    domain.Range
	caret  domain.Point
	caretH bool

	offset int
	lines  []string
	line   strings.Builder
	buf    strings.Builder
	state  unitState
	style  lipgloss.Style
}

func (v *View) renderLeaf(b domain.Block, path domain.Path, snap driving.ComposerSnapshot) []string {
	r := &leafRenderer{
		view:   v,
		path:   path,
		sel:    snap.Selection.Range(),
		caret:  snap.Selection.Focus,
		caretH: !snap.Disabled && snap.Selection.Focus.Path.Equal(path),
	}

	for _, run := range b.Runs {
		if run.Kind == domain.RunMention {
			r.unit("@"+run.Mention.Name, v.styles.Mention)
			continue
		}
		st := v.styles.Text(run.Marks, run.URL != "" || b.Kind == domain.KindLink)
		for _, ch := range run.Text {
			if ch == '\n' {
				r.newline()
				continue
			}
			r.unit(string(ch), st)
		}
	}
	r.flush()
	if r.caretH && r.caret.Offset == r.offset {
		r.line.WriteString(v.styles.Cursor.Render(" "))
	}
	r.lines = append(r.lines, r.line.String())
	return r.lines
}

func (r *leafRenderer) stateAt() unitState {
	here := domain.Point{Path: r.path, Offset: r.offset}
	switch {
	case r.caretH && r.caret.Offset == r.offset:
		return unitCursor
	case !r.sel.IsCollapsed() &&
		domain.ComparePoints(r.sel.Start, here) <= 0 &&
		domain.ComparePoints(here, r.sel.End) < 0:
		return unitSelected
	default:
		return unitNormal
	}
}

// unit appends one offset unit, batching neighbours that render alike.
func (r *leafRenderer) unit(text string, st lipgloss.Style) {
	state := r.stateAt()
	if state == unitCursor || state != r.state || r.buf.Len() > 0 && !sameStyle(st, r.style) {
		r.flush()
	}
	r.state = state
	r.style = st
	r.buf.WriteString(text)
	r.offset++
	if state == unitCursor {
		r.flush()
	}
}

// newline ends the current line; the newline itself occupies one unit.
func (r *leafRenderer) newline() {
	r.flush()
	if r.stateAt() == unitCursor {
		r.line.WriteString(r.view.styles.Cursor.Render(" "))
	}
	r.lines = append(r.lines, r.line.String())
	r.line.Reset()
	r.offset++
}

func (r *leafRenderer) flush() {
	if r.buf.Len() == 0 {
		return
	}
	st := r.style
	switch r.state {
	case unitCursor:
		st = r.view.styles.Cursor.Inherit(st)
	case unitSelected:
		st = r.view.styles.Selection.Inherit(st)
	case unitNormal:
	}
	r.line.WriteString(st.Render(r.buf.String()))
	r.buf.Reset()
}

func sameStyle(a, b lipgloss.Style) bool {
	return a.GetBold() == b.GetBold() &&
		a.GetItalic() == b.GetItalic() &&
		a.GetUnderline() == b.GetUnderline() &&
		a.GetStrikethrough() == b.GetStrikethrough() &&
		a.GetForeground() == b.GetForeground()
}
