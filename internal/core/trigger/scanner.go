// Package trigger classifies the text around the caret after every edit:
// an @mention being typed, a bare URL to auto-link, or nothing.
package trigger

import (
	"regexp"
	"unicode"

	"github.com/rivo/uniseg"

	"github.com/custodia-labs/composer/internal/core/domain"
	"github.com/custodia-labs/composer/internal/core/editor"
)

// Kind is the outcome of a scan.
type Kind uint8

// Scan outcomes. Mention and Link are mutually exclusive.
const (
	None Kind = iota
	Mention
	Link
)

// String returns the string representation.
func (k Kind) String() string {
	switch k {
	case Mention:
		return "mention"
	case Link:
		return "link"
	default:
		return "none"
	}
}

// Result describes the token before the caret.
type Result struct {
	Kind Kind

	// Prefix is the text typed after @ for a mention.
	Prefix string

	// URL is the auto-link target.
	URL string

	// Range covers the token, @ included.
	Range domain.Range
}

var mentionPattern = regexp.MustCompile(`^@(\w*)$`)

// Scan inspects the token ending at the caret. It never modifies the state.
//
// The token is collected by walking back from the caret one grapheme
// cluster at a time until whitespace, a mention token or the block start.
// A mention only triggers when the caret sits before whitespace or at
// the end of its block. A URL token links whatever follows the caret.
func Scan(st editor.State) Result {
	if !st.Selection.IsCollapsed() {
		return Result{}
	}
	caret := st.Caret()
	leaf, ok := st.Doc.Leaf(caret.Path)
	if !ok || caret.Offset > leaf.Len() {
		return Result{}
	}
	before, after := segments(leaf.Runs, caret.Offset)
	token := lastWord(before)
	if token == "" {
		return Result{}
	}
	start := domain.Point{Path: caret.Path.Clone(), Offset: caret.Offset - len([]rune(token))}
	rng := domain.Range{Start: start, End: domain.Point{Path: caret.Path.Clone(), Offset: caret.Offset}}

	if m := mentionPattern.FindStringSubmatch(token); m != nil {
		if !endsToken(after) {
			return Result{}
		}
		return Result{Kind: Mention, Prefix: m[1], Range: rng}
	}
	if editor.IsValidURL(token) {
		return Result{Kind: Link, URL: token, Range: rng}
	}
	return Result{}
}

// Apply runs the auto-link step for a link result. Other results leave
// the state unchanged; the scan is not repeated on the outcome.
func Apply(st editor.State, r Result) editor.State {
	if r.Kind != Link {
		return st
	}
	return editor.WrapOrUpdateLink(st, r.URL, r.Range)
}

// Pass returns the auto-link step as an editor pass.
func Pass() editor.Pass {
	return func(st editor.State) editor.State {
		return Apply(st, Scan(st))
	}
}

// mentionMark stands in for a mention token so offsets stay aligned.
const mentionMark = '\uFFFC'

// segments returns the block text before and after offset. The part
// before is cut at the nearest mention token.
func segments(runs []domain.Run, offset int) (before, after string) {
	var text []rune
	for _, r := range runs {
		if r.Kind == domain.RunMention {
			text = append(text, mentionMark)
			continue
		}
		text = append(text, []rune(r.Text)...)
	}
	head, tail := text[:offset], text[offset:]
	for i := len(head) - 1; i >= 0; i-- {
		if head[i] == mentionMark {
			head = head[i+1:]
			break
		}
	}
	return string(head), string(tail)
}

// endsToken reports whether the caret sits before whitespace or the end.
func endsToken(after string) bool {
	for _, c := range after {
		return unicode.IsSpace(c)
	}
	return true
}

// lastWord walks back over grapheme clusters until whitespace.
func lastWord(text string) string {
	var clusters []string
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		clusters = append(clusters, g.Str())
	}
	i := len(clusters)
	for i > 0 {
		c := []rune(clusters[i-1])
		if unicode.IsSpace(c[0]) {
			break
		}
		i--
	}
	var word []rune
	for _, c := range clusters[i:] {
		word = append(word, []rune(c)...)
	}
	return string(word)
}
