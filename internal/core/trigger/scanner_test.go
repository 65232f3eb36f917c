package trigger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/composer/internal/core/domain"
	"github.com/custodia-labs/composer/internal/core/editor"
)

func typed(text string) editor.State {
	return editor.InsertText(editor.NewState(domain.EmptyDocument()), text)
}

func TestScan(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		kind   Kind
		prefix string
		url    string
		start  int
	}{
		{"bare at", "@", Mention, "", "", 0},
		{"mention prefix", "hi @bo", Mention, "bo", "", 3},
		{"underscore and digits", "@a_1", Mention, "a_1", "", 0},
		{"punctuation breaks mention", "@bo!", None, "", "", 0},
		{"non ascii breaks mention", "@bö", None, "", "", 0},
		{"email is not a trigger", "email@example.com", None, "", "", 0},
		{"trailing space ends scan", "email@example.com ", None, "", "", 0},
		{"url", "see https://example.com", Link, "", "https://example.com", 4},
		{"scheme only", "https://", None, "", "", 0},
		{"plain word", "hello", None, "", "", 0},
		{"empty", "", None, "", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Scan(typed(tt.text))

			assert.Equal(t, tt.kind, res.Kind)
			if tt.kind == None {
				return
			}
			assert.Equal(t, tt.prefix, res.Prefix)
			assert.Equal(t, tt.url, res.URL)
			assert.Equal(t, tt.start, res.Range.Start.Offset)
			assert.Equal(t, len([]rune(tt.text)), res.Range.End.Offset)
		})
	}
}

func TestScan_CharacterAfterCaret(t *testing.T) {
	st := typed("@bo there").WithCaret(domain.At(3, 0))
	assert.Equal(t, Mention, Scan(st).Kind)

	st = typed("@bob").WithCaret(domain.At(3, 0))
	assert.Equal(t, None, Scan(st).Kind)

	st = typed("https://ex.iotail").WithCaret(domain.At(13, 0))
	res := Scan(st)
	assert.Equal(t, Link, res.Kind)
	assert.Equal(t, "https://ex.io", res.URL)
	assert.Equal(t, 13, res.Range.End.Offset)
}

func TestScan_StopsAtMention(t *testing.T) {
	st := editor.State{
		Doc: domain.NewDocument(domain.Paragraph(
			domain.MentionRun(domain.Mention{ID: "1", Name: "ann"}),
			domain.TextRun("@x"))),
		Selection: domain.Caret(domain.At(3, 0)),
	}

	res := Scan(st)

	assert.Equal(t, Mention, res.Kind)
	assert.Equal(t, "x", res.Prefix)
	assert.Equal(t, 1, res.Range.Start.Offset)
}

func TestScan_MutuallyExclusive(t *testing.T) {
	inputs := []string{"@", "@https://x.io", "https://x.io/@me", "@me https://x.io", "a@b", "x https://@"}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			res := Scan(typed(in))
			if res.Kind == Mention {
				assert.Empty(t, res.URL)
			}
			if res.Kind == Link {
				assert.Empty(t, res.Prefix)
				assert.NotEqual(t, '@', []rune(res.URL)[0])
			}
		})
	}
}

func TestScan_IgnoresSelection(t *testing.T) {
	st := editor.SelectAll(typed("@bo"))

	assert.Equal(t, None, Scan(st).Kind)
}

func TestApply_AutoLink(t *testing.T) {
	st := typed("see https://example.com today").WithCaret(domain.At(23, 0))

	st = Apply(st, Scan(st))

	require.NoError(t, st.Doc.Validate())
	assert.Equal(t, domain.NewDocument(domain.Paragraph(
		domain.TextRun("see "),
		domain.LinkRun("https://example.com", "https://example.com"),
		domain.TextRun(" today"),
	)), st.Doc)
}

func TestPass_LinkGrowsWhileTyping(t *testing.T) {
	st := editor.NewState(domain.EmptyDocument())
	for _, c := range "https://ex.io" {
		st = Pass()(editor.InsertText(st, string(c)))
	}

	require.Len(t, st.Doc.Blocks[0].Runs, 1)
	assert.Equal(t, domain.LinkRun("https://ex.io", "https://ex.io"), st.Doc.Blocks[0].Runs[0])

	st = editor.InsertText(editor.ExitLinkWrap(st), " ")
	st = Pass()(st)
	assert.Equal(t, domain.TextRun(" "), st.Doc.Blocks[0].Runs[1])
}
