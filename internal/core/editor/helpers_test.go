package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/composer/internal/core/domain"
)

var (
	bold = domain.Marks{Bold: true}
	bob  = domain.Mention{ID: "u2", Name: "bob"}
)

func para(text string) domain.Block {
	return domain.Paragraph(domain.TextRun(text))
}

func item(text string) domain.Block {
	return domain.ListItem(domain.TextRun(text))
}

func bullets(items ...domain.Block) domain.Block {
	return domain.List(domain.KindBulletedList, items...)
}

func stateAt(p domain.Point, blocks ...domain.Block) State {
	return State{Doc: domain.NewDocument(blocks...), Selection: domain.Caret(p)}
}

func selecting(anchor, focus domain.Point, blocks ...domain.Block) State {
	return State{Doc: domain.NewDocument(blocks...), Selection: domain.Selection{Anchor: anchor, Focus: focus}}
}

func assertCaret(t *testing.T, st State, want domain.Point) {
	t.Helper()
	require.True(t, st.Selection.IsCollapsed(), "selection should be collapsed")
	assert.Equal(t, 0, domain.ComparePoints(want, st.Caret()), "caret %v, want %v", st.Caret(), want)
}

func assertDoc(t *testing.T, st State, blocks ...domain.Block) {
	t.Helper()
	require.NoError(t, st.Doc.Validate())
	assert.Equal(t, domain.NewDocument(blocks...), st.Doc)
}
