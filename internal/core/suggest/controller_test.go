package suggest

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/composer/internal/core/domain"
	"github.com/custodia-labs/composer/internal/core/trigger"
)

var (
	ann   = domain.Mention{ID: "u1", Name: "ann"}
	bob   = domain.Mention{ID: "u2", Name: "bob"}
	bobby = domain.Mention{ID: "u3", Name: "Bobby"}
)

func mentionScan(prefix string) trigger.Result {
	return trigger.Result{
		Kind:   trigger.Mention,
		Prefix: prefix,
		Range:  domain.Range{Start: domain.At(0, 0), End: domain.At(len(prefix)+1, 0)},
	}
}

func TestController_ScenarioA(t *testing.T) {
	c := New([]domain.Mention{ann, bob, bobby}, 0)

	c.Observe(mentionScan("bo"))
	require.Equal(t, Suggesting, c.Status())
	assert.Equal(t, []domain.Mention{bob, bobby}, c.Candidates())
	assert.Equal(t, 0, c.Highlighted())

	consumed, commit := c.HandleKey(domain.NamedKey(domain.KeyDown))
	assert.True(t, consumed)
	assert.Nil(t, commit)
	assert.Equal(t, 1, c.Highlighted())

	consumed, commit = c.HandleKey(domain.NamedKey(domain.KeyTab))
	assert.True(t, consumed)
	require.NotNil(t, commit)
	assert.Equal(t, bobby, commit.Member)
	assert.Equal(t, domain.At(0, 0), commit.Range.Start)
	assert.Equal(t, domain.At(3, 0), commit.Range.End)
	assert.Equal(t, Idle, c.Status())
}

func TestController_Wraparound(t *testing.T) {
	c := New([]domain.Mention{ann, bob, bobby}, 0)
	c.Observe(mentionScan(""))

	c.HandleKey(domain.NamedKey(domain.KeyUp))
	assert.Equal(t, 2, c.Highlighted())

	c.HandleKey(domain.NamedKey(domain.KeyDown))
	assert.Equal(t, 0, c.Highlighted())
}

func TestController_EnterCommits(t *testing.T) {
	c := New([]domain.Mention{ann}, 0)
	c.Observe(mentionScan("A"))

	consumed, commit := c.HandleKey(domain.NamedKey(domain.KeyEnter))

	assert.True(t, consumed)
	require.NotNil(t, commit)
	assert.Equal(t, ann, commit.Member)
}

func TestController_EscapeDismisses(t *testing.T) {
	c := New([]domain.Mention{ann}, 0)
	c.Observe(mentionScan("a"))

	consumed, commit := c.HandleKey(domain.NamedKey(domain.KeyEscape))

	assert.True(t, consumed)
	assert.Nil(t, commit)
	assert.Equal(t, Idle, c.Status())
}

func TestController_KeysPassThrough(t *testing.T) {
	t.Run("idle", func(t *testing.T) {
		c := New([]domain.Mention{ann}, 0)

		consumed, _ := c.HandleKey(domain.NamedKey(domain.KeyEnter))

		assert.False(t, consumed)
	})

	t.Run("no candidates", func(t *testing.T) {
		c := New([]domain.Mention{ann}, 0)
		c.Observe(mentionScan("zz"))
		require.Equal(t, Suggesting, c.Status())

		consumed, commit := c.HandleKey(domain.NamedKey(domain.KeyEnter))

		assert.False(t, consumed)
		assert.Nil(t, commit)
	})

	t.Run("typing keys", func(t *testing.T) {
		c := New([]domain.Mention{ann}, 0)
		c.Observe(mentionScan(""))

		consumed, _ := c.HandleKey(domain.RuneKey('x'))

		assert.False(t, consumed)
	})
}

func TestController_NegativeScanCancels(t *testing.T) {
	c := New([]domain.Mention{ann}, 0)
	c.Observe(mentionScan(""))

	c.Observe(trigger.Result{Kind: trigger.Link, URL: "https://x.io"})

	assert.Equal(t, Idle, c.Status())
	assert.Empty(t, c.Candidates())
}

func TestController_HighlightResetsWhenCandidatesChange(t *testing.T) {
	c := New([]domain.Mention{ann, bob, bobby}, 0)
	c.Observe(mentionScan("b"))
	c.HandleKey(domain.NamedKey(domain.KeyDown))
	require.Equal(t, 1, c.Highlighted())

	c.Observe(mentionScan("bo"))
	assert.Equal(t, 1, c.Highlighted(), "same candidates keep the highlight")

	c.Observe(mentionScan("bob"))
	assert.Equal(t, 1, c.Highlighted())

	c.Observe(mentionScan("bobb"))
	assert.Equal(t, []domain.Mention{bobby}, c.Candidates())
	assert.Equal(t, 0, c.Highlighted())
}

func TestController_CapsCandidates(t *testing.T) {
	var dir []domain.Mention
	for i := 0; i < 25; i++ {
		dir = append(dir, domain.Mention{ID: fmt.Sprint(i), Name: fmt.Sprintf("user%02d", i)})
	}
	c := New(dir, 0)

	c.Observe(mentionScan("user"))

	got := c.Candidates()
	require.Len(t, got, DefaultMaxCandidates)
	assert.Equal(t, "user00", got[0].Name)
	assert.Equal(t, "user09", got[9].Name)
}

func TestController_SetDirectoryRefilters(t *testing.T) {
	c := New(nil, 0)
	c.Observe(mentionScan("a"))
	assert.False(t, c.Active())

	c.SetDirectory([]domain.Mention{ann})

	assert.True(t, c.Active())
	assert.Equal(t, []domain.Mention{ann}, c.Candidates())
}
