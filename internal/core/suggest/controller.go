// Package suggest implements the mention suggestion state machine.
//
// The controller never touches the document: it consumes trigger scan
// results and navigation keys, and hands back a Commit for the caller to
// apply with editor.InsertMention.
package suggest

import (
	"strings"

	"github.com/custodia-labs/composer/internal/core/domain"
	"github.com/custodia-labs/composer/internal/core/trigger"
)

// DefaultMaxCandidates caps the candidate list.
const DefaultMaxCandidates = 10

// Status is the controller state.
type Status uint8

const (
	// Idle shows no suggestions.
	Idle Status = iota

	// Suggesting shows candidates for a mention being typed.
	Suggesting
)

// String returns the string representation.
func (s Status) String() string {
	if s == Suggesting {
		return "suggesting"
	}
	return "idle"
}

// Commit is a request to replace Range with a mention of Member.
type Commit struct {
	Member domain.Mention
	Range  domain.Range
}

// Controller tracks the suggestion state for one composer.
type Controller struct {
	directory   []domain.Mention
	max         int
	status      Status
	prefix      string
	target      domain.Range
	candidates  []domain.Mention
	highlighted int
}

// New creates an idle controller over directory.
func New(directory []domain.Mention, maxCandidates int) *Controller {
	if maxCandidates <= 0 {
		maxCandidates = DefaultMaxCandidates
	}
	c := &Controller{max: maxCandidates}
	c.SetDirectory(directory)
	return c
}

// SetDirectory replaces the mention directory. An open suggestion list
// is refiltered against it.
func (c *Controller) SetDirectory(directory []domain.Mention) {
	c.directory = append([]domain.Mention(nil), directory...)
	if c.status == Suggesting {
		c.setCandidates(c.filter(c.prefix))
	}
}

// Observe feeds the latest scan. A mention result opens or updates the
// suggestion list; anything else returns the controller to Idle.
func (c *Controller) Observe(res trigger.Result) {
	if res.Kind != trigger.Mention {
		c.Dismiss()
		return
	}
	if c.status == Idle {
		c.highlighted = 0
		c.candidates = nil
	}
	c.status = Suggesting
	c.prefix = res.Prefix
	c.target = res.Range
	c.setCandidates(c.filter(res.Prefix))
}

// Dismiss returns to Idle.
func (c *Controller) Dismiss() {
	c.status = Idle
	c.prefix = ""
	c.target = domain.Range{}
	c.candidates = nil
	c.highlighted = 0
}

// Active reports whether navigation keys belong to the controller.
func (c *Controller) Active() bool {
	return c.status == Suggesting && len(c.candidates) > 0
}

// HandleKey processes a key while suggestions are shown. It reports
// whether the key was consumed and, for Tab or Enter, the commit to apply.
func (c *Controller) HandleKey(ev domain.KeyEvent) (consumed bool, commit *Commit) {
	if !c.Active() {
		return false, nil
	}
	switch ev.Key {
	case domain.KeyDown:
		c.highlighted = (c.highlighted + 1) % len(c.candidates)
		return true, nil
	case domain.KeyUp:
		c.highlighted = (c.highlighted - 1 + len(c.candidates)) % len(c.candidates)
		return true, nil
	case domain.KeyTab, domain.KeyEnter:
		commit = &Commit{Member: c.candidates[c.highlighted], Range: c.target}
		c.Dismiss()
		return true, commit
	case domain.KeyEscape:
		c.Dismiss()
		return true, nil
	default:
		return false, nil
	}
}

// Status returns the current state.
func (c *Controller) Status() Status { return c.status }

// Prefix returns the text typed after @.
func (c *Controller) Prefix() string { return c.prefix }

// Candidates returns the filtered directory entries.
func (c *Controller) Candidates() []domain.Mention {
	return append([]domain.Mention(nil), c.candidates...)
}

// Highlighted returns the index of the highlighted candidate.
func (c *Controller) Highlighted() int { return c.highlighted }

// Target returns the range a commit would replace.
func (c *Controller) Target() domain.Range { return c.target }

// Anchor returns the position the suggestion list attaches to.
func (c *Controller) Anchor() domain.Point { return c.target.Start }

func (c *Controller) filter(prefix string) []domain.Mention {
	p := strings.ToLower(prefix)
	var out []domain.Mention
	for _, m := range c.directory {
		if strings.HasPrefix(strings.ToLower(m.Name), p) {
			out = append(out, m)
			if len(out) == c.max {
				break
			}
		}
	}
	return out
}

func (c *Controller) setCandidates(next []domain.Mention) {
	if !sameMentions(c.candidates, next) {
		c.highlighted = 0
	}
	c.candidates = next
	if c.highlighted >= len(next) {
		c.highlighted = 0
	}
}

func sameMentions(a, b []domain.Mention) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
