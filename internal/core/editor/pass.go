package editor

import "github.com/custodia-labs/composer/internal/core/domain"

// Pass is a pure document transform.
// Commands, the trigger scanner's auto-link step and normalisation are
// all expressed as passes and chained with Pipeline.
type Pass func(State) State

// Pipeline runs passes left to right.
func Pipeline(passes ...Pass) Pass {
	return func(st State) State {
		for _, p := range passes {
			if p != nil {
				st = p(st)
			}
		}
		return st
	}
}

// Insert returns a pass inserting text.
func Insert(text string) Pass {
	return func(st State) State { return InsertText(st, text) }
}

// Mark returns a pass toggling mark.
func Mark(mark domain.Mark) Pass {
	return func(st State) State { return ToggleMark(st, mark) }
}

// ListOf returns a pass toggling a list of kind.
func ListOf(kind domain.BlockKind) Pass {
	return func(st State) State { return ToggleList(st, kind) }
}

// Normalize returns a pass restoring document invariants and clamping
// the selection into the result.
func Normalize() Pass {
	return func(st State) State {
		out := st.Clone()
		out.Doc = out.Doc.Normalize()
		out.Selection = domain.Selection{
			Anchor: clampPoint(out.Doc, out.Selection.Anchor),
			Focus:  clampPoint(out.Doc, out.Selection.Focus),
		}
		return out
	}
}
