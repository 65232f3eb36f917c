package editor

// DefaultHistoryLimit caps the command log when no limit is given.
const DefaultHistoryLimit = 1000

// Entry is one logged command: the pass that was applied and the state it
// was applied to. Undo restores Before; redo re-applies Do to Before.
type Entry struct {
	Name   string
	Do     Pass
	Before State
}

// History is an explicit command log with an undo cursor.
type History struct {
	entries []Entry
	cursor  int
	limit   int
}

// NewHistory creates a history holding at most limit entries.
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &History{limit: limit}
}

// Apply runs pass over st, logs it and returns the result.
func (h *History) Apply(name string, pass Pass, st State) State {
	before := st.Clone()
	after := pass(st)
	h.Record(Entry{Name: name, Do: pass, Before: before})
	return after
}

// Record appends an entry, discarding anything that could be redone.
func (h *History) Record(e Entry) {
	h.entries = append(h.entries[:h.cursor], e)
	if len(h.entries) > h.limit {
		h.entries = h.entries[len(h.entries)-h.limit:]
	}
	h.cursor = len(h.entries)
}

// Undo returns the state before the last applied command.
func (h *History) Undo() (State, bool) {
	if h.cursor == 0 {
		return State{}, false
	}
	h.cursor--
	return h.entries[h.cursor].Before.Clone(), true
}

// Redo re-applies the next undone command.
func (h *History) Redo() (State, bool) {
	if h.cursor >= len(h.entries) {
		return State{}, false
	}
	e := h.entries[h.cursor]
	h.cursor++
	return e.Do(e.Before.Clone()), true
}

// CanUndo reports whether Undo would succeed.
func (h *History) CanUndo() bool { return h.cursor > 0 }

// CanRedo reports whether Redo would succeed.
func (h *History) CanRedo() bool { return h.cursor < len(h.entries) }

// Applied returns the entries up to the undo cursor, oldest first.
func (h *History) Applied() []Entry {
	out := make([]Entry, h.cursor)
	copy(out, h.entries[:h.cursor])
	return out
}

// Clear drops every entry.
func (h *History) Clear() {
	h.entries = nil
	h.cursor = 0
}

// Replay applies entries in order starting from st.
func Replay(st State, entries []Entry) State {
	for _, e := range entries {
		st = e.Do(st)
	}
	return st
}
