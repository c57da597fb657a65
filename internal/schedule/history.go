package schedule

import "lineupplanner/internal/domain"

// History is a linear undo/redo log of whole slot-list snapshots.
// The cursor always indexes a valid entry; the entry under the cursor is the current slot list.
type History struct {
	entries [][]domain.Slot
	cursor  int
}

// NewHistory returns a history whose only entry is initial.
func NewHistory(initial []domain.Slot) *History {
	return &History{entries: [][]domain.Slot{domain.CloneSlots(initial)}}
}

// RestoreHistory rebuilds a history from persisted entries. It reports false,
// returning a fresh history over current, when the entries are empty, the cursor
// is out of range, or the entry under the cursor does not match current.
func RestoreHistory(entries [][]domain.Slot, cursor int, current []domain.Slot) (*History, bool) {
	if len(entries) == 0 || cursor < 0 || cursor >= len(entries) || !domain.SlotsEqual(entries[cursor], current) {
		return NewHistory(current), false
	}
	h := &History{entries: make([][]domain.Slot, len(entries)), cursor: cursor}
	for i, e := range entries {
		h.entries[i] = domain.CloneSlots(e)
	}
	return h, true
}

// Record drops every entry after the cursor, appends slots, and moves the cursor onto it.
func (h *History) Record(slots []domain.Slot) {
	h.entries = append(h.entries[:h.cursor+1], domain.CloneSlots(slots))
	h.cursor = len(h.entries) - 1
}

// Undo moves the cursor back one entry. It reports false at the first entry.
func (h *History) Undo() bool {
	if h.cursor == 0 {
		return false
	}
	h.cursor--
	return true
}

// Redo moves the cursor forward one entry. It reports false at the last entry.
func (h *History) Redo() bool {
	if h.cursor >= len(h.entries)-1 {
		return false
	}
	h.cursor++
	return true
}

// Current returns a copy of the slot list under the cursor.
func (h *History) Current() []domain.Slot {
	return domain.CloneSlots(h.entries[h.cursor])
}

func (h *History) current() []domain.Slot {
	return h.entries[h.cursor]
}

// Cursor returns the index of the current entry.
func (h *History) Cursor() int { return h.cursor }

// Len returns the number of entries.
func (h *History) Len() int { return len(h.entries) }

// Entries returns a deep copy of every entry.
func (h *History) Entries() [][]domain.Slot {
	out := make([][]domain.Slot, len(h.entries))
	for i, e := range h.entries {
		out[i] = domain.CloneSlots(e)
	}
	return out
}
