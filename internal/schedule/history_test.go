package schedule

import (
	"testing"

	"lineupplanner/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slotsWithIDs(ids ...string) []domain.Slot {
	out := make([]domain.Slot, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.Slot{ID: id})
	}
	return out
}

func TestHistory_UndoRedo(t *testing.T) {
	h := NewHistory(nil)
	require.Equal(t, 0, h.Cursor())
	assert.False(t, h.Undo(), "nothing to undo")
	assert.False(t, h.Redo(), "nothing to redo")

	h.Record(slotsWithIDs("a"))
	h.Record(slotsWithIDs("a", "b"))
	require.Equal(t, 2, h.Cursor())
	require.Equal(t, 3, h.Len())

	require.True(t, h.Undo())
	assert.Equal(t, slotsWithIDs("a"), h.Current())
	require.True(t, h.Undo())
	assert.Empty(t, h.Current())
	assert.False(t, h.Undo())

	require.True(t, h.Redo())
	require.True(t, h.Redo())
	assert.Equal(t, slotsWithIDs("a", "b"), h.Current())
	assert.False(t, h.Redo())
}

func TestHistory_RecordAfterUndoPrunesRedo(t *testing.T) {
	h := NewHistory(nil)
	h.Record(slotsWithIDs("a"))
	h.Record(slotsWithIDs("a", "b"))
	h.Record(slotsWithIDs("a", "b", "c"))

	h.Undo()
	h.Undo()
	h.Record(slotsWithIDs("x"))

	assert.Equal(t, 2, h.Cursor())
	assert.Equal(t, 3, h.Len())
	assert.False(t, h.Redo())
	assert.Equal(t, slotsWithIDs("x"), h.Current())
}

func TestHistory_SnapshotsAreCopies(t *testing.T) {
	h := NewHistory(nil)
	in := slotsWithIDs("a")
	h.Record(in)
	in[0].ID = "mutated"

	got := h.Current()
	assert.Equal(t, "a", got[0].ID)
	got[0].ID = "mutated"
	assert.Equal(t, "a", h.Current()[0].ID)
}

func TestRestoreHistory(t *testing.T) {
	entries := [][]domain.Slot{nil, slotsWithIDs("a"), slotsWithIDs("a", "b")}

	h, ok := RestoreHistory(entries, 1, slotsWithIDs("a"))
	require.True(t, ok)
	assert.Equal(t, 1, h.Cursor())
	assert.True(t, h.Redo())

	tests := []struct {
		name    string
		entries [][]domain.Slot
		cursor  int
		current []domain.Slot
	}{
		{"empty entries", nil, 0, slotsWithIDs("a")},
		{"cursor out of range", entries, 5, slotsWithIDs("a")},
		{"negative cursor", entries, -1, slotsWithIDs("a")},
		{"cursor entry differs", entries, 2, slotsWithIDs("a")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, ok := RestoreHistory(tt.entries, tt.cursor, tt.current)
			assert.False(t, ok)
			assert.Equal(t, 0, h.Cursor())
			assert.Equal(t, 1, h.Len())
			assert.Equal(t, tt.current, h.Current())
		})
	}
}
