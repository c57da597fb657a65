package schedule

import (
	"fmt"
	"time"

	"lineupplanner/internal/domain"
)

// Store owns the slot list through its History. Every successful mutation
// records exactly one snapshot; a mutation on a locked event records nothing.
type Store struct {
	history *History
	newID   func() string
	now     func() time.Time
}

// NewStore returns a Store over h. newID and now supply identifiers and creation timestamps for new slots.
func NewStore(h *History, newID func() string, now func() time.Time) *Store {
	return &Store{history: h, newID: newID, now: now}
}

// Slots returns a copy of the current slot list.
func (s *Store) Slots() []domain.Slot { return s.history.Current() }

// History returns the underlying history.
func (s *Store) History() *History { return s.history }

// Find returns the current slot with the given ID.
func (s *Store) Find(slotID string) (domain.Slot, bool) {
	for _, slot := range s.history.current() {
		if slot.ID == slotID {
			return slot, true
		}
	}
	return domain.Slot{}, false
}

// Assign places artistID on stage of eventID for [start, end) as a pending slot.
// Every slot on the same event and stage that starts at the same label or
// overlaps the new range is evicted: the latest assignment wins.
func (s *Store) Assign(locked bool, eventID, stage, artistID, start, end string) (domain.Slot, error) {
	if locked {
		return domain.Slot{}, domain.ErrEventLocked
	}
	if err := ValidRange(start, end); err != nil {
		return domain.Slot{}, err
	}

	slot := domain.Slot{
		ID:        s.newID(),
		EventID:   eventID,
		ArtistID:  artistID,
		Stage:     stage,
		StartTime: start,
		EndTime:   end,
		Status:    domain.SlotStatusPending,
		CreatedAt: s.now().UTC(),
	}

	current := s.history.current()
	next := make([]domain.Slot, 0, len(current)+1)
	for _, existing := range current {
		if existing.EventID == eventID && existing.Stage == stage &&
			(existing.StartTime == start || Overlaps(existing.StartTime, existing.EndTime, start, end)) {
			continue
		}
		next = append(next, existing)
	}
	next = append(next, slot)
	s.history.Record(next)
	return slot, nil
}

// Update applies upd to the slot with the given ID. Conflicts are not evicted:
// a manual edit may leave two slots overlapping on a stage.
func (s *Store) Update(locked bool, slotID string, upd domain.SlotUpdate) (domain.Slot, error) {
	if locked {
		return domain.Slot{}, domain.ErrEventLocked
	}
	current := s.history.current()
	idx := -1
	for i, slot := range current {
		if slot.ID == slotID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.Slot{}, fmt.Errorf("slot %s: %w", slotID, domain.ErrNotFound)
	}

	updated := current[idx]
	upd.Apply(&updated)
	if !updated.Status.Valid() {
		return domain.Slot{}, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, updated.Status)
	}
	if err := ValidRange(updated.StartTime, updated.EndTime); err != nil {
		return domain.Slot{}, err
	}

	next := domain.CloneSlots(current)
	next[idx] = updated
	s.history.Record(next)
	return updated, nil
}

// Remove deletes the slot with the given ID. A missing ID still records an
// unchanged snapshot, so every remove intent is one undo step.
func (s *Store) Remove(locked bool, slotID string) error {
	if locked {
		return domain.ErrEventLocked
	}
	s.history.Record(filter(s.history.current(), func(slot domain.Slot) bool { return slot.ID != slotID }))
	return nil
}

// ClearForEvent deletes every slot of the event.
func (s *Store) ClearForEvent(locked bool, eventID string) error {
	if locked {
		return domain.ErrEventLocked
	}
	s.history.Record(filter(s.history.current(), func(slot domain.Slot) bool { return slot.EventID != eventID }))
	return nil
}

// Undo steps the slot list back one snapshot.
func (s *Store) Undo() bool { return s.history.Undo() }

// Redo steps the slot list forward one snapshot.
func (s *Store) Redo() bool { return s.history.Redo() }

func filter(slots []domain.Slot, keep func(domain.Slot) bool) []domain.Slot {
	out := make([]domain.Slot, 0, len(slots))
	for _, slot := range slots {
		if keep(slot) {
			out = append(out, slot)
		}
	}
	return out
}
