package domain

import "context"

// State is the whole lineup session: the persisted blob and the read model handed to callers.
// Slots always equals History[HistoryIndex].
// swagger:model State
type State struct {
	Events        []Event  `json:"events"`
	Artists       []Artist `json:"artists"`
	Slots         []Slot   `json:"slots"`
	ActiveEventID string   `json:"activeEventId"`
	SelectedSlot  *Slot    `json:"selectedSlot"`
	History       [][]Slot `json:"history"`
	HistoryIndex  int      `json:"historyIndex"`
}

// Clone returns a deep copy of s.
func (s *State) Clone() *State {
	if s == nil {
		return nil
	}
	out := &State{
		Events:        make([]Event, len(s.Events)),
		Artists:       append([]Artist{}, s.Artists...),
		Slots:         CloneSlots(s.Slots),
		ActiveEventID: s.ActiveEventID,
		History:       make([][]Slot, len(s.History)),
		HistoryIndex:  s.HistoryIndex,
	}
	for i, e := range s.Events {
		out.Events[i] = e.Clone()
	}
	for i, entry := range s.History {
		out.History[i] = CloneSlots(entry)
	}
	if s.SelectedSlot != nil {
		sel := *s.SelectedSlot
		out.SelectedSlot = &sel
	}
	return out
}

// StateStore persists the serialized session under one fixed key.
// Load returns ErrNotFound when nothing has been stored yet.
type StateStore interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, payload []byte) error
}
