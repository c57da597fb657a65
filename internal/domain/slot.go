package domain

import "time"

// SlotStatus is the artist's answer to a booking.
type SlotStatus string

const (
	SlotStatusPending  SlotStatus = "pending"
	SlotStatusAccepted SlotStatus = "accepted"
	SlotStatusDeclined SlotStatus = "declined"
)

// Valid reports whether s is a known slot status.
func (s SlotStatus) Valid() bool {
	switch s {
	case SlotStatusPending, SlotStatusAccepted, SlotStatusDeclined:
		return true
	}
	return false
}

// Slot is one artist's performance on one stage of one event, for one contiguous time range.
// swagger:model Slot
type Slot struct {
	ID        string     `json:"id"`
	EventID   string     `json:"eventId"`
	ArtistID  string     `json:"artistId"`
	Stage     string     `json:"stage"`
	StartTime string     `json:"startTime"`
	EndTime   string     `json:"endTime"`
	Status    SlotStatus `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Equal reports whether s and o hold the same values.
func (s Slot) Equal(o Slot) bool {
	return s.ID == o.ID &&
		s.EventID == o.EventID &&
		s.ArtistID == o.ArtistID &&
		s.Stage == o.Stage &&
		s.StartTime == o.StartTime &&
		s.EndTime == o.EndTime &&
		s.Status == o.Status &&
		s.CreatedAt.Equal(o.CreatedAt)
}

// CloneSlots returns a copy of slots. A nil input yields an empty, non-nil slice.
func CloneSlots(slots []Slot) []Slot {
	out := make([]Slot, len(slots))
	copy(out, slots)
	return out
}

// SlotsEqual reports whether a and b hold equal slots in the same order.
func SlotsEqual(a, b []Slot) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// SlotAssignment is the input for placing an artist on the grid.
// An empty EndTime asks the service to use the default set length.
type SlotAssignment struct {
	EventID   string `json:"eventId"`
	Stage     string `json:"stage"`
	ArtistID  string `json:"artistId"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// SlotUpdate carries a partial update for a slot. Nil fields are left unchanged.
type SlotUpdate struct {
	ArtistID  *string     `json:"artistId,omitempty"`
	Stage     *string     `json:"stage,omitempty"`
	StartTime *string     `json:"startTime,omitempty"`
	EndTime   *string     `json:"endTime,omitempty"`
	Status    *SlotStatus `json:"status,omitempty"`
}

// Apply merges the non-nil fields of u into s.
func (u SlotUpdate) Apply(s *Slot) {
	if u.ArtistID != nil {
		s.ArtistID = *u.ArtistID
	}
	if u.Stage != nil {
		s.Stage = *u.Stage
	}
	if u.StartTime != nil {
		s.StartTime = *u.StartTime
	}
	if u.EndTime != nil {
		s.EndTime = *u.EndTime
	}
	if u.Status != nil {
		s.Status = *u.Status
	}
}

// ConflictReport lists slots that clash with at least one other slot.
// swagger:model ConflictReport
type ConflictReport struct {
	ArtistConflicts []Slot `json:"artistConflicts"`
	StageConflicts  []Slot `json:"stageConflicts"`
}
