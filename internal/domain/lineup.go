package domain

import "context"

// Lineup is one event with its slots and the roster needed to render them.
// swagger:model Lineup
type Lineup struct {
	Event   Event    `json:"event"`
	Slots   []Slot   `json:"slots"`
	Artists []Artist `json:"artists"`
}

// Booking is a slot as seen from the artist's side, joined with its event.
// swagger:model Booking
type Booking struct {
	Slot  Slot  `json:"slot"`
	Event Event `json:"event"`
}

// EventInput is the input for creating an event.
type EventInput struct {
	Title  string      `json:"title"`
	Date   string      `json:"date"`
	Stages []string    `json:"stages"`
	Hours  Hours       `json:"hours"`
	Status EventStatus `json:"status"`
	Locked bool        `json:"locked"`
}

// LineupService is the lineup session: the single owner of events, artists, slots,
// the active event, the slot selection and the undo/redo history.
// All reads return copies; all writes go through these methods.
type LineupService interface {
	Snapshot() *State
	Artists() []Artist
	Events() []Event

	CreateEvent(ctx context.Context, in EventInput) (Event, error)
	UpdateEvent(ctx context.Context, eventID string, upd EventUpdate) (Event, error)
	ToggleLock(ctx context.Context, eventID string) (Event, error)
	SetActiveEvent(ctx context.Context, eventID string) error
	SelectSlot(ctx context.Context, slotID string) (*Slot, error)

	TimeGrid(eventID string) ([]string, error)
	EventSlots(eventID string) ([]Slot, error)
	Lineup(eventID string) (*Lineup, error)
	PublicLineup(eventID string) (*Lineup, error)
	Conflicts(eventID string) (ConflictReport, error)
	ArtistBookings(artistID string) ([]Booking, error)

	AssignSlot(ctx context.Context, in SlotAssignment) (Slot, error)
	UpdateSlot(ctx context.Context, slotID string, upd SlotUpdate) (Slot, error)
	RemoveSlot(ctx context.Context, slotID string) error
	ClearEventSlots(ctx context.Context, eventID string) error
	RespondToBooking(ctx context.Context, slotID, artistID string, status SlotStatus) (Slot, error)
	Undo(ctx context.Context) bool
	Redo(ctx context.Context) bool

	// Close flushes pending saves and stops the background writer.
	Close() error
}
