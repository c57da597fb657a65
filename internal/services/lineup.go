package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"lineupplanner/internal/domain"
	"lineupplanner/internal/schedule"
)

// LineupOptions configures NewLineupService. Zero values pick defaults.
type LineupOptions struct {
	// Roster replaces whatever artist list was stored.
	Roster []domain.Artist
	// Seed records are merged into the loaded state by ID. Nil disables seeding.
	Seed        *domain.State
	SaveTimeout time.Duration
	Now         func() time.Time
	NewID       func(prefix string) string
}

type lineupService struct {
	mu sync.Mutex

	logger        *slog.Logger
	events        []domain.Event
	artists       []domain.Artist
	slots         *schedule.Store
	activeEventID string
	selected      *domain.Slot

	persist *persister
	closed  bool
	now     func() time.Time
	newID   func(prefix string) string
}

// NewLineupService loads the session from store and returns the lineup service
// that owns it from then on. Loading never fails; see loadState.
func NewLineupService(ctx context.Context, logger *slog.Logger, store domain.StateStore, opts LineupOptions) domain.LineupService {
	if opts.SaveTimeout <= 0 {
		opts.SaveTimeout = 5 * time.Second
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = func(prefix string) string { return prefix + "-" + uuid.NewString() }
	}

	st, history := loadState(ctx, store, logger, opts.Roster, opts.Seed)
	s := &lineupService{
		logger:        logger,
		events:        st.Events,
		artists:       st.Artists,
		activeEventID: st.ActiveEventID,
		selected:      st.SelectedSlot,
		persist:       newPersister(store, logger, opts.SaveTimeout),
		now:           opts.Now,
		newID:         opts.NewID,
	}
	s.slots = schedule.NewStore(history, func() string { return s.newID("slot") }, s.now)
	logger.InfoContext(ctx, "lineup session loaded",
		"events", len(s.events), "artists", len(s.artists), "slots", len(st.Slots), "history_index", st.HistoryIndex)
	return s
}

func (s *lineupService) Snapshot() *domain.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *lineupService) snapshotLocked() *domain.State {
	h := s.slots.History()
	st := &domain.State{
		Events:        s.events,
		Artists:       s.artists,
		Slots:         h.Current(),
		ActiveEventID: s.activeEventID,
		SelectedSlot:  s.selected,
		History:       h.Entries(),
		HistoryIndex:  h.Cursor(),
	}
	return st.Clone()
}

// saveLocked hands the current state to the background writer.
func (s *lineupService) saveLocked(ctx context.Context) {
	if s.closed {
		return
	}
	payload, err := json.Marshal(s.snapshotLocked())
	if err != nil {
		s.logger.ErrorContext(ctx, "encode lineup state failed", "err", err)
		return
	}
	s.persist.enqueue(payload)
}

func (s *lineupService) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	s.persist.close()
	return nil
}

func (s *lineupService) Artists() []domain.Artist {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Artist{}, s.artists...)
}

func (s *lineupService) Events() []domain.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Event, len(s.events))
	for i, e := range s.events {
		out[i] = e.Clone()
	}
	return out
}

func (s *lineupService) eventIndexLocked(eventID string) int {
	for i, e := range s.events {
		if e.ID == eventID {
			return i
		}
	}
	return -1
}

func (s *lineupService) eventLocked(eventID string) (domain.Event, error) {
	idx := s.eventIndexLocked(eventID)
	if idx < 0 {
		return domain.Event{}, fmt.Errorf("event %s: %w", eventID, domain.ErrNotFound)
	}
	return s.events[idx], nil
}

// isLockedLocked reports the lock flag of the slot's owning event. A dangling event is treated as unlocked.
func (s *lineupService) isLockedLocked(eventID string) bool {
	if idx := s.eventIndexLocked(eventID); idx >= 0 {
		return s.events[idx].Locked
	}
	return false
}

func (s *lineupService) CreateEvent(ctx context.Context, in domain.EventInput) (domain.Event, error) {
	if len(in.Stages) == 0 {
		return domain.Event{}, fmt.Errorf("%w: at least one stage is required", domain.ErrInvalidInput)
	}
	if _, err := schedule.TimeGrid(in.Hours.Start, in.Hours.End); err != nil {
		return domain.Event{}, err
	}
	status := in.Status
	if status == "" {
		status = domain.EventStatusDraft
	}
	if !status.Valid() {
		return domain.Event{}, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	event := domain.NewEvent(in.Title, in.Date, in.Stages, in.Hours, status, s.now().UTC())
	event.ID = s.newID("evt")
	event.Locked = in.Locked
	s.events = append(s.events, *event)
	s.activeEventID = event.ID
	s.saveLocked(ctx)

	s.logger.InfoContext(ctx, "event created", "event_id", event.ID, "title", event.Title)
	return event.Clone(), nil
}

func (s *lineupService) UpdateEvent(ctx context.Context, eventID string, upd domain.EventUpdate) (domain.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.eventIndexLocked(eventID)
	if idx < 0 {
		return domain.Event{}, fmt.Errorf("event %s: %w", eventID, domain.ErrNotFound)
	}
	upd.Apply(&s.events[idx])
	s.saveLocked(ctx)
	return s.events[idx].Clone(), nil
}

func (s *lineupService) ToggleLock(ctx context.Context, eventID string) (domain.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.eventIndexLocked(eventID)
	if idx < 0 {
		return domain.Event{}, fmt.Errorf("event %s: %w", eventID, domain.ErrNotFound)
	}
	s.events[idx].Locked = !s.events[idx].Locked
	s.saveLocked(ctx)

	s.logger.InfoContext(ctx, "event lock toggled", "event_id", eventID, "locked", s.events[idx].Locked)
	return s.events[idx].Clone(), nil
}

func (s *lineupService) SetActiveEvent(ctx context.Context, eventID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.eventIndexLocked(eventID) < 0 {
		return fmt.Errorf("event %s: %w", eventID, domain.ErrNotFound)
	}
	s.activeEventID = eventID
	s.saveLocked(ctx)
	return nil
}

// SelectSlot marks a slot for detail editing. An empty slotID clears the selection.
func (s *lineupService) SelectSlot(ctx context.Context, slotID string) (*domain.Slot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if slotID == "" {
		s.selected = nil
		s.saveLocked(ctx)
		return nil, nil
	}
	slot, ok := s.slots.Find(slotID)
	if !ok {
		return nil, fmt.Errorf("slot %s: %w", slotID, domain.ErrNotFound)
	}
	s.selected = &slot
	s.saveLocked(ctx)
	out := slot
	return &out, nil
}

func (s *lineupService) TimeGrid(eventID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	event, err := s.eventLocked(eventID)
	if err != nil {
		return nil, err
	}
	return schedule.EventGrid(event)
}

func (s *lineupService) EventSlots(eventID string) ([]domain.Slot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.eventLocked(eventID); err != nil {
		return nil, err
	}
	return s.eventSlotsLocked(eventID), nil
}

func (s *lineupService) eventSlotsLocked(eventID string) []domain.Slot {
	out := []domain.Slot{}
	for _, slot := range s.slots.Slots() {
		if slot.EventID == eventID {
			out = append(out, slot)
		}
	}
	return out
}

func (s *lineupService) Lineup(eventID string) (*domain.Lineup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	event, err := s.eventLocked(eventID)
	if err != nil {
		return nil, err
	}
	return &domain.Lineup{
		Event:   event.Clone(),
		Slots:   s.eventSlotsLocked(eventID),
		Artists: append([]domain.Artist{}, s.artists...),
	}, nil
}

// PublicLineup is Lineup restricted to published events; drafts read as not found.
// Only booked artists are listed, without their email addresses.
func (s *lineupService) PublicLineup(eventID string) (*domain.Lineup, error) {
	lineup, err := s.Lineup(eventID)
	if err != nil {
		return nil, err
	}
	if lineup.Event.Status != domain.EventStatusPublished {
		return nil, fmt.Errorf("event %s: %w", eventID, domain.ErrNotFound)
	}
	booked := make(map[string]bool, len(lineup.Slots))
	for _, slot := range lineup.Slots {
		booked[slot.ArtistID] = true
	}
	artists := []domain.Artist{}
	for _, a := range lineup.Artists {
		if booked[a.ID] {
			a.Email = ""
			artists = append(artists, a)
		}
	}
	lineup.Artists = artists
	return lineup, nil
}

func (s *lineupService) Conflicts(eventID string) (domain.ConflictReport, error) {
	slots, err := s.EventSlots(eventID)
	if err != nil {
		return domain.ConflictReport{}, err
	}
	return schedule.DetectConflicts(slots), nil
}

// ArtistBookings lists the artist's slots with their events. Slots whose event is gone are skipped.
func (s *lineupService) ArtistBookings(artistID string) ([]domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := domain.FindArtist(s.artists, artistID); !ok {
		return nil, fmt.Errorf("artist %s: %w", artistID, domain.ErrNotFound)
	}
	out := []domain.Booking{}
	for _, slot := range s.slots.Slots() {
		if slot.ArtistID != artistID {
			continue
		}
		event, err := s.eventLocked(slot.EventID)
		if err != nil {
			continue
		}
		out = append(out, domain.Booking{Slot: slot, Event: event.Clone()})
	}
	return out, nil
}

func (s *lineupService) AssignSlot(ctx context.Context, in domain.SlotAssignment) (domain.Slot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	event, err := s.eventLocked(in.EventID)
	if err != nil {
		return domain.Slot{}, err
	}
	if !event.HasStage(in.Stage) {
		return domain.Slot{}, fmt.Errorf("%w: event %s has no stage %q", domain.ErrInvalidInput, event.ID, in.Stage)
	}
	if _, ok := domain.FindArtist(s.artists, in.ArtistID); !ok {
		return domain.Slot{}, fmt.Errorf("artist %s: %w", in.ArtistID, domain.ErrNotFound)
	}
	end := in.EndTime
	if end == "" {
		grid, err := schedule.EventGrid(event)
		if err != nil {
			return domain.Slot{}, err
		}
		var ok bool
		if end, ok = schedule.DefaultEnd(grid, in.StartTime); !ok {
			return domain.Slot{}, fmt.Errorf("%w: no room for a set starting at %q", domain.ErrInvalidInput, in.StartTime)
		}
	}

	slot, err := s.slots.Assign(event.Locked, event.ID, in.Stage, in.ArtistID, in.StartTime, end)
	if err != nil {
		s.logRejected(ctx, "assign", err, "event_id", event.ID)
		return domain.Slot{}, err
	}
	s.saveLocked(ctx)
	s.logger.InfoContext(ctx, "slot assigned", "slot_id", slot.ID, "event_id", slot.EventID,
		"stage", slot.Stage, "artist_id", slot.ArtistID, "start", slot.StartTime, "end", slot.EndTime)
	return slot, nil
}

func (s *lineupService) UpdateSlot(ctx context.Context, slotID string, upd domain.SlotUpdate) (domain.Slot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateSlotLocked(ctx, slotID, upd)
}

func (s *lineupService) updateSlotLocked(ctx context.Context, slotID string, upd domain.SlotUpdate) (domain.Slot, error) {
	current, ok := s.slots.Find(slotID)
	if !ok {
		return domain.Slot{}, fmt.Errorf("slot %s: %w", slotID, domain.ErrNotFound)
	}
	if upd.Stage != nil {
		event, err := s.eventLocked(current.EventID)
		if err != nil {
			return domain.Slot{}, err
		}
		if !event.HasStage(*upd.Stage) {
			return domain.Slot{}, fmt.Errorf("%w: event %s has no stage %q", domain.ErrInvalidInput, event.ID, *upd.Stage)
		}
	}
	if upd.ArtistID != nil {
		if _, ok := domain.FindArtist(s.artists, *upd.ArtistID); !ok {
			return domain.Slot{}, fmt.Errorf("artist %s: %w", *upd.ArtistID, domain.ErrNotFound)
		}
	}
	slot, err := s.slots.Update(s.isLockedLocked(current.EventID), slotID, upd)
	if err != nil {
		s.logRejected(ctx, "update", err, "slot_id", slotID)
		return domain.Slot{}, err
	}
	if s.selected != nil && s.selected.ID == slotID {
		sel := slot
		s.selected = &sel
	}
	s.saveLocked(ctx)
	return slot, nil
}

// RemoveSlot deletes a slot. An unknown ID is not an error and still adds an undo step.
func (s *lineupService) RemoveSlot(ctx context.Context, slotID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	locked := false
	if current, ok := s.slots.Find(slotID); ok {
		locked = s.isLockedLocked(current.EventID)
	}
	if err := s.slots.Remove(locked, slotID); err != nil {
		s.logRejected(ctx, "remove", err, "slot_id", slotID)
		return err
	}
	if s.selected != nil && s.selected.ID == slotID {
		s.selected = nil
	}
	s.saveLocked(ctx)
	return nil
}

func (s *lineupService) ClearEventSlots(ctx context.Context, eventID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	event, err := s.eventLocked(eventID)
	if err != nil {
		return err
	}
	if err := s.slots.ClearForEvent(event.Locked, eventID); err != nil {
		s.logRejected(ctx, "clear", err, "event_id", eventID)
		return err
	}
	if s.selected != nil && s.selected.EventID == eventID {
		s.selected = nil
	}
	s.saveLocked(ctx)
	s.logger.InfoContext(ctx, "event slots cleared", "event_id", eventID)
	return nil
}

// RespondToBooking records an artist's answer to one of their own bookings.
func (s *lineupService) RespondToBooking(ctx context.Context, slotID, artistID string, status domain.SlotStatus) (domain.Slot, error) {
	if status != domain.SlotStatusAccepted && status != domain.SlotStatusDeclined {
		return domain.Slot{}, fmt.Errorf("%w: response must be accepted or declined", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.slots.Find(slotID)
	if !ok {
		return domain.Slot{}, fmt.Errorf("slot %s: %w", slotID, domain.ErrNotFound)
	}
	if current.ArtistID != artistID {
		return domain.Slot{}, fmt.Errorf("slot %s belongs to another artist: %w", slotID, domain.ErrForbidden)
	}
	return s.updateSlotLocked(ctx, slotID, domain.SlotUpdate{Status: &status})
}

func (s *lineupService) Undo(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.slots.Undo() {
		return false
	}
	s.dropStaleSelectionLocked()
	s.saveLocked(ctx)
	return true
}

func (s *lineupService) Redo(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.slots.Redo() {
		return false
	}
	s.dropStaleSelectionLocked()
	s.saveLocked(ctx)
	return true
}

func (s *lineupService) dropStaleSelectionLocked() {
	if s.selected == nil {
		return
	}
	if slot, ok := s.slots.Find(s.selected.ID); ok {
		s.selected = &slot
		return
	}
	s.selected = nil
}

func (s *lineupService) logRejected(ctx context.Context, op string, err error, kv ...any) {
	s.logger.DebugContext(ctx, "slot "+op+" rejected", append([]any{"err", err}, kv...)...)
}
