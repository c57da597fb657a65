package services

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"lineupplanner/internal/domain"
	"lineupplanner/internal/schedule"
)

// DemoState returns the built-in demo records merged into every loaded state:
// one draft event with a single accepted opening set.
func DemoState() *domain.State {
	return &domain.State{
		Events: []domain.Event{{
			ID:        "bpm-010",
			Title:     "BPM @ Gratitude",
			Date:      "2025-06-21",
			Stages:    []string{"Main"},
			Hours:     domain.Hours{Start: "17:00", End: "22:00"},
			Status:    domain.EventStatusDraft,
			CreatedAt: time.Date(2024, 12, 1, 10, 0, 0, 0, time.UTC),
		}},
		Slots: []domain.Slot{{
			ID:        "slot-neihouse-opening",
			EventID:   "bpm-010",
			ArtistID:  "neihouse",
			Stage:     "Main",
			StartTime: "17:00",
			EndTime:   "18:30",
			Status:    domain.SlotStatusAccepted,
			CreatedAt: time.Date(2024, 12, 1, 12, 0, 0, 0, time.UTC),
		}},
		ActiveEventID: "bpm-010",
	}
}

// loadState reads the stored session and repairs it. It never fails: a missing
// or unreadable blob yields an empty state. The roster always comes from the
// caller, never from storage; seed events and slots are added by ID when absent.
func loadState(ctx context.Context, store domain.StateStore, logger *slog.Logger, roster []domain.Artist, seed *domain.State) (*domain.State, *schedule.History) {
	st := &domain.State{}
	raw, err := store.Load(ctx)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		logger.InfoContext(ctx, "no stored lineup state, starting fresh")
	case err != nil:
		logger.WarnContext(ctx, "load lineup state failed, starting fresh", "err", err)
	default:
		var decoded domain.State
		if err := json.Unmarshal(raw, &decoded); err != nil {
			logger.WarnContext(ctx, "stored lineup state is malformed, discarding", "err", err)
		} else {
			st = &decoded
		}
	}

	st.Events = sanitizeEvents(st.Events)
	st.Slots = sanitizeSlots(st.Slots)
	for i := range st.History {
		st.History[i] = sanitizeSlots(st.History[i])
	}
	st.Artists = append([]domain.Artist{}, roster...)

	seeded := mergeSeed(st, seed)

	var history *schedule.History
	if seeded {
		history = schedule.NewHistory(st.Slots)
	} else {
		var restored bool
		history, restored = schedule.RestoreHistory(st.History, st.HistoryIndex, st.Slots)
		if !restored && len(st.History) > 0 {
			logger.WarnContext(ctx, "stored history does not match slots, starting a new history",
				"entries", len(st.History), "index", st.HistoryIndex)
		}
	}
	st.History = history.Entries()
	st.HistoryIndex = history.Cursor()

	if st.ActiveEventID != "" && !hasEvent(st.Events, st.ActiveEventID) {
		st.ActiveEventID = ""
	}
	if st.ActiveEventID == "" && seed != nil && hasEvent(st.Events, seed.ActiveEventID) {
		st.ActiveEventID = seed.ActiveEventID
	}
	if st.SelectedSlot != nil && !hasSlot(st.Slots, st.SelectedSlot.ID) {
		st.SelectedSlot = nil
	}
	return st, history
}

// mergeSeed appends seed records whose IDs are absent and reports whether any slot was added.
func mergeSeed(st *domain.State, seed *domain.State) bool {
	if seed == nil {
		return false
	}
	for _, e := range seed.Events {
		if !hasEvent(st.Events, e.ID) {
			st.Events = append(st.Events, e.Clone())
		}
	}
	added := false
	for _, s := range seed.Slots {
		if !hasSlot(st.Slots, s.ID) {
			st.Slots = append(st.Slots, s)
			added = true
		}
	}
	return added
}

func sanitizeEvents(events []domain.Event) []domain.Event {
	out := make([]domain.Event, 0, len(events))
	for _, e := range events {
		if e.ID == "" {
			continue
		}
		if len(e.Stages) == 0 {
			e.Stages = []string{"Main"}
		}
		if !e.Status.Valid() {
			e.Status = domain.EventStatusDraft
		}
		out = append(out, e)
	}
	return out
}

func sanitizeSlots(slots []domain.Slot) []domain.Slot {
	out := make([]domain.Slot, 0, len(slots))
	for _, s := range slots {
		if s.ID == "" || s.EventID == "" || s.ArtistID == "" || s.Stage == "" {
			continue
		}
		if !s.Status.Valid() {
			s.Status = domain.SlotStatusPending
		}
		out = append(out, s)
	}
	return out
}

func hasEvent(events []domain.Event, id string) bool {
	for _, e := range events {
		if e.ID == id {
			return true
		}
	}
	return false
}

func hasSlot(slots []domain.Slot, id string) bool {
	for _, s := range slots {
		if s.ID == id {
			return true
		}
	}
	return false
}
