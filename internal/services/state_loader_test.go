package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"lineupplanner/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storeWith(t *testing.T, st *domain.State) *fakeStateStore {
	t.Helper()
	raw, err := json.Marshal(st)
	require.NoError(t, err)
	return &fakeStateStore{payload: raw}
}

func TestLoadState_Fallbacks(t *testing.T) {
	tests := []struct {
		name  string
		store *fakeStateStore
	}{
		{"nothing stored", &fakeStateStore{}},
		{"backend error", &fakeStateStore{loadErr: errors.New("connection refused")}},
		{"malformed blob", &fakeStateStore{payload: []byte("{not json")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, history := loadState(context.Background(), tt.store, testLogger, testRoster, DemoState())

			seed := DemoState()
			require.Len(t, st.Events, 1)
			assert.Equal(t, "bpm-010", st.Events[0].ID)
			assert.True(t, domain.SlotsEqual(seed.Slots, st.Slots))
			assert.Equal(t, testRoster, st.Artists)
			assert.Equal(t, "bpm-010", st.ActiveEventID)
			assert.Equal(t, 0, st.HistoryIndex)
			assert.Equal(t, 1, history.Len())
			assert.True(t, domain.SlotsEqual(st.Slots, history.Current()))
		})
	}
}

func TestLoadState_SeedMergedOnce(t *testing.T) {
	ctx := context.Background()
	first, _ := loadState(ctx, &fakeStateStore{}, testLogger, testRoster, DemoState())

	again, history := loadState(ctx, storeWith(t, first), testLogger, testRoster, DemoState())
	assert.Len(t, again.Events, 1)
	assert.Len(t, again.Slots, 1)
	assert.Equal(t, 1, history.Len())
}

func TestLoadState_RestoresHistory(t *testing.T) {
	a := domain.Slot{ID: "s1", EventID: "e1", ArtistID: "dj-nova", Stage: "Main", StartTime: "22:00", EndTime: "23:00", Status: domain.SlotStatusPending, CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	b := a
	b.ID, b.StartTime, b.EndTime = "s2", "23:00", "00:00"

	stored := &domain.State{
		Events:       []domain.Event{{ID: "e1", Title: "Night", Stages: []string{"Main"}, Hours: domain.Hours{Start: "22:00", End: "02:00"}, Status: domain.EventStatusDraft}},
		Slots:        []domain.Slot{a},
		History:      [][]domain.Slot{{}, {a}, {a, b}},
		HistoryIndex: 1,
	}
	st, history := loadState(context.Background(), storeWith(t, stored), testLogger, testRoster, nil)

	assert.Equal(t, 1, st.HistoryIndex)
	assert.Equal(t, 3, history.Len())
	require.True(t, history.Redo(), "redo branch survives a reload")
	assert.True(t, domain.SlotsEqual([]domain.Slot{a, b}, history.Current()))
}

func TestLoadState_InconsistentHistoryStartsOver(t *testing.T) {
	a := domain.Slot{ID: "s1", EventID: "e1", ArtistID: "dj-nova", Stage: "Main", StartTime: "22:00", EndTime: "23:00", Status: domain.SlotStatusPending}
	stored := &domain.State{
		Events:       []domain.Event{{ID: "e1", Stages: []string{"Main"}, Hours: domain.Hours{Start: "22:00", End: "02:00"}, Status: domain.EventStatusDraft}},
		Slots:        []domain.Slot{a},
		History:      [][]domain.Slot{{}},
		HistoryIndex: 4,
	}
	st, history := loadState(context.Background(), storeWith(t, stored), testLogger, testRoster, nil)

	assert.Equal(t, 0, st.HistoryIndex)
	assert.Equal(t, 1, history.Len())
	assert.True(t, domain.SlotsEqual([]domain.Slot{a}, history.Current()))
}

func TestLoadState_Sanitizes(t *testing.T) {
	good := domain.Slot{ID: "s1", EventID: "e1", ArtistID: "dj-nova", Stage: "Main", StartTime: "22:00", EndTime: "23:00"}
	stored := &domain.State{
		Events: []domain.Event{
			{ID: "e1", Title: "Kept", Hours: domain.Hours{Start: "22:00", End: "02:00"}},
			{Title: "No id"},
		},
		Artists:       []domain.Artist{{ID: "stale", Name: "Stale"}},
		Slots:         []domain.Slot{good, {ID: "s2", EventID: "e1", Stage: "Main"}},
		ActiveEventID: "gone",
		SelectedSlot:  &domain.Slot{ID: "s2"},
	}
	st, _ := loadState(context.Background(), storeWith(t, stored), testLogger, testRoster, nil)

	require.Len(t, st.Events, 1)
	assert.Equal(t, []string{"Main"}, st.Events[0].Stages)
	assert.Equal(t, domain.EventStatusDraft, st.Events[0].Status)

	require.Len(t, st.Slots, 1)
	assert.Equal(t, "s1", st.Slots[0].ID)
	assert.Equal(t, domain.SlotStatusPending, st.Slots[0].Status)

	assert.Equal(t, testRoster, st.Artists, "the roster replaces stored artists")
	assert.Empty(t, st.ActiveEventID)
	assert.Nil(t, st.SelectedSlot)
}

func TestLoadState_KeepsValidSelection(t *testing.T) {
	slot := domain.Slot{ID: "s1", EventID: "e1", ArtistID: "dj-nova", Stage: "Main", StartTime: "22:00", EndTime: "23:00", Status: domain.SlotStatusAccepted}
	stored := &domain.State{
		Events:        []domain.Event{{ID: "e1", Stages: []string{"Main"}, Status: domain.EventStatusPublished}},
		Slots:         []domain.Slot{slot},
		ActiveEventID: "e1",
		SelectedSlot:  &slot,
	}
	st, _ := loadState(context.Background(), storeWith(t, stored), testLogger, testRoster, nil)

	assert.Equal(t, "e1", st.ActiveEventID)
	require.NotNil(t, st.SelectedSlot)
	assert.Equal(t, "s1", st.SelectedSlot.ID)
}
