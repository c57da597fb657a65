package schedule

import (
	"testing"

	"lineupplanner/internal/domain"

	"github.com/stretchr/testify/assert"
)

func slot(id, event, artist, stage, start, end string) domain.Slot {
	return domain.Slot{ID: id, EventID: event, ArtistID: artist, Stage: stage, StartTime: start, EndTime: end}
}

func TestDetectConflicts(t *testing.T) {
	tests := []struct {
		name       string
		slots      []domain.Slot
		wantArtist []string
		wantStage  []string
	}{
		{
			name: "artist in two places",
			slots: []domain.Slot{
				slot("s1", "ev-1", "dj-nova", "Main", "20:00", "21:00"),
				slot("s2", "ev-1", "dj-nova", "Patio", "20:30", "21:30"),
			},
			wantArtist: []string{"s1", "s2"},
			wantStage:  []string{},
		},
		{
			name: "stage double booked",
			slots: []domain.Slot{
				slot("s1", "ev-1", "dj-nova", "Main", "20:00", "21:00"),
				slot("s2", "ev-1", "dj-echo", "Main", "20:45", "21:30"),
			},
			wantArtist: []string{},
			wantStage:  []string{"s1", "s2"},
		},
		{
			name: "same stage name in different events",
			slots: []domain.Slot{
				slot("s1", "ev-1", "dj-nova", "Main", "20:00", "21:00"),
				slot("s2", "ev-2", "dj-echo", "Main", "20:00", "21:00"),
			},
			wantArtist: []string{},
			wantStage:  []string{},
		},
		{
			name: "back to back is fine",
			slots: []domain.Slot{
				slot("s1", "ev-1", "dj-nova", "Main", "23:00", "00:00"),
				slot("s2", "ev-1", "dj-nova", "Main", "00:00", "01:00"),
			},
			wantArtist: []string{},
			wantStage:  []string{},
		},
		{
			name: "slot in several pairs listed once",
			slots: []domain.Slot{
				slot("s1", "ev-1", "a", "Main", "20:00", "23:00"),
				slot("s2", "ev-1", "b", "Main", "20:30", "21:00"),
				slot("s3", "ev-1", "c", "Main", "22:00", "22:30"),
			},
			wantArtist: []string{},
			wantStage:  []string{"s1", "s2", "s3"},
		},
	}

	ids := func(slots []domain.Slot) []string {
		out := []string{}
		for _, s := range slots {
			out = append(out, s.ID)
		}
		return out
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectConflicts(tt.slots)
			assert.Equal(t, tt.wantArtist, ids(got.ArtistConflicts))
			assert.Equal(t, tt.wantStage, ids(got.StageConflicts))
		})
	}
}
