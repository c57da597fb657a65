// Package export renders a finished lineup as CSV, iCalendar, and mailto text.
package export

import (
	"sort"
	"strings"

	"lineupplanner/internal/domain"
	"lineupplanner/internal/schedule"
)

const unknownArtist = "Unknown Artist"

var csvHeader = []string{"Stage", "Start Time", "End Time", "Artist", "Genre", "Email", "Status"}

// CSV renders the lineup's slots, sorted by stage and then by start on the
// event night. Every cell is quoted and rows are separated by "\n".
func CSV(l *domain.Lineup) string {
	slots := domain.CloneSlots(l.Slots)
	sort.SliceStable(slots, func(i, j int) bool {
		if slots[i].Stage != slots[j].Stage {
			return slots[i].Stage < slots[j].Stage
		}
		return nightOrder(slots[i].StartTime) < nightOrder(slots[j].StartTime)
	})

	rows := make([]string, 0, len(slots)+1)
	rows = append(rows, csvRow(csvHeader))
	for _, slot := range slots {
		name, genre, email := unknownArtist, "", ""
		if a, ok := domain.FindArtist(l.Artists, slot.ArtistID); ok {
			name, genre, email = a.Name, a.Genre, a.Email
		}
		rows = append(rows, csvRow([]string{slot.Stage, slot.StartTime, slot.EndTime, name, genre, email, string(slot.Status)}))
	}
	return strings.Join(rows, "\n")
}

func csvRow(cells []string) string {
	quoted := make([]string, len(cells))
	for i, c := range cells {
		quoted[i] = `"` + strings.ReplaceAll(c, `"`, `""`) + `"`
	}
	return strings.Join(quoted, ",")
}

// nightOrder sorts malformed labels last.
func nightOrder(label string) int {
	m, err := schedule.NightMinutes(label)
	if err != nil {
		return 1 << 30
	}
	return m
}
