package export

import (
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"

	"lineupplanner/internal/domain"
	"lineupplanner/internal/schedule"
)

const (
	productID = "-//Primordial Groove//Lineup Planner//EN"
	uidDomain = "primordialgroove.com"
)

// ICS renders one VEVENT per slot of the lineup. Clock labels are read in loc
// on the event date; labels before 06:00 fall on the following day.
func ICS(l *domain.Lineup, loc *time.Location) (string, error) {
	cal := newCalendar(l.Event.Title+" Lineup", "Artist lineup for "+l.Event.Title)
	for _, slot := range l.Slots {
		if err := addSlot(cal, l.Event, slot, l.Artists, loc); err != nil {
			return "", err
		}
	}
	return cal.Serialize(), nil
}

// SlotICS renders a calendar holding the single slot.
func SlotICS(event domain.Event, slot domain.Slot, roster []domain.Artist, loc *time.Location) (string, error) {
	name := unknownArtist
	if a, ok := domain.FindArtist(roster, slot.ArtistID); ok {
		name = a.Name
	}
	cal := newCalendar(event.Title+" - "+name, "Performance at "+event.Title)
	if err := addSlot(cal, event, slot, roster, loc); err != nil {
		return "", err
	}
	return cal.Serialize(), nil
}

func newCalendar(name, desc string) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.SetProductId(productID)
	cal.SetCalscale("GREGORIAN")
	cal.SetMethod(ical.MethodPublish)
	cal.SetXWRCalName(name)
	cal.SetXWRCalDesc(desc)
	return cal
}

func addSlot(cal *ical.Calendar, event domain.Event, slot domain.Slot, roster []domain.Artist, loc *time.Location) error {
	start, err := SlotTime(event.Date, slot.StartTime, loc)
	if err != nil {
		return fmt.Errorf("slot %s: %w", slot.ID, err)
	}
	end, err := SlotTime(event.Date, slot.EndTime, loc)
	if err != nil {
		return fmt.Errorf("slot %s: %w", slot.ID, err)
	}

	name, genre := unknownArtist, "Unknown"
	if a, ok := domain.FindArtist(roster, slot.ArtistID); ok {
		name = a.Name
		if a.Genre != "" {
			genre = a.Genre
		}
	}

	ev := cal.AddEvent(slot.ID + "@" + uidDomain)
	stamp := slot.CreatedAt
	if stamp.IsZero() {
		stamp = start
	}
	ev.SetDtStampTime(stamp)
	ev.SetStartAt(start)
	ev.SetEndAt(end)
	ev.SetSummary(name + " - " + slot.Stage)
	ev.SetDescription(fmt.Sprintf("%s\nGenre: %s\nStage: %s\nStatus: %s", event.Title, genre, slot.Stage, slot.Status))
	ev.SetLocation(slot.Stage + " Stage")
	ev.SetStatus(ical.ObjectStatusConfirmed)
	return nil
}

// SlotTime places a clock label on the event night that starts on date (YYYY-MM-DD) in loc.
func SlotTime(date, label string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	day, err := time.ParseInLocation(time.DateOnly, date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: event date %q must be YYYY-MM-DD", domain.ErrInvalidInput, date)
	}
	mins, err := schedule.NightMinutes(label)
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := day.Date()
	return time.Date(y, m, d+mins/(24*60), (mins%(24*60))/60, mins%60, 0, 0, loc), nil
}
