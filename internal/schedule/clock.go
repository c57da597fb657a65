// Package schedule holds the lineup scheduling core: the time grid, overlap
// detection, the slot store with its last-write-wins eviction, and the
// undo/redo history.
package schedule

import (
	"fmt"

	"lineupplanner/internal/domain"
)

const (
	// SlotMinutes is the grid granularity.
	SlotMinutes = 15
	// DefaultSetSlots is the default set length in grid steps (one hour).
	DefaultSetSlots = 4

	minutesPerDay = 24 * 60
	// Labels before this minute of day belong to the following day of the event night.
	nextDayCutoff = 6 * 60
)

// ParseClock converts an "HH:MM" 24-hour label into minutes from midnight.
func ParseClock(label string) (int, error) {
	if len(label) != 5 || label[2] != ':' {
		return 0, fmt.Errorf("%w: time %q must be HH:MM", domain.ErrInvalidInput, label)
	}
	h, okH := twoDigits(label[0], label[1])
	m, okM := twoDigits(label[3], label[4])
	if !okH || !okM || h > 23 || m > 59 {
		return 0, fmt.Errorf("%w: time %q must be HH:MM", domain.ErrInvalidInput, label)
	}
	return h*60 + m, nil
}

func twoDigits(a, b byte) (int, bool) {
	if a < '0' || a > '9' || b < '0' || b > '9' {
		return 0, false
	}
	return int(a-'0')*10 + int(b-'0'), true
}

// FormatClock converts minutes from midnight into an "HH:MM" label, wrapping past midnight.
func FormatClock(mins int) string {
	mins = ((mins % minutesPerDay) + minutesPerDay) % minutesPerDay
	return fmt.Sprintf("%02d:%02d", mins/60, mins%60)
}

// NightMinutes returns the label's position on the event night: hours in [0,6)
// are moved to the following day so that 01:00 sorts after 23:00.
func NightMinutes(label string) (int, error) {
	m, err := ParseClock(label)
	if err != nil {
		return 0, err
	}
	if m < nextDayCutoff {
		m += minutesPerDay
	}
	return m, nil
}

// ValidRange checks that both labels parse and that start is before end on the event night.
func ValidRange(start, end string) error {
	s, err := NightMinutes(start)
	if err != nil {
		return err
	}
	e, err := NightMinutes(end)
	if err != nil {
		return err
	}
	if s >= e {
		return fmt.Errorf("%w: start %s must be before end %s", domain.ErrInvalidInput, start, end)
	}
	return nil
}
