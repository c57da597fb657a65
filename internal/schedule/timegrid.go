package schedule

import "lineupplanner/internal/domain"

// TimeGrid returns the 15-minute labels covering the window [start, end].
//
// When end is earlier than start the window crosses midnight and the labels run
// start..23:45 then 00:00..end. When start equals end the grid covers one full
// day beginning at start. A start that is not on a quarter hour is snapped down.
func TimeGrid(start, end string) ([]string, error) {
	startMin, err := ParseClock(start)
	if err != nil {
		return nil, err
	}
	endMin, err := ParseClock(end)
	if err != nil {
		return nil, err
	}

	first := startMin - startMin%SlotMinutes
	span := endMin - first
	switch {
	case endMin < startMin:
		span += minutesPerDay
	case endMin == startMin:
		span = minutesPerDay
	}
	// Never wrap onto the first label again.
	if last := minutesPerDay - SlotMinutes; span > last {
		span = last
	}

	labels := make([]string, 0, span/SlotMinutes+1)
	for off := 0; off <= span; off += SlotMinutes {
		labels = append(labels, FormatClock(first+off))
	}
	return labels, nil
}

// EventGrid is TimeGrid over the event's operating hours.
func EventGrid(e domain.Event) ([]string, error) {
	return TimeGrid(e.Hours.Start, e.Hours.End)
}

// DefaultEnd returns the label DefaultSetSlots steps after start on the grid,
// clipped to the last label and to the last label that still sorts after start
// on the event night. It reports false when no such end exists, including when
// start is not on the grid.
func DefaultEnd(grid []string, start string) (string, bool) {
	idx := -1
	for i, label := range grid {
		if label == start {
			idx = i
			break
		}
	}
	if idx < 0 {
		return "", false
	}
	// Labels past the next-day cutoff sort before start, so step back until one sorts after it.
	for end := min(idx+DefaultSetSlots, len(grid)-1); end > idx; end-- {
		if ValidRange(start, grid[end]) == nil {
			return grid[end], true
		}
	}
	return "", false
}
