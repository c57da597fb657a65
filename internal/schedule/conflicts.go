package schedule

import "lineupplanner/internal/domain"

// DetectConflicts flags artists booked in two places at once (any stage) and
// stages holding two overlapping slots within one event. Each list keeps the
// first-seen order and holds every slot at most once. It never mutates slots.
func DetectConflicts(slots []domain.Slot) domain.ConflictReport {
	byArtist := groupBy(slots, func(s domain.Slot) string { return s.ArtistID })
	byStage := groupBy(slots, func(s domain.Slot) string { return s.EventID + "\x00" + s.Stage })
	return domain.ConflictReport{
		ArtistConflicts: overlapping(slots, byArtist),
		StageConflicts:  overlapping(slots, byStage),
	}
}

// groupBy returns slot indexes per key, keys in first-seen order.
func groupBy(slots []domain.Slot, key func(domain.Slot) string) [][]int {
	pos := make(map[string]int)
	var groups [][]int
	for i, s := range slots {
		k := key(s)
		g, ok := pos[k]
		if !ok {
			g = len(groups)
			pos[k] = g
			groups = append(groups, nil)
		}
		groups[g] = append(groups[g], i)
	}
	return groups
}

func overlapping(slots []domain.Slot, groups [][]int) []domain.Slot {
	flagged := make([]bool, len(slots))
	var order []int
	mark := func(i int) {
		if !flagged[i] {
			flagged[i] = true
			order = append(order, i)
		}
	}
	for _, g := range groups {
		for a := 0; a < len(g); a++ {
			for b := a + 1; b < len(g); b++ {
				x, y := slots[g[a]], slots[g[b]]
				if Overlaps(x.StartTime, x.EndTime, y.StartTime, y.EndTime) {
					mark(g[a])
					mark(g[b])
				}
			}
		}
	}
	out := make([]domain.Slot, 0, len(order))
	for _, i := range order {
		out = append(out, slots[i])
	}
	return out
}
