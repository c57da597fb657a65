package schedule

// Overlaps reports whether [start1, end1) and [start2, end2) intersect on the
// event night. Touching endpoints do not overlap. Malformed labels never overlap.
func Overlaps(start1, end1, start2, end2 string) bool {
	s1, err := NightMinutes(start1)
	if err != nil {
		return false
	}
	e1, err := NightMinutes(end1)
	if err != nil {
		return false
	}
	s2, err := NightMinutes(start2)
	if err != nil {
		return false
	}
	e2, err := NightMinutes(end2)
	if err != nil {
		return false
	}
	return s1 < e2 && s2 < e1
}
