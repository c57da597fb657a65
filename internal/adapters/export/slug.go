package export

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Slug lowercases s, folds accented letters to ASCII, collapses every run of
// other characters into one hyphen, and trims hyphens from both ends.
func Slug(s string) string {
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	hyphen := false
	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			hyphen = false
			continue
		}
		if !hyphen && b.Len() > 0 {
			b.WriteByte('-')
			hyphen = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// SlotFilename names a single-slot calendar file: {date}_{event-slug}_{artist-slug}.ics.
func SlotFilename(eventDate, eventTitle, artistName string) string {
	return eventDate + "_" + Slug(eventTitle) + "_" + Slug(artistName) + ".ics"
}

// LineupFilename names a whole-event export: {title}-lineup-{date}.{ext}.
func LineupFilename(eventTitle, eventDate, ext string) string {
	return eventTitle + "-lineup-" + eventDate + "." + ext
}
