package export

import (
	"fmt"
	"net/url"
	"strings"

	"lineupplanner/internal/domain"
)

// Mailto builds a mailto: link addressed to every booked artist with an email,
// carrying the running order of the event as its body.
func Mailto(l *domain.Lineup) string {
	var (
		recipients []string
		seen       = make(map[string]struct{})
		lines      []string
	)
	for _, slot := range l.Slots {
		name := unknownArtist
		if a, ok := domain.FindArtist(l.Artists, slot.ArtistID); ok {
			name = a.Name
			if _, dup := seen[a.Email]; a.Email != "" && !dup {
				seen[a.Email] = struct{}{}
				recipients = append(recipients, a.Email)
			}
		}
		lines = append(lines, fmt.Sprintf("• %s - %s Stage (%s - %s)", name, slot.Stage, slot.StartTime, slot.EndTime))
	}

	title := l.Event.Title
	subject := title + " - Performance Schedule"
	body := fmt.Sprintf("Hi everyone!\n\nHere's the performance schedule for %s on %s:\n\n%s\n\n"+
		"Please confirm your slot by replying to this email.\n\nThanks!\nThe %s Team",
		title, l.Event.Date, strings.Join(lines, "\n"), title)

	return "mailto:" + strings.Join(recipients, ",") + "?subject=" + encode(subject) + "&body=" + encode(body)
}

// encode percent-encodes s for a mailto header value, spaces as %20.
func encode(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
