package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"lineupplanner/internal/domain"
	"lineupplanner/internal/schedule"
)

const lineupTemplate = "lineup_schedule"

type notificationService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewNotificationService returns a NotificationService that uses the given Mailer and template renderer.
func NewNotificationService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.NotificationService {
	return &notificationService{mailer: mailer, renderer: renderer, logger: logger}
}

// SendLineup sends one "lineup_schedule" email per booked artist with an address.
// A failed send does not stop the others; all failures are returned joined.
func (s *notificationService) SendLineup(ctx context.Context, lineup *domain.Lineup) (int, error) {
	if lineup == nil {
		return 0, fmt.Errorf("lineup is nil")
	}

	all := setLines(lineup.Slots, lineup.Artists)
	var (
		sent int
		errs []error
		seen = make(map[string]struct{})
	)
	for _, slot := range lineup.Slots {
		artist, ok := domain.FindArtist(lineup.Artists, slot.ArtistID)
		if !ok || artist.Email == "" {
			continue
		}
		if _, dup := seen[artist.ID]; dup {
			continue
		}
		seen[artist.ID] = struct{}{}

		data := &domain.LineupEmailData{
			Email:      artist.Email,
			ArtistName: artist.Name,
			EventTitle: lineup.Event.Title,
			EventDate:  lineup.Event.Date,
			MySets:     setLines(slotsOf(lineup.Slots, artist.ID), lineup.Artists),
			Lineup:     all,
		}
		subject, htmlBody, textBody, err := s.renderer.Render(lineupTemplate, data)
		if err != nil {
			return sent, fmt.Errorf("failed to render %s template: %w", lineupTemplate, err)
		}
		if err := s.mailer.Send(ctx, artist.Email, subject, htmlBody, textBody); err != nil {
			errs = append(errs, fmt.Errorf("failed to send lineup email to %s: %w", artist.Email, err))
			continue
		}
		sent++
	}
	s.logger.InfoContext(ctx, "lineup emails sent", "event_id", lineup.Event.ID, "sent", sent, "failed", len(errs))
	return sent, errors.Join(errs...)
}

func slotsOf(slots []domain.Slot, artistID string) []domain.Slot {
	var out []domain.Slot
	for _, slot := range slots {
		if slot.ArtistID == artistID {
			out = append(out, slot)
		}
	}
	return out
}

// setLines renders slots in running order: by start on the event night, then by stage.
func setLines(slots []domain.Slot, roster []domain.Artist) []domain.SetLine {
	sorted := domain.CloneSlots(slots)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, _ := schedule.NightMinutes(sorted[i].StartTime)
		b, _ := schedule.NightMinutes(sorted[j].StartTime)
		if a != b {
			return a < b
		}
		return sorted[i].Stage < sorted[j].Stage
	})
	out := make([]domain.SetLine, 0, len(sorted))
	for _, slot := range sorted {
		name := "Unknown Artist"
		if artist, ok := domain.FindArtist(roster, slot.ArtistID); ok {
			name = artist.Name
		}
		out = append(out, domain.SetLine{ArtistName: name, Stage: slot.Stage, StartTime: slot.StartTime, EndTime: slot.EndTime})
	}
	return out
}
