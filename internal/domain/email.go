package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// SetLine is one performance in a lineup email.
type SetLine struct {
	ArtistName string
	Stage      string
	StartTime  string
	EndTime    string
}

// LineupEmailData holds data for the per-artist lineup schedule email.
type LineupEmailData struct {
	Email      string
	ArtistName string
	EventTitle string
	EventDate  string
	MySets     []SetLine
	Lineup     []SetLine
}

// NotificationService sends lineup schedules to the booked artists.
type NotificationService interface {
	// SendLineup emails every artist of the lineup who has an address and returns how many emails went out.
	SendLineup(ctx context.Context, lineup *Lineup) (int, error)
}
