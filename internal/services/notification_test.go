package services

import (
	"context"
	"errors"
	"testing"

	"lineupplanner/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMail struct {
	to, subject, html, text string
}

type fakeMailer struct {
	sent   []sentMail
	failTo map[string]bool
}

func (m *fakeMailer) Send(ctx context.Context, to, subject, html, text string) error {
	if m.failTo[to] {
		return errors.New("mailbox unavailable")
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, html: html, text: text})
	return nil
}

type fakeRenderer struct {
	calls []*domain.LineupEmailData
	err   error
}

func (r *fakeRenderer) Render(name string, data any) (string, string, string, error) {
	if r.err != nil {
		return "", "", "", r.err
	}
	d := data.(*domain.LineupEmailData)
	r.calls = append(r.calls, d)
	return name + ": " + d.EventTitle, "<p>" + d.ArtistName + "</p>", d.ArtistName, nil
}

func testLineup() *domain.Lineup {
	return &domain.Lineup{
		Event: domain.Event{ID: "e1", Title: "Warehouse Night", Date: "2025-07-04", Stages: []string{"Main", "Patio"}},
		Slots: []domain.Slot{
			{ID: "s1", EventID: "e1", ArtistID: "dj-nova", Stage: "Main", StartTime: "01:00", EndTime: "02:00"},
			{ID: "s2", EventID: "e1", ArtistID: "neihouse", Stage: "Patio", StartTime: "22:00", EndTime: "23:00"},
			{ID: "s3", EventID: "e1", ArtistID: "dj-nova", Stage: "Patio", StartTime: "23:00", EndTime: "00:00"},
			{ID: "s4", EventID: "e1", ArtistID: "dj-echo", Stage: "Main", StartTime: "22:00", EndTime: "23:00"},
			{ID: "s5", EventID: "e1", ArtistID: "ghost", Stage: "Main", StartTime: "23:00", EndTime: "00:00"},
		},
		Artists: testRoster,
	}
}

func TestNotificationService_SendLineup(t *testing.T) {
	mailer := &fakeMailer{}
	renderer := &fakeRenderer{}
	svc := NewNotificationService(mailer, renderer, testLogger)

	sent, err := svc.SendLineup(context.Background(), testLineup())
	require.NoError(t, err)
	assert.Equal(t, 2, sent, "one email per artist with an address")

	require.Len(t, mailer.sent, 2)
	assert.Equal(t, "nova@example.com", mailer.sent[0].to)
	assert.Equal(t, "lineup_schedule: Warehouse Night", mailer.sent[0].subject)
	assert.Equal(t, "neihouse@example.com", mailer.sent[1].to)

	nova := renderer.calls[0]
	require.Len(t, nova.MySets, 2)
	assert.Equal(t, "23:00", nova.MySets[0].StartTime, "sets run in night order")
	assert.Equal(t, "01:00", nova.MySets[1].StartTime)

	require.Len(t, nova.Lineup, 5)
	assert.Equal(t, "DJ Echo", nova.Lineup[0].ArtistName, "ties break on stage")
	assert.Equal(t, "Neihouse", nova.Lineup[1].ArtistName)
	assert.Equal(t, "Unknown Artist", nova.Lineup[2].ArtistName)
	assert.Equal(t, "DJ Nova", nova.Lineup[3].ArtistName)
}

func TestNotificationService_PartialFailure(t *testing.T) {
	mailer := &fakeMailer{failTo: map[string]bool{"nova@example.com": true}}
	svc := NewNotificationService(mailer, &fakeRenderer{}, testLogger)

	sent, err := svc.SendLineup(context.Background(), testLineup())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nova@example.com")
	assert.Equal(t, 1, sent)
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "neihouse@example.com", mailer.sent[0].to)
}

func TestNotificationService_RenderFailure(t *testing.T) {
	mailer := &fakeMailer{}
	svc := NewNotificationService(mailer, &fakeRenderer{err: errors.New("bad template")}, testLogger)

	sent, err := svc.SendLineup(context.Background(), testLineup())
	require.Error(t, err)
	assert.Zero(t, sent)
	assert.Empty(t, mailer.sent)
}

func TestNotificationService_NilLineup(t *testing.T) {
	svc := NewNotificationService(&fakeMailer{}, &fakeRenderer{}, testLogger)
	_, err := svc.SendLineup(context.Background(), nil)
	assert.Error(t, err)
}
