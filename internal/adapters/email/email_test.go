package email

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lineupplanner/internal/domain"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type fakeSES struct {
	input *ses.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &ses.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func TestSESMailer_Send(t *testing.T) {
	client := &fakeSES{}
	m := newSESMailer(client, MailerConfig{FromAddress: "lineup@example.com", FromName: "Lineup", ReplyTo: "booking@example.com"}, discard)

	require.NoError(t, m.Send(context.Background(), "dj@example.com", "Sets", "<p>hi</p>", ""))

	in := client.input
	require.NotNil(t, in)
	assert.Equal(t, `"Lineup" <lineup@example.com>`, aws.ToString(in.Source))
	assert.Equal(t, []string{"booking@example.com"}, in.ReplyToAddresses)
	assert.Equal(t, []string{"dj@example.com"}, in.Destination.ToAddresses)
	assert.Equal(t, "Sets", aws.ToString(in.Message.Subject.Data))
	assert.Equal(t, "<p>hi</p>", aws.ToString(in.Message.Body.Html.Data))
	assert.Nil(t, in.Message.Body.Text, "empty text body is omitted")
}

func TestSESMailer_SendError(t *testing.T) {
	client := &fakeSES{err: errors.New("throttled")}
	m := newSESMailer(client, MailerConfig{FromAddress: "lineup@example.com"}, discard)

	err := m.Send(context.Background(), "dj@example.com", "Sets", "", "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "throttled")
	assert.Equal(t, "lineup@example.com", aws.ToString(client.input.Source))
	assert.Nil(t, client.input.ReplyToAddresses)
}

func TestSESMailer_RejectsBadRecipient(t *testing.T) {
	client := &fakeSES{}
	m := newSESMailer(client, MailerConfig{FromAddress: "lineup@example.com"}, discard)

	err := m.Send(context.Background(), "not an address", "Sets", "", "hi")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, client.input, "nothing reaches SES")
}

func TestNewMailer(t *testing.T) {
	tests := []struct {
		name    string
		config  MailerConfig
		wantSES bool
		wantErr bool
	}{
		{name: "noop", config: MailerConfig{Provider: "noop"}},
		{name: "empty provider", config: MailerConfig{}},
		{name: "unknown provider", config: MailerConfig{Provider: "smtp"}},
		{name: "ses", config: MailerConfig{Provider: "ses", FromAddress: "lineup@example.com", SES: SESConfig{Region: "us-east-1"}}, wantSES: true},
		{name: "ses without sender", config: MailerConfig{Provider: "ses"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMailer(tt.config, discard)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			_, isSES := m.(*sesMailer)
			assert.Equal(t, tt.wantSES, isSES)
		})
	}
}

func TestNoopMailer_Send(t *testing.T) {
	m, err := NewMailer(MailerConfig{Provider: "noop"}, discard)
	require.NoError(t, err)
	assert.NoError(t, m.Send(context.Background(), "dj@example.com", "s", "h", "t"))
}

func TestTemplateRenderer_LineupSchedule(t *testing.T) {
	data := &domain.LineupEmailData{
		Email:      "nova@example.com",
		ArtistName: "DJ Nova & Friends",
		EventTitle: "Warehouse Night",
		EventDate:  "2025-07-04",
		MySets:     []domain.SetLine{{ArtistName: "DJ Nova & Friends", Stage: "Main", StartTime: "23:00", EndTime: "00:00"}},
		Lineup: []domain.SetLine{
			{ArtistName: "DJ Echo", Stage: "Main", StartTime: "22:00", EndTime: "23:00"},
			{ArtistName: "DJ Nova & Friends", Stage: "Main", StartTime: "23:00", EndTime: "00:00"},
		},
	}

	subject, html, text, err := NewTemplateRenderer().Render("lineup_schedule", data)
	require.NoError(t, err)
	assert.Equal(t, "Your sets for Warehouse Night on 2025-07-04", subject)
	assert.Contains(t, html, "DJ Nova &amp; Friends", "html body is escaped")
	assert.Contains(t, html, "22:00 - 23:00")
	assert.Contains(t, text, "DJ Nova & Friends")
	assert.Contains(t, text, "23:00 - 00:00  Main Stage")
	assert.Contains(t, text, "DJ Echo (Main)")
}

func TestTemplateRenderer_UnknownTemplate(t *testing.T) {
	_, _, _, err := NewTemplateRenderer().Render("missing", nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
