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

	"eventticketing/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestTemplateRenderer_TicketConfirmation(t *testing.T) {
	r := NewTemplateRenderer()
	subject, html, text, err := r.Render("ticket_confirmation", &domain.TicketConfirmationEmailData{
		ParticipantName: "Ana <Lopez>",
		EventName:       "Gopher Conference",
		TicketID:        "t-1",
		TicketType:      domain.TicketVIP,
		Price:           domain.Dollars(80),
	})
	require.NoError(t, err)
	assert.Equal(t, "Your VIP ticket for Gopher Conference", subject)
	assert.Contains(t, text, "Price:    80.00")
	assert.Contains(t, html, "Ana &lt;Lopez&gt;")
	assert.Contains(t, text, "Ana <Lopez>")
}

func TestTemplateRenderer_RegistrationConfirmation(t *testing.T) {
	subject, _, text, err := NewTemplateRenderer().Render("registration_confirmation", &domain.RegistrationConfirmationEmailData{
		ParticipantName: "Ana Lopez",
		EventName:       "Gopher Conference",
		Location:        "Main Hall",
	})
	require.NoError(t, err)
	assert.Equal(t, "You are registered for Gopher Conference", subject)
	assert.Contains(t, text, "Where: Main Hall")
}

func TestTemplateRenderer_RejectsUnknownTemplateAndWrongData(t *testing.T) {
	_, _, _, err := NewTemplateRenderer().Render("welcome", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown email template")

	_, _, _, err = NewTemplateRenderer().Render(domain.TemplateTicketConfirmation, &domain.RegistrationConfirmationEmailData{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected data")
}

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
	m := &sesMailer{client: client, fromAddress: "tickets@example.com", fromName: "Tickets", logger: discardLogger()}

	require.NoError(t, m.Send(context.Background(), "ana@example.com", "Hello", "<p>hi</p>", ""))
	assert.Equal(t, "Tickets <tickets@example.com>", aws.ToString(client.input.Source))
	assert.Equal(t, []string{"ana@example.com"}, client.input.Destination.ToAddresses)
	require.NotNil(t, client.input.Message.Body.Html)
	assert.Nil(t, client.input.Message.Body.Text)

	client.err = errors.New("throttled")
	err := m.Send(context.Background(), "ana@example.com", "Hello", "", "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "throttled")
}

func TestNewMailer(t *testing.T) {
	m, err := NewMailer(MailerConfig{Provider: "noop"}, discardLogger())
	require.NoError(t, err)
	require.NoError(t, m.Send(context.Background(), "a@example.com", "s", "h", "t"))

	_, err = NewMailer(MailerConfig{Provider: "ses", SES: SESConfig{Region: "eu-west-1"}}, discardLogger())
	require.Error(t, err)

	m, err = NewMailer(MailerConfig{Provider: "ses", FromAddress: "tickets@example.com", SES: SESConfig{Region: "eu-west-1"}}, discardLogger())
	require.NoError(t, err)
	assert.IsType(t, &sesMailer{}, m)
}
