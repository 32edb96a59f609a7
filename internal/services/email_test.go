package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventticketing/internal/domain"
)

type fakeMailer struct {
	err  error
	sent []string
}

func (f *fakeMailer) Send(ctx context.Context, to, subject, html, text string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, to+"|"+subject)
	return nil
}

type fakeRenderer struct {
	err  error
	last string
}

func (f *fakeRenderer) Render(templateName string, data any) (string, string, string, error) {
	f.last = templateName
	if f.err != nil {
		return "", "", "", f.err
	}
	return "subject " + templateName, "<p>html</p>", "text", nil
}

func TestEmailService_SendTicketConfirmation(t *testing.T) {
	mailer := &fakeMailer{}
	renderer := &fakeRenderer{}
	svc := NewEmailService(mailer, renderer, discardLogger())

	err := svc.SendTicketConfirmation(context.Background(), &domain.TicketConfirmationEmailData{
		Email: "ana@example.com", TicketID: "t-1", Price: domain.Dollars(40),
	})
	require.NoError(t, err)
	assert.Equal(t, "ticket_confirmation", renderer.last)
	assert.Equal(t, []string{"ana@example.com|subject ticket_confirmation"}, mailer.sent)

	require.Error(t, svc.SendTicketConfirmation(context.Background(), nil))
}

func TestEmailService_SendRegistrationConfirmation(t *testing.T) {
	tests := []struct {
		name      string
		renderErr error
		sendErr   error
		wantErr   string
	}{
		{name: "sent"},
		{name: "render failure", renderErr: errors.New("bad template"), wantErr: "render registration_confirmation"},
		{name: "send failure", sendErr: errors.New("throttled"), wantErr: "send registration_confirmation"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mailer := &fakeMailer{err: tt.sendErr}
			renderer := &fakeRenderer{err: tt.renderErr}
			svc := NewEmailService(mailer, renderer, discardLogger())

			err := svc.SendRegistrationConfirmation(context.Background(), &domain.RegistrationConfirmationEmailData{Email: "ana@example.com"})
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Len(t, mailer.sent, 1)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
