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

// Email template names known to the renderer.
const (
	TemplateTicketConfirmation       = "ticket_confirmation"
	TemplateRegistrationConfirmation = "registration_confirmation"
)

// TicketConfirmationEmailData holds data for the ticket confirmation email.
type TicketConfirmationEmailData struct {
	Email           string
	ParticipantName string
	EventName       string
	EventStart      string
	Location        string
	TicketID        string
	TicketType      TicketType
	Price           Money
}

// RegistrationConfirmationEmailData holds data for the registration confirmation email.
type RegistrationConfirmationEmailData struct {
	Email           string
	ParticipantName string
	EventName       string
	EventStart      string
	Location        string
}

// EmailService sends participant-facing notifications.
type EmailService interface {
	SendTicketConfirmation(ctx context.Context, data *TicketConfirmationEmailData) error
	SendRegistrationConfirmation(ctx context.Context, data *RegistrationConfirmationEmailData) error
}
