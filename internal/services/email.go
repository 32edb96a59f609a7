package services

import (
	"context"
	"fmt"
	"log/slog"

	"eventticketing/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer, logger: logger}
}

// SendTicketConfirmation sends the "ticket_confirmation" template to the ticket holder.
func (s *emailService) SendTicketConfirmation(ctx context.Context, data *domain.TicketConfirmationEmailData) error {
	if data == nil {
		return fmt.Errorf("ticket confirmation data is nil")
	}
	return s.send(ctx, domain.TemplateTicketConfirmation, data.Email, data)
}

// SendRegistrationConfirmation sends the "registration_confirmation" template to the participant.
func (s *emailService) SendRegistrationConfirmation(ctx context.Context, data *domain.RegistrationConfirmationEmailData) error {
	if data == nil {
		return fmt.Errorf("registration confirmation data is nil")
	}
	return s.send(ctx, domain.TemplateRegistrationConfirmation, data.Email, data)
}

func (s *emailService) send(ctx context.Context, template, to string, data any) error {
	subject, htmlBody, textBody, err := s.renderer.Render(template, data)
	if err != nil {
		return fmt.Errorf("failed to render %s template: %w", template, err)
	}
	if err := s.mailer.Send(ctx, to, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send %s email: %w", template, err)
	}
	s.logger.Info("email sent", "template", template, "to", to)
	return nil
}
