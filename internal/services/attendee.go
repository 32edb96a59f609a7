package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"eventticketing/internal/domain"
)

type attendeeService struct {
	reg            *registrar
	locker         domain.Locker
	emailService   domain.EmailService
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewAttendeeService creates an AttendeeService with the given repositories.
// emailService may be nil, in which case no confirmations are sent.
func NewAttendeeService(
	eventRepo domain.EventRepository,
	participantRepo domain.ParticipantRepository,
	registrationRepo domain.RegistrationRepository,
	locker domain.Locker,
	emailService domain.EmailService,
	logger *slog.Logger,
	timeout time.Duration,
) domain.AttendeeService {
	return &attendeeService{
		reg:            newRegistrar(eventRepo, participantRepo, registrationRepo),
		locker:         locker,
		emailService:   emailService,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *attendeeService) Register(ctx context.Context, participantID, eventID string) (*domain.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	reg, ev, p, err := s.registerLocked(ctx, participantID, eventID)
	if err != nil {
		return nil, err
	}
	s.logger.Info("participant registered", "event_id", ev.ID, "participant_id", p.ID)

	if s.emailService != nil {
		data := &domain.RegistrationConfirmationEmailData{
			Email:           p.Email,
			ParticipantName: p.Name,
			EventName:       ev.Name,
			EventStart:      ev.StartTime.Format(time.RFC1123),
			Location:        ev.Location,
		}
		if err := s.emailService.SendRegistrationConfirmation(ctx, data); err != nil {
			s.logger.Error("send registration confirmation", "participant_id", p.ID, "error", err)
		}
	}
	return reg, nil
}

func (s *attendeeService) registerLocked(ctx context.Context, participantID, eventID string) (*domain.Registration, *domain.Event, *domain.Participant, error) {
	unlock, err := s.locker.Lock(ctx, domain.EventLockKey(eventID))
	if err != nil {
		return nil, nil, nil, err
	}
	defer unlock()
	return s.reg.register(ctx, participantID, eventID)
}

func (s *attendeeService) CancelRegistration(ctx context.Context, participantID, eventID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	unlock, err := s.locker.Lock(ctx, domain.EventLockKey(eventID))
	if err != nil {
		return err
	}
	defer unlock()

	ev, err := s.reg.loadEvent(ctx, eventID)
	if err != nil {
		return err
	}
	p, err := s.reg.loadParticipant(ctx, participantID)
	if err != nil {
		return err
	}
	if !ev.IsRegistered(p.ID) {
		return &domain.NotRegisteredError{ParticipantName: p.Name, EventName: ev.Name}
	}
	if !ev.State.AllowsWithdrawal() {
		return &domain.InvalidOperationError{
			Op:     "cancel registration",
			Reason: fmt.Sprintf("event %q is %s", ev.Name, ev.State),
		}
	}
	if err := s.reg.registrationRepo.Delete(ctx, ev.ID, p.ID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.NotRegisteredError{ParticipantName: p.Name, EventName: ev.Name}
		}
		return fmt.Errorf("delete registration: %w", err)
	}
	s.logger.Info("registration cancelled", "event_id", ev.ID, "participant_id", p.ID)
	return nil
}

func (s *attendeeService) CheckIn(ctx context.Context, participantID, eventID string) (*domain.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	unlock, err := s.locker.Lock(ctx, domain.EventLockKey(eventID))
	if err != nil {
		return nil, err
	}
	defer unlock()

	reg, err := s.reg.checkIn(ctx, participantID, eventID)
	if err != nil {
		return nil, err
	}
	s.logger.Info("participant checked in", "event_id", eventID, "participant_id", participantID)
	return reg, nil
}

func (s *attendeeService) ListEventRegistrations(ctx context.Context, eventID string) ([]*domain.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.reg.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	regs, err := s.reg.registrationRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	return regs, nil
}

func (s *attendeeService) ListParticipantEvents(ctx context.Context, participantID string) ([]*domain.RegistrationWithEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.reg.participantRepo.GetByID(ctx, participantID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrParticipantNotFound
		}
		return nil, fmt.Errorf("get participant: %w", err)
	}
	regs, err := s.reg.registrationRepo.ListByParticipantID(ctx, participantID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}

	result := make([]*domain.RegistrationWithEvent, 0, len(regs))
	for _, reg := range regs {
		ev, err := s.reg.loadEvent(ctx, reg.EventID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				// Events are never deleted, but skip a dangling edge rather than fail the listing.
				continue
			}
			return nil, err
		}
		result = append(result, &domain.RegistrationWithEvent{Registration: reg, Event: ev})
	}
	return result, nil
}
