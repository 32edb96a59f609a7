package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventticketing/internal/domain"
)

// registrar holds the registration rules shared by the attendee and ticket
// services. Its methods assume the caller already holds the event lock.
type registrar struct {
	eventRepo        domain.EventRepository
	participantRepo  domain.ParticipantRepository
	registrationRepo domain.RegistrationRepository
	now              func() time.Time
}

func newRegistrar(eventRepo domain.EventRepository, participantRepo domain.ParticipantRepository, registrationRepo domain.RegistrationRepository) *registrar {
	return &registrar{
		eventRepo:        eventRepo,
		participantRepo:  participantRepo,
		registrationRepo: registrationRepo,
		now:              time.Now,
	}
}

// loadEvent fetches the event and fills its registered and checked-in sets.
func (r *registrar) loadEvent(ctx context.Context, eventID string) (*domain.Event, error) {
	ev, err := r.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if err := r.fillAttendance(ctx, ev); err != nil {
		return nil, err
	}
	return ev, nil
}

func (r *registrar) fillAttendance(ctx context.Context, ev *domain.Event) error {
	regs, err := r.registrationRepo.ListByEventID(ctx, ev.ID)
	if err != nil {
		return fmt.Errorf("list registrations: %w", err)
	}
	ev.Registered = make([]string, 0, len(regs))
	ev.CheckedIn = make([]string, 0)
	for _, reg := range regs {
		ev.Registered = append(ev.Registered, reg.ParticipantID)
		if reg.CheckedIn {
			ev.CheckedIn = append(ev.CheckedIn, reg.ParticipantID)
		}
	}
	return nil
}

// loadParticipant fetches the participant and fills its registered events.
func (r *registrar) loadParticipant(ctx context.Context, participantID string) (*domain.Participant, error) {
	p, err := r.participantRepo.GetByID(ctx, participantID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrParticipantNotFound
		}
		return nil, fmt.Errorf("get participant: %w", err)
	}
	regs, err := r.registrationRepo.ListByParticipantID(ctx, participantID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	p.RegisteredEvents = make([]string, 0, len(regs))
	for _, reg := range regs {
		p.RegisteredEvents = append(p.RegisteredEvents, reg.EventID)
	}
	return p, nil
}

// canRegister applies the state, capacity and uniqueness rules in that order.
func canRegister(ev *domain.Event, p *domain.Participant) error {
	if !ev.State.AcceptsRegistrations() {
		return &domain.InvalidOperationError{
			Op:     "registration",
			Reason: fmt.Sprintf("event %q is %s", ev.Name, ev.State),
		}
	}
	if !ev.HasAvailableCapacity() {
		return &domain.CapacityExceededError{EventName: ev.Name, Capacity: ev.Capacity}
	}
	if ev.IsRegistered(p.ID) {
		return &domain.AlreadyRegisteredError{ParticipantName: p.Name, EventName: ev.Name}
	}
	return nil
}

// register validates and writes the (event, participant) edge.
func (r *registrar) register(ctx context.Context, participantID, eventID string) (*domain.Registration, *domain.Event, *domain.Participant, error) {
	ev, err := r.loadEvent(ctx, eventID)
	if err != nil {
		return nil, nil, nil, err
	}
	p, err := r.loadParticipant(ctx, participantID)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := canRegister(ev, p); err != nil {
		return nil, nil, nil, err
	}

	reg := domain.NewRegistration(ev.ID, p.ID, r.now())
	if err := r.registrationRepo.Create(ctx, reg); err != nil {
		if errors.Is(err, domain.ErrAlreadyRegistered) {
			return nil, nil, nil, &domain.AlreadyRegisteredError{ParticipantName: p.Name, EventName: ev.Name}
		}
		return nil, nil, nil, fmt.Errorf("create registration: %w", err)
	}
	ev.Registered = append(ev.Registered, p.ID)
	p.RegisteredEvents = append(p.RegisteredEvents, ev.ID)
	return reg, ev, p, nil
}

// checkIn marks a registered participant as present.
func (r *registrar) checkIn(ctx context.Context, participantID, eventID string) (*domain.Registration, error) {
	ev, err := r.loadEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	p, err := r.loadParticipant(ctx, participantID)
	if err != nil {
		return nil, err
	}
	if !ev.IsRegistered(p.ID) {
		return nil, &domain.NotRegisteredError{ParticipantName: p.Name, EventName: ev.Name}
	}
	if ev.State != domain.EventInProgress {
		return nil, &domain.InvalidOperationError{
			Op:     "check-in",
			Reason: fmt.Sprintf("event %q is %s, check-in opens when it is %s", ev.Name, ev.State, domain.EventInProgress),
		}
	}
	if ev.IsCheckedIn(p.ID) {
		return nil, &domain.AlreadyCheckedInError{ParticipantName: p.Name, EventName: ev.Name}
	}

	at := r.now()
	if err := r.registrationRepo.MarkCheckedIn(ctx, ev.ID, p.ID, at); err != nil {
		return nil, fmt.Errorf("mark checked in: %w", err)
	}
	reg, err := r.registrationRepo.GetByEventAndParticipant(ctx, ev.ID, p.ID)
	if err != nil {
		return nil, fmt.Errorf("get registration: %w", err)
	}
	return reg, nil
}
