package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"eventticketing/internal/domain"
	"eventticketing/internal/validation"
)

type eventService struct {
	eventRepo      domain.EventRepository
	organizerRepo  domain.OrganizerRepository
	reg            *registrar
	locker         domain.Locker
	logger         *slog.Logger
	contextTimeout time.Duration
	now            func() time.Time
	newID          func() string
}

// NewEventService returns an EventService. Every mutation of an event runs
// under the event's lock so it serializes with registrations and check-ins.
func NewEventService(eventRepo domain.EventRepository,
	organizerRepo domain.OrganizerRepository,
	participantRepo domain.ParticipantRepository,
	registrationRepo domain.RegistrationRepository,
	locker domain.Locker,
	logger *slog.Logger,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		organizerRepo:  organizerRepo,
		reg:            newRegistrar(eventRepo, participantRepo, registrationRepo),
		locker:         locker,
		logger:         logger,
		contextTimeout: timeout,
		now:            time.Now,
		newID:          uuid.NewString,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, in domain.NewEventInput) (*domain.Event, error) {
	return s.create(ctx, in, domain.EventPublished)
}

func (s *eventService) CreateDraftEvent(ctx context.Context, in domain.NewEventInput) (*domain.Event, error) {
	return s.create(ctx, in, domain.EventDraft)
}

func (s *eventService) create(ctx context.Context, in domain.NewEventInput, state domain.EventState) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	now := s.now()
	if err := validateNewEvent(in, now); err != nil {
		return nil, err
	}
	if _, err := s.organizerRepo.GetByID(ctx, in.OrganizerID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrOrganizerNotFound
		}
		return nil, fmt.Errorf("get organizer: %w", err)
	}

	ev := domain.NewEvent(strings.TrimSpace(in.Name), strings.TrimSpace(in.Description), in.Category,
		in.StartTime, in.EndTime, strings.TrimSpace(in.Location), in.Capacity, in.OrganizerID, state, now)
	ev.ID = s.newID()
	if err := s.eventRepo.Create(ctx, ev); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	if err := s.organizerRepo.AddCreatedEvent(ctx, in.OrganizerID, ev.ID); err != nil {
		return nil, fmt.Errorf("link event to organizer: %w", err)
	}
	s.logger.Info("event created", "event_id", ev.ID, "organizer_id", ev.OrganizerID, "state", ev.State)
	return ev, nil
}

func validateNewEvent(in domain.NewEventInput, now time.Time) error {
	var categoryErr error
	if !in.Category.Valid() {
		categoryErr = &domain.InvalidDataError{Field: "category", Reason: fmt.Sprintf("unknown category %q", in.Category)}
	}
	return validation.First(
		validation.Name("name", in.Name),
		validation.Description("description", in.Description),
		categoryErr,
		validation.EventDates(in.StartTime, in.EndTime, now),
		validation.Location("location", in.Location),
		validation.Capacity("capacity", in.Capacity),
		validation.ID("organizer_id", in.OrganizerID),
	)
}

func (s *eventService) UpdateEvent(ctx context.Context, eventID string, update domain.EventUpdate) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	unlock, err := s.locker.Lock(ctx, domain.EventLockKey(eventID))
	if err != nil {
		return nil, err
	}
	defer unlock()

	ev, err := s.reg.loadEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if ev.State.Terminal() {
		return nil, &domain.TerminalStateError{EventID: ev.ID, State: ev.State}
	}
	if update.Name != nil {
		if err := validation.Name("name", *update.Name); err != nil {
			return nil, err
		}
		ev.Name = strings.TrimSpace(*update.Name)
	}
	if update.Description != nil {
		if err := validation.Description("description", *update.Description); err != nil {
			return nil, err
		}
		ev.Description = strings.TrimSpace(*update.Description)
	}
	if update.Location != nil {
		if err := validation.Location("location", *update.Location); err != nil {
			return nil, err
		}
		ev.Location = strings.TrimSpace(*update.Location)
	}
	ev.UpdatedAt = s.now()
	if err := s.eventRepo.Update(ctx, ev); err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}
	return ev, nil
}

func (s *eventService) CancelEvent(ctx context.Context, eventID, requesterOrganizerID string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	unlock, err := s.locker.Lock(ctx, domain.EventLockKey(eventID))
	if err != nil {
		return nil, err
	}
	defer unlock()

	ev, err := s.reg.loadEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if ev.OrganizerID != requesterOrganizerID {
		return nil, domain.ErrNotEventOwner
	}
	if ev.State.Terminal() {
		return nil, &domain.TerminalStateError{EventID: ev.ID, State: ev.State}
	}
	return s.moveTo(ctx, ev, domain.EventCancelled)
}

func (s *eventService) Publish(ctx context.Context, eventID string) (*domain.Event, error) {
	return s.transition(ctx, eventID, domain.EventPublished)
}

func (s *eventService) Start(ctx context.Context, eventID string) (*domain.Event, error) {
	return s.transition(ctx, eventID, domain.EventInProgress)
}

func (s *eventService) Finish(ctx context.Context, eventID string) (*domain.Event, error) {
	return s.transition(ctx, eventID, domain.EventFinished)
}

func (s *eventService) transition(ctx context.Context, eventID string, to domain.EventState) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	unlock, err := s.locker.Lock(ctx, domain.EventLockKey(eventID))
	if err != nil {
		return nil, err
	}
	defer unlock()

	ev, err := s.reg.loadEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return s.moveTo(ctx, ev, to)
}

// moveTo applies one step of the state machine. The event lock must be held.
func (s *eventService) moveTo(ctx context.Context, ev *domain.Event, to domain.EventState) (*domain.Event, error) {
	if !domain.CanTransition(ev.State, to) {
		return nil, &domain.IllegalStateTransitionError{From: ev.State, To: to}
	}
	from := ev.State
	ev.State = to
	ev.UpdatedAt = s.now()
	if err := s.eventRepo.Update(ctx, ev); err != nil {
		return nil, fmt.Errorf("update event state: %w", err)
	}
	s.logger.Info("event state changed", "event_id", ev.ID, "from", from, "to", to)
	return ev, nil
}

func (s *eventService) GetEvent(ctx context.Context, eventID string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.reg.loadEvent(ctx, eventID)
}

func (s *eventService) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return s.hydrate(ctx, events)
}

func (s *eventService) ListEventsByState(ctx context.Context, state domain.EventState) ([]*domain.Event, error) {
	if !state.Valid() {
		return nil, &domain.InvalidDataError{Field: "state", Reason: fmt.Sprintf("unknown state %q", state)}
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	events, err := s.eventRepo.ListByState(ctx, state)
	if err != nil {
		return nil, fmt.Errorf("list events by state: %w", err)
	}
	return s.hydrate(ctx, events)
}

func (s *eventService) ListEventsByOrganizer(ctx context.Context, organizerID string) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	if _, err := s.organizerRepo.GetByID(ctx, organizerID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrOrganizerNotFound
		}
		return nil, fmt.Errorf("get organizer: %w", err)
	}
	events, err := s.eventRepo.ListByOrganizerID(ctx, organizerID)
	if err != nil {
		return nil, fmt.Errorf("list events by organizer: %w", err)
	}
	return s.hydrate(ctx, events)
}

func (s *eventService) HasAvailableCapacity(ctx context.Context, eventID string) (bool, error) {
	ev, err := s.GetEvent(ctx, eventID)
	if err != nil {
		return false, err
	}
	return ev.HasAvailableCapacity(), nil
}

func (s *eventService) hydrate(ctx context.Context, events []*domain.Event) ([]*domain.Event, error) {
	for _, ev := range events {
		if err := s.reg.fillAttendance(ctx, ev); err != nil {
			return nil, err
		}
	}
	return events, nil
}
