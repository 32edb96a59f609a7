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

type participantService struct {
	reg            *registrar
	locker         domain.Locker
	logger         *slog.Logger
	contextTimeout time.Duration
	newID          func() string
}

// NewParticipantService returns a ParticipantService that keeps emails unique.
func NewParticipantService(
	participantRepo domain.ParticipantRepository,
	registrationRepo domain.RegistrationRepository,
	locker domain.Locker,
	logger *slog.Logger,
	timeout time.Duration,
) domain.ParticipantService {
	return &participantService{
		reg:            newRegistrar(nil, participantRepo, registrationRepo),
		locker:         locker,
		logger:         logger,
		contextTimeout: timeout,
		newID:          uuid.NewString,
	}
}

func (s *participantService) CreateParticipant(ctx context.Context, in domain.NewParticipantInput) (*domain.Participant, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := validation.First(
		validation.Name("name", in.Name),
		validation.Email("email", in.Email),
		validation.Phone("phone", in.Phone),
	); err != nil {
		return nil, err
	}
	email := validation.NormalizeEmail(in.Email)

	unlock, err := s.locker.Lock(ctx, domain.EmailLockKey("participant:"+email))
	if err != nil {
		return nil, err
	}
	defer unlock()

	if _, err := s.reg.participantRepo.GetByEmail(ctx, email); err == nil {
		return nil, domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get participant by email: %w", err)
	}

	p := &domain.Participant{
		ID:               s.newID(),
		Name:             strings.TrimSpace(in.Name),
		Email:            email,
		Phone:            strings.TrimSpace(in.Phone),
		Employer:         strings.TrimSpace(in.Employer),
		Role:             strings.TrimSpace(in.Role),
		Interests:        cleanInterests(in.Interests),
		VIP:              in.VIP,
		RegisteredEvents: []string{},
		CreatedAt:        s.reg.now(),
	}
	if err := s.reg.participantRepo.Create(ctx, p); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create participant: %w", err)
	}
	s.logger.Info("participant created", "participant_id", p.ID, "vip", p.VIP)
	return p, nil
}

func cleanInterests(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func (s *participantService) GetParticipant(ctx context.Context, id string) (*domain.Participant, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.reg.loadParticipant(ctx, id)
}

func (s *participantService) ListParticipants(ctx context.Context) ([]*domain.Participant, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	list, err := s.reg.participantRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	for i, p := range list {
		full, err := s.reg.loadParticipant(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		list[i] = full
	}
	return list, nil
}
