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

type organizerService struct {
	organizerRepo  domain.OrganizerRepository
	locker         domain.Locker
	logger         *slog.Logger
	contextTimeout time.Duration
	now            func() time.Time
	newID          func() string
}

func NewOrganizerService(organizerRepo domain.OrganizerRepository, locker domain.Locker, logger *slog.Logger, timeout time.Duration) domain.OrganizerService {
	return &organizerService{
		organizerRepo:  organizerRepo,
		locker:         locker,
		logger:         logger,
		contextTimeout: timeout,
		now:            time.Now,
		newID:          uuid.NewString,
	}
}

func (s *organizerService) CreateOrganizer(ctx context.Context, in domain.NewOrganizerInput) (*domain.Organizer, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := validation.First(
		validation.Name("name", in.Name),
		validation.Email("email", in.Email),
		validation.Phone("phone", in.Phone),
		validation.ExperienceYears("experience_years", in.ExperienceYears),
	); err != nil {
		return nil, err
	}
	email := validation.NormalizeEmail(in.Email)

	unlock, err := s.locker.Lock(ctx, domain.EmailLockKey("organizer:"+email))
	if err != nil {
		return nil, err
	}
	defer unlock()

	if _, err := s.organizerRepo.GetByEmail(ctx, email); err == nil {
		return nil, domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get organizer by email: %w", err)
	}

	o := &domain.Organizer{
		ID:              s.newID(),
		Name:            strings.TrimSpace(in.Name),
		Email:           email,
		Phone:           strings.TrimSpace(in.Phone),
		Affiliation:     strings.TrimSpace(in.Affiliation),
		Department:      strings.TrimSpace(in.Department),
		ExperienceYears: in.ExperienceYears,
		CreatedEvents:   []string{},
		CreatedAt:       s.now(),
	}
	if err := s.organizerRepo.Create(ctx, o); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create organizer: %w", err)
	}
	s.logger.Info("organizer created", "organizer_id", o.ID)
	return o, nil
}

func (s *organizerService) GetOrganizer(ctx context.Context, id string) (*domain.Organizer, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	o, err := s.organizerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrOrganizerNotFound
		}
		return nil, fmt.Errorf("get organizer: %w", err)
	}
	return o, nil
}

func (s *organizerService) ListOrganizers(ctx context.Context) ([]*domain.Organizer, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	list, err := s.organizerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list organizers: %w", err)
	}
	return list, nil
}
