package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"eventticketing/internal/domain"
)

type regKey struct {
	eventID       string
	participantID string
}

type registrationRepository struct {
	mu   sync.RWMutex
	regs map[regKey]*domain.Registration
}

// NewRegistrationRepository returns a RegistrationRepository keyed by (event, participant).
func NewRegistrationRepository() domain.RegistrationRepository {
	return &registrationRepository{regs: make(map[regKey]*domain.Registration)}
}

func cloneRegistration(reg *domain.Registration) *domain.Registration {
	c := *reg
	if reg.CheckedInAt != nil {
		at := *reg.CheckedInAt
		c.CheckedInAt = &at
	}
	return &c
}

func (r *registrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := regKey{reg.EventID, reg.ParticipantID}
	if _, ok := r.regs[k]; ok {
		return domain.ErrAlreadyRegistered
	}
	r.regs[k] = cloneRegistration(reg)
	return nil
}

func (r *registrationRepository) Delete(ctx context.Context, eventID, participantID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := regKey{eventID, participantID}
	if _, ok := r.regs[k]; !ok {
		return domain.ErrNotFound
	}
	delete(r.regs, k)
	return nil
}

func (r *registrationRepository) GetByEventAndParticipant(ctx context.Context, eventID, participantID string) (*domain.Registration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reg, ok := r.regs[regKey{eventID, participantID}]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneRegistration(reg), nil
}

func (r *registrationRepository) MarkCheckedIn(ctx context.Context, eventID, participantID string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	reg, ok := r.regs[regKey{eventID, participantID}]
	if !ok {
		return domain.ErrNotFound
	}
	reg.CheckedIn = true
	reg.CheckedInAt = &at
	return nil
}

func (r *registrationRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Registration, error) {
	return r.filter(func(reg *domain.Registration) bool { return reg.EventID == eventID }), nil
}

func (r *registrationRepository) ListByParticipantID(ctx context.Context, participantID string) ([]*domain.Registration, error) {
	return r.filter(func(reg *domain.Registration) bool { return reg.ParticipantID == participantID }), nil
}

// filter returns matching registrations oldest first.
func (r *registrationRepository) filter(keep func(*domain.Registration) bool) []*domain.Registration {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Registration, 0)
	for _, reg := range r.regs {
		if keep(reg) {
			out = append(out, cloneRegistration(reg))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ParticipantID+out[i].EventID < out[j].ParticipantID+out[j].EventID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}
