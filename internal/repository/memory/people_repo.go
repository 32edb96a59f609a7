package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"eventticketing/internal/domain"
)

type participantRepository struct {
	mu      sync.RWMutex
	byID    map[string]*domain.Participant
	byEmail map[string]string
}

// NewParticipantRepository returns an in-memory ParticipantRepository. Emails are unique case-insensitively.
func NewParticipantRepository() domain.ParticipantRepository {
	return &participantRepository{
		byID:    make(map[string]*domain.Participant),
		byEmail: make(map[string]string),
	}
}

func cloneParticipant(p *domain.Participant) *domain.Participant {
	c := *p
	c.Interests = cloneStrings(p.Interests)
	c.RegisteredEvents = []string{}
	return &c
}

func (r *participantRepository) Create(ctx context.Context, p *domain.Participant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := strings.ToLower(p.Email)
	if _, taken := r.byEmail[key]; taken {
		return domain.ErrDuplicateEmail
	}
	r.byID[p.ID] = cloneParticipant(p)
	r.byEmail[key] = p.ID
	return nil
}

func (r *participantRepository) GetByID(ctx context.Context, id string) (*domain.Participant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneParticipant(p), nil
}

func (r *participantRepository) GetByEmail(ctx context.Context, email string) (*domain.Participant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneParticipant(r.byID[id]), nil
}

func (r *participantRepository) List(ctx context.Context) ([]*domain.Participant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Participant, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, cloneParticipant(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type organizerRepository struct {
	mu      sync.RWMutex
	byID    map[string]*domain.Organizer
	byEmail map[string]string
}

// NewOrganizerRepository returns an in-memory OrganizerRepository.
func NewOrganizerRepository() domain.OrganizerRepository {
	return &organizerRepository{
		byID:    make(map[string]*domain.Organizer),
		byEmail: make(map[string]string),
	}
}

func cloneOrganizer(o *domain.Organizer) *domain.Organizer {
	c := *o
	c.CreatedEvents = cloneStrings(o.CreatedEvents)
	return &c
}

func (r *organizerRepository) Create(ctx context.Context, o *domain.Organizer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := strings.ToLower(o.Email)
	if _, taken := r.byEmail[key]; taken {
		return domain.ErrDuplicateEmail
	}
	r.byID[o.ID] = cloneOrganizer(o)
	r.byEmail[key] = o.ID
	return nil
}

func (r *organizerRepository) GetByID(ctx context.Context, id string) (*domain.Organizer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneOrganizer(o), nil
}

func (r *organizerRepository) GetByEmail(ctx context.Context, email string) (*domain.Organizer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneOrganizer(r.byID[id]), nil
}

func (r *organizerRepository) List(ctx context.Context) ([]*domain.Organizer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Organizer, 0, len(r.byID))
	for _, o := range r.byID {
		out = append(out, cloneOrganizer(o))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *organizerRepository) AddCreatedEvent(ctx context.Context, organizerID, eventID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.byID[organizerID]
	if !ok {
		return domain.ErrNotFound
	}
	o.CreatedEvents = append(o.CreatedEvents, eventID)
	return nil
}
