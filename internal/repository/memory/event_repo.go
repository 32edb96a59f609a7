// Package memory holds map-backed repositories. Records are copied on the way
// in and out so callers never share state with the store.
package memory

import (
	"context"
	"slices"
	"sort"
	"sync"

	"eventticketing/internal/domain"
)

type eventRepository struct {
	mu     sync.RWMutex
	events map[string]*domain.Event
}

// NewEventRepository returns an EventRepository kept in process memory.
func NewEventRepository() domain.EventRepository {
	return &eventRepository{events: make(map[string]*domain.Event)}
}

func cloneEvent(e *domain.Event) *domain.Event {
	c := *e
	c.Registered = []string{}
	c.CheckedIn = []string{}
	return &c
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events[e.ID] = cloneEvent(e)
	return nil
}

func (r *eventRepository) Update(ctx context.Context, e *domain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[e.ID]; !ok {
		return domain.ErrNotFound
	}
	r.events[e.ID] = cloneEvent(e)
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneEvent(e), nil
}

func (r *eventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	return r.filter(func(*domain.Event) bool { return true }), nil
}

func (r *eventRepository) ListByState(ctx context.Context, state domain.EventState) ([]*domain.Event, error) {
	return r.filter(func(e *domain.Event) bool { return e.State == state }), nil
}

func (r *eventRepository) ListByOrganizerID(ctx context.Context, organizerID string) ([]*domain.Event, error) {
	return r.filter(func(e *domain.Event) bool { return e.OrganizerID == organizerID }), nil
}

// filter returns matching events ordered by start time, then id.
func (r *eventRepository) filter(keep func(*domain.Event) bool) []*domain.Event {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Event, 0, len(r.events))
	for _, e := range r.events {
		if keep(e) {
			out = append(out, cloneEvent(e))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartTime.Equal(out[j].StartTime) {
			return out[i].ID < out[j].ID
		}
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out
}

// cloneStrings copies ids, never returning nil.
func cloneStrings(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return slices.Clone(ids)
}
