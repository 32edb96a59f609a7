package memory

import (
	"context"
	"sort"
	"sync"

	"eventticketing/internal/domain"
)

type ticketRepository struct {
	mu      sync.RWMutex
	tickets map[string]*domain.Ticket
}

// NewTicketRepository returns an in-memory TicketRepository.
func NewTicketRepository() domain.TicketRepository {
	return &ticketRepository{tickets: make(map[string]*domain.Ticket)}
}

func (r *ticketRepository) Create(ctx context.Context, t *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *t
	r.tickets[t.ID] = &c
	return nil
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tickets[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := *t
	return &c, nil
}

func (r *ticketRepository) MarkUsed(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tickets[id]
	if !ok {
		return domain.ErrNotFound
	}
	t.Used = true
	return nil
}

func (r *ticketRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tickets[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.tickets, id)
	return nil
}

func (r *ticketRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Ticket, error) {
	return r.filter(func(t *domain.Ticket) bool { return t.EventID == eventID }), nil
}

func (r *ticketRepository) ListByParticipantID(ctx context.Context, participantID string) ([]*domain.Ticket, error) {
	return r.filter(func(t *domain.Ticket) bool { return t.ParticipantID == participantID }), nil
}

func (r *ticketRepository) filter(keep func(*domain.Ticket) bool) []*domain.Ticket {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Ticket, 0)
	for _, t := range r.tickets {
		if keep(t) {
			c := *t
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PurchasedAt.Before(out[j].PurchasedAt) })
	return out
}

type paymentRepository struct {
	mu       sync.RWMutex
	payments map[string]*domain.Payment
}

// NewPaymentRepository returns an in-memory PaymentRepository.
func NewPaymentRepository() domain.PaymentRepository {
	return &paymentRepository{payments: make(map[string]*domain.Payment)}
}

func (r *paymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *p
	r.payments[p.ID] = &c
	return nil
}

func (r *paymentRepository) UpdateState(ctx context.Context, id string, state domain.PaymentState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payments[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.State = state
	return nil
}

func (r *paymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.payments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := *p
	return &c, nil
}

func (r *paymentRepository) GetByTicketID(ctx context.Context, ticketID string) (*domain.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.payments {
		if p.TicketID == ticketID {
			c := *p
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *paymentRepository) List(ctx context.Context, eventID string) ([]*domain.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Payment, 0)
	for _, p := range r.payments {
		if eventID == "" || p.EventID == eventID {
			c := *p
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}
