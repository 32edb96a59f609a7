package services

import (
	"fmt"
	"sync"

	"eventticketing/internal/domain"
)

type priceTable struct {
	mu     sync.RWMutex
	prices map[domain.EventCategory]map[domain.TicketType]domain.Money
}

// NewPriceTable returns a PriceTable seeded with every ticket type's base
// price for every event category.
func NewPriceTable() domain.PriceTable {
	prices := make(map[domain.EventCategory]map[domain.TicketType]domain.Money, len(domain.EventCategories))
	for _, c := range domain.EventCategories {
		row := make(map[domain.TicketType]domain.Money, len(domain.TicketTypes))
		for t, info := range domain.TicketTypes {
			row[t] = info.BasePrice
		}
		prices[c] = row
	}
	return &priceTable{prices: prices}
}

func (p *priceTable) Price(category domain.EventCategory, ticketType domain.TicketType) (domain.Money, error) {
	if err := checkPriceKey(category, ticketType); err != nil {
		return 0, err
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.prices[category][ticketType], nil
}

func (p *priceTable) Configure(category domain.EventCategory, ticketType domain.TicketType, price domain.Money) error {
	if err := checkPriceKey(category, ticketType); err != nil {
		return err
	}
	if price < 0 {
		return &domain.InvalidDataError{Field: "price", Reason: "must not be negative"}
	}
	if ticketType == domain.TicketFree && price != 0 {
		return &domain.InvalidDataError{Field: "price", Reason: "free tickets cannot carry a price"}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.prices[category][ticketType] = price
	return nil
}

func (p *priceTable) Snapshot() map[domain.EventCategory]map[domain.TicketType]domain.Money {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make(map[domain.EventCategory]map[domain.TicketType]domain.Money, len(p.prices))
	for c, row := range p.prices {
		cp := make(map[domain.TicketType]domain.Money, len(row))
		for t, v := range row {
			cp[t] = v
		}
		out[c] = cp
	}
	return out
}

func checkPriceKey(category domain.EventCategory, ticketType domain.TicketType) error {
	if !category.Valid() {
		return &domain.InvalidDataError{Field: "category", Reason: fmt.Sprintf("unknown category %q", category)}
	}
	if !ticketType.Valid() {
		return &domain.InvalidDataError{Field: "ticket_type", Reason: fmt.Sprintf("unknown ticket type %q", ticketType)}
	}
	return nil
}

// ticketPrice applies the VIP discount to non-free tiers.
func ticketPrice(base domain.Money, ticketType domain.TicketType, vip bool) domain.Money {
	if vip && ticketType != domain.TicketFree {
		return domain.ApplyVIPDiscount(base)
	}
	return base
}
