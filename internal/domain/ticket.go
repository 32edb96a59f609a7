package domain

import (
	"context"
	"time"
)

// TicketType is a fixed price tier.
type TicketType string

const (
	TicketFree    TicketType = "FREE"
	TicketGeneral TicketType = "GENERAL"
	TicketVIP     TicketType = "VIP"
)

// TicketTypeInfo is the data attached to a ticket tier.
type TicketTypeInfo struct {
	BasePrice   Money
	Description string
}

// TicketTypes maps every tier to its base price.
var TicketTypes = map[TicketType]TicketTypeInfo{
	TicketFree:    {BasePrice: 0, Description: "Free admission"},
	TicketGeneral: {BasePrice: Dollars(50), Description: "General admission"},
	TicketVIP:     {BasePrice: Dollars(100), Description: "VIP admission"},
}

// OrderedTicketTypes lists the tiers from cheapest to most expensive.
var OrderedTicketTypes = []TicketType{TicketFree, TicketGeneral, TicketVIP}

// Valid reports whether t is a known tier.
func (t TicketType) Valid() bool {
	_, ok := TicketTypes[t]
	return ok
}

// VIPDiscountPercent is taken off non-free tickets bought by VIP participants.
const VIPDiscountPercent = 20

// PlatformCommissionPercent is the share of approved amounts retained by the platform.
const PlatformCommissionPercent = 5

// ApplyVIPDiscount returns price reduced by VIPDiscountPercent.
func ApplyVIPDiscount(price Money) Money {
	return price - price.Percent(VIPDiscountPercent)
}

// Ticket is proof of a reservation, one per successful purchase.
// swagger:model Ticket
type Ticket struct {
	ID            string     `json:"id"`
	EventID       string     `json:"event_id"`
	ParticipantID string     `json:"participant_id"`
	Type          TicketType `json:"type"`
	Price         Money      `json:"price"`
	PurchasedAt   time.Time  `json:"purchased_at"`
	Used          bool       `json:"used"`
}

// TicketRepository defines storage operations for tickets.
type TicketRepository interface {
	Create(ctx context.Context, t *Ticket) error
	GetByID(ctx context.Context, id string) (*Ticket, error)
	MarkUsed(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	ListByEventID(ctx context.Context, eventID string) ([]*Ticket, error)
	ListByParticipantID(ctx context.Context, participantID string) ([]*Ticket, error)
}

// PriceTable holds the configurable price per (event category, ticket type).
type PriceTable interface {
	Price(category EventCategory, ticketType TicketType) (Money, error)
	Configure(category EventCategory, ticketType TicketType, price Money) error
	Snapshot() map[EventCategory]map[TicketType]Money
}

// TicketService sells, refunds and redeems tickets and answers revenue queries.
// An empty eventID in the revenue queries aggregates across all events.
type TicketService interface {
	PurchaseTicket(ctx context.Context, eventID, participantID string, ticketType TicketType, method PaymentMethod) (*Ticket, error)
	RefundTicket(ctx context.Context, ticketID string) (*Payment, error)
	RedeemTicket(ctx context.Context, ticketID string) (*Ticket, error)
	GetTicket(ctx context.Context, ticketID string) (*Ticket, error)
	GetPaymentByTicket(ctx context.Context, ticketID string) (*Payment, error)
	ListTicketsByEvent(ctx context.Context, eventID string) ([]*Ticket, error)
	ListTicketsByParticipant(ctx context.Context, participantID string) ([]*Ticket, error)
	GrossRevenue(ctx context.Context, eventID string) (Money, error)
	PlatformShare(ctx context.Context, eventID string) (Money, error)
	OrganizerNetRevenue(ctx context.Context, eventID string) (Money, error)
}
