package domain

import (
	"context"
	"time"
)

// Participant is an attendee who may register for events and hold tickets.
// swagger:model Participant
type Participant struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Phone     string   `json:"phone"`
	Employer  string   `json:"employer"`
	Role      string   `json:"role"`
	Interests []string `json:"interests"`
	VIP       bool     `json:"vip"`
	// RegisteredEvents is derived from registrations when the participant is loaded.
	RegisteredEvents []string  `json:"registered_events"`
	CreatedAt        time.Time `json:"created_at"`
}

// NewParticipantInput carries the caller-supplied participant fields.
type NewParticipantInput struct {
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Phone     string   `json:"phone"`
	Employer  string   `json:"employer"`
	Role      string   `json:"role"`
	Interests []string `json:"interests"`
	VIP       bool     `json:"vip"`
}

// ParticipantRepository defines the interface for participant storage.
// Create returns ErrDuplicateEmail when the email is taken.
type ParticipantRepository interface {
	Create(ctx context.Context, p *Participant) error
	GetByID(ctx context.Context, id string) (*Participant, error)
	GetByEmail(ctx context.Context, email string) (*Participant, error)
	List(ctx context.Context) ([]*Participant, error)
}

// ParticipantService registers and looks up participants.
type ParticipantService interface {
	CreateParticipant(ctx context.Context, in NewParticipantInput) (*Participant, error)
	GetParticipant(ctx context.Context, id string) (*Participant, error)
	ListParticipants(ctx context.Context) ([]*Participant, error)
}
