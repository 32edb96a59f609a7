package domain

import (
	"context"
	"time"
)

// Organizer owns and creates events.
// swagger:model Organizer
type Organizer struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	Affiliation     string    `json:"affiliation"`
	Department      string    `json:"department"`
	ExperienceYears int       `json:"experience_years"`
	CreatedEvents   []string  `json:"created_events"`
	CreatedAt       time.Time `json:"created_at"`
}

// NewOrganizerInput carries the caller-supplied organizer fields.
type NewOrganizerInput struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Affiliation     string `json:"affiliation"`
	Department      string `json:"department"`
	ExperienceYears int    `json:"experience_years"`
}

// OrganizerRepository defines the interface for organizer storage.
type OrganizerRepository interface {
	Create(ctx context.Context, o *Organizer) error
	GetByID(ctx context.Context, id string) (*Organizer, error)
	GetByEmail(ctx context.Context, email string) (*Organizer, error)
	List(ctx context.Context) ([]*Organizer, error)
	// AddCreatedEvent appends eventID to the organizer's created events.
	AddCreatedEvent(ctx context.Context, organizerID, eventID string) error
}

// OrganizerService registers and looks up organizers.
type OrganizerService interface {
	CreateOrganizer(ctx context.Context, in NewOrganizerInput) (*Organizer, error)
	GetOrganizer(ctx context.Context, id string) (*Organizer, error)
	ListOrganizers(ctx context.Context) ([]*Organizer, error)
}
