package domain

import (
	"context"
	"time"
)

// Registration is the single relation edge between a participant and an event.
// swagger:model Registration
type Registration struct {
	EventID       string     `json:"event_id"`
	ParticipantID string     `json:"participant_id"`
	CheckedIn     bool       `json:"checked_in"`
	CheckedInAt   *time.Time `json:"checked_in_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// NewRegistration creates a new, not yet checked-in Registration.
func NewRegistration(eventID, participantID string, createdAt time.Time) *Registration {
	return &Registration{
		EventID:       eventID,
		ParticipantID: participantID,
		CreatedAt:     createdAt,
	}
}

// RegistrationRepository defines storage operations for registrations.
// Create returns ErrAlreadyRegistered when the (event, participant) pair exists.
type RegistrationRepository interface {
	Create(ctx context.Context, reg *Registration) error
	Delete(ctx context.Context, eventID, participantID string) error
	GetByEventAndParticipant(ctx context.Context, eventID, participantID string) (*Registration, error)
	MarkCheckedIn(ctx context.Context, eventID, participantID string, at time.Time) error
	ListByEventID(ctx context.Context, eventID string) ([]*Registration, error)
	ListByParticipantID(ctx context.Context, participantID string) ([]*Registration, error)
}

// RegistrationWithEvent bundles a registration with its related event.
type RegistrationWithEvent struct {
	Registration *Registration `json:"registration"`
	Event        *Event        `json:"event"`
}

// AttendeeService defines participant registration and attendance operations.
type AttendeeService interface {
	Register(ctx context.Context, participantID, eventID string) (*Registration, error)
	CancelRegistration(ctx context.Context, participantID, eventID string) error
	CheckIn(ctx context.Context, participantID, eventID string) (*Registration, error)
	ListEventRegistrations(ctx context.Context, eventID string) ([]*Registration, error)
	ListParticipantEvents(ctx context.Context, participantID string) ([]*RegistrationWithEvent, error)
}
