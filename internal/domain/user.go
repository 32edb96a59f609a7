package domain

import "time"

// Role is the caller's role as asserted by the authentication collaborator.
type Role string

const (
	RoleOrganizer   Role = "organizer"
	RoleParticipant Role = "participant"
	RoleAdmin       Role = "admin"
)

// Identity is the authenticated caller.
type Identity struct {
	ID   string
	Role Role
}

// TokenIssuer issues tokens (e.g. JWT) for a caller identity.
type TokenIssuer interface {
	Issue(subjectID string, role Role, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the caller identity.
type TokenVerifier interface {
	Verify(token string) (Identity, error)
}
