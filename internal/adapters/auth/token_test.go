package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventticketing/internal/domain"
)

func TestJWTIssuer_Issue(t *testing.T) {
	secret := "test-secret"
	issuer := NewJWTIssuer(secret)

	token, err := issuer.Issue("org-123", domain.RoleOrganizer, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := jwt.ParseWithClaims(token, &jwtClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	claims, ok := parsed.Claims.(*jwtClaims)
	require.True(t, ok)
	assert.Equal(t, "org-123", claims.Subject)
	assert.Equal(t, domain.RoleOrganizer, claims.Role)
}

func TestJWTVerifier_Verify(t *testing.T) {
	issuer := NewJWTIssuer("test-secret")
	verifier := NewJWTVerifier("test-secret")

	token, err := issuer.Issue("p-1", domain.RoleParticipant, time.Hour)
	require.NoError(t, err)
	id, err := verifier.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, domain.Identity{ID: "p-1", Role: domain.RoleParticipant}, id)

	expiredIssuer := &jwtIssuer{secret: []byte("test-secret"), now: func() time.Time { return time.Now().Add(-2 * time.Hour) }}
	expired, err := expiredIssuer.Issue("p-1", domain.RoleParticipant, time.Hour)
	require.NoError(t, err)

	foreign, err := NewJWTIssuer("other-secret").Issue("p-1", domain.RoleParticipant, time.Hour)
	require.NoError(t, err)

	badRole, err := issuer.Issue("p-1", "root", time.Hour)
	require.NoError(t, err)

	for name, tok := range map[string]string{
		"expired":      expired,
		"wrong secret": foreign,
		"unknown role": badRole,
		"garbage":      "not-a-jwt",
		"empty":        "",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := verifier.Verify(tok)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidToken))
		})
	}
}
