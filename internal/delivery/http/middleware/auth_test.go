package middleware

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventticketing/internal/delivery/http/helpers"
	"eventticketing/internal/domain"
)

// fakeTokenVerifier implements domain.TokenVerifier for tests.
type fakeTokenVerifier struct {
	id  domain.Identity
	err error
}

func (f *fakeTokenVerifier) Verify(_ string) (domain.Identity, error) {
	if f.err != nil {
		return domain.Identity{}, f.err
	}
	return f.id, nil
}

func TestRequireAuth(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	organizer := domain.Identity{ID: "org-123", Role: domain.RoleOrganizer}

	tests := []struct {
		name         string
		authHeader   string
		verifier     domain.TokenVerifier
		wantStatus   int
		wantBodyCode string
		nextCalled   bool
	}{
		{
			name:       "valid token sets context and calls next",
			authHeader: "Bearer valid-token",
			verifier:   &fakeTokenVerifier{id: organizer},
			wantStatus: http.StatusOK,
			nextCalled: true,
		},
		{
			name:         "missing authorization header",
			authHeader:   "",
			verifier:     &fakeTokenVerifier{id: organizer},
			wantStatus:   http.StatusUnauthorized,
			wantBodyCode: helpers.ErrCodeUnauthorized,
		},
		{
			name:         "invalid authorization format no Bearer prefix",
			authHeader:   "Basic abc",
			verifier:     &fakeTokenVerifier{id: organizer},
			wantStatus:   http.StatusUnauthorized,
			wantBodyCode: helpers.ErrCodeUnauthorized,
		},
		{
			name:         "empty token after Bearer",
			authHeader:   "Bearer ",
			verifier:     &fakeTokenVerifier{id: organizer},
			wantStatus:   http.StatusUnauthorized,
			wantBodyCode: helpers.ErrCodeUnauthorized,
		},
		{
			name:         "verifier returns error",
			authHeader:   "Bearer bad-token",
			verifier:     &fakeTokenVerifier{err: errors.New("invalid or expired token")},
			wantStatus:   http.StatusUnauthorized,
			wantBodyCode: helpers.ErrCodeUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled := false
			var captured domain.Identity
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				if id, ok := IdentityFromContext(r.Context()); ok {
					captured = id
				}
				w.WriteHeader(http.StatusOK)
			})
			handler := RequireAuth(tt.verifier, logger)(next)

			req := httptest.NewRequest(http.MethodPost, "http://test/events", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rr := httptest.NewRecorder()

			handler(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			assert.Equal(t, tt.nextCalled, nextCalled, "next handler called")
			if tt.nextCalled {
				assert.Equal(t, organizer, captured, "identity in context")
			}
			if tt.wantBodyCode != "" {
				var envelope helpers.APIResponse
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
				require.NotNil(t, envelope.Error)
				assert.Equal(t, tt.wantBodyCode, envelope.Error.Code)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name       string
		identity   *domain.Identity
		wantStatus int
	}{
		{name: "allowed role", identity: &domain.Identity{ID: "a", Role: domain.RoleAdmin}, wantStatus: http.StatusOK},
		{name: "other role", identity: &domain.Identity{ID: "p", Role: domain.RoleParticipant}, wantStatus: http.StatusForbidden},
		{name: "no identity", wantStatus: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})
			handler := RequireRole(domain.RoleOrganizer, domain.RoleAdmin)(next)

			req := httptest.NewRequest(http.MethodPut, "http://test/prices/CONCERT/VIP", nil)
			if tt.identity != nil {
				req = req.WithContext(SetIdentity(req.Context(), *tt.identity))
			}
			rr := httptest.NewRecorder()
			handler(rr, req)
			require.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}
