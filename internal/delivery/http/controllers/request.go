package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"eventticketing/internal/delivery/http/helpers"
	"eventticketing/internal/delivery/http/middleware"
	"eventticketing/internal/domain"
)

// pathUUID reads a path parameter and checks that it is a UUID. It writes a 400 and returns false otherwise.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	v := r.PathValue(name)
	if v == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing "+name)
		return "", false
	}
	if err := uuid.Validate(v); err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid "+name)
		return "", false
	}
	return v, true
}

func caller(w http.ResponseWriter, r *http.Request) (domain.Identity, bool) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return domain.Identity{}, false
	}
	return id, true
}

// actingParticipant resolves whose registration or ticket a request is about.
// Participants always act for themselves; organizers and admins must name the participant.
func actingParticipant(w http.ResponseWriter, r *http.Request, requested string) (string, bool) {
	id, ok := caller(w, r)
	if !ok {
		return "", false
	}
	if id.Role == domain.RoleParticipant {
		if requested != "" && requested != id.ID {
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "participants may only act for themselves")
			return "", false
		}
		return id.ID, true
	}
	if requested == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "participant_id is required")
		return "", false
	}
	if err := uuid.Validate(requested); err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid participant_id")
		return "", false
	}
	return requested, true
}

// decodeOptional decodes a body that may be omitted entirely.
func decodeOptional(w http.ResponseWriter, r *http.Request, dest any) bool {
	if r.Body == nil || r.ContentLength == 0 {
		return true
	}
	return helpers.DecodeAndValidate(w, r, dest)
}
