package controllers

import (
	"log/slog"
	"net/http"

	"eventticketing/internal/delivery/http/helpers"
	"eventticketing/internal/domain"
)

type AttendeeController struct {
	Logger  *slog.Logger
	Service domain.AttendeeService
}

func NewAttendeeController(logger *slog.Logger, svc domain.AttendeeService) *AttendeeController {
	return &AttendeeController{
		Logger:  logger,
		Service: svc,
	}
}

// ParticipantRequest names the participant a registration or check-in is for.
// Participants may leave it empty to act for themselves.
type ParticipantRequest struct {
	ParticipantID string `json:"participant_id"`
}

// RegistrationSuccessResponse is the success response envelope for registration and check-in.
type RegistrationSuccessResponse struct {
	Data  *domain.Registration `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// Register godoc
// @Summary Register a participant for an event
// @Description Fails when the event is not accepting registrations, is full, or the participant is already registered.
// @Tags registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body controllers.ParticipantRequest false "Participant (organizers and admins only)"
// @Success 201 {object} controllers.RegistrationSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (full, duplicate, wrong state)"
// @Router /events/{eventID}/registrations [post]
func (c *AttendeeController) Register(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	var req ParticipantRequest
	if !decodeOptional(w, r, &req) {
		return
	}
	participantID, ok := actingParticipant(w, r, req.ParticipantID)
	if !ok {
		return
	}
	reg, err := c.Service.Register(r.Context(), participantID, eventID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, reg)
}

// CancelRegistration godoc
// @Summary Withdraw a registration
// @Description Allowed while the event is DRAFT or PUBLISHED.
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param participantID path string true "Participant ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data.status: cancelled"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (not registered, event running)"
// @Router /events/{eventID}/registrations/{participantID} [delete]
func (c *AttendeeController) CancelRegistration(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	requested, ok := pathUUID(w, r, "participantID")
	if !ok {
		return
	}
	participantID, ok := actingParticipant(w, r, requested)
	if !ok {
		return
	}
	if err := c.Service.CancelRegistration(r.Context(), participantID, eventID); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "cancelled"})
}

// CheckIn godoc
// @Summary Check a participant in
// @Description The event must be IN_PROGRESS and the participant registered.
// @Tags registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body controllers.ParticipantRequest true "Participant"
// @Success 200 {object} controllers.RegistrationSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (not registered, already checked in, wrong state)"
// @Router /events/{eventID}/checkins [post]
func (c *AttendeeController) CheckIn(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	var req ParticipantRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	participantID, ok := actingParticipant(w, r, req.ParticipantID)
	if !ok {
		return
	}
	reg, err := c.Service.CheckIn(r.Context(), participantID, eventID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, reg)
}

// ListRegistrations godoc
// @Summary List an event's registrations
// @Tags registrations
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data is a list of registrations"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/registrations [get]
func (c *AttendeeController) ListRegistrations(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	list, err := c.Service.ListEventRegistrations(r.Context(), eventID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, list)
}
