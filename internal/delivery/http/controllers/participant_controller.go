package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"eventticketing/internal/delivery/http/helpers"
	"eventticketing/internal/domain"
)

type ParticipantController struct {
	Logger    *slog.Logger
	Service   domain.ParticipantService
	Attendees domain.AttendeeService
	Tickets   domain.TicketService
}

func NewParticipantController(logger *slog.Logger, svc domain.ParticipantService, attendees domain.AttendeeService, tickets domain.TicketService) *ParticipantController {
	return &ParticipantController{
		Logger:    logger,
		Service:   svc,
		Attendees: attendees,
		Tickets:   tickets,
	}
}

// CreateParticipantRequest is the request body for POST /participants.
type CreateParticipantRequest struct {
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Phone     string   `json:"phone"`
	Employer  string   `json:"employer"`
	Role      string   `json:"role"`
	Interests []string `json:"interests"`
	VIP       bool     `json:"vip"`
}

// Validate implements helpers.Validator. Format rules are enforced by the service.
func (c CreateParticipantRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, "name is required")
	}
	if strings.TrimSpace(c.Email) == "" {
		errs = append(errs, "email is required")
	}
	if strings.TrimSpace(c.Phone) == "" {
		errs = append(errs, "phone is required")
	}
	return errs
}

// ParticipantSuccessResponse is the success response envelope for a single participant.
type ParticipantSuccessResponse struct {
	Data  *domain.Participant `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// CreateParticipant godoc
// @Summary Register a participant
// @Description Adds a participant to the registry. Emails are unique across participants.
// @Tags participants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body controllers.CreateParticipantRequest true "Participant"
// @Success 201 {object} controllers.ParticipantSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (email in use)"
// @Router /participants [post]
func (c *ParticipantController) CreateParticipant(w http.ResponseWriter, r *http.Request) {
	var req CreateParticipantRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	p, err := c.Service.CreateParticipant(r.Context(), domain.NewParticipantInput(req))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, p)
}

// GetParticipant godoc
// @Summary Get a participant
// @Tags participants
// @Produce json
// @Param participantID path string true "Participant ID (UUID)"
// @Success 200 {object} controllers.ParticipantSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /participants/{participantID} [get]
func (c *ParticipantController) GetParticipant(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "participantID")
	if !ok {
		return
	}
	p, err := c.Service.GetParticipant(r.Context(), id)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, p)
}

// ListParticipants godoc
// @Summary List participants
// @Tags participants
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse "data contains items and pagination"
// @Router /participants [get]
func (c *ParticipantController) ListParticipants(w http.ResponseWriter, r *http.Request) {
	list, err := c.Service.ListParticipants(r.Context())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, helpers.Paginate(list, helpers.ParsePagination(r)))
}

// ListParticipantEvents godoc
// @Summary List the events a participant is registered for
// @Tags participants
// @Produce json
// @Param participantID path string true "Participant ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data is a list of registration + event pairs"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /participants/{participantID}/events [get]
func (c *ParticipantController) ListParticipantEvents(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "participantID")
	if !ok {
		return
	}
	list, err := c.Attendees.ListParticipantEvents(r.Context(), id)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, list)
}

// ListParticipantTickets godoc
// @Summary List the tickets a participant bought
// @Tags participants
// @Produce json
// @Param participantID path string true "Participant ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data is a list of tickets"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /participants/{participantID}/tickets [get]
func (c *ParticipantController) ListParticipantTickets(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "participantID")
	if !ok {
		return
	}
	list, err := c.Tickets.ListTicketsByParticipant(r.Context(), id)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, list)
}
