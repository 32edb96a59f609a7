package controllers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"eventticketing/internal/delivery/http/helpers"
	"eventticketing/internal/domain"
)

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateEventRequest is the request body for POST /events. Draft events must be published before they accept registrations.
type CreateEventRequest struct {
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Category    domain.EventCategory `json:"category"`
	StartTime   time.Time            `json:"start"`
	EndTime     time.Time            `json:"end"`
	Location    string               `json:"location"`
	Capacity    int                  `json:"capacity"`
	OrganizerID string               `json:"organizer_id"`
	Draft       bool                 `json:"draft"`
}

// Validate implements helpers.Validator. Only presence is checked here.
func (c CreateEventRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, "name is required")
	}
	if c.Category == "" {
		errs = append(errs, "category is required")
	}
	if c.StartTime.IsZero() {
		errs = append(errs, "start is required")
	}
	if c.EndTime.IsZero() {
		errs = append(errs, "end is required")
	}
	if strings.TrimSpace(c.Location) == "" {
		errs = append(errs, "location is required")
	}
	return errs
}

// EventSuccessResponse is the success response envelope for a single event.
type EventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// CreateEvent godoc
// @Summary Create an event
// @Description Creates a PUBLISHED event, or a DRAFT when draft is true. Organizers always create events they own; admins must pass organizer_id.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body controllers.CreateEventRequest true "Event"
// @Success 201 {object} controllers.EventSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (organizer)"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	id, ok := caller(w, r)
	if !ok {
		return
	}
	organizerID := req.OrganizerID
	if id.Role == domain.RoleOrganizer {
		if organizerID != "" && organizerID != id.ID {
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "organizers may only create their own events")
			return
		}
		organizerID = id.ID
	}
	if err := uuid.Validate(organizerID); err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid organizer_id")
		return
	}

	in := domain.NewEventInput{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Location:    req.Location,
		Capacity:    req.Capacity,
		OrganizerID: organizerID,
	}
	create := c.Service.CreateEvent
	if req.Draft {
		create = c.Service.CreateDraftEvent
	}
	ev, err := create(r.Context(), in)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, ev)
}

// ListEvents godoc
// @Summary List events
// @Description Lists events, optionally filtered by state or organizer_id. Results are paginated.
// @Tags events
// @Produce json
// @Param state query string false "DRAFT, PUBLISHED, IN_PROGRESS, FINISHED or CANCELLED"
// @Param organizer_id query string false "Organizer ID (UUID)"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse "data contains items and pagination"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (organizer)"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var (
		list []*domain.Event
		err  error
	)
	switch {
	case q.Get("state") != "" && q.Get("organizer_id") != "":
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "filter by state or organizer_id, not both")
		return
	case q.Get("state") != "":
		list, err = c.Service.ListEventsByState(r.Context(), domain.EventState(strings.ToUpper(q.Get("state"))))
	case q.Get("organizer_id") != "":
		list, err = c.Service.ListEventsByOrganizer(r.Context(), q.Get("organizer_id"))
	default:
		list, err = c.Service.ListEvents(r.Context())
	}
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, helpers.Paginate(list, helpers.ParsePagination(r)))
}

// GetEvent godoc
// @Summary Get an event
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	ev, err := c.Service.GetEvent(r.Context(), eventID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ev)
}

// UpdateEvent godoc
// @Summary Edit an event
// @Description Changes name, description or location. Omitted fields stay unchanged. FINISHED and CANCELLED events cannot be edited.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body domain.EventUpdate true "Fields to change"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (terminal state)"
// @Router /events/{eventID} [patch]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	var req domain.EventUpdate
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	ev, err := c.Service.UpdateEvent(r.Context(), eventID, req)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ev)
}

// PublishEvent godoc
// @Summary Publish a draft event
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (illegal transition)"
// @Router /events/{eventID}/publish [post]
func (c *EventController) PublishEvent(w http.ResponseWriter, r *http.Request) {
	c.transition(w, r, c.Service.Publish)
}

// StartEvent godoc
// @Summary Start a published event
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (illegal transition)"
// @Router /events/{eventID}/start [post]
func (c *EventController) StartEvent(w http.ResponseWriter, r *http.Request) {
	c.transition(w, r, c.Service.Start)
}

// FinishEvent godoc
// @Summary Finish a running event
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (illegal transition)"
// @Router /events/{eventID}/finish [post]
func (c *EventController) FinishEvent(w http.ResponseWriter, r *http.Request) {
	c.transition(w, r, c.Service.Finish)
}

func (c *EventController) transition(w http.ResponseWriter, r *http.Request, move func(ctx context.Context, eventID string) (*domain.Event, error)) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	ev, err := move(r.Context(), eventID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ev)
}

// CancelEvent godoc
// @Summary Cancel an event
// @Description Only the owning organizer may cancel. Running, finished and cancelled events cannot be cancelled.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not owner)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /events/{eventID}/cancel [post]
func (c *EventController) CancelEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	id, ok := caller(w, r)
	if !ok {
		return
	}
	ev, err := c.Service.CancelEvent(r.Context(), eventID, id.ID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ev)
}

// AvailabilityResponse is the data payload for GET /events/{eventID}/availability.
type AvailabilityResponse struct {
	EventID   string `json:"event_id"`
	Available bool   `json:"available"`
}

// GetAvailability godoc
// @Summary Check whether an event has free places
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data.available"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/availability [get]
func (c *EventController) GetAvailability(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	available, err := c.Service.HasAvailableCapacity(r.Context(), eventID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, AvailabilityResponse{EventID: eventID, Available: available})
}
