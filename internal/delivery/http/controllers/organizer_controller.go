package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"eventticketing/internal/delivery/http/helpers"
	"eventticketing/internal/domain"
)

type OrganizerController struct {
	Logger  *slog.Logger
	Service domain.OrganizerService
}

func NewOrganizerController(logger *slog.Logger, svc domain.OrganizerService) *OrganizerController {
	return &OrganizerController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateOrganizerRequest is the request body for POST /organizers.
type CreateOrganizerRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Affiliation     string `json:"affiliation"`
	Department      string `json:"department"`
	ExperienceYears int    `json:"experience_years"`
}

// Validate implements helpers.Validator. Format rules are enforced by the service.
func (c CreateOrganizerRequest) Validate() []string {
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

// OrganizerSuccessResponse is the success response envelope for a single organizer.
type OrganizerSuccessResponse struct {
	Data  *domain.Organizer `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// CreateOrganizer godoc
// @Summary Register an organizer
// @Description Adds an organizer to the registry. Emails are unique across organizers.
// @Tags organizers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body controllers.CreateOrganizerRequest true "Organizer"
// @Success 201 {object} controllers.OrganizerSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (email in use)"
// @Router /organizers [post]
func (c *OrganizerController) CreateOrganizer(w http.ResponseWriter, r *http.Request) {
	var req CreateOrganizerRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	o, err := c.Service.CreateOrganizer(r.Context(), domain.NewOrganizerInput(req))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, o)
}

// GetOrganizer godoc
// @Summary Get an organizer
// @Tags organizers
// @Produce json
// @Param organizerID path string true "Organizer ID (UUID)"
// @Success 200 {object} controllers.OrganizerSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /organizers/{organizerID} [get]
func (c *OrganizerController) GetOrganizer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "organizerID")
	if !ok {
		return
	}
	o, err := c.Service.GetOrganizer(r.Context(), id)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, o)
}

// ListOrganizers godoc
// @Summary List organizers
// @Tags organizers
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse "data contains items and pagination"
// @Router /organizers [get]
func (c *OrganizerController) ListOrganizers(w http.ResponseWriter, r *http.Request) {
	list, err := c.Service.ListOrganizers(r.Context())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, helpers.Paginate(list, helpers.ParsePagination(r)))
}
