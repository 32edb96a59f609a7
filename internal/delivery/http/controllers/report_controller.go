package controllers

import (
	"log/slog"
	"net/http"
	"strconv"

	"eventticketing/internal/delivery/http/helpers"
	"eventticketing/internal/domain"
)

// DefaultTopEvents is used when GET /reports/events/top has no n.
const DefaultTopEvents = 5

type ReportController struct {
	Logger  *slog.Logger
	Service domain.ReportService
}

func NewReportController(logger *slog.Logger, svc domain.ReportService) *ReportController {
	return &ReportController{
		Logger:  logger,
		Service: svc,
	}
}

// EventStates godoc
// @Summary Count events per state
// @Tags reports
// @Produce json
// @Success 200 {object} helpers.APIResponse "data maps state to count"
// @Router /reports/events/states [get]
func (c *ReportController) EventStates(w http.ResponseWriter, r *http.Request) {
	counts, err := c.Service.CountEventsByState(r.Context())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, counts)
}

// TopEvents godoc
// @Summary Rank events by registrations
// @Tags reports
// @Produce json
// @Param n query int false "How many events (default 5)"
// @Success 200 {object} helpers.APIResponse "data is a ranked list"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /reports/events/top [get]
func (c *ReportController) TopEvents(w http.ResponseWriter, r *http.Request) {
	n := DefaultTopEvents
	if s := r.URL.Query().Get("n"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "n must be an integer")
			return
		}
		n = v
	}
	ranking, err := c.Service.TopEventsByRegistrations(r.Context(), n)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ranking)
}

// Financial godoc
// @Summary Revenue, commission and refunds
// @Description Aggregates one event when event_id is set, otherwise every event.
// @Tags reports
// @Produce json
// @Param event_id query string false "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data is a financial summary"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /reports/financial [get]
func (c *ReportController) Financial(w http.ResponseWriter, r *http.Request) {
	summary, err := c.Service.FinancialSummary(r.Context(), r.URL.Query().Get("event_id"))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, summary)
}

// EventReport is the data payload for GET /reports/events/{eventID}.
type EventReport struct {
	Occupancy     *domain.EventOccupancy    `json:"occupancy"`
	TicketsByType map[domain.TicketType]int `json:"tickets_by_type"`
}

// Event godoc
// @Summary Occupancy, attendance and ticket mix of one event
// @Tags reports
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data.occupancy and data.tickets_by_type"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /reports/events/{eventID} [get]
func (c *ReportController) Event(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	occ, err := c.Service.EventOccupancy(r.Context(), eventID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	byType, err := c.Service.TicketsByType(r.Context(), eventID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, EventReport{Occupancy: occ, TicketsByType: byType})
}
