package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"eventticketing/internal/delivery/http/helpers"
	"eventticketing/internal/domain"
)

type TicketController struct {
	Logger  *slog.Logger
	Service domain.TicketService
	Prices  domain.PriceTable
}

func NewTicketController(logger *slog.Logger, svc domain.TicketService, prices domain.PriceTable) *TicketController {
	return &TicketController{
		Logger:  logger,
		Service: svc,
		Prices:  prices,
	}
}

// PurchaseTicketRequest is the request body for POST /events/{eventID}/tickets.
type PurchaseTicketRequest struct {
	ParticipantID string               `json:"participant_id"`
	Type          domain.TicketType    `json:"type"`
	Method        domain.PaymentMethod `json:"method"`
}

// Validate implements helpers.Validator.
func (p *PurchaseTicketRequest) Validate() []string {
	var errs []string
	p.Type = domain.TicketType(strings.ToUpper(strings.TrimSpace(string(p.Type))))
	p.Method = domain.PaymentMethod(strings.ToUpper(strings.TrimSpace(string(p.Method))))
	if p.Type == "" {
		errs = append(errs, "type is required")
	}
	if p.Method == "" {
		errs = append(errs, "method is required")
	}
	return errs
}

// TicketSuccessResponse is the success response envelope for a single ticket.
type TicketSuccessResponse struct {
	Data  *domain.Ticket    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// PurchaseTicket godoc
// @Summary Buy a ticket
// @Description Prices the ticket from the price table (VIP participants get 20% off paid tiers), charges it and registers the participant.
// @Tags tickets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body controllers.PurchaseTicketRequest true "Purchase"
// @Success 201 {object} controllers.TicketSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 402 {object} helpers.APIResponse "error.code: payment_required (declined)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (full, duplicate, wrong state)"
// @Router /events/{eventID}/tickets [post]
func (c *TicketController) PurchaseTicket(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	var req PurchaseTicketRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	participantID, ok := actingParticipant(w, r, req.ParticipantID)
	if !ok {
		return
	}
	t, err := c.Service.PurchaseTicket(r.Context(), eventID, participantID, req.Type, req.Method)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, t)
}

// ListEventTickets godoc
// @Summary List an event's tickets
// @Tags tickets
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data is a list of tickets"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/tickets [get]
func (c *TicketController) ListEventTickets(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	list, err := c.Service.ListTicketsByEvent(r.Context(), eventID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, list)
}

// TicketDetails is the data payload for GET /tickets/{ticketID}.
type TicketDetails struct {
	Ticket  *domain.Ticket  `json:"ticket"`
	Payment *domain.Payment `json:"payment"`
}

// GetTicket godoc
// @Summary Get a ticket with its payment
// @Tags tickets
// @Produce json
// @Param ticketID path string true "Ticket ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data.ticket and data.payment"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /tickets/{ticketID} [get]
func (c *TicketController) GetTicket(w http.ResponseWriter, r *http.Request) {
	ticketID, ok := pathUUID(w, r, "ticketID")
	if !ok {
		return
	}
	t, err := c.Service.GetTicket(r.Context(), ticketID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	p, err := c.Service.GetPaymentByTicket(r.Context(), ticketID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, TicketDetails{Ticket: t, Payment: p})
}

// RefundTicket godoc
// @Summary Refund a ticket
// @Description Moves the approved payment to REFUNDED. Used tickets cannot be refunded. Participants may only refund their own tickets.
// @Tags tickets
// @Produce json
// @Security BearerAuth
// @Param ticketID path string true "Ticket ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data is the refunded payment"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /tickets/{ticketID}/refund [post]
func (c *TicketController) RefundTicket(w http.ResponseWriter, r *http.Request) {
	ticketID, ok := pathUUID(w, r, "ticketID")
	if !ok {
		return
	}
	t, err := c.Service.GetTicket(r.Context(), ticketID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	if _, ok := actingParticipant(w, r, t.ParticipantID); !ok {
		return
	}
	p, err := c.Service.RefundTicket(r.Context(), ticketID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, p)
}

// RedeemTicket godoc
// @Summary Redeem a ticket at the door
// @Description Marks the ticket used and checks the holder in. The event must be IN_PROGRESS.
// @Tags tickets
// @Produce json
// @Security BearerAuth
// @Param ticketID path string true "Ticket ID (UUID)"
// @Success 200 {object} controllers.TicketSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /tickets/{ticketID}/redeem [post]
func (c *TicketController) RedeemTicket(w http.ResponseWriter, r *http.Request) {
	ticketID, ok := pathUUID(w, r, "ticketID")
	if !ok {
		return
	}
	t, err := c.Service.RedeemTicket(r.Context(), ticketID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, t)
}

// ListPrices godoc
// @Summary Show the price table
// @Description Prices in cents per event category and ticket type.
// @Tags prices
// @Produce json
// @Success 200 {object} helpers.APIResponse "data maps category to type to cents"
// @Router /prices [get]
func (c *TicketController) ListPrices(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSONSuccess(w, http.StatusOK, c.Prices.Snapshot())
}

// SetPriceRequest is the request body for PUT /prices/{category}/{ticketType}.
type SetPriceRequest struct {
	PriceCents *int64 `json:"price_cents"`
}

// Validate implements helpers.Validator.
func (s SetPriceRequest) Validate() []string {
	if s.PriceCents == nil {
		return []string{"price_cents is required"}
	}
	return nil
}

// SetPrice godoc
// @Summary Configure a price
// @Description FREE tickets must stay at 0. Prices cannot be negative.
// @Tags prices
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param category path string true "Event category"
// @Param ticketType path string true "Ticket type"
// @Param body body controllers.SetPriceRequest true "Price"
// @Success 200 {object} helpers.APIResponse "data is the updated price table"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /prices/{category}/{ticketType} [put]
func (c *TicketController) SetPrice(w http.ResponseWriter, r *http.Request) {
	category := domain.EventCategory(strings.ToUpper(r.PathValue("category")))
	ticketType := domain.TicketType(strings.ToUpper(r.PathValue("ticketType")))
	var req SetPriceRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := c.Prices.Configure(category, ticketType, domain.Money(*req.PriceCents)); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	c.Logger.InfoContext(r.Context(), "price configured", "category", category, "type", ticketType, "price", domain.Money(*req.PriceCents).String())
	helpers.WriteJSONSuccess(w, http.StatusOK, c.Prices.Snapshot())
}
