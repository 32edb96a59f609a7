package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventticketing/internal/delivery/http/helpers"
	"eventticketing/internal/domain"
	"eventticketing/internal/services"
)

const participantID = "6f1c2d4e-0000-4000-8000-0000000000b1"

type purchaseCall struct {
	eventID, participantID string
	ticketType             domain.TicketType
	method                 domain.PaymentMethod
}

type mockTicketService struct {
	domain.TicketService
	calls []purchaseCall
	err   error
}

func (m *mockTicketService) PurchaseTicket(ctx context.Context, eventID, participantID string, ticketType domain.TicketType, method domain.PaymentMethod) (*domain.Ticket, error) {
	m.calls = append(m.calls, purchaseCall{eventID, participantID, ticketType, method})
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Ticket{ID: "t-1", EventID: eventID, ParticipantID: participantID, Type: ticketType, Price: domain.Dollars(50)}, nil
}

func TestTicketController_PurchaseTicket(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		role       domain.Role
		caller     string
		svcErr     error
		wantStatus int
		wantCode   string
		wantFor    string
	}{
		{
			name:       "participant buys for self",
			body:       `{"type":"general","method":"cash"}`,
			role:       domain.RoleParticipant,
			caller:     participantID,
			wantStatus: http.StatusCreated,
			wantFor:    participantID,
		},
		{
			name:       "participant cannot buy for others",
			body:       `{"participant_id":"6f1c2d4e-0000-4000-8000-0000000000b2","type":"GENERAL","method":"CASH"}`,
			role:       domain.RoleParticipant,
			caller:     participantID,
			wantStatus: http.StatusForbidden,
			wantCode:   helpers.ErrCodeForbidden,
		},
		{
			name:       "organizer must name participant",
			body:       `{"type":"GENERAL","method":"CASH"}`,
			role:       domain.RoleOrganizer,
			caller:     orgID,
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "payment declined",
			body:       `{"type":"VIP","method":"CREDIT_CARD"}`,
			role:       domain.RoleParticipant,
			caller:     participantID,
			svcErr:     &domain.PaymentRejectedError{Method: domain.PaymentCreditCard, Reason: "declined by issuer"},
			wantStatus: http.StatusPaymentRequired,
			wantCode:   helpers.ErrCodePaymentRequired,
			wantFor:    participantID,
		},
		{
			name:       "event full",
			body:       `{"type":"VIP","method":"CREDIT_CARD"}`,
			role:       domain.RoleParticipant,
			caller:     participantID,
			svcErr:     &domain.CapacityExceededError{EventName: "Summit", Capacity: 1},
			wantStatus: http.StatusConflict,
			wantCode:   helpers.ErrCodeConflict,
			wantFor:    participantID,
		},
		{
			name:       "infrastructure failure",
			body:       `{"type":"VIP","method":"CREDIT_CARD"}`,
			role:       domain.RoleParticipant,
			caller:     participantID,
			svcErr:     errors.New("connection reset"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   helpers.ErrCodeInternalError,
			wantFor:    participantID,
		},
		{
			name:       "missing method",
			body:       `{"type":"VIP"}`,
			role:       domain.RoleParticipant,
			caller:     participantID,
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockTicketService{err: tt.svcErr}
			ctrl := NewTicketController(discardLogger(), svc, services.NewPriceTable())

			req := httptest.NewRequest(http.MethodPost, "/events/"+eventID+"/tickets", strings.NewReader(tt.body))
			req.SetPathValue("eventID", eventID)
			req = withIdentity(req, tt.caller, tt.role)
			w := httptest.NewRecorder()
			ctrl.PurchaseTicket(w, req)

			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.wantCode != "" {
				var resp helpers.APIResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				require.NotNil(t, resp.Error)
				assert.Equal(t, tt.wantCode, resp.Error.Code)
			}
			if tt.wantFor == "" {
				assert.Empty(t, svc.calls)
				return
			}
			require.Len(t, svc.calls, 1)
			assert.Equal(t, tt.wantFor, svc.calls[0].participantID)
			assert.Equal(t, eventID, svc.calls[0].eventID)
		})
	}
}

func TestTicketController_SetPrice(t *testing.T) {
	prices := services.NewPriceTable()
	ctrl := NewTicketController(discardLogger(), &mockTicketService{}, prices)

	tests := []struct {
		name       string
		category   string
		ticketType string
		body       string
		wantStatus int
	}{
		{name: "configure", category: "workshop", ticketType: "general", body: `{"price_cents":4200}`, wantStatus: http.StatusOK},
		{name: "negative", category: "WORKSHOP", ticketType: "GENERAL", body: `{"price_cents":-1}`, wantStatus: http.StatusBadRequest},
		{name: "unknown category", category: "PICNIC", ticketType: "GENERAL", body: `{"price_cents":100}`, wantStatus: http.StatusBadRequest},
		{name: "missing price", category: "WORKSHOP", ticketType: "GENERAL", body: `{}`, wantStatus: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPut, "/prices/"+tt.category+"/"+tt.ticketType, strings.NewReader(tt.body))
			req.SetPathValue("category", tt.category)
			req.SetPathValue("ticketType", tt.ticketType)
			w := httptest.NewRecorder()
			ctrl.SetPrice(w, req)
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
		})
	}

	price, err := prices.Price(domain.CategoryWorkshop, domain.TicketGeneral)
	require.NoError(t, err)
	assert.Equal(t, domain.Money(4200), price)
}
