package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventticketing/internal/delivery/http/controllers"
	"eventticketing/internal/delivery/http/middleware"
	"eventticketing/internal/domain"
)

// Controllers groups every controller the router mounts.
type Controllers struct {
	Organizers   *controllers.OrganizerController
	Participants *controllers.ParticipantController
	Events       *controllers.EventController
	Attendees    *controllers.AttendeeController
	Tickets      *controllers.TicketController
	Reports      *controllers.ReportController
	Health       *controllers.HealthController
}

// NewRouter initializes the HTTP router with all application routes.
// Reads are public; every mutating route requires a bearer token.
func NewRouter(c Controllers, verifier domain.TokenVerifier, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()

	auth := middleware.RequireAuth(verifier, logger)
	anyone := auth
	staff := func(next http.HandlerFunc) http.HandlerFunc {
		return auth(middleware.RequireRole(domain.RoleOrganizer, domain.RoleAdmin)(next))
	}
	admin := func(next http.HandlerFunc) http.HandlerFunc {
		return auth(middleware.RequireRole(domain.RoleAdmin)(next))
	}

	// Registry
	mux.HandleFunc("POST /organizers", admin(c.Organizers.CreateOrganizer))
	mux.HandleFunc("GET /organizers", c.Organizers.ListOrganizers)
	mux.HandleFunc("GET /organizers/{organizerID}", c.Organizers.GetOrganizer)
	mux.HandleFunc("POST /participants", anyone(c.Participants.CreateParticipant))
	mux.HandleFunc("GET /participants", c.Participants.ListParticipants)
	mux.HandleFunc("GET /participants/{participantID}", c.Participants.GetParticipant)
	mux.HandleFunc("GET /participants/{participantID}/events", c.Participants.ListParticipantEvents)
	mux.HandleFunc("GET /participants/{participantID}/tickets", c.Participants.ListParticipantTickets)

	// Events
	mux.HandleFunc("POST /events", staff(c.Events.CreateEvent))
	mux.HandleFunc("GET /events", c.Events.ListEvents)
	mux.HandleFunc("GET /events/{eventID}", c.Events.GetEvent)
	mux.HandleFunc("PATCH /events/{eventID}", staff(c.Events.UpdateEvent))
	mux.HandleFunc("POST /events/{eventID}/publish", staff(c.Events.PublishEvent))
	mux.HandleFunc("POST /events/{eventID}/start", staff(c.Events.StartEvent))
	mux.HandleFunc("POST /events/{eventID}/finish", staff(c.Events.FinishEvent))
	mux.HandleFunc("POST /events/{eventID}/cancel", staff(c.Events.CancelEvent))
	mux.HandleFunc("GET /events/{eventID}/availability", c.Events.GetAvailability)

	// Registrations
	mux.HandleFunc("POST /events/{eventID}/registrations", anyone(c.Attendees.Register))
	mux.HandleFunc("GET /events/{eventID}/registrations", c.Attendees.ListRegistrations)
	mux.HandleFunc("DELETE /events/{eventID}/registrations/{participantID}", anyone(c.Attendees.CancelRegistration))
	mux.HandleFunc("POST /events/{eventID}/checkins", staff(c.Attendees.CheckIn))

	// Tickets
	mux.HandleFunc("POST /events/{eventID}/tickets", anyone(c.Tickets.PurchaseTicket))
	mux.HandleFunc("GET /events/{eventID}/tickets", c.Tickets.ListEventTickets)
	mux.HandleFunc("GET /tickets/{ticketID}", c.Tickets.GetTicket)
	mux.HandleFunc("POST /tickets/{ticketID}/refund", anyone(c.Tickets.RefundTicket))
	mux.HandleFunc("POST /tickets/{ticketID}/redeem", staff(c.Tickets.RedeemTicket))
	mux.HandleFunc("GET /prices", c.Tickets.ListPrices)
	mux.HandleFunc("PUT /prices/{category}/{ticketType}", admin(c.Tickets.SetPrice))

	// Reports
	mux.HandleFunc("GET /reports/events/states", c.Reports.EventStates)
	mux.HandleFunc("GET /reports/events/top", c.Reports.TopEvents)
	mux.HandleFunc("GET /reports/events/{eventID}", c.Reports.Event)
	mux.HandleFunc("GET /reports/financial", c.Reports.Financial)

	mux.HandleFunc("GET /health", c.Health.Health)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
