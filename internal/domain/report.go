package domain

import "context"

// EventRanking is one row of a top-N listing.
type EventRanking struct {
	EventID       string     `json:"event_id"`
	Name          string     `json:"name"`
	State         EventState `json:"state"`
	Registrations int        `json:"registrations"`
	Capacity      int        `json:"capacity"`
}

// EventOccupancy describes how full an event is and how many attended.
type EventOccupancy struct {
	EventID        string  `json:"event_id"`
	Capacity       int     `json:"capacity"`
	Registered     int     `json:"registered"`
	CheckedIn      int     `json:"checked_in"`
	Remaining      int     `json:"remaining"`
	OccupancyRate  float64 `json:"occupancy_rate"`
	AttendanceRate float64 `json:"attendance_rate"`
}

// FinancialSummary aggregates payments. EventID is empty for system-wide totals.
type FinancialSummary struct {
	EventID             string                  `json:"event_id,omitempty"`
	GrossRevenue        Money                   `json:"gross_revenue"`
	PlatformShare       Money                   `json:"platform_share"`
	OrganizerNetRevenue Money                   `json:"organizer_net_revenue"`
	RefundedTotal       Money                   `json:"refunded_total"`
	ApprovedPayments    int                     `json:"approved_payments"`
	ProcessingFees      map[PaymentMethod]Money `json:"processing_fees"`
}

// ReportService is a read-only façade over events, registrations, tickets and payments.
type ReportService interface {
	CountEventsByState(ctx context.Context) (map[EventState]int, error)
	TopEventsByRegistrations(ctx context.Context, n int) ([]EventRanking, error)
	EventOccupancy(ctx context.Context, eventID string) (*EventOccupancy, error)
	// EventAttendance is checked-in over registered, 0 when nobody registered.
	EventAttendance(ctx context.Context, eventID string) (float64, error)
	TicketsByType(ctx context.Context, eventID string) (map[TicketType]int, error)
	FinancialSummary(ctx context.Context, eventID string) (*FinancialSummary, error)
}
