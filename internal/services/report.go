package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"eventticketing/internal/domain"
)

type reportService struct {
	reg            *registrar
	ticketRepo     domain.TicketRepository
	paymentRepo    domain.PaymentRepository
	contextTimeout time.Duration
}

// NewReportService returns a read-only ReportService. Reports take no locks
// and may observe a registration that is still being written.
func NewReportService(
	eventRepo domain.EventRepository,
	participantRepo domain.ParticipantRepository,
	registrationRepo domain.RegistrationRepository,
	ticketRepo domain.TicketRepository,
	paymentRepo domain.PaymentRepository,
	timeout time.Duration,
) domain.ReportService {
	return &reportService{
		reg:            newRegistrar(eventRepo, participantRepo, registrationRepo),
		ticketRepo:     ticketRepo,
		paymentRepo:    paymentRepo,
		contextTimeout: timeout,
	}
}

func (s *reportService) CountEventsByState(ctx context.Context) (map[domain.EventState]int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.reg.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	counts := make(map[domain.EventState]int, len(domain.EventStates))
	for _, st := range domain.EventStates {
		counts[st] = 0
	}
	for _, ev := range events {
		counts[ev.State]++
	}
	return counts, nil
}

func (s *reportService) TopEventsByRegistrations(ctx context.Context, n int) ([]domain.EventRanking, error) {
	if n < 0 {
		return nil, &domain.InvalidDataError{Field: "n", Reason: "must not be negative"}
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.reg.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	rankings := make([]domain.EventRanking, 0, len(events))
	for _, ev := range events {
		if err := s.reg.fillAttendance(ctx, ev); err != nil {
			return nil, err
		}
		rankings = append(rankings, domain.EventRanking{
			EventID:       ev.ID,
			Name:          ev.Name,
			State:         ev.State,
			Registrations: len(ev.Registered),
			Capacity:      ev.Capacity,
		})
	}
	sort.SliceStable(rankings, func(i, j int) bool {
		if rankings[i].Registrations != rankings[j].Registrations {
			return rankings[i].Registrations > rankings[j].Registrations
		}
		return rankings[i].Name < rankings[j].Name
	})
	if n < len(rankings) {
		rankings = rankings[:n]
	}
	return rankings, nil
}

func (s *reportService) EventOccupancy(ctx context.Context, eventID string) (*domain.EventOccupancy, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	ev, err := s.reg.loadEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return occupancyOf(ev), nil
}

func (s *reportService) EventAttendance(ctx context.Context, eventID string) (float64, error) {
	occ, err := s.EventOccupancy(ctx, eventID)
	if err != nil {
		return 0, err
	}
	return occ.AttendanceRate, nil
}

func occupancyOf(ev *domain.Event) *domain.EventOccupancy {
	occ := &domain.EventOccupancy{
		EventID:    ev.ID,
		Capacity:   ev.Capacity,
		Registered: len(ev.Registered),
		CheckedIn:  len(ev.CheckedIn),
		Remaining:  ev.RemainingCapacity(),
	}
	if ev.Capacity > 0 {
		occ.OccupancyRate = float64(occ.Registered) / float64(ev.Capacity)
	}
	if occ.Registered > 0 {
		occ.AttendanceRate = float64(occ.CheckedIn) / float64(occ.Registered)
	}
	return occ
}

func (s *reportService) TicketsByType(ctx context.Context, eventID string) (map[domain.TicketType]int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.ensureEvent(ctx, eventID); err != nil {
		return nil, err
	}
	tickets, err := s.ticketRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	counts := make(map[domain.TicketType]int, len(domain.OrderedTicketTypes))
	for _, t := range domain.OrderedTicketTypes {
		counts[t] = 0
	}
	for _, t := range tickets {
		counts[t.Type]++
	}
	return counts, nil
}

// FinancialSummary aggregates the payments of eventID, or of every event when eventID is empty.
func (s *reportService) FinancialSummary(ctx context.Context, eventID string) (*domain.FinancialSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if eventID != "" {
		if err := s.ensureEvent(ctx, eventID); err != nil {
			return nil, err
		}
	}
	payments, err := s.paymentRepo.List(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}

	sum := &domain.FinancialSummary{
		EventID:        eventID,
		ProcessingFees: make(map[domain.PaymentMethod]domain.Money),
	}
	for _, p := range payments {
		switch p.State {
		case domain.PaymentApproved:
			sum.GrossRevenue += p.Amount
			sum.ApprovedPayments++
			sum.ProcessingFees[p.Method] += p.Method.ProcessingFee(p.Amount)
		case domain.PaymentRefunded:
			sum.RefundedTotal += p.Amount
		}
	}
	sum.PlatformShare = domain.PlatformShare(sum.GrossRevenue)
	sum.OrganizerNetRevenue = sum.GrossRevenue - sum.PlatformShare
	return sum, nil
}

func (s *reportService) ensureEvent(ctx context.Context, eventID string) error {
	if _, err := s.reg.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrEventNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	return nil
}
