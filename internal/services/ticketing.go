package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"eventticketing/internal/domain"
)

type ticketService struct {
	reg            *registrar
	ticketRepo     domain.TicketRepository
	paymentRepo    domain.PaymentRepository
	prices         domain.PriceTable
	authorizer     domain.PaymentAuthorizer
	locker         domain.Locker
	emailService   domain.EmailService
	logger         *slog.Logger
	contextTimeout time.Duration
	newID          func() string
}

// NewTicketService returns a TicketService. A purchase holds the event lock
// from the capacity check until the registration is written, so a ticket is
// only ever issued together with its registration.
func NewTicketService(
	eventRepo domain.EventRepository,
	participantRepo domain.ParticipantRepository,
	registrationRepo domain.RegistrationRepository,
	ticketRepo domain.TicketRepository,
	paymentRepo domain.PaymentRepository,
	prices domain.PriceTable,
	authorizer domain.PaymentAuthorizer,
	locker domain.Locker,
	emailService domain.EmailService,
	logger *slog.Logger,
	timeout time.Duration,
) domain.TicketService {
	return &ticketService{
		reg:            newRegistrar(eventRepo, participantRepo, registrationRepo),
		ticketRepo:     ticketRepo,
		paymentRepo:    paymentRepo,
		prices:         prices,
		authorizer:     authorizer,
		locker:         locker,
		emailService:   emailService,
		logger:         logger,
		contextTimeout: timeout,
		newID:          uuid.NewString,
	}
}

func (s *ticketService) PurchaseTicket(ctx context.Context, eventID, participantID string, ticketType domain.TicketType, method domain.PaymentMethod) (*domain.Ticket, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !ticketType.Valid() {
		return nil, &domain.InvalidDataError{Field: "ticket_type", Reason: fmt.Sprintf("unknown ticket type %q", ticketType)}
	}
	if !method.Valid() {
		return nil, &domain.InvalidDataError{Field: "payment_method", Reason: fmt.Sprintf("unknown payment method %q", method)}
	}

	ticket, ev, p, err := s.purchaseLocked(ctx, eventID, participantID, ticketType, method)
	if err != nil {
		return nil, err
	}

	if s.emailService != nil {
		data := &domain.TicketConfirmationEmailData{
			Email:           p.Email,
			ParticipantName: p.Name,
			EventName:       ev.Name,
			EventStart:      ev.StartTime.Format(time.RFC1123),
			Location:        ev.Location,
			TicketID:        ticket.ID,
			TicketType:      ticket.Type,
			Price:           ticket.Price,
		}
		if err := s.emailService.SendTicketConfirmation(ctx, data); err != nil {
			s.logger.Error("send ticket confirmation", "ticket_id", ticket.ID, "error", err)
		}
	}
	return ticket, nil
}

func (s *ticketService) purchaseLocked(ctx context.Context, eventID, participantID string, ticketType domain.TicketType, method domain.PaymentMethod) (*domain.Ticket, *domain.Event, *domain.Participant, error) {
	unlock, err := s.locker.Lock(ctx, domain.EventLockKey(eventID))
	if err != nil {
		return nil, nil, nil, err
	}
	defer unlock()

	ev, err := s.reg.loadEvent(ctx, eventID)
	if err != nil {
		return nil, nil, nil, err
	}
	p, err := s.reg.loadParticipant(ctx, participantID)
	if err != nil {
		return nil, nil, nil, err
	}
	// Everything the registration step checks is checked before money moves.
	if err := canRegister(ev, p); err != nil {
		return nil, nil, nil, err
	}

	base, err := s.prices.Price(ev.Category, ticketType)
	if err != nil {
		return nil, nil, nil, err
	}
	now := s.reg.now()
	ticket := &domain.Ticket{
		ID:            s.newID(),
		EventID:       ev.ID,
		ParticipantID: p.ID,
		Type:          ticketType,
		Price:         ticketPrice(base, ticketType, p.VIP),
		PurchasedAt:   now,
	}
	payment := &domain.Payment{
		ID:            s.newID(),
		TicketID:      ticket.ID,
		ParticipantID: p.ID,
		EventID:       ev.ID,
		Amount:        ticket.Price,
		Method:        method,
		State:         domain.PaymentPending,
		CreatedAt:     now,
	}

	decision, err := s.authorizer.Authorize(ctx, payment)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("authorize payment: %w", err)
	}
	if !decision.Approved {
		s.logger.Info("payment rejected", "event_id", ev.ID, "participant_id", p.ID, "method", method, "reason", decision.Reason)
		return nil, nil, nil, &domain.PaymentRejectedError{Method: method, Reason: decision.Reason}
	}
	payment.State = domain.PaymentApproved

	if err := s.ticketRepo.Create(ctx, ticket); err != nil {
		return nil, nil, nil, fmt.Errorf("create ticket: %w", err)
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		s.discardTicket(ctx, ticket)
		return nil, nil, nil, fmt.Errorf("create payment: %w", err)
	}
	if _, _, _, err := s.reg.register(ctx, p.ID, ev.ID); err != nil {
		s.compensate(ctx, payment)
		return nil, nil, nil, err
	}

	s.logger.Info("ticket purchased", "ticket_id", ticket.ID, "event_id", ev.ID, "participant_id", p.ID,
		"type", ticket.Type, "price", ticket.Price.String(), "method", method)
	return ticket, ev, p, nil
}

// discardTicket removes a ticket whose payment could not be stored.
func (s *ticketService) discardTicket(ctx context.Context, ticket *domain.Ticket) {
	if err := s.ticketRepo.Delete(ctx, ticket.ID); err != nil {
		s.logger.Error("delete ticket after failed payment write", "ticket_id", ticket.ID, "error", err)
		return
	}
	s.logger.Warn("ticket discarded after failed payment write", "ticket_id", ticket.ID, "event_id", ticket.EventID)
}

// compensate refunds a payment whose registration could not be written.
func (s *ticketService) compensate(ctx context.Context, payment *domain.Payment) {
	if err := s.paymentRepo.UpdateState(ctx, payment.ID, domain.PaymentRefunded); err != nil {
		s.logger.Error("refund payment after failed registration", "payment_id", payment.ID, "error", err)
		return
	}
	s.logger.Warn("payment refunded after failed registration", "payment_id", payment.ID, "ticket_id", payment.TicketID)
}

func (s *ticketService) RefundTicket(ctx context.Context, ticketID string) (*domain.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	unlock, err := s.locker.Lock(ctx, domain.TicketLockKey(ticketID))
	if err != nil {
		return nil, err
	}
	defer unlock()

	ticket, err := s.getTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.Used {
		return nil, &domain.InvalidOperationError{Op: "refund", Reason: "ticket has already been used"}
	}
	payment, err := s.getPayment(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !payment.State.CanMoveTo(domain.PaymentRefunded) {
		return nil, &domain.InvalidOperationError{Op: "refund", Reason: fmt.Sprintf("payment is %s", payment.State)}
	}
	if err := s.paymentRepo.UpdateState(ctx, payment.ID, domain.PaymentRefunded); err != nil {
		return nil, fmt.Errorf("update payment state: %w", err)
	}
	payment.State = domain.PaymentRefunded
	s.logger.Info("ticket refunded", "ticket_id", ticket.ID, "payment_id", payment.ID, "amount", payment.Amount.String())
	return payment, nil
}

func (s *ticketService) RedeemTicket(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	unlockTicket, err := s.locker.Lock(ctx, domain.TicketLockKey(ticketID))
	if err != nil {
		return nil, err
	}
	defer unlockTicket()

	ticket, err := s.getTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.Used {
		return nil, &domain.InvalidOperationError{Op: "redeem", Reason: "ticket has already been used"}
	}
	payment, err := s.getPayment(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if payment.State != domain.PaymentApproved {
		return nil, &domain.InvalidOperationError{Op: "redeem", Reason: fmt.Sprintf("payment is %s", payment.State)}
	}

	// Lock order is ticket then event.
	unlockEvent, err := s.locker.Lock(ctx, domain.EventLockKey(ticket.EventID))
	if err != nil {
		return nil, err
	}
	defer unlockEvent()

	// A participant checked in by hand can still hand in their ticket.
	if _, err := s.reg.checkIn(ctx, ticket.ParticipantID, ticket.EventID); err != nil && !errors.Is(err, domain.ErrAlreadyCheckedIn) {
		return nil, err
	}
	if err := s.ticketRepo.MarkUsed(ctx, ticket.ID); err != nil {
		return nil, fmt.Errorf("mark ticket used: %w", err)
	}
	ticket.Used = true
	s.logger.Info("ticket redeemed", "ticket_id", ticket.ID, "event_id", ticket.EventID, "participant_id", ticket.ParticipantID)
	return ticket, nil
}

func (s *ticketService) GetTicket(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.getTicket(ctx, ticketID)
}

func (s *ticketService) getTicket(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	t, err := s.ticketRepo.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrTicketNotFound
		}
		return nil, fmt.Errorf("get ticket: %w", err)
	}
	return t, nil
}

func (s *ticketService) GetPaymentByTicket(ctx context.Context, ticketID string) (*domain.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	if _, err := s.getTicket(ctx, ticketID); err != nil {
		return nil, err
	}
	return s.getPayment(ctx, ticketID)
}

func (s *ticketService) getPayment(ctx context.Context, ticketID string) (*domain.Payment, error) {
	p, err := s.paymentRepo.GetByTicketID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return p, nil
}

func (s *ticketService) ListTicketsByEvent(ctx context.Context, eventID string) ([]*domain.Ticket, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	if _, err := s.reg.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	tickets, err := s.ticketRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	return tickets, nil
}

func (s *ticketService) ListTicketsByParticipant(ctx context.Context, participantID string) ([]*domain.Ticket, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	if _, err := s.reg.participantRepo.GetByID(ctx, participantID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrParticipantNotFound
		}
		return nil, fmt.Errorf("get participant: %w", err)
	}
	tickets, err := s.ticketRepo.ListByParticipantID(ctx, participantID)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	return tickets, nil
}

// GrossRevenue sums the amounts of approved payments. Refunded payments do not count.
func (s *ticketService) GrossRevenue(ctx context.Context, eventID string) (domain.Money, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	payments, err := s.payments(ctx, eventID)
	if err != nil {
		return 0, err
	}
	var gross domain.Money
	for _, p := range payments {
		if p.State == domain.PaymentApproved {
			gross += p.Amount
		}
	}
	return gross, nil
}

func (s *ticketService) PlatformShare(ctx context.Context, eventID string) (domain.Money, error) {
	gross, err := s.GrossRevenue(ctx, eventID)
	if err != nil {
		return 0, err
	}
	return domain.PlatformShare(gross), nil
}

func (s *ticketService) OrganizerNetRevenue(ctx context.Context, eventID string) (domain.Money, error) {
	gross, err := s.GrossRevenue(ctx, eventID)
	if err != nil {
		return 0, err
	}
	return gross - domain.PlatformShare(gross), nil
}

// payments lists payments for eventID, or for every event when eventID is empty.
func (s *ticketService) payments(ctx context.Context, eventID string) ([]*domain.Payment, error) {
	if eventID != "" {
		if _, err := s.reg.eventRepo.GetByID(ctx, eventID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.ErrEventNotFound
			}
			return nil, fmt.Errorf("get event: %w", err)
		}
	}
	payments, err := s.paymentRepo.List(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return payments, nil
}
