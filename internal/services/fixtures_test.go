package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"eventticketing/internal/domain"
	"eventticketing/internal/lock"
	"eventticketing/internal/repository/memory"
)

var testNow = time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

func testClock() time.Time { return testNow }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeAuthorizer approves every payment unless reject is set.
type fakeAuthorizer struct {
	mu     sync.Mutex
	reject string
	err    error
	seen   []*domain.Payment
}

func (f *fakeAuthorizer) Authorize(ctx context.Context, p *domain.Payment) (domain.PaymentDecision, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := *p
	f.seen = append(f.seen, &c)
	if f.err != nil {
		return domain.PaymentDecision{}, f.err
	}
	if f.reject != "" {
		return domain.PaymentDecision{Approved: false, Reason: f.reject}, nil
	}
	return domain.PaymentDecision{Approved: true}, nil
}

// recordingEmailService keeps every notification it is asked to send.
type recordingEmailService struct {
	mu            sync.Mutex
	err           error
	tickets       []*domain.TicketConfirmationEmailData
	registrations []*domain.RegistrationConfirmationEmailData
}

func (r *recordingEmailService) SendTicketConfirmation(ctx context.Context, data *domain.TicketConfirmationEmailData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tickets = append(r.tickets, data)
	return r.err
}

func (r *recordingEmailService) SendRegistrationConfirmation(ctx context.Context, data *domain.RegistrationConfirmationEmailData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.registrations = append(r.registrations, data)
	return r.err
}

// failingRegistrationRepo wraps a registration repository and fails Create on demand.
type failingRegistrationRepo struct {
	domain.RegistrationRepository
	createErr error
}

func (f *failingRegistrationRepo) Create(ctx context.Context, reg *domain.Registration) error {
	if f.createErr != nil {
		return f.createErr
	}
	return f.RegistrationRepository.Create(ctx, reg)
}

// failingPaymentRepo wraps a payment repository and fails Create on demand.
type failingPaymentRepo struct {
	domain.PaymentRepository
	createErr error
}

func (f *failingPaymentRepo) Create(ctx context.Context, p *domain.Payment) error {
	if f.createErr != nil {
		return f.createErr
	}
	return f.PaymentRepository.Create(ctx, p)
}

type testEnv struct {
	eventRepo        domain.EventRepository
	participantRepo  domain.ParticipantRepository
	organizerRepo    domain.OrganizerRepository
	registrationRepo *failingRegistrationRepo
	ticketRepo       domain.TicketRepository
	paymentRepo      *failingPaymentRepo

	prices     domain.PriceTable
	authorizer *fakeAuthorizer
	mail       *recordingEmailService

	events       domain.EventService
	attendees    domain.AttendeeService
	tickets      domain.TicketService
	reports      domain.ReportService
	participants domain.ParticipantService
	organizers   domain.OrganizerService

	seq int
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		eventRepo:        memory.NewEventRepository(),
		participantRepo:  memory.NewParticipantRepository(),
		organizerRepo:    memory.NewOrganizerRepository(),
		registrationRepo: &failingRegistrationRepo{RegistrationRepository: memory.NewRegistrationRepository()},
		ticketRepo:       memory.NewTicketRepository(),
		paymentRepo:      &failingPaymentRepo{PaymentRepository: memory.NewPaymentRepository()},
		prices:           NewPriceTable(),
		authorizer:       &fakeAuthorizer{},
		mail:             &recordingEmailService{},
	}
	locker := lock.NewLocal()
	logger := discardLogger()
	timeout := 5 * time.Second

	es := NewEventService(env.eventRepo, env.organizerRepo, env.participantRepo, env.registrationRepo, locker, logger, timeout).(*eventService)
	es.now = testClock
	es.reg.now = testClock
	env.events = es

	as := NewAttendeeService(env.eventRepo, env.participantRepo, env.registrationRepo, locker, env.mail, logger, timeout).(*attendeeService)
	as.reg.now = testClock
	env.attendees = as

	ts := NewTicketService(env.eventRepo, env.participantRepo, env.registrationRepo, env.ticketRepo, env.paymentRepo,
		env.prices, env.authorizer, locker, env.mail, logger, timeout).(*ticketService)
	ts.reg.now = testClock
	env.tickets = ts

	env.reports = NewReportService(env.eventRepo, env.participantRepo, env.registrationRepo, env.ticketRepo, env.paymentRepo, timeout)

	ps := NewParticipantService(env.participantRepo, env.registrationRepo, locker, logger, timeout).(*participantService)
	ps.reg.now = testClock
	env.participants = ps

	orgs := NewOrganizerService(env.organizerRepo, locker, logger, timeout).(*organizerService)
	orgs.now = testClock
	env.organizers = orgs
	return env
}

func (e *testEnv) nextEmail(prefix string) string {
	e.seq++
	return fmt.Sprintf("%s%d@example.com", prefix, e.seq)
}

func (e *testEnv) organizer(t *testing.T) *domain.Organizer {
	t.Helper()
	o, err := e.organizers.CreateOrganizer(context.Background(), domain.NewOrganizerInput{
		Name:            "Olga Organizer",
		Email:           e.nextEmail("org"),
		Phone:           "+1 (555) 010-2000",
		Affiliation:     "Gophers Inc",
		ExperienceYears: 5,
	})
	require.NoError(t, err)
	return o
}

func (e *testEnv) participant(t *testing.T, name string, vip bool) *domain.Participant {
	t.Helper()
	p, err := e.participants.CreateParticipant(context.Background(), domain.NewParticipantInput{
		Name:  name,
		Email: e.nextEmail("p"),
		Phone: "555-0100-200",
		VIP:   vip,
	})
	require.NoError(t, err)
	return p
}

func eventInput(organizerID string, capacity int) domain.NewEventInput {
	return domain.NewEventInput{
		Name:        "Gopher Conference",
		Description: "A day of Go talks",
		Category:    domain.CategoryConference,
		StartTime:   testNow.Add(24 * time.Hour),
		EndTime:     testNow.Add(32 * time.Hour),
		Location:    "Main Hall, Springfield",
		Capacity:    capacity,
		OrganizerID: organizerID,
	}
}

// event creates a live event owned by a fresh organizer.
func (e *testEnv) event(t *testing.T, capacity int) *domain.Event {
	t.Helper()
	o := e.organizer(t)
	ev, err := e.events.CreateEvent(context.Background(), eventInput(o.ID, capacity))
	require.NoError(t, err)
	return ev
}

// runningEvent creates a live event and starts it.
func (e *testEnv) runningEvent(t *testing.T, capacity int) *domain.Event {
	t.Helper()
	ev := e.event(t, capacity)
	ev, err := e.events.Start(context.Background(), ev.ID)
	require.NoError(t, err)
	return ev
}

func requireKind(t *testing.T, err, kind error) {
	t.Helper()
	require.Error(t, err)
	require.True(t, errors.Is(err, kind), "expected %v, got %v", kind, err)
}
