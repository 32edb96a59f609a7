package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventticketing/internal/domain"
)

func TestReportService_CountsAndRanking(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	busy := env.event(t, 5)
	quiet := env.event(t, 5)
	cancelled := env.event(t, 5)
	_, err := env.events.CancelEvent(ctx, cancelled.ID, cancelled.OrganizerID)
	require.NoError(t, err)

	for _, name := range []string{"Ana Lopez", "Bruno Diaz"} {
		p := env.participant(t, name, false)
		_, err := env.attendees.Register(ctx, p.ID, busy.ID)
		require.NoError(t, err)
	}
	p := env.participant(t, "Carla Ruiz", false)
	_, err = env.attendees.Register(ctx, p.ID, quiet.ID)
	require.NoError(t, err)

	counts, err := env.reports.CountEventsByState(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, counts[domain.EventPublished])
	assert.Equal(t, 1, counts[domain.EventCancelled])
	assert.Equal(t, 0, counts[domain.EventDraft])

	top, err := env.reports.TopEventsByRegistrations(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, busy.ID, top[0].EventID)
	assert.Equal(t, 2, top[0].Registrations)
	assert.Equal(t, quiet.ID, top[1].EventID)

	all, err := env.reports.TopEventsByRegistrations(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = env.reports.TopEventsByRegistrations(ctx, -1)
	requireKind(t, err, domain.ErrInvalidData)
}

func TestReportService_OccupancyAndAttendance(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ev := env.event(t, 4)
	a := env.participant(t, "Ana Lopez", false)
	b := env.participant(t, "Bruno Diaz", false)
	for _, p := range []*domain.Participant{a, b} {
		_, err := env.attendees.Register(ctx, p.ID, ev.ID)
		require.NoError(t, err)
	}
	_, err := env.events.Start(ctx, ev.ID)
	require.NoError(t, err)
	_, err = env.attendees.CheckIn(ctx, a.ID, ev.ID)
	require.NoError(t, err)

	occ, err := env.reports.EventOccupancy(ctx, ev.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, occ.Registered)
	assert.Equal(t, 1, occ.CheckedIn)
	assert.Equal(t, 2, occ.Remaining)
	assert.InDelta(t, 0.5, occ.OccupancyRate, 1e-9)
	assert.InDelta(t, 0.5, occ.AttendanceRate, 1e-9)

	rate, err := env.reports.EventAttendance(ctx, ev.ID)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, rate, 1e-9)

	empty := env.event(t, 4)
	rate, err = env.reports.EventAttendance(ctx, empty.ID)
	require.NoError(t, err)
	assert.Zero(t, rate)

	_, err = env.reports.EventOccupancy(ctx, "missing")
	require.ErrorIs(t, err, domain.ErrEventNotFound)
}

func TestReportService_FinancialSummary(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ev := env.event(t, 10)
	other := env.event(t, 10)

	a := env.participant(t, "Ana Lopez", false)
	b := env.participant(t, "Bruno Diaz", true)
	c := env.participant(t, "Carla Ruiz", false)
	_, err := env.tickets.PurchaseTicket(ctx, ev.ID, a.ID, domain.TicketGeneral, domain.PaymentCreditCard)
	require.NoError(t, err)
	_, err = env.tickets.PurchaseTicket(ctx, ev.ID, b.ID, domain.TicketVIP, domain.PaymentBankTransfer)
	require.NoError(t, err)
	refunded, err := env.tickets.PurchaseTicket(ctx, other.ID, c.ID, domain.TicketGeneral, domain.PaymentDebitCard)
	require.NoError(t, err)
	_, err = env.tickets.RefundTicket(ctx, refunded.ID)
	require.NoError(t, err)

	sum, err := env.reports.FinancialSummary(ctx, ev.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.Dollars(130), sum.GrossRevenue)
	assert.Equal(t, domain.Money(650), sum.PlatformShare)
	assert.Equal(t, domain.Money(12350), sum.OrganizerNetRevenue)
	assert.Equal(t, 2, sum.ApprovedPayments)
	assert.Equal(t, domain.Money(175), sum.ProcessingFees[domain.PaymentCreditCard])
	assert.Equal(t, domain.Money(80), sum.ProcessingFees[domain.PaymentBankTransfer])
	assert.Zero(t, sum.RefundedTotal)

	total, err := env.reports.FinancialSummary(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, domain.Dollars(130), total.GrossRevenue)
	assert.Equal(t, domain.Dollars(50), total.RefundedTotal)
	assert.Empty(t, total.EventID)

	byType, err := env.reports.TicketsByType(ctx, ev.ID)
	require.NoError(t, err)
	assert.Equal(t, map[domain.TicketType]int{domain.TicketFree: 0, domain.TicketGeneral: 1, domain.TicketVIP: 1}, byType)

	_, err = env.reports.FinancialSummary(ctx, "missing")
	require.ErrorIs(t, err, domain.ErrEventNotFound)
}
