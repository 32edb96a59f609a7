package payment

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventticketing/internal/domain"
)

func newTestAuthorizer(declineEvery int) *SimulatedAuthorizer {
	return NewSimulatedAuthorizer(declineEvery, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestSimulatedAuthorizer_Limits(t *testing.T) {
	tests := []struct {
		name     string
		method   domain.PaymentMethod
		amount   domain.Money
		approved bool
	}{
		{name: "card within limit", method: domain.PaymentCreditCard, amount: domain.Dollars(100), approved: true},
		{name: "cash at limit", method: domain.PaymentCash, amount: domain.Dollars(500), approved: true},
		{name: "cash over limit", method: domain.PaymentCash, amount: domain.Dollars(500) + 1, approved: false},
		{name: "debit over limit", method: domain.PaymentDebitCard, amount: domain.Dollars(2500), approved: false},
		{name: "unknown method", method: "BARTER", amount: domain.Dollars(1), approved: false},
		{name: "free ticket", method: domain.PaymentCash, amount: 0, approved: true},
	}
	a := newTestAuthorizer(0)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := a.Authorize(context.Background(), &domain.Payment{ID: "pay", Method: tt.method, Amount: tt.amount})
			require.NoError(t, err)
			assert.Equal(t, tt.approved, d.Approved)
			if !tt.approved {
				assert.NotEmpty(t, d.Reason)
			}
		})
	}
}

func TestSimulatedAuthorizer_DeclineEvery(t *testing.T) {
	a := newTestAuthorizer(3)
	var got []bool
	for i := 0; i < 6; i++ {
		d, err := a.Authorize(context.Background(), &domain.Payment{Method: domain.PaymentCreditCard, Amount: domain.Dollars(10)})
		require.NoError(t, err)
		got = append(got, d.Approved)
	}
	assert.Equal(t, []bool{true, true, false, true, true, false}, got)
}

func TestSimulatedAuthorizer_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newTestAuthorizer(0).Authorize(ctx, &domain.Payment{Method: domain.PaymentCash})
	require.ErrorIs(t, err, context.Canceled)
}
