package payment

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"eventticketing/internal/domain"
)

// SimulatedAuthorizer stands in for a payment gateway. It rejects unknown
// methods and amounts above the method's limit, and when DeclineEvery is N > 0
// it also declines every Nth authorization it sees.
type SimulatedAuthorizer struct {
	declineEvery int64
	calls        atomic.Int64
	logger       *slog.Logger
}

func NewSimulatedAuthorizer(declineEvery int, logger *slog.Logger) *SimulatedAuthorizer {
	return &SimulatedAuthorizer{declineEvery: int64(declineEvery), logger: logger}
}

func (a *SimulatedAuthorizer) Authorize(ctx context.Context, p *domain.Payment) (domain.PaymentDecision, error) {
	if err := ctx.Err(); err != nil {
		return domain.PaymentDecision{}, err
	}
	n := a.calls.Add(1)

	info, ok := domain.PaymentMethods[p.Method]
	if !ok {
		return a.decline(p, fmt.Sprintf("unsupported payment method %q", p.Method)), nil
	}
	if p.Amount < 0 {
		return a.decline(p, "negative amount"), nil
	}
	if p.Amount > info.MaxAmount {
		return a.decline(p, fmt.Sprintf("amount %s exceeds the %s limit of %s", p.Amount, info.Description, info.MaxAmount)), nil
	}
	if a.declineEvery > 0 && n%a.declineEvery == 0 {
		return a.decline(p, "declined by issuer"), nil
	}
	a.logger.Debug("payment authorized", "payment_id", p.ID, "method", p.Method, "amount", p.Amount.String())
	return domain.PaymentDecision{Approved: true}, nil
}

func (a *SimulatedAuthorizer) decline(p *domain.Payment, reason string) domain.PaymentDecision {
	a.logger.Debug("payment declined", "payment_id", p.ID, "method", p.Method, "reason", reason)
	return domain.PaymentDecision{Approved: false, Reason: reason}
}
