package domain

import (
	"context"
	"time"
)

// PaymentMethod is how a participant pays.
type PaymentMethod string

const (
	PaymentCreditCard   PaymentMethod = "CREDIT_CARD"
	PaymentDebitCard    PaymentMethod = "DEBIT_CARD"
	PaymentBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentCash         PaymentMethod = "CASH"
)

// PaymentMethodInfo is the data attached to a payment method.
// CommissionBasisPoints is the processor fee, in 1/100 of a percent.
type PaymentMethodInfo struct {
	CommissionBasisPoints int64
	MaxAmount             Money
	Description           string
}

// PaymentMethods maps every method to its processor commission and limit.
var PaymentMethods = map[PaymentMethod]PaymentMethodInfo{
	PaymentCreditCard:   {CommissionBasisPoints: 350, MaxAmount: Dollars(5000), Description: "Credit card"},
	PaymentDebitCard:    {CommissionBasisPoints: 200, MaxAmount: Dollars(2000), Description: "Debit card"},
	PaymentBankTransfer: {CommissionBasisPoints: 100, MaxAmount: Dollars(20000), Description: "Bank transfer"},
	PaymentCash:         {CommissionBasisPoints: 0, MaxAmount: Dollars(500), Description: "Cash at the door"},
}

// OrderedPaymentMethods lists the methods in a stable order.
var OrderedPaymentMethods = []PaymentMethod{PaymentCreditCard, PaymentDebitCard, PaymentBankTransfer, PaymentCash}

// Valid reports whether m is a known method.
func (m PaymentMethod) Valid() bool {
	_, ok := PaymentMethods[m]
	return ok
}

// ProcessingFee returns the processor commission for amount paid with m.
func (m PaymentMethod) ProcessingFee(amount Money) Money {
	return amount.Rate(PaymentMethods[m].CommissionBasisPoints)
}

// PaymentState is the approval state of a payment.
type PaymentState string

const (
	PaymentPending  PaymentState = "PENDING"
	PaymentApproved PaymentState = "APPROVED"
	PaymentRejected PaymentState = "REJECTED"
	PaymentRefunded PaymentState = "REFUNDED"
)

var paymentTransitions = map[PaymentState][]PaymentState{
	PaymentPending:  {PaymentApproved, PaymentRejected},
	PaymentApproved: {PaymentRefunded},
}

// CanMoveTo reports whether the payment state machine allows s -> next.
func (s PaymentState) CanMoveTo(next PaymentState) bool {
	for _, v := range paymentTransitions[s] {
		if v == next {
			return true
		}
	}
	return false
}

// Payment is the financial transaction backing a ticket.
// swagger:model Payment
type Payment struct {
	ID            string        `json:"id"`
	TicketID      string        `json:"ticket_id"`
	ParticipantID string        `json:"participant_id"`
	EventID       string        `json:"event_id"`
	Amount        Money         `json:"amount"`
	Method        PaymentMethod `json:"method"`
	State         PaymentState  `json:"state"`
	CreatedAt     time.Time     `json:"created_at"`
}

// PlatformShare returns the platform commission on an approved base amount.
func PlatformShare(gross Money) Money {
	return gross.Percent(PlatformCommissionPercent)
}

// PaymentRepository defines storage operations for payments.
type PaymentRepository interface {
	Create(ctx context.Context, p *Payment) error
	UpdateState(ctx context.Context, id string, state PaymentState) error
	GetByID(ctx context.Context, id string) (*Payment, error)
	GetByTicketID(ctx context.Context, ticketID string) (*Payment, error)
	// List returns payments for eventID, or all payments when eventID is empty.
	List(ctx context.Context, eventID string) ([]*Payment, error)
}

// PaymentDecision is the outcome of an authorization attempt.
type PaymentDecision struct {
	Approved bool
	Reason   string
}

// PaymentAuthorizer decides whether a pending payment is accepted.
type PaymentAuthorizer interface {
	Authorize(ctx context.Context, p *Payment) (PaymentDecision, error)
}
