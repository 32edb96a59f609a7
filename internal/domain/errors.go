package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for each error kind. Typed errors below match them via errors.Is.
var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidData       = errors.New("invalid data")
	ErrInvalidOperation  = errors.New("invalid operation")
	ErrIllegalTransition = errors.New("illegal state transition")
	ErrTerminalState     = errors.New("event is in a terminal state")
	ErrCapacityExceeded  = errors.New("capacity exceeded")
	ErrAlreadyRegistered = errors.New("already registered")
	ErrNotRegistered     = errors.New("not registered")
	ErrAlreadyCheckedIn  = errors.New("already checked in")
	ErrPaymentRejected   = errors.New("payment rejected")
	ErrForbidden         = errors.New("forbidden")
	ErrDuplicateEmail    = errors.New("email already in use")
)

// Entity-specific not-found errors. All of them match ErrNotFound.
var (
	ErrEventNotFound       = fmt.Errorf("event %w", ErrNotFound)
	ErrParticipantNotFound = fmt.Errorf("participant %w", ErrNotFound)
	ErrOrganizerNotFound   = fmt.Errorf("organizer %w", ErrNotFound)
	ErrTicketNotFound      = fmt.Errorf("ticket %w", ErrNotFound)
	ErrPaymentNotFound     = fmt.Errorf("payment %w", ErrNotFound)
)

// ErrNotEventOwner is returned when someone other than the owning organizer
// attempts an owner-only action.
var ErrNotEventOwner = fmt.Errorf("only the owning organizer may do this: %w", ErrForbidden)

// InvalidDataError reports a malformed input field.
type InvalidDataError struct {
	Field  string
	Reason string
}

func (e *InvalidDataError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *InvalidDataError) Is(target error) bool { return target == ErrInvalidData }

// InvalidOperationError reports an operation that is not allowed in the current state.
type InvalidOperationError struct {
	Op     string
	Reason string
}

func (e *InvalidOperationError) Error() string {
	return fmt.Sprintf("%s not allowed: %s", e.Op, e.Reason)
}

func (e *InvalidOperationError) Is(target error) bool { return target == ErrInvalidOperation }

// IllegalStateTransitionError is returned when an event transition is not in the transition table.
type IllegalStateTransitionError struct {
	From EventState
	To   EventState
}

func (e *IllegalStateTransitionError) Error() string {
	return fmt.Sprintf("illegal state transition from %s to %s", e.From, e.To)
}

func (e *IllegalStateTransitionError) Is(target error) bool { return target == ErrIllegalTransition }

// TerminalStateError is returned when an edit is attempted on a FINISHED or CANCELLED event.
type TerminalStateError struct {
	EventID string
	State   EventState
}

func (e *TerminalStateError) Error() string {
	return fmt.Sprintf("event %s is %s and can no longer be changed", e.EventID, e.State)
}

func (e *TerminalStateError) Is(target error) bool { return target == ErrTerminalState }

// CapacityExceededError is returned when an event has no free places left.
type CapacityExceededError struct {
	EventName string
	Capacity  int
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("event %q is full (capacity %d)", e.EventName, e.Capacity)
}

func (e *CapacityExceededError) Is(target error) bool { return target == ErrCapacityExceeded }

// AlreadyRegisteredError is returned when a participant registers twice for one event.
type AlreadyRegisteredError struct {
	ParticipantName string
	EventName       string
}

func (e *AlreadyRegisteredError) Error() string {
	return fmt.Sprintf("participant %q is already registered for event %q", e.ParticipantName, e.EventName)
}

func (e *AlreadyRegisteredError) Is(target error) bool { return target == ErrAlreadyRegistered }

// NotRegisteredError is returned when an operation needs an existing registration.
type NotRegisteredError struct {
	ParticipantName string
	EventName       string
}

func (e *NotRegisteredError) Error() string {
	return fmt.Sprintf("participant %q is not registered for event %q", e.ParticipantName, e.EventName)
}

func (e *NotRegisteredError) Is(target error) bool { return target == ErrNotRegistered }

// AlreadyCheckedInError is returned on a second check-in of the same participant.
type AlreadyCheckedInError struct {
	ParticipantName string
	EventName       string
}

func (e *AlreadyCheckedInError) Error() string {
	return fmt.Sprintf("participant %q already checked in to event %q", e.ParticipantName, e.EventName)
}

func (e *AlreadyCheckedInError) Is(target error) bool { return target == ErrAlreadyCheckedIn }

// PaymentRejectedError is returned when the payment authorizer declines a payment.
type PaymentRejectedError struct {
	Method PaymentMethod
	Reason string
}

func (e *PaymentRejectedError) Error() string {
	return fmt.Sprintf("payment via %s rejected: %s", e.Method, e.Reason)
}

func (e *PaymentRejectedError) Is(target error) bool { return target == ErrPaymentRejected }
