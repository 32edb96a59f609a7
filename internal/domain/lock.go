package domain

import (
	"context"
	"errors"
)

// ErrLockTimeout is returned when a lock could not be acquired before the context ended.
var ErrLockTimeout = errors.New("timed out waiting for lock")

// Locker provides mutual exclusion per key. The returned unlock func must be called exactly once.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// EventLockKey is the lock key guarding an event's registrations, check-ins and state.
func EventLockKey(eventID string) string { return "event:" + eventID }

// TicketLockKey guards refund and redemption of one ticket.
func TicketLockKey(ticketID string) string { return "ticket:" + ticketID }

// EmailLockKey guards email uniqueness checks in the participant and organizer registries.
func EmailLockKey(email string) string { return "email:" + email }
