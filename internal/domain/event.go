package domain

import (
	"context"
	"time"
)

// EventState is the lifecycle state of an event.
type EventState string

const (
	EventDraft      EventState = "DRAFT"
	EventPublished  EventState = "PUBLISHED"
	EventInProgress EventState = "IN_PROGRESS"
	EventFinished   EventState = "FINISHED"
	EventCancelled  EventState = "CANCELLED"
)

// EventStates lists every state in lifecycle order.
var EventStates = []EventState{EventDraft, EventPublished, EventInProgress, EventFinished, EventCancelled}

// Valid reports whether s is a known state.
func (s EventState) Valid() bool {
	for _, v := range EventStates {
		if v == s {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transitions or edits are allowed.
func (s EventState) Terminal() bool {
	return s == EventFinished || s == EventCancelled
}

// AcceptsRegistrations reports whether participants may join in this state.
func (s EventState) AcceptsRegistrations() bool {
	return s == EventPublished || s == EventInProgress
}

// AllowsWithdrawal reports whether a registration may still be cancelled.
func (s EventState) AllowsWithdrawal() bool {
	return s == EventDraft || s == EventPublished
}

// EventTransition is one allowed state change.
type EventTransition struct {
	From EventState
	To   EventState
}

// EventTransitions is the complete event state machine.
var EventTransitions = []EventTransition{
	{From: EventDraft, To: EventPublished},
	{From: EventDraft, To: EventCancelled},
	{From: EventPublished, To: EventInProgress},
	{From: EventPublished, To: EventCancelled},
	{From: EventInProgress, To: EventFinished},
}

// CanTransition reports whether from -> to is in EventTransitions.
func CanTransition(from, to EventState) bool {
	for _, t := range EventTransitions {
		if t.From == from && t.To == to {
			return true
		}
	}
	return false
}

// EventCategory classifies an event. The set is fixed.
type EventCategory string

const (
	CategoryConference EventCategory = "CONFERENCE"
	CategoryWorkshop   EventCategory = "WORKSHOP"
	CategorySeminar    EventCategory = "SEMINAR"
	CategoryMeetup     EventCategory = "MEETUP"
	CategoryConcert    EventCategory = "CONCERT"
	CategorySports     EventCategory = "SPORTS"
	CategoryOther      EventCategory = "OTHER"
)

// EventCategories lists every category.
var EventCategories = []EventCategory{
	CategoryConference, CategoryWorkshop, CategorySeminar, CategoryMeetup,
	CategoryConcert, CategorySports, CategoryOther,
}

// Valid reports whether c is a known category.
func (c EventCategory) Valid() bool {
	for _, v := range EventCategories {
		if v == c {
			return true
		}
	}
	return false
}

// MaxEventDuration is the longest allowed span between start and end.
const MaxEventDuration = 30 * 24 * time.Hour

// Event represents a scheduled activity with a capacity and a lifecycle state.
// swagger:model Event
type Event struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Category    EventCategory `json:"category"`
	StartTime   time.Time     `json:"start"`
	EndTime     time.Time     `json:"end"`
	Location    string        `json:"location"`
	Capacity    int           `json:"capacity"`
	State       EventState    `json:"state"`
	OrganizerID string        `json:"organizer_id"`
	// Registered and CheckedIn are derived from registrations when the event is loaded.
	Registered []string  `json:"registered"`
	CheckedIn  []string  `json:"checked_in"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewEvent returns a new Event in the given state. ID is set by the service before persisting.
func NewEvent(name, description string, category EventCategory, start, end time.Time, location string, capacity int, organizerID string, state EventState, now time.Time) *Event {
	return &Event{
		Name:        name,
		Description: description,
		Category:    category,
		StartTime:   start,
		EndTime:     end,
		Location:    location,
		Capacity:    capacity,
		State:       state,
		OrganizerID: organizerID,
		Registered:  []string{},
		CheckedIn:   []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// RemainingCapacity returns the number of free places.
func (e *Event) RemainingCapacity() int {
	return e.Capacity - len(e.Registered)
}

// HasAvailableCapacity reports whether one more participant fits.
func (e *Event) HasAvailableCapacity() bool {
	return len(e.Registered) < e.Capacity
}

// IsRegistered reports whether participantID is in the registered set.
func (e *Event) IsRegistered(participantID string) bool {
	return contains(e.Registered, participantID)
}

// IsCheckedIn reports whether participantID is in the checked-in set.
func (e *Event) IsCheckedIn(participantID string) bool {
	return contains(e.CheckedIn, participantID)
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// NewEventInput carries the caller-supplied fields for event creation.
type NewEventInput struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Category    EventCategory `json:"category"`
	StartTime   time.Time     `json:"start"`
	EndTime     time.Time     `json:"end"`
	Location    string        `json:"location"`
	Capacity    int           `json:"capacity"`
	OrganizerID string        `json:"organizer_id"`
}

// EventUpdate holds the optional fields of an event edit. Nil means unchanged.
type EventUpdate struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Location    *string `json:"location,omitempty"`
}

// EventRepository defines the interface for event storage.
// Update persists every mutable column; the relation sets are not stored on the event row.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	Update(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context) ([]*Event, error)
	ListByState(ctx context.Context, state EventState) ([]*Event, error)
	ListByOrganizerID(ctx context.Context, organizerID string) ([]*Event, error)
}

// EventService owns the event lifecycle.
type EventService interface {
	// CreateEvent creates a live event that accepts registrations immediately (PUBLISHED).
	CreateEvent(ctx context.Context, in NewEventInput) (*Event, error)
	// CreateDraftEvent creates a staged event that must be published before it accepts registrations.
	CreateDraftEvent(ctx context.Context, in NewEventInput) (*Event, error)
	UpdateEvent(ctx context.Context, eventID string, update EventUpdate) (*Event, error)
	CancelEvent(ctx context.Context, eventID, requesterOrganizerID string) (*Event, error)
	Publish(ctx context.Context, eventID string) (*Event, error)
	Start(ctx context.Context, eventID string) (*Event, error)
	Finish(ctx context.Context, eventID string) (*Event, error)
	GetEvent(ctx context.Context, eventID string) (*Event, error)
	ListEvents(ctx context.Context) ([]*Event, error)
	ListEventsByState(ctx context.Context, state EventState) ([]*Event, error)
	ListEventsByOrganizer(ctx context.Context, organizerID string) ([]*Event, error)
	HasAvailableCapacity(ctx context.Context, eventID string) (bool, error)
}
