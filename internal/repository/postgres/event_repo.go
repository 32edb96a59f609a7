package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventticketing/internal/domain"
)

const eventColumns = `id, name, description, category, start_time, end_time, location, capacity, state, organizer_id, created_at, updated_at`

type eventRepository struct {
	DB *sql.DB
}

// NewEventRepository stores events without their registration sets; those live in the registrations table.
func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	e := &domain.Event{Registered: []string{}, CheckedIn: []string{}}
	err := row.Scan(&e.ID, &e.Name, &e.Description, &e.Category, &e.StartTime, &e.EndTime,
		&e.Location, &e.Capacity, &e.State, &e.OrganizerID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (` + eventColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.DB.ExecContext(ctx, query, e.ID, e.Name, e.Description, e.Category, e.StartTime, e.EndTime,
		e.Location, e.Capacity, e.State, e.OrganizerID, e.CreatedAt, e.UpdatedAt)
	return err
}

func (r *eventRepository) Update(ctx context.Context, e *domain.Event) error {
	query := `
		UPDATE events
		SET name = $1, description = $2, location = $3, state = $4, updated_at = $5
		WHERE id = $6
	`
	res, err := r.DB.ExecContext(ctx, query, e.Name, e.Description, e.Location, e.State, e.UpdatedAt, e.ID)
	if err != nil {
		return err
	}
	return requireOneRow(res, domain.ErrNotFound)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	return r.list(ctx, `SELECT `+eventColumns+` FROM events ORDER BY start_time, id`)
}

func (r *eventRepository) ListByState(ctx context.Context, state domain.EventState) ([]*domain.Event, error) {
	return r.list(ctx, `SELECT `+eventColumns+` FROM events WHERE state = $1 ORDER BY start_time, id`, state)
}

func (r *eventRepository) ListByOrganizerID(ctx context.Context, organizerID string) ([]*domain.Event, error) {
	return r.list(ctx, `SELECT `+eventColumns+` FROM events WHERE organizer_id = $1 ORDER BY start_time, id`, organizerID)
}

func (r *eventRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Event, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
