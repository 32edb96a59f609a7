package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"eventticketing/internal/domain"
)

type registrationRepository struct {
	DB *sql.DB
}

func NewRegistrationRepository(db *sql.DB) domain.RegistrationRepository {
	return &registrationRepository{
		DB: db,
	}
}

const registrationColumns = `event_id, participant_id, checked_in, checked_in_at, created_at`

func scanRegistration(row rowScanner) (*domain.Registration, error) {
	reg := &domain.Registration{}
	var checkedInAt sql.NullTime
	if err := row.Scan(&reg.EventID, &reg.ParticipantID, &reg.CheckedIn, &checkedInAt, &reg.CreatedAt); err != nil {
		return nil, err
	}
	if checkedInAt.Valid {
		t := checkedInAt.Time
		reg.CheckedInAt = &t
	}
	return reg, nil
}

func (r *registrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	query := `
		INSERT INTO registrations (event_id, participant_id, checked_in, created_at)
		VALUES ($1, $2, FALSE, $3)
	`
	_, err := r.DB.ExecContext(ctx, query, reg.EventID, reg.ParticipantID, reg.CreatedAt)
	if isUniqueViolation(err) {
		return domain.ErrAlreadyRegistered
	}
	return err
}

func (r *registrationRepository) Delete(ctx context.Context, eventID, participantID string) error {
	res, err := r.DB.ExecContext(ctx,
		`DELETE FROM registrations WHERE event_id = $1 AND participant_id = $2`,
		eventID, participantID)
	if err != nil {
		return err
	}
	return requireOneRow(res, domain.ErrNotFound)
}

func (r *registrationRepository) GetByEventAndParticipant(ctx context.Context, eventID, participantID string) (*domain.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE event_id = $1 AND participant_id = $2`
	reg, err := scanRegistration(r.DB.QueryRowContext(ctx, query, eventID, participantID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return reg, nil
}

func (r *registrationRepository) MarkCheckedIn(ctx context.Context, eventID, participantID string, at time.Time) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE registrations SET checked_in = TRUE, checked_in_at = $1 WHERE event_id = $2 AND participant_id = $3`,
		at, eventID, participantID)
	if err != nil {
		return err
	}
	return requireOneRow(res, domain.ErrNotFound)
}

func (r *registrationRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Registration, error) {
	return r.list(ctx, `SELECT `+registrationColumns+` FROM registrations WHERE event_id = $1 ORDER BY created_at, participant_id`, eventID)
}

func (r *registrationRepository) ListByParticipantID(ctx context.Context, participantID string) ([]*domain.Registration, error) {
	return r.list(ctx, `SELECT `+registrationColumns+` FROM registrations WHERE participant_id = $1 ORDER BY created_at, event_id`, participantID)
}

func (r *registrationRepository) list(ctx context.Context, query string, arg string) ([]*domain.Registration, error) {
	rows, err := r.DB.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	regs := make([]*domain.Registration, 0)
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}
