package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"eventticketing/internal/domain"
)

type participantRepository struct {
	DB *sql.DB
}

func NewParticipantRepository(db *sql.DB) domain.ParticipantRepository {
	return &participantRepository{DB: db}
}

const participantColumns = `id, name, email, phone, employer, role, interests, vip, created_at`

func scanParticipant(row rowScanner) (*domain.Participant, error) {
	p := &domain.Participant{RegisteredEvents: []string{}}
	var interests pq.StringArray
	if err := row.Scan(&p.ID, &p.Name, &p.Email, &p.Phone, &p.Employer, &p.Role, &interests, &p.VIP, &p.CreatedAt); err != nil {
		return nil, err
	}
	p.Interests = []string(interests)
	if p.Interests == nil {
		p.Interests = []string{}
	}
	return p, nil
}

func (r *participantRepository) Create(ctx context.Context, p *domain.Participant) error {
	query := `
		INSERT INTO participants (` + participantColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.DB.ExecContext(ctx, query, p.ID, p.Name, p.Email, p.Phone, p.Employer, p.Role, pq.Array(p.Interests), p.VIP, p.CreatedAt)
	if isUniqueViolation(err) {
		return domain.ErrDuplicateEmail
	}
	return err
}

func (r *participantRepository) GetByID(ctx context.Context, id string) (*domain.Participant, error) {
	return r.getOne(ctx, `SELECT `+participantColumns+` FROM participants WHERE id = $1`, id)
}

func (r *participantRepository) GetByEmail(ctx context.Context, email string) (*domain.Participant, error) {
	return r.getOne(ctx, `SELECT `+participantColumns+` FROM participants WHERE lower(email) = lower($1)`, email)
}

func (r *participantRepository) getOne(ctx context.Context, query string, arg string) (*domain.Participant, error) {
	p, err := scanParticipant(r.DB.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *participantRepository) List(ctx context.Context) ([]*domain.Participant, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+participantColumns+` FROM participants ORDER BY name, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]*domain.Participant, 0)
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

type organizerRepository struct {
	DB *sql.DB
}

func NewOrganizerRepository(db *sql.DB) domain.OrganizerRepository {
	return &organizerRepository{DB: db}
}

const organizerColumns = `id, name, email, phone, affiliation, department, experience_years, created_events, created_at`

func scanOrganizer(row rowScanner) (*domain.Organizer, error) {
	o := &domain.Organizer{}
	var created pq.StringArray
	if err := row.Scan(&o.ID, &o.Name, &o.Email, &o.Phone, &o.Affiliation, &o.Department, &o.ExperienceYears, &created, &o.CreatedAt); err != nil {
		return nil, err
	}
	o.CreatedEvents = []string(created)
	if o.CreatedEvents == nil {
		o.CreatedEvents = []string{}
	}
	return o, nil
}

func (r *organizerRepository) Create(ctx context.Context, o *domain.Organizer) error {
	query := `
		INSERT INTO organizers (` + organizerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.DB.ExecContext(ctx, query, o.ID, o.Name, o.Email, o.Phone, o.Affiliation, o.Department,
		o.ExperienceYears, pq.Array(o.CreatedEvents), o.CreatedAt)
	if isUniqueViolation(err) {
		return domain.ErrDuplicateEmail
	}
	return err
}

func (r *organizerRepository) GetByID(ctx context.Context, id string) (*domain.Organizer, error) {
	return r.getOne(ctx, `SELECT `+organizerColumns+` FROM organizers WHERE id = $1`, id)
}

func (r *organizerRepository) GetByEmail(ctx context.Context, email string) (*domain.Organizer, error) {
	return r.getOne(ctx, `SELECT `+organizerColumns+` FROM organizers WHERE lower(email) = lower($1)`, email)
}

func (r *organizerRepository) getOne(ctx context.Context, query string, arg string) (*domain.Organizer, error) {
	o, err := scanOrganizer(r.DB.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return o, nil
}

func (r *organizerRepository) List(ctx context.Context) ([]*domain.Organizer, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+organizerColumns+` FROM organizers ORDER BY name, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]*domain.Organizer, 0)
	for rows.Next() {
		o, err := scanOrganizer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *organizerRepository) AddCreatedEvent(ctx context.Context, organizerID, eventID string) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE organizers SET created_events = array_append(created_events, $1) WHERE id = $2`,
		eventID, organizerID)
	if err != nil {
		return err
	}
	return requireOneRow(res, domain.ErrNotFound)
}
