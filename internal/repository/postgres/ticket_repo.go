package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventticketing/internal/domain"
)

type ticketRepository struct {
	DB *sql.DB
}

func NewTicketRepository(db *sql.DB) domain.TicketRepository {
	return &ticketRepository{DB: db}
}

const ticketColumns = `id, event_id, participant_id, type, price_cents, purchased_at, used`

func scanTicket(row rowScanner) (*domain.Ticket, error) {
	t := &domain.Ticket{}
	if err := row.Scan(&t.ID, &t.EventID, &t.ParticipantID, &t.Type, &t.Price, &t.PurchasedAt, &t.Used); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *ticketRepository) Create(ctx context.Context, t *domain.Ticket) error {
	query := `
		INSERT INTO tickets (` + ticketColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.DB.ExecContext(ctx, query, t.ID, t.EventID, t.ParticipantID, t.Type, int64(t.Price), t.PurchasedAt, t.Used)
	return err
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	t, err := scanTicket(r.DB.QueryRowContext(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *ticketRepository) MarkUsed(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE tickets SET used = TRUE WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireOneRow(res, domain.ErrNotFound)
}

func (r *ticketRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM tickets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireOneRow(res, domain.ErrNotFound)
}

func (r *ticketRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Ticket, error) {
	return r.list(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE event_id = $1 ORDER BY purchased_at, id`, eventID)
}

func (r *ticketRepository) ListByParticipantID(ctx context.Context, participantID string) ([]*domain.Ticket, error) {
	return r.list(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE participant_id = $1 ORDER BY purchased_at, id`, participantID)
}

func (r *ticketRepository) list(ctx context.Context, query string, arg string) ([]*domain.Ticket, error) {
	rows, err := r.DB.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	tickets := make([]*domain.Ticket, 0)
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}

type paymentRepository struct {
	DB *sql.DB
}

func NewPaymentRepository(db *sql.DB) domain.PaymentRepository {
	return &paymentRepository{DB: db}
}

const paymentColumns = `id, ticket_id, participant_id, event_id, amount_cents, method, state, created_at`

func scanPayment(row rowScanner) (*domain.Payment, error) {
	p := &domain.Payment{}
	if err := row.Scan(&p.ID, &p.TicketID, &p.ParticipantID, &p.EventID, &p.Amount, &p.Method, &p.State, &p.CreatedAt); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *paymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	query := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.DB.ExecContext(ctx, query, p.ID, p.TicketID, p.ParticipantID, p.EventID, int64(p.Amount), p.Method, p.State, p.CreatedAt)
	return err
}

func (r *paymentRepository) UpdateState(ctx context.Context, id string, state domain.PaymentState) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE payments SET state = $1 WHERE id = $2`, state, id)
	if err != nil {
		return err
	}
	return requireOneRow(res, domain.ErrNotFound)
}

func (r *paymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	return r.getOne(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id)
}

func (r *paymentRepository) GetByTicketID(ctx context.Context, ticketID string) (*domain.Payment, error) {
	return r.getOne(ctx, `SELECT `+paymentColumns+` FROM payments WHERE ticket_id = $1`, ticketID)
}

func (r *paymentRepository) getOne(ctx context.Context, query, arg string) (*domain.Payment, error) {
	p, err := scanPayment(r.DB.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *paymentRepository) List(ctx context.Context, eventID string) ([]*domain.Payment, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if eventID == "" {
		rows, err = r.DB.QueryContext(ctx, `SELECT `+paymentColumns+` FROM payments ORDER BY created_at, id`)
	} else {
		rows, err = r.DB.QueryContext(ctx, `SELECT `+paymentColumns+` FROM payments WHERE event_id = $1 ORDER BY created_at, id`, eventID)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	payments := make([]*domain.Payment, 0)
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
