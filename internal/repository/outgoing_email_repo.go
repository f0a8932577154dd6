package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"mailtriage/internal/model"
)

type OutgoingEmailRepository struct {
	db *pgxpool.Pool
}

func NewOutgoingEmailRepository(db *pgxpool.Pool) *OutgoingEmailRepository {
	return &OutgoingEmailRepository{db: db}
}

// Insert queues one follow-up email with status pending.
func (r *OutgoingEmailRepository) Insert(ctx context.Context, e *model.OutgoingEmail) error {
	query := `
        INSERT INTO outgoing_emails (email_id, to_email, subject, body, created_by, created_at, status)
        VALUES ($1, $2, $3, $4, $5, NOW(), 'pending')
    `
	_, err := r.db.Exec(ctx, query, e.EmailID, e.ToEmail, e.Subject, e.Body, e.CreatedBy)
	return err
}

// List returns the most recent follow-up emails (without bodies).
func (r *OutgoingEmailRepository) List(ctx context.Context, limit int) ([]model.OutgoingEmail, error) {
	query := `
        SELECT email_id, to_email, subject, created_by, created_at, status
        FROM outgoing_emails
        ORDER BY created_at DESC
        LIMIT $1
    `
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	emails := []model.OutgoingEmail{}
	for rows.Next() {
		var e model.OutgoingEmail
		if err := rows.Scan(
			&e.EmailID,
			&e.ToEmail,
			&e.Subject,
			&e.CreatedBy,
			&e.CreatedAt,
			&e.Status,
		); err != nil {
			return nil, err
		}
		emails = append(emails, e)
	}

	return emails, rows.Err()
}

// FindLatestByEmailID returns the most recent follow-up for one email,
// including the body.
func (r *OutgoingEmailRepository) FindLatestByEmailID(ctx context.Context, emailID string) (*model.OutgoingEmail, error) {
	query := `
        SELECT email_id, to_email, subject, body, created_by, created_at, status
        FROM outgoing_emails
        WHERE email_id = $1
        ORDER BY created_at DESC
        LIMIT 1
    `
	var e model.OutgoingEmail
	err := r.db.QueryRow(ctx, query, emailID).Scan(
		&e.EmailID,
		&e.ToEmail,
		&e.Subject,
		&e.Body,
		&e.CreatedBy,
		&e.CreatedAt,
		&e.Status,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
