package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"mailtriage/internal/model"
)

type EmailRepository struct {
	db *pgxpool.Pool
}

func NewEmailRepository(db *pgxpool.Pool) *EmailRepository {
	return &EmailRepository{db: db}
}

// CreateRawEmail inserts the raw email.
func (r *EmailRepository) CreateRawEmail(ctx context.Context, e *model.EmailRaw) error {
	query := `
        INSERT INTO emails_raw (email_id, sender, subject, body, status, created_at)
        VALUES ($1, $2, $3, $4, 'received', NOW())
    `
	_, err := r.db.Exec(ctx, query, e.EmailID, e.Sender, e.Subject, e.Body)
	return err
}

// FindByID returns a raw email by id.
func (r *EmailRepository) FindByID(ctx context.Context, emailID string) (*model.EmailRaw, error) {
	query := `
        SELECT email_id, sender, subject, body, status, created_at
        FROM emails_raw
        WHERE email_id = $1
    `
	var e model.EmailRaw
	err := r.db.QueryRow(ctx, query, emailID).Scan(
		&e.EmailID,
		&e.Sender,
		&e.Subject,
		&e.Body,
		&e.Status,
		&e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// GetBody returns the original email body, or "" when the email is unknown.
func (r *EmailRepository) GetBody(ctx context.Context, emailID string) (string, error) {
	query := `
        SELECT body
        FROM emails_raw
        WHERE email_id = $1
    `
	var body string
	if err := r.db.QueryRow(ctx, query, emailID).Scan(&body); err != nil {
		return "", err
	}
	return body, nil
}

// UpdateStatus sets the raw email status (e.g. triaged).
func (r *EmailRepository) UpdateStatus(ctx context.Context, emailID, status string) error {
	query := `
        UPDATE emails_raw
        SET status = $1
        WHERE email_id = $2
    `
	_, err := r.db.Exec(ctx, query, status, emailID)
	return err
}
