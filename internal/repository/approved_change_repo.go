package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"mailtriage/internal/model"
)

type ApprovedChangeRepository struct {
	db *pgxpool.Pool
}

func NewApprovedChangeRepository(db *pgxpool.Pool) *ApprovedChangeRepository {
	return &ApprovedChangeRepository{db: db}
}

// Insert stores one reviewer-confirmed change.
func (r *ApprovedChangeRepository) Insert(ctx context.Context, c *model.ApprovedChange) error {
	query := `
        INSERT INTO approved_changes (email_id, sap_id, contact_name, contact_email, contact_phone, source_email_body, approved_by, approved_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
    `
	_, err := r.db.Exec(ctx, query,
		c.EmailID,
		c.SAPID,
		c.ContactName,
		c.ContactEmail,
		c.ContactPhone,
		c.SourceEmailBody,
		c.ApprovedBy,
	)
	return err
}

// List returns the most recent approved changes.
func (r *ApprovedChangeRepository) List(ctx context.Context, limit int) ([]model.ApprovedChange, error) {
	query := `
        SELECT email_id, sap_id, contact_name, contact_email, contact_phone, source_email_body, approved_by, approved_at
        FROM approved_changes
        ORDER BY approved_at DESC
        LIMIT $1
    `
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	changes := []model.ApprovedChange{}
	for rows.Next() {
		var c model.ApprovedChange
		if err := rows.Scan(
			&c.EmailID,
			&c.SAPID,
			&c.ContactName,
			&c.ContactEmail,
			&c.ContactPhone,
			&c.SourceEmailBody,
			&c.ApprovedBy,
			&c.ApprovedAt,
		); err != nil {
			return nil, err
		}
		changes = append(changes, c)
	}

	return changes, rows.Err()
}
