package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"mailtriage/internal/model"
)

type ReviewActionRepository struct {
	db *pgxpool.Pool
}

func NewReviewActionRepository(db *pgxpool.Pool) *ReviewActionRepository {
	return &ReviewActionRepository{db: db}
}

// Insert appends one audit row. Rows are never updated or deleted.
func (r *ReviewActionRepository) Insert(ctx context.Context, a *model.ReviewAction) error {
	query := `
        INSERT INTO review_actions (email_id, action, actor_email, old_values, new_values, reason, created_at)
        VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), NOW())
    `
	_, err := r.db.Exec(ctx, query, a.EmailID, a.Action, a.ActorEmail, a.OldValues, a.NewValues, a.Reason)
	return err
}

// List returns the most recent audit rows.
func (r *ReviewActionRepository) List(ctx context.Context, limit int) ([]model.ReviewAction, error) {
	query := `
        SELECT email_id, action, actor_email,
               COALESCE(old_values, ''), COALESCE(new_values, ''), COALESCE(reason, ''),
               created_at
        FROM review_actions
        ORDER BY created_at DESC
        LIMIT $1
    `
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	actions := []model.ReviewAction{}
	for rows.Next() {
		var a model.ReviewAction
		if err := rows.Scan(
			&a.EmailID,
			&a.Action,
			&a.ActorEmail,
			&a.OldValues,
			&a.NewValues,
			&a.Reason,
			&a.CreatedAt,
		); err != nil {
			return nil, err
		}
		actions = append(actions, a)
	}

	return actions, rows.Err()
}

// HasAction reports whether any action was already recorded for an email.
func (r *ReviewActionRepository) HasAction(ctx context.Context, emailID string) (bool, error) {
	query := `
        SELECT EXISTS (SELECT 1 FROM review_actions WHERE email_id = $1)
    `
	var exists bool
	if err := r.db.QueryRow(ctx, query, emailID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
