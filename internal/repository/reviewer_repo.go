package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"mailtriage/internal/model"
)

type ReviewerRepository struct {
	db *pgxpool.Pool
}

func NewReviewerRepository(db *pgxpool.Pool) *ReviewerRepository {
	return &ReviewerRepository{db: db}
}

// CreateReviewer inserts a reviewer account and fills in its ID.
func (r *ReviewerRepository) CreateReviewer(ctx context.Context, rv *model.Reviewer) error {
	query := `
        INSERT INTO reviewers (email, password_hash, created_at)
        VALUES ($1, $2, NOW())
        RETURNING id
    `
	return r.db.QueryRow(ctx, query, rv.Email, rv.PasswordHash).Scan(&rv.ID)
}

// FindByEmail returns a reviewer by email.
func (r *ReviewerRepository) FindByEmail(ctx context.Context, email string) (*model.Reviewer, error) {
	query := `
        SELECT id, email, password_hash, created_at
        FROM reviewers
        WHERE email = $1
    `
	var rv model.Reviewer
	err := r.db.QueryRow(ctx, query, email).Scan(
		&rv.ID,
		&rv.Email,
		&rv.PasswordHash,
		&rv.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rv, nil
}
