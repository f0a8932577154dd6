package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"mailtriage/internal/model"
)

type SAPCustomerRepository struct {
	db *pgxpool.Pool
}

func NewSAPCustomerRepository(db *pgxpool.Pool) *SAPCustomerRepository {
	return &SAPCustomerRepository{db: db}
}

// Exists reports whether a normalized SAP ID is a known account.
func (r *SAPCustomerRepository) Exists(ctx context.Context, sapID string) (bool, error) {
	query := `
        SELECT EXISTS (SELECT 1 FROM sap_customers WHERE sap_id = $1)
    `
	var exists bool
	if err := r.db.QueryRow(ctx, query, sapID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// Upsert stores one reference account, refreshing last_updated.
func (r *SAPCustomerRepository) Upsert(ctx context.Context, c *model.SAPCustomer) error {
	query := `
        INSERT INTO sap_customers (sap_id, account_status, last_updated)
        VALUES ($1, $2, NOW())
        ON CONFLICT (sap_id) DO UPDATE
        SET account_status = EXCLUDED.account_status, last_updated = NOW()
    `
	_, err := r.db.Exec(ctx, query, c.SAPID, c.AccountStatus)
	return err
}

// Count returns the number of reference accounts.
func (r *SAPCustomerRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM sap_customers`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
