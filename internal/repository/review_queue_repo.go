package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"mailtriage/internal/model"
)

type ReviewQueueRepository struct {
	db *pgxpool.Pool
}

func NewReviewQueueRepository(db *pgxpool.Pool) *ReviewQueueRepository {
	return &ReviewQueueRepository{db: db}
}

// KPICounts summarizes pending items per validation status.
type KPICounts struct {
	Total       int `json:"total"`
	Pass        int `json:"pass"`
	NeedsReview int `json:"needs_review"`
	Fail        int `json:"fail"`
}

// Insert stores a review record. ON CONFLICT keeps re-delivered events
// idempotent: the first routed record wins.
func (r *ReviewQueueRepository) Insert(ctx context.Context, rec *model.ReviewRecord) error {
	query := `
        INSERT INTO review_queue (
            email_id, sender, validation_status, queue_type,
            sap_id, contact_name, contact_email, contact_phone,
            normalized_sap_id, normalized_name, normalized_phone,
            sap_id_valid, name_valid, email_valid, phone_valid,
            sap_exists, errors, queued_at
        )
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
        ON CONFLICT (email_id) DO NOTHING
    `
	_, err := r.db.Exec(ctx, query,
		rec.EmailID,
		rec.Sender,
		rec.ValidationStatus,
		rec.QueueType,
		rec.SAPID,
		rec.ContactName,
		rec.ContactEmail,
		rec.ContactPhone,
		rec.NormalizedSAPID,
		rec.NormalizedName,
		rec.NormalizedPhone,
		rec.SAPIDValid,
		rec.NameValid,
		rec.EmailValid,
		rec.PhoneValid,
		rec.SAPExists,
		rec.Errors,
		rec.QueuedAt,
	)
	return err
}

// FindByID returns one review record.
func (r *ReviewQueueRepository) FindByID(ctx context.Context, emailID string) (*model.ReviewRecord, error) {
	query := `
        SELECT email_id, sender, validation_status, queue_type,
               sap_id, contact_name, contact_email, contact_phone,
               normalized_sap_id, normalized_name, normalized_phone,
               sap_id_valid, name_valid, email_valid, phone_valid,
               sap_exists, errors, queued_at
        FROM review_queue
        WHERE email_id = $1
    `
	return r.scanOne(r.db.QueryRow(ctx, query, emailID))
}

// ListPending returns records with no review action yet, optionally filtered
// by a search term over email id, sender and SAP id.
func (r *ReviewQueueRepository) ListPending(ctx context.Context, search string, limit int) ([]model.ReviewRecord, error) {
	query := `
        SELECT q.email_id, q.sender, q.validation_status, q.queue_type,
               q.sap_id, q.contact_name, q.contact_email, q.contact_phone,
               q.normalized_sap_id, q.normalized_name, q.normalized_phone,
               q.sap_id_valid, q.name_valid, q.email_valid, q.phone_valid,
               q.sap_exists, q.errors, q.queued_at
        FROM review_queue q
        WHERE NOT EXISTS (
            SELECT 1 FROM review_actions a WHERE a.email_id = q.email_id
        )
        AND ($1 = '' OR
            q.email_id ILIKE '%' || $1 || '%' OR
            q.sender ILIKE '%' || $1 || '%' OR
            q.sap_id ILIKE '%' || $1 || '%' OR
            q.normalized_sap_id ILIKE '%' || $1 || '%')
        ORDER BY q.validation_status DESC, q.email_id
        LIMIT $2
    `
	rows, err := r.db.Query(ctx, query, search, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []model.ReviewRecord{}
	for rows.Next() {
		var rec model.ReviewRecord
		if err := rows.Scan(
			&rec.EmailID,
			&rec.Sender,
			&rec.ValidationStatus,
			&rec.QueueType,
			&rec.SAPID,
			&rec.ContactName,
			&rec.ContactEmail,
			&rec.ContactPhone,
			&rec.NormalizedSAPID,
			&rec.NormalizedName,
			&rec.NormalizedPhone,
			&rec.SAPIDValid,
			&rec.NameValid,
			&rec.EmailValid,
			&rec.PhoneValid,
			&rec.SAPExists,
			&rec.Errors,
			&rec.QueuedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// CountPending returns per-status counts over records with no action yet.
func (r *ReviewQueueRepository) CountPending(ctx context.Context) (*KPICounts, error) {
	query := `
        SELECT q.validation_status, COUNT(*)
        FROM review_queue q
        WHERE NOT EXISTS (
            SELECT 1 FROM review_actions a WHERE a.email_id = q.email_id
        )
        GROUP BY q.validation_status
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	kpis := &KPICounts{}
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		kpis.Total += count
		switch status {
		case "PASS":
			kpis.Pass = count
		case "NEEDS_REVIEW":
			kpis.NeedsReview = count
		case "FAIL":
			kpis.Fail = count
		}
	}

	return kpis, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *ReviewQueueRepository) scanOne(row rowScanner) (*model.ReviewRecord, error) {
	var rec model.ReviewRecord
	err := row.Scan(
		&rec.EmailID,
		&rec.Sender,
		&rec.ValidationStatus,
		&rec.QueueType,
		&rec.SAPID,
		&rec.ContactName,
		&rec.ContactEmail,
		&rec.ContactPhone,
		&rec.NormalizedSAPID,
		&rec.NormalizedName,
		&rec.NormalizedPhone,
		&rec.SAPIDValid,
		&rec.NameValid,
		&rec.EmailValid,
		&rec.PhoneValid,
		&rec.SAPExists,
		&rec.Errors,
		&rec.QueuedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
