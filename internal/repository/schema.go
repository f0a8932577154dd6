package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates the tables this service needs when they are missing.
// review_actions is append-only; an email is considered pending review until
// an action row exists for it.
func EnsureSchema(ctx context.Context, db *pgxpool.Pool) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS emails_raw (
            email_id TEXT PRIMARY KEY,
            sender TEXT NOT NULL,
            subject TEXT NOT NULL DEFAULT '',
            body TEXT NOT NULL,
            status TEXT NOT NULL DEFAULT 'received',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS review_queue (
            email_id TEXT PRIMARY KEY,
            sender TEXT NOT NULL,
            validation_status TEXT NOT NULL,
            queue_type TEXT NOT NULL,
            sap_id TEXT,
            contact_name TEXT,
            contact_email TEXT,
            contact_phone TEXT,
            normalized_sap_id TEXT,
            normalized_name TEXT,
            normalized_phone TEXT,
            sap_id_valid BOOLEAN NOT NULL,
            name_valid BOOLEAN NOT NULL,
            email_valid BOOLEAN NOT NULL,
            phone_valid BOOLEAN NOT NULL,
            sap_exists BOOLEAN NOT NULL,
            errors TEXT[] NOT NULL DEFAULT '{}',
            queued_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS review_actions (
            email_id TEXT NOT NULL,
            action TEXT NOT NULL,
            actor_email TEXT NOT NULL,
            old_values TEXT,
            new_values TEXT,
            reason TEXT,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS approved_changes (
            email_id TEXT NOT NULL,
            sap_id TEXT NOT NULL,
            contact_name TEXT NOT NULL,
            contact_email TEXT NOT NULL,
            contact_phone TEXT NOT NULL,
            source_email_body TEXT NOT NULL DEFAULT '',
            approved_by TEXT NOT NULL,
            approved_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS outgoing_emails (
            email_id TEXT NOT NULL,
            to_email TEXT NOT NULL,
            subject TEXT NOT NULL,
            body TEXT NOT NULL,
            created_by TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            status TEXT NOT NULL DEFAULT 'pending'
        )`,
		`CREATE TABLE IF NOT EXISTS sap_customers (
            sap_id TEXT PRIMARY KEY,
            account_status TEXT NOT NULL DEFAULT 'ACTIVE',
            last_updated TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS reviewers (
            id SERIAL PRIMARY KEY,
            email TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
