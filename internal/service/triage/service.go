package triage

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	mqcontracts "mailtriage/contracts/mq"
	"mailtriage/internal/model"
	"mailtriage/internal/validate"
	"mailtriage/pkg/metrics"
)

// QueueStore persists routed review records.
type QueueStore interface {
	Insert(ctx context.Context, rec *model.ReviewRecord) error
}

// EmailStore updates the raw email's processing status.
type EmailStore interface {
	UpdateStatus(ctx context.Context, emailID, status string) error
}

// ExistenceLookup is the external sap_exists predicate. It is consulted only
// with an already-normalized, format-valid SAP ID.
type ExistenceLookup interface {
	Exists(ctx context.Context, sapID string) (bool, error)
}

// Publisher publishes triage events.
type Publisher interface {
	Publish(routingKey string, payload any) error
}

// Service runs the triage pipeline for one email: validate the extracted
// fields, check account existence, route, persist the review record and
// publish email.triaged.
type Service struct {
	queue     QueueStore
	emails    EmailStore
	lookup    ExistenceLookup
	publisher Publisher
	logger    *zap.Logger
}

func NewService(queue QueueStore, emails EmailStore, lookup ExistenceLookup, publisher Publisher, logger *zap.Logger) *Service {
	return &Service{
		queue:     queue,
		emails:    emails,
		lookup:    lookup,
		publisher: publisher,
		logger:    logger,
	}
}

// Triage validates and routes one email's extraction output. Every field is
// treated as untrusted; validation failure is an expected outcome and lands
// the record in the rejected queue rather than erroring.
func (s *Service) Triage(ctx context.Context, email *model.EmailRaw, ex *model.Extraction) (*model.ReviewRecord, error) {
	fields := validate.All(ex.SAPID, ex.ContactName, ex.ContactEmail, ex.ContactPhone)

	// An invalid SAP ID is never looked up.
	exists := false
	if fields.SAP.IsValid {
		var err error
		exists, err = s.lookup.Exists(ctx, fields.SAP.Normalized)
		if err != nil {
			return nil, fmt.Errorf("existence lookup for %s: %w", email.EmailID, err)
		}
	}

	rec := validate.BuildRecord(
		email.EmailID,
		email.Sender,
		ex.SAPID,
		ex.ContactName,
		ex.ContactEmail,
		ex.ContactPhone,
		fields,
		exists,
		time.Now(),
	)

	if err := s.queue.Insert(ctx, &rec); err != nil {
		return nil, fmt.Errorf("insert review record for %s: %w", email.EmailID, err)
	}

	if err := s.emails.UpdateStatus(ctx, email.EmailID, "triaged"); err != nil {
		// The record is already queued; a stale raw status is not worth a redelivery.
		s.logger.Warn("Failed to update raw email status",
			zap.String("email_id", email.EmailID),
			zap.Error(err),
		)
	}

	s.recordMetrics(&rec)

	payload := mqcontracts.EmailTriagedPayload{
		EmailID:          rec.EmailID,
		Sender:           rec.Sender,
		ValidationStatus: rec.ValidationStatus,
		QueueType:        rec.QueueType,
		SAPExists:        rec.SAPExists,
		Errors:           rec.Errors,
		TriagedAt:        rec.QueuedAt,
	}
	if err := s.publisher.Publish("email.triaged", payload); err != nil {
		return nil, fmt.Errorf("publish email.triaged for %s: %w", email.EmailID, err)
	}

	s.logger.Info("Email triaged",
		zap.String("email_id", rec.EmailID),
		zap.String("validation_status", rec.ValidationStatus),
		zap.String("queue_type", rec.QueueType),
		zap.Bool("sap_exists", rec.SAPExists),
		zap.Int("error_count", len(rec.Errors)),
	)

	return &rec, nil
}

func (s *Service) recordMetrics(rec *model.ReviewRecord) {
	metrics.IncrementEmailTriaged(rec.QueueType)
	if !rec.SAPIDValid {
		metrics.IncrementValidationFailure("sap_id")
	}
	if !rec.NameValid {
		metrics.IncrementValidationFailure("contact_name")
	}
	if !rec.EmailValid {
		metrics.IncrementValidationFailure("contact_email")
	}
	if !rec.PhoneValid {
		metrics.IncrementValidationFailure("contact_phone")
	}
}
