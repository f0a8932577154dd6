package mqhandler

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	mqcontracts "mailtriage/contracts/mq"
	"mailtriage/internal/model"
	"mailtriage/internal/service/extract"
	"mailtriage/pkg/logger"
	"mailtriage/pkg/trace"
	"mailtriage/pkg/util"
)

const (
	maxRetries = 5
)

// contains checks whether s contains substr, case-insensitively.
func contains(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// EmailStore loads raw emails for triage.
type EmailStore interface {
	FindByID(ctx context.Context, emailID string) (*model.EmailRaw, error)
}

// Extractor calls the external extraction endpoint.
type Extractor interface {
	Extract(ctx context.Context, req extract.Request) (*model.Extraction, error)
}

// Triager validates, routes and persists one email's extraction output.
type Triager interface {
	Triage(ctx context.Context, email *model.EmailRaw, ex *model.Extraction) (*model.ReviewRecord, error)
}

// Deduper guards against duplicate deliveries of the same event.
type Deduper interface {
	AcquireOnce(ctx context.Context, handler, emailID string) bool
	Release(ctx context.Context, handler, emailID string)
}

// RetryCounter tracks the per-email retry budget.
type RetryCounter interface {
	IncrementAndGet(ctx context.Context, key string) (int64, error)
	Reset(ctx context.Context, key string) error
}

// EmailReceivedHandler consumes email.received events, calls the extraction
// endpoint and triages the result into the review queue.
type EmailReceivedHandler struct {
	emails        EmailStore
	extractClient Extractor
	triageService Triager
	retryCounter  RetryCounter
	deduper       Deduper
	logger        *zap.Logger
}

func NewEmailReceivedHandler(
	emails EmailStore,
	extractClient Extractor,
	triageService Triager,
	retryCounter RetryCounter,
	deduper Deduper,
	logger *zap.Logger,
) *EmailReceivedHandler {
	return &EmailReceivedHandler{
		emails:        emails,
		extractClient: extractClient,
		triageService: triageService,
		retryCounter:  retryCounter,
		deduper:       deduper,
		logger:        logger,
	}
}

// requeue releases the dedup lock and hands the error back to the consumer
// for a nack. The lock must not survive the nack: the redelivery would be
// skipped as a duplicate and the email would never reach a review queue.
func (h *EmailReceivedHandler) requeue(ctx context.Context, emailID string, err error) error {
	h.deduper.Release(ctx, "triage", emailID)
	return err
}

// HandleEmailReceived processes an email.received event end to end.
// It is idempotent: duplicates are skipped and already-triaged emails are
// acked without rework. Returns an error only for retryable failures that
// have not exceeded the retry budget, so the consumer can nack and requeue.
func (h *EmailReceivedHandler) HandleEmailReceived(ctx context.Context, raw json.RawMessage) error {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("Panic in HandleEmailReceived",
				zap.Any("panic", r),
			)
		}
	}()

	var p mqcontracts.EmailReceivedPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		h.logger.Error("Failed to unmarshal email received payload (non-retryable)",
			zap.Error(err),
			zap.String("raw_payload", string(raw)),
		)
		return fmt.Errorf("json_unmarshal_error: %w", err)
	}

	if p.TraceID != "" {
		ctx = trace.WithContext(ctx, p.TraceID)
	}
	lg := logger.WithTrace(ctx, h.logger)

	lg.Info("Processing email triage",
		zap.String("email_id", p.EmailID),
		zap.String("sender", p.Sender),
		zap.String("subject", p.Subject),
	)

	email, err := h.emails.FindByID(ctx, p.EmailID)
	if err != nil {
		isRetryable, errType := util.IsRetryableError(err)
		lg.Error("Failed to find email",
			zap.String("email_id", p.EmailID),
			zap.String("error_type", errType),
			zap.Bool("retryable", isRetryable),
			zap.Error(err),
		)
		if !isRetryable {
			return nil
		}
		return err
	}

	// Idempotency check: already triaged, nothing to do.
	if email.Status == "triaged" {
		lg.Debug("Email already triaged, skipping",
			zap.String("email_id", p.EmailID),
		)
		return nil
	}

	if !h.deduper.AcquireOnce(ctx, "triage", p.EmailID) {
		lg.Info("Skipped duplicated triage event",
			zap.String("email_id", p.EmailID),
		)
		return nil
	}

	retryKey := util.FormatRetryKey("triage", p.EmailID)
	retryCount, err := h.retryCounter.IncrementAndGet(ctx, retryKey)
	if err != nil {
		// Redis errors must not block processing.
		lg.Warn("Failed to get retry count, continuing anyway",
			zap.String("email_id", p.EmailID),
			zap.Error(err),
		)
		retryCount = 1
	}

	lg.Info("Calling extraction service",
		zap.String("email_id", p.EmailID),
		zap.Int64("retry_count", retryCount),
	)

	ex, err := h.extractClient.Extract(ctx, extract.Request{
		EmailID: email.EmailID,
		Sender:  email.Sender,
		Subject: email.Subject,
		Body:    email.Body,
	})
	if err != nil {
		isRetryable, errType := util.IsRetryableError(err)

		isTimeout := contains(err.Error(), "timeout") || contains(err.Error(), "context deadline exceeded")
		is5xx := contains(err.Error(), "5xx")

		// One extra chance for a transient timeout or 5xx on the first attempt.
		if (isTimeout || is5xx) && retryCount == 1 {
			lg.Warn("Extraction service timeout/5xx on first attempt, will retry",
				zap.String("email_id", p.EmailID),
				zap.String("error_type", errType),
				zap.Bool("is_timeout", isTimeout),
				zap.Bool("is_5xx", is5xx),
			)
			return h.requeue(ctx, p.EmailID, err)
		}

		if isRetryable && retryCount <= maxRetries {
			lg.Error("Retryable extraction failure, requeueing",
				zap.String("email_id", p.EmailID),
				zap.String("error_type", errType),
				zap.Int64("retry_count", retryCount),
				zap.Error(err),
			)
			return h.requeue(ctx, p.EmailID, err)
		}

		// Permanent failure or retry budget spent: triage with an empty
		// extraction so the email still lands in the rejected queue
		// instead of vanishing.
		lg.Warn("Extraction failed permanently, triaging with empty fields",
			zap.String("email_id", p.EmailID),
			zap.String("error_type", errType),
			zap.Int64("retry_count", retryCount),
			zap.Error(err),
		)

		empty := &model.Extraction{Error: err.Error()}
		if _, terr := h.triageService.Triage(ctx, email, empty); terr != nil {
			isRetryable, errType := util.IsRetryableError(terr)
			lg.Error("Failed to triage email with empty extraction",
				zap.String("email_id", p.EmailID),
				zap.String("error_type", errType),
				zap.Bool("retryable", isRetryable),
				zap.Error(terr),
			)
			if !isRetryable {
				return nil
			}
			return h.requeue(ctx, p.EmailID, terr)
		}

		h.retryCounter.Reset(ctx, retryKey)
		return nil
	}

	// Extraction succeeded, reset the retry budget.
	h.retryCounter.Reset(ctx, retryKey)

	lg.Info("Extraction result",
		zap.String("email_id", p.EmailID),
		zap.String("sap_id", ex.SAPID),
		zap.String("contact_name", ex.ContactName),
	)

	record, err := h.triageService.Triage(ctx, email, ex)
	if err != nil {
		isRetryable, errType := util.IsRetryableError(err)
		lg.Error("Failed to triage email",
			zap.String("email_id", p.EmailID),
			zap.String("error_type", errType),
			zap.Bool("retryable", isRetryable),
			zap.Error(err),
		)
		if !isRetryable {
			return nil
		}
		return h.requeue(ctx, p.EmailID, err)
	}

	lg.Info("Email triaged successfully",
		zap.String("email_id", p.EmailID),
		zap.String("validation_status", record.ValidationStatus),
		zap.String("queue_type", record.QueueType),
	)

	return nil
}
