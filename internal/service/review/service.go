package review

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	mqcontracts "mailtriage/contracts/mq"
	"mailtriage/internal/model"
	"mailtriage/internal/validate"
	"mailtriage/pkg/metrics"
)

var (
	// ErrNotFound means the email has no review record.
	ErrNotFound = errors.New("review item not found")
	// ErrAlreadyActioned means a reviewer already confirmed or followed up.
	ErrAlreadyActioned = errors.New("review item already actioned")
	// ErrNotApprovable means the item does not qualify for approval.
	ErrNotApprovable = errors.New("review item is not approvable")
)

// Publisher publishes review events.
type Publisher interface {
	Publish(routingKey string, payload any) error
}

// QueueStore loads review records.
type QueueStore interface {
	FindByID(ctx context.Context, emailID string) (*model.ReviewRecord, error)
}

// EmailStore loads the original email body carried into approved changes.
type EmailStore interface {
	GetBody(ctx context.Context, emailID string) (string, error)
}

// ActionStore appends to and inspects the audit trail.
type ActionStore interface {
	Insert(ctx context.Context, a *model.ReviewAction) error
	HasAction(ctx context.Context, emailID string) (bool, error)
}

// ApprovedStore persists reviewer-confirmed contact changes.
type ApprovedStore interface {
	Insert(ctx context.Context, c *model.ApprovedChange) error
}

// OutgoingStore queues follow-up emails for delivery.
type OutgoingStore interface {
	Insert(ctx context.Context, e *model.OutgoingEmail) error
}

// Service implements the two reviewer actions, approve and follow-up, plus
// the lookups the review UI needs. Every action appends to the audit trail;
// an item leaves the pending queue once its first action is recorded.
type Service struct {
	queueRepo    QueueStore
	emailRepo    EmailStore
	actionRepo   ActionStore
	approvedRepo ApprovedStore
	outgoingRepo OutgoingStore
	publisher    Publisher
	logger       *zap.Logger
}

func NewService(
	queueRepo QueueStore,
	emailRepo EmailStore,
	actionRepo ActionStore,
	approvedRepo ApprovedStore,
	outgoingRepo OutgoingStore,
	publisher Publisher,
	logger *zap.Logger,
) *Service {
	return &Service{
		queueRepo:    queueRepo,
		emailRepo:    emailRepo,
		actionRepo:   actionRepo,
		approvedRepo: approvedRepo,
		outgoingRepo: outgoingRepo,
		publisher:    publisher,
		logger:       logger,
	}
}

// Approve confirms the extracted data and writes it to approved_changes.
// The fields are re-validated on their normalized values before writing:
// approval requires every field valid and a known SAP account.
func (s *Service) Approve(ctx context.Context, emailID, actor string) (*model.ApprovedChange, error) {
	rec, err := s.loadActionable(ctx, emailID)
	if err != nil {
		return nil, err
	}

	sapID := displayValue(rec.NormalizedSAPID, rec.SAPID)
	name := displayValue(rec.NormalizedName, rec.ContactName)
	email := rec.ContactEmail
	phone := displayValue(rec.NormalizedPhone, rec.ContactPhone)

	fields := validate.All(sapID, name, email, phone)
	if !fields.AllValid || !rec.SAPExists {
		return nil, ErrNotApprovable
	}

	body, err := s.emailRepo.GetBody(ctx, emailID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("load email body: %w", err)
	}

	change := &model.ApprovedChange{
		EmailID:         emailID,
		SAPID:           fields.SAP.Normalized,
		ContactName:     fields.Name.Normalized,
		ContactEmail:    email,
		ContactPhone:    fields.Phone.Normalized,
		SourceEmailBody: body,
		ApprovedBy:      actor,
		ApprovedAt:      time.Now(),
	}
	if err := s.approvedRepo.Insert(ctx, change); err != nil {
		return nil, fmt.Errorf("insert approved change: %w", err)
	}

	newValues, _ := json.Marshal(map[string]string{
		"sap_id":        change.SAPID,
		"contact_name":  change.ContactName,
		"contact_email": change.ContactEmail,
		"contact_phone": change.ContactPhone,
	})
	action := &model.ReviewAction{
		EmailID:    emailID,
		Action:     model.ActionConfirmed,
		ActorEmail: actor,
		NewValues:  string(newValues),
	}
	if err := s.actionRepo.Insert(ctx, action); err != nil {
		return nil, fmt.Errorf("insert review action: %w", err)
	}

	metrics.IncrementReviewAction(model.ActionConfirmed)
	s.logger.Info("Extraction approved",
		zap.String("email_id", emailID),
		zap.String("actor", actor),
		zap.String("sap_id", change.SAPID),
	)

	return change, nil
}

// SendFollowup queues a follow-up email to the original sender and records
// the action. When subject or body are empty the generated template is used.
func (s *Service) SendFollowup(ctx context.Context, emailID, actor, subject, body string) (*model.OutgoingEmail, error) {
	rec, err := s.loadActionable(ctx, emailID)
	if err != nil {
		return nil, err
	}

	fields := validate.All(rec.SAPID, rec.ContactName, rec.ContactEmail, rec.ContactPhone)
	if subject == "" || body == "" {
		generated := validate.BuildFollowup(rec.ContactName, rec.SAPID, rec.NormalizedSAPID, fields.Errors)
		if subject == "" {
			subject = generated.Subject
		}
		if body == "" {
			body = generated.Body
		}
	}

	out := &model.OutgoingEmail{
		EmailID:   emailID,
		ToEmail:   rec.Sender,
		Subject:   subject,
		Body:      body,
		CreatedBy: actor,
		CreatedAt: time.Now(),
		Status:    "pending",
	}
	if err := s.outgoingRepo.Insert(ctx, out); err != nil {
		return nil, fmt.Errorf("insert outgoing email: %w", err)
	}

	oldValues, _ := json.Marshal(map[string]any{"missing_fields": fields.Errors})
	newValues, _ := json.Marshal(map[string]any{
		"followup_email": map[string]string{"to": rec.Sender, "subject": subject},
	})
	action := &model.ReviewAction{
		EmailID:    emailID,
		Action:     model.ActionFollowupSent,
		ActorEmail: actor,
		OldValues:  string(oldValues),
		NewValues:  string(newValues),
		Reason:     "Missing or invalid fields",
	}
	if err := s.actionRepo.Insert(ctx, action); err != nil {
		return nil, fmt.Errorf("insert review action: %w", err)
	}

	payload := mqcontracts.FollowupQueuedPayload{
		EmailID:  emailID,
		ToEmail:  rec.Sender,
		Subject:  subject,
		QueuedBy: actor,
		QueuedAt: out.CreatedAt,
	}
	if err := s.publisher.Publish("email.followup.queued", payload); err != nil {
		// The follow-up is already persisted; delivery pollers can pick it up.
		s.logger.Warn("Failed to publish followup event",
			zap.String("email_id", emailID),
			zap.Error(err),
		)
	}

	metrics.IncrementReviewAction(model.ActionFollowupSent)
	s.logger.Info("Follow-up queued",
		zap.String("email_id", emailID),
		zap.String("to", rec.Sender),
		zap.String("actor", actor),
	)

	return out, nil
}

// FollowupPreview generates the follow-up subject and body for an item
// without recording anything, so the reviewer can edit before sending.
func (s *Service) FollowupPreview(ctx context.Context, emailID string) (*validate.Followup, error) {
	rec, err := s.queueRepo.FindByID(ctx, emailID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	fields := validate.All(rec.SAPID, rec.ContactName, rec.ContactEmail, rec.ContactPhone)
	f := validate.BuildFollowup(rec.ContactName, rec.SAPID, rec.NormalizedSAPID, fields.Errors)
	return &f, nil
}

func (s *Service) loadActionable(ctx context.Context, emailID string) (*model.ReviewRecord, error) {
	rec, err := s.queueRepo.FindByID(ctx, emailID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	actioned, err := s.actionRepo.HasAction(ctx, emailID)
	if err != nil {
		return nil, err
	}
	if actioned {
		return nil, ErrAlreadyActioned
	}

	return rec, nil
}

// displayValue prefers the normalized value, falling back to the raw one,
// mirroring what the reviewer sees on screen.
func displayValue(normalized, raw string) string {
	if normalized != "" {
		return normalized
	}
	return raw
}
