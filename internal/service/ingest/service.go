package ingest

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"go.uber.org/zap"

	mqcontracts "mailtriage/contracts/mq"
	"mailtriage/internal/model"
	"mailtriage/internal/repository"
	"mailtriage/pkg/mq"
	"mailtriage/pkg/trace"
)

type Service struct {
	emailRepo *repository.EmailRepository
	publisher *mq.Publisher
	logger    *zap.Logger
}

func NewService(emailRepo *repository.EmailRepository, publisher *mq.Publisher, logger *zap.Logger) *Service {
	return &Service{
		emailRepo: emailRepo,
		publisher: publisher,
		logger:    logger,
	}
}

// CreateRawAndPublish stores a raw inbound email and publishes the
// email.received event that kicks off triage.
func (s *Service) CreateRawAndPublish(ctx context.Context, sender, subject, body string) (string, error) {
	raw := &model.EmailRaw{
		EmailID:   newEmailID(),
		Sender:    sender,
		Subject:   subject,
		Body:      body,
		Status:    "received",
		CreatedAt: time.Now(),
	}

	if err := s.emailRepo.CreateRawEmail(ctx, raw); err != nil {
		return "", fmt.Errorf("create raw email: %w", err)
	}

	traceID := trace.FromContext(ctx)
	if traceID == "" {
		traceID = trace.GenerateTraceID()
	}

	payload := mqcontracts.EmailReceivedPayload{
		EmailID:    raw.EmailID,
		Sender:     sender,
		Subject:    subject,
		Body:       body,
		ReceivedAt: time.Now(),
		TraceID:    traceID,
	}

	if err := s.publisher.Publish("email.received", payload); err != nil {
		return "", fmt.Errorf("publish email.received: %w", err)
	}

	s.logger.Info("Raw email ingested",
		zap.String("email_id", raw.EmailID),
		zap.String("sender", sender),
		zap.String("trace_id", traceID),
	)

	return raw.EmailID, nil
}

func newEmailID() string {
	b := make([]byte, 6)
	rand.Read(b)
	return "email_" + hex.EncodeToString(b)
}
