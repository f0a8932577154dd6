package triage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	mqcontracts "mailtriage/contracts/mq"
	"mailtriage/internal/model"
)

type fakeQueue struct {
	inserted []model.ReviewRecord
	err      error
}

func (f *fakeQueue) Insert(_ context.Context, rec *model.ReviewRecord) error {
	if f.err != nil {
		return f.err
	}
	f.inserted = append(f.inserted, *rec)
	return nil
}

type fakeEmails struct {
	statuses map[string]string
}

func (f *fakeEmails) UpdateStatus(_ context.Context, emailID, status string) error {
	if f.statuses == nil {
		f.statuses = map[string]string{}
	}
	f.statuses[emailID] = status
	return nil
}

type fakeLookup struct {
	exists bool
	calls  []string
	err    error
}

func (f *fakeLookup) Exists(_ context.Context, sapID string) (bool, error) {
	f.calls = append(f.calls, sapID)
	return f.exists, f.err
}

type fakePublisher struct {
	keys     []string
	payloads []any
	err      error
}

func (f *fakePublisher) Publish(routingKey string, payload any) error {
	if f.err != nil {
		return f.err
	}
	f.keys = append(f.keys, routingKey)
	f.payloads = append(f.payloads, payload)
	return nil
}

func newTestService(q *fakeQueue, e *fakeEmails, l *fakeLookup, p *fakePublisher) *Service {
	return NewService(q, e, l, p, zap.NewNop())
}

func TestTriageNeedsReview(t *testing.T) {
	q := &fakeQueue{}
	e := &fakeEmails{}
	l := &fakeLookup{exists: false}
	p := &fakePublisher{}
	s := newTestService(q, e, l, p)

	email := &model.EmailRaw{EmailID: "email_001", Sender: "jane@doe.com"}
	ex := &model.Extraction{
		SAPID:        "sap999999",
		ContactName:  "jane doe",
		ContactEmail: "jane@doe.com",
		ContactPhone: "555-987-6543",
	}

	rec, err := s.Triage(context.Background(), email, ex)
	require.NoError(t, err)

	assert.Equal(t, "NEEDS_REVIEW", rec.ValidationStatus)
	assert.Equal(t, "detailed_review", rec.QueueType)
	// Lookup is called with the normalized ID, not the raw one.
	assert.Equal(t, []string{"SAP999999"}, l.calls)
	require.Len(t, q.inserted, 1)
	assert.Equal(t, "triaged", e.statuses["email_001"])

	require.Len(t, p.payloads, 1)
	assert.Equal(t, []string{"email.triaged"}, p.keys)
	payload := p.payloads[0].(mqcontracts.EmailTriagedPayload)
	assert.Equal(t, "email_001", payload.EmailID)
	assert.Equal(t, "NEEDS_REVIEW", payload.ValidationStatus)
	assert.False(t, payload.SAPExists)
}

func TestTriagePass(t *testing.T) {
	q := &fakeQueue{}
	l := &fakeLookup{exists: true}
	s := newTestService(q, &fakeEmails{}, l, &fakePublisher{})

	email := &model.EmailRaw{EmailID: "email_002", Sender: "john@example.com"}
	ex := &model.Extraction{
		SAPID:        "SAP123456",
		ContactName:  "John Smith",
		ContactEmail: "john@example.com",
		ContactPhone: "(555) 123-4567",
	}

	rec, err := s.Triage(context.Background(), email, ex)
	require.NoError(t, err)
	assert.Equal(t, "PASS", rec.ValidationStatus)
	assert.Equal(t, "quick_approval", rec.QueueType)
	assert.Empty(t, rec.Errors)
}

func TestTriageInvalidSAPSkipsLookup(t *testing.T) {
	l := &fakeLookup{exists: true}
	s := newTestService(&fakeQueue{}, &fakeEmails{}, l, &fakePublisher{})

	email := &model.EmailRaw{EmailID: "email_003", Sender: "x@example.com"}
	ex := &model.Extraction{
		SAPID:        "SAP12",
		ContactName:  "John Smith",
		ContactEmail: "john@example.com",
		ContactPhone: "(555) 123-4567",
	}

	rec, err := s.Triage(context.Background(), email, ex)
	require.NoError(t, err)
	assert.Equal(t, "FAIL", rec.ValidationStatus)
	assert.Empty(t, l.calls)
	assert.False(t, rec.SAPExists)
}

func TestTriageEmptyExtraction(t *testing.T) {
	// Garbage or absent extraction output still produces a well-formed,
	// rejected record.
	l := &fakeLookup{}
	q := &fakeQueue{}
	s := newTestService(q, &fakeEmails{}, l, &fakePublisher{})

	email := &model.EmailRaw{EmailID: "email_004", Sender: "x@example.com"}
	rec, err := s.Triage(context.Background(), email, &model.Extraction{})
	require.NoError(t, err)

	assert.Equal(t, "FAIL", rec.ValidationStatus)
	assert.Len(t, rec.Errors, 4)
	assert.Empty(t, l.calls)
}

func TestTriageLookupError(t *testing.T) {
	l := &fakeLookup{err: errors.New("db down")}
	q := &fakeQueue{}
	s := newTestService(q, &fakeEmails{}, l, &fakePublisher{})

	email := &model.EmailRaw{EmailID: "email_005", Sender: "x@example.com"}
	ex := &model.Extraction{
		SAPID:        "SAP123456",
		ContactName:  "John Smith",
		ContactEmail: "john@example.com",
		ContactPhone: "(555) 123-4567",
	}

	_, err := s.Triage(context.Background(), email, ex)
	require.Error(t, err)
	assert.Empty(t, q.inserted)
}

func TestTriageInsertError(t *testing.T) {
	q := &fakeQueue{err: errors.New("insert failed")}
	p := &fakePublisher{}
	s := newTestService(q, &fakeEmails{}, &fakeLookup{}, p)

	email := &model.EmailRaw{EmailID: "email_006", Sender: "x@example.com"}
	_, err := s.Triage(context.Background(), email, &model.Extraction{})
	require.Error(t, err)
	assert.Empty(t, p.payloads)
}
