package review

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"mailtriage/internal/model"
)

type fakeQueue struct {
	rec *model.ReviewRecord
}

func (f *fakeQueue) FindByID(_ context.Context, _ string) (*model.ReviewRecord, error) {
	if f.rec == nil {
		return nil, pgx.ErrNoRows
	}
	return f.rec, nil
}

type fakeEmails struct {
	body string
}

func (f *fakeEmails) GetBody(_ context.Context, _ string) (string, error) {
	if f.body == "" {
		return "", pgx.ErrNoRows
	}
	return f.body, nil
}

type fakeActions struct {
	actioned bool
	inserted []model.ReviewAction
}

func (f *fakeActions) Insert(_ context.Context, a *model.ReviewAction) error {
	f.inserted = append(f.inserted, *a)
	return nil
}

func (f *fakeActions) HasAction(_ context.Context, _ string) (bool, error) {
	return f.actioned, nil
}

type fakeApproved struct {
	inserted []model.ApprovedChange
}

func (f *fakeApproved) Insert(_ context.Context, c *model.ApprovedChange) error {
	f.inserted = append(f.inserted, *c)
	return nil
}

type fakeOutgoing struct {
	inserted []model.OutgoingEmail
}

func (f *fakeOutgoing) Insert(_ context.Context, e *model.OutgoingEmail) error {
	f.inserted = append(f.inserted, *e)
	return nil
}

type fakePublisher struct {
	keys []string
	err  error
}

func (f *fakePublisher) Publish(routingKey string, _ any) error {
	if f.err != nil {
		return f.err
	}
	f.keys = append(f.keys, routingKey)
	return nil
}

type deps struct {
	queue     *fakeQueue
	emails    *fakeEmails
	actions   *fakeActions
	approved  *fakeApproved
	outgoing  *fakeOutgoing
	publisher *fakePublisher
}

func newTestService(d *deps) *Service {
	return NewService(d.queue, d.emails, d.actions, d.approved, d.outgoing, d.publisher, zap.NewNop())
}

func approvableRecord() *model.ReviewRecord {
	return &model.ReviewRecord{
		EmailID:          "email_001",
		Sender:           "jane@doe.com",
		ValidationStatus: "PASS",
		QueueType:        "quick_approval",
		SAPID:            "sap123456",
		ContactName:      "jane doe",
		ContactEmail:     "jane@doe.com",
		ContactPhone:     "555-123-4567",
		NormalizedSAPID:  "SAP123456",
		NormalizedName:   "Jane Doe",
		NormalizedPhone:  "(555) 123-4567",
		SAPIDValid:       true,
		NameValid:        true,
		EmailValid:       true,
		PhoneValid:       true,
		SAPExists:        true,
	}
}

func defaultDeps(rec *model.ReviewRecord) *deps {
	return &deps{
		queue:     &fakeQueue{rec: rec},
		emails:    &fakeEmails{body: "please update my account"},
		actions:   &fakeActions{},
		approved:  &fakeApproved{},
		outgoing:  &fakeOutgoing{},
		publisher: &fakePublisher{},
	}
}

func TestApprove(t *testing.T) {
	d := defaultDeps(approvableRecord())
	s := newTestService(d)

	change, err := s.Approve(context.Background(), "email_001", "reviewer@example.com")
	require.NoError(t, err)

	assert.Equal(t, "SAP123456", change.SAPID)
	assert.Equal(t, "Jane Doe", change.ContactName)
	assert.Equal(t, "(555) 123-4567", change.ContactPhone)
	assert.Equal(t, "please update my account", change.SourceEmailBody)
	assert.Equal(t, "reviewer@example.com", change.ApprovedBy)

	require.Len(t, d.approved.inserted, 1)
	require.Len(t, d.actions.inserted, 1)
	action := d.actions.inserted[0]
	assert.Equal(t, model.ActionConfirmed, action.Action)
	assert.Equal(t, "reviewer@example.com", action.ActorEmail)
	assert.Contains(t, action.NewValues, "SAP123456")
}

func TestApproveNotFound(t *testing.T) {
	s := newTestService(defaultDeps(nil))

	_, err := s.Approve(context.Background(), "email_404", "reviewer@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

// A second action on the same item is rejected: the audit trail is
// append-only and the first action settles the item.
func TestApproveAlreadyActioned(t *testing.T) {
	d := defaultDeps(approvableRecord())
	d.actions.actioned = true
	s := newTestService(d)

	_, err := s.Approve(context.Background(), "email_001", "reviewer@example.com")
	assert.ErrorIs(t, err, ErrAlreadyActioned)
	assert.Empty(t, d.approved.inserted)
	assert.Empty(t, d.actions.inserted)
}

func TestApproveUnknownAccountNotApprovable(t *testing.T) {
	rec := approvableRecord()
	rec.SAPExists = false
	d := defaultDeps(rec)
	s := newTestService(d)

	_, err := s.Approve(context.Background(), "email_001", "reviewer@example.com")
	assert.ErrorIs(t, err, ErrNotApprovable)
	assert.Empty(t, d.approved.inserted)
}

// Approval re-validates what the reviewer sees; stored garbage that never
// validated cannot be approved even if the routing row claims otherwise.
func TestApproveRevalidationFailsNotApprovable(t *testing.T) {
	rec := approvableRecord()
	rec.ContactPhone = "123"
	rec.NormalizedPhone = ""
	d := defaultDeps(rec)
	s := newTestService(d)

	_, err := s.Approve(context.Background(), "email_001", "reviewer@example.com")
	assert.ErrorIs(t, err, ErrNotApprovable)
	assert.Empty(t, d.approved.inserted)
}

func TestSendFollowupGeneratesTemplate(t *testing.T) {
	rec := approvableRecord()
	rec.ContactEmail = ""
	rec.EmailValid = false
	rec.ContactPhone = "123"
	rec.NormalizedPhone = ""
	rec.PhoneValid = false
	d := defaultDeps(rec)
	s := newTestService(d)

	out, err := s.SendFollowup(context.Background(), "email_001", "reviewer@example.com", "", "")
	require.NoError(t, err)

	assert.Equal(t, "Additional Information Needed - SAP Account Update Request", out.Subject)
	assert.Contains(t, out.Body, "Hi jane,")
	assert.Contains(t, out.Body, "account SAP123456")
	assert.Contains(t, out.Body, "Email: Email is empty")
	assert.Equal(t, "jane@doe.com", out.ToEmail)
	assert.Equal(t, "pending", out.Status)

	require.Len(t, d.outgoing.inserted, 1)
	require.Len(t, d.actions.inserted, 1)
	action := d.actions.inserted[0]
	assert.Equal(t, model.ActionFollowupSent, action.Action)
	assert.Equal(t, "Missing or invalid fields", action.Reason)
	assert.Equal(t, []string{"email.followup.queued"}, d.publisher.keys)
}

func TestSendFollowupCustomSubjectAndBody(t *testing.T) {
	d := defaultDeps(approvableRecord())
	s := newTestService(d)

	out, err := s.SendFollowup(context.Background(), "email_001", "reviewer@example.com", "Quick question", "Could you confirm your phone number?")
	require.NoError(t, err)
	assert.Equal(t, "Quick question", out.Subject)
	assert.Equal(t, "Could you confirm your phone number?", out.Body)
}

func TestSendFollowupAlreadyActioned(t *testing.T) {
	d := defaultDeps(approvableRecord())
	d.actions.actioned = true
	s := newTestService(d)

	_, err := s.SendFollowup(context.Background(), "email_001", "reviewer@example.com", "", "")
	assert.ErrorIs(t, err, ErrAlreadyActioned)
	assert.Empty(t, d.outgoing.inserted)
}

// A publish failure does not fail the action: the follow-up row is already
// persisted for pollers.
func TestSendFollowupPublishFailureTolerated(t *testing.T) {
	d := defaultDeps(approvableRecord())
	d.publisher.err = errors.New("broker down")
	s := newTestService(d)

	_, err := s.SendFollowup(context.Background(), "email_001", "reviewer@example.com", "", "")
	require.NoError(t, err)
	require.Len(t, d.outgoing.inserted, 1)
}

func TestFollowupPreviewNotFound(t *testing.T) {
	s := newTestService(defaultDeps(nil))

	_, err := s.FollowupPreview(context.Background(), "email_404")
	assert.ErrorIs(t, err, ErrNotFound)
}
