package validate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRecordNeedsReview(t *testing.T) {
	// End-to-end: all fields valid but the account is unknown.
	fs := All("SAP999999", "Jane Doe", "jane@doe.com", "555-987-6543")
	require.True(t, fs.AllValid)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rec := BuildRecord("email_001", "jane@doe.com", "SAP999999", "Jane Doe", "jane@doe.com", "555-987-6543", fs, false, now)

	assert.Equal(t, "NEEDS_REVIEW", rec.ValidationStatus)
	assert.Equal(t, "detailed_review", rec.QueueType)
	assert.Equal(t, "SAP999999", rec.NormalizedSAPID)
	assert.Equal(t, "(555) 987-6543", rec.NormalizedPhone)
	assert.True(t, rec.SAPIDValid && rec.NameValid && rec.EmailValid && rec.PhoneValid)
	assert.False(t, rec.SAPExists)
	assert.Equal(t, []string{"SAP ID not found in database"}, rec.Errors)
	assert.Equal(t, now, rec.QueuedAt)
}

func TestBuildRecordPass(t *testing.T) {
	fs := All("sap123456", "john smith", "john@example.com", "(555) 123-4567")
	rec := BuildRecord("email_002", "john@example.com", "sap123456", "john smith", "john@example.com", "(555) 123-4567", fs, true, time.Now())

	assert.Equal(t, "PASS", rec.ValidationStatus)
	assert.Equal(t, "quick_approval", rec.QueueType)
	assert.Empty(t, rec.Errors)
	// Raw values are carried alongside the normalized ones.
	assert.Equal(t, "sap123456", rec.SAPID)
	assert.Equal(t, "SAP123456", rec.NormalizedSAPID)
}

func TestBuildRecordFail(t *testing.T) {
	fs := All("SAP12345", "J", "", "123-456")
	rec := BuildRecord("email_003", "someone@example.com", "SAP12345", "J", "", "123-456", fs, false, time.Now())

	assert.Equal(t, "FAIL", rec.ValidationStatus)
	assert.Equal(t, "rejected", rec.QueueType)
	assert.Equal(t, []string{
		"SAP ID: Invalid SAP ID format (expected SAPXXXXXX)",
		"Contact Name: Name too short",
		"Email: Email is empty",
		"Phone: Phone must have 10 digits, got 6",
	}, rec.Errors)
	// Invalid SAP IDs are never looked up, so no not-found note appears.
	assert.NotContains(t, rec.Errors, "SAP ID not found in database")
}
