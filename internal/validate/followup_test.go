package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildFollowup(t *testing.T) {
	errs := []FieldError{
		{FieldEmail, "Email is empty"},
		{FieldPhone, "Phone must have 10 digits, got 6"},
	}
	f := BuildFollowup("jane doe", "sap123456", "SAP123456", errs)

	assert.Equal(t, "Additional Information Needed - SAP Account Update Request", f.Subject)
	assert.True(t, strings.HasPrefix(f.Body, "Hi jane,"))
	assert.Contains(t, f.Body, "account SAP123456")
	assert.Contains(t, f.Body, "  - Email: Email is empty")
	assert.Contains(t, f.Body, "  - Phone: Phone must have 10 digits, got 6")
	assert.Contains(t, f.Body, "SAP Account ID: SAP123456")
}

func TestBuildFollowupFallbacks(t *testing.T) {
	f := BuildFollowup("", "", "", []FieldError{{FieldSAPID, "SAP ID is missing"}})

	assert.True(t, strings.HasPrefix(f.Body, "Hi there,"))
	assert.Contains(t, f.Body, "account [your account]")
}

func TestBuildFollowupPrefersRawWhenNotNormalized(t *testing.T) {
	f := BuildFollowup("John Smith", "SAP12", "", nil)
	assert.Contains(t, f.Body, "account SAP12")
}
