package validate

import (
	"fmt"
	"strings"
)

// Followup is a generated follow-up email asking the customer for corrected
// information.
type Followup struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

const followupSubject = "Additional Information Needed - SAP Account Update Request"

// BuildFollowup generates the follow-up subject and body from the ordered
// field errors. The greeting uses the contact's first name when one was
// extracted, and the account reference prefers the normalized SAP ID over
// the raw one.
func BuildFollowup(contactName, rawSAPID, normalizedSAPID string, errs []FieldError) Followup {
	greeting := "there"
	if parts := strings.Fields(contactName); len(parts) > 0 {
		greeting = parts[0]
	}

	sapRef := normalizedSAPID
	if sapRef == "" {
		sapRef = rawSAPID
	}
	if sapRef == "" {
		sapRef = "[your account]"
	}

	lines := make([]string, 0, len(errs))
	for _, e := range errs {
		lines = append(lines, fmt.Sprintf("  - %s: %s", e.Field, e.Error))
	}

	body := fmt.Sprintf(`Hi %s,

Thank you for contacting us about updating your SAP account information.

We received your request for account %s, but we need some additional information or corrections to process it:

%s

Please reply to this email with the corrected information in the following format:

SAP Account ID: SAP123456
Contact Name: First Last
Contact Email: name@example.com
Contact Phone: (555) 123-4567

We'll process your update as soon as we receive the complete information.

Best regards,
Customer Service Team`, greeting, sapRef, strings.Join(lines, "\n"))

	return Followup{Subject: followupSubject, Body: body}
}
