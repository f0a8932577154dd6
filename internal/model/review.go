package model

import "time"

// ReviewRecord is a row in review_queue: one email's extracted fields, the
// flattened validation outputs and the routing decision. It is computed once
// per email and never mutated afterwards.
type ReviewRecord struct {
	EmailID          string    `json:"email_id"`
	Sender           string    `json:"sender"`
	ValidationStatus string    `json:"validation_status"`
	QueueType        string    `json:"queue_type"`
	SAPID            string    `json:"sap_id"`
	ContactName      string    `json:"contact_name"`
	ContactEmail     string    `json:"contact_email"`
	ContactPhone     string    `json:"contact_phone"`
	NormalizedSAPID  string    `json:"normalized_sap_id"`
	NormalizedName   string    `json:"normalized_name"`
	NormalizedPhone  string    `json:"normalized_phone"`
	SAPIDValid       bool      `json:"sap_id_valid"`
	NameValid        bool      `json:"name_valid"`
	EmailValid       bool      `json:"email_valid"`
	PhoneValid       bool      `json:"phone_valid"`
	SAPExists        bool      `json:"sap_exists"`
	Errors           []string  `json:"errors"`
	QueuedAt         time.Time `json:"queued_at"`
}

// ReviewAction is an append-only audit row in review_actions.
type ReviewAction struct {
	EmailID    string    `json:"email_id"`
	Action     string    `json:"action"`
	ActorEmail string    `json:"actor_email"`
	OldValues  string    `json:"old_values,omitempty"`
	NewValues  string    `json:"new_values,omitempty"`
	Reason     string    `json:"reason,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Audit action names.
const (
	ActionConfirmed    = "confirmed"
	ActionFollowupSent = "followup_sent"
)

// ApprovedChange is a row in approved_changes: reviewer-confirmed contact
// data, ready for downstream systems.
type ApprovedChange struct {
	EmailID         string    `json:"email_id"`
	SAPID           string    `json:"sap_id"`
	ContactName     string    `json:"contact_name"`
	ContactEmail    string    `json:"contact_email"`
	ContactPhone    string    `json:"contact_phone"`
	SourceEmailBody string    `json:"source_email_body"`
	ApprovedBy      string    `json:"approved_by"`
	ApprovedAt      time.Time `json:"approved_at"`
}

// OutgoingEmail is a row in outgoing_emails: a follow-up waiting to be sent.
type OutgoingEmail struct {
	EmailID   string    `json:"email_id"`
	ToEmail   string    `json:"to_email"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	Status    string    `json:"status"`
}
