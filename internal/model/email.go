package model

import "time"

// EmailRaw is a row in emails_raw: the inbound customer email as received.
type EmailRaw struct {
	EmailID   string    `json:"email_id"`
	Sender    string    `json:"sender"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// Extraction holds the best-effort fields returned by the external AI
// extraction endpoint. Every field is untrusted and possibly absent.
type Extraction struct {
	SAPID        string `json:"sap_id"`
	ContactName  string `json:"contact_name"`
	ContactEmail string `json:"contact_email"`
	ContactPhone string `json:"contact_phone"`
	Error        string `json:"error,omitempty"`
}
