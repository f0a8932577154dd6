package mq

import "time"

// EmailTriagedPayload announces that an email has been validated and routed
// into a review queue.
// Routing key: email.triaged
type EmailTriagedPayload struct {
	EmailID          string    `json:"email_id"`
	Sender           string    `json:"sender"`
	ValidationStatus string    `json:"validation_status"`
	QueueType        string    `json:"queue_type"`
	SAPExists        bool      `json:"sap_exists"`
	Errors           []string  `json:"errors,omitempty"`
	TriagedAt        time.Time `json:"triaged_at"`
}
