package mq

import "time"

// EmailReceivedPayload announces a newly ingested raw email.
// Routing key: email.received
type EmailReceivedPayload struct {
	EmailID    string    `json:"email_id"`
	Sender     string    `json:"sender"`
	Subject    string    `json:"subject"`
	Body       string    `json:"body"`
	ReceivedAt time.Time `json:"received_at"`
	TraceID    string    `json:"trace_id,omitempty"`
}
