package mq

import "time"

// FollowupQueuedPayload announces that a follow-up email was queued for
// delivery by an outbound mailer.
// Routing key: email.followup.queued
type FollowupQueuedPayload struct {
	EmailID  string    `json:"email_id"`
	ToEmail  string    `json:"to_email"`
	Subject  string    `json:"subject"`
	QueuedBy string    `json:"queued_by"`
	QueuedAt time.Time `json:"queued_at"`
}
