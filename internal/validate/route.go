package validate

// Status is the overall validation outcome for one email.
type Status string

const (
	StatusPass        Status = "PASS"
	StatusNeedsReview Status = "NEEDS_REVIEW"
	StatusFail        Status = "FAIL"
)

// Queue is the review queue an email is routed to. Each Status maps to
// exactly one Queue.
type Queue string

const (
	QueueQuickApproval  Queue = "quick_approval"
	QueueDetailedReview Queue = "detailed_review"
	QueueRejected       Queue = "rejected"
)

// Routing is the status/queue pair produced by Route.
type Routing struct {
	Status Status `json:"validation_status"`
	Queue  Queue  `json:"queue_type"`
}

// Route decides whether a human ever sees the email. All four field
// validities weigh equally: any single invalid field forces FAIL regardless
// of existence. When the fields are valid, account existence alone decides
// between auto-approval and detailed review.
func Route(sapOK, nameOK, emailOK, phoneOK, exists bool) Routing {
	if !(sapOK && nameOK && emailOK && phoneOK) {
		return Routing{Status: StatusFail, Queue: QueueRejected}
	}
	if exists {
		return Routing{Status: StatusPass, Queue: QueueQuickApproval}
	}
	return Routing{Status: StatusNeedsReview, Queue: QueueDetailedReview}
}
