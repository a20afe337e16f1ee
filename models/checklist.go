package models

import "time"

// ChecklistSubmission records a client's post-use facilities checklist.
// Responses map checklist category ("before", "during", "after") to
// item id to ticked/unticked. Immutable once created.
type ChecklistSubmission struct {
	SubmissionID     string                     `json:"submissionid" bson:"submissionid"`
	BookingReference string                     `json:"booking_reference,omitempty" bson:"booking_reference,omitempty"`
	SubmittedByName  string                     `json:"submitted_by_name" bson:"submitted_by_name"`
	SubmittedByEmail string                     `json:"submitted_by_email" bson:"submitted_by_email"`
	SubmissionDate   string                     `json:"submission_date" bson:"submission_date"` // YYYY-MM-DD
	Responses        map[string]map[string]bool `json:"responses" bson:"responses"`
	Comments         string                     `json:"comments,omitempty" bson:"comments,omitempty"`
	CreatedAt        time.Time                  `json:"created_at" bson:"created_at"`
}
