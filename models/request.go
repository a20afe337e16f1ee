package models

import "time"

// Request statuses. A request starts pending and moves to exactly one
// terminal state; approved additionally implies a Booking exists.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusDeclined = "declined"
)

// ContactRequest is a visitor's ask to use the space at a given date
// and time range. The request log is append-only: admins flip status,
// nothing is ever deleted in place.
type ContactRequest struct {
	RequestID     string    `json:"requestid" bson:"requestid"`
	Name          string    `json:"name" bson:"name"`
	Email         string    `json:"email" bson:"email"`
	Phone         string    `json:"phone,omitempty" bson:"phone,omitempty"`
	RequestedDate string    `json:"requested_date" bson:"requested_date"` // YYYY-MM-DD
	StartTime     string    `json:"start_time" bson:"start_time"`         // HH:MM
	EndTime       string    `json:"end_time" bson:"end_time"`             // HH:MM
	Purpose       string    `json:"purpose,omitempty" bson:"purpose,omitempty"`
	IsFlexible    bool      `json:"is_flexible" bson:"is_flexible"`
	AgreedToTerms bool      `json:"agreed_to_terms" bson:"agreed_to_terms"`
	GDPRConsent   bool      `json:"gdpr_consent" bson:"gdpr_consent"`
	Status        string    `json:"status" bson:"status"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
}
