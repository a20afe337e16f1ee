package models

import "time"

// Booking is a confirmed reservation, created only as a side effect of
// approving a ContactRequest and never mutated afterwards.
type Booking struct {
	BookingID        string    `json:"bookingid" bson:"bookingid"`
	ContactRequestID string    `json:"contact_request_id" bson:"contact_request_id"`
	BookingDate      string    `json:"booking_date" bson:"booking_date"` // YYYY-MM-DD
	StartTime        string    `json:"start_time" bson:"start_time"`
	EndTime          string    `json:"end_time" bson:"end_time"`
	ClientName       string    `json:"client_name" bson:"client_name"`
	ClientEmail      string    `json:"client_email" bson:"client_email"`
	ClientPhone      string    `json:"client_phone,omitempty" bson:"client_phone,omitempty"`
	Purpose          string    `json:"purpose,omitempty" bson:"purpose,omitempty"`
	CreatedAt        time.Time `json:"created_at" bson:"created_at"`
}
