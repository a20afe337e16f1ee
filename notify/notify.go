package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/smtp"
	"os"

	"github.com/kenbiz25/manifestdublin/rdx"
)

const channel = "booking-emails"

// Notification templates.
const (
	TemplateClientConfirmation = "booking-confirmation"
	TemplateAdminAlert         = "admin-alert"
)

// BookingEmail carries the fields the email templates need.
type BookingEmail struct {
	Template    string `json:"template"`
	ClientName  string `json:"client_name"`
	ClientEmail string `json:"client_email"`
	BookingDate string `json:"booking_date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Purpose     string `json:"purpose,omitempty"`
}

// Emit publishes a booking email event to Redis. Delivery is
// fire-and-forget: failures are logged, never returned.
func Emit(e BookingEmail) {
	data, err := json.Marshal(e)
	if err != nil {
		log.Printf("[notify] failed to marshal event: %v", err)
		return
	}
	if err := rdx.Conn.Publish(context.Background(), channel, data).Err(); err != nil {
		log.Printf("[notify] failed to publish event: %v", err)
	}
}

// StartMailWorker consumes booking email events and delivers them over
// SMTP. Runs for the lifetime of the process.
func StartMailWorker() {
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, channel)
	ch := sub.Channel()

	log.Println("[notify] mail worker listening for booking events...")

	for msg := range ch {
		var e BookingEmail
		if err := json.Unmarshal([]byte(msg.Payload), &e); err != nil {
			log.Printf("[notify] failed to parse event: %v", err)
			continue
		}
		if err := sendMail(e); err != nil {
			log.Printf("[notify] send failed for %s: %v", e.Template, err)
		}
	}
}

func sendMail(e BookingEmail) error {
	host := os.Getenv("SMTP_HOST")
	port := os.Getenv("SMTP_PORT")
	from := os.Getenv("SMTP_FROM")
	pass := os.Getenv("SMTP_PASS")
	if host == "" || from == "" {
		// Not configured: a no-op, not an error.
		log.Printf("[notify] SMTP not configured, skipping %s email", e.Template)
		return nil
	}
	if port == "" {
		port = "587"
	}

	purpose := e.Purpose
	if purpose == "" {
		purpose = "Not specified"
	}

	var to, msg string
	switch e.Template {
	case TemplateClientConfirmation:
		to = e.ClientEmail
		msg = fmt.Sprintf("Subject: Your booking is confirmed\n\nHi %s,\n\nYour booking on %s from %s to %s is confirmed.\nPurpose: %s\n\nSee you soon!",
			e.ClientName, e.BookingDate, e.StartTime, e.EndTime, purpose)
	case TemplateAdminAlert:
		to = os.Getenv("ADMIN_EMAIL")
		if to == "" {
			log.Println("[notify] ADMIN_EMAIL not set, skipping admin alert")
			return nil
		}
		msg = fmt.Sprintf("Subject: New booking confirmed\n\n%s (%s) booked %s from %s to %s.\nPurpose: %s",
			e.ClientName, e.ClientEmail, e.BookingDate, e.StartTime, e.EndTime, purpose)
	default:
		return fmt.Errorf("unknown template %q", e.Template)
	}

	auth := smtp.PlainAuth("", from, pass, host)
	return smtp.SendMail(host+":"+port, auth, from, []string{to}, []byte(msg))
}
