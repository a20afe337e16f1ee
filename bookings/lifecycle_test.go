package bookings

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kenbiz25/manifestdublin/models"

	"go.mongodb.org/mongo-driver/mongo"
)

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(models.StatusPending, models.StatusApproved))
	assert.True(t, CanTransition(models.StatusPending, models.StatusDeclined))

	// Terminal states never move again.
	assert.False(t, CanTransition(models.StatusApproved, models.StatusDeclined))
	assert.False(t, CanTransition(models.StatusApproved, models.StatusPending))
	assert.False(t, CanTransition(models.StatusDeclined, models.StatusApproved))
	assert.False(t, CanTransition(models.StatusDeclined, models.StatusPending))

	assert.False(t, CanTransition(models.StatusPending, models.StatusPending))
	assert.False(t, CanTransition(models.StatusPending, "cancelled"))
	assert.False(t, CanTransition("", models.StatusApproved))
}

func TestBookingFromRequest(t *testing.T) {
	req := models.ContactRequest{
		RequestID:     "1234567890123456789012",
		Name:          "Sarah O'Brien",
		Email:         "sarah@example.com",
		Phone:         "+353 87 123 4567",
		RequestedDate: "2026-04-01",
		StartTime:     "09:00",
		EndTime:       "12:00",
		Purpose:       "Community workshop",
		Status:        models.StatusPending,
	}

	b := BookingFromRequest(req)

	assert.NotEmpty(t, b.BookingID)
	assert.Len(t, b.BookingID, 22)
	assert.Equal(t, req.RequestID, b.ContactRequestID)
	assert.Equal(t, req.RequestedDate, b.BookingDate)
	assert.Equal(t, req.StartTime, b.StartTime)
	assert.Equal(t, req.EndTime, b.EndTime)
	assert.Equal(t, req.Name, b.ClientName)
	assert.Equal(t, req.Email, b.ClientEmail)
	assert.Equal(t, req.Phone, b.ClientPhone)
	assert.Equal(t, req.Purpose, b.Purpose)
	assert.False(t, b.CreatedAt.IsZero())
}

func TestStatusForUpdateErr(t *testing.T) {
	// Losing the pending race is a conflict.
	code, msg := statusForUpdateErr(mongo.ErrNoDocuments)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "request is not pending", msg)

	// Anything else is a store failure, not a state conflict.
	code, msg = statusForUpdateErr(errors.New("connection reset"))
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "db error", msg)
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name         string
		aStart, aEnd string
		bStart, bEnd string
		want         bool
	}{
		{"identical", "09:00", "12:00", "09:00", "12:00", true},
		{"partial", "09:00", "12:00", "11:00", "14:00", true},
		{"contained", "09:00", "17:00", "10:00", "11:00", true},
		{"back to back", "09:00", "12:00", "12:00", "14:00", false},
		{"disjoint", "07:00", "08:00", "12:00", "14:00", false},
		{"touching start", "12:00", "14:00", "09:00", "12:00", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, Overlaps(c.aStart, c.aEnd, c.bStart, c.bEnd))
			assert.Equal(t, c.want, Overlaps(c.bStart, c.bEnd, c.aStart, c.aEnd))
		})
	}
}
