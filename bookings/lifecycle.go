package bookings

import (
	"time"

	"github.com/kenbiz25/manifestdublin/models"
	"github.com/kenbiz25/manifestdublin/utils"
)

func genID() string {
	return utils.GenerateRandomDigitString(22)
}

// CanTransition reports whether a request status change is legal.
// pending is the only non-terminal state; there is no way back into it.
func CanTransition(from, to string) bool {
	if from != models.StatusPending {
		return false
	}
	return to == models.StatusApproved || to == models.StatusDeclined
}

// BookingFromRequest builds the confirmed booking for an approved
// request, copying date, times and contact fields verbatim.
func BookingFromRequest(req models.ContactRequest) models.Booking {
	return models.Booking{
		BookingID:        genID(),
		ContactRequestID: req.RequestID,
		BookingDate:      req.RequestedDate,
		StartTime:        req.StartTime,
		EndTime:          req.EndTime,
		ClientName:       req.Name,
		ClientEmail:      req.Email,
		ClientPhone:      req.Phone,
		Purpose:          req.Purpose,
		CreatedAt:        time.Now(),
	}
}

// Overlaps reports whether two same-day time ranges intersect. Times
// share the "HH:MM" format, so lexicographic comparison is enough.
func Overlaps(aStart, aEnd, bStart, bEnd string) bool {
	return aStart < bEnd && bStart < aEnd
}
