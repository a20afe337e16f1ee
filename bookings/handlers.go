package bookings

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/kenbiz25/manifestdublin/db"
	"github.com/kenbiz25/manifestdublin/globals"
	"github.com/kenbiz25/manifestdublin/models"
	"github.com/kenbiz25/manifestdublin/notify"
	"github.com/kenbiz25/manifestdublin/rdx"
	"github.com/kenbiz25/manifestdublin/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const bookedDatesCacheKey = "booked_dates"

// statusForUpdateErr maps a failed conditional status update to a
// response: no document means another actor won the pending race,
// anything else is a store failure.
func statusForUpdateErr(err error) (int, string) {
	if err == mongo.ErrNoDocuments {
		return http.StatusConflict, "request is not pending"
	}
	return http.StatusInternalServerError, "db error"
}

// ApproveRequest moves a pending request to approved and creates the
// confirmed booking. The status flip is a conditional update, so of two
// concurrent approvals exactly one wins and the other gets a conflict.
func ApproveRequest(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := ps.ByName("id")
	if requestID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "missing id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var req models.ContactRequest
	if err := db.RequestsCollection.FindOne(ctx, bson.M{"requestid": requestID}).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "request not found")
		return
	}
	if !CanTransition(req.Status, models.StatusApproved) {
		utils.RespondWithError(w, http.StatusConflict, "request is not pending")
		return
	}

	// Reject approvals that would clash with an existing booking on the
	// same date. The submission-time check only blocks whole dates; this
	// is the interval-aware gate at the point a booking becomes real.
	// TODO: run the gate, status flip and booking insert in a mongo
	// session so racing approvals of two overlapping requests cannot
	// both land.
	conflict, err := hasOverlap(ctx, req.RequestedDate, req.StartTime, req.EndTime)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}
	if conflict {
		utils.RespondWithError(w, http.StatusConflict, "time range overlaps an existing booking")
		return
	}

	res := db.RequestsCollection.FindOneAndUpdate(ctx,
		bson.M{"requestid": requestID, "status": models.StatusPending},
		bson.M{"$set": bson.M{"status": models.StatusApproved}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var updated models.ContactRequest
	if err := res.Decode(&updated); err != nil {
		code, msg := statusForUpdateErr(err)
		utils.RespondWithError(w, code, msg)
		return
	}

	booking := BookingFromRequest(updated)
	if _, err := db.BookingsCollection.InsertOne(ctx, booking); err != nil {
		// Request is approved but the booking insert failed; surface the
		// error so an admin can retry by hand.
		log.Printf("booking insert failed for request %s: %v", requestID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to create booking")
		return
	}

	invalidateBookedDates()
	PublishEvent("request-approved", booking)

	// Best-effort emails; failures are logged inside notify and never
	// block the approval.
	notify.Emit(notify.BookingEmail{
		Template:    notify.TemplateClientConfirmation,
		ClientName:  booking.ClientName,
		ClientEmail: booking.ClientEmail,
		BookingDate: booking.BookingDate,
		StartTime:   booking.StartTime,
		EndTime:     booking.EndTime,
		Purpose:     booking.Purpose,
	})
	notify.Emit(notify.BookingEmail{
		Template:    notify.TemplateAdminAlert,
		ClientName:  booking.ClientName,
		ClientEmail: booking.ClientEmail,
		BookingDate: booking.BookingDate,
		StartTime:   booking.StartTime,
		EndTime:     booking.EndTime,
		Purpose:     booking.Purpose,
	})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true, "request": updated, "booking": booking})
}

// DeclineRequest moves a pending request to declined. Terminal.
func DeclineRequest(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := ps.ByName("id")
	if requestID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "missing id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res := db.RequestsCollection.FindOneAndUpdate(ctx,
		bson.M{"requestid": requestID, "status": models.StatusPending},
		bson.M{"$set": bson.M{"status": models.StatusDeclined}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var updated models.ContactRequest
	if err := res.Decode(&updated); err != nil {
		code, msg := statusForUpdateErr(err)
		utils.RespondWithError(w, code, msg)
		return
	}

	PublishEvent("request-declined", utils.M{"requestid": updated.RequestID})
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true, "request": updated})
}

func hasOverlap(ctx context.Context, date, start, end string) (bool, error) {
	cur, err := db.BookingsCollection.Find(ctx, bson.M{"booking_date": date})
	if err != nil {
		return false, err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var b models.Booking
		if err := cur.Decode(&b); err != nil {
			continue
		}
		if Overlaps(start, end, b.StartTime, b.EndTime) {
			return true, nil
		}
	}
	return false, cur.Err()
}

// ListBookings returns all confirmed bookings, newest first.
func ListBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cur, err := db.BookingsCollection.Find(ctx, bson.M{},
		options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}
	defer cur.Close(ctx)

	var list []models.Booking
	if err := cur.All(ctx, &list); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"bookings": list})
}

// MyBookings returns the current user's bookings, newest first.
func MyBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	email, ok := CurrentUserEmail(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "unknown user")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cur, err := db.BookingsCollection.Find(ctx, bson.M{"client_email": email},
		options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}
	defer cur.Close(ctx)

	var list []models.Booking
	if err := cur.All(ctx, &list); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"bookings": list})
}

// GetBookedDates returns the de-duplicated set of confirmed booking
// dates. Feeds the date picker; not an authoritative overlap check.
func GetBookedDates(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	dates, err := BookedDates(ctx)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"dates": dates})
}

// BookedDates resolves the booked-date set, consulting the redis cache
// first. The cache is invalidated whenever a booking is created.
func BookedDates(ctx context.Context) ([]string, error) {
	if cached, err := rdx.RdxGet(bookedDatesCacheKey); err == nil {
		var dates []string
		if err := json.Unmarshal([]byte(cached), &dates); err == nil {
			return dates, nil
		}
	}

	raw, err := db.BookingsCollection.Distinct(ctx, "booking_date", bson.M{})
	if err != nil {
		return nil, err
	}

	dates := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			dates = append(dates, s)
		}
	}

	if data, err := json.Marshal(dates); err == nil {
		if err := rdx.RdxSetExpiry(bookedDatesCacheKey, string(data), 5*time.Minute); err != nil {
			log.Printf("booked-dates cache write failed: %v", err)
		}
	}
	return dates, nil
}

func invalidateBookedDates() {
	if err := rdx.RdxDel(bookedDatesCacheKey); err != nil {
		log.Printf("booked-dates cache invalidation failed: %v", err)
	}
}

// CurrentUserEmail resolves the authenticated user's email from the
// request context.
func CurrentUserEmail(ctx context.Context) (string, bool) {
	userID, _ := ctx.Value(globals.UserIDKey).(string)
	if userID == "" {
		return "", false
	}

	dbCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var user models.User
	if err := db.UserCollection.FindOne(dbCtx, bson.M{"userid": userID}).Decode(&user); err != nil {
		return "", false
	}
	return user.Email, true
}
