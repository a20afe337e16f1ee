package requests

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/kenbiz25/manifestdublin/bookings"
	"github.com/kenbiz25/manifestdublin/db"
	"github.com/kenbiz25/manifestdublin/models"
	"github.com/kenbiz25/manifestdublin/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SubmitRequest validates and persists a visitor's booking request as
// pending. The request log is append-only.
func SubmitRequest(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var draft Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	bookedList, err := bookings.BookedDates(ctx)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}
	booked := make(map[string]bool, len(bookedList))
	for _, d := range bookedList {
		booked[d] = true
	}

	normalized, fieldErrs := Validate(draft, booked, time.Now())
	if fieldErrs != nil {
		utils.RespondWithJSON(w, http.StatusUnprocessableEntity, utils.M{"errors": fieldErrs})
		return
	}

	req := models.ContactRequest{
		RequestID:     utils.GenerateRandomDigitString(22),
		Name:          normalized.Name,
		Email:         normalized.Email,
		Phone:         normalized.Phone,
		RequestedDate: normalized.RequestedDate,
		StartTime:     normalized.StartTime,
		EndTime:       normalized.EndTime,
		Purpose:       normalized.Purpose,
		IsFlexible:    normalized.IsFlexible,
		AgreedToTerms: normalized.AgreedToTerms,
		GDPRConsent:   normalized.GDPRConsent,
		Status:        models.StatusPending,
		CreatedAt:     time.Now(),
	}

	if _, err := db.RequestsCollection.InsertOne(ctx, req); err != nil {
		log.Printf("request insert failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to save request")
		return
	}

	bookings.PublishEvent("request-submitted", utils.M{
		"requestid":      req.RequestID,
		"requested_date": req.RequestedDate,
	})

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"ok": true, "request": req})
}

// ListRequests returns every request, newest first. Admin only.
func ListRequests(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cur, err := db.RequestsCollection.Find(ctx, bson.M{},
		options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}
	defer cur.Close(ctx)

	var list []models.ContactRequest
	if err := cur.All(ctx, &list); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"requests": list})
}

// MyRequests returns the current user's requests, newest first.
func MyRequests(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	email, ok := bookings.CurrentUserEmail(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "unknown user")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cur, err := db.RequestsCollection.Find(ctx, bson.M{"email": email},
		options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}
	defer cur.Close(ctx)

	var list []models.ContactRequest
	if err := cur.All(ctx, &list); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"requests": list})
}

// GetTimeSlots exposes the bookable slot grid for the form UI.
func GetTimeSlots(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"slots": TimeSlots})
}
