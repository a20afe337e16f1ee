package checklist

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/kenbiz25/manifestdublin/bookings"
	"github.com/kenbiz25/manifestdublin/db"
	"github.com/kenbiz25/manifestdublin/models"
	"github.com/kenbiz25/manifestdublin/utils"

	"github.com/go-playground/validator/v10"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Item is a single checklist line the client ticks off.
type Item struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Template is the facilities checklist, grouped by phase of use.
var Template = map[string][]Item{
	"before": {
		{ID: "arrived_on_time", Label: "Arrived on time"},
		{ID: "access_ok", Label: "Access was straightforward"},
		{ID: "space_as_expected", Label: "Space was as expected"},
	},
	"during": {
		{ID: "respected_noise", Label: "Respected noise levels"},
		{ID: "no_damage", Label: "No damage to property"},
		{ID: "followed_rules", Label: "Followed house rules"},
	},
	"after": {
		{ID: "cleaned_up", Label: "Cleaned up after use"},
		{ID: "toilet_clean", Label: "Toilet left clean"},
		{ID: "bins_emptied", Label: "Bins emptied if full"},
		{ID: "lights_off", Label: "Lights turned off"},
		{ID: "doors_locked", Label: "Doors locked"},
	},
}

type submission struct {
	BookingReference string                     `json:"booking_reference"`
	Name             string                     `json:"name" validate:"required,min=2"`
	Email            string                     `json:"email" validate:"required,email"`
	Date             string                     `json:"date" validate:"required,datetime=2006-01-02"`
	Responses        map[string]map[string]bool `json:"responses"`
	Comments         string                     `json:"comments"`
}

var validate = func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}()

func validateSubmission(s submission) map[string]string {
	s.Name = strings.TrimSpace(s.Name)
	s.Email = strings.TrimSpace(s.Email)

	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	fieldErrs := map[string]string{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			switch fe.Field() {
			case "name":
				fieldErrs["name"] = "Name is required"
			case "email":
				fieldErrs["email"] = "Valid email required"
			case "date":
				fieldErrs["date"] = "Date is required"
			}
		}
	}
	if len(fieldErrs) == 0 {
		return nil
	}
	return fieldErrs
}

// NormalizeResponses keeps only items the template knows, so arbitrary
// keys never reach storage. Missing items default to unticked.
func NormalizeResponses(in map[string]map[string]bool) map[string]map[string]bool {
	out := make(map[string]map[string]bool, len(Template))
	for category, items := range Template {
		out[category] = make(map[string]bool, len(items))
		for _, item := range items {
			out[category][item.ID] = in[category][item.ID]
		}
	}
	return out
}

// GetTemplate exposes the checklist structure for the form UI.
func GetTemplate(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"template": Template})
}

// Submit records a post-use checklist. Immutable once created.
func Submit(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input submission
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if fieldErrs := validateSubmission(input); fieldErrs != nil {
		utils.RespondWithJSON(w, http.StatusUnprocessableEntity, utils.M{"errors": fieldErrs})
		return
	}

	sub := models.ChecklistSubmission{
		SubmissionID:     utils.GenerateRandomDigitString(22),
		BookingReference: strings.TrimSpace(input.BookingReference),
		SubmittedByName:  strings.TrimSpace(input.Name),
		SubmittedByEmail: strings.ToLower(strings.TrimSpace(input.Email)),
		SubmissionDate:   input.Date,
		Responses:        NormalizeResponses(input.Responses),
		Comments:         strings.TrimSpace(input.Comments),
		CreatedAt:        time.Now(),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := db.ChecklistCollection.InsertOne(ctx, sub); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to save checklist")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"ok": true, "submission": sub})
}

// ListSubmissions returns all checklist submissions, newest first.
// Admin only.
func ListSubmissions(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cur, err := db.ChecklistCollection.Find(ctx, bson.M{},
		options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}
	defer cur.Close(ctx)

	var list []models.ChecklistSubmission
	if err := cur.All(ctx, &list); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"submissions": list})
}

// MySubmissions returns the current user's checklist submissions.
func MySubmissions(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	email, ok := bookings.CurrentUserEmail(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "unknown user")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cur, err := db.ChecklistCollection.Find(ctx, bson.M{"submitted_by_email": email},
		options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}
	defer cur.Close(ctx)

	var list []models.ChecklistSubmission
	if err := cur.All(ctx, &list); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"submissions": list})
}
