package pricing

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/kenbiz25/manifestdublin/db"
	"github.com/kenbiz25/manifestdublin/models"
	"github.com/kenbiz25/manifestdublin/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ActiveRule fetches the active pricing rule: is_active with the most
// recent effective_from. Falls back to the published defaults when no
// rule document exists yet.
func ActiveRule(ctx context.Context) (models.PricingRule, error) {
	var rule models.PricingRule
	err := db.PricingCollection.FindOne(ctx,
		bson.M{"is_active": true},
		options.FindOne().SetSort(bson.M{"effective_from": -1}),
	).Decode(&rule)
	if err == mongo.ErrNoDocuments {
		return models.DefaultPricingRule(), nil
	}
	if err != nil {
		return models.PricingRule{}, err
	}
	return rule, nil
}

// GetActiveRule returns the rule the quote calculator runs on.
func GetActiveRule(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	rule, err := ActiveRule(ctx)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"rule": rule})
}

// GetQuote computes an instant quote. No persistence.
func GetQuote(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		StartTime   string `json:"start_time"`
		EndTime     string `json:"end_time"`
		IsFullDay   bool   `json:"is_full_day"`
		RepeatCount int    `json:"repeat_count"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	rule, err := ActiveRule(ctx)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}

	quote, err := Calculate(input.StartTime, input.EndTime, input.IsFullDay, input.RepeatCount, rule)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"quote": quote})
}

// UpdateRule installs a new pricing rule and retires the previous one.
// Admin only.
func UpdateRule(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var rule models.PricingRule
	if err := json.NewDecoder(r.Body).Decode(&rule); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if rule.HourlyRateEur <= 0 || rule.FullDayRateEur <= 0 || rule.FullDayHours <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "rates and full-day hours must be positive")
		return
	}
	if rule.DepositPercent < 0 || rule.DepositPercent > 100 || rule.DiscountPercent < 0 || rule.DiscountPercent > 100 {
		utils.RespondWithError(w, http.StatusBadRequest, "percentages must be between 0 and 100")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	// Retire whatever is currently active, then install the new rule.
	if _, err := db.PricingCollection.UpdateMany(ctx,
		bson.M{"is_active": true},
		bson.M{"$set": bson.M{"is_active": false}},
	); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}

	rule.RuleID = utils.GenerateRandomDigitString(22)
	rule.IsActive = true
	if rule.EffectiveFrom.IsZero() {
		rule.EffectiveFrom = time.Now()
	}

	if _, err := db.PricingCollection.InsertOne(ctx, rule); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true, "rule": rule})
}
