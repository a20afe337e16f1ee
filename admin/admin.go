package admin

import (
	"context"
	"net/http"
	"time"

	"github.com/kenbiz25/manifestdublin/db"
	"github.com/kenbiz25/manifestdublin/models"
	"github.com/kenbiz25/manifestdublin/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// GetOverview returns the counts the admin console header shows:
// requests by status, total bookings, checklist submissions.
//
// Endpoint: GET /api/admin/overview
func GetOverview(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	counts := map[string]int64{}
	for _, status := range []string{models.StatusPending, models.StatusApproved, models.StatusDeclined} {
		n, err := db.RequestsCollection.CountDocuments(ctx, bson.M{"status": status})
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "db error")
			return
		}
		counts[status] = n
	}

	bookingsCount, err := db.BookingsCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}
	checklistCount, err := db.ChecklistCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"requests":   counts,
		"bookings":   bookingsCount,
		"checklists": checklistCount,
	})
}
