package bookings

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/kenbiz25/manifestdublin/db"
	"github.com/kenbiz25/manifestdublin/globals"
	"github.com/kenbiz25/manifestdublin/middleware"
	"github.com/kenbiz25/manifestdublin/models"
	"github.com/kenbiz25/manifestdublin/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
)

func hmacSecret() []byte {
	if s := os.Getenv("BOOKING_HMAC_SECRET"); s != "" {
		return []byte(s)
	}
	return []byte("booking-ref-secret")
}

// SignedReference returns a tamper-evident payload for a booking:
// bookingID|date|signature.
func SignedReference(bookingID, bookingDate string) string {
	data := fmt.Sprintf("%s|%s", bookingID, bookingDate)
	h := hmac.New(sha256.New, hmacSecret())
	h.Write([]byte(data))
	sig := base64.StdEncoding.EncodeToString(h.Sum(nil))
	return fmt.Sprintf("%s|%s", data, sig)
}

// PrintConfirmation renders a downloadable PDF confirmation for a
// booking, with a signed QR reference. Owner or admin only.
func PrintConfirmation(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	bookingID := ps.ByName("id")
	if bookingID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "missing id")
		return
	}

	userID, _ := r.Context().Value(globals.UserIDKey).(string)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Missing token")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var booking models.Booking
	if err := db.BookingsCollection.FindOne(ctx, bson.M{"bookingid": bookingID}).Decode(&booking); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "booking not found")
		return
	}

	email, _ := CurrentUserEmail(r.Context())
	if email != booking.ClientEmail && !middleware.IsAdmin(r.Context(), userID) {
		utils.RespondWithError(w, http.StatusForbidden, "not your booking")
		return
	}

	qrPNG, err := qrcode.Encode(SignedReference(booking.BookingID, booking.BookingDate), qrcode.Medium, 256)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	purpose := booking.Purpose
	if purpose == "" {
		purpose = "Not specified"
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Booking Confirmation")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Reference: %s", booking.BookingID))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Name: %s", booking.ClientName))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Date: %s", booking.BookingDate))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Time: %s - %s", booking.StartTime, booking.EndTime))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Purpose: %s", purpose))
	pdf.Ln(12)

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 40, 40, 40, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=booking-%s.pdf", booking.BookingID))
	_, _ = w.Write(buf.Bytes())
}
