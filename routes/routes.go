package routes

import (
	"net/http"

	"github.com/kenbiz25/manifestdublin/admin"
	"github.com/kenbiz25/manifestdublin/auth"
	"github.com/kenbiz25/manifestdublin/bookings"
	"github.com/kenbiz25/manifestdublin/checklist"
	"github.com/kenbiz25/manifestdublin/gallery"
	"github.com/kenbiz25/manifestdublin/middleware"
	"github.com/kenbiz25/manifestdublin/pricing"
	"github.com/kenbiz25/manifestdublin/ratelim"
	"github.com/kenbiz25/manifestdublin/requests"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/gallerypic/*filepath", http.Dir("static/gallerypic"))
}

func AddAuthRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/auth/register", rl.Limit(auth.Register))
	router.POST("/api/auth/login", rl.Limit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.LogoutUser))
	router.POST("/api/auth/token/refresh", rl.Limit(auth.RefreshToken))
	router.GET("/api/auth/me", middleware.Authenticate(auth.Me))
}

func AddRequestRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/requests", rl.Limit(middleware.OptionalAuth(requests.SubmitRequest)))
	router.GET("/api/requests", middleware.RequireAdmin(requests.ListRequests))
	router.GET("/api/requests/mine", middleware.Authenticate(requests.MyRequests))
	router.GET("/api/timeslots", requests.GetTimeSlots)
}

func AddBookingRoutes(router *httprouter.Router) {
	router.POST("/api/admin/requests/:id/approve", middleware.RequireAdmin(bookings.ApproveRequest))
	router.POST("/api/admin/requests/:id/decline", middleware.RequireAdmin(bookings.DeclineRequest))
	router.GET("/api/bookings", middleware.RequireAdmin(bookings.ListBookings))
	router.GET("/api/bookings/mine", middleware.Authenticate(bookings.MyBookings))
	router.GET("/api/bookings/dates", bookings.GetBookedDates)
	router.GET("/api/booking/:id/confirmation", middleware.Authenticate(bookings.PrintConfirmation))
}

func AddPricingRoutes(router *httprouter.Router) {
	router.GET("/api/pricing/rule", pricing.GetActiveRule)
	router.POST("/api/pricing/quote", pricing.GetQuote)
	router.PUT("/api/pricing/rule", middleware.RequireAdmin(pricing.UpdateRule))
}

func AddChecklistRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/checklist/template", checklist.GetTemplate)
	router.POST("/api/checklist", rl.Limit(checklist.Submit))
	router.GET("/api/checklist", middleware.RequireAdmin(checklist.ListSubmissions))
	router.GET("/api/checklist/mine", middleware.Authenticate(checklist.MySubmissions))
}

func AddGalleryRoutes(router *httprouter.Router) {
	router.GET("/api/gallery", gallery.List)
	router.POST("/api/gallery", middleware.RequireAdmin(gallery.Upload))
	router.DELETE("/api/gallery/:id", middleware.RequireAdmin(gallery.Delete))
}

func AddAdminRoutes(router *httprouter.Router) {
	router.GET("/api/admin/overview", middleware.RequireAdmin(admin.GetOverview))
}

func AddFeedRoutes(router *httprouter.Router, feed *bookings.Feed) {
	router.GET("/ws/admin", feed.HandleWS)
}
