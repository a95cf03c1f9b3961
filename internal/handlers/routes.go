package handlers

import (
	"net/http"

	"eventsphere/internal/middleware"
	"eventsphere/internal/models"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// Router bundles the handlers the HTTP surface is built from
type Router struct {
	Events    *EventHandler
	Cart      *CartHandler
	Purchases *PurchaseHandler
	Analytics *AnalyticsHandler
	Admin     *AdminHandler
	Auth      *middleware.AuthMiddleware
}

// Routes builds the chi router for the application
func (rt *Router) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.LoggingMiddleware)
	r.Use(rt.Auth.LoadUser)

	// Public browsing
	r.Get("/events", rt.Events.ListEvents)
	r.Get("/events/{id}", rt.Events.GetEvent)
	r.Get("/categories", rt.Events.ListCategories)

	// Cart and checkout
	r.Route("/cart", func(r chi.Router) {
		r.Get("/", rt.Cart.ViewCart)
		r.Delete("/", rt.Cart.ClearCart)
		r.Post("/items", rt.Cart.AddItem)
		r.Put("/items/{eventID}", rt.Cart.UpdateQuantity)
		r.Delete("/items/{eventID}", rt.Cart.RemoveItem)
	})
	r.With(middleware.RequireAuth).Post("/checkout", rt.Cart.Checkout)

	// Purchase history and cancellation
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/purchases", rt.Purchases.ListPurchases)
		r.Get("/purchases/{id}", rt.Purchases.GetPurchase)
		r.Delete("/purchases/{id}", rt.Purchases.CancelPurchase)
	})

	// Organizer and admin management
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(models.RoleOrganizer, models.RoleAdmin))
		r.Post("/events", rt.Events.CreateEvent)
		r.Put("/events/{id}", rt.Events.UpdateEvent)
		r.Delete("/events/{id}", rt.Events.DeleteEvent)
		r.Get("/analytics/sales-by-category", rt.Analytics.TicketSalesByCategory)
		r.Get("/analytics/revenue-by-month", rt.Analytics.RevenueByMonth)
		r.Get("/analytics/top-events", rt.Analytics.TopEvents)
	})

	// Admin area
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.RequireRole(models.RoleAdmin))
		r.Get("/summary", rt.Admin.Summary)
		r.Get("/users", rt.Admin.ListUsers)
		r.Put("/users/{id}/role", rt.Admin.UpdateUserRole)
		r.Delete("/users/{id}", rt.Admin.DeactivateUser)
	})

	return r
}
