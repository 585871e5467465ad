package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// conditionalHTTPLogger only logs HTTP requests when HTTP logging is enabled
func (h *Handlers) conditionalHTTPLogger(next http.Handler) http.Handler {
	logger := middleware.Logger(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.Log != nil && h.Log.IsHTTPLoggingEnabled() {
			logger.ServeHTTP(w, r)
		} else {
			next.ServeHTTP(w, r)
		}
	})
}

// Router returns a configured chi router with all routes
func (h *Handlers) Router() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.conditionalHTTPLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RedirectSlashes)
	r.Use(middleware.Timeout(60 * time.Second))

	// WebSocket
	if h.Hub != nil {
		r.Get("/ws", h.Hub.ServeWs)
	}

	// Participants
	r.Post("/api/participants", h.handleRegisterParticipant)
	r.Get("/api/participants", h.handleListParticipants)
	r.Get("/api/participants/{id}", h.handleGetParticipant)
	r.Put("/api/participants/{id}/editor", h.handleSetParticipantEditor)

	// Events
	r.Post("/api/events", h.handleCreateEvent)
	r.Get("/api/events/{id}", h.handleGetEvent)
	r.Get("/api/events/code/{code}", h.handleGetEventByCode)
	r.Get("/api/events/{id}/qr", h.handleEventQR)
	r.Post("/api/events/{id}/login", h.handleOrganizerLogin)
	r.Post("/api/events/{id}/logout", h.handleOrganizerLogout)

	// Wines
	r.Post("/api/events/{id}/wines", h.handleSubmitWine)
	r.Get("/api/events/{id}/wines", h.handleListWines)
	r.Put("/api/wines/{id}", h.handleUpdateWine)
	r.Delete("/api/wines/{id}", h.handleDeleteWine)

	// Ratings & progress (safe to poll frequently)
	r.Put("/api/events/{id}/ratings", h.handleSubmitRating)
	r.Get("/api/events/{id}/ratings/{participantID}", h.handleGetParticipantRatings)
	r.Get("/api/events/{id}/status", h.handleGetCompletionStatus)

	// Reports; retrieval is public once the report exists
	r.Get("/api/events/{id}/report", h.handleGetReport)

	// Pagella
	r.Get("/api/events/{id}/pagella", h.handleGetPagella)
	r.Put("/api/events/{id}/pagella", h.handleSavePagella)

	// Organizer API (session-scoped to the event)
	r.Group(func(r chi.Router) {
		r.Use(h.Auth.RequireOrganizerAPI)
		r.Post("/api/events/{id}/open", h.handleOpenVoting)
		r.Post("/api/events/{id}/complete", h.handleCompleteEvent)
	})

	return r
}
