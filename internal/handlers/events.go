package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mbellini/tastevin/internal/auth"
)

// handleCreateEvent creates a new event; the response includes the organizer
// PIN, which is never disclosed again
func (h *Handlers) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	var req EventCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	created, err := h.Event.CreateEvent(r.Context(), req.Name, req.OwnerID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondCreated(w, created)
}

// handleGetEvent returns an event by id
func (h *Handlers) handleGetEvent(w http.ResponseWriter, r *http.Request) {
	id, err := parseIntParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	event, err := h.Event.GetEvent(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, event)
}

// handleGetEventByCode returns an event by its join code
func (h *Handlers) handleGetEventByCode(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if code == "" {
		respondError(w, BadRequest("Missing code parameter"))
		return
	}

	event, err := h.Event.GetEventByCode(r.Context(), code)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, event)
}

// handleEventQR serves the event join link as a QR code PNG
func (h *Handlers) handleEventQR(w http.ResponseWriter, r *http.Request) {
	id, err := parseIntParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	png, err := h.Event.GenerateJoinQR(r.Context(), id, h.BaseURL)
	if err != nil {
		respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(png)
}

// handleOrganizerLogin validates the event PIN and issues an organizer session
func (h *Handlers) handleOrganizerLogin(w http.ResponseWriter, r *http.Request) {
	id, err := parseIntParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if err := h.Event.VerifyPIN(r.Context(), id, req.PIN); err != nil {
		respondError(w, err)
		return
	}

	token := h.Auth.CreateSession(id)
	auth.SetSessionCookie(w, token)
	respondSuccess(w, "Logged in")
}

// handleOrganizerLogout invalidates the organizer session
func (h *Handlers) handleOrganizerLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(auth.CookieName); err == nil {
		h.Auth.Logout(cookie.Value)
	}
	auth.ClearSessionCookie(w)
	respondSuccess(w, "Logged out")
}

// handleOpenVoting transitions an event from registration to voting
func (h *Handlers) handleOpenVoting(w http.ResponseWriter, r *http.Request) {
	id, err := parseIntParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.Event.OpenVoting(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "Voting opened")
}
