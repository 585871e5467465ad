package handlers

import (
	"net/http"
)

// handleGetPagella returns the current pagella text and version
func (h *Handlers) handleGetPagella(w http.ResponseWriter, r *http.Request) {
	eventID, err := parseIntParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	pagella, err := h.Pagella.Get(r.Context(), eventID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, pagella)
}

// handleSavePagella saves a new pagella revision. The client must send the
// version it last read; a stale version yields a conflict so concurrent
// editors never silently overwrite each other.
func (h *Handlers) handleSavePagella(w http.ResponseWriter, r *http.Request) {
	eventID, err := parseIntParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req PagellaSaveRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	saved, err := h.Pagella.Save(r.Context(), eventID, req.ParticipantID, req.Text, req.Version)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, saved)
}
