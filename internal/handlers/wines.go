package handlers

import (
	"net/http"

	"github.com/mbellini/tastevin/internal/models"
)

// handleSubmitWine registers a wine for an event
func (h *Handlers) handleSubmitWine(w http.ResponseWriter, r *http.Request) {
	eventID, err := parseIntParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req WineCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	wine := models.WineEntry{
		EventID:  eventID,
		OwnerID:  req.OwnerID,
		Name:     req.Name,
		Producer: req.Producer,
		Year:     req.Year,
		Price:    req.Price,
		Notes:    req.Notes,
	}

	created, err := h.Wine.Submit(r.Context(), wine)
	if err != nil {
		respondError(w, err)
		return
	}

	respondCreated(w, created)
}

// handleListWines lists the wines entered for an event
func (h *Handlers) handleListWines(w http.ResponseWriter, r *http.Request) {
	eventID, err := parseIntParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	wines, err := h.Wine.ListForEvent(r.Context(), eventID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, wines)
}

// handleUpdateWine modifies a wine's attributes while registration is open
func (h *Handlers) handleUpdateWine(w http.ResponseWriter, r *http.Request) {
	id, err := parseIntParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req WineUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	existing, err := h.Wine.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	existing.Name = req.Name
	existing.Producer = req.Producer
	existing.Year = req.Year
	existing.Price = req.Price
	existing.Notes = req.Notes

	if err := h.Wine.Update(r.Context(), *existing); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, existing)
}

// handleDeleteWine withdraws a wine while registration is open
func (h *Handlers) handleDeleteWine(w http.ResponseWriter, r *http.Request) {
	id, err := parseIntParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.Wine.Delete(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondDeleted(w)
}
