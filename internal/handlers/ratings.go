package handlers

import (
	"net/http"

	"github.com/mbellini/tastevin/internal/models"
)

// handleSubmitRating records or replaces a participant's score for a wine.
// PUT semantics: resubmitting the same pair overwrites the previous score.
func (h *Handlers) handleSubmitRating(w http.ResponseWriter, r *http.Request) {
	eventID, err := parseIntParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req RatingSubmitRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	rating := models.Rating{
		EventID:       eventID,
		WineID:        req.WineID,
		ParticipantID: req.ParticipantID,
		Score:         req.Score,
	}

	if err := h.Rating.Submit(r.Context(), rating); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "Rating recorded")
}

// handleGetParticipantRatings returns the scores a participant has given so
// far, keyed by wine id
func (h *Handlers) handleGetParticipantRatings(w http.ResponseWriter, r *http.Request) {
	eventID, err := parseIntParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	participantID, err := parseIntParam(r, "participantID")
	if err != nil {
		respondError(w, err)
		return
	}

	ratings, err := h.Rating.ParticipantRatings(r.Context(), eventID, participantID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, ratings)
}

// handleGetCompletionStatus returns live voting progress including the
// per-participant missing sets
func (h *Handlers) handleGetCompletionStatus(w http.ResponseWriter, r *http.Request) {
	eventID, err := parseIntParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	status, err := h.Completeness.Status(r.Context(), eventID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, status)
}
