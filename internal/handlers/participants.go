package handlers

import (
	"net/http"
)

// handleRegisterParticipant registers a new participant
func (h *Handlers) handleRegisterParticipant(w http.ResponseWriter, r *http.Request) {
	var req ParticipantCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	participant, err := h.Participant.Register(r.Context(), req.Name)
	if err != nil {
		respondError(w, err)
		return
	}

	respondCreated(w, participant)
}

// handleListParticipants returns all registered participants
func (h *Handlers) handleListParticipants(w http.ResponseWriter, r *http.Request) {
	participants, err := h.Participant.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, participants)
}

// handleGetParticipant returns a participant by id
func (h *Handlers) handleGetParticipant(w http.ResponseWriter, r *http.Request) {
	id, err := parseIntParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	participant, err := h.Participant.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, participant)
}

// handleSetParticipantEditor grants or revokes the pagella editor role
func (h *Handlers) handleSetParticipantEditor(w http.ResponseWriter, r *http.Request) {
	id, err := parseIntParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req ParticipantEditorRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if err := h.Participant.SetEditor(r.Context(), id, req.Editor); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "Editor role updated")
}
