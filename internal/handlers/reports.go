package handlers

import (
	"net/http"
)

// handleCompleteEvent runs the completeness check and, if every required
// rating is in, generates and persists the final report. Returns the stored
// payload so the organizer sees exactly what later retrievals will serve.
func (h *Handlers) handleCompleteEvent(w http.ResponseWriter, r *http.Request) {
	eventID, err := parseIntParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req CompleteEventRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	payload, err := h.Report.Complete(r.Context(), eventID, req.RequestedBy)
	if err != nil {
		respondError(w, err)
		return
	}
	respondRaw(w, payload)
}

// handleGetReport serves the stored report verbatim
func (h *Handlers) handleGetReport(w http.ResponseWriter, r *http.Request) {
	eventID, err := parseIntParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	payload, err := h.Report.Report(r.Context(), eventID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondRaw(w, payload)
}
