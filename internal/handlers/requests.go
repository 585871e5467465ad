package handlers

// ParticipantCreateRequest represents a request to register a participant
type ParticipantCreateRequest struct {
	Name string `json:"name"`
}

// ParticipantEditorRequest represents a request to change the editor role
type ParticipantEditorRequest struct {
	Editor bool `json:"editor"`
}

// EventCreateRequest represents a request to create an event
type EventCreateRequest struct {
	Name    string `json:"name"`
	OwnerID int    `json:"owner_id"`
}

// LoginRequest represents an organizer PIN login
type LoginRequest struct {
	PIN string `json:"pin"`
}

// WineCreateRequest represents a request to submit a wine
type WineCreateRequest struct {
	OwnerID  int     `json:"owner_id"`
	Name     string  `json:"name"`
	Producer string  `json:"producer,omitempty"`
	Year     int     `json:"year,omitempty"`
	Price    float64 `json:"price,omitempty"`
	Notes    string  `json:"notes,omitempty"`
}

// WineUpdateRequest represents a request to update a wine's attributes
type WineUpdateRequest struct {
	Name     string  `json:"name"`
	Producer string  `json:"producer,omitempty"`
	Year     int     `json:"year,omitempty"`
	Price    float64 `json:"price,omitempty"`
	Notes    string  `json:"notes,omitempty"`
}

// RatingSubmitRequest represents a rating submission
type RatingSubmitRequest struct {
	WineID        int     `json:"wine_id"`
	ParticipantID int     `json:"participant_id"`
	Score         float64 `json:"score"`
}

// CompleteEventRequest represents a request to complete an event
type CompleteEventRequest struct {
	RequestedBy int `json:"requested_by"`
}

// PagellaSaveRequest represents a pagella autosave
type PagellaSaveRequest struct {
	ParticipantID int    `json:"participant_id"`
	Text          string `json:"text"`
	Version       int    `json:"version"`
}
