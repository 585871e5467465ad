package models

// Event lifecycle statuses
const (
	StatusRegistration = "registration"
	StatusVoting       = "voting"
	StatusCompleted    = "completed"
)

// Participant represents a registered taster
type Participant struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Editor bool   `json:"editor,omitempty"` // may edit the event pagella
}

// Event represents a single tasting session
type Event struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Code    string `json:"code"`
	Status  string `json:"status"`
	OwnerID int    `json:"owner_id"`
}

// WineEntry represents a wine submitted by a participant for an event
type WineEntry struct {
	ID       int     `json:"id"`
	EventID  int     `json:"event_id"`
	OwnerID  int     `json:"owner_id"`
	Name     string  `json:"name"`
	Producer string  `json:"producer,omitempty"`
	Year     int     `json:"year,omitempty"`
	Price    float64 `json:"price,omitempty"`
	Notes    string  `json:"notes,omitempty"`
}

// Rating is one participant's score for one wine in one event.
// Scores are multiples of 0.5 in [1.0, 10.0]; at most one rating exists
// per (wine, participant) pair and a resubmission overwrites the first.
type Rating struct {
	EventID       int     `json:"event_id"`
	WineID        int     `json:"wine_id"`
	ParticipantID int     `json:"participant_id"`
	Score         float64 `json:"score"`
}

// MissingVotes names a participant and the wines they still owe a rating for
type MissingVotes struct {
	ParticipantID   int      `json:"participant_id"`
	ParticipantName string   `json:"participant_name"`
	WineIDs         []int    `json:"wine_ids"`
	WineNames       []string `json:"wine_names"`
}

// CompletionStatus is the derived summary of whether all expected ratings
// exist. The aggregate counts are for display; IsComplete is driven by the
// per-participant missing sets.
type CompletionStatus struct {
	IsComplete        bool           `json:"is_complete"`
	TotalParticipants int            `json:"total_participants"`
	TotalWines        int            `json:"total_wines"`
	VotesReceived     int            `json:"votes_received"`
	ExpectedVotes     int            `json:"expected_votes"`
	MissingVotes      []MissingVotes `json:"missing_votes"`
}

// Pagella is the collaborative free-text tasting sheet for an event
type Pagella struct {
	EventID int    `json:"event_id"`
	Text    string `json:"text"`
	Version int    `json:"version"`
}

// WSMessage represents a WebSocket message
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}
