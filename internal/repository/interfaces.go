package repository

import (
	"context"
	"encoding/json"

	"github.com/mbellini/tastevin/internal/models"
)

// ParticipantRepository defines participant data operations
type ParticipantRepository interface {
	CreateParticipant(ctx context.Context, name string) (int64, error)
	GetParticipant(ctx context.Context, id int) (*models.Participant, error)
	ListParticipants(ctx context.Context) ([]models.Participant, error)
	SetParticipantEditor(ctx context.Context, id int, editor bool) error
	// ListEventParticipants returns the distinct owners of wines in an event.
	// A participant counts only if they contributed at least one wine.
	ListEventParticipants(ctx context.Context, eventID int) ([]models.Participant, error)
}

// EventRepository defines event data operations
type EventRepository interface {
	CreateEvent(ctx context.Context, name, code, pin string, ownerID int) (int64, error)
	GetEvent(ctx context.Context, id int) (*models.Event, error)
	GetEventByCode(ctx context.Context, code string) (*models.Event, error)
	GetEventPIN(ctx context.Context, id int) (string, error)
	SetEventStatus(ctx context.Context, id int, status string) error
}

// WineRepository defines wine entry data operations
type WineRepository interface {
	CreateWine(ctx context.Context, wine models.WineEntry) (int64, error)
	GetWine(ctx context.Context, id int) (*models.WineEntry, error)
	ListEventWines(ctx context.Context, eventID int) ([]models.WineEntry, error)
	UpdateWine(ctx context.Context, wine models.WineEntry) error
	DeleteWine(ctx context.Context, id int) error
}

// RatingRepository defines rating data operations.
// Scores are stored as integer tenths; at most one rating exists per
// (wine, participant) pair and a resubmission overwrites the prior score.
type RatingRepository interface {
	SaveRating(ctx context.Context, eventID, wineID, participantID, scoreTenths int) error
	ListEventRatings(ctx context.Context, eventID int) ([]models.Rating, error)
	GetParticipantRatings(ctx context.Context, eventID, participantID int) (map[int]float64, error)
	CountEventRatings(ctx context.Context, eventID int) (int, error)
}

// ReportRepository defines report data operations
type ReportRepository interface {
	// CreateReport persists the report payload and flips the event to
	// completed in a single transaction. Returns ErrDuplicate if a report
	// already exists for the event.
	CreateReport(ctx context.Context, eventID int, payload []byte, generatedBy int) error
	GetReport(ctx context.Context, eventID int) (json.RawMessage, error)
	ReportExists(ctx context.Context, eventID int) (bool, error)
}

// PagellaRepository defines pagella data operations
type PagellaRepository interface {
	GetPagella(ctx context.Context, eventID int) (*models.Pagella, error)
	// SavePagella writes text if version matches the stored version and bumps
	// it; returns ErrStaleVersion otherwise.
	SavePagella(ctx context.Context, eventID int, text string, version int) error
}

// FullRepository combines all repository interfaces
// Use this when a service needs access to multiple domains
type FullRepository interface {
	ParticipantRepository
	EventRepository
	WineRepository
	RatingRepository
	ReportRepository
	PagellaRepository
}

// Ensure Repository implements all interfaces
var _ FullRepository = (*Repository)(nil)
