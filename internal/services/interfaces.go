package services

import (
	"context"
	"encoding/json"

	"github.com/mbellini/tastevin/internal/models"
)

// Broadcaster defines the interface for pushing live updates to clients
type Broadcaster interface {
	BroadcastVotingProgress(eventID int, status *models.CompletionStatus)
	BroadcastReportReady(eventID int)
}

// ParticipantServicer defines the interface for participant operations
type ParticipantServicer interface {
	Register(ctx context.Context, name string) (*models.Participant, error)
	Get(ctx context.Context, id int) (*models.Participant, error)
	List(ctx context.Context) ([]models.Participant, error)
	SetEditor(ctx context.Context, id int, editor bool) error
}

// EventServicer defines the interface for event lifecycle operations
type EventServicer interface {
	CreateEvent(ctx context.Context, name string, ownerID int) (*CreatedEvent, error)
	GetEvent(ctx context.Context, id int) (*models.Event, error)
	GetEventByCode(ctx context.Context, code string) (*models.Event, error)
	VerifyPIN(ctx context.Context, id int, pin string) error
	OpenVoting(ctx context.Context, id int) error
	GenerateJoinQR(ctx context.Context, id int, baseURL string) ([]byte, error)
}

// WineServicer defines the interface for wine entry operations
type WineServicer interface {
	Submit(ctx context.Context, wine models.WineEntry) (*models.WineEntry, error)
	Get(ctx context.Context, id int) (*models.WineEntry, error)
	ListForEvent(ctx context.Context, eventID int) ([]models.WineEntry, error)
	Update(ctx context.Context, wine models.WineEntry) error
	Delete(ctx context.Context, id int) error
}

// RatingServicer defines the interface for rating operations
type RatingServicer interface {
	Submit(ctx context.Context, rating models.Rating) error
	ParticipantRatings(ctx context.Context, eventID, participantID int) (map[int]float64, error)
	SetBroadcaster(b Broadcaster)
}

// ParticipationServicer defines the interface for voting-eligibility resolution
type ParticipationServicer interface {
	Resolve(ctx context.Context, eventID int) (*Participation, error)
}

// CompletenessServicer defines the interface for voting-completeness checks
type CompletenessServicer interface {
	Status(ctx context.Context, eventID int) (*models.CompletionStatus, error)
}

// RankingServicer defines the interface for report payload computation
type RankingServicer interface {
	BuildReport(ctx context.Context, event *models.Event, generatedBy int) (*EventReport, error)
}

// ReportServicer defines the interface for event completion and report retrieval
type ReportServicer interface {
	Complete(ctx context.Context, eventID, requestedBy int) (json.RawMessage, error)
	Report(ctx context.Context, eventID int) (json.RawMessage, error)
	SetBroadcaster(b Broadcaster)
}

// PagellaServicer defines the interface for pagella operations
type PagellaServicer interface {
	Get(ctx context.Context, eventID int) (*models.Pagella, error)
	Save(ctx context.Context, eventID, participantID int, text string, version int) (*models.Pagella, error)
}

// Ensure concrete types implement interfaces
var (
	_ ParticipantServicer   = (*ParticipantService)(nil)
	_ EventServicer         = (*EventService)(nil)
	_ WineServicer          = (*WineService)(nil)
	_ RatingServicer        = (*RatingService)(nil)
	_ ParticipationServicer = (*ParticipationService)(nil)
	_ CompletenessServicer  = (*CompletenessService)(nil)
	_ RankingServicer       = (*RankingService)(nil)
	_ ReportServicer        = (*ReportService)(nil)
	_ PagellaServicer       = (*PagellaService)(nil)
)
