package services

import (
	"context"

	"github.com/mbellini/tastevin/internal/errors"
	"github.com/mbellini/tastevin/internal/logger"
	"github.com/mbellini/tastevin/internal/models"
	"github.com/mbellini/tastevin/internal/repository"
)

// ParticipationServiceRepository defines the repository methods needed by ParticipationService
type ParticipationServiceRepository interface {
	GetEvent(ctx context.Context, id int) (*models.Event, error)
	ListEventParticipants(ctx context.Context, eventID int) ([]models.Participant, error)
	ListEventWines(ctx context.Context, eventID int) ([]models.WineEntry, error)
}

// ParticipationService derives voting eligibility for an event. A participant
// is eligible only if they contributed at least one wine; there is no
// independent "registered but empty-handed" participant for voting purposes.
type ParticipationService struct {
	log  logger.Logger
	repo ParticipationServiceRepository
}

// NewParticipationService creates a new ParticipationService
func NewParticipationService(log logger.Logger, repo ParticipationServiceRepository) *ParticipationService {
	return &ParticipationService{log: log, repo: repo}
}

// Participation holds the eligible participants and wines for an event
type Participation struct {
	Participants []models.Participant `json:"participants"`
	Wines        []models.WineEntry   `json:"wines"`
}

// Resolve returns the eligible participants (distinct wine owners) and the
// full wine list for an event. An event with zero wines yields zero
// participants; that is a valid, trivially-complete state, not an error.
func (s *ParticipationService) Resolve(ctx context.Context, eventID int) (*Participation, error) {
	if _, err := s.repo.GetEvent(ctx, eventID); err != nil {
		if err == repository.ErrNotFound {
			return nil, errors.NotFoundf("event %d not found", eventID)
		}
		return nil, err
	}

	wines, err := s.repo.ListEventWines(ctx, eventID)
	if err != nil {
		return nil, err
	}

	participants, err := s.repo.ListEventParticipants(ctx, eventID)
	if err != nil {
		return nil, err
	}

	return &Participation{
		Participants: participants,
		Wines:        wines,
	}, nil
}
