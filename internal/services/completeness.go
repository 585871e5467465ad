package services

import (
	"context"

	"github.com/mbellini/tastevin/internal/logger"
	"github.com/mbellini/tastevin/internal/models"
)

// CompletenessServiceRepository defines the repository methods needed by CompletenessService
type CompletenessServiceRepository interface {
	ListEventRatings(ctx context.Context, eventID int) ([]models.Rating, error)
}

// CompletenessService decides whether an event's voting phase is finished.
// The authoritative check is the per-participant missing-set comparison;
// the aggregate vote counts in the result are for display only. A pure
// count comparison would pass with one participant over-rating and another
// under-rating, so it is never used as the gate.
type CompletenessService struct {
	log           logger.Logger
	repo          CompletenessServiceRepository
	participation ParticipationServicer
}

// NewCompletenessService creates a new CompletenessService
func NewCompletenessService(log logger.Logger, repo CompletenessServiceRepository, participation ParticipationServicer) *CompletenessService {
	return &CompletenessService{log: log, repo: repo, participation: participation}
}

// Status computes the CompletionStatus for an event. Every participant is
// expected to rate every wine in the event except the ones they own; the
// event is complete when no participant has an outstanding wine.
func (s *CompletenessService) Status(ctx context.Context, eventID int) (*models.CompletionStatus, error) {
	participation, err := s.participation.Resolve(ctx, eventID)
	if err != nil {
		return nil, err
	}

	ratings, err := s.repo.ListEventRatings(ctx, eventID)
	if err != nil {
		return nil, err
	}

	// rated[participant][wine] = a rating exists
	rated := make(map[int]map[int]bool)
	for _, rt := range ratings {
		if rated[rt.ParticipantID] == nil {
			rated[rt.ParticipantID] = make(map[int]bool)
		}
		rated[rt.ParticipantID][rt.WineID] = true
	}

	wineNames := make(map[int]string, len(participation.Wines))
	for _, w := range participation.Wines {
		wineNames[w.ID] = w.Name
	}

	status := &models.CompletionStatus{
		IsComplete:        true,
		TotalParticipants: len(participation.Participants),
		TotalWines:        len(participation.Wines),
		VotesReceived:     len(ratings),
	}

	for _, p := range participation.Participants {
		var missing models.MissingVotes
		for _, w := range participation.Wines {
			if w.OwnerID == p.ID {
				continue // own wine is never expected
			}
			status.ExpectedVotes++
			if !rated[p.ID][w.ID] {
				missing.WineIDs = append(missing.WineIDs, w.ID)
				missing.WineNames = append(missing.WineNames, wineNames[w.ID])
			}
		}
		if len(missing.WineIDs) > 0 {
			missing.ParticipantID = p.ID
			missing.ParticipantName = p.Name
			status.IsComplete = false
			status.MissingVotes = append(status.MissingVotes, missing)
		}
	}

	return status, nil
}
