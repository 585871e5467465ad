package services

import (
	"context"

	"github.com/mbellini/tastevin/internal/errors"
	"github.com/mbellini/tastevin/internal/logger"
	"github.com/mbellini/tastevin/internal/models"
	"github.com/mbellini/tastevin/internal/repository"
)

// PagellaServiceRepository defines the repository methods needed by PagellaService
type PagellaServiceRepository interface {
	repository.PagellaRepository
	GetEvent(ctx context.Context, id int) (*models.Event, error)
	GetParticipant(ctx context.Context, id int) (*models.Participant, error)
}

// PagellaService handles the collaborative tasting sheet. Saves are
// version-checked so overlapping autosaves surface as conflicts instead of
// silently clobbering each other. Edit capability is the event owner or a
// participant holding the editor role.
type PagellaService struct {
	log  logger.Logger
	repo PagellaServiceRepository
}

// NewPagellaService creates a new PagellaService
func NewPagellaService(log logger.Logger, repo PagellaServiceRepository) *PagellaService {
	return &PagellaService{log: log, repo: repo}
}

// Get returns the pagella sheet for an event
func (s *PagellaService) Get(ctx context.Context, eventID int) (*models.Pagella, error) {
	pagella, err := s.repo.GetPagella(ctx, eventID)
	if err == repository.ErrNotFound {
		return nil, errors.NotFoundf("event %d not found", eventID)
	}
	return pagella, err
}

// Save writes the pagella text on behalf of a participant. The caller's
// version must match the stored one; a stale version returns a conflict with
// the current sheet so the client can merge and retry.
func (s *PagellaService) Save(ctx context.Context, eventID, participantID int, text string, version int) (*models.Pagella, error) {
	event, err := s.repo.GetEvent(ctx, eventID)
	if err == repository.ErrNotFound {
		return nil, errors.NotFoundf("event %d not found", eventID)
	}
	if err != nil {
		return nil, err
	}

	if event.OwnerID != participantID {
		participant, err := s.repo.GetParticipant(ctx, participantID)
		if err == repository.ErrNotFound {
			return nil, errors.NotFoundf("participant %d not found", participantID)
		}
		if err != nil {
			return nil, err
		}
		if !participant.Editor {
			return nil, ErrNotEditor
		}
	}

	err = s.repo.SavePagella(ctx, eventID, text, version)
	if err == repository.ErrStaleVersion {
		return nil, errors.Conflictf("pagella version %d is stale for event %d", version, eventID)
	}
	if err == repository.ErrNotFound {
		return nil, errors.NotFoundf("event %d not found", eventID)
	}
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, eventID)
}
