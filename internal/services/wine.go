package services

import (
	"context"
	"strings"

	"github.com/mbellini/tastevin/internal/errors"
	"github.com/mbellini/tastevin/internal/logger"
	"github.com/mbellini/tastevin/internal/models"
	"github.com/mbellini/tastevin/internal/repository"
)

// WineServiceRepository defines the repository methods needed by WineService
type WineServiceRepository interface {
	repository.WineRepository
	GetEvent(ctx context.Context, id int) (*models.Event, error)
	GetParticipant(ctx context.Context, id int) (*models.Participant, error)
}

// WineService handles wine entry business logic. Wine entries are mutable
// only while their event is in registration; once voting starts the list is
// frozen, since the expected-vote matrix is derived from it.
type WineService struct {
	log  logger.Logger
	repo WineServiceRepository
}

// NewWineService creates a new WineService
func NewWineService(log logger.Logger, repo WineServiceRepository) *WineService {
	return &WineService{log: log, repo: repo}
}

// validateWine checks the descriptive fields of a wine entry
func validateWine(wine models.WineEntry) error {
	if strings.TrimSpace(wine.Name) == "" {
		return errors.Validation("wine name cannot be empty")
	}
	if wine.Price < 0 {
		return errors.Validation("wine price cannot be negative")
	}
	return nil
}

// eventAcceptsWineChanges verifies the event exists and is still in registration
func (s *WineService) eventAcceptsWineChanges(ctx context.Context, eventID int) error {
	event, err := s.repo.GetEvent(ctx, eventID)
	if err == repository.ErrNotFound {
		return errors.NotFoundf("event %d not found", eventID)
	}
	if err != nil {
		return err
	}
	if event.Status != models.StatusRegistration {
		return ErrEventLocked
	}
	return nil
}

// Submit registers a wine for an event
func (s *WineService) Submit(ctx context.Context, wine models.WineEntry) (*models.WineEntry, error) {
	if err := validateWine(wine); err != nil {
		return nil, err
	}
	if err := s.eventAcceptsWineChanges(ctx, wine.EventID); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetParticipant(ctx, wine.OwnerID); err != nil {
		if err == repository.ErrNotFound {
			return nil, errors.NotFoundf("participant %d not found", wine.OwnerID)
		}
		return nil, err
	}

	id, err := s.repo.CreateWine(ctx, wine)
	if err != nil {
		return nil, err
	}
	wine.ID = int(id)

	s.log.Info("Wine submitted", "wine_id", id, "event_id", wine.EventID, "owner_id", wine.OwnerID, "name", wine.Name)
	return &wine, nil
}

// Get retrieves a wine entry by ID
func (s *WineService) Get(ctx context.Context, id int) (*models.WineEntry, error) {
	wine, err := s.repo.GetWine(ctx, id)
	if err == repository.ErrNotFound {
		return nil, errors.NotFoundf("wine %d not found", id)
	}
	return wine, err
}

// ListForEvent returns all wines for an event
func (s *WineService) ListForEvent(ctx context.Context, eventID int) ([]models.WineEntry, error) {
	if _, err := s.repo.GetEvent(ctx, eventID); err != nil {
		if err == repository.ErrNotFound {
			return nil, errors.NotFoundf("event %d not found", eventID)
		}
		return nil, err
	}
	return s.repo.ListEventWines(ctx, eventID)
}

// Update modifies a wine entry's descriptive attributes
func (s *WineService) Update(ctx context.Context, wine models.WineEntry) error {
	if err := validateWine(wine); err != nil {
		return err
	}

	existing, err := s.Get(ctx, wine.ID)
	if err != nil {
		return err
	}
	if err := s.eventAcceptsWineChanges(ctx, existing.EventID); err != nil {
		return err
	}

	wine.EventID = existing.EventID
	wine.OwnerID = existing.OwnerID
	return s.repo.UpdateWine(ctx, wine)
}

// Delete removes a wine entry
func (s *WineService) Delete(ctx context.Context, id int) error {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.eventAcceptsWineChanges(ctx, existing.EventID); err != nil {
		return err
	}
	return s.repo.DeleteWine(ctx, id)
}
