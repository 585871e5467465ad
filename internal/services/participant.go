package services

import (
	"context"
	"strings"

	"github.com/mbellini/tastevin/internal/errors"
	"github.com/mbellini/tastevin/internal/logger"
	"github.com/mbellini/tastevin/internal/models"
	"github.com/mbellini/tastevin/internal/repository"
)

// ParticipantService handles participant registration and lookup
type ParticipantService struct {
	log  logger.Logger
	repo repository.ParticipantRepository
}

// NewParticipantService creates a new ParticipantService
func NewParticipantService(log logger.Logger, repo repository.ParticipantRepository) *ParticipantService {
	return &ParticipantService{log: log, repo: repo}
}

// Register creates a new participant
func (s *ParticipantService) Register(ctx context.Context, name string) (*models.Participant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.Validation("participant name cannot be empty")
	}

	id, err := s.repo.CreateParticipant(ctx, name)
	if err != nil {
		return nil, err
	}

	s.log.Info("Participant registered", "participant_id", id, "name", name)
	return &models.Participant{ID: int(id), Name: name}, nil
}

// Get retrieves a participant by ID
func (s *ParticipantService) Get(ctx context.Context, id int) (*models.Participant, error) {
	p, err := s.repo.GetParticipant(ctx, id)
	if err == repository.ErrNotFound {
		return nil, errors.NotFoundf("participant %d not found", id)
	}
	return p, err
}

// List returns all registered participants
func (s *ParticipantService) List(ctx context.Context) ([]models.Participant, error) {
	return s.repo.ListParticipants(ctx)
}

// SetEditor grants or revokes the pagella editor role
func (s *ParticipantService) SetEditor(ctx context.Context, id int, editor bool) error {
	err := s.repo.SetParticipantEditor(ctx, id, editor)
	if err == repository.ErrNotFound {
		return errors.NotFoundf("participant %d not found", id)
	}
	if err != nil {
		return err
	}
	s.log.Info("Editor role updated", "participant_id", id, "editor", editor)
	return nil
}
