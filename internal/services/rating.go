package services

import (
	"context"
	"math"

	"github.com/mbellini/tastevin/internal/errors"
	"github.com/mbellini/tastevin/internal/logger"
	"github.com/mbellini/tastevin/internal/models"
	"github.com/mbellini/tastevin/internal/repository"
)

// RatingServiceRepository defines the repository methods needed by RatingService
type RatingServiceRepository interface {
	repository.RatingRepository
	GetEvent(ctx context.Context, id int) (*models.Event, error)
	GetWine(ctx context.Context, id int) (*models.WineEntry, error)
	GetParticipant(ctx context.Context, id int) (*models.Participant, error)
}

// RatingService handles rating submission. The (wine, participant) pair is a
// natural key: resubmitting a score overwrites the previous one.
type RatingService struct {
	log          logger.Logger
	repo         RatingServiceRepository
	completeness CompletenessServicer
	broadcaster  Broadcaster
}

// NewRatingService creates a new RatingService
func NewRatingService(log logger.Logger, repo RatingServiceRepository, completeness CompletenessServicer) *RatingService {
	return &RatingService{log: log, repo: repo, completeness: completeness}
}

// SetBroadcaster sets the broadcaster for voting-progress updates
func (s *RatingService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// validScore reports whether score is a multiple of 0.5 in [1.0, 10.0]
func validScore(score float64) bool {
	if score < 1.0 || score > 10.0 {
		return false
	}
	doubled := score * 2
	return doubled == math.Trunc(doubled)
}

// Submit records a score for a wine. The event must be in its voting phase,
// the wine must belong to the event and the rater must not own it.
func (s *RatingService) Submit(ctx context.Context, rating models.Rating) error {
	if !validScore(rating.Score) {
		return ErrInvalidScore
	}

	event, err := s.repo.GetEvent(ctx, rating.EventID)
	if err == repository.ErrNotFound {
		return errors.NotFoundf("event %d not found", rating.EventID)
	}
	if err != nil {
		return err
	}
	if event.Status != models.StatusVoting {
		return ErrVotingNotOpen
	}

	wine, err := s.repo.GetWine(ctx, rating.WineID)
	if err == repository.ErrNotFound {
		return errors.NotFoundf("wine %d not found", rating.WineID)
	}
	if err != nil {
		return err
	}
	if wine.EventID != rating.EventID {
		return errors.Validationf("wine %d does not belong to event %d", rating.WineID, rating.EventID)
	}
	if wine.OwnerID == rating.ParticipantID {
		return ErrOwnWine
	}

	if _, err := s.repo.GetParticipant(ctx, rating.ParticipantID); err != nil {
		if err == repository.ErrNotFound {
			return errors.NotFoundf("participant %d not found", rating.ParticipantID)
		}
		return err
	}

	if err := s.repo.SaveRating(ctx, rating.EventID, rating.WineID, rating.ParticipantID, scoreTenths(rating.Score)); err != nil {
		return err
	}

	s.log.Info("Rating recorded", "event_id", rating.EventID, "wine_id", rating.WineID,
		"participant_id", rating.ParticipantID, "score", rating.Score)

	if s.broadcaster != nil {
		if status, err := s.completeness.Status(ctx, rating.EventID); err == nil {
			s.broadcaster.BroadcastVotingProgress(rating.EventID, status)
		}
	}

	return nil
}

// ParticipantRatings returns wine_id -> score for one participant in an event
func (s *RatingService) ParticipantRatings(ctx context.Context, eventID, participantID int) (map[int]float64, error) {
	if _, err := s.repo.GetEvent(ctx, eventID); err != nil {
		if err == repository.ErrNotFound {
			return nil, errors.NotFoundf("event %d not found", eventID)
		}
		return nil, err
	}
	return s.repo.GetParticipantRatings(ctx, eventID, participantID)
}
