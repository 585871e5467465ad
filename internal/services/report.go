package services

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/mbellini/tastevin/internal/errors"
	"github.com/mbellini/tastevin/internal/logger"
	"github.com/mbellini/tastevin/internal/repository"
)

// ReportServiceRepository defines the repository methods needed by ReportService
type ReportServiceRepository interface {
	repository.EventRepository
	repository.ReportRepository
}

// ReportService orchestrates event completion: verify completeness, verify no
// report exists, build the snapshot, persist it and flip the event status.
// The sequence is serialized per event with a keyed mutex, and the report
// insert additionally runs against a UNIQUE(event_id) constraint, so exactly
// one report can ever be committed even under concurrent requests from
// separate processes.
type ReportService struct {
	log          logger.Logger
	repo         ReportServiceRepository
	completeness CompletenessServicer
	ranking      RankingServicer
	broadcaster  Broadcaster

	mu    sync.Mutex
	locks map[int]*sync.Mutex
}

// NewReportService creates a new ReportService
func NewReportService(log logger.Logger, repo ReportServiceRepository, completeness CompletenessServicer, ranking RankingServicer) *ReportService {
	return &ReportService{
		log:          log,
		repo:         repo,
		completeness: completeness,
		ranking:      ranking,
		locks:        make(map[int]*sync.Mutex),
	}
}

// SetBroadcaster sets the broadcaster for report-ready notifications
func (s *ReportService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// eventLock returns the per-event mutex, creating it on first use
func (s *ReportService) eventLock(eventID int) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[eventID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[eventID] = lock
	}
	return lock
}

// Complete runs the completion sequence for an event and returns the freshly
// committed report payload. Later retrievals via Report return these exact
// bytes. Failure modes are caller-distinguishable: not found, incomplete
// voting (with the missing-vote detail) and already-completed conflict.
func (s *ReportService) Complete(ctx context.Context, eventID, requestedBy int) (json.RawMessage, error) {
	lock := s.eventLock(eventID)
	lock.Lock()
	defer lock.Unlock()

	event, err := s.repo.GetEvent(ctx, eventID)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, errors.NotFoundf("event %d not found", eventID)
		}
		return nil, err
	}

	status, err := s.completeness.Status(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !status.IsComplete {
		return nil, &IncompleteVotingError{Status: status}
	}

	exists, err := s.repo.ReportExists(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.Conflictf("event %d is already completed", eventID)
	}

	report, err := s.ranking.BuildReport(ctx, event, requestedBy)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(report)
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreateReport(ctx, eventID, payload, requestedBy); err != nil {
		if err == repository.ErrDuplicate {
			// Lost a cross-process race; same outcome as the pre-check
			return nil, errors.Conflictf("event %d is already completed", eventID)
		}
		return nil, err
	}

	s.log.Info("Event completed", "event_id", eventID, "requested_by", requestedBy,
		"wines", status.TotalWines, "votes", status.VotesReceived)

	if s.broadcaster != nil {
		s.broadcaster.BroadcastReportReady(eventID)
	}

	return payload, nil
}

// Report returns the persisted report payload verbatim. No recomputation
// happens on this path; repeated calls return byte-identical results.
func (s *ReportService) Report(ctx context.Context, eventID int) (json.RawMessage, error) {
	payload, err := s.repo.GetReport(ctx, eventID)
	if err == repository.ErrNotFound {
		if _, eventErr := s.repo.GetEvent(ctx, eventID); eventErr == repository.ErrNotFound {
			return nil, errors.NotFoundf("event %d not found", eventID)
		} else if eventErr != nil {
			return nil, eventErr
		}
		return nil, errors.NotFoundf("no report exists for event %d", eventID)
	}
	if err != nil {
		return nil, err
	}
	return payload, nil
}
