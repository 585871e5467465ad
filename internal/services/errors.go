package services

import (
	"fmt"

	"github.com/mbellini/tastevin/internal/models"
)

// Service errors
var (
	ErrVotingNotOpen = &ServiceError{Message: "voting is not open for this event"}
	ErrEventLocked   = &ServiceError{Message: "wines cannot be changed after voting has started"}
	ErrOwnWine       = &ServiceError{Message: "participants cannot rate their own wine"}
	ErrInvalidScore  = &ServiceError{Message: "score must be between 1.0 and 10.0 in steps of 0.5"}
	ErrNotEditor     = &ServiceError{Message: "participant may not edit the pagella"}
	ErrAlreadyOpen   = &ServiceError{Message: "voting is already open"}
	ErrWrongPIN      = &ServiceError{Message: "wrong organizer PIN"}
)

// ServiceError represents a service-level error
type ServiceError struct {
	Message string
}

func (e *ServiceError) Error() string {
	return e.Message
}

// IncompleteVotingError is returned when completion is requested before all
// expected ratings are in. It carries the full CompletionStatus so callers
// can show exactly which participants owe which ratings.
type IncompleteVotingError struct {
	Status *models.CompletionStatus
}

func (e *IncompleteVotingError) Error() string {
	missing := e.Status.ExpectedVotes - e.Status.VotesReceived
	return fmt.Sprintf("voting is not complete: %d of %d votes received (%d missing)",
		e.Status.VotesReceived, e.Status.ExpectedVotes, missing)
}
