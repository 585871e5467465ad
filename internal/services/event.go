package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/mbellini/tastevin/internal/errors"
	"github.com/mbellini/tastevin/internal/logger"
	"github.com/mbellini/tastevin/internal/models"
	"github.com/mbellini/tastevin/internal/repository"
)

// Characters used for event join codes. 0/O and 1/I are excluded so codes
// survive being read aloud across a tasting table.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// EventServiceRepository defines the repository methods needed by EventService
type EventServiceRepository interface {
	repository.EventRepository
	GetParticipant(ctx context.Context, id int) (*models.Participant, error)
}

// EventService handles event lifecycle business logic
type EventService struct {
	log  logger.Logger
	repo EventServiceRepository
}

// NewEventService creates a new EventService
func NewEventService(log logger.Logger, repo EventServiceRepository) *EventService {
	return &EventService{log: log, repo: repo}
}

// CreatedEvent is returned on event creation; the PIN is only disclosed here
type CreatedEvent struct {
	Event models.Event `json:"event"`
	PIN   string       `json:"pin"`
}

// randomInt returns a uniform random int in [0, max)
func randomInt(max int) int {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		panic(err) // crypto/rand failure is not recoverable
	}
	return int(n.Int64())
}

// generateCode creates a 6-character join code
func generateCode() string {
	var b strings.Builder
	for i := 0; i < 6; i++ {
		b.WriteByte(codeAlphabet[randomInt(len(codeAlphabet))])
	}
	return b.String()
}

// generatePIN creates a 4-digit organizer PIN
func generatePIN() string {
	return fmt.Sprintf("%04d", randomInt(10000))
}

// CreateEvent creates a new event with a generated join code and organizer PIN
func (s *EventService) CreateEvent(ctx context.Context, name string, ownerID int) (*CreatedEvent, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.Validation("event name cannot be empty")
	}

	if _, err := s.repo.GetParticipant(ctx, ownerID); err != nil {
		if err == repository.ErrNotFound {
			return nil, errors.NotFoundf("participant %d not found", ownerID)
		}
		return nil, err
	}

	pin := generatePIN()

	// Regenerate on the rare code collision
	var id int64
	var code string
	for {
		code = generateCode()
		var err error
		id, err = s.repo.CreateEvent(ctx, name, code, pin, ownerID)
		if err == repository.ErrDuplicate {
			continue
		}
		if err != nil {
			return nil, err
		}
		break
	}

	s.log.Info("Event created", "event_id", id, "name", name, "code", code)

	return &CreatedEvent{
		Event: models.Event{
			ID:      int(id),
			Name:    name,
			Code:    code,
			Status:  models.StatusRegistration,
			OwnerID: ownerID,
		},
		PIN: pin,
	}, nil
}

// GetEvent retrieves an event by ID
func (s *EventService) GetEvent(ctx context.Context, id int) (*models.Event, error) {
	event, err := s.repo.GetEvent(ctx, id)
	if err == repository.ErrNotFound {
		return nil, errors.NotFoundf("event %d not found", id)
	}
	return event, err
}

// GetEventByCode retrieves an event by its join code
func (s *EventService) GetEventByCode(ctx context.Context, code string) (*models.Event, error) {
	event, err := s.repo.GetEventByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err == repository.ErrNotFound {
		return nil, errors.NotFoundf("no event with code %s", code)
	}
	return event, err
}

// VerifyPIN checks the organizer PIN for an event
func (s *EventService) VerifyPIN(ctx context.Context, id int, pin string) error {
	stored, err := s.repo.GetEventPIN(ctx, id)
	if err == repository.ErrNotFound {
		return errors.NotFoundf("event %d not found", id)
	}
	if err != nil {
		return err
	}
	if stored != pin {
		return ErrWrongPIN
	}
	return nil
}

// OpenVoting transitions an event from registration to voting
func (s *EventService) OpenVoting(ctx context.Context, id int) error {
	event, err := s.GetEvent(ctx, id)
	if err != nil {
		return err
	}

	switch event.Status {
	case models.StatusVoting:
		return ErrAlreadyOpen
	case models.StatusCompleted:
		return errors.Conflictf("event %d is already completed", id)
	}

	if err := s.repo.SetEventStatus(ctx, id, models.StatusVoting); err != nil {
		return err
	}
	s.log.Info("Voting opened", "event_id", id)
	return nil
}

// GenerateJoinQR renders the event join URL as a QR code PNG
func (s *EventService) GenerateJoinQR(ctx context.Context, id int, baseURL string) ([]byte, error) {
	event, err := s.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}

	joinURL := fmt.Sprintf("%s/join/%s", strings.TrimRight(baseURL, "/"), event.Code)
	png, err := qrcode.Encode(joinURL, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}
	return png, nil
}
