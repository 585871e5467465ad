package mock

import (
	"context"
	"encoding/json"

	"github.com/mbellini/tastevin/internal/models"
	"github.com/mbellini/tastevin/internal/repository"
)

// Repository wraps a real repository and allows injecting errors for testing.
// This provides a flexible way to test error paths without complex database
// manipulation.
//
// Usage:
//
//	realRepo := testutil.NewTestRepository(t)
//	mockRepo := mock.NewRepository(realRepo)
//	mockRepo.ListEventWinesError = errors.New("database error")
//	svc := services.NewCompletenessService(log, mockRepo)
//	_, err := svc.Status(ctx, eventID)
//	// err will now contain the injected error
type Repository struct {
	repository.FullRepository

	// ===== Participant Errors =====
	CreateParticipantError     error
	GetParticipantError        error
	ListParticipantsError      error
	SetParticipantEditorError  error
	ListEventParticipantsError error

	// ===== Event Errors =====
	CreateEventError    error
	GetEventError       error
	GetEventByCodeError error
	GetEventPINError    error
	SetEventStatusError error

	// ===== Wine Errors =====
	CreateWineError     error
	GetWineError        error
	ListEventWinesError error
	UpdateWineError     error
	DeleteWineError     error

	// ===== Rating Errors =====
	SaveRatingError            error
	ListEventRatingsError      error
	GetParticipantRatingsError error
	CountEventRatingsError     error

	// ===== Report Errors =====
	CreateReportError error
	GetReportError    error
	ReportExistsError error

	// ===== Pagella Errors =====
	GetPagellaError  error
	SavePagellaError error
}

// NewRepository creates a mock repository wrapping a real one
func NewRepository(real repository.FullRepository) *Repository {
	return &Repository{FullRepository: real}
}

func (m *Repository) CreateParticipant(ctx context.Context, name string) (int64, error) {
	if m.CreateParticipantError != nil {
		return 0, m.CreateParticipantError
	}
	return m.FullRepository.CreateParticipant(ctx, name)
}

func (m *Repository) GetParticipant(ctx context.Context, id int) (*models.Participant, error) {
	if m.GetParticipantError != nil {
		return nil, m.GetParticipantError
	}
	return m.FullRepository.GetParticipant(ctx, id)
}

func (m *Repository) ListParticipants(ctx context.Context) ([]models.Participant, error) {
	if m.ListParticipantsError != nil {
		return nil, m.ListParticipantsError
	}
	return m.FullRepository.ListParticipants(ctx)
}

func (m *Repository) SetParticipantEditor(ctx context.Context, id int, editor bool) error {
	if m.SetParticipantEditorError != nil {
		return m.SetParticipantEditorError
	}
	return m.FullRepository.SetParticipantEditor(ctx, id, editor)
}

func (m *Repository) ListEventParticipants(ctx context.Context, eventID int) ([]models.Participant, error) {
	if m.ListEventParticipantsError != nil {
		return nil, m.ListEventParticipantsError
	}
	return m.FullRepository.ListEventParticipants(ctx, eventID)
}

func (m *Repository) CreateEvent(ctx context.Context, name, code, pin string, ownerID int) (int64, error) {
	if m.CreateEventError != nil {
		return 0, m.CreateEventError
	}
	return m.FullRepository.CreateEvent(ctx, name, code, pin, ownerID)
}

func (m *Repository) GetEvent(ctx context.Context, id int) (*models.Event, error) {
	if m.GetEventError != nil {
		return nil, m.GetEventError
	}
	return m.FullRepository.GetEvent(ctx, id)
}

func (m *Repository) GetEventByCode(ctx context.Context, code string) (*models.Event, error) {
	if m.GetEventByCodeError != nil {
		return nil, m.GetEventByCodeError
	}
	return m.FullRepository.GetEventByCode(ctx, code)
}

func (m *Repository) GetEventPIN(ctx context.Context, id int) (string, error) {
	if m.GetEventPINError != nil {
		return "", m.GetEventPINError
	}
	return m.FullRepository.GetEventPIN(ctx, id)
}

func (m *Repository) SetEventStatus(ctx context.Context, id int, status string) error {
	if m.SetEventStatusError != nil {
		return m.SetEventStatusError
	}
	return m.FullRepository.SetEventStatus(ctx, id, status)
}

func (m *Repository) CreateWine(ctx context.Context, wine models.WineEntry) (int64, error) {
	if m.CreateWineError != nil {
		return 0, m.CreateWineError
	}
	return m.FullRepository.CreateWine(ctx, wine)
}

func (m *Repository) GetWine(ctx context.Context, id int) (*models.WineEntry, error) {
	if m.GetWineError != nil {
		return nil, m.GetWineError
	}
	return m.FullRepository.GetWine(ctx, id)
}

func (m *Repository) ListEventWines(ctx context.Context, eventID int) ([]models.WineEntry, error) {
	if m.ListEventWinesError != nil {
		return nil, m.ListEventWinesError
	}
	return m.FullRepository.ListEventWines(ctx, eventID)
}

func (m *Repository) UpdateWine(ctx context.Context, wine models.WineEntry) error {
	if m.UpdateWineError != nil {
		return m.UpdateWineError
	}
	return m.FullRepository.UpdateWine(ctx, wine)
}

func (m *Repository) DeleteWine(ctx context.Context, id int) error {
	if m.DeleteWineError != nil {
		return m.DeleteWineError
	}
	return m.FullRepository.DeleteWine(ctx, id)
}

func (m *Repository) SaveRating(ctx context.Context, eventID, wineID, participantID, scoreTenths int) error {
	if m.SaveRatingError != nil {
		return m.SaveRatingError
	}
	return m.FullRepository.SaveRating(ctx, eventID, wineID, participantID, scoreTenths)
}

func (m *Repository) ListEventRatings(ctx context.Context, eventID int) ([]models.Rating, error) {
	if m.ListEventRatingsError != nil {
		return nil, m.ListEventRatingsError
	}
	return m.FullRepository.ListEventRatings(ctx, eventID)
}

func (m *Repository) GetParticipantRatings(ctx context.Context, eventID, participantID int) (map[int]float64, error) {
	if m.GetParticipantRatingsError != nil {
		return nil, m.GetParticipantRatingsError
	}
	return m.FullRepository.GetParticipantRatings(ctx, eventID, participantID)
}

func (m *Repository) CountEventRatings(ctx context.Context, eventID int) (int, error) {
	if m.CountEventRatingsError != nil {
		return 0, m.CountEventRatingsError
	}
	return m.FullRepository.CountEventRatings(ctx, eventID)
}

func (m *Repository) CreateReport(ctx context.Context, eventID int, payload []byte, generatedBy int) error {
	if m.CreateReportError != nil {
		return m.CreateReportError
	}
	return m.FullRepository.CreateReport(ctx, eventID, payload, generatedBy)
}

func (m *Repository) GetReport(ctx context.Context, eventID int) (json.RawMessage, error) {
	if m.GetReportError != nil {
		return nil, m.GetReportError
	}
	return m.FullRepository.GetReport(ctx, eventID)
}

func (m *Repository) ReportExists(ctx context.Context, eventID int) (bool, error) {
	if m.ReportExistsError != nil {
		return false, m.ReportExistsError
	}
	return m.FullRepository.ReportExists(ctx, eventID)
}

func (m *Repository) GetPagella(ctx context.Context, eventID int) (*models.Pagella, error) {
	if m.GetPagellaError != nil {
		return nil, m.GetPagellaError
	}
	return m.FullRepository.GetPagella(ctx, eventID)
}

func (m *Repository) SavePagella(ctx context.Context, eventID int, text string, version int) error {
	if m.SavePagellaError != nil {
		return m.SavePagellaError
	}
	return m.FullRepository.SavePagella(ctx, eventID, text, version)
}
