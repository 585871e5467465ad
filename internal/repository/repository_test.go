package repository

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mbellini/tastevin/internal/models"
)

// newTestRepo creates a new in-memory repository for testing.
func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

// seedEvent creates a participant and an event owned by them
func seedEvent(t *testing.T, repo *Repository, code string) (ownerID, eventID int) {
	t.Helper()
	ctx := context.Background()

	pid, err := repo.CreateParticipant(ctx, "Owner")
	if err != nil {
		t.Fatalf("CreateParticipant failed: %v", err)
	}
	eid, err := repo.CreateEvent(ctx, "Test Event", code, "1234", int(pid))
	if err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}
	return int(pid), int(eid)
}

// seedWine creates a wine owned by a fresh participant
func seedWine(t *testing.T, repo *Repository, eventID int, name string) (ownerID, wineID int) {
	t.Helper()
	ctx := context.Background()

	pid, err := repo.CreateParticipant(ctx, name+" Owner")
	if err != nil {
		t.Fatalf("CreateParticipant failed: %v", err)
	}
	wid, err := repo.CreateWine(ctx, models.WineEntry{
		EventID: eventID, OwnerID: int(pid), Name: name,
	})
	if err != nil {
		t.Fatalf("CreateWine failed: %v", err)
	}
	return int(pid), int(wid)
}

// ==================== Participant Tests ====================

func TestGetParticipant_NonExistent(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetParticipant(context.Background(), 9999)
	if err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSetParticipantEditor(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.CreateParticipant(ctx, "Giulia")
	if err != nil {
		t.Fatalf("CreateParticipant failed: %v", err)
	}

	if err := repo.SetParticipantEditor(ctx, int(id), true); err != nil {
		t.Fatalf("SetParticipantEditor failed: %v", err)
	}

	p, err := repo.GetParticipant(ctx, int(id))
	if err != nil {
		t.Fatalf("GetParticipant failed: %v", err)
	}
	if !p.Editor {
		t.Error("expected editor flag set")
	}

	if err := repo.SetParticipantEditor(ctx, 9999, true); err != ErrNotFound {
		t.Errorf("expected ErrNotFound for unknown participant, got %v", err)
	}
}

func TestListEventParticipants_DistinctOwners(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	_, eventID := seedEvent(t, repo, "AAAAAA")

	ownerID, _ := seedWine(t, repo, eventID, "Nebbiolo")
	// Same owner submits a second wine
	if _, err := repo.CreateWine(ctx, models.WineEntry{
		EventID: eventID, OwnerID: ownerID, Name: "Dolcetto",
	}); err != nil {
		t.Fatalf("CreateWine failed: %v", err)
	}
	seedWine(t, repo, eventID, "Sangiovese")

	participants, err := repo.ListEventParticipants(ctx, eventID)
	if err != nil {
		t.Fatalf("ListEventParticipants failed: %v", err)
	}
	if len(participants) != 2 {
		t.Errorf("expected 2 distinct owners, got %d", len(participants))
	}
}

// ==================== Event Tests ====================

func TestCreateEvent_DuplicateCode(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	ownerID, _ := seedEvent(t, repo, "CODE77")

	_, err := repo.CreateEvent(ctx, "Second Event", "CODE77", "5678", ownerID)
	if err != ErrDuplicate {
		t.Errorf("expected ErrDuplicate for reused code, got %v", err)
	}
}

func TestCreateEvent_SeedsPagella(t *testing.T) {
	repo := newTestRepo(t)
	_, eventID := seedEvent(t, repo, "BBBBBB")

	pagella, err := repo.GetPagella(context.Background(), eventID)
	if err != nil {
		t.Fatalf("GetPagella failed: %v", err)
	}
	if pagella.Text != "" || pagella.Version != 0 {
		t.Errorf("expected empty pagella at version 0, got %+v", pagella)
	}
}

func TestGetEventByCode(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	_, eventID := seedEvent(t, repo, "CCCCCC")

	event, err := repo.GetEventByCode(ctx, "CCCCCC")
	if err != nil {
		t.Fatalf("GetEventByCode failed: %v", err)
	}
	if event.ID != eventID {
		t.Errorf("expected event %d, got %d", eventID, event.ID)
	}

	if _, err := repo.GetEventByCode(ctx, "NOPE00"); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGetEventPIN(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	_, eventID := seedEvent(t, repo, "DDDDDD")

	pin, err := repo.GetEventPIN(ctx, eventID)
	if err != nil {
		t.Fatalf("GetEventPIN failed: %v", err)
	}
	if pin != "1234" {
		t.Errorf("expected PIN 1234, got %q", pin)
	}

	if _, err := repo.GetEventPIN(ctx, 9999); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSetEventStatus(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	_, eventID := seedEvent(t, repo, "EEEEEE")

	if err := repo.SetEventStatus(ctx, eventID, models.StatusVoting); err != nil {
		t.Fatalf("SetEventStatus failed: %v", err)
	}

	event, err := repo.GetEvent(ctx, eventID)
	if err != nil {
		t.Fatalf("GetEvent failed: %v", err)
	}
	if event.Status != models.StatusVoting {
		t.Errorf("expected voting status, got %s", event.Status)
	}

	if err := repo.SetEventStatus(ctx, 9999, models.StatusVoting); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

// ==================== Rating Tests ====================

func TestSaveRating_UpsertsOnNaturalKey(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	_, eventID := seedEvent(t, repo, "FFFFFF")
	_, wineID := seedWine(t, repo, eventID, "Barbera")
	raterID, err := repo.CreateParticipant(ctx, "Rater")
	if err != nil {
		t.Fatalf("CreateParticipant failed: %v", err)
	}

	if err := repo.SaveRating(ctx, eventID, wineID, int(raterID), 60); err != nil {
		t.Fatalf("SaveRating failed: %v", err)
	}
	if err := repo.SaveRating(ctx, eventID, wineID, int(raterID), 95); err != nil {
		t.Fatalf("second SaveRating failed: %v", err)
	}

	count, err := repo.CountEventRatings(ctx, eventID)
	if err != nil {
		t.Fatalf("CountEventRatings failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 rating row after upsert, got %d", count)
	}

	ratings, err := repo.GetParticipantRatings(ctx, eventID, int(raterID))
	if err != nil {
		t.Fatalf("GetParticipantRatings failed: %v", err)
	}
	if ratings[wineID] != 9.5 {
		t.Errorf("expected score 9.5 after overwrite, got %v", ratings[wineID])
	}
}

func TestListEventRatings_ConvertsTenths(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	_, eventID := seedEvent(t, repo, "GGGGGG")
	_, wineID := seedWine(t, repo, eventID, "Primitivo")
	raterID, err := repo.CreateParticipant(ctx, "Rater")
	if err != nil {
		t.Fatalf("CreateParticipant failed: %v", err)
	}

	if err := repo.SaveRating(ctx, eventID, wineID, int(raterID), 85); err != nil {
		t.Fatalf("SaveRating failed: %v", err)
	}

	ratings, err := repo.ListEventRatings(ctx, eventID)
	if err != nil {
		t.Fatalf("ListEventRatings failed: %v", err)
	}
	if len(ratings) != 1 {
		t.Fatalf("expected 1 rating, got %d", len(ratings))
	}
	if ratings[0].Score != 8.5 {
		t.Errorf("expected score 8.5, got %v", ratings[0].Score)
	}
}

// ==================== Report Tests ====================

func TestCreateReport_CommitsOnceAndFlipsStatus(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	ownerID, eventID := seedEvent(t, repo, "HHHHHH")

	payload := []byte(`{"summary":{"total_votes":2}}`)
	if err := repo.CreateReport(ctx, eventID, payload, ownerID); err != nil {
		t.Fatalf("CreateReport failed: %v", err)
	}

	event, err := repo.GetEvent(ctx, eventID)
	if err != nil {
		t.Fatalf("GetEvent failed: %v", err)
	}
	if event.Status != models.StatusCompleted {
		t.Errorf("expected completed status, got %s", event.Status)
	}

	stored, err := repo.GetReport(ctx, eventID)
	if err != nil {
		t.Fatalf("GetReport failed: %v", err)
	}
	if string(stored) != string(payload) {
		t.Errorf("stored payload differs: %s", stored)
	}

	// Second insert trips the unique constraint
	err = repo.CreateReport(ctx, eventID, []byte(`{"other":true}`), ownerID)
	if err != ErrDuplicate {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}

	// And the original payload is untouched
	stored, err = repo.GetReport(ctx, eventID)
	if err != nil {
		t.Fatalf("GetReport failed: %v", err)
	}
	if string(stored) != string(payload) {
		t.Errorf("duplicate attempt altered stored payload: %s", stored)
	}
}

func TestGetReport_NonExistent(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetReport(context.Background(), 9999)
	if err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestReportExists(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	ownerID, eventID := seedEvent(t, repo, "JJJJJJ")

	exists, err := repo.ReportExists(ctx, eventID)
	if err != nil {
		t.Fatalf("ReportExists failed: %v", err)
	}
	if exists {
		t.Error("expected no report yet")
	}

	if err := repo.CreateReport(ctx, eventID, []byte(`{}`), ownerID); err != nil {
		t.Fatalf("CreateReport failed: %v", err)
	}

	exists, err = repo.ReportExists(ctx, eventID)
	if err != nil {
		t.Fatalf("ReportExists failed: %v", err)
	}
	if !exists {
		t.Error("expected report to exist")
	}
}

func TestGetReport_ReturnsRawJSON(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	ownerID, eventID := seedEvent(t, repo, "KKKKKK")

	payload := []byte(`{"wine_results":[{"wine_id":1,"position":1}]}`)
	if err := repo.CreateReport(ctx, eventID, payload, ownerID); err != nil {
		t.Fatalf("CreateReport failed: %v", err)
	}

	stored, err := repo.GetReport(ctx, eventID)
	if err != nil {
		t.Fatalf("GetReport failed: %v", err)
	}

	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(stored, &decoded); err != nil {
		t.Fatalf("stored payload is not valid JSON: %v", err)
	}
	if _, ok := decoded["wine_results"]; !ok {
		t.Error("expected wine_results key in stored payload")
	}
}

// ==================== Pagella Tests ====================

func TestSavePagella_VersionCheck(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	_, eventID := seedEvent(t, repo, "LLLLLL")

	if err := repo.SavePagella(ctx, eventID, "first", 0); err != nil {
		t.Fatalf("SavePagella failed: %v", err)
	}

	// Version advanced to 1; writing with 0 again is stale
	if err := repo.SavePagella(ctx, eventID, "second", 0); err != ErrStaleVersion {
		t.Errorf("expected ErrStaleVersion, got %v", err)
	}

	if err := repo.SavePagella(ctx, eventID, "second", 1); err != nil {
		t.Fatalf("SavePagella with current version failed: %v", err)
	}

	pagella, err := repo.GetPagella(ctx, eventID)
	if err != nil {
		t.Fatalf("GetPagella failed: %v", err)
	}
	if pagella.Text != "second" || pagella.Version != 2 {
		t.Errorf("unexpected pagella state: %+v", pagella)
	}
}

func TestSavePagella_NonExistentEvent(t *testing.T) {
	repo := newTestRepo(t)

	if err := repo.SavePagella(context.Background(), 9999, "text", 0); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
