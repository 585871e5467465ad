package services_test

import (
	"context"
	"testing"

	"github.com/mbellini/tastevin/internal/logger"
	"github.com/mbellini/tastevin/internal/models"
	"github.com/mbellini/tastevin/internal/repository"
	"github.com/mbellini/tastevin/internal/services"
	"github.com/mbellini/tastevin/internal/testutil"
)

// testEnv bundles all services wired against one in-memory repository
type testEnv struct {
	repo          *repository.Repository
	participant   *services.ParticipantService
	event         *services.EventService
	wine          *services.WineService
	rating        *services.RatingService
	participation *services.ParticipationService
	completeness  *services.CompletenessService
	ranking       *services.RankingService
	report        *services.ReportService
	pagella       *services.PagellaService
}

// setupServices creates the full service graph for testing
func setupServices(t *testing.T) *testEnv {
	t.Helper()
	repo := testutil.NewTestRepository(t)
	log := logger.New()

	participation := services.NewParticipationService(log, repo)
	completeness := services.NewCompletenessService(log, repo, participation)
	ranking := services.NewRankingService(log, repo, participation)

	return &testEnv{
		repo:          repo,
		participant:   services.NewParticipantService(log, repo),
		event:         services.NewEventService(log, repo),
		wine:          services.NewWineService(log, repo),
		rating:        services.NewRatingService(log, repo, completeness),
		participation: participation,
		completeness:  completeness,
		ranking:       ranking,
		report:        services.NewReportService(log, repo, completeness, ranking),
		pagella:       services.NewPagellaService(log, repo),
	}
}

// tastingFixture holds the ids of a standard two-participant event
type tastingFixture struct {
	alice *models.Participant
	bob   *models.Participant
	event *models.Event
	wineA *models.WineEntry
	wineB *models.WineEntry
}

// newTastingFixture creates an event owned by Alice with one wine per
// participant. Voting is left closed so tests control the transition.
func newTastingFixture(t *testing.T, env *testEnv) *tastingFixture {
	t.Helper()
	ctx := context.Background()

	alice, err := env.participant.Register(ctx, "Alice")
	if err != nil {
		t.Fatalf("Register Alice failed: %v", err)
	}
	bob, err := env.participant.Register(ctx, "Bob")
	if err != nil {
		t.Fatalf("Register Bob failed: %v", err)
	}

	created, err := env.event.CreateEvent(ctx, "Barolo Night", alice.ID)
	if err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}
	event := &created.Event

	wineA, err := env.wine.Submit(ctx, models.WineEntry{
		EventID: event.ID, OwnerID: alice.ID, Name: "Barolo Riserva", Year: 2016,
	})
	if err != nil {
		t.Fatalf("Submit wine A failed: %v", err)
	}
	wineB, err := env.wine.Submit(ctx, models.WineEntry{
		EventID: event.ID, OwnerID: bob.ID, Name: "Chianti Classico", Year: 2019,
	})
	if err != nil {
		t.Fatalf("Submit wine B failed: %v", err)
	}

	return &tastingFixture{alice: alice, bob: bob, event: event, wineA: wineA, wineB: wineB}
}

// openVoting transitions the fixture event to its voting phase
func (f *tastingFixture) openVoting(t *testing.T, env *testEnv) {
	t.Helper()
	if err := env.event.OpenVoting(context.Background(), f.event.ID); err != nil {
		t.Fatalf("OpenVoting failed: %v", err)
	}
}

// rate submits a single rating and fails the test on error
func rate(t *testing.T, env *testEnv, eventID, wineID, participantID int, score float64) {
	t.Helper()
	err := env.rating.Submit(context.Background(), models.Rating{
		EventID: eventID, WineID: wineID, ParticipantID: participantID, Score: score,
	})
	if err != nil {
		t.Fatalf("Submit rating (wine %d, participant %d, score %.1f) failed: %v",
			wineID, participantID, score, err)
	}
}
