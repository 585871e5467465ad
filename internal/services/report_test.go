package services_test

import (
	"bytes"
	"context"
	stderrors "errors"
	"sync"
	"testing"

	"github.com/mbellini/tastevin/internal/errors"
	"github.com/mbellini/tastevin/internal/models"
	"github.com/mbellini/tastevin/internal/services"
)

// completeFixtureVoting submits every expected rating for the fixture
func completeFixtureVoting(t *testing.T, env *testEnv, f *tastingFixture) {
	t.Helper()
	rate(t, env, f.event.ID, f.wineB.ID, f.alice.ID, 8.5)
	rate(t, env, f.event.ID, f.wineA.ID, f.bob.ID, 7.0)
}

// TestComplete_RejectsIncompleteVoting tests that completion before all
// ratings are in fails and carries the full missing-vote detail
func TestComplete_RejectsIncompleteVoting(t *testing.T) {
	env := setupServices(t)
	f := newTastingFixture(t, env)
	f.openVoting(t, env)
	ctx := context.Background()

	rate(t, env, f.event.ID, f.wineB.ID, f.alice.ID, 8.5)

	_, err := env.report.Complete(ctx, f.event.ID, f.alice.ID)
	var incomplete *services.IncompleteVotingError
	if !stderrors.As(err, &incomplete) {
		t.Fatalf("expected IncompleteVotingError, got %v", err)
	}

	if incomplete.Status == nil {
		t.Fatal("expected completion status attached to error")
	}
	if incomplete.Status.VotesReceived != 1 || incomplete.Status.ExpectedVotes != 2 {
		t.Errorf("unexpected status in error: %+v", incomplete.Status)
	}
	if len(incomplete.Status.MissingVotes) != 1 || incomplete.Status.MissingVotes[0].ParticipantID != f.bob.ID {
		t.Errorf("expected Bob listed as missing, got %+v", incomplete.Status.MissingVotes)
	}

	// Nothing was persisted
	event, getErr := env.event.GetEvent(ctx, f.event.ID)
	if getErr != nil {
		t.Fatalf("GetEvent failed: %v", getErr)
	}
	if event.Status != models.StatusVoting {
		t.Errorf("expected event still voting, got %s", event.Status)
	}
}

// TestComplete_PersistsReportAndTransitionsEvent tests the happy path end to
// end including byte-identical retrieval
func TestComplete_PersistsReportAndTransitionsEvent(t *testing.T) {
	env := setupServices(t)
	f := newTastingFixture(t, env)
	f.openVoting(t, env)
	ctx := context.Background()
	completeFixtureVoting(t, env, f)

	payload, err := env.report.Complete(ctx, f.event.ID, f.alice.ID)
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if len(payload) == 0 {
		t.Fatal("expected non-empty report payload")
	}

	event, err := env.event.GetEvent(ctx, f.event.ID)
	if err != nil {
		t.Fatalf("GetEvent failed: %v", err)
	}
	if event.Status != models.StatusCompleted {
		t.Errorf("expected event completed, got %s", event.Status)
	}

	// Retrieval returns the committed bytes verbatim, repeatedly
	stored, err := env.report.Report(ctx, f.event.ID)
	if err != nil {
		t.Fatalf("Report failed: %v", err)
	}
	if !bytes.Equal(payload, stored) {
		t.Error("retrieved report differs from the payload returned at completion")
	}

	again, err := env.report.Report(ctx, f.event.ID)
	if err != nil {
		t.Fatalf("second Report failed: %v", err)
	}
	if !bytes.Equal(stored, again) {
		t.Error("repeated retrieval returned different bytes")
	}
}

// TestComplete_ReportSurvivesLaterRatingChanges tests report immutability:
// the stored payload never reflects rating rows altered after commit
func TestComplete_ReportSurvivesLaterRatingChanges(t *testing.T) {
	env := setupServices(t)
	f := newTastingFixture(t, env)
	f.openVoting(t, env)
	ctx := context.Background()
	completeFixtureVoting(t, env, f)

	payload, err := env.report.Complete(ctx, f.event.ID, f.alice.ID)
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	// Mutate the rating store directly; the service layer would refuse this
	// once the event is completed
	if err := env.repo.SaveRating(ctx, f.event.ID, f.wineA.ID, f.bob.ID, 10); err != nil {
		t.Fatalf("SaveRating failed: %v", err)
	}

	stored, err := env.report.Report(ctx, f.event.ID)
	if err != nil {
		t.Fatalf("Report failed: %v", err)
	}
	if !bytes.Equal(payload, stored) {
		t.Error("stored report changed after underlying ratings were altered")
	}
}

// TestComplete_SecondAttemptConflicts tests that completing twice yields an
// already-completed conflict
func TestComplete_SecondAttemptConflicts(t *testing.T) {
	env := setupServices(t)
	f := newTastingFixture(t, env)
	f.openVoting(t, env)
	ctx := context.Background()
	completeFixtureVoting(t, env, f)

	if _, err := env.report.Complete(ctx, f.event.ID, f.alice.ID); err != nil {
		t.Fatalf("first Complete failed: %v", err)
	}

	_, err := env.report.Complete(ctx, f.event.ID, f.bob.ID)
	var appErr *errors.Error
	if !stderrors.As(err, &appErr) || appErr.Kind != errors.ErrConflict {
		t.Errorf("expected conflict on second completion, got %v", err)
	}
}

// TestComplete_ConcurrentRequestsCommitOnce tests the single-commit
// guarantee: two racing completions produce exactly one report
func TestComplete_ConcurrentRequestsCommitOnce(t *testing.T) {
	env := setupServices(t)
	f := newTastingFixture(t, env)
	f.openVoting(t, env)
	ctx := context.Background()
	completeFixtureVoting(t, env, f)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.report.Complete(ctx, f.event.ID, f.alice.ID)
		}(i)
	}
	wg.Wait()

	successes, conflicts := 0, 0
	for _, err := range errs {
		if err == nil {
			successes++
			continue
		}
		var appErr *errors.Error
		if stderrors.As(err, &appErr) && appErr.Kind == errors.ErrConflict {
			conflicts++
		} else {
			t.Errorf("unexpected error from concurrent completion: %v", err)
		}
	}
	if successes != 1 || conflicts != 1 {
		t.Errorf("expected exactly one success and one conflict, got %d/%d", successes, conflicts)
	}

	event, err := env.event.GetEvent(ctx, f.event.ID)
	if err != nil {
		t.Fatalf("GetEvent failed: %v", err)
	}
	if event.Status != models.StatusCompleted {
		t.Errorf("expected event completed, got %s", event.Status)
	}
}

// TestComplete_EventNotFound tests the not-found path
func TestComplete_EventNotFound(t *testing.T) {
	env := setupServices(t)

	_, err := env.report.Complete(context.Background(), 9999, 1)
	var appErr *errors.Error
	if !stderrors.As(err, &appErr) || appErr.Kind != errors.ErrNotFound {
		t.Errorf("expected not-found error, got %v", err)
	}
}

// TestReport_DistinguishesMissingEventFromMissingReport tests the two
// not-found flavors on the retrieval path
func TestReport_DistinguishesMissingEventFromMissingReport(t *testing.T) {
	env := setupServices(t)
	f := newTastingFixture(t, env)
	ctx := context.Background()

	// Event exists but no report yet
	_, err := env.report.Report(ctx, f.event.ID)
	var appErr *errors.Error
	if !stderrors.As(err, &appErr) || appErr.Kind != errors.ErrNotFound {
		t.Fatalf("expected not-found for missing report, got %v", err)
	}

	// Event does not exist at all
	_, err = env.report.Report(ctx, 9999)
	if !stderrors.As(err, &appErr) || appErr.Kind != errors.ErrNotFound {
		t.Errorf("expected not-found for missing event, got %v", err)
	}
}
