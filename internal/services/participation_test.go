package services_test

import (
	"context"
	"testing"

	"github.com/mbellini/tastevin/internal/models"
)

// TestResolve_DistinctWineOwners tests that a participant with several wines
// appears once, and that wine count and participant count diverge correctly
func TestResolve_DistinctWineOwners(t *testing.T) {
	env := setupServices(t)
	f := newTastingFixture(t, env)
	ctx := context.Background()

	// Alice brings a second bottle
	if _, err := env.wine.Submit(ctx, models.WineEntry{
		EventID: f.event.ID, OwnerID: f.alice.ID, Name: "Barbaresco",
	}); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	participation, err := env.participation.Resolve(ctx, f.event.ID)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if len(participation.Wines) != 3 {
		t.Errorf("expected 3 wines, got %d", len(participation.Wines))
	}
	if len(participation.Participants) != 2 {
		t.Errorf("expected 2 distinct participants, got %d", len(participation.Participants))
	}
}

// TestResolve_RegisteredButEmptyHanded tests that registering alone does not
// make someone a voting participant
func TestResolve_RegisteredButEmptyHanded(t *testing.T) {
	env := setupServices(t)
	f := newTastingFixture(t, env)
	ctx := context.Background()

	if _, err := env.participant.Register(ctx, "Spectator"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	participation, err := env.participation.Resolve(ctx, f.event.ID)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	for _, p := range participation.Participants {
		if p.Name == "Spectator" {
			t.Error("participant without a wine counted as eligible")
		}
	}
}
