package desk_test

import (
	"context"
	"errors"
	"testing"

	"riverdesk/internal/desk"
	"riverdesk/internal/testutil"
)

func TestAdSpotRepository(t *testing.T) {
	ctx := context.Background()
	repo := desk.NewAdSpotRepository(testutil.NewTestStore(), nil, testutil.FixedClock(), desk.NewNopLogger())

	spots, err := repo.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(spots) != len(desk.DefaultAdSpots()) {
		t.Fatalf("seeded %d spots, want %d", len(spots), len(desk.DefaultAdSpots()))
	}

	if _, err := repo.Create(ctx, desk.AdSpot{Name: "no id"}); err == nil {
		t.Error("Create() accepted spot without id")
	}
	lat, lng := 13.75, 100.49
	if _, err := repo.Create(ctx, desk.AdSpot{ID: "spot-new", Name: "New", Type: desk.SpotBillboard, Lat: &lat, Lng: &lng}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	boat := spots[len(spots)-1]
	if !boat.IsBoat || len(boat.Route) < 2 {
		t.Fatalf("expected last fixture to be a routed boat: %+v", boat)
	}
	edited := boat.Clone()
	edited.Route = edited.Route[:2]
	if _, err := repo.Update(ctx, edited); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	spots, _ = repo.List(ctx)
	for _, s := range spots {
		if s.ID == boat.ID && len(s.Route) != 2 {
			t.Errorf("route length = %d, want 2", len(s.Route))
		}
	}

	var nf *desk.NotFoundError
	if _, err := repo.Update(ctx, desk.AdSpot{ID: "ghost"}); !errors.As(err, &nf) {
		t.Errorf("Update(ghost) error = %v, want NotFoundError", err)
	}
}

func TestAdSpot_CloneDoesNotAlias(t *testing.T) {
	spot := desk.DefaultAdSpots()[3]
	c := spot.Clone()
	c.Route[0].Lat = 0
	if spot.Route[0].Lat == 0 {
		t.Error("route aliased by clone")
	}
}
