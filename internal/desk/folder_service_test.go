package desk_test

import (
	"context"
	"errors"
	"testing"

	"riverdesk/internal/desk"
	"riverdesk/internal/testutil"
)

func newFolderService(t *testing.T, items ...desk.Equipment) (*desk.FolderService, *desk.EquipmentRepository) {
	t.Helper()
	clock := testutil.FixedClock()
	store := testutil.NewTestStore()
	repo := desk.NewEquipmentRepository(store, nil, clock, desk.NewNopLogger())
	repo.SetFixtures(items)
	return desk.NewFolderService(repo, store, nil, clock, desk.NewNopLogger()), repo
}

func TestFolderService_Create(t *testing.T) {
	ctx := context.Background()
	svc, _ := newFolderService(t, located("a", "Sathorn"))

	if err := svc.Create(ctx, "  Spare Room "); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	groups, err := svc.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if items, ok := groups["Spare Room"]; !ok || len(items) != 0 {
		t.Errorf("new folder = %v, %v; want present and empty", items, ok)
	}

	tests := []struct {
		name string
		in   string
	}{
		{"duplicate empty folder", "Spare Room"},
		{"duplicate derived folder", "Sathorn"},
		{"sentinel", desk.UnspecifiedFolder},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Create(ctx, tt.in)
			var dup *desk.DuplicateFolderError
			if !errors.As(err, &dup) {
				t.Errorf("Create(%q) error = %v, want DuplicateFolderError", tt.in, err)
			}
		})
	}

	if err := svc.Create(ctx, "   "); err == nil {
		t.Error("Create() accepted a blank name")
	}

	// Names are case sensitive.
	if err := svc.Create(ctx, "sathorn"); err != nil {
		t.Errorf("Create(sathorn) error = %v", err)
	}
}

func TestFolderService_Delete(t *testing.T) {
	ctx := context.Background()
	svc, repo := newFolderService(t,
		located("a", "Sathorn"),
		located("b", " Sathorn"),
		located("c", "Tha Chang"),
	)
	if err := svc.Create(ctx, "Spare Room"); err != nil {
		t.Fatal(err)
	}

	n, err := svc.Delete(ctx, "Sathorn")
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if n != 2 {
		t.Errorf("released %d items, want 2", n)
	}

	items, _ := repo.GetAll(ctx)
	if len(items) != 3 {
		t.Fatalf("item count changed to %d", len(items))
	}
	for _, e := range items {
		if e.ID != "c" && e.Location != "" {
			t.Errorf("item %s location = %q, want cleared", e.ID, e.Location)
		}
	}

	groups, _ := svc.List(ctx)
	if _, ok := groups["Sathorn"]; ok {
		t.Error("deleted folder still listed")
	}
	if len(groups[desk.UnspecifiedFolder]) != 2 {
		t.Errorf("unspecified folder has %d items, want 2", len(groups[desk.UnspecifiedFolder]))
	}

	if _, err := svc.Delete(ctx, "Spare Room"); err != nil {
		t.Fatalf("Delete(empty folder) error = %v", err)
	}
	empty, _ := svc.EmptyFolders(ctx)
	if len(empty) != 0 {
		t.Errorf("EmptyFolders() = %v, want none", empty)
	}
}

func TestFolderService_Move(t *testing.T) {
	ctx := context.Background()
	lat, lng := 13.7, 100.5
	a := located("a", "Sathorn")
	a.Lat, a.Lng = &lat, &lng
	svc, repo := newFolderService(t, a, located("b", ""))

	n, err := svc.Move(ctx, []string{"a", "b"}, "Tha Chang")
	if err != nil || n != 2 {
		t.Fatalf("Move() = %d, %v", n, err)
	}
	got, _ := repo.Get(ctx, "a")
	if got.Location != "Tha Chang" {
		t.Errorf("Location = %q", got.Location)
	}
	if _, ok := got.Coordinates(); !ok {
		t.Error("Move() cleared coordinates")
	}

	if _, err := svc.Move(ctx, []string{"a"}, desk.UnspecifiedFolder); err != nil {
		t.Fatal(err)
	}
	got, _ = repo.Get(ctx, "a")
	if got.Location != "" {
		t.Errorf("moving to unspecified left location %q", got.Location)
	}

	_, err = svc.Move(ctx, []string{"missing"}, "X")
	var nf *desk.NotFoundError
	if !errors.As(err, &nf) {
		t.Errorf("Move(missing) error = %v, want NotFoundError", err)
	}
}

func TestFolderService_Rename(t *testing.T) {
	ctx := context.Background()
	svc, repo := newFolderService(t, located("a", "Old"), located("b", "Other"))
	if err := svc.Create(ctx, "Empty"); err != nil {
		t.Fatal(err)
	}

	n, err := svc.Rename(ctx, "Old", "New")
	if err != nil || n != 1 {
		t.Fatalf("Rename() = %d, %v", n, err)
	}
	got, _ := repo.Get(ctx, "a")
	if got.Location != "New" {
		t.Errorf("Location = %q, want New", got.Location)
	}

	if _, err := svc.Rename(ctx, "Empty", "Still Empty"); err != nil {
		t.Fatalf("Rename(empty) error = %v", err)
	}
	empty, _ := svc.EmptyFolders(ctx)
	if len(empty) != 1 || empty[0] != "Still Empty" {
		t.Errorf("EmptyFolders() = %v", empty)
	}

	var dup *desk.DuplicateFolderError
	if _, err := svc.Rename(ctx, "New", "Other"); !errors.As(err, &dup) {
		t.Errorf("Rename onto existing error = %v, want DuplicateFolderError", err)
	}
	if _, err := svc.Rename(ctx, "Nope", "Whatever"); err == nil {
		t.Error("Rename of unknown folder succeeded")
	}
}

func TestFolderService_Contents(t *testing.T) {
	ctx := context.Background()
	late := located("late", "Sathorn")
	late.PurchaseDate = "2025-05-01"
	early := located("early", "Sathorn")
	early.PurchaseDate = "2024-05-01"
	svc, _ := newFolderService(t, late, early)

	items, err := svc.Contents(ctx, " Sathorn ")
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 || items[0].ID != "early" {
		t.Errorf("Contents() order = %v", items)
	}

	items, err = svc.Contents(ctx, "Nowhere")
	if err != nil || len(items) != 0 {
		t.Errorf("Contents(unknown) = %v, %v", items, err)
	}
}
