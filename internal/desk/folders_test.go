package desk_test

import (
	"reflect"
	"testing"

	"riverdesk/internal/desk"
	"riverdesk/internal/testutil"
)

func located(id, location string) desk.Equipment {
	e := testutil.Equipment(id)
	e.Location = location
	return e
}

func TestGroupByFolder(t *testing.T) {
	items := []desk.Equipment{
		located("a", "Sathorn"),
		located("b", " Sathorn "),
		located("c", ""),
		located("d", "Tha Chang"),
		located("e", "   "),
	}

	groups := desk.GroupByFolder(items, []string{"Spare Room", "Sathorn", "  "})

	want := map[string][]string{
		"Sathorn":              {"a", "b"},
		"Tha Chang":            {"d"},
		"Spare Room":           {},
		desk.UnspecifiedFolder: {"c", "e"},
	}
	if len(groups) != len(want) {
		t.Fatalf("got %d folders, want %d: %v", len(groups), len(want), desk.FolderNames(groups))
	}
	for name, ids := range want {
		got, ok := groups[name]
		if !ok {
			t.Errorf("folder %q missing", name)
			continue
		}
		gotIDs := []string{}
		for _, e := range got {
			gotIDs = append(gotIDs, e.ID)
		}
		if !reflect.DeepEqual(gotIDs, ids) {
			t.Errorf("folder %q = %v, want %v", name, gotIDs, ids)
		}
	}
}

func TestGroupByFolder_EveryItemInExactlyOneFolder(t *testing.T) {
	items := desk.DefaultFixtures()
	groups := desk.GroupByFolder(items, []string{"Empty"})

	seen := map[string]int{}
	for name, group := range groups {
		for _, e := range group {
			seen[e.ID]++
			if e.FolderName() != name {
				t.Errorf("item %s grouped under %q, location %q", e.ID, name, e.Location)
			}
		}
	}
	for _, e := range items {
		if seen[e.ID] != 1 {
			t.Errorf("item %s appears %d times", e.ID, seen[e.ID])
		}
	}
}

func TestFolderNames(t *testing.T) {
	groups := map[string][]desk.Equipment{
		desk.UnspecifiedFolder: nil,
		"สาทร":                 nil,
		"เจริญกรุง":            nil,
		"กรุงเทพ":              nil,
		"ท่าช้าง":              nil,
	}

	got := desk.FolderNames(groups)
	want := []string{"กรุงเทพ", "เจริญกรุง", "ท่าช้าง", "สาทร", desk.UnspecifiedFolder}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FolderNames() = %v, want %v", got, want)
	}
}

func TestFolderNames_UnspecifiedOnlyWhenPresent(t *testing.T) {
	got := desk.FolderNames(map[string][]desk.Equipment{"A": nil})
	if !reflect.DeepEqual(got, []string{"A"}) {
		t.Errorf("FolderNames() = %v", got)
	}
}

func TestSortFolderContents(t *testing.T) {
	today := testutil.FixedClock().Now()

	mk := func(id, purchase, expiry string, noWarranty bool) desk.Equipment {
		e := testutil.Equipment(id)
		e.PurchaseDate = purchase
		e.WarrantyExpireDate = expiry
		e.NoWarranty = noWarranty
		return e
	}

	items := []desk.Equipment{
		mk("late-purchase", "2025-03-01", "2025-07-01", false),
		mk("no-warranty", "2025-01-01", "", true),
		mk("later-expiry", "2025-01-01", "2026-01-01", false),
		mk("early-expiry", "2025-01-01", "2025-06-20", false),
		mk("b-tie", "2024-12-01", "2025-12-01", false),
		mk("a-tie", "2024-12-01", "2025-12-01", false),
	}
	input := append([]desk.Equipment(nil), items...)

	got := desk.SortFolderContents(items, today)

	var ids []string
	for _, e := range got {
		ids = append(ids, e.ID)
	}
	want := []string{"a-tie", "b-tie", "early-expiry", "later-expiry", "no-warranty", "late-purchase"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("order = %v, want %v", ids, want)
	}
	if !reflect.DeepEqual(items, input) {
		t.Error("SortFolderContents modified its input")
	}
}
