package desk_test

import (
	"context"
	"testing"
	"time"

	"riverdesk/internal/desk"
	"riverdesk/internal/testutil"
)

func TestLongPress(t *testing.T) {
	t.Run("fires once after duration", func(t *testing.T) {
		clock := testutil.FixedClock()
		fired := 0
		p := desk.NewLongPress(clock, time.Second, func() { fired++ })

		p.Press()
		p.Press() // ignored while armed
		clock.Advance(999 * time.Millisecond)
		if fired != 0 {
			t.Fatal("fired early")
		}
		clock.Advance(time.Millisecond)
		clock.Advance(time.Hour)
		if fired != 1 {
			t.Errorf("fired %d times, want 1", fired)
		}
		if p.Armed() {
			t.Error("still armed after firing")
		}
	})

	t.Run("release cancels", func(t *testing.T) {
		clock := testutil.FixedClock()
		fired := false
		p := desk.NewLongPress(clock, time.Second, func() { fired = true })

		p.Press()
		clock.Advance(500 * time.Millisecond)
		if !p.Release() {
			t.Error("Release() = false for armed press")
		}
		if p.Release() {
			t.Error("second Release() = true")
		}
		clock.Advance(time.Second)
		if fired {
			t.Error("action ran after release")
		}
	})

	t.Run("release before press is a no-op", func(t *testing.T) {
		p := desk.NewLongPress(testutil.FixedClock(), time.Second, func() {})
		if p.Release() {
			t.Error("Release() = true without press")
		}
	})

	t.Run("re-press after release starts fresh", func(t *testing.T) {
		clock := testutil.FixedClock()
		fired := 0
		p := desk.NewLongPress(clock, time.Second, func() { fired++ })

		p.Press()
		clock.Advance(900 * time.Millisecond)
		p.Release()
		p.Press()
		clock.Advance(900 * time.Millisecond)
		if fired != 0 {
			t.Fatal("old timer fired after re-press")
		}
		clock.Advance(100 * time.Millisecond)
		if fired != 1 {
			t.Errorf("fired %d times, want 1", fired)
		}
	})
}

func TestDeleteGesture(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*testutil.StubClock, *desk.EquipmentRepository) {
		t.Helper()
		clock := testutil.FixedClock()
		repo, _ := testutil.NewTestRepository(clock, testutil.Equipment("eq-1"), testutil.Equipment("eq-2"))
		return clock, repo
	}

	t.Run("released before two seconds keeps item", func(t *testing.T) {
		clock, repo := setup(t)
		g := desk.NewDeleteGesture(repo, clock, "eq-1", nil)

		g.Press()
		clock.Advance(1900 * time.Millisecond)
		g.Release()
		clock.Advance(time.Second)

		if _, err := repo.Get(ctx, "eq-1"); err != nil {
			t.Errorf("item deleted: %v", err)
		}
	})

	t.Run("held two seconds deletes item", func(t *testing.T) {
		clock, repo := setup(t)
		called := false
		var result error
		g := desk.NewDeleteGesture(repo, clock, "eq-1", func(err error) {
			called = true
			result = err
		})

		g.Press()
		clock.Advance(desk.LongPressDuration)

		if !called || result != nil {
			t.Fatalf("delete called = %v, result = %v", called, result)
		}
		if _, err := repo.Get(ctx, "eq-1"); err == nil {
			t.Error("item still present")
		}
		if _, err := repo.Get(ctx, "eq-2"); err != nil {
			t.Error("other item removed")
		}
		if g.Release() {
			t.Error("Release() after firing = true")
		}
	})
}
