package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"riverdesk/internal/database/migrations"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func TestSQLiteStore_UpdatedAt(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2025, 6, 15, 3, 30, 0, 0, time.UTC)

	s, err := NewSQLiteStore(":memory:", fixedClock{at})
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	defer s.Close()

	if _, ok, err := s.UpdatedAt(ctx, "missing"); err != nil || ok {
		t.Errorf("UpdatedAt(missing) = _, %v, %v; want false, nil", ok, err)
	}

	if err := s.Set(ctx, "riverdesk.equipment", []byte("[]")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, ok, err := s.UpdatedAt(ctx, "riverdesk.equipment")
	if err != nil || !ok {
		t.Fatalf("UpdatedAt() = _, %v, %v", ok, err)
	}
	if !got.Equal(at) {
		t.Errorf("UpdatedAt() = %v, want %v", got, at)
	}
}

func TestSQLiteStore_ValidateSetup(t *testing.T) {
	s, err := NewSQLiteStore(":memory:", nil)
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	defer s.Close()

	if err := s.ValidateSetup(); err != nil {
		t.Errorf("ValidateSetup() error = %v", err)
	}
}

func TestSQLiteStore_FileReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "desk.db")

	s, err := NewSQLiteStore(path, nil)
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	if err := s.Set(ctx, "k", []byte("v1")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := s.Set(ctx, "k", []byte("v2")); err != nil {
		t.Fatalf("Set() upsert error = %v", err)
	}
	s.Close()

	s, err = NewSQLiteStore(path, nil)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer s.Close()

	got, ok, err := s.Get(ctx, "k")
	if err != nil || !ok || string(got) != "v2" {
		t.Errorf("Get() after reopen = %q, %v, %v; want v2", got, ok, err)
	}
	if err := migrations.CheckDBMigrationStatus(s.db.DB); err != nil {
		t.Errorf("CheckDBMigrationStatus() error = %v", err)
	}
}
