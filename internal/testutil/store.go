package testutil

import (
	"context"
	"errors"
	"sync"
	"testing"

	"riverdesk/internal/database"
	"riverdesk/internal/desk"
	"riverdesk/internal/kv"
)

// NewTestStore creates a new in-memory store for testing.
func NewTestStore() *kv.MemoryStore {
	return kv.NewMemoryStore()
}

// NewTestSQLiteStore creates an in-memory SQLite store with the schema
// migrated. It is closed when the test completes.
func NewTestSQLiteStore(t *testing.T) *database.SQLiteStore {
	t.Helper()
	s, err := database.NewSQLiteStore(":memory:", nil)
	if err != nil {
		t.Fatalf("failed to open sqlite store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// NewTestRepository returns an equipment repository over a fresh memory
// store with no latency. fixtures seeds the first GetAll; pass none for an
// empty collection.
func NewTestRepository(clock desk.Clock, fixtures ...desk.Equipment) (*desk.EquipmentRepository, *kv.MemoryStore) {
	store := NewTestStore()
	repo := desk.NewEquipmentRepository(store, nil, clock, desk.NewNopLogger())
	repo.SetFixtures(fixtures)
	return repo, store
}

// ErrQuotaExceeded is returned by FailingStore.
var ErrQuotaExceeded = errors.New("quota exceeded")

// FailingStore wraps a store and fails writes once FailWrites is set.
type FailingStore struct {
	desk.Store

	mu         sync.Mutex
	failWrites bool
	failReads  bool
}

func NewFailingStore(inner desk.Store) *FailingStore {
	return &FailingStore{Store: inner}
}

// FailWrites makes every subsequent Set and Remove fail.
func (s *FailingStore) FailWrites(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWrites = fail
}

// FailReads makes every subsequent Get fail.
func (s *FailingStore) FailReads(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failReads = fail
}

func (s *FailingStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	fail := s.failReads
	s.mu.Unlock()
	if fail {
		return nil, false, ErrQuotaExceeded
	}
	return s.Store.Get(ctx, key)
}

func (s *FailingStore) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	fail := s.failWrites
	s.mu.Unlock()
	if fail {
		return ErrQuotaExceeded
	}
	return s.Store.Set(ctx, key, value)
}

func (s *FailingStore) Remove(ctx context.Context, key string) error {
	s.mu.Lock()
	fail := s.failWrites
	s.mu.Unlock()
	if fail {
		return ErrQuotaExceeded
	}
	return s.Store.Remove(ctx, key)
}

// Equipment builds a valid record for tests. Callers override fields on the
// returned value.
func Equipment(id string) desk.Equipment {
	return desk.Equipment{
		ID:                 id,
		Name:               "item " + id,
		SerialNumber:       "SN-" + id,
		Type:               desk.TypeTV,
		Status:             desk.StatusAvailable,
		PurchaseDate:       "2025-01-01",
		WarrantyExpireDate: "2026-01-01",
	}
}
