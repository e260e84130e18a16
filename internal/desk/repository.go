package desk

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Latency is the artificial delay applied to repository calls so console
// code behaves as if it talked to a remote backend.
type Latency struct {
	Read   time.Duration
	Write  time.Duration
	Upload time.Duration
}

// EquipmentRepository owns CRUD over the equipment collection.
//
// Every mutating call is a read-modify-write of the whole collection with no
// locking. Concurrent writers may clobber each other; callers serialize
// edits if they need to.
type EquipmentRepository struct {
	items    jsonCollection[Equipment]
	store    Store
	clock    Clock
	logger   Logger
	latency  Latency
	fixtures []Equipment
}

// NewEquipmentRepository creates a repository over store. events may be nil.
func NewEquipmentRepository(store Store, events *EventBus, clock Clock, logger Logger) *EquipmentRepository {
	return &EquipmentRepository{
		items:    jsonCollection[Equipment]{store: store, key: KeyEquipment, clock: clock, events: events},
		store:    store,
		clock:    clock,
		logger:   logger,
		fixtures: DefaultFixtures(),
	}
}

// SetLatency configures the simulated backend latency.
func (r *EquipmentRepository) SetLatency(l Latency) { r.latency = l }

// SetFixtures replaces the seed used on the first GetAll against an empty
// store.
func (r *EquipmentRepository) SetFixtures(items []Equipment) { r.fixtures = items }

// GetAll returns the full collection. The first call against a store that
// has never held the collection seeds it from the fixtures and persists it.
func (r *EquipmentRepository) GetAll(ctx context.Context) ([]Equipment, error) {
	if err := sleep(ctx, r.latency.Read); err != nil {
		return nil, err
	}

	items, ok, err := r.items.load(ctx)
	if err != nil {
		return nil, err
	}
	if ok {
		return items, nil
	}

	seed := make([]Equipment, len(r.fixtures))
	for i, f := range r.fixtures {
		seed[i] = f.Clone()
	}
	if err := r.items.save(ctx, seed, "seed", ""); err != nil {
		return nil, fmt.Errorf("seeding equipment: %w", err)
	}
	r.logger.Info("equipment seeded", "count", len(seed))
	return seed, nil
}

// Get returns one item by id.
func (r *EquipmentRepository) Get(ctx context.Context, id string) (Equipment, error) {
	items, err := r.GetAll(ctx)
	if err != nil {
		return Equipment{}, err
	}
	for _, e := range items {
		if e.ID == id {
			return e, nil
		}
	}
	return Equipment{}, &NotFoundError{Kind: "equipment", ID: id}
}

// Create appends item and persists the collection. The caller supplies the id.
func (r *EquipmentRepository) Create(ctx context.Context, item Equipment) (Equipment, error) {
	if err := item.Validate(); err != nil {
		return Equipment{}, err
	}
	item.SyncImageURL()

	items, err := r.GetAll(ctx)
	if err != nil {
		return Equipment{}, err
	}
	if err := sleep(ctx, r.latency.Write); err != nil {
		return Equipment{}, err
	}

	items = append(items, item)
	if err := r.items.save(ctx, items, "create", item.ID); err != nil {
		return Equipment{}, err
	}
	r.logger.Info("equipment created", "id", item.ID, "type", string(item.Type))
	return item, nil
}

// Update replaces the record with the same id. It is a whole-record replace;
// merging partial edits is the caller's job.
func (r *EquipmentRepository) Update(ctx context.Context, item Equipment) (Equipment, error) {
	if err := item.Validate(); err != nil {
		return Equipment{}, err
	}
	item.SyncImageURL()

	items, err := r.GetAll(ctx)
	if err != nil {
		return Equipment{}, err
	}
	if err := sleep(ctx, r.latency.Write); err != nil {
		return Equipment{}, err
	}

	idx := indexOf(items, item.ID)
	if idx < 0 {
		return Equipment{}, &NotFoundError{Kind: "equipment", ID: item.ID}
	}
	items[idx] = item

	if err := r.items.save(ctx, items, "update", item.ID); err != nil {
		return Equipment{}, err
	}
	r.logger.Debug("equipment updated", "id", item.ID)
	return item, nil
}

// Delete removes the record with id. Deleting a missing id is a no-op.
func (r *EquipmentRepository) Delete(ctx context.Context, id string) error {
	items, err := r.GetAll(ctx)
	if err != nil {
		return err
	}
	if err := sleep(ctx, r.latency.Write); err != nil {
		return err
	}

	idx := indexOf(items, id)
	if idx < 0 {
		return nil
	}
	items = append(items[:idx], items[idx+1:]...)

	if err := r.items.save(ctx, items, "delete", id); err != nil {
		return err
	}
	r.logger.Info("equipment deleted", "id", id)
	return nil
}

// UpdateWhere applies edit to every item matching match and persists the
// collection once. It returns the number of items edited.
func (r *EquipmentRepository) UpdateWhere(ctx context.Context, op string, match func(Equipment) bool, edit func(*Equipment)) (int, error) {
	items, err := r.GetAll(ctx)
	if err != nil {
		return 0, err
	}
	if err := sleep(ctx, r.latency.Write); err != nil {
		return 0, err
	}

	n := 0
	for i := range items {
		if !match(items[i]) {
			continue
		}
		edit(&items[i])
		items[i].SyncImageURL()
		n++
	}
	if n == 0 {
		return 0, nil
	}

	if err := r.items.save(ctx, items, op, ""); err != nil {
		return 0, err
	}
	return n, nil
}

// SetStatus changes the status of one item.
func (r *EquipmentRepository) SetStatus(ctx context.Context, id string, status EquipmentStatus) (Equipment, error) {
	if !status.Valid() {
		return Equipment{}, fmt.Errorf("unknown equipment status: %q", status)
	}
	return r.modify(ctx, id, func(e *Equipment) { e.Status = status })
}

// ToggleOnline flips the connectivity flag. Status is not affected.
func (r *EquipmentRepository) ToggleOnline(ctx context.Context, id string) (Equipment, error) {
	return r.modify(ctx, id, func(e *Equipment) { e.IsOnline = !e.IsOnline })
}

// Relocate moves an item to a folder and optionally a map position. A nil
// position clears the coordinates.
func (r *EquipmentRepository) Relocate(ctx context.Context, id, location string, pos *LatLng) (Equipment, error) {
	if pos != nil && !pos.Valid() {
		return Equipment{}, fmt.Errorf("invalid coordinates %v,%v", pos.Lat, pos.Lng)
	}
	return r.modify(ctx, id, func(e *Equipment) {
		e.Location = strings.TrimSpace(location)
		e.SetCoordinates(pos)
	})
}

// AddImages appends image references and keeps imageUrl in sync.
func (r *EquipmentRepository) AddImages(ctx context.Context, id string, uris ...string) (Equipment, error) {
	return r.modify(ctx, id, func(e *Equipment) { e.Images = append(e.Images, uris...) })
}

func (r *EquipmentRepository) modify(ctx context.Context, id string, edit func(*Equipment)) (Equipment, error) {
	current, err := r.Get(ctx, id)
	if err != nil {
		return Equipment{}, err
	}
	next := current.Clone()
	edit(&next)
	return r.Update(ctx, next)
}

// WarrantyAlert pairs an item with its non-OK warranty state.
type WarrantyAlert struct {
	Equipment Equipment     `json:"equipment"`
	State     WarrantyState `json:"state"`
}

// WarrantyAlerts returns items whose warranty is WARNING or EXPIRED as of
// today, most urgent first. Items flagged noWarranty are skipped.
func (r *EquipmentRepository) WarrantyAlerts(ctx context.Context, today time.Time) ([]WarrantyAlert, error) {
	items, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	var alerts []WarrantyAlert
	for _, e := range items {
		expiry, ok, err := e.Warranty()
		if err != nil {
			r.logger.Warn("skipping unparseable warranty date", "id", e.ID, "error", err)
			continue
		}
		if !ok {
			continue
		}
		state := EvaluateWarranty(expiry, today)
		if state.Status == WarrantyOK {
			continue
		}
		alerts = append(alerts, WarrantyAlert{Equipment: e, State: state})
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].State.Remaining < alerts[j].State.Remaining
	})
	return alerts, nil
}

func indexOf(items []Equipment, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}
