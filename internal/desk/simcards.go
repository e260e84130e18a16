package desk

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SimCardStatus is the state of a SIM card.
type SimCardStatus string

const (
	SimActive SimCardStatus = "ACTIVE"
	SimBroken SimCardStatus = "BROKEN"
	SimLost   SimCardStatus = "LOST"
)

func (s SimCardStatus) Valid() bool {
	switch s {
	case SimActive, SimBroken, SimLost:
		return true
	}
	return false
}

// ParseSimCardStatus accepts the canonical form, case-insensitively.
func ParseSimCardStatus(raw string) (SimCardStatus, error) {
	s := SimCardStatus(strings.ToUpper(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", fmt.Errorf("unknown sim card status: %q", raw)
	}
	return s, nil
}

// SimCard is a secondary tracked asset. The phone number is the display
// identity but is not enforced unique.
type SimCard struct {
	ID          string        `json:"id"`
	PhoneNumber string        `json:"phoneNumber"`
	Status      SimCardStatus `json:"status"`
	Location    string        `json:"location,omitempty"`
	Notes       string        `json:"notes,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// SimCardRepository stores SIM cards in their own collection.
type SimCardRepository struct {
	cards  jsonCollection[SimCard]
	clock  Clock
	logger Logger
}

func NewSimCardRepository(store Store, events *EventBus, clock Clock, logger Logger) *SimCardRepository {
	return &SimCardRepository{
		cards:  jsonCollection[SimCard]{store: store, key: KeySimCards, clock: clock, events: events},
		clock:  clock,
		logger: logger,
	}
}

// List returns every SIM card.
func (r *SimCardRepository) List(ctx context.Context) ([]SimCard, error) {
	cards, _, err := r.cards.load(ctx)
	return cards, err
}

// Create assigns a time-based id and both timestamps, then appends the card.
func (r *SimCardRepository) Create(ctx context.Context, card SimCard) (SimCard, error) {
	if strings.TrimSpace(card.PhoneNumber) == "" {
		return SimCard{}, fmt.Errorf("phone number is required")
	}
	if card.Status == "" {
		card.Status = SimActive
	}
	if !card.Status.Valid() {
		return SimCard{}, fmt.Errorf("unknown sim card status: %q", card.Status)
	}

	cards, err := r.List(ctx)
	if err != nil {
		return SimCard{}, err
	}

	now := r.clock.Now().UTC()
	card.ID = strconv.FormatInt(now.UnixMilli(), 10)
	for simIndex(cards, card.ID) >= 0 {
		now = now.Add(time.Millisecond)
		card.ID = strconv.FormatInt(now.UnixMilli(), 10)
	}
	card.CreatedAt = now
	card.UpdatedAt = now

	if err := r.cards.save(ctx, append(cards, card), "create", card.ID); err != nil {
		return SimCard{}, err
	}
	r.logger.Info("sim card created", "id", card.ID)
	return card, nil
}

// Update replaces a card and refreshes its updated timestamp.
func (r *SimCardRepository) Update(ctx context.Context, card SimCard) (SimCard, error) {
	if !card.Status.Valid() {
		return SimCard{}, fmt.Errorf("unknown sim card status: %q", card.Status)
	}
	cards, err := r.List(ctx)
	if err != nil {
		return SimCard{}, err
	}
	idx := simIndex(cards, card.ID)
	if idx < 0 {
		return SimCard{}, &NotFoundError{Kind: "sim card", ID: card.ID}
	}
	card.CreatedAt = cards[idx].CreatedAt
	card.UpdatedAt = r.clock.Now().UTC()
	cards[idx] = card

	if err := r.cards.save(ctx, cards, "update", card.ID); err != nil {
		return SimCard{}, err
	}
	return card, nil
}

// SetStatus changes only the status of a card.
func (r *SimCardRepository) SetStatus(ctx context.Context, id string, status SimCardStatus) (SimCard, error) {
	cards, err := r.List(ctx)
	if err != nil {
		return SimCard{}, err
	}
	idx := simIndex(cards, id)
	if idx < 0 {
		return SimCard{}, &NotFoundError{Kind: "sim card", ID: id}
	}
	card := cards[idx]
	card.Status = status
	return r.Update(ctx, card)
}

// Delete removes a card. Missing ids are ignored.
func (r *SimCardRepository) Delete(ctx context.Context, id string) error {
	cards, err := r.List(ctx)
	if err != nil {
		return err
	}
	idx := simIndex(cards, id)
	if idx < 0 {
		return nil
	}
	return r.cards.save(ctx, append(cards[:idx], cards[idx+1:]...), "delete", id)
}

func simIndex(cards []SimCard, id string) int {
	for i := range cards {
		if cards[i].ID == id {
			return i
		}
	}
	return -1
}
