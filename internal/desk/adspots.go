package desk

import (
	"context"
	"fmt"
)

// AdSpotType is the media type of an advertising placement.
type AdSpotType string

const (
	SpotPier          AdSpotType = "PIER"
	SpotBoat          AdSpotType = "BOAT"
	SpotDigitalScreen AdSpotType = "DIGITAL_SCREEN"
	SpotLightbox      AdSpotType = "LIGHTBOX"
	SpotBillboard     AdSpotType = "BILLBOARD"
)

// AdSpot is an advertising placement shown on the map. Boats carry a route
// the map animates along.
type AdSpot struct {
	ID     string     `json:"id"`
	Name   string     `json:"name"`
	Type   AdSpotType `json:"type"`
	IsBoat bool       `json:"isBoat,omitempty"`
	Lat    *float64   `json:"lat,omitempty"`
	Lng    *float64   `json:"lng,omitempty"`
	Route  []LatLng   `json:"route,omitempty"`
}

// Coordinates returns the spot position when both lat and lng are present.
func (s *AdSpot) Coordinates() (LatLng, bool) {
	if s.Lat == nil || s.Lng == nil {
		return LatLng{}, false
	}
	return LatLng{Lat: *s.Lat, Lng: *s.Lng}, true
}

// Clone returns a deep copy.
func (s AdSpot) Clone() AdSpot {
	c := s
	if s.Lat != nil {
		lat := *s.Lat
		c.Lat = &lat
	}
	if s.Lng != nil {
		lng := *s.Lng
		c.Lng = &lng
	}
	if s.Route != nil {
		c.Route = append([]LatLng(nil), s.Route...)
	}
	return c
}

// AdSpotRepository stores ad spots. The map route editor commits drafts
// through Update.
type AdSpotRepository struct {
	spots  jsonCollection[AdSpot]
	logger Logger
}

func NewAdSpotRepository(store Store, events *EventBus, clock Clock, logger Logger) *AdSpotRepository {
	return &AdSpotRepository{
		spots:  jsonCollection[AdSpot]{store: store, key: KeyAdSpots, clock: clock, events: events},
		logger: logger,
	}
}

// List returns every ad spot. An empty store is seeded with the default
// placements.
func (r *AdSpotRepository) List(ctx context.Context) ([]AdSpot, error) {
	spots, ok, err := r.spots.load(ctx)
	if err != nil {
		return nil, err
	}
	if ok {
		return spots, nil
	}
	seed := DefaultAdSpots()
	if err := r.spots.save(ctx, seed, "seed", ""); err != nil {
		return nil, fmt.Errorf("seeding ad spots: %w", err)
	}
	return seed, nil
}

// Create appends a spot. The caller supplies the id.
func (r *AdSpotRepository) Create(ctx context.Context, spot AdSpot) (AdSpot, error) {
	if spot.ID == "" {
		return AdSpot{}, fmt.Errorf("ad spot id is required")
	}
	spots, err := r.List(ctx)
	if err != nil {
		return AdSpot{}, err
	}
	if err := r.spots.save(ctx, append(spots, spot), "create", spot.ID); err != nil {
		return AdSpot{}, err
	}
	return spot, nil
}

// Update replaces the spot with the same id.
func (r *AdSpotRepository) Update(ctx context.Context, spot AdSpot) (AdSpot, error) {
	spots, err := r.List(ctx)
	if err != nil {
		return AdSpot{}, err
	}
	for i := range spots {
		if spots[i].ID == spot.ID {
			spots[i] = spot
			if err := r.spots.save(ctx, spots, "update", spot.ID); err != nil {
				return AdSpot{}, err
			}
			r.logger.Debug("ad spot updated", "id", spot.ID, "route_points", len(spot.Route))
			return spot, nil
		}
	}
	return AdSpot{}, &NotFoundError{Kind: "ad spot", ID: spot.ID}
}
