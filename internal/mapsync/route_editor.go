package mapsync

import (
	"context"
	"fmt"

	"riverdesk/internal/desk"
)

// ErrNotEditing is returned by RouteEditor calls made without an open draft.
var ErrNotEditing = fmt.Errorf("no route is being edited")

// RouteEditor holds the pending route of one ad spot. Clicks, drags and
// handle removals change only the draft; the ad-spot collection is written
// on Save.
type RouteEditor struct {
	spots *desk.AdSpotRepository
	draft *desk.AdSpot
}

func NewRouteEditor(spots *desk.AdSpotRepository) *RouteEditor {
	return &RouteEditor{spots: spots}
}

// Begin opens a draft copy of spot, replacing any open draft.
func (r *RouteEditor) Begin(spot desk.AdSpot) {
	d := spot.Clone()
	r.draft = &d
}

// Draft returns the open draft or nil. The synchronizer reads it to
// suppress the spot's static overlays.
func (r *RouteEditor) Draft() *desk.AdSpot {
	return r.draft
}

// ClickMap appends a route point at the clicked position.
func (r *RouteEditor) ClickMap(p desk.LatLng) error {
	if r.draft == nil {
		return ErrNotEditing
	}
	if !p.Valid() {
		return fmt.Errorf("invalid route point %v,%v", p.Lat, p.Lng)
	}
	r.draft.Route = append(r.draft.Route, p)
	return nil
}

// DragHandle moves point i to p.
func (r *RouteEditor) DragHandle(i int, p desk.LatLng) error {
	if err := r.checkIndex(i); err != nil {
		return err
	}
	if !p.Valid() {
		return fmt.Errorf("invalid route point %v,%v", p.Lat, p.Lng)
	}
	r.draft.Route[i] = p
	return nil
}

// RemoveHandle deletes point i. This is the handle's alternate activation.
func (r *RouteEditor) RemoveHandle(i int) error {
	if err := r.checkIndex(i); err != nil {
		return err
	}
	r.draft.Route = append(r.draft.Route[:i], r.draft.Route[i+1:]...)
	return nil
}

// Save commits the draft to the ad-spot collection and closes it. On error
// the draft stays open so the user can retry.
func (r *RouteEditor) Save(ctx context.Context) (desk.AdSpot, error) {
	if r.draft == nil {
		return desk.AdSpot{}, ErrNotEditing
	}
	saved, err := r.spots.Update(ctx, r.draft.Clone())
	if err != nil {
		return desk.AdSpot{}, fmt.Errorf("saving route of %s: %w", r.draft.ID, err)
	}
	r.draft = nil
	return saved, nil
}

// Cancel drops the draft without writing anything.
func (r *RouteEditor) Cancel() {
	r.draft = nil
}

func (r *RouteEditor) checkIndex(i int) error {
	if r.draft == nil {
		return ErrNotEditing
	}
	if i < 0 || i >= len(r.draft.Route) {
		return fmt.Errorf("route point %d out of range (have %d)", i, len(r.draft.Route))
	}
	return nil
}
