package mapsync

import (
	"riverdesk/internal/desk"
)

// Filter narrows the ad spots shown on the map. The zero value shows
// everything.
type Filter struct {
	Types         []desk.AdSpotType `json:"types,omitempty"` // empty means all types
	BoatsOnly     bool              `json:"boatsOnly,omitempty"`
	HideEquipment bool              `json:"hideEquipment,omitempty"`
}

// Match reports whether spot passes the filter.
func (f Filter) Match(spot desk.AdSpot) bool {
	if f.BoatsOnly && !spot.IsBoat {
		return false
	}
	if len(f.Types) == 0 {
		return true
	}
	for _, t := range f.Types {
		if t == spot.Type {
			return true
		}
	}
	return false
}

// View is everything the map renders from.
type View struct {
	Equipment []desk.Equipment
	Spots     []desk.AdSpot
	Filter    Filter

	// Draft is the route being edited, if any. The spot's static marker,
	// route and animation are suppressed in favor of edit handles.
	Draft *desk.AdSpot

	// FocusID asks the map to fly to and select an equipment item or spot.
	FocusID string
}

func (v View) editingID() string {
	if v.Draft == nil {
		return ""
	}
	return v.Draft.ID
}

// Plan is the set of static overlays a View calls for. Animated markers are
// not part of it; the synchronizer owns them separately.
type Plan struct {
	Markers   map[string]Marker
	Polylines map[string]Polyline
	// Animated lists the spots whose route gets a moving marker.
	Animated []desk.AdSpot
}

// Build computes the overlays for v. It is a pure function of v.
func Build(v View) Plan {
	p := Plan{
		Markers:   make(map[string]Marker),
		Polylines: make(map[string]Polyline),
	}

	if !v.Filter.HideEquipment {
		for _, e := range v.Equipment {
			pos, ok := e.Coordinates()
			if !ok || !pos.Valid() || e.Status == desk.StatusLost {
				continue
			}
			id := equipmentMarkerID(e.ID)
			p.Markers[id] = Marker{
				ID:       id,
				Kind:     KindEquipment,
				RefID:    e.ID,
				Label:    e.Name,
				Position: pos,
				Color:    StatusColor(e.Status),
			}
		}
	}

	editing := v.editingID()
	for _, s := range visibleSpots(v) {
		if s.ID == editing {
			continue
		}
		color := SpotColor(s)
		if pos, ok := s.Coordinates(); ok && pos.Valid() {
			id := spotMarkerID(s.ID)
			p.Markers[id] = Marker{ID: id, Kind: KindSpot, RefID: s.ID, Label: s.Name, Position: pos, Color: color}
		}
		if len(s.Route) >= 2 {
			id := routeID(s.ID)
			p.Polylines[id] = Polyline{ID: id, RefID: s.ID, Points: append([]desk.LatLng(nil), s.Route...), Color: color}
			p.Animated = append(p.Animated, s)
		}
	}

	if v.Draft != nil {
		d := v.Draft
		for i, pt := range d.Route {
			id := handleMarkerID(d.ID, i)
			p.Markers[id] = Marker{ID: id, Kind: KindHandle, RefID: d.ID, Position: pt, Color: handleColor}
		}
		if len(d.Route) >= 2 {
			id := draftRouteID(d.ID)
			p.Polylines[id] = Polyline{ID: id, RefID: d.ID, Points: append([]desk.LatLng(nil), d.Route...), Color: SpotColor(*d), Dashed: true}
		}
	}
	return p
}

func visibleSpots(v View) []desk.AdSpot {
	var out []desk.AdSpot
	for _, s := range v.Spots {
		if v.Filter.Match(s) {
			out = append(out, s)
		}
	}
	return out
}
