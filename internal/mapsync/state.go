package mapsync

import (
	"sort"
	"sync"

	"riverdesk/internal/desk"
)

// Snapshot is the content of a StateOverlay at one instant.
type Snapshot struct {
	Markers   []Marker     `json:"markers"`
	Polylines []Polyline   `json:"polylines"`
	Center    *desk.LatLng `json:"center,omitempty"`
	Zoom      int          `json:"zoom,omitempty"`
}

// StateOverlay is an Overlay that only remembers what is drawn. It backs
// the live map served to polling clients, animated markers included.
type StateOverlay struct {
	mu        sync.RWMutex
	markers   map[string]Marker
	polylines map[string]Polyline
	center    *desk.LatLng
	zoom      int
}

func NewStateOverlay() *StateOverlay {
	return &StateOverlay{
		markers:   make(map[string]Marker),
		polylines: make(map[string]Polyline),
	}
}

func (o *StateOverlay) AddMarker(m Marker) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.markers[m.ID] = m
}

func (o *StateOverlay) UpdateMarker(m Marker) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.markers[m.ID] = m
}

func (o *StateOverlay) RemoveMarker(id string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.markers, id)
}

func (o *StateOverlay) SetPolyline(p Polyline) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.polylines[p.ID] = p
}

func (o *StateOverlay) RemovePolyline(id string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.polylines, id)
}

func (o *StateOverlay) FlyTo(center desk.LatLng, zoom int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.center = &center
	o.zoom = zoom
}

// Snapshot returns the drawn overlays sorted by id.
func (o *StateOverlay) Snapshot() Snapshot {
	o.mu.RLock()
	defer o.mu.RUnlock()

	s := Snapshot{
		Markers:   make([]Marker, 0, len(o.markers)),
		Polylines: make([]Polyline, 0, len(o.polylines)),
		Zoom:      o.zoom,
	}
	for _, m := range o.markers {
		s.Markers = append(s.Markers, m)
	}
	for _, p := range o.polylines {
		s.Polylines = append(s.Polylines, p)
	}
	if o.center != nil {
		c := *o.center
		s.Center = &c
	}
	sort.Slice(s.Markers, func(i, j int) bool { return s.Markers[i].ID < s.Markers[j].ID })
	sort.Slice(s.Polylines, func(i, j int) bool { return s.Polylines[i].ID < s.Polylines[j].ID })
	return s
}

var _ Overlay = (*StateOverlay)(nil)
