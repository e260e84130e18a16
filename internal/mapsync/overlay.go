package mapsync

import (
	"strconv"

	"riverdesk/internal/desk"
)

// Kind says what a marker stands for.
type Kind string

const (
	KindEquipment Kind = "equipment"
	KindSpot      Kind = "spot"
	KindAnimation Kind = "animation"
	KindHandle    Kind = "handle"
)

// Marker is one point overlay. ID is unique across kinds; RefID is the
// equipment or ad-spot id it represents.
type Marker struct {
	ID       string      `json:"id"`
	Kind     Kind        `json:"kind"`
	RefID    string      `json:"refId"`
	Label    string      `json:"label"`
	Position desk.LatLng `json:"position"`
	Color    string      `json:"color"`
	Heading  float64     `json:"heading,omitempty"` // degrees clockwise from north
}

// Polyline is a route overlay.
type Polyline struct {
	ID     string        `json:"id"`
	RefID  string        `json:"refId"`
	Points []desk.LatLng `json:"points"`
	Color  string        `json:"color"`
	Dashed bool          `json:"dashed,omitempty"`
}

// Overlay is the adapter to whatever mapping library draws the markers.
// Implementations must be safe for concurrent use: animations update their
// markers from frame callbacks.
type Overlay interface {
	AddMarker(m Marker)
	UpdateMarker(m Marker)
	RemoveMarker(id string)
	SetPolyline(p Polyline)
	RemovePolyline(id string)
	FlyTo(center desk.LatLng, zoom int)
}

func equipmentMarkerID(id string) string { return "eq:" + id }
func spotMarkerID(id string) string      { return "spot:" + id }
func animationMarkerID(id string) string { return "anim:" + id }
func routeID(id string) string           { return "route:" + id }
func draftRouteID(id string) string      { return "draft:" + id }

func handleMarkerID(id string, i int) string {
	return "handle:" + id + ":" + strconv.Itoa(i)
}
