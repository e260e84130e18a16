package mapsync

import "riverdesk/internal/desk"

// StatusColors is the fixed marker palette for equipment. LOST has a color
// for legends but LOST items are never drawn.
var StatusColors = map[desk.EquipmentStatus]string{
	desk.StatusAvailable:       "#22c55e",
	desk.StatusInstalled:       "#3b82f6",
	desk.StatusWaitingPurchase: "#a855f7",
	desk.StatusInRepair:        "#f97316",
	desk.StatusBroken:          "#ef4444",
	desk.StatusLost:            "#6b7280",
}

// SpotColors colors ad spots by media type.
var SpotColors = map[desk.AdSpotType]string{
	desk.SpotPier:          "#0ea5e9",
	desk.SpotBoat:          "#f59e0b",
	desk.SpotDigitalScreen: "#8b5cf6",
	desk.SpotLightbox:      "#ec4899",
	desk.SpotBillboard:     "#14b8a6",
}

// BoatColor overrides the type color of any spot flagged as a boat.
const BoatColor = "#f59e0b"

const (
	defaultColor = "#6b7280"
	handleColor  = "#111827"
)

// StatusColor returns the marker color for an equipment status.
func StatusColor(s desk.EquipmentStatus) string {
	if c, ok := StatusColors[s]; ok {
		return c
	}
	return defaultColor
}

// SpotColor returns the marker color for a spot.
func SpotColor(s desk.AdSpot) string {
	if s.IsBoat {
		return BoatColor
	}
	if c, ok := SpotColors[s.Type]; ok {
		return c
	}
	return defaultColor
}
