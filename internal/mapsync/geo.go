package mapsync

import (
	"math"

	"riverdesk/internal/desk"
)

// Bearing returns the initial great-circle bearing from a to b in degrees
// clockwise from north, in [0, 360).
func Bearing(a, b desk.LatLng) float64 {
	lat1, lat2 := rad(a.Lat), rad(b.Lat)
	dLng := rad(b.Lng - a.Lng)

	y := math.Sin(dLng) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLng)
	deg := math.Atan2(y, x) * 180 / math.Pi
	return math.Mod(deg+360, 360)
}

// Interpolate returns the point a fraction t of the way from a to b.
func Interpolate(a, b desk.LatLng, t float64) desk.LatLng {
	return desk.LatLng{
		Lat: a.Lat + (b.Lat-a.Lat)*t,
		Lng: a.Lng + (b.Lng-a.Lng)*t,
	}
}

func rad(deg float64) float64 { return deg * math.Pi / 180 }
