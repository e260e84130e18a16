package mapsync

import (
	"sync"

	"riverdesk/internal/desk"
)

// DefaultAnimationStep is the fraction of a route segment covered per frame.
const DefaultAnimationStep = 0.005

// Animation moves one marker along a route, segment by segment, looping back
// to the first point after the last. Each frame advances a fixed fraction of
// the current segment and turns the marker to face its direction of travel.
//
// An Animation schedules its own next frame until Cancel is called. The
// owner must Cancel it before starting a replacement for the same spot.
type Animation struct {
	spotID  string
	label   string
	color   string
	route   []desk.LatLng
	step    float64
	overlay Overlay
	frames  FrameScheduler

	mu        sync.Mutex
	seg       int
	t         float64
	handle    FrameHandle
	cancelled bool
	ticks     int
}

// StartAnimation places the moving marker at the start of spot's route and
// schedules the first frame. The route must have at least two points.
func StartAnimation(spot desk.AdSpot, step float64, overlay Overlay, frames FrameScheduler) *Animation {
	if step <= 0 {
		step = DefaultAnimationStep
	}
	a := &Animation{
		spotID:  spot.ID,
		label:   spot.Name,
		color:   SpotColor(spot),
		route:   append([]desk.LatLng(nil), spot.Route...),
		step:    step,
		overlay: overlay,
		frames:  frames,
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	overlay.AddMarker(a.marker())
	a.handle = frames.RequestFrame(a.tick)
	return a
}

// MarkerID is the id of the moving marker.
func (a *Animation) MarkerID() string { return animationMarkerID(a.spotID) }

// Position returns the current marker position and heading.
func (a *Animation) Position() (desk.LatLng, float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	m := a.marker()
	return m.Position, m.Heading
}

// Ticks returns how many frames have run.
func (a *Animation) Ticks() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.ticks
}

// Active reports whether the animation is still running.
func (a *Animation) Active() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return !a.cancelled
}

// Cancel stops the animation, cancels its pending frame and removes its
// marker. Calling it again does nothing.
func (a *Animation) Cancel() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.cancelled {
		return
	}
	a.cancelled = true
	if a.handle != nil {
		a.handle.Cancel()
		a.handle = nil
	}
	a.overlay.RemoveMarker(a.MarkerID())
}

func (a *Animation) tick() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.cancelled {
		return
	}

	a.ticks++
	a.t += a.step
	for a.t >= 1 {
		a.t -= 1
		a.seg = (a.seg + 1) % (len(a.route) - 1)
	}
	a.overlay.UpdateMarker(a.marker())
	a.handle = a.frames.RequestFrame(a.tick)
}

func (a *Animation) marker() Marker {
	from, to := a.route[a.seg], a.route[a.seg+1]
	return Marker{
		ID:       a.MarkerID(),
		Kind:     KindAnimation,
		RefID:    a.spotID,
		Label:    a.label,
		Position: Interpolate(from, to, a.t),
		Color:    a.color,
		Heading:  Bearing(from, to),
	}
}
