package mapsync

import (
	"context"
	"encoding/json"
	"reflect"
	"sort"
	"strings"
	"sync"

	"riverdesk/internal/desk"
)

// FocusZoom is the zoom level used when flying to a focused item.
const FocusZoom = 17

// Result summarises what one Sync changed on the overlay.
type Result struct {
	Added     []string
	Updated   []string
	Removed   []string
	Restarted bool // animations were torn down and rebuilt
}

// Synchronizer reconciles a View with a live Overlay. It diffs against what
// it drew last time, so unchanged markers, the camera and running
// animations are left alone.
type Synchronizer struct {
	overlay   Overlay
	frames    FrameScheduler
	step      float64
	selection *Selection
	logger    desk.Logger

	mu         sync.Mutex
	markers    map[string]Marker
	polylines  map[string]Polyline
	animations map[string]*Animation
	animKey    string
	lastFocus  string
}

func NewSynchronizer(overlay Overlay, frames FrameScheduler, step float64, selection *Selection, logger desk.Logger) *Synchronizer {
	if selection == nil {
		selection = &Selection{}
	}
	return &Synchronizer{
		overlay:    overlay,
		frames:     frames,
		step:       step,
		selection:  selection,
		logger:     logger,
		markers:    make(map[string]Marker),
		polylines:  make(map[string]Polyline),
		animations: make(map[string]*Animation),
	}
}

// Selection returns the selection the synchronizer writes to.
func (s *Synchronizer) Selection() *Selection { return s.selection }

// Sync brings the overlay in line with v.
func (s *Synchronizer) Sync(v View) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	plan := Build(v)
	var res Result

	for id := range s.markers {
		if _, ok := plan.Markers[id]; !ok {
			s.overlay.RemoveMarker(id)
			delete(s.markers, id)
			res.Removed = append(res.Removed, id)
		}
	}
	for id, m := range plan.Markers {
		old, ok := s.markers[id]
		switch {
		case !ok:
			s.overlay.AddMarker(m)
			res.Added = append(res.Added, id)
		case old != m:
			s.overlay.UpdateMarker(m)
			res.Updated = append(res.Updated, id)
		default:
			continue
		}
		s.markers[id] = m
	}

	for id := range s.polylines {
		if _, ok := plan.Polylines[id]; !ok {
			s.overlay.RemovePolyline(id)
			delete(s.polylines, id)
		}
	}
	for id, p := range plan.Polylines {
		if old, ok := s.polylines[id]; ok && reflect.DeepEqual(old, p) {
			continue
		}
		s.overlay.SetPolyline(p)
		s.polylines[id] = p
	}

	if key := animationKey(v); key != s.animKey {
		s.restartAnimations(plan.Animated)
		s.animKey = key
		res.Restarted = true
	}

	if v.FocusID != "" && v.FocusID != s.lastFocus {
		s.focus(v)
	}
	s.lastFocus = v.FocusID

	sort.Strings(res.Added)
	sort.Strings(res.Updated)
	sort.Strings(res.Removed)
	return res
}

// Click handles a click on a marker. It only changes the selection; it
// never touches application data. Clicks on edit handles are ignored and an
// empty id (the bare map) clears the selection.
func (s *Synchronizer) Click(markerID string) {
	if markerID == "" {
		s.selection.Clear()
		return
	}
	kind, ref, ok := strings.Cut(markerID, ":")
	if !ok {
		return
	}
	switch kind {
	case "eq":
		s.selection.SelectEquipment(ref)
	case "spot", "anim":
		s.selection.SelectSpot(ref)
	}
}

// Animations returns the number of running animations.
func (s *Synchronizer) Animations() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.animations)
}

// Close cancels every animation. The static markers stay on the overlay.
func (s *Synchronizer) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopAnimations()
	s.animKey = ""
}

// Follow re-syncs whenever a write touches the equipment or ad-spot
// collection. load supplies the fresh view. It returns the unsubscribe
// function.
func (s *Synchronizer) Follow(bus *desk.EventBus, load func(ctx context.Context) (View, error)) func() {
	return bus.Subscribe(func(ev desk.WriteEvent) {
		if ev.Key != desk.KeyEquipment && ev.Key != desk.KeyAdSpots {
			return
		}
		v, err := load(context.Background())
		if err != nil {
			s.logger.Warn("map refresh failed", "key", ev.Key, "error", err)
			return
		}
		s.Sync(v)
	})
}

func (s *Synchronizer) restartAnimations(spots []desk.AdSpot) {
	s.stopAnimations()
	for _, spot := range spots {
		s.animations[spot.ID] = StartAnimation(spot, s.step, s.overlay, s.frames)
	}
	s.logger.Debug("map animations rebuilt", "count", len(spots))
}

func (s *Synchronizer) stopAnimations() {
	for id, a := range s.animations {
		a.Cancel()
		delete(s.animations, id)
	}
}

func (s *Synchronizer) focus(v View) {
	for _, e := range v.Equipment {
		if e.ID != v.FocusID {
			continue
		}
		if pos, ok := e.Coordinates(); ok {
			s.overlay.FlyTo(pos, FocusZoom)
		}
		s.selection.SelectEquipment(e.ID)
		return
	}
	for _, spot := range v.Spots {
		if spot.ID != v.FocusID {
			continue
		}
		if pos, ok := spot.Coordinates(); ok {
			s.overlay.FlyTo(pos, FocusZoom)
		} else if len(spot.Route) > 0 {
			s.overlay.FlyTo(spot.Route[0], FocusZoom)
		}
		s.selection.SelectSpot(spot.ID)
		return
	}
}

// animationKey identifies the inputs that force an animation rebuild: the
// filtered spot set, the equipment list and the spot being edited.
func animationKey(v View) string {
	raw, _ := json.Marshal(struct {
		Spots     []desk.AdSpot
		Equipment []desk.Equipment
		Editing   string
	}{visibleSpots(v), v.Equipment, v.editingID()})
	return string(raw)
}
