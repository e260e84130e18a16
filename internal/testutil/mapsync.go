package testutil

import (
	"sort"
	"sync"

	"riverdesk/internal/desk"
	"riverdesk/internal/mapsync"
)

// RecordingOverlay keeps the overlays a synchronizer drew, plus a count of
// every call, so tests can assert on both state and churn.
type RecordingOverlay struct {
	mu        sync.Mutex
	markers   map[string]mapsync.Marker
	polylines map[string]mapsync.Polyline
	Calls     map[string]int
	Flights   []desk.LatLng
}

func NewRecordingOverlay() *RecordingOverlay {
	return &RecordingOverlay{
		markers:   make(map[string]mapsync.Marker),
		polylines: make(map[string]mapsync.Polyline),
		Calls:     make(map[string]int),
	}
}

func (o *RecordingOverlay) AddMarker(m mapsync.Marker) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Calls["add"]++
	o.markers[m.ID] = m
}

func (o *RecordingOverlay) UpdateMarker(m mapsync.Marker) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Calls["update"]++
	o.markers[m.ID] = m
}

func (o *RecordingOverlay) RemoveMarker(id string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Calls["remove"]++
	delete(o.markers, id)
}

func (o *RecordingOverlay) SetPolyline(p mapsync.Polyline) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Calls["polyline"]++
	o.polylines[p.ID] = p
}

func (o *RecordingOverlay) RemovePolyline(id string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Calls["remove-polyline"]++
	delete(o.polylines, id)
}

func (o *RecordingOverlay) FlyTo(center desk.LatLng, zoom int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Calls["fly"]++
	o.Flights = append(o.Flights, center)
}

// Marker returns the marker with id, if drawn.
func (o *RecordingOverlay) Marker(id string) (mapsync.Marker, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	m, ok := o.markers[id]
	return m, ok
}

// MarkerIDs returns the ids of every drawn marker, sorted.
func (o *RecordingOverlay) MarkerIDs() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	ids := make([]string, 0, len(o.markers))
	for id := range o.markers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Polyline returns the polyline with id, if drawn.
func (o *RecordingOverlay) Polyline(id string) (mapsync.Polyline, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	p, ok := o.polylines[id]
	return p, ok
}

var _ mapsync.Overlay = (*RecordingOverlay)(nil)

// ManualFrames is a frame scheduler driven by the test. Requested frames
// run only when Step is called.
type ManualFrames struct {
	mu      sync.Mutex
	nextID  int
	pending map[int]func()
}

func NewManualFrames() *ManualFrames {
	return &ManualFrames{pending: make(map[int]func())}
}

func (f *ManualFrames) RequestFrame(fn func()) mapsync.FrameHandle {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	f.pending[f.nextID] = fn
	return &manualHandle{frames: f, id: f.nextID}
}

// Step runs every frame requested before the call, in request order.
// Frames requested by those callbacks wait for the next Step.
func (f *ManualFrames) Step() {
	f.mu.Lock()
	ids := make([]int, 0, len(f.pending))
	for id := range f.pending {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]func(), len(ids))
	for i, id := range ids {
		fns[i] = f.pending[id]
		delete(f.pending, id)
	}
	f.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Pending returns the number of frames waiting to run.
func (f *ManualFrames) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pending)
}

type manualHandle struct {
	frames *ManualFrames
	id     int
}

func (h *manualHandle) Cancel() {
	h.frames.mu.Lock()
	defer h.frames.mu.Unlock()
	delete(h.frames.pending, h.id)
}

var _ mapsync.FrameScheduler = (*ManualFrames)(nil)
