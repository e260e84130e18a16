package mapsync

import "sync"

// Selection is the single selected map entity. Equipment and ad-spot
// selection are mutually exclusive: selecting one kind clears the other.
type Selection struct {
	mu        sync.Mutex
	equipment string
	spot      string
}

func (s *Selection) SelectEquipment(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.equipment, s.spot = id, ""
}

func (s *Selection) SelectSpot(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.equipment, s.spot = "", id
}

func (s *Selection) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.equipment, s.spot = "", ""
}

// Equipment returns the selected equipment id, or "".
func (s *Selection) Equipment() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.equipment
}

// Spot returns the selected ad-spot id, or "".
func (s *Selection) Spot() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.spot
}
