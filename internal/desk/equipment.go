package desk

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// DateLayout is the calendar-date format used for every stored date field.
const DateLayout = "2006-01-02"

// EquipmentType classifies a tracked device or consumable.
type EquipmentType string

const (
	TypeTV         EquipmentType = "TV"
	TypeAndroidBox EquipmentType = "ANDROID_BOX"
	TypeSplitter   EquipmentType = "SPLITTER"
	TypeTimer      EquipmentType = "TIMER"
	TypeStorageBox EquipmentType = "STORAGE_BOX"
	TypeHDMICable  EquipmentType = "HDMI_CABLE"
	TypeLANCable   EquipmentType = "LAN_CABLE"
	TypePowerCable EquipmentType = "POWER_CABLE"
	TypeRouter4G   EquipmentType = "ROUTER_4G"
	TypeSimCard    EquipmentType = "SIM_CARD"
	TypeOther      EquipmentType = "OTHER"
)

var typeLabels = map[EquipmentType]string{
	TypeTV:         "จอทีวี",
	TypeAndroidBox: "กล่องแอนดรอยด์",
	TypeSplitter:   "สปลิตเตอร์",
	TypeTimer:      "ไทม์เมอร์",
	TypeStorageBox: "กล่องเก็บอุปกรณ์",
	TypeHDMICable:  "สาย HDMI",
	TypeLANCable:   "สาย LAN",
	TypePowerCable: "สายไฟ",
	TypeRouter4G:   "เราเตอร์ 4G",
	TypeSimCard:    "ซิมการ์ด",
	TypeOther:      "อื่นๆ",
}

// Label returns the Thai display label, or the raw value for unknown types.
func (t EquipmentType) Label() string {
	if l, ok := typeLabels[t]; ok {
		return l
	}
	return string(t)
}

// Valid reports whether t is one of the known types.
func (t EquipmentType) Valid() bool {
	_, ok := typeLabels[t]
	return ok
}

// EquipmentTypes lists every known type in display order.
func EquipmentTypes() []EquipmentType {
	return []EquipmentType{
		TypeTV, TypeAndroidBox, TypeSplitter, TypeTimer, TypeStorageBox,
		TypeHDMICable, TypeLANCable, TypePowerCable, TypeRouter4G, TypeSimCard, TypeOther,
	}
}

// EquipmentStatus is the lifecycle state of an item. Any status may be set
// to any other; there is no transition graph.
type EquipmentStatus string

const (
	StatusAvailable       EquipmentStatus = "AVAILABLE"
	StatusInstalled       EquipmentStatus = "INSTALLED"
	StatusWaitingPurchase EquipmentStatus = "WAITING_PURCHASE"
	StatusInRepair        EquipmentStatus = "IN_REPAIR"
	StatusBroken          EquipmentStatus = "BROKEN"
	StatusLost            EquipmentStatus = "LOST"
)

var statusLabels = map[EquipmentStatus]string{
	StatusAvailable:       "พร้อมใช้งาน",
	StatusInstalled:       "ติดตั้งแล้ว",
	StatusWaitingPurchase: "รอสั่งซื้อ",
	StatusInRepair:        "กำลังซ่อม",
	StatusBroken:          "ชำรุด",
	StatusLost:            "สูญหาย",
}

func (s EquipmentStatus) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

func (s EquipmentStatus) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// ParseEquipmentStatus accepts the canonical upper-case form, case-insensitively.
func ParseEquipmentStatus(raw string) (EquipmentStatus, error) {
	s := EquipmentStatus(strings.ToUpper(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", fmt.Errorf("unknown equipment status: %q", raw)
	}
	return s, nil
}

// ParseEquipmentType accepts the canonical upper-case form, case-insensitively.
func ParseEquipmentType(raw string) (EquipmentType, error) {
	t := EquipmentType(strings.ToUpper(strings.TrimSpace(raw)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown equipment type: %q", raw)
	}
	return t, nil
}

// LatLng is a WGS84 coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Valid reports whether the pair is finite and within range.
func (p LatLng) Valid() bool {
	if math.IsNaN(p.Lat) || math.IsNaN(p.Lng) || math.IsInf(p.Lat, 0) || math.IsInf(p.Lng, 0) {
		return false
	}
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

// Equipment is a physical device or consumable tracked by the registry.
type Equipment struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	SerialNumber       string          `json:"serialNumber"`
	Type               EquipmentType   `json:"type"`
	Status             EquipmentStatus `json:"status"`
	PurchaseDate       string          `json:"purchaseDate"`
	WarrantyExpireDate string          `json:"warrantyExpireDate,omitempty"`
	NoWarranty         bool            `json:"noWarranty,omitempty"`
	InstallationDate   string          `json:"installationDate,omitempty"`
	Location           string          `json:"location,omitempty"`
	Lat                *float64        `json:"lat,omitempty"`
	Lng                *float64        `json:"lng,omitempty"`
	Images             []string        `json:"images,omitempty"`
	ImageURL           string          `json:"imageUrl,omitempty"`
	IsOnline           bool            `json:"isOnline"`
	Notes              string          `json:"notes,omitempty"`
}

// Validate checks the optional-field contract of a record.
func (e *Equipment) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("equipment id is required")
	}
	if !e.Type.Valid() {
		return fmt.Errorf("equipment %s: unknown type %q", e.ID, e.Type)
	}
	if !e.Status.Valid() {
		return fmt.Errorf("equipment %s: unknown status %q", e.ID, e.Status)
	}
	if _, err := ParseDate(e.PurchaseDate); err != nil {
		return fmt.Errorf("equipment %s: purchase date: %w", e.ID, err)
	}
	if !e.NoWarranty {
		if _, err := ParseDate(e.WarrantyExpireDate); err != nil {
			return fmt.Errorf("equipment %s: warranty expire date: %w", e.ID, err)
		}
	}
	if e.InstallationDate != "" {
		if _, err := ParseDate(e.InstallationDate); err != nil {
			return fmt.Errorf("equipment %s: installation date: %w", e.ID, err)
		}
	}
	if (e.Lat == nil) != (e.Lng == nil) {
		return fmt.Errorf("equipment %s: lat and lng must be set together", e.ID)
	}
	if p, ok := e.Coordinates(); ok && !p.Valid() {
		return fmt.Errorf("equipment %s: invalid coordinates %v,%v", e.ID, p.Lat, p.Lng)
	}
	return nil
}

// Warranty returns the warranty expiry. ok is false for the no-warranty arm,
// in which case the expiry is never evaluated for alerts.
func (e *Equipment) Warranty() (expiry time.Time, ok bool, err error) {
	if e.NoWarranty {
		return time.Time{}, false, nil
	}
	expiry, err = ParseDate(e.WarrantyExpireDate)
	if err != nil {
		return time.Time{}, false, err
	}
	return expiry, true, nil
}

// Coordinates returns the map position when both lat and lng are present.
func (e *Equipment) Coordinates() (LatLng, bool) {
	if e.Lat == nil || e.Lng == nil {
		return LatLng{}, false
	}
	return LatLng{Lat: *e.Lat, Lng: *e.Lng}, true
}

// SetCoordinates sets or clears the position.
func (e *Equipment) SetCoordinates(p *LatLng) {
	if p == nil {
		e.Lat, e.Lng = nil, nil
		return
	}
	lat, lng := p.Lat, p.Lng
	e.Lat, e.Lng = &lat, &lng
}

// FolderName is the trimmed location, or UnspecifiedFolder when blank.
func (e *Equipment) FolderName() string {
	loc := strings.TrimSpace(e.Location)
	if loc == "" {
		return UnspecifiedFolder
	}
	return loc
}

// SyncImageURL keeps the legacy single image field equal to Images[0].
func (e *Equipment) SyncImageURL() {
	if len(e.Images) > 0 {
		e.ImageURL = e.Images[0]
		return
	}
	e.ImageURL = ""
}

// Clone returns a deep copy so callers can mutate without aliasing.
func (e Equipment) Clone() Equipment {
	c := e
	if e.Lat != nil {
		lat := *e.Lat
		c.Lat = &lat
	}
	if e.Lng != nil {
		lng := *e.Lng
		c.Lng = &lng
	}
	if e.Images != nil {
		c.Images = append([]string(nil), e.Images...)
	}
	return c
}

// ParseDate parses a YYYY-MM-DD calendar date as UTC midnight. A full
// RFC 3339 timestamp is accepted and truncated to its calendar day.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("date is empty")
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}
