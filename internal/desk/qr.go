package desk

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	// NoWarrantyMarker replaces the warranty date for items without one.
	NoWarrantyMarker = "ไม่มีประกัน"
	// Placeholder fills optional fields that are empty.
	Placeholder = "-"

	folderSeparator = "------------------------------"
)

var warrantyEmoji = map[WarrantyStatus]string{
	WarrantyOK:      "✅",
	WarrantyWarning: "⚠️",
	WarrantyExpired: "❌",
}

const noWarrantyEmoji = "➖"

// ItemPayload is the QR content for a single item. Field order and JSON key
// names are a contract: scanners parse it back with ParseItemPayload.
type ItemPayload struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Serial         string `json:"serial"`
	Type           string `json:"type"`
	Status         string `json:"status"`
	PurchaseDate   string `json:"purchaseDate"`
	WarrantyExpire string `json:"warrantyExpire"`
	InstallDate    string `json:"installDate"`
	Location       string `json:"location"`
	Notes          string `json:"notes"`
}

// NewItemPayload builds the payload fields for e.
func NewItemPayload(e Equipment) ItemPayload {
	warranty := e.WarrantyExpireDate
	if e.NoWarranty {
		warranty = NoWarrantyMarker
	}
	return ItemPayload{
		ID:             e.ID,
		Name:           e.Name,
		Serial:         e.SerialNumber,
		Type:           e.Type.Label(),
		Status:         e.Status.Label(),
		PurchaseDate:   e.PurchaseDate,
		WarrantyExpire: warranty,
		InstallDate:    orPlaceholder(e.InstallationDate),
		Location:       orPlaceholder(strings.TrimSpace(e.Location)),
		Notes:          orPlaceholder(e.Notes),
	}
}

// ComposeItemPayload returns the compact JSON encoded into an item's QR code.
func ComposeItemPayload(e Equipment) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(NewItemPayload(e)); err != nil {
		return "", fmt.Errorf("encoding item payload: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// ParseItemPayload decodes a scanned item payload.
func ParseItemPayload(s string) (ItemPayload, error) {
	var p ItemPayload
	if err := json.Unmarshal([]byte(s), &p); err != nil {
		return ItemPayload{}, fmt.Errorf("decoding item payload: %w", err)
	}
	if p.ID == "" {
		return ItemPayload{}, fmt.Errorf("decoding item payload: missing id")
	}
	return p, nil
}

// ComposeFolderPayload returns the line-oriented export of a folder. Items
// are listed in SortFolderContents order. The text is for display only.
func ComposeFolderPayload(folder string, items []Equipment, today time.Time) string {
	sorted := SortFolderContents(items, today)

	var b strings.Builder
	fmt.Fprintf(&b, "📁 %s\n", folder)
	fmt.Fprintf(&b, "จำนวน %d รายการ\n", len(sorted))
	b.WriteString(folderSeparator)
	for i, e := range sorted {
		phrase, emoji := warrantySummary(e, today)
		fmt.Fprintf(&b, "\n%d. %s ติดตั้ง:%s %s %s",
			i+1, e.Name, orPlaceholder(e.InstallationDate), phrase, emoji)
	}
	return b.String()
}

// warrantySummary returns the compact warranty phrase and status emoji.
func warrantySummary(e Equipment, today time.Time) (string, string) {
	expiry, ok, err := e.Warranty()
	if err != nil || !ok {
		return NoWarrantyMarker, noWarrantyEmoji
	}
	state := EvaluateWarranty(expiry, today)
	if state.Status == WarrantyExpired {
		return fmt.Sprintf("เกิน %d วัน", state.Days), warrantyEmoji[state.Status]
	}
	return fmt.Sprintf("เหลือ %d วัน", state.Days), warrantyEmoji[state.Status]
}

func orPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return Placeholder
	}
	return s
}
