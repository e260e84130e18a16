package desk

import (
	"fmt"
	"time"
)

// WarningWindowDays is the inclusive number of days before expiry during
// which a warranty is reported as WARNING.
const WarningWindowDays = 30

// WarrantyStatus is the derived warranty state of an item.
type WarrantyStatus string

const (
	WarrantyOK      WarrantyStatus = "OK"
	WarrantyWarning WarrantyStatus = "WARNING"
	WarrantyExpired WarrantyStatus = "EXPIRED"
)

// WarrantyState is derived, never stored.
type WarrantyState struct {
	Status WarrantyStatus `json:"status"`
	// Days is the magnitude shown to users: days remaining, or days elapsed
	// since expiry when Status is EXPIRED.
	Days int `json:"days"`
	// Remaining is the signed whole-day count from today to expiry.
	Remaining int `json:"remaining"`
}

// EvaluateWarranty computes the warranty state of an expiry date relative to
// today. Both instants are reduced to calendar days first: expiry by its UTC
// date, today by the date in its own location. The result is therefore
// ceil((expiry - today) / 24h) with "today is the expiry day" giving 0.
//
// The no-warranty flag is not known here; callers skip
// evaluation for such records.
func EvaluateWarranty(expiry, today time.Time) WarrantyState {
	remaining := daysBetween(calendarDay(today), expiryDay(expiry))

	switch {
	case remaining < 0:
		return WarrantyState{Status: WarrantyExpired, Days: -remaining, Remaining: remaining}
	case remaining <= WarningWindowDays:
		return WarrantyState{Status: WarrantyWarning, Days: remaining, Remaining: remaining}
	default:
		return WarrantyState{Status: WarrantyOK, Days: remaining, Remaining: remaining}
	}
}

// EvaluateWarrantyISO parses a YYYY-MM-DD expiry date and evaluates it.
func EvaluateWarrantyISO(expiryISO string, today time.Time) (WarrantyState, error) {
	expiry, err := ParseDate(expiryISO)
	if err != nil {
		return WarrantyState{}, fmt.Errorf("evaluating warranty: %w", err)
	}
	return EvaluateWarranty(expiry, today), nil
}

// calendarDay maps t to UTC midnight of the calendar date t has in its own
// location.
func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// expiryDay maps a stored expiry to UTC midnight of its UTC calendar date.
func expiryDay(t time.Time) time.Time {
	return calendarDay(t.UTC())
}

// daysBetween returns the whole days from a to b. Both must be UTC midnights.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
