package desk_test

import (
	"testing"
	"time"

	"riverdesk/internal/desk"
	"riverdesk/internal/testutil"
)

func TestEvaluateWarranty(t *testing.T) {
	today := testutil.FixedClock().Now() // 2025-06-15 10:30 ICT

	tests := []struct {
		name       string
		expiry     string
		wantStatus desk.WarrantyStatus
		wantDays   int
		wantRemain int
	}{
		{"far future", "2026-01-01", desk.WarrantyOK, 200, 200},
		{"31 days out", "2025-07-16", desk.WarrantyOK, 31, 31},
		{"30 days out", "2025-07-15", desk.WarrantyWarning, 30, 30},
		{"tomorrow", "2025-06-16", desk.WarrantyWarning, 1, 1},
		{"expires today", "2025-06-15", desk.WarrantyWarning, 0, 0},
		{"expired yesterday", "2025-06-14", desk.WarrantyExpired, 1, -1},
		{"long expired", "2024-06-15", desk.WarrantyExpired, 365, -365},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := desk.EvaluateWarrantyISO(tt.expiry, today)
			if err != nil {
				t.Fatalf("EvaluateWarrantyISO() error = %v", err)
			}
			if got.Status != tt.wantStatus {
				t.Errorf("Status = %s, want %s", got.Status, tt.wantStatus)
			}
			if got.Days != tt.wantDays {
				t.Errorf("Days = %d, want %d", got.Days, tt.wantDays)
			}
			if got.Remaining != tt.wantRemain {
				t.Errorf("Remaining = %d, want %d", got.Remaining, tt.wantRemain)
			}
		})
	}
}

func TestEvaluateWarranty_UsesLocalCalendarDay(t *testing.T) {
	// 01:00 in Bangkok is still the previous day in UTC.
	today := time.Date(2025, 6, 15, 1, 0, 0, 0, testutil.Bangkok)

	got, err := desk.EvaluateWarrantyISO("2025-06-15", today)
	if err != nil {
		t.Fatalf("EvaluateWarrantyISO() error = %v", err)
	}
	if got.Remaining != 0 {
		t.Errorf("Remaining = %d, want 0", got.Remaining)
	}
}

func TestEvaluateWarranty_TimeOfDayIgnored(t *testing.T) {
	expiry := time.Date(2025, 7, 15, 23, 59, 0, 0, time.UTC)
	morning := time.Date(2025, 6, 15, 0, 5, 0, 0, time.UTC)
	evening := time.Date(2025, 6, 15, 23, 55, 0, 0, time.UTC)

	a := desk.EvaluateWarranty(expiry, morning)
	b := desk.EvaluateWarranty(expiry, evening)
	if a != b {
		t.Errorf("same calendar day evaluated differently: %+v vs %+v", a, b)
	}
}

func TestEvaluateWarrantyISO_InvalidDate(t *testing.T) {
	for _, in := range []string{"", "15/06/2025", "2025-13-01"} {
		if _, err := desk.EvaluateWarrantyISO(in, time.Now()); err == nil {
			t.Errorf("EvaluateWarrantyISO(%q) expected error", in)
		}
	}
}
