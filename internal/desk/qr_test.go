package desk_test

import (
	"strings"
	"testing"

	"riverdesk/internal/desk"
	"riverdesk/internal/testutil"
)

func TestComposeItemPayload(t *testing.T) {
	e := testutil.Equipment("eq-1")
	e.Name = "TV <Sathorn>"
	e.Location = " Sathorn Pier "

	got, err := desk.ComposeItemPayload(e)
	if err != nil {
		t.Fatalf("ComposeItemPayload() error = %v", err)
	}
	want := `{"id":"eq-1","name":"TV <Sathorn>","serial":"SN-eq-1","type":"จอทีวี","status":"พร้อมใช้งาน",` +
		`"purchaseDate":"2025-01-01","warrantyExpire":"2026-01-01","installDate":"-","location":"Sathorn Pier","notes":"-"}`
	if got != want {
		t.Errorf("payload mismatch\n got: %s\nwant: %s", got, want)
	}
}

func TestComposeItemPayload_NoWarranty(t *testing.T) {
	e := testutil.Equipment("eq-2")
	e.NoWarranty = true
	e.WarrantyExpireDate = ""
	e.InstallationDate = "2025-02-01"
	e.Notes = "spare"

	got, err := desk.ComposeItemPayload(e)
	if err != nil {
		t.Fatalf("ComposeItemPayload() error = %v", err)
	}
	p, err := desk.ParseItemPayload(got)
	if err != nil {
		t.Fatalf("ParseItemPayload() error = %v", err)
	}
	if p.WarrantyExpire != desk.NoWarrantyMarker {
		t.Errorf("warrantyExpire = %q, want %q", p.WarrantyExpire, desk.NoWarrantyMarker)
	}
	if p.InstallDate != "2025-02-01" || p.Notes != "spare" || p.Location != desk.Placeholder {
		t.Errorf("unexpected payload fields: %+v", p)
	}
}

func TestParseItemPayload_Invalid(t *testing.T) {
	for _, in := range []string{"", "not json", `{"name":"x"}`} {
		if _, err := desk.ParseItemPayload(in); err == nil {
			t.Errorf("ParseItemPayload(%q) expected error", in)
		}
	}
}

func TestComposeFolderPayload(t *testing.T) {
	today := testutil.FixedClock().Now() // 2025-06-15

	first := testutil.Equipment("p1")
	first.Name = "Box"
	first.PurchaseDate = "2024-01-01"
	first.WarrantyExpireDate = "2025-06-10"
	first.InstallationDate = "2024-02-01"

	second := testutil.Equipment("p2")
	second.Name = "Router"
	second.PurchaseDate = "2024-06-01"
	second.WarrantyExpireDate = "2025-07-01"

	third := testutil.Equipment("p3")
	third.Name = "Timer"
	third.PurchaseDate = "2025-01-01"
	third.WarrantyExpireDate = "2026-01-01"

	fourth := testutil.Equipment("p4")
	fourth.Name = "Cable"
	fourth.PurchaseDate = "2025-05-01"
	fourth.NoWarranty = true

	got := desk.ComposeFolderPayload("Sathorn", []desk.Equipment{third, fourth, first, second}, today)

	want := strings.Join([]string{
		"📁 Sathorn",
		"จำนวน 4 รายการ",
		"------------------------------",
		"1. Box ติดตั้ง:2024-02-01 เกิน 5 วัน ❌",
		"2. Router ติดตั้ง:- เหลือ 16 วัน ⚠️",
		"3. Timer ติดตั้ง:- เหลือ 200 วัน ✅",
		"4. Cable ติดตั้ง:- ไม่มีประกัน ➖",
	}, "\n")
	if got != want {
		t.Errorf("payload mismatch\n got:\n%s\nwant:\n%s", got, want)
	}
}

func TestComposeFolderPayload_SecondaryOrderByExpiry(t *testing.T) {
	today := testutil.FixedClock().Now()

	late := testutil.Equipment("late")
	late.Name = "Late"
	late.WarrantyExpireDate = "2026-03-01"
	early := testutil.Equipment("early")
	early.Name = "Early"
	early.WarrantyExpireDate = "2025-09-01"

	got := desk.ComposeFolderPayload("X", []desk.Equipment{late, early}, today)
	if strings.Index(got, "1. Early") < 0 || strings.Index(got, "2. Late") < 0 {
		t.Errorf("expected Early before Late:\n%s", got)
	}
}

func TestComposeFolderPayload_Empty(t *testing.T) {
	got := desk.ComposeFolderPayload("ว่าง", nil, testutil.FixedClock().Now())
	want := "📁 ว่าง\nจำนวน 0 รายการ\n------------------------------"
	if got != want {
		t.Errorf("payload = %q, want %q", got, want)
	}
}
