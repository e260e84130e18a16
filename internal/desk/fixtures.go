package desk

func ptr(f float64) *float64 { return &f }

// DefaultFixtures is the inventory a fresh store is seeded with.
func DefaultFixtures() []Equipment {
	return []Equipment{
		{
			ID:                 "eq-sathorn-tv-1",
			Name:               "จอ TV 55 นิ้ว ท่าสาทร",
			SerialNumber:       "SN-TV55-0001",
			Type:               TypeTV,
			Status:             StatusInstalled,
			PurchaseDate:       "2024-01-10",
			WarrantyExpireDate: "2026-01-10",
			InstallationDate:   "2024-02-01",
			Location:           "ท่าสาทร",
			Lat:                ptr(13.7187),
			Lng:                ptr(100.5133),
			IsOnline:           true,
		},
		{
			ID:                 "eq-sathorn-box-1",
			Name:               "Android Box ท่าสาทร",
			SerialNumber:       "AB-2024-117",
			Type:               TypeAndroidBox,
			Status:             StatusInstalled,
			PurchaseDate:       "2024-01-10",
			WarrantyExpireDate: "2025-01-10",
			InstallationDate:   "2024-02-01",
			Location:           "ท่าสาทร",
			IsOnline:           true,
		},
		{
			ID:                 "eq-phra-arthit-tv-1",
			Name:               "จอ TV 43 นิ้ว ท่าพระอาทิตย์",
			SerialNumber:       "SN-TV43-0420",
			Type:               TypeTV,
			Status:             StatusInRepair,
			PurchaseDate:       "2024-05-20",
			WarrantyExpireDate: "2027-05-20",
			Location:           "ท่าพระอาทิตย์",
			Lat:                ptr(13.7625),
			Lng:                ptr(100.4947),
			Notes:              "ส่งซ่อมศูนย์ บอร์ดภาพเสีย",
		},
		{
			ID:                 "eq-tha-chang-router-1",
			Name:               "เราเตอร์ 4G ท่าช้าง",
			SerialNumber:       "RT4G-88231",
			Type:               TypeRouter4G,
			Status:             StatusInstalled,
			PurchaseDate:       "2024-03-15",
			WarrantyExpireDate: "2026-03-15",
			InstallationDate:   "2024-03-20",
			Location:           "ท่าช้าง",
			Lat:                ptr(13.7526),
			Lng:                ptr(100.4905),
			IsOnline:           true,
		},
		{
			ID:           "eq-wat-arun-hdmi-1",
			Name:         "สาย HDMI 10 เมตร",
			SerialNumber: "-",
			Type:         TypeHDMICable,
			Status:       StatusAvailable,
			PurchaseDate: "2024-06-01",
			NoWarranty:   true,
			Location:     "ท่าวัดอรุณ",
			Lat:          ptr(13.7437),
			Lng:          ptr(100.4889),
		},
		{
			ID:                 "eq-spare-timer-1",
			Name:               "ตัวตั้งเวลา เปิด-ปิดจอ",
			SerialNumber:       "TM-5521",
			Type:               TypeTimer,
			Status:             StatusWaitingPurchase,
			PurchaseDate:       "2025-02-01",
			WarrantyExpireDate: "2026-02-01",
		},
	}
}

// DefaultAdSpots is the set of placements a fresh store is seeded with.
func DefaultAdSpots() []AdSpot {
	return []AdSpot{
		{ID: "spot-sathorn", Name: "ท่าเรือสาทร", Type: SpotPier, Lat: ptr(13.7187), Lng: ptr(100.5133)},
		{ID: "spot-tha-chang", Name: "ท่าช้าง", Type: SpotDigitalScreen, Lat: ptr(13.7526), Lng: ptr(100.4905)},
		{ID: "spot-wat-arun", Name: "ท่าวัดอรุณ", Type: SpotLightbox, Lat: ptr(13.7437), Lng: ptr(100.4889)},
		{
			ID:     "spot-orange-flag",
			Name:   "เรือด่วนธงส้ม",
			Type:   SpotBoat,
			IsBoat: true,
			Lat:    ptr(13.7187),
			Lng:    ptr(100.5133),
			Route: []LatLng{
				{Lat: 13.7187, Lng: 100.5133},
				{Lat: 13.7437, Lng: 100.4889},
				{Lat: 13.7526, Lng: 100.4905},
				{Lat: 13.7625, Lng: 100.4947},
			},
		},
	}
}
