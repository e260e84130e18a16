package main

import (
	"strings"
	"testing"

	"riverdesk/internal/desk"
)

func TestParseLatLng(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    desk.LatLng
		wantErr bool
	}{
		{name: "plain", raw: "13.7437,100.4889", want: desk.LatLng{Lat: 13.7437, Lng: 100.4889}},
		{name: "spaces", raw: " 13.7 , 100.5 ", want: desk.LatLng{Lat: 13.7, Lng: 100.5}},
		{name: "one value", raw: "13.7", wantErr: true},
		{name: "not a number", raw: "north,100.5", wantErr: true},
		{name: "out of range", raw: "95,100.5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseLatLng(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Errorf("parseLatLng(%q) = %v, want error", tt.raw, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseLatLng(%q) error = %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("parseLatLng(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestTypeNames(t *testing.T) {
	names := typeNames()
	for _, want := range []string{"TV", "ANDROID_BOX", "OTHER"} {
		if !strings.Contains(names, want) {
			t.Errorf("typeNames() = %q, missing %s", names, want)
		}
	}
}
