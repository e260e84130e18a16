package app

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetDefaults(t *testing.T) {
	t.Run("uses env vars when set", func(t *testing.T) {
		t.Setenv("RIVERDESK_CONFIG_PATH", "/custom/config.toml")
		t.Setenv("RIVERDESK_HOME", "/custom/riverdesk")

		d, err := GetDefaults()
		if err != nil {
			t.Fatalf("GetDefaults() error = %v", err)
		}

		want := Defaults{
			ConfigPath: "/custom/config.toml",
			BaseDir:    "/custom/riverdesk",
			LogDir:     "/custom/riverdesk/log",
		}
		if d != want {
			t.Errorf("GetDefaults() = %+v, want %+v", d, want)
		}
	})

	t.Run("falls back to home dir defaults", func(t *testing.T) {
		t.Setenv("RIVERDESK_CONFIG_PATH", "")
		t.Setenv("RIVERDESK_HOME", "")

		d, err := GetDefaults()
		if err != nil {
			t.Fatalf("GetDefaults() error = %v", err)
		}

		homeDir, _ := os.UserHomeDir()

		wantConfig := filepath.Join(homeDir, ".config", "riverdesk.toml")
		if d.ConfigPath != wantConfig {
			t.Errorf("ConfigPath = %q, want %q", d.ConfigPath, wantConfig)
		}

		wantBase := filepath.Join(homeDir, ".local", "share", "riverdesk")
		if d.BaseDir != wantBase {
			t.Errorf("BaseDir = %q, want %q", d.BaseDir, wantBase)
		}
		if d.LogDir != filepath.Join(wantBase, "log") {
			t.Errorf("LogDir = %q", d.LogDir)
		}
	})

	t.Run("mixes env and fallback", func(t *testing.T) {
		t.Setenv("RIVERDESK_CONFIG_PATH", "")
		t.Setenv("RIVERDESK_HOME", "/srv/riverdesk")

		d, err := GetDefaults()
		if err != nil {
			t.Fatalf("GetDefaults() error = %v", err)
		}
		if d.BaseDir != "/srv/riverdesk" {
			t.Errorf("BaseDir = %q", d.BaseDir)
		}
		if filepath.Base(d.ConfigPath) != "riverdesk.toml" {
			t.Errorf("ConfigPath = %q", d.ConfigPath)
		}
	})
}

func TestNewDefaultConfig(t *testing.T) {
	d := Defaults{BaseDir: "/data", LogDir: "/logs"}
	a := NewDefaultConfig(d)
	b := NewDefaultConfig(d)

	if a.InstanceID == "" || a.InstanceID == b.InstanceID {
		t.Errorf("instance ids = %q, %q; want distinct non-empty", a.InstanceID, b.InstanceID)
	}
	if a.LogDir != "/logs" {
		t.Errorf("LogDir = %q", a.LogDir)
	}
	if a.Store.Dir != filepath.Join("/data", "store") {
		t.Errorf("Store.Dir = %q", a.Store.Dir)
	}
}
