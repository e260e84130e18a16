package kv

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"riverdesk/internal/config"
)

func TestNewStoreFromConfig(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		cfg     config.StoreConfig
		wantErr bool
	}{
		{name: "memory", cfg: config.StoreConfig{Type: "memory"}},
		{name: "filesystem", cfg: config.StoreConfig{Type: "filesystem", Dir: filepath.Join(dir, "fs")}},
		{name: "filesystem without dir", cfg: config.StoreConfig{Type: "filesystem"}, wantErr: true},
		{name: "sqlite", cfg: config.StoreConfig{Type: "sqlite", Path: filepath.Join(dir, "db", "desk.db")}},
		{name: "sqlite without path", cfg: config.StoreConfig{Type: "sqlite"}, wantErr: true},
		{name: "s3 without bucket", cfg: config.StoreConfig{Type: "s3"}, wantErr: true},
		{name: "unknown", cfg: config.StoreConfig{Type: "redis"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewStoreFromConfig(context.Background(), tt.cfg, nil)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewStoreFromConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if got != nil {
					t.Errorf("NewStoreFromConfig() = %v, want nil on error", got)
				}
				return
			}
			if got == nil {
				t.Fatal("NewStoreFromConfig() returned nil")
			}
			if c, ok := got.(io.Closer); ok {
				c.Close()
			}
		})
	}
}
