package kv

import (
	"context"
	"fmt"

	"riverdesk/internal/config"
	"riverdesk/internal/database"
	"riverdesk/internal/desk"
)

// NewStoreFromConfig creates a desk.Store implementation based on the store
// config type. Stores that hold resources also implement io.Closer.
func NewStoreFromConfig(ctx context.Context, cfg config.StoreConfig, clock desk.Clock) (desk.Store, error) {
	switch cfg.Type {
	case "memory":
		return NewMemoryStore(), nil
	case "filesystem":
		if cfg.Dir == "" {
			return nil, fmt.Errorf("filesystem store requires dir to be set")
		}
		s, err := NewFileSystemStore(cfg.Dir)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "sqlite":
		if cfg.Path == "" {
			return nil, fmt.Errorf("sqlite store requires path to be set")
		}
		s, err := database.NewSQLiteStore(cfg.Path, clock)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "s3":
		s, err := NewS3Store(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown store type: %s", cfg.Type)
	}
}
