package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"riverdesk/internal/config"
)

// Defaults are the paths used when no flag overrides them.
type Defaults struct {
	ConfigPath string
	BaseDir    string
	LogDir     string
}

// GetDefaults returns application default paths, checking environment
// variables first:
//   - RIVERDESK_CONFIG_PATH: config file (default ~/.config/riverdesk.toml)
//   - RIVERDESK_HOME: data directory (default ~/.local/share/riverdesk)
func GetDefaults() (Defaults, error) {
	configPath := os.Getenv("RIVERDESK_CONFIG_PATH")
	baseDir := os.Getenv("RIVERDESK_HOME")

	if configPath == "" || baseDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return Defaults{}, fmt.Errorf("cannot determine home directory: %w", err)
		}
		if configPath == "" {
			configPath = filepath.Join(homeDir, ".config", "riverdesk.toml")
		}
		if baseDir == "" {
			baseDir = filepath.Join(homeDir, ".local", "share", "riverdesk")
		}
	}

	return Defaults{
		ConfigPath: configPath,
		BaseDir:    baseDir,
		LogDir:     filepath.Join(baseDir, "log"),
	}, nil
}

// NewDefaultConfig returns a config rooted at d.BaseDir with a fresh
// instance id.
func NewDefaultConfig(d Defaults) *config.Config {
	cfg := config.NewConfig(uuid.New().String(), d.BaseDir)
	cfg.LogDir = d.LogDir
	return cfg
}
