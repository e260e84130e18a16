package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config represents the main configuration for riverdesk.
type Config struct {
	InstanceID string           `toml:"instance_id"`
	BaseDir    string           `toml:"base_dir"`
	LogDir     string           `toml:"log_dir"`
	Store      StoreConfig      `toml:"store"`
	Latency    LatencyConfig    `toml:"latency"`
	Encryption EncryptionConfig `toml:"encryption"`
	Geocode    GeocodeConfig    `toml:"geocode"`
	Server     ServerConfig     `toml:"server"`
	Map        MapConfig        `toml:"map"`
}

// StoreConfig selects the key-value backend holding the collections.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type StoreConfig struct {
	Type string `toml:"type"` // "memory", "filesystem", "sqlite" or "s3"

	// Filesystem-specific fields (only used when Type == "filesystem")
	Dir string `toml:"dir,omitempty"`

	// SQLite-specific fields (only used when Type == "sqlite")
	Path string `toml:"path,omitempty"`

	// S3-specific fields (only used when Type == "s3")
	S3Bucket   string `toml:"s3_bucket,omitempty"`
	S3Prefix   string `toml:"s3_prefix,omitempty"`
	S3Region   string `toml:"s3_region,omitempty"`
	S3Endpoint string `toml:"s3_endpoint,omitempty"` // for S3-compatible services

	// Static credentials; when empty the default AWS credential chain is used.
	S3AccessKeyID     string `toml:"s3_access_key_id,omitempty"`
	S3SecretAccessKey string `toml:"s3_secret_access_key,omitempty"`
}

// LatencyConfig is the simulated backend latency in milliseconds.
type LatencyConfig struct {
	ReadMS   int `toml:"read_ms"`
	WriteMS  int `toml:"write_ms"`
	UploadMS int `toml:"upload_ms"`
}

func (l LatencyConfig) Read() time.Duration   { return time.Duration(l.ReadMS) * time.Millisecond }
func (l LatencyConfig) Write() time.Duration  { return time.Duration(l.WriteMS) * time.Millisecond }
func (l LatencyConfig) Upload() time.Duration { return time.Duration(l.UploadMS) * time.Millisecond }

// EncryptionConfig holds paths to the age key pair used for backup bundles.
type EncryptionConfig struct {
	Type           string `toml:"type"` // "age" (default) or "test"
	PublicKeyPath  string `toml:"public_key_path"`
	PrivateKeyPath string `toml:"private_key_path"`
	Armor          bool   `toml:"armor"` // write PEM-style text instead of binary
}

// GeocodeConfig points at a Nominatim-compatible search service.
type GeocodeConfig struct {
	BaseURL        string  `toml:"base_url"`
	UserAgent      string  `toml:"user_agent"`
	RatePerSecond  float64 `toml:"rate_per_second"`
	TimeoutSeconds int     `toml:"timeout_seconds"`
}

// ServerConfig configures the HTTP API started by `riverdesk serve`.
type ServerConfig struct {
	Addr            string  `toml:"addr"`
	RateLimit       float64 `toml:"rate_limit"` // requests per second per client
	Burst           int     `toml:"burst"`
	CacheTTLSeconds int     `toml:"cache_ttl_seconds"`
}

// MapConfig tunes the marker synchronizer.
type MapConfig struct {
	AnimationStep   float64 `toml:"animation_step"` // fraction of a route segment per frame
	FrameIntervalMS int     `toml:"frame_interval_ms"`
}

// NewConfig creates a new Config with the provided values and defaults for
// every section.
func NewConfig(instanceID, baseDir string) *Config {
	return &Config{
		InstanceID: instanceID,
		BaseDir:    baseDir,
		LogDir:     filepath.Join(baseDir, "log"),
		Store: StoreConfig{
			Type: "filesystem",
			Dir:  filepath.Join(baseDir, "store"),
		},
		Latency: LatencyConfig{ReadMS: 100, WriteMS: 150, UploadMS: 500},
		Encryption: EncryptionConfig{
			Type:           "age",
			PublicKeyPath:  filepath.Join(baseDir, "keys", "riverdesk.pub"),
			PrivateKeyPath: filepath.Join(baseDir, "keys", "riverdesk.key"),
		},
		Geocode: GeocodeConfig{
			BaseURL:        "https://nominatim.openstreetmap.org",
			UserAgent:      "riverdesk/1.0",
			RatePerSecond:  1,
			TimeoutSeconds: 10,
		},
		Server: ServerConfig{
			Addr:            "127.0.0.1:8080",
			RateLimit:       10,
			Burst:           20,
			CacheTTLSeconds: 30,
		},
		Map: MapConfig{AnimationStep: 0.005, FrameIntervalMS: 16},
	}
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from the provided reader.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	var cfg Config
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Write encodes a Config to the provided writer.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ReadFromFile reads a Config from the specified file path.
func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	cfg, err := m.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	return cfg, nil
}

func writeToFile(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Init writes cfg to a new config file at path. An existing file is never
// overwritten.
func Init(path string, cfg *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}
