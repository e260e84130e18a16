package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"riverdesk/internal/desk"
)

// BundleVersion is the current bundle format.
const BundleVersion = 1

// Bundle is the plaintext form of a backup: every store key with its raw
// value.
type Bundle struct {
	Version    int               `json:"version"`
	CreatedAt  time.Time         `json:"createdAt"`
	InstanceID string            `json:"instanceId"`
	Entries    map[string][]byte `json:"entries"`
}

// Keys returns the bundle keys in ascending order.
func (b *Bundle) Keys() []string {
	keys := make([]string, 0, len(b.Entries))
	for k := range b.Entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Service exports and imports encrypted bundles of a store.
type Service struct {
	store      desk.Store
	encryptor  desk.Encryptor
	events     *desk.EventBus
	clock      desk.Clock
	logger     desk.Logger
	instanceID string
}

// NewService creates a backup service. events may be nil.
func NewService(store desk.Store, encryptor desk.Encryptor, events *desk.EventBus, clock desk.Clock, logger desk.Logger, instanceID string) *Service {
	return &Service{
		store:      store,
		encryptor:  encryptor,
		events:     events,
		clock:      clock,
		logger:     logger,
		instanceID: instanceID,
	}
}

// Snapshot reads every key into a plaintext bundle.
func (s *Service) Snapshot(ctx context.Context) (*Bundle, error) {
	keys, err := s.store.Keys(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing keys: %w", err)
	}

	b := &Bundle{
		Version:    BundleVersion,
		CreatedAt:  s.clock.Now().UTC(),
		InstanceID: s.instanceID,
		Entries:    make(map[string][]byte, len(keys)),
	}
	for _, key := range keys {
		value, ok, err := s.store.Get(ctx, key)
		if err != nil {
			return nil, &desk.StorageError{Op: "get", Key: key, Err: err}
		}
		if !ok {
			continue
		}
		b.Entries[key] = value
	}
	return b, nil
}

// Export writes an encrypted bundle of the whole store to w.
func (s *Service) Export(ctx context.Context, w io.Writer) (*Bundle, error) {
	if !s.encryptor.IsConfigured() {
		return nil, fmt.Errorf("encryption is not configured, run setup first")
	}

	b, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	plain, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("encoding bundle: %w", err)
	}
	if err := s.encryptor.Encrypt(bytes.NewReader(plain), w); err != nil {
		return nil, fmt.Errorf("encrypting bundle: %w", err)
	}

	s.logger.Info("backup exported", "keys", len(b.Entries))
	return b, nil
}

// ExportFile writes an encrypted bundle to path. The file appears only once
// it is complete.
func (s *Service) ExportFile(ctx context.Context, path string) (*Bundle, error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".riverdesk-backup-*")
	if err != nil {
		return nil, fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	b, err := s.Export(ctx, tmp)
	if err != nil {
		tmp.Close()
		return nil, err
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return nil, fmt.Errorf("renaming backup into place: %w", err)
	}
	return b, nil
}

// Open decrypts and decodes a bundle without touching the store.
func (s *Service) Open(r io.Reader, passphrase string) (*Bundle, error) {
	dctx, err := s.encryptor.Unlock(passphrase)
	if err != nil {
		return nil, fmt.Errorf("unlocking private key: %w", err)
	}

	var plain bytes.Buffer
	if err := dctx.Decrypt(r, &plain); err != nil {
		return nil, fmt.Errorf("decrypting bundle: %w", err)
	}

	var b Bundle
	if err := json.Unmarshal(plain.Bytes(), &b); err != nil {
		return nil, fmt.Errorf("decoding bundle: %w", err)
	}
	if b.Version != BundleVersion {
		return nil, fmt.Errorf("unsupported bundle version %d", b.Version)
	}
	return &b, nil
}

// ImportOptions controls how a bundle is applied.
type ImportOptions struct {
	// Replace removes keys that are not in the bundle.
	Replace bool
}

// Import decrypts a bundle and writes its entries into the store. Each
// written key is announced with a WriteEvent whose op is "import", and each
// key removed by Replace with op "import-remove". It returns the number of
// keys written.
func (s *Service) Import(ctx context.Context, r io.Reader, passphrase string, opts ImportOptions) (int, error) {
	b, err := s.Open(r, passphrase)
	if err != nil {
		return 0, err
	}

	now := s.clock.Now().UTC()
	if opts.Replace {
		existing, err := s.store.Keys(ctx)
		if err != nil {
			return 0, fmt.Errorf("listing keys: %w", err)
		}
		for _, key := range existing {
			if _, keep := b.Entries[key]; keep {
				continue
			}
			if err := s.store.Remove(ctx, key); err != nil {
				return 0, &desk.StorageError{Op: "remove", Key: key, Err: err}
			}
			s.events.Publish(desk.WriteEvent{Key: key, Op: "import-remove", SavedAt: now})
		}
	}

	n := 0
	for _, key := range b.Keys() {
		if err := s.store.Set(ctx, key, b.Entries[key]); err != nil {
			return n, &desk.StorageError{Op: "set", Key: key, Err: err}
		}
		n++
		s.events.Publish(desk.WriteEvent{Key: key, Op: "import", SavedAt: now})
	}

	s.logger.Info("backup imported", "keys", n, "from", b.InstanceID, "replace", opts.Replace)
	return n, nil
}
