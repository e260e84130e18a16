package desk

import "context"

// Store is the key-value space the registry persists into. It mirrors the
// browser's local storage contract: opaque string keys holding JSON values.
// Implementations live in the kv package (memory, filesystem, sqlite, s3).
//
// There is no transaction isolation across keys. Two writers doing
// read-modify-write on the same key can clobber each other.
type Store interface {
	// Get returns the value stored under key. ok is false when the key
	// has never been written or was removed.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Set replaces the value stored under key.
	Set(ctx context.Context, key string, value []byte) error

	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error

	// Keys lists every stored key in ascending order.
	Keys(ctx context.Context) ([]string, error)
}

// Keys used by the registry.
const (
	KeyEquipment    = "riverdesk.equipment"
	KeyEmptyFolders = "riverdesk.emptyFolders"
	KeyLastSaved    = "riverdesk.lastSaved"
	KeySimCards     = "riverdesk.simcards"
	KeyAdSpots      = "riverdesk.adspots"
	KeyHistory      = "riverdesk.history"
)
