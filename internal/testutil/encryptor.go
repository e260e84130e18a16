package testutil

import (
	"riverdesk/internal/desk"
	"riverdesk/internal/encryption"
)

// NewTestEncryptor creates a deterministic header-only encryptor.
func NewTestEncryptor() desk.Encryptor {
	return encryption.NewTestEncryptor()
}
