package encryption

import (
	"bytes"
	"fmt"
	"io"

	"riverdesk/internal/desk"
)

// testHeader marks data "encrypted" by TestEncryptor.
var testHeader = []byte("RDENC\x00\x00\x00")

// TestEncryptor is a deterministic stand-in for tests and the "test"
// encryption type. It prepends a fixed header and strips it again; there is
// no cryptography involved. Unlock accepts any passphrase except
// WrongPassphrase.
type TestEncryptor struct {
	setupCalled bool
}

// WrongPassphrase is rejected by TestEncryptor.Unlock.
const WrongPassphrase = "wrong"

var _ desk.Encryptor = (*TestEncryptor)(nil)

func NewTestEncryptor() *TestEncryptor {
	return &TestEncryptor{}
}

func (e *TestEncryptor) Setup(passphrase string) error {
	e.setupCalled = true
	return nil
}

func (e *TestEncryptor) Encrypt(r io.Reader, w io.Writer) error {
	if _, err := w.Write(testHeader); err != nil {
		return fmt.Errorf("writing test header: %w", err)
	}
	if _, err := io.Copy(w, r); err != nil {
		return fmt.Errorf("copying data: %w", err)
	}
	return nil
}

func (e *TestEncryptor) Unlock(passphrase string) (desk.DecryptionContext, error) {
	if passphrase == WrongPassphrase {
		return nil, fmt.Errorf("decrypting private key: incorrect passphrase")
	}
	return &TestDecryptionContext{}, nil
}

func (e *TestEncryptor) IsConfigured() bool {
	return true
}

// TestDecryptionContext strips the header added by TestEncryptor.
type TestDecryptionContext struct{}

var _ desk.DecryptionContext = (*TestDecryptionContext)(nil)

func (c *TestDecryptionContext) Decrypt(r io.Reader, w io.Writer) error {
	header := make([]byte, len(testHeader))
	if _, err := io.ReadFull(r, header); err != nil {
		return fmt.Errorf("reading test header: %w", err)
	}
	if !bytes.Equal(header, testHeader) {
		return fmt.Errorf("invalid test encryption header")
	}
	if _, err := io.Copy(w, r); err != nil {
		return fmt.Errorf("copying data: %w", err)
	}
	return nil
}
