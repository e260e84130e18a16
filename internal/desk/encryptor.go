package desk

import "io"

// Encryptor protects backup bundles. Encryption needs only the public key;
// decryption needs the passphrase that unlocks the private key.
type Encryptor interface {
	// Setup generates the key pair once, storing the private key encrypted
	// with passphrase.
	Setup(passphrase string) error

	// Encrypt reads plaintext from r and writes ciphertext to w.
	Encrypt(r io.Reader, w io.Writer) error

	// Unlock decrypts the private key. A wrong passphrase is an error.
	Unlock(passphrase string) (DecryptionContext, error)

	// IsConfigured reports whether the key pair exists.
	IsConfigured() bool
}

// DecryptionContext holds an unlocked private key in memory for one import.
type DecryptionContext interface {
	Decrypt(r io.Reader, w io.Writer) error
}
