package encryption

import (
	"bytes"
	"testing"
)

func TestTestEncryptor_EncryptDecrypt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input []byte
	}{
		{name: "simple text", input: []byte("hello river")},
		{name: "empty", input: []byte{}},
		{name: "binary data", input: []byte{0x00, 0xff, 0x01, 0xfe}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := NewTestEncryptor()

			var encrypted bytes.Buffer
			if err := e.Encrypt(bytes.NewReader(tt.input), &encrypted); err != nil {
				t.Fatalf("Encrypt() error = %v", err)
			}
			if !bytes.HasPrefix(encrypted.Bytes(), testHeader) {
				t.Error("encrypted output does not start with test header")
			}

			dc, err := e.Unlock("any-passphrase")
			if err != nil {
				t.Fatalf("Unlock() error = %v", err)
			}

			var decrypted bytes.Buffer
			if err := dc.Decrypt(bytes.NewReader(encrypted.Bytes()), &decrypted); err != nil {
				t.Fatalf("Decrypt() error = %v", err)
			}
			if !bytes.Equal(decrypted.Bytes(), tt.input) {
				t.Errorf("round-trip failed: got %q, want %q", decrypted.Bytes(), tt.input)
			}
		})
	}
}

func TestTestEncryptor_Setup(t *testing.T) {
	t.Parallel()
	e := NewTestEncryptor()
	if err := e.Setup("x"); err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	if !e.setupCalled {
		t.Error("Setup() did not record that it was called")
	}
	if !e.IsConfigured() {
		t.Error("IsConfigured() = false, want true")
	}
}

func TestTestEncryptor_WrongPassphrase(t *testing.T) {
	t.Parallel()
	if _, err := NewTestEncryptor().Unlock(WrongPassphrase); err == nil {
		t.Error("Unlock(WrongPassphrase) should return error")
	}
}

func TestTestDecryptionContext_BadInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input []byte
	}{
		{name: "invalid header", input: []byte("NOT_VALID_HEADER_data")},
		{name: "truncated header", input: []byte("RD")},
		{name: "empty", input: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			if err := (&TestDecryptionContext{}).Decrypt(bytes.NewReader(tt.input), &out); err == nil {
				t.Error("Decrypt() should return error")
			}
		})
	}
}

func TestNewEncryptorFromConfig(t *testing.T) {
	tests := []struct {
		typ     string
		wantErr bool
	}{
		{typ: "", wantErr: false},
		{typ: "age", wantErr: false},
		{typ: "test", wantErr: false},
		{typ: "rot13", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.typ, func(t *testing.T) {
			got, err := NewEncryptorFromConfig(configWithType(tt.typ))
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewEncryptorFromConfig(%q) error = %v, wantErr %v", tt.typ, err, tt.wantErr)
			}
			if !tt.wantErr && got == nil {
				t.Error("NewEncryptorFromConfig() returned nil")
			}
		})
	}
}
