package backup_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"riverdesk/internal/backup"
	"riverdesk/internal/config"
	"riverdesk/internal/desk"
	"riverdesk/internal/encryption"
	"riverdesk/internal/testutil"
)

func seededStore(t *testing.T) desk.Store {
	t.Helper()
	ctx := context.Background()
	store := testutil.NewTestStore()
	repo := desk.NewEquipmentRepository(store, nil, testutil.FixedClock(), desk.NewNopLogger())
	if _, err := repo.GetAll(ctx); err != nil {
		t.Fatalf("seeding: %v", err)
	}
	return store
}

func TestExportImport_RoundTrip(t *testing.T) {
	ctx := context.Background()
	src := seededStore(t)
	enc := testutil.NewTestEncryptor()
	exporter := backup.NewService(src, enc, nil, testutil.FixedClock(), desk.NewNopLogger(), "desk-a")

	var buf bytes.Buffer
	b, err := exporter.Export(ctx, &buf)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if len(b.Entries) != 2 {
		t.Errorf("bundle has %d keys, want equipment and lastSaved", len(b.Entries))
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("RDENC")) {
		t.Error("bundle was not passed through the encryptor")
	}

	dst := testutil.NewTestStore()
	bus := desk.NewEventBus()
	var events []desk.WriteEvent
	bus.Subscribe(func(ev desk.WriteEvent) { events = append(events, ev) })
	importer := backup.NewService(dst, enc, bus, testutil.FixedClock(), desk.NewNopLogger(), "desk-b")

	n, err := importer.Import(ctx, &buf, "secret", backup.ImportOptions{})
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if n != 2 || len(events) != 2 {
		t.Errorf("imported %d keys with %d events, want 2", n, len(events))
	}
	for _, ev := range events {
		if ev.Op != "import" {
			t.Errorf("event op = %q, want import", ev.Op)
		}
	}

	want, _, _ := src.Get(ctx, desk.KeyEquipment)
	got, ok, _ := dst.Get(ctx, desk.KeyEquipment)
	if !ok || !bytes.Equal(got, want) {
		t.Error("equipment collection not restored byte-for-byte")
	}
}

func TestImport_Replace(t *testing.T) {
	ctx := context.Background()
	enc := testutil.NewTestEncryptor()
	svc := backup.NewService(seededStore(t), enc, nil, testutil.FixedClock(), desk.NewNopLogger(), "a")

	var buf bytes.Buffer
	if _, err := svc.Export(ctx, &buf); err != nil {
		t.Fatal(err)
	}
	data := buf.Bytes()

	t.Run("merge keeps unrelated keys", func(t *testing.T) {
		dst := testutil.NewTestStore()
		dst.Set(ctx, desk.KeySimCards, []byte("[]"))
		in := backup.NewService(dst, enc, nil, testutil.FixedClock(), desk.NewNopLogger(), "b")
		if _, err := in.Import(ctx, bytes.NewReader(data), "secret", backup.ImportOptions{}); err != nil {
			t.Fatal(err)
		}
		if _, ok, _ := dst.Get(ctx, desk.KeySimCards); !ok {
			t.Error("merge import removed an unrelated key")
		}
	})

	t.Run("replace removes unrelated keys", func(t *testing.T) {
		dst := testutil.NewTestStore()
		dst.Set(ctx, desk.KeySimCards, []byte("[]"))
		bus := desk.NewEventBus()
		removed := map[string]bool{}
		bus.Subscribe(func(ev desk.WriteEvent) {
			if ev.Op == "import-remove" {
				removed[ev.Key] = true
			}
		})
		in := backup.NewService(dst, enc, bus, testutil.FixedClock(), desk.NewNopLogger(), "b")
		if _, err := in.Import(ctx, bytes.NewReader(data), "secret", backup.ImportOptions{Replace: true}); err != nil {
			t.Fatal(err)
		}
		if _, ok, _ := dst.Get(ctx, desk.KeySimCards); ok {
			t.Error("replace import kept a key absent from the bundle")
		}
		if !removed[desk.KeySimCards] || len(removed) != 1 {
			t.Errorf("import-remove events = %v, want only %s", removed, desk.KeySimCards)
		}
	})
}

func TestImport_WrongPassphrase(t *testing.T) {
	ctx := context.Background()
	enc := testutil.NewTestEncryptor()
	svc := backup.NewService(seededStore(t), enc, nil, testutil.FixedClock(), desk.NewNopLogger(), "a")

	var buf bytes.Buffer
	if _, err := svc.Export(ctx, &buf); err != nil {
		t.Fatal(err)
	}

	dst := testutil.NewTestStore()
	in := backup.NewService(dst, enc, nil, testutil.FixedClock(), desk.NewNopLogger(), "b")
	if _, err := in.Import(ctx, &buf, encryption.WrongPassphrase, backup.ImportOptions{}); err == nil {
		t.Fatal("Import() succeeded with wrong passphrase")
	}
	keys, _ := dst.Keys(ctx)
	if len(keys) != 0 {
		t.Errorf("failed import wrote keys: %v", keys)
	}
}

func TestExportFile_WithAge(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	enc := encryption.NewAgeEncryptor(config.EncryptionConfig{
		Type:           "age",
		PublicKeyPath:  filepath.Join(dir, "riverdesk.pub"),
		PrivateKeyPath: filepath.Join(dir, "riverdesk.key"),
	})
	if err := enc.Setup("correct horse"); err != nil {
		t.Fatalf("Setup() error = %v", err)
	}

	svc := backup.NewService(seededStore(t), enc, nil, testutil.FixedClock(), desk.NewNopLogger(), "a")
	path := filepath.Join(dir, "backup.age")
	if _, err := svc.ExportFile(ctx, path); err != nil {
		t.Fatalf("ExportFile() error = %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	b, err := svc.Open(f, "correct horse")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if b.InstanceID != "a" || len(b.Keys()) != 2 {
		t.Errorf("bundle = %s with keys %v", b.InstanceID, b.Keys())
	}

	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".riverdesk-backup-") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}

func TestExport_RequiresConfiguredEncryptor(t *testing.T) {
	dir := t.TempDir()
	enc := encryption.NewAgeEncryptor(config.EncryptionConfig{
		Type:           "age",
		PublicKeyPath:  filepath.Join(dir, "missing.pub"),
		PrivateKeyPath: filepath.Join(dir, "missing.key"),
	})
	svc := backup.NewService(seededStore(t), enc, nil, testutil.FixedClock(), desk.NewNopLogger(), "a")
	if _, err := svc.Export(context.Background(), &bytes.Buffer{}); err == nil {
		t.Error("Export() succeeded without keys")
	}
}
