package auth

import (
	"os"
	"path/filepath"
	"testing"

	pkgauth "github.com/keepstockhq/keepstock-backend/pkg/auth"
)

func TestFileSessionStoreRoundTrip(t *testing.T) {
	store, err := NewFileSessionStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileSessionStore: %v", err)
	}

	identity, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if identity != nil {
		t.Fatalf("fresh store must have no session, got %+v", identity)
	}

	want := pkgauth.Identity{Username: "XPTN", Store: "XPTN Store"}
	if err := store.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	identity, err = store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if identity == nil || *identity != want {
		t.Fatalf("Load = %+v, want %+v", identity, want)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	identity, err = store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if identity != nil {
		t.Fatalf("cleared store must have no session, got %+v", identity)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("repeated Clear: %v", err)
	}
}

func TestFileSessionStoreDiscardsCorruptSnapshot(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileSessionStore(dir)
	if err != nil {
		t.Fatalf("NewFileSessionStore: %v", err)
	}

	path := filepath.Join(dir, sessionFile)
	if err := os.WriteFile(path, []byte("{broken"), 0o644); err != nil {
		t.Fatalf("writing corrupt snapshot: %v", err)
	}

	identity, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if identity != nil {
		t.Fatalf("corrupt snapshot must read as no session, got %+v", identity)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("corrupt snapshot file must be removed")
	}
}

func TestFileSessionStoreRejectsEmptyStore(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileSessionStore(dir)
	if err != nil {
		t.Fatalf("NewFileSessionStore: %v", err)
	}

	path := filepath.Join(dir, sessionFile)
	if err := os.WriteFile(path, []byte(`{"username":"XPTN","store":""}`), 0o644); err != nil {
		t.Fatalf("writing snapshot: %v", err)
	}

	identity, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if identity != nil {
		t.Fatalf("identity without a store must read as no session, got %+v", identity)
	}
}
