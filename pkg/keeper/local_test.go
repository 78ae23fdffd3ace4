package keeper

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"searchops/keeper/pkg/document"
)

func newTestDirStore(t *testing.T) *DirStore {
	t.Helper()
	store, err := NewDirStore(filepath.Join(t.TempDir(), "policies"))
	if err != nil {
		t.Fatalf("NewDirStore() error: %v", err)
	}
	return store
}

func TestDirStoreSaveAndLoad(t *testing.T) {
	store := newTestDirStore(t)
	doc := document.Document{
		"description": "retention",
		"states":      []any{map[string]any{"name": "hot"}},
	}

	file, err := store.Save("p1", doc)
	if err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if filepath.Base(file) != "p1.yaml" {
		t.Errorf("saved file = %q, want p1.yaml", file)
	}

	loaded, err := store.Load("p1")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !document.Equal(doc, loaded) {
		t.Errorf("round trip mismatch: saved %v, loaded %v", doc, loaded)
	}
}

func TestDirStoreLoadYmlFallback(t *testing.T) {
	store := newTestDirStore(t)
	path := filepath.Join(store.Dir(), "legacy.yml")
	if err := os.WriteFile(path, []byte("description: old\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := store.Load("legacy")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if doc["description"] != "old" {
		t.Errorf("unexpected document: %v", doc)
	}
}

func TestDirStoreLoadMissing(t *testing.T) {
	store := newTestDirStore(t)
	if _, err := store.Load("absent"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDirStoreLoadUnreadableFile(t *testing.T) {
	store := newTestDirStore(t)
	// A directory squatting on the entity's file name makes the read fail
	// with something other than not-exist.
	if err := os.Mkdir(filepath.Join(store.Dir(), "broken.yaml"), 0o755); err != nil {
		t.Fatal(err)
	}

	_, err := store.Load("broken")
	if err == nil {
		t.Fatal("expected error for unreadable file")
	}
	if errors.Is(err, ErrNotFound) {
		t.Errorf("read failure reported as ErrNotFound: %v", err)
	}
}

func TestDirStoreLoadEmptyFile(t *testing.T) {
	store := newTestDirStore(t)
	if err := os.WriteFile(filepath.Join(store.Dir(), "empty.yaml"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Load("empty"); !errors.Is(err, ErrMalformedDocument) {
		t.Errorf("expected ErrMalformedDocument, got %v", err)
	}
}

func TestDirStoreListNameDerivation(t *testing.T) {
	store := newTestDirStore(t)
	// Names are the portion before the first dot.
	for _, file := range []string{"p1.yaml", "p2.backup.yaml", "notes.txt", "p3.yml"} {
		if err := os.WriteFile(filepath.Join(store.Dir(), file), []byte("a: 1\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	names, err := store.List("")
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	want := []string{"p1", "p2", "p3"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("List() = %v, want %v", names, want)
	}
}

func TestDirStoreListPattern(t *testing.T) {
	store := newTestDirStore(t)
	for _, name := range []string{"logs-hot", "logs-warm", "traces"} {
		if _, err := store.Save(name, document.Document{"a": 1}); err != nil {
			t.Fatal(err)
		}
	}

	names, err := store.List("logs-*")
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	want := []string{"logs-hot", "logs-warm"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("List(logs-*) = %v, want %v", names, want)
	}

	if _, err := store.List("[invalid"); err == nil {
		t.Error("expected error for malformed pattern")
	}
}
