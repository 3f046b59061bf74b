package cache

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
)

func TestStoreWriteAndRead(t *testing.T) {
	store := newTestStore(t)
	payload := []byte(`{"key":"docker/manifests/latest","value":"payload"}`)

	if err := store.Write("docker/manifests/latest", payload); err != nil {
		t.Fatalf("write error: %v", err)
	}

	body, err := store.Read("docker/manifests/latest")
	if err != nil {
		t.Fatalf("read error: %v", err)
	}
	if string(body) != string(payload) {
		t.Fatalf("cached payload mismatch: %s", string(body))
	}
}

func TestStoreReadMissing(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.Read("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStoreIgnoresDirectories(t *testing.T) {
	store := newTestStore(t)
	if err := store.Write("v2/manifest", []byte("x")); err != nil {
		t.Fatalf("write error: %v", err)
	}

	if _, err := store.Read("v2"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for directory, got %v", err)
	}
	if store.Exists("v2") {
		t.Fatalf("directory must not count as an existing record")
	}
}

func TestStoreLeavesNoTempFiles(t *testing.T) {
	fsys := memfs.New()
	store := NewStore(fsys, "cache")

	for i := 0; i < 3; i++ {
		if err := store.Write("a/b", []byte("data")); err != nil {
			t.Fatalf("write error: %v", err)
		}
	}

	entries, err := fsys.ReadDir("cache/a")
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "b" {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Fatalf("expected only the record file, got %s", strings.Join(names, ","))
	}
}

func TestStoreWritesLongestSegment(t *testing.T) {
	store := newTestStore(t)
	key := "nested/" + strings.Repeat("k", 250)

	if err := store.Write(key, []byte("data")); err != nil {
		t.Fatalf("write with a 250-byte segment failed: %v", err)
	}
	body, err := store.Read(key)
	if err != nil || string(body) != "data" {
		t.Fatalf("expected data back, got %q err=%v", body, err)
	}
}

func TestStoreRemoveIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	if err := store.Write("cache/remove", []byte("data")); err != nil {
		t.Fatalf("write error: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := store.Remove("cache/remove"); err != nil {
			t.Fatalf("remove #%d error: %v", i, err)
		}
	}
	if store.Exists("cache/remove") {
		t.Fatalf("expected record to be gone after remove")
	}
}

func TestStoreRemoveDirectoryIsRecursive(t *testing.T) {
	fsys := memfs.New()
	store := NewStore(fsys, "cache")
	for _, key := range []string{"d/e/f", "d/g"} {
		if err := store.Write(key, []byte("x")); err != nil {
			t.Fatalf("write %s: %v", key, err)
		}
	}

	if err := store.Remove("d"); err != nil {
		t.Fatalf("remove error: %v", err)
	}
	if _, err := fsys.Stat("cache/d"); !os.IsNotExist(err) {
		t.Fatalf("expected subtree to be removed, stat err=%v", err)
	}
}

func TestStoreClearRemovesRoot(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	store, err := NewLocalStore(dir)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	if err := store.Write("k", []byte("x")); err != nil {
		t.Fatalf("write error: %v", err)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("clear error: %v", err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Fatalf("expected root to be removed, stat err=%v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("clearing a missing root should succeed: %v", err)
	}
}

func TestStoreRootIsLazy(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "lazy")
	store, err := NewLocalStore(dir)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Fatalf("root should not exist before the first write")
	}
	if store.Root() != dir {
		t.Fatalf("expected root %s, got %s", dir, store.Root())
	}
}

func TestStorePathStaysUnderRoot(t *testing.T) {
	fsys := memfs.New()
	store := NewStore(fsys, "cache")
	if err := store.Write("../../escape", []byte("x")); err != nil {
		t.Fatalf("write error: %v", err)
	}
	ok, err := util.ReadFile(fsys, "cache/escape")
	if err != nil || string(ok) != "x" {
		t.Fatalf("expected record under root, got %q err=%v", ok, err)
	}
}

func TestStoreRejectsRootKey(t *testing.T) {
	store := newTestStore(t)
	if err := store.Write("/", []byte("x")); !errors.Is(err, ErrInvalidPath) {
		t.Fatalf("expected ErrInvalidPath, got %v", err)
	}
}

func TestNewLocalStoreRequiresPath(t *testing.T) {
	if _, err := NewLocalStore(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

// newTestStore returns a Store backed by a temporary directory.
func newTestStore(t *testing.T) Store {
	t.Helper()
	store, err := NewLocalStore(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	return store
}
