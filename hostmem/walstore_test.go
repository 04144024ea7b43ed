package hostmem

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWALStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.wal")

	store, err := OpenWALStore(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Insert([]byte("a"), []byte("1")); err != nil {
		t.Fatal(err)
	}
	if err := store.Insert([]byte("b"), []byte("2")); err != nil {
		t.Fatal(err)
	}
	if err := store.Remove([]byte("a")); err != nil {
		t.Fatal(err)
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	reopened, err := OpenWALStore(path)
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()

	if v, err := reopened.Get([]byte("a")); err != nil || v != nil {
		t.Fatalf("expected 'a' to stay removed after replay, got %v err=%v", v, err)
	}
	v, err := reopened.Get([]byte("b"))
	if err != nil || string(v) != "2" {
		t.Fatalf("expected 'b' to survive replay, got %v err=%v", v, err)
	}
}

func TestWALStoreRejectsCorruptLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.wal")
	store, err := OpenWALStore(path)
	if err != nil {
		t.Fatal(err)
	}
	store.Close()

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.WriteString("not json\n"); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := OpenWALStore(path); err == nil {
		t.Fatal("expected replay error on corrupt WAL line")
	}
}
