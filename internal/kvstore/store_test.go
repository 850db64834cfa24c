package kvstore

import (
	"os"
	"path/filepath"
	"testing"
)

func testStore(t *testing.T, s Store) {
	t.Helper()

	if _, ok, err := s.Get("missing"); err != nil || ok {
		t.Fatalf("Get(missing) = ok=%v err=%v", ok, err)
	}
	if err := s.Set("k", []byte("v1")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v, ok, err := s.Get("k")
	if err != nil || !ok || string(v) != "v1" {
		t.Fatalf("Get = %q ok=%v err=%v", v, ok, err)
	}
	if err := s.Set("k", []byte("v2")); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	v, _, _ = s.Get("k")
	if string(v) != "v2" {
		t.Fatalf("overwrite not visible: %q", v)
	}
	if err := s.Delete("k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := s.Get("k"); ok {
		t.Fatal("deleted key still present")
	}
}

func TestMemoryStore(t *testing.T) {
	testStore(t, NewMemory())
}

func TestMemoryStoreCopies(t *testing.T) {
	m := NewMemory()
	buf := []byte("abc")
	m.Set("k", buf)
	buf[0] = 'x'
	v, _, _ := m.Get("k")
	if string(v) != "abc" {
		t.Fatalf("stored value aliased caller buffer: %q", v)
	}
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "kv.json")
	f, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	testStore(t, f)

	// Values survive a reopen.
	if err := f.Set("persisted", []byte("yes")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	f2, err := NewFile(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	v, ok, err := f2.Get("persisted")
	if err != nil || !ok || string(v) != "yes" {
		t.Fatalf("reopened Get = %q ok=%v err=%v", v, ok, err)
	}
}

func TestFileStoreCorruptFileStartsFresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile on corrupt file: %v", err)
	}
	if _, ok, _ := f.Get("anything"); ok {
		t.Fatal("corrupt file produced entries")
	}
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.db")
	s, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("NewSQLite: %v", err)
	}
	defer s.Close()
	testStore(t, s)
}
