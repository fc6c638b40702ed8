package artifactstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestLocalStore_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalStore(filepath.Join(dir, "artifacts"))
	ctx := context.Background()

	want := []byte{0x01, 0x02, 0xff}
	if err := s.Save(ctx, "model.gob", want); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	got, err := s.Load(ctx, "model.gob")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if string(got) != string(want) {
		t.Fatalf("Load = %v, want %v", got, want)
	}
}

func TestLocalStore_LoadMissing(t *testing.T) {
	s := NewLocalStore(t.TempDir())
	if _, err := s.Load(context.Background(), "missing.gob"); err == nil {
		t.Fatal("expected error for missing artifact")
	}
}

func TestLocalStore_SaveCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	s := NewLocalStore(dir)
	if err := s.Save(context.Background(), "v.gob", []byte("x")); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "v.gob")); err != nil {
		t.Fatalf("expected artifact file: %v", err)
	}
}
