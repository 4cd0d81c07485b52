package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestLocalStorePut(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "outputs")
	s := NewLocalStore(dir)

	a, err := s.Put(context.Background(), "report.json", []byte(`{"id":"1"}`), "application/json")
	if err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if a.Location != filepath.Join(dir, "report.json") || a.Size != 10 {
		t.Errorf("Put() = %+v", a)
	}
	data, err := os.ReadFile(a.Location)
	if err != nil || string(data) != `{"id":"1"}` {
		t.Fatalf("ReadFile() = %q, %v", data, err)
	}

	if _, err := s.Put(context.Background(), "report.json", []byte("x"), "application/json"); err == nil {
		t.Error("Put() overwrote an existing artifact")
	}
}

func TestLocalStoreRejectsPaths(t *testing.T) {
	t.Parallel()

	s := NewLocalStore(t.TempDir())
	for _, name := range []string{"", "../escape.json", "a/b.json"} {
		if _, err := s.Put(context.Background(), name, []byte("x"), "text/plain"); err == nil {
			t.Errorf("Put(%q) succeeded, want error", name)
		}
	}
}
