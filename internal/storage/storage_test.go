package storage_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/nikbrunner/bmdash/internal/storage"
)

func TestJSONStorage_SetAndGet(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "state.json")
	ctx := context.Background()

	s := storage.NewJSONStorage(path)
	if err := s.Set(ctx, "collapsedStates", []byte(`{"f1":true}`)); err != nil {
		t.Fatalf("failed to set: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("state file was not created")
	}

	got, err := s.Get(ctx, "collapsedStates")
	if err != nil {
		t.Fatalf("failed to get: %v", err)
	}
	if string(got) != `{"f1":true}` {
		t.Errorf("expected stored blob, got %s", got)
	}
}

func TestJSONStorage_GetMissing(t *testing.T) {
	tmpDir := t.TempDir()
	ctx := context.Background()

	t.Run("missing file", func(t *testing.T) {
		s := storage.NewJSONStorage(filepath.Join(tmpDir, "nonexistent.json"))
		if _, err := s.Get(ctx, "collapsedStates"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("missing key", func(t *testing.T) {
		s := storage.NewJSONStorage(filepath.Join(tmpDir, "other.json"))
		if err := s.Set(ctx, "other", []byte(`1`)); err != nil {
			t.Fatalf("failed to set: %v", err)
		}
		if _, err := s.Get(ctx, "collapsedStates"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestJSONStorage_OverwritesAndKeepsOtherKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	ctx := context.Background()
	s := storage.NewJSONStorage(path)

	steps := []struct {
		key   string
		value string
	}{
		{"a", `{"f1":true}`},
		{"b", `"kept"`},
		{"a", `{"f1":false}`},
	}
	for _, step := range steps {
		if err := s.Set(ctx, step.key, []byte(step.value)); err != nil {
			t.Fatalf("set %s: %v", step.key, err)
		}
	}

	a, err := s.Get(ctx, "a")
	if err != nil {
		t.Fatalf("get a: %v", err)
	}
	if string(a) != `{"f1":false}` {
		t.Errorf("expected latest value for a, got %s", a)
	}

	b, err := s.Get(ctx, "b")
	if err != nil {
		t.Fatalf("get b: %v", err)
	}
	if string(b) != `"kept"` {
		t.Errorf("expected b to survive rewrite of a, got %s", b)
	}
}

func TestJSONStorage_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "state.json")

	s := storage.NewJSONStorage(path)
	if err := s.Set(context.Background(), "k", []byte(`{}`)); err != nil {
		t.Fatalf("failed to set with nested dir: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("state file was not created in nested directory")
	}
}

func TestJSONStorage_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("not json"), 0644); err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	s := storage.NewJSONStorage(path)

	if _, err := s.Get(ctx, "k"); err == nil {
		t.Fatal("expected decode error for corrupt file")
	}

	// A write replaces the corrupt file.
	if err := s.Set(ctx, "k", []byte(`true`)); err != nil {
		t.Fatalf("set over corrupt file: %v", err)
	}
	got, err := s.Get(ctx, "k")
	if err != nil {
		t.Fatalf("get after repair: %v", err)
	}
	if string(got) != "true" {
		t.Errorf("expected true, got %s", got)
	}
}

func TestJSONStorage_RejectsInvalidJSON(t *testing.T) {
	s := storage.NewJSONStorage(filepath.Join(t.TempDir(), "state.json"))
	if err := s.Set(context.Background(), "k", []byte("{broken")); err == nil {
		t.Error("expected error for invalid JSON value")
	}
}

func TestJSONStorage_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := storage.NewJSONStorage(filepath.Join(t.TempDir(), "state.json"))
	if err := s.Set(ctx, "k", []byte(`1`)); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestOpen(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name    string
		backend string
		wantErr error
	}{
		{"default is json", "", nil},
		{"json", "json", nil},
		{"sqlite", "sqlite", nil},
		{"unknown", "redis", storage.ErrUnknownBackend},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := storage.Open(tt.backend, filepath.Join(tmpDir, tt.name, "state"))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			defer s.Close()

			if err := s.Set(context.Background(), "k", []byte(`{"x":true}`)); err != nil {
				t.Fatalf("set: %v", err)
			}
		})
	}
}
