package storage_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/nikbrunner/bmdash/internal/storage"
)

func TestSQLiteStorage_SetAndGet(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "state.db")
	ctx := context.Background()

	s, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	defer s.Close()

	if err := s.Set(ctx, "collapsedStates", []byte(`{"f1":true,"f2":false}`)); err != nil {
		t.Fatalf("failed to set: %v", err)
	}

	got, err := s.Get(ctx, "collapsedStates")
	if err != nil {
		t.Fatalf("failed to get: %v", err)
	}
	if string(got) != `{"f1":true,"f2":false}` {
		t.Errorf("unexpected value %s", got)
	}
}

func TestSQLiteStorage_EmptyDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "empty.db")

	s, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	defer s.Close()

	if _, err := s.Get(context.Background(), "collapsedStates"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound on empty db, got %v", err)
	}

	version, err := s.SchemaVersion()
	if err != nil {
		t.Fatalf("schema version: %v", err)
	}
	if version != 1 {
		t.Errorf("expected schema version 1, got %d", version)
	}
}

func TestSQLiteStorage_Upsert(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "upsert.db")
	ctx := context.Background()

	s, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	defer s.Close()

	for _, v := range []string{`{"f1":true}`, `{"f1":false}`} {
		if err := s.Set(ctx, "collapsedStates", []byte(v)); err != nil {
			t.Fatalf("set %s: %v", v, err)
		}
	}

	got, err := s.Get(ctx, "collapsedStates")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != `{"f1":false}` {
		t.Errorf("expected last write to win, got %s", got)
	}
}

func TestSQLiteStorage_ReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "reopen.db")
	ctx := context.Background()

	s, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("failed to create storage with nested dir: %v", err)
	}
	if err := s.Set(ctx, "k", []byte(`"v"`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// Reopening runs migrate again on an existing schema.
	s2, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()

	got, err := s2.Get(ctx, "k")
	if err != nil {
		t.Fatalf("get after reopen: %v", err)
	}
	if string(got) != `"v"` {
		t.Errorf("expected \"v\", got %s", got)
	}
}
