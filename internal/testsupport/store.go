package testsupport

import (
	"context"
	"testing"

	"subgauge/internal/config"
	"subgauge/internal/history"
)

// MustOpenStore opens a history.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *history.Store {
	t.Helper()

	store, err := history.Open(context.Background(), cfg)
	if err != nil {
		t.Fatalf("history.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// RecordRun stores a run for path with the given cue count and fails the test on error.
func RecordRun(t testing.TB, store *history.Store, path string, cues int) history.Run {
	t.Helper()

	run, err := store.Record(context.Background(), history.Run{Path: path, Cues: cues})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	return run
}
