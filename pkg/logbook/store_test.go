package logbook

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *JSONStore {
	t.Helper()
	store, err := NewJSONStore(filepath.Join(t.TempDir(), "logbook.json"))
	if err != nil {
		t.Fatalf("NewJSONStore: %v", err)
	}
	return store
}

func TestStoreSaveAssignsID(t *testing.T) {
	store := newTestStore(t)

	entry := &Entry{Exercise: "squat", Reps: 8, Report: "Solid depth."}
	if err := store.Save(entry); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if entry.ID == "" {
		t.Error("expected generated id")
	}
	if entry.SyncStatus != SyncLocal {
		t.Errorf("sync status = %q, want local", entry.SyncStatus)
	}
	if entry.CreatedAt.IsZero() {
		t.Error("expected created timestamp")
	}

	got, err := store.Get(entry.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Report != "Solid depth." {
		t.Errorf("unexpected report %q", got.Report)
	}
}

func TestStoreGetNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStoreListNewestFirst(t *testing.T) {
	store := newTestStore(t)

	for i, name := range []string{"squat", "curl", "pushup"} {
		entry := &Entry{
			Exercise:  name,
			CreatedAt: time.Now().Add(time.Duration(i) * time.Minute),
		}
		if err := store.Save(entry); err != nil {
			t.Fatalf("Save %s: %v", name, err)
		}
	}

	entries, err := store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Exercise != "pushup" {
		t.Errorf("newest first: got %q", entries[0].Exercise)
	}

	latest, err := store.Latest()
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if latest.Exercise != "pushup" {
		t.Errorf("Latest = %q, want pushup", latest.Exercise)
	}
}

func TestStoreLatestEmpty(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.Latest(); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStorePersistsAcrossLoads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logbook.json")

	store, err := NewJSONStore(path)
	if err != nil {
		t.Fatalf("NewJSONStore: %v", err)
	}
	entry := &Entry{Exercise: "curl", Reps: 12, Report: "Slow the eccentric."}
	if err := store.Save(entry); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reopened, err := NewJSONStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if reopened.Count() != 1 {
		t.Fatalf("expected 1 entry after reload, got %d", reopened.Count())
	}
	got, err := reopened.Get(entry.ID)
	if err != nil {
		t.Fatalf("Get after reload: %v", err)
	}
	if got.Report != "Slow the eccentric." {
		t.Errorf("unexpected report %q", got.Report)
	}
}

func TestStoreDelete(t *testing.T) {
	store := newTestStore(t)

	entry := &Entry{Exercise: "squat"}
	if err := store.Save(entry); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := store.Delete(entry.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if store.Count() != 0 {
		t.Errorf("expected empty store, got %d entries", store.Count())
	}

	if err := store.Delete(entry.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestEntrySyncTransitions(t *testing.T) {
	entry := &Entry{Exercise: "squat", SyncStatus: SyncLocal}

	entry.MarkSynced("doc-123")
	if entry.SyncStatus != SyncSynced || entry.GoogleDocID != "doc-123" {
		t.Errorf("after MarkSynced: %+v", entry)
	}

	entry.MarkSyncError()
	if entry.SyncStatus != SyncError {
		t.Errorf("after MarkSyncError: %q", entry.SyncStatus)
	}
}
