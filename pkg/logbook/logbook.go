// Package logbook persists completed-set reports: a JSON file store keyed by
// uuid, with optional export of individual entries to Google Docs.
package logbook

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when an entry id does not exist.
var ErrNotFound = errors.New("logbook: entry not found")

// SyncStatus tracks whether an entry has been exported to Google Docs.
type SyncStatus string

const (
	SyncLocal  SyncStatus = "local"
	SyncSynced SyncStatus = "synced"
	SyncError  SyncStatus = "error"
)

// Entry is one completed set: the exercise, the rep total, and the coach's
// analysis report.
type Entry struct {
	ID       string `json:"id"`
	Exercise string `json:"exercise"`
	Reps     int    `json:"reps"`
	Report   string `json:"report"`

	// GoogleDocID is set once the entry has been exported.
	GoogleDocID string     `json:"google_doc_id,omitempty"`
	SyncStatus  SyncStatus `json:"sync_status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Title returns the document title used when exporting.
func (e *Entry) Title() string {
	return fmt.Sprintf("FitCoach: %s — %s", e.Exercise, e.CreatedAt.Format("Jan 2, 2006"))
}

// MarkSynced records a successful export.
func (e *Entry) MarkSynced(docID string) {
	e.GoogleDocID = docID
	e.SyncStatus = SyncSynced
	e.UpdatedAt = time.Now()
}

// MarkSyncError records a failed export.
func (e *Entry) MarkSyncError() {
	e.SyncStatus = SyncError
	e.UpdatedAt = time.Now()
}
