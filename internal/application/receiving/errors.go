package receiving

import (
	"fmt"

	"github.com/google/uuid"
)

// PersistenceError wraps a storage failure so callers can distinguish it
// from a domain validation failure. The workflow state is unchanged when
// one of these is returned.
type PersistenceError struct {
	Op  string
	Err error
}

// Error implements the error interface
func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failed during %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying storage error
func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func newPersistenceError(op string, err error) *PersistenceError {
	return &PersistenceError{Op: op, Err: err}
}

// BulkIngestError reports a bulk item upload that stopped partway.
// Rows before FailedRow were inserted and stay in the working set;
// the caller can fix the file and re-upload the remainder.
type BulkIngestError struct {
	Inserted  int
	FailedRow int
	Err       error
}

// Error implements the error interface
func (e *BulkIngestError) Error() string {
	return fmt.Sprintf("bulk ingest stopped at row %d after %d inserts: %v", e.FailedRow, e.Inserted, e.Err)
}

// Unwrap returns the underlying row error
func (e *BulkIngestError) Unwrap() error {
	return e.Err
}

// QualityCheckCommitError reports a quality-check finalization that failed
// partway through its per-item commits. Committed items are durably
// persisted and marked on the workflow, so a retry resumes with the
// remainder instead of duplicating rows.
type QualityCheckCommitError struct {
	Committed    int
	FailedItemID uuid.UUID
	Err          error
}

// Error implements the error interface
func (e *QualityCheckCommitError) Error() string {
	return fmt.Sprintf("quality check commit failed on item %s after %d items committed: %v", e.FailedItemID, e.Committed, e.Err)
}

// Unwrap returns the underlying failure
func (e *QualityCheckCommitError) Unwrap() error {
	return e.Err
}
