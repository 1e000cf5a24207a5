package submission

import (
	"context"
	"time"
)

// DraftStore persists drafts. WriteAtomic replaces old with new only if the
// stored revision still equals old's (old == nil means "no draft yet") and
// fails with errs.ConcurrentModification otherwise.
type DraftStore interface {
	Read(ctx context.Context, ownerID, formID string) (*DraftRecord, error)
	WriteAtomic(ctx context.Context, old, new *DraftRecord) (*DraftRecord, error)
	ListStale(ctx context.Context, cutoff time.Time) ([]DraftRecord, error)
	DeleteIfUnchanged(ctx context.Context, ownerID, formID string, lastSavedAt time.Time) (bool, error)
}

// SubmissionStore persists submissions under the same revision contract.
type SubmissionStore interface {
	Read(ctx context.Context, id string) (*Submission, error)
	Create(ctx context.Context, s *Submission) error
	WriteAtomic(ctx context.Context, old, new *Submission) (*Submission, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Submission, error)
	ListByForm(ctx context.Context, formID string) ([]Submission, error)
}
