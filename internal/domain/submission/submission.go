package submission

import (
	"time"

	"github.com/linskybing/dynamic-forms/internal/domain/errs"
	"github.com/linskybing/dynamic-forms/internal/domain/form"
)

type HistoryEntry struct {
	State   State     `json:"state"`
	ActorID string    `json:"actorId"`
	At      time.Time `json:"at"`
}

// Submission is a lifecycle-tracked payload bound to the schema version it
// was validated against. Revision is the optimistic-concurrency counter
// owned by the store.
type Submission struct {
	ID            string         `json:"id"`
	FormID        string         `json:"formId"`
	SchemaVersion int            `json:"schemaVersion"`
	OwnerID       string         `json:"ownerId"`
	Payload       form.Payload   `json:"payload"`
	State         State          `json:"state"`
	ReviewerID    *string        `json:"reviewerId,omitempty"`
	ReviewNotes   string         `json:"reviewNotes,omitempty"`
	History       []HistoryEntry `json:"history"`
	Revision      int64          `json:"revision"`
	SubmittedAt   *time.Time     `json:"submittedAt,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

func (s *Submission) Clone() *Submission {
	out := *s
	out.Payload = s.Payload.Clone()
	out.History = append([]HistoryEntry(nil), s.History...)
	if s.ReviewerID != nil {
		id := *s.ReviewerID
		out.ReviewerID = &id
	}
	if s.SubmittedAt != nil {
		at := *s.SubmittedAt
		out.SubmittedAt = &at
	}
	return &out
}

// Apply returns a copy of sub moved to state to, with the move appended to
// its history. It checks only the transition table.
func Apply(sub *Submission, to State, actor UserRef, at time.Time) (*Submission, error) {
	if !CanTransition(sub.State, to) {
		return nil, errs.New(errs.KindIllegalTransition, "submission.Apply",
			"cannot move submission %s from %s to %s", sub.ID, sub.State, to)
	}
	next := sub.Clone()
	next.State = to
	next.History = append(next.History, HistoryEntry{State: to, ActorID: actor.ID, At: at})
	next.UpdatedAt = at
	switch to {
	case StateSubmitted:
		next.SubmittedAt = &at
	case StateUnderReview, StateApproved, StateRejected:
		id := actor.ID
		next.ReviewerID = &id
	}
	return next, nil
}

// FromDraft builds the submitted record for a validated draft.
func FromDraft(id string, d *DraftRecord, actor UserRef, at time.Time) *Submission {
	started := d.CreatedAt
	if started.IsZero() {
		started = at
	}
	return &Submission{
		ID:            id,
		FormID:        d.FormID,
		SchemaVersion: d.SchemaVersion,
		OwnerID:       d.OwnerID,
		Payload:       d.Payload.Clone(),
		State:         StateSubmitted,
		History: []HistoryEntry{
			{State: StateDraft, ActorID: d.OwnerID, At: started},
			{State: StateSubmitted, ActorID: actor.ID, At: at},
		},
		SubmittedAt: &at,
		CreatedAt:   at,
		UpdatedAt:   at,
	}
}
