package notification

import (
	"context"
	"time"

	"github.com/linskybing/dynamic-forms/internal/domain/submission"
)

type Kind string

const (
	KindSubmissionCreated  Kind = "submission-created"
	KindSubmissionReviewed Kind = "submission-reviewed"
	KindStatusChanged      Kind = "status-changed"
)

// Recipient addresses either every user holding Role or one user.
type Recipient struct {
	Role   submission.Role `json:"role,omitempty"`
	UserID string          `json:"userId,omitempty"`
}

// Transition is one committed lifecycle move.
type Transition struct {
	SubmissionID  string           `json:"submissionId"`
	FormID        string           `json:"formId"`
	SchemaVersion int              `json:"schemaVersion"`
	OwnerID       string           `json:"ownerId"`
	From          submission.State `json:"from"`
	To            submission.State `json:"to"`
	ActorID       string           `json:"actorId"`
	Notes         string           `json:"notes,omitempty"`
	At            time.Time        `json:"at"`
}

func TransitionOf(before, after *submission.Submission, actor submission.UserRef, notes string) Transition {
	return Transition{
		SubmissionID:  after.ID,
		FormID:        after.FormID,
		SchemaVersion: after.SchemaVersion,
		OwnerID:       after.OwnerID,
		From:          before.State,
		To:            after.State,
		ActorID:       actor.ID,
		Notes:         notes,
		At:            after.UpdatedAt,
	}
}

type Event struct {
	Kind      Kind           `json:"kind"`
	Recipient Recipient      `json:"recipient"`
	Payload   map[string]any `json:"payload"`
}

// Sink delivers events. The lifecycle treats Publish as fire-and-forget.
type Sink interface {
	Publish(ctx context.Context, e Event) error
}
