package notification

import (
	"github.com/linskybing/dynamic-forms/internal/domain/submission"
)

// Dispatch maps a committed transition to the events it produces.
//
//	draft -> submitted             submission-created to admins, status-changed to owner
//	submitted -> under_review      nothing
//	under_review -> approved       submission-reviewed to owner, status-changed to owner
//	under_review -> rejected       submission-reviewed to owner, status-changed to owner
//	anything else                  status-changed to owner
func Dispatch(t Transition) []Event {
	owner := Recipient{UserID: t.OwnerID}
	payload := func() map[string]any {
		p := map[string]any{
			"submissionId":  t.SubmissionID,
			"formId":        t.FormID,
			"schemaVersion": t.SchemaVersion,
			"ownerId":       t.OwnerID,
			"from":          string(t.From),
			"to":            string(t.To),
			"actorId":       t.ActorID,
			"at":            t.At,
		}
		if t.Notes != "" {
			p["notes"] = t.Notes
		}
		return p
	}

	switch {
	case t.From == submission.StateSubmitted && t.To == submission.StateUnderReview:
		return nil
	case t.From == submission.StateDraft && t.To == submission.StateSubmitted:
		return []Event{
			{Kind: KindSubmissionCreated, Recipient: Recipient{Role: submission.RoleAdmin}, Payload: payload()},
			{Kind: KindStatusChanged, Recipient: owner, Payload: payload()},
		}
	case t.From == submission.StateUnderReview && (t.To == submission.StateApproved || t.To == submission.StateRejected):
		return []Event{
			{Kind: KindSubmissionReviewed, Recipient: owner, Payload: payload()},
			{Kind: KindStatusChanged, Recipient: owner, Payload: payload()},
		}
	}
	return []Event{{Kind: KindStatusChanged, Recipient: owner, Payload: payload()}}
}
