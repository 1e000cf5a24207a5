package submission

import (
	"github.com/linskybing/dynamic-forms/internal/domain/errs"
)

type State string

const (
	StateDraft       State = "draft"
	StateSubmitted   State = "submitted"
	StateUnderReview State = "under_review"
	StateApproved    State = "approved"
	StateRejected    State = "rejected"
)

// transitions is the legal-move table. rejected -> draft is further gated
// on the recorded schema version still resolving.
var transitions = map[State][]State{
	StateDraft:       {StateSubmitted},
	StateSubmitted:   {StateUnderReview},
	StateUnderReview: {StateApproved, StateRejected},
	StateRejected:    {StateDraft},
}

func (s State) Valid() bool {
	switch s {
	case StateDraft, StateSubmitted, StateUnderReview, StateApproved, StateRejected:
		return true
	}
	return false
}

func (s State) Terminal() bool {
	return len(transitions[s]) == 0
}

// Counted reports whether a submission in this state uses up a form that
// accepts one submission per user. Rejected and reopened ones do not.
func (s State) Counted() bool {
	return s == StateSubmitted || s == StateUnderReview || s == StateApproved
}

func CanTransition(from, to State) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// UserRef is the caller identity handed in by the transport layer.
type UserRef struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
}

func (u UserRef) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// reviewState reports whether moving into s is a reviewer action.
func reviewState(s State) bool {
	return s == StateUnderReview || s == StateApproved || s == StateRejected
}

// Authorize applies the role-tagged checks for moving sub to the given state:
// review moves are admin only, the rest belong to the owner or an admin.
func Authorize(sub *Submission, to State, actor UserRef) error {
	const op = "submission.Authorize"
	if reviewState(to) {
		if !actor.IsAdmin() {
			return errs.New(errs.KindForbidden, op, "only admins may move a submission to %s", to)
		}
		return nil
	}
	if actor.ID != sub.OwnerID && !actor.IsAdmin() {
		return errs.New(errs.KindForbidden, op, "user %s does not own submission %s", actor.ID, sub.ID)
	}
	return nil
}

// CanView reports whether actor may read sub.
func CanView(sub *Submission, actor UserRef) bool {
	return actor.IsAdmin() || sub.OwnerID == actor.ID
}
