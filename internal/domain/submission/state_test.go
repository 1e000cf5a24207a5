package submission

import (
	"testing"
	"time"

	"github.com/linskybing/dynamic-forms/internal/domain/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	owner = UserRef{ID: "u-1", Role: RoleUser}
	admin = UserRef{ID: "a-1", Role: RoleAdmin}
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to State
		want     bool
	}{
		{StateDraft, StateSubmitted, true},
		{StateDraft, StateApproved, false},
		{StateDraft, StateUnderReview, false},
		{StateSubmitted, StateUnderReview, true},
		{StateSubmitted, StateApproved, false},
		{StateUnderReview, StateApproved, true},
		{StateUnderReview, StateRejected, true},
		{StateRejected, StateDraft, true},
		{StateRejected, StateApproved, false},
		{StateApproved, StateDraft, false},
		{StateApproved, StateRejected, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
	assert.True(t, StateApproved.Terminal())
	assert.False(t, StateRejected.Terminal())
}

func TestApply_DraftToApprovedIsIllegal(t *testing.T) {
	sub := &Submission{ID: "s-1", OwnerID: owner.ID, State: StateDraft}

	_, err := Apply(sub, StateApproved, admin, time.Now())
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrIllegalTransition)
	assert.Equal(t, StateDraft, sub.State)
}

func TestApply_AppendsHistoryWithoutMutatingInput(t *testing.T) {
	t0 := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	sub := &Submission{
		ID:      "s-1",
		OwnerID: owner.ID,
		State:   StateSubmitted,
		History: []HistoryEntry{{State: StateDraft, ActorID: owner.ID, At: t0}, {State: StateSubmitted, ActorID: owner.ID, At: t0}},
	}

	next, err := Apply(sub, StateUnderReview, admin, t0.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, StateUnderReview, next.State)
	require.Len(t, next.History, 3)
	assert.Equal(t, HistoryEntry{State: StateUnderReview, ActorID: admin.ID, At: t0.Add(time.Hour)}, next.History[2])
	require.NotNil(t, next.ReviewerID)
	assert.Equal(t, admin.ID, *next.ReviewerID)

	assert.Len(t, sub.History, 2)
	assert.Nil(t, sub.ReviewerID)
}

func TestAuthorize(t *testing.T) {
	sub := &Submission{ID: "s-1", OwnerID: owner.ID, State: StateUnderReview}

	assert.ErrorIs(t, Authorize(sub, StateApproved, owner), errs.ErrForbidden)
	assert.NoError(t, Authorize(sub, StateApproved, admin))

	rejected := &Submission{ID: "s-2", OwnerID: owner.ID, State: StateRejected}
	assert.NoError(t, Authorize(rejected, StateDraft, owner))
	assert.ErrorIs(t, Authorize(rejected, StateDraft, UserRef{ID: "someone-else", Role: RoleUser}), errs.ErrForbidden)
	assert.NoError(t, Authorize(rejected, StateDraft, admin))
}
