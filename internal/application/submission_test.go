package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/linskybing/dynamic-forms/internal/config"
	"github.com/linskybing/dynamic-forms/internal/domain/errs"
	"github.com/linskybing/dynamic-forms/internal/domain/form"
	"github.com/linskybing/dynamic-forms/internal/domain/notification"
	"github.com/linskybing/dynamic-forms/internal/domain/submission"
	"github.com/linskybing/dynamic-forms/internal/repository"
	"github.com/linskybing/dynamic-forms/internal/repository/mock"
	"github.com/linskybing/dynamic-forms/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	owner = submission.UserRef{ID: "u-1", Role: submission.RoleUser}
	admin = submission.UserRef{ID: "a-1", Role: submission.RoleAdmin}
	t0    = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
)

type recordingNotifier struct {
	got []notification.Transition
}

func (r *recordingNotifier) Notify(_ context.Context, t notification.Transition) {
	r.got = append(r.got, t)
}

type submissionMocks struct {
	schema *mock.MockSchemaRepo
	draft  *mock.MockDraftRepo
	subs   *mock.MockSubmissionRepo
	notes  *recordingNotifier
	svc    *SubmissionService
}

func setupSubmissionService(t *testing.T) submissionMocks {
	ctrl := gomock.NewController(t)
	m := submissionMocks{
		schema: mock.NewMockSchemaRepo(ctrl),
		draft:  mock.NewMockDraftRepo(ctrl),
		subs:   mock.NewMockSubmissionRepo(ctrl),
		notes:  &recordingNotifier{},
	}
	repos := &repository.Repos{Schema: m.schema, Draft: m.draft, Submission: m.subs}
	m.svc = NewSubmissionService(repos, m.notes)
	m.svc.now = func() time.Time { return t0 }
	m.svc.newID = func() string { return "sub-1" }
	return m
}

func contactSchema() *form.FormSchema {
	return &form.FormSchema{FormID: "contact", Version: 2, Fields: []form.FieldDef{
		{Key: "name", Type: form.FieldText, Required: true},
		{Key: "email", Type: form.FieldEmail, Validations: []form.ValidationRule{form.Builtin(form.BuiltinEmail)}},
	}}
}

func TestSaveDraft_RetriesAfterLostSwap(t *testing.T) {
	m := setupSubmissionService(t)
	ctx := context.Background()

	first := &submission.DraftRecord{OwnerID: "u-1", FormID: "contact", SchemaVersion: 2, Revision: 1,
		Payload: form.Payload{}, Stamps: map[string]submission.FieldStamp{}}
	second := &submission.DraftRecord{OwnerID: "u-1", FormID: "contact", SchemaVersion: 2, Revision: 2,
		Payload: form.Payload{"email": form.Text("b@c.io")},
		Stamps:  map[string]submission.FieldStamp{"email": {At: t0, Seq: 2}}}

	m.schema.EXPECT().Get(ctx, "contact", 2).Return(contactSchema(), nil)
	gomock.InOrder(
		m.draft.EXPECT().Read(ctx, "u-1", "contact").Return(first, nil),
		m.draft.EXPECT().WriteAtomic(ctx, first, gomock.Any()).
			Return(nil, errs.New(errs.KindConcurrentModification, "test", "lost")),
		m.draft.EXPECT().Read(ctx, "u-1", "contact").Return(second, nil),
		m.draft.EXPECT().WriteAtomic(ctx, second, gomock.Any()).
			DoAndReturn(func(_ context.Context, _, next *submission.DraftRecord) (*submission.DraftRecord, error) {
				return next, nil
			}),
	)

	saved, err := m.svc.SaveDraft(ctx, SaveDraftInput{
		Owner: owner, FormID: "contact", SchemaVersion: 2,
		Payload:         form.Payload{"name": form.Text("Ann")},
		ClientTimestamp: t0.Add(time.Second),
	})
	require.NoError(t, err)
	assert.Equal(t, form.Text("Ann"), saved.Payload["name"])
	assert.Equal(t, form.Text("b@c.io"), saved.Payload["email"], "merge recomputed from the fresh read")
	assert.Equal(t, submission.SourceServer, saved.SourceOfTruth)
}

func TestSaveDraft_GivesUpAfterMaxAttempts(t *testing.T) {
	orig := config.DraftMergeAttempts
	config.DraftMergeAttempts = 2
	defer func() { config.DraftMergeAttempts = orig }()

	m := setupSubmissionService(t)
	ctx := context.Background()
	m.schema.EXPECT().Get(ctx, "contact", 2).Return(contactSchema(), nil)
	m.draft.EXPECT().Read(ctx, "u-1", "contact").Return(nil, nil).Times(2)
	m.draft.EXPECT().WriteAtomic(ctx, nil, gomock.Any()).
		Return(nil, errs.New(errs.KindConcurrentModification, "test", "lost")).Times(2)

	_, err := m.svc.SaveDraft(ctx, SaveDraftInput{Owner: owner, FormID: "contact", SchemaVersion: 2,
		Payload: form.Payload{"name": form.Text("Ann")}})
	assert.ErrorIs(t, err, errs.ErrConcurrentModification)
}

func TestSaveDraft_OlderSchemaVersionRejected(t *testing.T) {
	m := setupSubmissionService(t)
	ctx := context.Background()
	m.schema.EXPECT().Get(ctx, "contact", 1).Return(&form.FormSchema{FormID: "contact", Version: 1}, nil)
	m.draft.EXPECT().Read(ctx, "u-1", "contact").
		Return(&submission.DraftRecord{OwnerID: "u-1", FormID: "contact", SchemaVersion: 2, Revision: 3}, nil)

	_, err := m.svc.SaveDraft(ctx, SaveDraftInput{Owner: owner, FormID: "contact", SchemaVersion: 1})
	assert.ErrorIs(t, err, errs.ErrConcurrentModification)
}

func TestSaveDraft_StorageErrorNotRetried(t *testing.T) {
	m := setupSubmissionService(t)
	ctx := context.Background()
	down := errs.Wrap(errs.KindStorageUnavailable, "test", errors.New("connection refused"))
	m.schema.EXPECT().Get(ctx, "contact", 2).Return(contactSchema(), nil)
	m.draft.EXPECT().Read(ctx, "u-1", "contact").Return(nil, nil)
	m.draft.EXPECT().WriteAtomic(ctx, nil, gomock.Any()).Return(nil, down)

	_, err := m.svc.SaveDraft(ctx, SaveDraftInput{Owner: owner, FormID: "contact", SchemaVersion: 2})
	assert.ErrorIs(t, err, errs.ErrStorageUnavailable)
}

func TestSubmit_FailsClosed(t *testing.T) {
	m := setupSubmissionService(t)
	ctx := context.Background()
	draft := &submission.DraftRecord{OwnerID: "u-1", FormID: "contact", SchemaVersion: 2, Revision: 4,
		Payload: form.Payload{"email": form.Text("not-an-email")}, LastSavedAt: t0}

	m.draft.EXPECT().Read(ctx, "u-1", "contact").Return(draft, nil)
	m.schema.EXPECT().Get(ctx, "contact", 2).Return(contactSchema(), nil)

	sub, res, err := m.svc.Submit(ctx, owner, "contact")
	require.NoError(t, err)
	assert.Nil(t, sub)
	require.NotNil(t, res)
	assert.Len(t, res.Errors, 2)
	assert.Empty(t, m.notes.got)
}

func TestSubmit_CreatesSubmissionAndDropsDraft(t *testing.T) {
	m := setupSubmissionService(t)
	ctx := context.Background()
	created := t0.Add(-time.Hour)
	draft := &submission.DraftRecord{OwnerID: "u-1", FormID: "contact", SchemaVersion: 2, Revision: 4,
		Payload: form.Payload{"name": form.Text("Ann")}, LastSavedAt: t0.Add(-time.Minute), CreatedAt: created}

	m.draft.EXPECT().Read(ctx, "u-1", "contact").Return(draft, nil)
	m.schema.EXPECT().Get(ctx, "contact", 2).Return(contactSchema(), nil)
	m.subs.EXPECT().Create(ctx, gomock.Any()).Return(nil)
	m.draft.EXPECT().DeleteIfUnchanged(ctx, "u-1", "contact", draft.LastSavedAt).Return(true, nil)

	sub, res, err := m.svc.Submit(ctx, owner, "contact")
	require.NoError(t, err)
	assert.True(t, res.OK())
	assert.Equal(t, "sub-1", sub.ID)
	assert.Equal(t, submission.StateSubmitted, sub.State)
	require.Len(t, sub.History, 2)
	assert.Equal(t, submission.StateDraft, sub.History[0].State)
	assert.Equal(t, created, sub.History[0].At)

	require.Len(t, m.notes.got, 1)
	assert.Equal(t, submission.StateDraft, m.notes.got[0].From)
	assert.Equal(t, submission.StateSubmitted, m.notes.got[0].To)
}

func TestSubmit_SingleSubmissionForm(t *testing.T) {
	single := false
	schema := contactSchema()
	schema.AllowMultipleSubmissions = &single
	draft := &submission.DraftRecord{OwnerID: "u-1", FormID: "contact", SchemaVersion: 2,
		Payload: form.Payload{"name": form.Text("Ann")}, LastSavedAt: t0}

	t.Run("already submitted", func(t *testing.T) {
		m := setupSubmissionService(t)
		ctx := context.Background()
		m.draft.EXPECT().Read(ctx, "u-1", "contact").Return(draft, nil)
		m.schema.EXPECT().Get(ctx, "contact", 2).Return(schema, nil)
		m.subs.EXPECT().ListByOwner(ctx, "u-1").Return([]submission.Submission{
			{ID: "other", FormID: "survey", State: submission.StateApproved},
			{ID: "first", FormID: "contact", State: submission.StateUnderReview},
		}, nil)

		sub, _, err := m.svc.Submit(ctx, owner, "contact")
		assert.ErrorIs(t, err, errs.ErrForbidden)
		assert.Nil(t, sub)
		assert.Empty(t, m.notes.got)
	})

	t.Run("earlier one rejected", func(t *testing.T) {
		m := setupSubmissionService(t)
		ctx := context.Background()
		m.draft.EXPECT().Read(ctx, "u-1", "contact").Return(draft, nil)
		m.schema.EXPECT().Get(ctx, "contact", 2).Return(schema, nil)
		m.subs.EXPECT().ListByOwner(ctx, "u-1").Return([]submission.Submission{
			{ID: "first", FormID: "contact", State: submission.StateRejected},
		}, nil)
		m.subs.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		m.draft.EXPECT().DeleteIfUnchanged(ctx, "u-1", "contact", t0).Return(true, nil)

		sub, _, err := m.svc.Submit(ctx, owner, "contact")
		require.NoError(t, err)
		assert.Equal(t, submission.StateSubmitted, sub.State)
	})

	t.Run("admin exempt", func(t *testing.T) {
		m := setupSubmissionService(t)
		ctx := context.Background()
		adminDraft := *draft
		adminDraft.OwnerID = "a-1"
		m.draft.EXPECT().Read(ctx, "a-1", "contact").Return(&adminDraft, nil)
		m.schema.EXPECT().Get(ctx, "contact", 2).Return(schema, nil)
		m.subs.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		m.draft.EXPECT().DeleteIfUnchanged(ctx, "a-1", "contact", t0).Return(true, nil)

		_, _, err := m.svc.Submit(ctx, admin, "contact")
		require.NoError(t, err)
	})
}

func TestSubmit_DraftChangedWhileSubmitting(t *testing.T) {
	m := setupSubmissionService(t)
	ctx := context.Background()
	draft := &submission.DraftRecord{OwnerID: "u-1", FormID: "contact", SchemaVersion: 2,
		Payload: form.Payload{"name": form.Text("Ann")}, LastSavedAt: t0}

	m.draft.EXPECT().Read(ctx, "u-1", "contact").Return(draft, nil)
	m.schema.EXPECT().Get(ctx, "contact", 2).Return(contactSchema(), nil)
	m.subs.EXPECT().Create(ctx, gomock.Any()).Return(nil)
	m.draft.EXPECT().DeleteIfUnchanged(ctx, "u-1", "contact", t0).Return(false, nil)

	_, _, err := m.svc.Submit(ctx, owner, "contact")
	assert.ErrorIs(t, err, errs.ErrConcurrentModification)
	assert.Empty(t, m.notes.got)
}

func rejected() *submission.Submission {
	return &submission.Submission{ID: "sub-1", FormID: "contact", SchemaVersion: 2, OwnerID: "u-1",
		State: submission.StateRejected, Revision: 5, Payload: form.Payload{"name": form.Text("Ann")}}
}

func TestTransition_RejectedToDraftNeedsSchema(t *testing.T) {
	m := setupSubmissionService(t)
	ctx := context.Background()
	m.schema.EXPECT().Get(ctx, "contact", 2).
		Return(nil, errs.New(errs.KindSchemaNotFound, "test", "gone"))

	_, err := m.svc.Transition(ctx, rejected(), submission.StateDraft, owner, "")
	assert.ErrorIs(t, err, errs.ErrSchemaNotFound)
	assert.Empty(t, m.notes.got)
}

func TestTransition_RejectedToDraft(t *testing.T) {
	m := setupSubmissionService(t)
	ctx := context.Background()
	snap := rejected()
	m.schema.EXPECT().Get(ctx, "contact", 2).Return(contactSchema(), nil)
	m.subs.EXPECT().WriteAtomic(ctx, snap, gomock.Any()).
		DoAndReturn(func(_ context.Context, old, next *submission.Submission) (*submission.Submission, error) {
			out := next.Clone()
			out.Revision = old.Revision + 1
			return out, nil
		})

	got, err := m.svc.Transition(ctx, snap, submission.StateDraft, owner, "")
	require.NoError(t, err)
	assert.Equal(t, submission.StateDraft, got.State)
	assert.Equal(t, int64(6), got.Revision)
	require.Len(t, m.notes.got, 1)
	assert.Equal(t, submission.StateRejected, m.notes.got[0].From)
}

func TestTransition_ResubmitRevalidates(t *testing.T) {
	m := setupSubmissionService(t)
	ctx := context.Background()
	snap := rejected()
	snap.State = submission.StateDraft
	snap.Payload = form.Payload{}
	m.schema.EXPECT().Get(ctx, "contact", 2).Return(contactSchema(), nil)

	_, err := m.svc.Transition(ctx, snap, submission.StateSubmitted, owner, "")
	require.ErrorIs(t, err, errs.ErrValidationFailed)
	var e *errs.Error
	require.True(t, errors.As(err, &e))
	res, ok := e.Detail.(*validation.Result)
	require.True(t, ok)
	assert.Equal(t, "name", res.Errors[0].FieldKey)
}

func TestTransition_IllegalAndForbidden(t *testing.T) {
	m := setupSubmissionService(t)
	ctx := context.Background()
	draft := &submission.Submission{ID: "s", OwnerID: "u-1", State: submission.StateDraft, Revision: 1}

	for _, actor := range []submission.UserRef{admin, owner} {
		_, err := m.svc.Transition(ctx, draft, submission.StateApproved, actor, "")
		assert.ErrorIs(t, err, errs.ErrIllegalTransition, actor.ID)
	}

	submitted := &submission.Submission{ID: "s", OwnerID: "u-1", State: submission.StateSubmitted, Revision: 1}
	_, err := m.svc.Transition(ctx, submitted, submission.StateUnderReview, owner, "")
	assert.ErrorIs(t, err, errs.ErrForbidden)
}

func TestTransition_ReviewNotesKept(t *testing.T) {
	m := setupSubmissionService(t)
	ctx := context.Background()
	snap := &submission.Submission{ID: "s", OwnerID: "u-1", FormID: "contact", State: submission.StateUnderReview, Revision: 3}
	m.subs.EXPECT().WriteAtomic(ctx, snap, gomock.Any()).
		DoAndReturn(func(_ context.Context, _, next *submission.Submission) (*submission.Submission, error) {
			return next, nil
		})

	got, err := m.svc.Transition(ctx, snap, submission.StateRejected, admin, "missing ID scan")
	require.NoError(t, err)
	assert.Equal(t, "missing ID scan", got.ReviewNotes)
	require.NotNil(t, got.ReviewerID)
	assert.Equal(t, "a-1", *got.ReviewerID)
	assert.Equal(t, "missing ID scan", m.notes.got[0].Notes)
}

func TestTransitionByID_StaleRevision(t *testing.T) {
	m := setupSubmissionService(t)
	ctx := context.Background()
	m.subs.EXPECT().Read(ctx, "sub-1").Return(rejected(), nil)

	_, err := m.svc.TransitionByID(ctx, "sub-1", 4, submission.StateDraft, owner, "")
	assert.ErrorIs(t, err, errs.ErrConcurrentModification)
}

func TestTransition_LostSwapNotRetried(t *testing.T) {
	m := setupSubmissionService(t)
	ctx := context.Background()
	snap := &submission.Submission{ID: "s", OwnerID: "u-1", State: submission.StateSubmitted, Revision: 2}
	m.subs.EXPECT().WriteAtomic(ctx, snap, gomock.Any()).
		Return(nil, errs.New(errs.KindConcurrentModification, "test", "lost")).Times(1)

	_, err := m.svc.Transition(ctx, snap, submission.StateUnderReview, admin, "")
	assert.ErrorIs(t, err, errs.ErrConcurrentModification)
	assert.Empty(t, m.notes.got)
}

type fakeResolver struct{}

func (fakeResolver) Resolve(_ context.Context, ref form.FileRef) (form.FileRef, error) {
	ref.Size = 4096
	ref.ContentType = "application/pdf"
	return ref, nil
}

func TestUpdatePayload_ResolvesFilesAndKeepsOtherKeys(t *testing.T) {
	m := setupSubmissionService(t)
	m.svc.Files = fakeResolver{}
	ctx := context.Background()
	current := &submission.Submission{ID: "s", OwnerID: "u-1", State: submission.StateDraft, Revision: 7,
		Payload: form.Payload{"name": form.Text("Ann")}}
	m.subs.EXPECT().Read(ctx, "s").Return(current, nil)
	m.subs.EXPECT().WriteAtomic(ctx, current, gomock.Any()).
		DoAndReturn(func(_ context.Context, _, next *submission.Submission) (*submission.Submission, error) {
			return next, nil
		})

	got, err := m.svc.UpdatePayload(ctx, "s", 7, form.Payload{"cv": form.File(form.FileRef{FileID: "f1", Size: 1})}, owner)
	require.NoError(t, err)
	assert.Equal(t, form.Text("Ann"), got.Payload["name"])
	assert.Equal(t, int64(4096), got.Payload["cv"].Files[0].Size)
}

func TestUpdatePayload_OnlyOwnerOnReturnedDraft(t *testing.T) {
	m := setupSubmissionService(t)
	ctx := context.Background()
	m.subs.EXPECT().Read(ctx, "s").
		Return(&submission.Submission{ID: "s", OwnerID: "u-1", State: submission.StateDraft, Revision: 1}, nil)
	_, err := m.svc.UpdatePayload(ctx, "s", 1, form.Payload{}, submission.UserRef{ID: "u-2"})
	assert.ErrorIs(t, err, errs.ErrForbidden)

	m.subs.EXPECT().Read(ctx, "s").
		Return(&submission.Submission{ID: "s", OwnerID: "u-1", State: submission.StateApproved, Revision: 1}, nil)
	_, err = m.svc.UpdatePayload(ctx, "s", 1, form.Payload{}, owner)
	assert.ErrorIs(t, err, errs.ErrIllegalTransition)
}

func TestGet_ChecksOwnership(t *testing.T) {
	m := setupSubmissionService(t)
	ctx := context.Background()
	m.subs.EXPECT().Read(ctx, "sub-1").Return(rejected(), nil).Times(3)

	_, err := m.svc.Get(ctx, "sub-1", owner)
	assert.NoError(t, err)
	_, err = m.svc.Get(ctx, "sub-1", admin)
	assert.NoError(t, err)
	_, err = m.svc.Get(ctx, "sub-1", submission.UserRef{ID: "u-2", Role: submission.RoleUser})
	assert.ErrorIs(t, err, errs.ErrForbidden)
}
