package application

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/linskybing/dynamic-forms/internal/config"
	"github.com/linskybing/dynamic-forms/internal/domain/errs"
	"github.com/linskybing/dynamic-forms/internal/domain/form"
	"github.com/linskybing/dynamic-forms/internal/domain/notification"
	"github.com/linskybing/dynamic-forms/internal/domain/submission"
	"github.com/linskybing/dynamic-forms/internal/repository"
	"github.com/linskybing/dynamic-forms/internal/validation"
)

// Notifier receives every committed lifecycle transition.
type Notifier interface {
	Notify(ctx context.Context, t notification.Transition)
}

// FileResolver replaces client-reported file metadata with what storage holds.
type FileResolver interface {
	Resolve(ctx context.Context, ref form.FileRef) (form.FileRef, error)
}

type SubmissionService struct {
	Repos    *repository.Repos
	Notifier Notifier
	Files    FileResolver

	now   func() time.Time
	newID func() string
}

func NewSubmissionService(repos *repository.Repos, notifier Notifier) *SubmissionService {
	return &SubmissionService{
		Repos:    repos,
		Notifier: notifier,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// clock truncates to microseconds so timestamps survive a postgres round trip
// unchanged; DeleteIfUnchanged compares them for equality.
func (s *SubmissionService) clock() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

type SaveDraftInput struct {
	Owner           submission.UserRef
	FormID          string
	SchemaVersion   int
	Payload         form.Payload
	ClientTimestamp time.Time
	Source          submission.Source
}

// SaveDraft merges an autosave into the owner's draft field by field. A lost
// compare-and-swap recomputes the merge from a fresh read.
func (s *SubmissionService) SaveDraft(ctx context.Context, in SaveDraftInput) (*submission.DraftRecord, error) {
	const op = "application.SaveDraft"
	if _, err := s.Repos.Schema.Get(ctx, in.FormID, in.SchemaVersion); err != nil {
		return nil, err
	}

	payload, err := s.resolveFiles(ctx, in.Payload)
	if err != nil {
		return nil, err
	}

	source := in.Source
	if source == "" {
		source = submission.SourceServer
	}
	for attempt := 0; attempt < config.DraftMergeAttempts; attempt++ {
		current, err := s.Repos.Draft.Read(ctx, in.Owner.ID, in.FormID)
		if err != nil {
			return nil, err
		}
		if current != nil && in.SchemaVersion < current.SchemaVersion {
			return nil, errs.New(errs.KindConcurrentModification, op,
				"draft is on schema version %d, edit was made against %d", current.SchemaVersion, in.SchemaVersion)
		}

		now := s.clock()
		clientAt := in.ClientTimestamp
		if clientAt.IsZero() {
			clientAt = now
		}
		next := submission.MergeDraft(current, submission.DraftEdit{
			OwnerID:         in.Owner.ID,
			FormID:          in.FormID,
			SchemaVersion:   in.SchemaVersion,
			Payload:         payload,
			ClientTimestamp: clientAt,
			Source:          source,
			ReceivedAt:      now,
		})

		saved, err := s.Repos.Draft.WriteAtomic(ctx, current, next)
		if err == nil {
			return saved, nil
		}
		if !errors.Is(err, errs.ErrConcurrentModification) {
			return nil, err
		}
		log.Printf("Draft %s/%s changed during save, retrying (attempt %d)", in.Owner.ID, in.FormID, attempt+1)
	}
	return nil, errs.New(errs.KindConcurrentModification, op,
		"draft %s/%s kept changing after %d attempts", in.Owner.ID, in.FormID, config.DraftMergeAttempts)
}

func (s *SubmissionService) GetDraft(ctx context.Context, owner submission.UserRef, formID string) (*submission.DraftRecord, error) {
	d, err := s.Repos.Draft.Read(ctx, owner.ID, formID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, errs.New(errs.KindNotFound, "application.GetDraft", "no draft for form %s", formID)
	}
	return d, nil
}

// Submit validates the owner's draft against its recorded schema version.
// A failing payload returns the result with a nil submission and leaves the
// draft untouched. On success the draft is replaced by a submitted record.
func (s *SubmissionService) Submit(ctx context.Context, owner submission.UserRef, formID string) (*submission.Submission, *validation.Result, error) {
	const op = "application.Submit"
	draft, err := s.GetDraft(ctx, owner, formID)
	if err != nil {
		return nil, nil, err
	}
	schema, err := s.Repos.Schema.Get(ctx, draft.FormID, draft.SchemaVersion)
	if err != nil {
		return nil, nil, err
	}
	if err := s.checkAlreadySubmitted(ctx, schema, owner); err != nil {
		return nil, nil, err
	}
	res, err := validation.Validate(schema, draft.Payload)
	if err != nil {
		return nil, nil, err
	}
	if !res.OK() {
		return nil, res, nil
	}

	sub := submission.FromDraft(s.newID(), draft, owner, s.clock())
	err = s.Repos.ExecTx(func(repos *repository.Repos) error {
		if err := repos.Submission.Create(ctx, sub); err != nil {
			return err
		}
		deleted, err := repos.Draft.DeleteIfUnchanged(ctx, draft.OwnerID, draft.FormID, draft.LastSavedAt)
		if err != nil {
			return err
		}
		if !deleted {
			return errs.New(errs.KindConcurrentModification, op, "draft changed while submitting")
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	log.Printf("Submission %s created for form %s v%d by %s", sub.ID, sub.FormID, sub.SchemaVersion, owner.ID)
	s.notify(ctx, notification.TransitionOf(&submission.Submission{State: submission.StateDraft}, sub, owner, ""))
	return sub, res, nil
}

// checkAlreadySubmitted enforces forms that accept one submission per user.
// Admins are exempt.
func (s *SubmissionService) checkAlreadySubmitted(ctx context.Context, schema *form.FormSchema, owner submission.UserRef) error {
	if schema.MultipleSubmissionsAllowed() || owner.IsAdmin() {
		return nil
	}
	subs, err := s.Repos.Submission.ListByOwner(ctx, owner.ID)
	if err != nil {
		return err
	}
	for _, sub := range subs {
		if sub.FormID == schema.FormID && sub.State.Counted() {
			return errs.New(errs.KindForbidden, "application.Submit", "form %s was already submitted", schema.FormID)
		}
	}
	return nil
}

// TransitionByID reads the submission, rejects a stale revision and applies
// the move. revision 0 skips the staleness check.
func (s *SubmissionService) TransitionByID(ctx context.Context, id string, revision int64, to submission.State, actor submission.UserRef, notes string) (*submission.Submission, error) {
	current, err := s.Repos.Submission.Read(ctx, id)
	if err != nil {
		return nil, err
	}
	if revision != 0 && revision != current.Revision {
		return nil, errs.New(errs.KindConcurrentModification, "application.TransitionByID",
			"submission %s is at revision %d, not %d", id, current.Revision, revision)
	}
	return s.Transition(ctx, current, to, actor, notes)
}

// Transition moves snapshot to state to. The write fails with
// ConcurrentModification if snapshot is no longer current; it is not retried.
func (s *SubmissionService) Transition(ctx context.Context, snapshot *submission.Submission, to submission.State, actor submission.UserRef, notes string) (*submission.Submission, error) {
	const op = "application.Transition"
	// Legality before roles.
	next, err := submission.Apply(snapshot, to, actor, s.clock())
	if err != nil {
		return nil, err
	}
	if err := submission.Authorize(snapshot, to, actor); err != nil {
		return nil, err
	}

	switch {
	case snapshot.State == submission.StateRejected && to == submission.StateDraft:
		if _, err := s.Repos.Schema.Get(ctx, snapshot.FormID, snapshot.SchemaVersion); err != nil {
			return nil, err
		}
	case to == submission.StateSubmitted:
		schema, err := s.Repos.Schema.Get(ctx, snapshot.FormID, snapshot.SchemaVersion)
		if err != nil {
			return nil, err
		}
		res, err := validation.Validate(schema, snapshot.Payload)
		if err != nil {
			return nil, err
		}
		if !res.OK() {
			e := errs.New(errs.KindValidationFailed, op, "%d field errors", len(res.Errors))
			e.Detail = res
			return nil, e
		}
	case to == submission.StateApproved || to == submission.StateRejected:
		next.ReviewNotes = notes
	}

	saved, err := s.Repos.Submission.WriteAtomic(ctx, snapshot, next)
	if err != nil {
		return nil, err
	}
	log.Printf("Submission %s moved %s -> %s by %s", saved.ID, snapshot.State, saved.State, actor.ID)
	s.notify(ctx, notification.TransitionOf(snapshot, saved, actor, notes))
	return saved, nil
}

// UpdatePayload edits a returned submission before it is resubmitted.
// Keys in patch replace stored values; other keys are kept.
func (s *SubmissionService) UpdatePayload(ctx context.Context, id string, revision int64, patch form.Payload, actor submission.UserRef) (*submission.Submission, error) {
	const op = "application.UpdatePayload"
	current, err := s.Repos.Submission.Read(ctx, id)
	if err != nil {
		return nil, err
	}
	if revision != current.Revision {
		return nil, errs.New(errs.KindConcurrentModification, op,
			"submission %s is at revision %d, not %d", id, current.Revision, revision)
	}
	if current.OwnerID != actor.ID {
		return nil, errs.New(errs.KindForbidden, op, "user %s does not own submission %s", actor.ID, id)
	}
	if current.State != submission.StateDraft {
		return nil, errs.New(errs.KindIllegalTransition, op, "submission %s is %s; only returned drafts can be edited", id, current.State)
	}

	patch, err = s.resolveFiles(ctx, patch)
	if err != nil {
		return nil, err
	}
	next := current.Clone()
	for k, v := range patch {
		next.Payload[k] = v.Clone()
	}
	next.UpdatedAt = s.clock()
	return s.Repos.Submission.WriteAtomic(ctx, current, next)
}

func (s *SubmissionService) Get(ctx context.Context, id string, actor submission.UserRef) (*submission.Submission, error) {
	sub, err := s.Repos.Submission.Read(ctx, id)
	if err != nil {
		return nil, err
	}
	if !submission.CanView(sub, actor) {
		return nil, errs.New(errs.KindForbidden, "application.GetSubmission", "user %s cannot view submission %s", actor.ID, id)
	}
	return sub, nil
}

func (s *SubmissionService) ListMine(ctx context.Context, owner submission.UserRef) ([]submission.Submission, error) {
	return s.Repos.Submission.ListByOwner(ctx, owner.ID)
}

func (s *SubmissionService) ListByForm(ctx context.Context, formID string) ([]submission.Submission, error) {
	return s.Repos.Submission.ListByForm(ctx, formID)
}

// Validate checks payload against one published version.
func (s *SubmissionService) Validate(ctx context.Context, formID string, version int, payload form.Payload) (*validation.Result, error) {
	schema, err := s.Repos.Schema.Get(ctx, formID, version)
	if err != nil {
		return nil, err
	}
	return validation.Validate(schema, payload)
}

// ReapDrafts deletes drafts untouched for olderThan. Each delete is
// conditional on the last_saved_at seen by the sweep, so running it twice or
// alongside saves is safe.
func (s *SubmissionService) ReapDrafts(ctx context.Context, olderThan time.Duration) (int, error) {
	cutoff := s.clock().Add(-olderThan)
	stale, err := s.Repos.Draft.ListStale(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, d := range stale {
		deleted, err := s.Repos.Draft.DeleteIfUnchanged(ctx, d.OwnerID, d.FormID, d.LastSavedAt)
		if err != nil {
			return count, err
		}
		if deleted {
			count++
		}
	}
	return count, nil
}

// resolveFiles returns a copy of payload with every file reference resolved.
// Without a resolver the payload is returned as is.
func (s *SubmissionService) resolveFiles(ctx context.Context, payload form.Payload) (form.Payload, error) {
	if s.Files == nil {
		return payload, nil
	}
	out := make(form.Payload, len(payload))
	for k, v := range payload {
		if v.Kind != form.KindFile && v.Kind != form.KindFiles {
			out[k] = v
			continue
		}
		v = v.Clone()
		for i, ref := range v.Files {
			resolved, err := s.Files.Resolve(ctx, ref)
			if err != nil {
				return nil, err
			}
			v.Files[i] = resolved
		}
		out[k] = v
	}
	return out, nil
}

func (s *SubmissionService) notify(ctx context.Context, t notification.Transition) {
	if s.Notifier == nil {
		return
	}
	s.Notifier.Notify(ctx, t)
}
