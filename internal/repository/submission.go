package repository

import (
	"context"

	"github.com/linskybing/dynamic-forms/internal/domain/errs"
	"github.com/linskybing/dynamic-forms/internal/domain/submission"
	"gorm.io/gorm"
)

type SubmissionRepo interface {
	submission.SubmissionStore
	WithTx(tx *gorm.DB) SubmissionRepo
}

type DBSubmissionRepo struct {
	db *gorm.DB
}

func NewSubmissionRepo(db *gorm.DB) *DBSubmissionRepo {
	return &DBSubmissionRepo{
		db: db,
	}
}

func (r *DBSubmissionRepo) Read(ctx context.Context, id string) (*submission.Submission, error) {
	const op = "repository.SubmissionRepo.Read"
	var rec submission.SubmissionRecord
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error; err != nil {
		return nil, storageErr(op, errs.KindNotFound, err)
	}
	s, err := rec.Submission()
	if err != nil {
		return nil, errs.Wrap(errs.KindStorageUnavailable, op, err)
	}
	return s, nil
}

func (r *DBSubmissionRepo) Create(ctx context.Context, s *submission.Submission) error {
	const op = "repository.SubmissionRepo.Create"
	if s.Revision == 0 {
		s.Revision = 1
	}
	rec, err := submission.NewSubmissionRecord(s)
	if err != nil {
		return errs.Wrap(errs.KindStorageUnavailable, op, err)
	}
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return storageErr(op, errs.KindNotFound, err)
	}
	return nil
}

// WriteAtomic stores next if the row is still at old.Revision.
func (r *DBSubmissionRepo) WriteAtomic(ctx context.Context, old, next *submission.Submission) (*submission.Submission, error) {
	const op = "repository.SubmissionRepo.WriteAtomic"
	out := next.Clone()
	out.Revision = old.Revision + 1
	rec, err := submission.NewSubmissionRecord(out)
	if err != nil {
		return nil, errs.Wrap(errs.KindStorageUnavailable, op, err)
	}

	res := r.db.WithContext(ctx).
		Model(&submission.SubmissionRecord{}).
		Where("id = ? AND revision = ?", old.ID, old.Revision).
		Updates(map[string]interface{}{
			"payload":      rec.Payload,
			"state":        rec.State,
			"reviewer_id":  rec.ReviewerID,
			"review_notes": rec.ReviewNotes,
			"history":      rec.History,
			"revision":     rec.Revision,
			"submitted_at": rec.SubmittedAt,
			"updated_at":   rec.UpdatedAt,
		})
	if res.Error != nil {
		return nil, storageErr(op, errs.KindNotFound, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, conflict(op, "submission %s changed since revision %d", old.ID, old.Revision)
	}
	return out, nil
}

func (r *DBSubmissionRepo) ListByOwner(ctx context.Context, ownerID string) ([]submission.Submission, error) {
	return r.list(ctx, "repository.SubmissionRepo.ListByOwner", "owner_id = ?", ownerID)
}

func (r *DBSubmissionRepo) ListByForm(ctx context.Context, formID string) ([]submission.Submission, error) {
	return r.list(ctx, "repository.SubmissionRepo.ListByForm", "form_id = ?", formID)
}

func (r *DBSubmissionRepo) list(ctx context.Context, op, where string, arg string) ([]submission.Submission, error) {
	var recs []submission.SubmissionRecord
	if err := r.db.WithContext(ctx).Where(where, arg).Order("created_at desc").Find(&recs).Error; err != nil {
		return nil, storageErr(op, errs.KindNotFound, err)
	}
	out := make([]submission.Submission, 0, len(recs))
	for i := range recs {
		s, err := recs[i].Submission()
		if err != nil {
			return nil, errs.Wrap(errs.KindStorageUnavailable, op, err)
		}
		out = append(out, *s)
	}
	return out, nil
}

func (r *DBSubmissionRepo) WithTx(tx *gorm.DB) SubmissionRepo {
	if tx == nil {
		return r
	}
	return &DBSubmissionRepo{db: tx}
}
