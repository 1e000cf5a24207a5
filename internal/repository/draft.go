package repository

import (
	"context"
	"time"

	"github.com/linskybing/dynamic-forms/internal/domain/errs"
	"github.com/linskybing/dynamic-forms/internal/domain/submission"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DraftRepo interface {
	submission.DraftStore
	CountByForm(ctx context.Context, formID string) (int64, error)
	WithTx(tx *gorm.DB) DraftRepo
}

type DBDraftRepo struct {
	db *gorm.DB
}

func NewDraftRepo(db *gorm.DB) *DBDraftRepo {
	return &DBDraftRepo{
		db: db,
	}
}

func onConflictDoNothing() clause.OnConflict {
	return clause.OnConflict{DoNothing: true}
}

// Read returns nil, nil when the owner has no draft for the form.
func (r *DBDraftRepo) Read(ctx context.Context, ownerID, formID string) (*submission.DraftRecord, error) {
	const op = "repository.DraftRepo.Read"
	var rows []submission.DraftRow
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND form_id = ?", ownerID, formID).
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, storageErr(op, errs.KindNotFound, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	d, err := rows[0].Draft()
	if err != nil {
		return nil, errs.Wrap(errs.KindStorageUnavailable, op, err)
	}
	return d, nil
}

// WriteAtomic inserts when old is nil, otherwise updates the row only if its
// revision still matches old.Revision.
func (r *DBDraftRepo) WriteAtomic(ctx context.Context, old, next *submission.DraftRecord) (*submission.DraftRecord, error) {
	const op = "repository.DraftRepo.WriteAtomic"
	out := next.Clone()
	if old == nil {
		out.Revision = 1
	} else {
		out.Revision = old.Revision + 1
	}
	row, err := submission.NewDraftRow(out)
	if err != nil {
		return nil, errs.Wrap(errs.KindStorageUnavailable, op, err)
	}

	if old == nil {
		res := r.db.WithContext(ctx).Clauses(onConflictDoNothing()).Create(row)
		if res.Error != nil {
			return nil, storageErr(op, errs.KindNotFound, res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, conflict(op, "draft for %s/%s was created concurrently", next.OwnerID, next.FormID)
		}
		return out, nil
	}

	res := r.db.WithContext(ctx).
		Model(&submission.DraftRow{}).
		Where("owner_id = ? AND form_id = ? AND revision = ?", old.OwnerID, old.FormID, old.Revision).
		Updates(map[string]interface{}{
			"schema_version":  row.SchemaVersion,
			"payload":         row.Payload,
			"stamps":          row.Stamps,
			"last_saved_at":   row.LastSavedAt,
			"source_of_truth": row.SourceOfTruth,
			"revision":        row.Revision,
		})
	if res.Error != nil {
		return nil, storageErr(op, errs.KindNotFound, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, conflict(op, "draft for %s/%s changed since revision %d", old.OwnerID, old.FormID, old.Revision)
	}
	return out, nil
}

func (r *DBDraftRepo) ListStale(ctx context.Context, cutoff time.Time) ([]submission.DraftRecord, error) {
	const op = "repository.DraftRepo.ListStale"
	var rows []submission.DraftRow
	if err := r.db.WithContext(ctx).Where("last_saved_at < ?", cutoff).Find(&rows).Error; err != nil {
		return nil, storageErr(op, errs.KindNotFound, err)
	}
	out := make([]submission.DraftRecord, 0, len(rows))
	for i := range rows {
		d, err := rows[i].Draft()
		if err != nil {
			return nil, errs.Wrap(errs.KindStorageUnavailable, op, err)
		}
		out = append(out, *d)
	}
	return out, nil
}

// DeleteIfUnchanged deletes the draft only while last_saved_at still equals
// the value the caller read, so a save racing the delete survives.
func (r *DBDraftRepo) DeleteIfUnchanged(ctx context.Context, ownerID, formID string, lastSavedAt time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("owner_id = ? AND form_id = ? AND last_saved_at = ?", ownerID, formID, lastSavedAt).
		Delete(&submission.DraftRow{})
	if res.Error != nil {
		return false, storageErr("repository.DraftRepo.DeleteIfUnchanged", errs.KindNotFound, res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *DBDraftRepo) CountByForm(ctx context.Context, formID string) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&submission.DraftRow{}).Where("form_id = ?", formID).Count(&n).Error; err != nil {
		return 0, storageErr("repository.DraftRepo.CountByForm", errs.KindNotFound, err)
	}
	return n, nil
}

func (r *DBDraftRepo) WithTx(tx *gorm.DB) DraftRepo {
	if tx == nil {
		return r
	}
	return &DBDraftRepo{db: tx}
}
