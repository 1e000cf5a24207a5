package repository

import (
	"context"

	"github.com/linskybing/dynamic-forms/internal/domain/errs"
	"github.com/linskybing/dynamic-forms/internal/domain/form"
	"gorm.io/gorm"
)

type SchemaRepo interface {
	form.Repository
	WithTx(tx *gorm.DB) SchemaRepo
}

type DBSchemaRepo struct {
	db *gorm.DB
}

func NewSchemaRepo(db *gorm.DB) *DBSchemaRepo {
	return &DBSchemaRepo{
		db: db,
	}
}

func (r *DBSchemaRepo) Get(ctx context.Context, formID string, version int) (*form.FormSchema, error) {
	const op = "repository.SchemaRepo.Get"
	var rec form.SchemaRecord
	err := r.db.WithContext(ctx).
		Where("form_id = ? AND version = ?", formID, version).
		First(&rec).Error
	if err != nil {
		return nil, storageErr(op, errs.KindSchemaNotFound, err)
	}
	s, err := rec.Schema()
	if err != nil {
		return nil, errs.Wrap(errs.KindStorageUnavailable, op, err)
	}
	return s, nil
}

func (r *DBSchemaRepo) Latest(ctx context.Context, formID string) (*form.FormSchema, error) {
	const op = "repository.SchemaRepo.Latest"
	var rec form.SchemaRecord
	err := r.db.WithContext(ctx).
		Where("form_id = ?", formID).
		Order("version desc").
		First(&rec).Error
	if err != nil {
		return nil, storageErr(op, errs.KindSchemaNotFound, err)
	}
	s, err := rec.Schema()
	if err != nil {
		return nil, errs.Wrap(errs.KindStorageUnavailable, op, err)
	}
	return s, nil
}

// Create inserts a new version. A concurrent publish of the same version
// hits the unique (form_id, version) index and reports a conflict.
func (r *DBSchemaRepo) Create(ctx context.Context, s *form.FormSchema, createdBy string) error {
	const op = "repository.SchemaRepo.Create"
	rec, err := form.NewSchemaRecord(s, createdBy)
	if err != nil {
		return errs.Wrap(errs.KindSchemaInvariantViolation, op, err)
	}
	res := r.db.WithContext(ctx).
		Clauses(onConflictDoNothing()).
		Create(rec)
	if res.Error != nil {
		return storageErr(op, errs.KindNotFound, res.Error)
	}
	if res.RowsAffected == 0 {
		return conflict(op, "form %s version %d already published", s.FormID, s.Version)
	}
	return nil
}

func (r *DBSchemaRepo) ListVersions(ctx context.Context, formID string) ([]int, error) {
	var versions []int
	err := r.db.WithContext(ctx).
		Model(&form.SchemaRecord{}).
		Where("form_id = ?", formID).
		Order("version asc").
		Pluck("version", &versions).Error
	if err != nil {
		return nil, storageErr("repository.SchemaRepo.ListVersions", errs.KindNotFound, err)
	}
	return versions, nil
}

func (r *DBSchemaRepo) ListLatest(ctx context.Context) ([]form.FormSchema, error) {
	const op = "repository.SchemaRepo.ListLatest"
	latest := r.db.Model(&form.SchemaRecord{}).
		Select("form_id, MAX(version)").
		Group("form_id")
	var recs []form.SchemaRecord
	err := r.db.WithContext(ctx).
		Where("(form_id, version) IN (?)", latest).
		Order("form_id asc").
		Find(&recs).Error
	if err != nil {
		return nil, storageErr(op, errs.KindNotFound, err)
	}
	out := make([]form.FormSchema, 0, len(recs))
	for i := range recs {
		s, err := recs[i].Schema()
		if err != nil {
			return nil, errs.Wrap(errs.KindStorageUnavailable, op, err)
		}
		out = append(out, *s)
	}
	return out, nil
}

func (r *DBSchemaRepo) WithTx(tx *gorm.DB) SchemaRepo {
	if tx == nil {
		return r
	}
	return &DBSchemaRepo{db: tx}
}
