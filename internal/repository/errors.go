package repository

import (
	"errors"

	"github.com/linskybing/dynamic-forms/internal/domain/errs"
	"gorm.io/gorm"
)

// storageErr tags a gorm error: missing rows become notFound, anything else
// is StorageUnavailable with the driver error kept as the cause.
func storageErr(op string, notFound errs.Kind, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.Wrap(notFound, op, err)
	}
	return errs.Wrap(errs.KindStorageUnavailable, op, err)
}

func conflict(op, format string, args ...any) error {
	return errs.New(errs.KindConcurrentModification, op, format, args...)
}
