package repository

import (
	"context"

	"github.com/linskybing/dynamic-forms/internal/domain/errs"
	"github.com/linskybing/dynamic-forms/internal/domain/notification"
	"gorm.io/gorm"
)

type NotificationRepo interface {
	notification.Repository
	WithTx(tx *gorm.DB) NotificationRepo
}

type DBNotificationRepo struct {
	db *gorm.DB
}

func NewNotificationRepo(db *gorm.DB) *DBNotificationRepo {
	return &DBNotificationRepo{
		db: db,
	}
}

func (r *DBNotificationRepo) Create(ctx context.Context, n *notification.Notification) error {
	if err := r.db.WithContext(ctx).Create(n).Error; err != nil {
		return storageErr("repository.NotificationRepo.Create", errs.KindNotFound, err)
	}
	return nil
}

func (r *DBNotificationRepo) ListFor(ctx context.Context, userID, role string, limit int) ([]notification.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []notification.Notification
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if role != "" {
		query = query.Or("role = ?", role)
	}
	if err := query.Order("created_at desc").Limit(limit).Find(&rows).Error; err != nil {
		return nil, storageErr("repository.NotificationRepo.ListFor", errs.KindNotFound, err)
	}
	return rows, nil
}

func (r *DBNotificationRepo) MarkRead(ctx context.Context, userID, id string) error {
	const op = "repository.NotificationRepo.MarkRead"
	res := r.db.WithContext(ctx).
		Model(&notification.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("read", true)
	if res.Error != nil {
		return storageErr(op, errs.KindNotFound, res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.New(errs.KindNotFound, op, "notification %s not found", id)
	}
	return nil
}

func (r *DBNotificationRepo) WithTx(tx *gorm.DB) NotificationRepo {
	if tx == nil {
		return r
	}
	return &DBNotificationRepo{db: tx}
}
