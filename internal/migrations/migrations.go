package migrations

import (
	"github.com/linskybing/dynamic-forms/internal/domain/form"
	"github.com/linskybing/dynamic-forms/internal/domain/notification"
	"github.com/linskybing/dynamic-forms/internal/domain/submission"
	"gorm.io/gorm"
)

// Models lists every table the service owns, in creation order.
func Models() []any {
	return []any{
		&form.SchemaRecord{},
		&submission.SubmissionRecord{},
		&submission.DraftRow{},
		&notification.Notification{},
	}
}

// Run creates or updates the tables for Models.
func Run(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
