package repository

import (
	"github.com/linskybing/dynamic-forms/internal/config/db"
	"gorm.io/gorm"
)

type Repos struct {
	Schema       SchemaRepo
	Draft        DraftRepo
	Submission   SubmissionRepo
	Notification NotificationRepo

	db *gorm.DB
}

// New builds the repositories on the shared connection.
func New() *Repos {
	return NewRepositories(db.DB)
}

func NewRepositories(db *gorm.DB) *Repos {
	return &Repos{
		Schema:       NewSchemaRepo(db),
		Draft:        NewDraftRepo(db),
		Submission:   NewSubmissionRepo(db),
		Notification: NewNotificationRepo(db),
		db:           db,
	}
}

func (r *Repos) WithTx(tx *gorm.DB) *Repos {
	return &Repos{
		Schema:       r.Schema.WithTx(tx),
		Draft:        r.Draft.WithTx(tx),
		Submission:   r.Submission.WithTx(tx),
		Notification: r.Notification.WithTx(tx),
		db:           tx,
	}
}

// ExecTx runs fn inside one database transaction. Repos assembled without
// a connection (in-memory stores) run fn directly.
func (r *Repos) ExecTx(fn func(*Repos) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		txRepos := r.WithTx(tx)
		return fn(txRepos)
	})
}
