package application

import (
	"github.com/linskybing/dynamic-forms/internal/domain/notification"
	"github.com/linskybing/dynamic-forms/internal/repository"
)

type Services struct {
	Schema       *SchemaService
	Submission   *SubmissionService
	Notification *NotificationService
	Analytics    *AnalyticsService
}

func New(repos *repository.Repos, sink notification.Sink) *Services {
	notifications := NewNotificationService(repos, sink)
	return &Services{
		Schema:       NewSchemaService(repos),
		Submission:   NewSubmissionService(repos, notifications),
		Notification: notifications,
		Analytics:    NewAnalyticsService(repos),
	}
}
