package handlers

import (
	"github.com/linskybing/dynamic-forms/internal/application"
	"github.com/linskybing/dynamic-forms/internal/notify"
)

type Handlers struct {
	Schema       *SchemaHandler
	Submission   *SubmissionHandler
	Notification *NotificationHandler
	Analytics    *AnalyticsHandler
}

func New(svc *application.Services, hub *notify.Hub) *Handlers {
	return &Handlers{
		Schema:       NewSchemaHandler(svc.Schema, svc.Submission),
		Submission:   NewSubmissionHandler(svc.Submission),
		Notification: NewNotificationHandler(svc.Notification, hub),
		Analytics:    NewAnalyticsHandler(svc.Analytics),
	}
}
