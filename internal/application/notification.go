package application

import (
	"context"
	"log"

	"github.com/linskybing/dynamic-forms/internal/domain/notification"
	"github.com/linskybing/dynamic-forms/internal/domain/submission"
	"github.com/linskybing/dynamic-forms/internal/repository"
)

type NotificationService struct {
	Repos *repository.Repos
	Sink  notification.Sink
}

func NewNotificationService(repos *repository.Repos, sink notification.Sink) *NotificationService {
	return &NotificationService{
		Repos: repos,
		Sink:  sink,
	}
}

// Notify dispatches t and hands each event to the sink. Delivery failures
// are logged; the transition has already been committed.
func (s *NotificationService) Notify(ctx context.Context, t notification.Transition) {
	if s.Sink == nil {
		return
	}
	for _, e := range notification.Dispatch(t) {
		if err := s.Sink.Publish(ctx, e); err != nil {
			log.Printf("Failed to publish %s for submission %s: %v", e.Kind, t.SubmissionID, err)
		}
	}
}

func (s *NotificationService) List(ctx context.Context, user submission.UserRef, limit int) ([]notification.Notification, error) {
	return s.Repos.Notification.ListFor(ctx, user.ID, string(user.Role), limit)
}

func (s *NotificationService) MarkRead(ctx context.Context, user submission.UserRef, id string) error {
	return s.Repos.Notification.MarkRead(ctx, user.ID, id)
}
