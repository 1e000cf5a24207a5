package notify

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/linskybing/dynamic-forms/internal/domain/notification"
)

// StoreSink records events as in-app notification rows.
type StoreSink struct {
	Repo notification.Repository
}

func NewStoreSink(repo notification.Repository) *StoreSink {
	return &StoreSink{Repo: repo}
}

func (s *StoreSink) Publish(ctx context.Context, e notification.Event) error {
	title, message := Render(e)
	n := &notification.Notification{
		ID:           uuid.NewString(),
		UserID:       e.Recipient.UserID,
		Role:         string(e.Recipient.Role),
		Kind:         string(e.Kind),
		Title:        title,
		Message:      message,
		SubmissionID: fmt.Sprint(e.Payload["submissionId"]),
	}
	return s.Repo.Create(ctx, n)
}
