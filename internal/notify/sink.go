package notify

import (
	"context"
	"errors"
	"log"

	"github.com/linskybing/dynamic-forms/internal/domain/notification"
)

// Multi publishes to every sink and joins their errors.
type Multi []notification.Sink

func (m Multi) Publish(ctx context.Context, e notification.Event) error {
	var errs []error
	for _, s := range m {
		if err := s.Publish(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type LogSink struct{}

func (LogSink) Publish(_ context.Context, e notification.Event) error {
	to := e.Recipient.UserID
	if to == "" {
		to = "role:" + string(e.Recipient.Role)
	}
	log.Printf("[notify] %s -> %s submission=%v", e.Kind, to, e.Payload["submissionId"])
	return nil
}
