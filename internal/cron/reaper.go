package cron

import (
	"context"
	"log"
	"time"

	"github.com/linskybing/dynamic-forms/internal/config"
)

// DraftReaper is implemented by application.SubmissionService.
type DraftReaper interface {
	ReapDrafts(ctx context.Context, olderThan time.Duration) (int, error)
}

// StartDraftReaper deletes abandoned drafts once on startup and then every
// config.DraftReapInterval until ctx is cancelled.
func StartDraftReaper(ctx context.Context, reaper DraftReaper) {
	go func() {
		log.Printf("Starting draft reaper (retention: %s, interval: %s)", config.DraftRetention, config.DraftReapInterval)

		RunDraftReap(ctx, reaper)

		ticker := time.NewTicker(config.DraftReapInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Println("Draft reaper stopped")
				return
			case <-ticker.C:
				RunDraftReap(ctx, reaper)
			}
		}
	}()
}

// RunDraftReap performs one sweep and logs the outcome.
func RunDraftReap(ctx context.Context, reaper DraftReaper) int {
	n, err := reaper.ReapDrafts(ctx, config.DraftRetention)
	if err != nil {
		log.Printf("Failed to reap abandoned drafts (removed %d before failing): %v", n, err)
		return n
	}
	log.Printf("Draft reap completed, removed %d drafts", n)
	return n
}
