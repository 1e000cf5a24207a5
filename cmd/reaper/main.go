package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/linskybing/dynamic-forms/internal/application"
	"github.com/linskybing/dynamic-forms/internal/config"
	"github.com/linskybing/dynamic-forms/internal/config/db"
	"github.com/linskybing/dynamic-forms/internal/cron"
	"github.com/linskybing/dynamic-forms/internal/migrations"
	"github.com/linskybing/dynamic-forms/internal/repository"
)

// reaper runs a single draft sweep, for use from an external scheduler.
func main() {
	config.LoadConfig()

	db.Init()

	if err := migrations.Run(db.DB); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	repos := repository.New()
	svc := application.NewSubmissionService(repos, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
		<-sigChan
		log.Println("Shutdown signal")
		cancel()
	}()

	log.Printf("Reaping drafts untouched for %s", config.DraftRetention)
	cron.RunDraftReap(ctx, svc)
}
