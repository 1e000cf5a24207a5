package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/dynamic-forms/internal/api/middleware"
	"github.com/linskybing/dynamic-forms/internal/api/routes"
	"github.com/linskybing/dynamic-forms/internal/application"
	"github.com/linskybing/dynamic-forms/internal/config"
	"github.com/linskybing/dynamic-forms/internal/config/db"
	"github.com/linskybing/dynamic-forms/internal/cron"
	"github.com/linskybing/dynamic-forms/internal/migrations"
	"github.com/linskybing/dynamic-forms/internal/notify"
	"github.com/linskybing/dynamic-forms/internal/repository"
	"github.com/linskybing/dynamic-forms/pkg/minio"
)

func main() {
	// Load configuration from environment variables and .env file
	config.LoadConfig()

	// Initialize JWT signing key
	middleware.Init()

	// Initialize database connection
	db.Init()

	if err := migrations.Run(db.DB); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	repos := repository.New()
	hub := notify.NewHub()

	sinks := notify.Multi{notify.NewStoreSink(repos.Notification), hub, notify.LogSink{}}
	if config.RedisAddr != "" {
		client := notify.NewRedisClient(config.RedisAddr, config.RedisPassword, config.RedisDB)
		if err := client.Ping(context.Background()).Err(); err != nil {
			log.Printf("Warning: Redis unreachable at %s, notifications stay local: %v", config.RedisAddr, err)
		} else {
			sinks = append(sinks, notify.NewRedisSink(client, config.RedisChannel))
			log.Printf("Publishing notifications to redis channel %s", config.RedisChannel)
		}
	}

	services := application.New(repos, sinks)
	if config.MinioEndpoint != "" {
		resolver, err := minio.New(config.MinioEndpoint, config.MinioAccessKey, config.MinioSecretKey, config.MinioBucket, config.MinioUseSSL)
		if err != nil {
			log.Fatalf("Failed to init MinIO client: %v", err)
		}
		services.Submission.Files = resolver
	}

	// Start background tasks
	cron.StartDraftReaper(context.Background(), services.Submission)

	gin.SetMode(gin.ReleaseMode)
	router := gin.Default()

	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggingMiddleware())

	routes.RegisterRoutes(router, services, hub)

	port := ":" + config.ServerPort
	log.Printf("Starting API server on %s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
}
