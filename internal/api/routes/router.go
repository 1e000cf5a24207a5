package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/linskybing/dynamic-forms/internal/api/handlers"
	"github.com/linskybing/dynamic-forms/internal/api/middleware"
	"github.com/linskybing/dynamic-forms/internal/application"
	"github.com/linskybing/dynamic-forms/internal/notify"
)

func RegisterRoutes(r *gin.Engine, svc *application.Services, hub *notify.Hub) {
	h := handlers.New(svc, hub)

	auth := r.Group("/")
	auth.Use(middleware.JWTAuthMiddleware())
	{
		auth.GET("/ws/notifications", h.Notification.Stream)

		forms := auth.Group("/forms")
		{
			forms.GET("", h.Schema.List)
			forms.POST("", middleware.Admin(), h.Schema.Publish)
			forms.POST("/bundle", middleware.Admin(), h.Schema.PublishBundle)
			forms.GET("/:formId", h.Schema.GetLatest)
			forms.GET("/:formId/versions", h.Schema.ListVersions)
			forms.GET("/:formId/versions/:version", h.Schema.GetVersion)
			forms.GET("/:formId/diff", h.Schema.Diff)
			forms.POST("/:formId/validate", h.Schema.Validate)

			forms.PUT("/:formId/draft", h.Submission.SaveDraft)
			forms.GET("/:formId/draft", h.Submission.GetDraft)
			forms.POST("/:formId/submit", h.Submission.Submit)
			forms.GET("/:formId/submissions", middleware.Admin(), h.Submission.ListByForm)
			forms.GET("/:formId/analytics", middleware.Admin(), h.Analytics.GetFormAnalytics)
		}

		submissions := auth.Group("/submissions")
		{
			submissions.GET("/my", h.Submission.ListMine)
			submissions.GET("/:id", h.Submission.GetByID)
			submissions.PUT("/:id/status", h.Submission.UpdateStatus)
			submissions.PUT("/:id/payload", h.Submission.UpdatePayload)
		}

		notifications := auth.Group("/notifications")
		{
			notifications.GET("", h.Notification.List)
			notifications.PUT("/:id/read", h.Notification.MarkRead)
		}
	}
}
