package testutils

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/dynamic-forms/internal/api/middleware"
	"github.com/linskybing/dynamic-forms/internal/api/routes"
	"github.com/linskybing/dynamic-forms/internal/application"
	"github.com/linskybing/dynamic-forms/internal/config"
	"github.com/linskybing/dynamic-forms/internal/notify"
)

func SetupRouter(svc *application.Services, hub *notify.Hub) *gin.Engine {
	gin.SetMode(gin.TestMode)
	if config.JwtSecret == "" {
		config.JwtSecret = "test-secret"
	}
	middleware.Init()
	r := gin.New()
	routes.RegisterRoutes(r, svc, hub)
	return r
}

// Token signs a one-hour token for the given user.
func Token(userID, role string) string {
	token, err := middleware.GenerateToken(userID, userID, role, time.Hour)
	if err != nil {
		panic(err)
	}
	return token
}
