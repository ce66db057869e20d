package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/fxlens/clientpulse/internal/middleware"
)

const requestTimeout = 10 * time.Second

// NewRouter creates a Gin engine with routes configured.
// It receives handler instances with all business logic already injected.
//
// Responsibilities:
//   - Registers global middlewares (RequestID, Logger, Recovery, ErrorHandler, RateLimiter).
//   - Adds request timeout handling.
//   - Mounts Swagger docs (/swagger/*any).
//   - Configures API v1 routes (/api/v1).
//
// Note:
//   - Health and readiness endpoints (/healthz, /readyz) are registered in app.InitializeApp().
func NewRouter(handler *Handler, admin *AdminHandler) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RecoveryMiddleware(),
		middleware.ErrorHandler,
		middleware.RateLimiter(120, time.Minute),
	)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/api/v1")
	{
		timed := v1.Group("", withTimeout(requestTimeout))
		{
			timed.GET("/clients", handler.ListClients)
			timed.GET("/clients/:id/accounts", handler.GetClientAccounts)

			source := timed.Group("/source")
			{
				source.PUT("/:venue/accounts", handler.UpsertSourceAccount)
				source.DELETE("/:venue/accounts/:login", handler.DeleteSourceAccount)
			}
		}

		// Admin runs without the request timeout: a full backfill can
		// legitimately outlive it.
		adminGroup := v1.Group("/admin")
		{
			adminGroup.POST("/initialize", admin.Initialize)
			adminGroup.POST("/compare", admin.Compare)
			adminGroup.GET("/status", admin.Status)
		}
	}

	return router
}

func withTimeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
