package router

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"freelancehub/internal/adapter/api/handler"
	"freelancehub/internal/adapter/api/middleware"
	"freelancehub/pkg/config"
)

// Setup binds all routes. The webhook and public catalog endpoints stay
// outside the auth group; everything else requires a bearer token.
func Setup(e *echo.Echo, cfg *config.Config, authMiddleware *middleware.AuthMiddleware) {
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())

	e.GET("/health", handler.HealthCheck)

	v1 := e.Group("/v1")

	SetupUserRoutes(v1, authMiddleware)
	SetupGigRoutes(v1, authMiddleware)
	SetupOrderRoutes(v1, authMiddleware)
	SetupPaymentRoutes(v1, authMiddleware)
	SetupReviewRoutes(v1, authMiddleware)
	SetupNotificationRoutes(v1, authMiddleware)
	SetupChatRoutes(v1, authMiddleware)
	SetupFileRoutes(v1, authMiddleware)
	SetupWebSocketRoutes(v1)

	if cfg.Environment == "development" {
		v1.POST("/dev/token", handler.GetDevTokenHandler().Generate)
	}
}
