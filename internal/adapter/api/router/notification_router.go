package router

import (
	"github.com/labstack/echo/v4"

	"freelancehub/internal/adapter/api/handler"
	"freelancehub/internal/adapter/api/middleware"
)

func SetupNotificationRoutes(g *echo.Group, authMiddleware *middleware.AuthMiddleware) {
	h := handler.GetNotificationHandler()

	notifications := g.Group("/notifications", authMiddleware.Authenticate)
	notifications.GET("", h.List)
	notifications.GET("/unread-count", h.CountUnread)
	notifications.PATCH("/read-all", h.MarkAllRead)
	notifications.PATCH("/:id/read", h.MarkRead)
}
