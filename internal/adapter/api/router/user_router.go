package router

import (
	"github.com/labstack/echo/v4"

	"freelancehub/internal/adapter/api/handler"
	"freelancehub/internal/adapter/api/middleware"
)

func SetupUserRoutes(g *echo.Group, authMiddleware *middleware.AuthMiddleware) {
	h := handler.GetUserHandler()

	g.POST("/auth/register", h.Register)
	g.GET("/users/:id", h.GetUser)

	me := g.Group("/users/me", authMiddleware.Authenticate)
	me.GET("", h.GetMe)
	me.PATCH("", h.UpdateMe)
}
