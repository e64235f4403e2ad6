package router

import (
	"github.com/labstack/echo/v4"

	"freelancehub/internal/adapter/api/handler"
	"freelancehub/internal/adapter/api/middleware"
)

func SetupGigRoutes(g *echo.Group, authMiddleware *middleware.AuthMiddleware) {
	h := handler.GetGigHandler()

	// Public catalog
	g.GET("/gigs", h.List)
	g.GET("/gigs/search", h.Search)
	g.GET("/gigs/:id", h.Get)

	auth := g.Group("/gigs", authMiddleware.Authenticate)
	auth.POST("", h.Create)
	auth.GET("/mine", h.ListMine)
	auth.PUT("/:id", h.Update)
	auth.PATCH("/:id/status", h.SetStatus)
	auth.DELETE("/:id", h.Delete)
}
