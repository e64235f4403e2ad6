package router

import (
	"github.com/labstack/echo/v4"

	"freelancehub/internal/adapter/api/handler"
	"freelancehub/internal/adapter/api/middleware"
)

func SetupOrderRoutes(g *echo.Group, authMiddleware *middleware.AuthMiddleware) {
	h := handler.GetOrderHandler()

	orders := g.Group("/orders", authMiddleware.Authenticate)
	orders.GET("", h.List)
	orders.GET("/:id", h.Get)
	orders.POST("/:id/requirements", h.SubmitRequirements)
	orders.PATCH("/:id/status", h.UpdateStatus)
	orders.POST("/:id/deliver", h.Deliver)
	orders.POST("/:id/revision", h.RequestRevision)
	orders.POST("/:id/accept", h.Accept)
	orders.POST("/:id/cancel", h.Cancel)
}
