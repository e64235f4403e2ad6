package router

import (
	"github.com/labstack/echo/v4"

	"freelancehub/internal/adapter/api/handler"
	"freelancehub/internal/adapter/api/middleware"
)

func SetupReviewRoutes(g *echo.Group, authMiddleware *middleware.AuthMiddleware) {
	h := handler.GetReviewHandler()

	g.GET("/gigs/:id/reviews", h.ListGigReviews)
	g.GET("/users/:id/reviews", h.ListUserReviews)

	g.POST("/reviews", h.Create, authMiddleware.Authenticate)
}
