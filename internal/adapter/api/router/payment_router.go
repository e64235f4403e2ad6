package router

import (
	"github.com/labstack/echo/v4"

	"freelancehub/internal/adapter/api/handler"
	"freelancehub/internal/adapter/api/middleware"
)

func SetupPaymentRoutes(g *echo.Group, authMiddleware *middleware.AuthMiddleware) {
	h := handler.GetPaymentHandler()

	// The provider signs the webhook; it never carries a bearer token.
	g.POST("/payments/webhook", h.Webhook)

	payments := g.Group("/payments", authMiddleware.Authenticate)
	payments.POST("/checkout", h.CreateCheckout)
	payments.GET("/confirm", h.ConfirmSession)
}
