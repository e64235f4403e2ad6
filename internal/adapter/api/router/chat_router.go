package router

import (
	"github.com/labstack/echo/v4"

	"freelancehub/internal/adapter/api/handler"
	"freelancehub/internal/adapter/api/middleware"
)

func SetupChatRoutes(g *echo.Group, authMiddleware *middleware.AuthMiddleware) {
	h := handler.GetChatHandler()

	conversations := g.Group("/conversations", authMiddleware.Authenticate)
	conversations.POST("", h.StartConversation)
	conversations.GET("", h.ListConversations)
	conversations.GET("/:id/messages", h.GetMessages)
	conversations.POST("/:id/messages", h.SendMessage)
	conversations.PATCH("/:id/read", h.MarkThreadRead)
	conversations.PATCH("/:id/archive", h.SetArchived)
	conversations.PATCH("/:id/block", h.SetBlocked)
	conversations.POST("/:id/offers/:messageId/accept", h.AcceptOffer)
	conversations.POST("/:id/offers/:messageId/decline", h.DeclineOffer)
}
