package router

import (
	"github.com/labstack/echo/v4"

	"freelancehub/internal/adapter/api/handler"
	"freelancehub/internal/adapter/api/middleware"
)

func SetupFileRoutes(g *echo.Group, authMiddleware *middleware.AuthMiddleware) {
	h := handler.GetFileHandler()

	g.POST("/files", h.Upload, authMiddleware.Authenticate)
}
