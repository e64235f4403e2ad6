package router

import (
	"github.com/labstack/echo/v4"

	"freelancehub/internal/adapter/api/handler"
)

func SetupWebSocketRoutes(g *echo.Group) {
	// Authentication happens inside the handler via a token query parameter.
	g.GET("/ws", handler.GetWebSocketHandler().Connect)
}
