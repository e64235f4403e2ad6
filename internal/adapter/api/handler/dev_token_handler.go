package handler

import (
	"github.com/labstack/echo/v4"

	"freelancehub/internal/infrastructure/firebase"
	"freelancehub/pkg/errors"
	"freelancehub/pkg/response"
)

// DevTokenHandler mints tokens for local testing. The router only mounts it
// in the development environment.
type DevTokenHandler struct {
	authClient *firebase.FirebaseAuthClient
}

func NewDevTokenHandler(authClient *firebase.FirebaseAuthClient) *DevTokenHandler {
	return &DevTokenHandler{
		authClient: authClient,
	}
}

func (h *DevTokenHandler) Generate(c echo.Context) error {
	var input struct {
		UID string `json:"uid" validate:"required"`
	}
	if err := c.Bind(&input); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&input); err != nil {
		return response.Error(c, err)
	}

	token, err := h.authClient.GenerateDevToken(c.Request().Context(), input.UID)
	if err != nil {
		return response.Error(c, errors.Internal("Failed to generate token", err))
	}

	return response.Success(c, map[string]string{"token": token})
}
