package handler

import (
	"github.com/labstack/echo/v4"

	"freelancehub/internal/usecase"
	"freelancehub/pkg/errors"
	"freelancehub/pkg/response"
	"freelancehub/pkg/utils"
)

type OrderHandler struct {
	orderUsecase *usecase.OrderUsecase
}

func NewOrderHandler(orderUsecase *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{
		orderUsecase: orderUsecase,
	}
}

func (h *OrderHandler) Get(c echo.Context) error {
	uid := c.Get("uid").(string)

	order, err := h.orderUsecase.GetOrder(c.Request().Context(), uid, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, order)
}

func (h *OrderHandler) List(c echo.Context) error {
	uid := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)

	role := c.QueryParam("role")
	if role == "" {
		role = "buyer"
	}

	orders, total, err := h.orderUsecase.ListOrders(c.Request().Context(), uid, role, c.QueryParam("status"), pagination)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, orders, total, pagination.Page, pagination.PageSize)
}

func (h *OrderHandler) SubmitRequirements(c echo.Context) error {
	uid := c.Get("uid").(string)

	var input struct {
		Requirements string `json:"requirements" validate:"required,min=10"`
	}
	if err := c.Bind(&input); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&input); err != nil {
		return response.Error(c, err)
	}

	order, err := h.orderUsecase.SubmitRequirements(c.Request().Context(), uid, c.Param("id"), input.Requirements)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, order)
}

func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	uid := c.Get("uid").(string)

	var input struct {
		Status string `json:"status" validate:"required"`
	}
	if err := c.Bind(&input); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&input); err != nil {
		return response.Error(c, err)
	}

	order, err := h.orderUsecase.UpdateStatus(c.Request().Context(), uid, c.Param("id"), input.Status)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, order)
}

func (h *OrderHandler) Deliver(c echo.Context) error {
	uid := c.Get("uid").(string)

	var input struct {
		Message string   `json:"message" validate:"required"`
		Files   []string `json:"files"`
	}
	if err := c.Bind(&input); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&input); err != nil {
		return response.Error(c, err)
	}

	order, err := h.orderUsecase.Deliver(c.Request().Context(), uid, c.Param("id"), input.Message, input.Files)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, order)
}

func (h *OrderHandler) RequestRevision(c echo.Context) error {
	uid := c.Get("uid").(string)

	var input struct {
		Message string `json:"message" validate:"required"`
	}
	if err := c.Bind(&input); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&input); err != nil {
		return response.Error(c, err)
	}

	order, err := h.orderUsecase.RequestRevision(c.Request().Context(), uid, c.Param("id"), input.Message)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, order)
}

func (h *OrderHandler) Accept(c echo.Context) error {
	uid := c.Get("uid").(string)

	order, err := h.orderUsecase.Accept(c.Request().Context(), uid, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, order)
}

func (h *OrderHandler) Cancel(c echo.Context) error {
	uid := c.Get("uid").(string)

	var input struct {
		Reason string `json:"reason" validate:"required"`
	}
	if err := c.Bind(&input); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&input); err != nil {
		return response.Error(c, err)
	}

	order, err := h.orderUsecase.Cancel(c.Request().Context(), uid, c.Param("id"), input.Reason)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, order)
}
