package handler

import (
	"github.com/labstack/echo/v4"

	"freelancehub/internal/usecase"
	"freelancehub/pkg/errors"
	"freelancehub/pkg/response"
	"freelancehub/pkg/utils"
)

type GigHandler struct {
	gigUsecase *usecase.GigUsecase
}

func NewGigHandler(gigUsecase *usecase.GigUsecase) *GigHandler {
	return &GigHandler{
		gigUsecase: gigUsecase,
	}
}

func (h *GigHandler) Create(c echo.Context) error {
	uid := c.Get("uid").(string)

	var input usecase.GigInput
	if err := c.Bind(&input); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&input); err != nil {
		return response.Error(c, err)
	}

	gig, err := h.gigUsecase.CreateGig(c.Request().Context(), uid, input)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, gig)
}

func (h *GigHandler) Get(c echo.Context) error {
	gig, err := h.gigUsecase.GetGig(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, gig)
}

func (h *GigHandler) Update(c echo.Context) error {
	uid := c.Get("uid").(string)

	var input usecase.GigInput
	if err := c.Bind(&input); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&input); err != nil {
		return response.Error(c, err)
	}

	gig, err := h.gigUsecase.UpdateGig(c.Request().Context(), uid, c.Param("id"), input)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, gig)
}

func (h *GigHandler) SetStatus(c echo.Context) error {
	uid := c.Get("uid").(string)

	var input struct {
		Status string `json:"status" validate:"required,oneof=active paused"`
	}
	if err := c.Bind(&input); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&input); err != nil {
		return response.Error(c, err)
	}

	gig, err := h.gigUsecase.SetStatus(c.Request().Context(), uid, c.Param("id"), input.Status)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, gig)
}

func (h *GigHandler) Delete(c echo.Context) error {
	uid := c.Get("uid").(string)

	if err := h.gigUsecase.DeleteGig(c.Request().Context(), uid, c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"message": "Gig deleted"})
}

func (h *GigHandler) List(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	params := usecase.ListGigsParams{
		Category: c.QueryParam("category"),
		SellerID: c.QueryParam("seller_id"),
		Sort:     c.QueryParam("sort"),
	}

	gigs, total, err := h.gigUsecase.ListGigs(c.Request().Context(), params, pagination)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, gigs, total, pagination.Page, pagination.PageSize)
}

func (h *GigHandler) Search(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	gigs, total, err := h.gigUsecase.SearchGigs(c.Request().Context(), c.QueryParam("q"), pagination)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, gigs, total, pagination.Page, pagination.PageSize)
}

func (h *GigHandler) ListMine(c echo.Context) error {
	uid := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)

	gigs, total, err := h.gigUsecase.ListSellerGigs(c.Request().Context(), uid, pagination)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, gigs, total, pagination.Page, pagination.PageSize)
}
