package usecase

import (
	"context"

	"freelancehub/internal/domain/entity"
	"freelancehub/internal/domain/repository"
	"freelancehub/pkg/errors"
	"freelancehub/pkg/logger"
	"freelancehub/pkg/utils"
)

const minPackagePrice = 5.00

type GigUsecase struct {
	gigRepo repository.GigRepository
}

func NewGigUsecase(gigRepo repository.GigRepository) *GigUsecase {
	return &GigUsecase{
		gigRepo: gigRepo,
	}
}

type GigInput struct {
	Title       string             `json:"title" validate:"required,min=10,max=120"`
	Description string             `json:"description" validate:"required,min=30"`
	Category    string             `json:"category" validate:"required"`
	Tags        []string           `json:"tags" validate:"max=10"`
	Basic       entity.GigPackage  `json:"basic" validate:"required"`
	Standard    *entity.GigPackage `json:"standard"`
	Premium     *entity.GigPackage `json:"premium"`
	Images      []entity.GigImage  `json:"images"`
}

func validatePackages(input GigInput) error {
	tiers := []*entity.GigPackage{&input.Basic, input.Standard, input.Premium}
	for _, tier := range tiers {
		if tier == nil {
			continue
		}
		if tier.Price < minPackagePrice {
			return errors.LimitExceeded("Package price must be at least $5")
		}
		if tier.DeliveryDays <= 0 {
			return errors.BadRequest("Package delivery time must be at least one day", nil)
		}
	}
	return nil
}

func (u *GigUsecase) CreateGig(ctx context.Context, sellerID string, input GigInput) (*entity.Gig, error) {
	if err := validatePackages(input); err != nil {
		return nil, err
	}

	gig := &entity.Gig{
		SellerID:    sellerID,
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Tags:        input.Tags,
		Basic:       input.Basic,
		Standard:    input.Standard,
		Premium:     input.Premium,
		Images:      input.Images,
		Status:      "active",
	}

	if err := u.gigRepo.Create(ctx, gig); err != nil {
		return nil, err
	}

	logger.Info("Gig %s created by %s", gig.ID, sellerID)
	return gig, nil
}

func (u *GigUsecase) GetGig(ctx context.Context, id string) (*entity.Gig, error) {
	gig, err := u.gigRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if gig.DeletedAt != nil {
		return nil, errors.NotFound("Gig", nil)
	}

	return gig, nil
}

func (u *GigUsecase) UpdateGig(ctx context.Context, sellerID, id string, input GigInput) (*entity.Gig, error) {
	gig, err := u.GetGig(ctx, id)
	if err != nil {
		return nil, err
	}

	if gig.SellerID != sellerID {
		return nil, errors.Forbidden("You do not own this gig", nil)
	}

	if err := validatePackages(input); err != nil {
		return nil, err
	}

	gig.Title = input.Title
	gig.Description = input.Description
	gig.Category = input.Category
	gig.Tags = input.Tags
	gig.Basic = input.Basic
	gig.Standard = input.Standard
	gig.Premium = input.Premium
	gig.Images = input.Images

	if err := u.gigRepo.Update(ctx, gig); err != nil {
		return nil, err
	}

	return gig, nil
}

// SetStatus pauses or reactivates a gig.
func (u *GigUsecase) SetStatus(ctx context.Context, sellerID, id, status string) (*entity.Gig, error) {
	if status != "active" && status != "paused" {
		return nil, errors.BadRequest("Status must be active or paused", nil)
	}

	gig, err := u.GetGig(ctx, id)
	if err != nil {
		return nil, err
	}

	if gig.SellerID != sellerID {
		return nil, errors.Forbidden("You do not own this gig", nil)
	}

	gig.Status = status
	if err := u.gigRepo.Update(ctx, gig); err != nil {
		return nil, err
	}

	return gig, nil
}

// DeleteGig soft-deletes; existing orders keep their embedded package copy.
func (u *GigUsecase) DeleteGig(ctx context.Context, sellerID, id string) error {
	gig, err := u.GetGig(ctx, id)
	if err != nil {
		return err
	}

	if gig.SellerID != sellerID {
		return errors.Forbidden("You do not own this gig", nil)
	}

	return u.gigRepo.Delete(ctx, id)
}

type ListGigsParams struct {
	Category string
	SellerID string
	Sort     string // rating_desc, price_asc, price_desc, created_desc
}

func (u *GigUsecase) ListGigs(ctx context.Context, params ListGigsParams, pagination utils.PaginationParams) ([]*entity.Gig, int64, error) {
	filter := map[string]interface{}{
		"status": "active",
	}
	if params.Category != "" {
		filter["category"] = params.Category
	}
	if params.SellerID != "" {
		filter["sellerId"] = params.SellerID
	}

	sort := params.Sort
	if sort == "" {
		sort = "createdAt_desc"
	}

	return u.gigRepo.List(ctx, filter, sort, pagination.PageSize, pagination.Offset)
}

func (u *GigUsecase) SearchGigs(ctx context.Context, query string, pagination utils.PaginationParams) ([]*entity.Gig, int64, error) {
	if query == "" {
		return nil, 0, errors.BadRequest("Search query is required", nil)
	}

	return u.gigRepo.Search(ctx, query, pagination.PageSize, pagination.Offset)
}

func (u *GigUsecase) ListSellerGigs(ctx context.Context, sellerID string, pagination utils.PaginationParams) ([]*entity.Gig, int64, error) {
	return u.gigRepo.ListBySellerID(ctx, sellerID, pagination.PageSize, pagination.Offset)
}
