package repository

import (
	"context"

	"freelancehub/internal/domain/entity"
)

type GigRepository interface {
	Create(ctx context.Context, gig *entity.Gig) error
	GetByID(ctx context.Context, id string) (*entity.Gig, error)
	Update(ctx context.Context, gig *entity.Gig) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter map[string]interface{}, sort string, limit, offset int) ([]*entity.Gig, int64, error)
	Search(ctx context.Context, query string, limit, offset int) ([]*entity.Gig, int64, error)
	ListBySellerID(ctx context.Context, sellerID string, limit, offset int) ([]*entity.Gig, int64, error)
}
