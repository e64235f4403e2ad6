package repository

import (
	"context"

	"freelancehub/internal/domain/entity"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	GetByID(ctx context.Context, id string) (*entity.Review, error)
	GetByOrderAndReviewer(ctx context.Context, orderID, reviewerID string) (*entity.Review, error)
	ListByGigID(ctx context.Context, gigID string) ([]*entity.Review, error)
	ListByRevieweeID(ctx context.Context, revieweeID string) ([]*entity.Review, error)
	List(ctx context.Context, filter map[string]interface{}, limit, offset int) ([]*entity.Review, int64, error)
}
