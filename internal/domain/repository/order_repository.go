package repository

import (
	"context"

	"freelancehub/internal/domain/entity"
)

type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	Update(ctx context.Context, order *entity.Order) error
	ListByUserID(ctx context.Context, userID, role, status string, limit, offset int) ([]*entity.Order, int64, error)

	// Payment reconciliation lookups
	GetByCheckoutSessionID(ctx context.Context, sessionID string) (*entity.Order, error)
	GetByPaymentIntentID(ctx context.Context, paymentIntentID string) (*entity.Order, error)
}
