package usecase

import (
	"context"
	"fmt"

	"freelancehub/internal/domain/entity"
	"freelancehub/internal/domain/repository"
	"freelancehub/pkg/errors"
	"freelancehub/pkg/logger"
	"freelancehub/pkg/utils"
)

type ReviewUsecase struct {
	reviewRepo          repository.ReviewRepository
	orderRepo           repository.OrderRepository
	gigRepo             repository.GigRepository
	userRepo            repository.UserRepository
	notificationUsecase *NotificationUsecase
}

func NewReviewUsecase(
	reviewRepo repository.ReviewRepository,
	orderRepo repository.OrderRepository,
	gigRepo repository.GigRepository,
	userRepo repository.UserRepository,
	notificationUsecase *NotificationUsecase,
) *ReviewUsecase {
	return &ReviewUsecase{
		reviewRepo:          reviewRepo,
		orderRepo:           orderRepo,
		gigRepo:             gigRepo,
		userRepo:            userRepo,
		notificationUsecase: notificationUsecase,
	}
}

type CreateReviewInput struct {
	OrderID string `json:"order_id" validate:"required"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=2000"`
}

// CreateReview stores one review per (order, reviewer) pair and recomputes
// the denormalized aggregates on the reviewed gig and user.
func (u *ReviewUsecase) CreateReview(ctx context.Context, reviewerID string, input CreateReviewInput) (*entity.Review, error) {
	order, err := u.orderRepo.GetByID(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}

	if !order.IsParticipant(reviewerID) {
		return nil, errors.Forbidden("You do not have access to this order", nil)
	}
	if order.Status != entity.OrderStatusCompleted {
		return nil, errors.BadRequest("Order must be completed before leaving a review", nil)
	}

	if existing, err := u.reviewRepo.GetByOrderAndReviewer(ctx, input.OrderID, reviewerID); err == nil && existing != nil {
		return nil, errors.Conflict("You have already reviewed this order")
	} else if err != nil && !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}

	review := &entity.Review{
		OrderID:    order.ID,
		ReviewerID: reviewerID,
		Rating:     input.Rating,
		Comment:    input.Comment,
	}

	// Buyer reviews land on the seller and the gig; seller reviews land on
	// the buyer only.
	if reviewerID == order.BuyerID {
		review.RevieweeID = order.SellerID
		review.GigID = order.GigID
	} else {
		review.RevieweeID = order.BuyerID
	}

	if err := u.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	if reviewerID == order.BuyerID {
		order.BuyerReviewed = true
	} else {
		order.SellerReviewed = true
	}
	if err := u.orderRepo.Update(ctx, order); err != nil {
		logger.Error("Failed to flag order %s as reviewed: %v", order.ID, err)
	}

	if review.GigID != "" {
		u.recomputeGigRating(ctx, review.GigID)
	}
	u.recomputeUserRating(ctx, review.RevieweeID)

	if _, err := u.notificationUsecase.Notify(ctx, review.RevieweeID, reviewerID,
		entity.NotificationNewReview, "New review",
		fmt.Sprintf("You received a %d-star review on %q", review.Rating, order.Title),
		map[string]interface{}{"order_id": order.ID, "review_id": review.ID}); err != nil {
		logger.Error("Failed to send review notification: %v", err)
	}

	return review, nil
}

func (u *ReviewUsecase) ListGigReviews(ctx context.Context, gigID string, pagination utils.PaginationParams) ([]*entity.Review, int64, error) {
	return u.reviewRepo.List(ctx, map[string]interface{}{"gigId": gigID}, pagination.PageSize, pagination.Offset)
}

func (u *ReviewUsecase) ListUserReviews(ctx context.Context, revieweeID string, pagination utils.PaginationParams) ([]*entity.Review, int64, error) {
	return u.reviewRepo.List(ctx, map[string]interface{}{"revieweeId": revieweeID}, pagination.PageSize, pagination.Offset)
}

// averageRating is a full re-scan aggregate: mean plus count, zeroes for an
// empty set.
func averageRating(reviews []*entity.Review) (float64, int) {
	if len(reviews) == 0 {
		return 0, 0
	}

	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}

	return round2(float64(sum) / float64(len(reviews))), len(reviews)
}

func (u *ReviewUsecase) recomputeGigRating(ctx context.Context, gigID string) {
	reviews, err := u.reviewRepo.ListByGigID(ctx, gigID)
	if err != nil {
		logger.Error("Failed to list reviews for gig %s: %v", gigID, err)
		return
	}

	gig, err := u.gigRepo.GetByID(ctx, gigID)
	if err != nil {
		logger.Error("Failed to load gig %s for rating: %v", gigID, err)
		return
	}

	gig.Rating, gig.TotalReviews = averageRating(reviews)

	if err := u.gigRepo.Update(ctx, gig); err != nil {
		logger.Error("Failed to update gig %s rating: %v", gigID, err)
	}
}

func (u *ReviewUsecase) recomputeUserRating(ctx context.Context, userID string) {
	reviews, err := u.reviewRepo.ListByRevieweeID(ctx, userID)
	if err != nil {
		logger.Error("Failed to list reviews for user %s: %v", userID, err)
		return
	}

	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		logger.Error("Failed to load user %s for rating: %v", userID, err)
		return
	}

	user.Rating, user.TotalReviews = averageRating(reviews)

	if err := u.userRepo.Update(ctx, user); err != nil {
		logger.Error("Failed to update user %s rating: %v", userID, err)
	}
}
