package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freelancehub/internal/domain/entity"
	"freelancehub/pkg/errors"
)

type reviewFixture struct {
	*orderFixture
	reviewRepo *fakeReviewRepo
	usecase    *ReviewUsecase
}

func newReviewFixture(t *testing.T) *reviewFixture {
	t.Helper()

	of := newOrderFixture(t)
	reviewRepo := newFakeReviewRepo()

	notificationUsecase := NewNotificationUsecase(of.notificationRepo, &fakePusher{})
	reviewUsecase := NewReviewUsecase(reviewRepo, of.orderRepo, of.gigRepo, of.userRepo, notificationUsecase)

	return &reviewFixture{
		orderFixture: of,
		reviewRepo:   reviewRepo,
		usecase:      reviewUsecase,
	}
}

func (f *reviewFixture) createCompletedOrder(t *testing.T) *entity.Order {
	t.Helper()

	order := f.createPaidOrder(t)
	order.Status = entity.OrderStatusCompleted
	now := time.Now()
	order.CompletedAt = &now
	require.NoError(t, f.orderRepo.Update(context.Background(), order))
	return order
}

func TestAverageRating(t *testing.T) {
	reviews := []*entity.Review{
		{Rating: 5}, {Rating: 5}, {Rating: 4}, {Rating: 2},
	}

	rating, count := averageRating(reviews)
	assert.Equal(t, 4.0, rating)
	assert.Equal(t, 4, count)
}

func TestAverageRatingEmpty(t *testing.T) {
	rating, count := averageRating(nil)
	assert.Equal(t, 0.0, rating)
	assert.Equal(t, 0, count)
}

func TestCreateReviewRecomputesAggregates(t *testing.T) {
	f := newReviewFixture(t)
	order := f.createCompletedOrder(t)

	ctx := context.Background()
	review, err := f.usecase.CreateReview(ctx, "buyer-1", CreateReviewInput{
		OrderID: order.ID,
		Rating:  4,
		Comment: "solid work",
	})
	require.NoError(t, err)

	assert.Equal(t, "seller-1", review.RevieweeID)
	assert.Equal(t, f.gig.ID, review.GigID)

	gig, err := f.gigRepo.GetByID(ctx, f.gig.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.0, gig.Rating)
	assert.Equal(t, 1, gig.TotalReviews)

	seller, err := f.userRepo.GetByID(ctx, "seller-1")
	require.NoError(t, err)
	assert.Equal(t, 4.0, seller.Rating)
	assert.Equal(t, 1, seller.TotalReviews)

	updated, err := f.orderRepo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.True(t, updated.BuyerReviewed)
	assert.False(t, updated.SellerReviewed)

	assert.Equal(t, 1, f.notificationRepo.countByType("seller-1", entity.NotificationNewReview))
}

func TestCreateReviewDuplicateConflict(t *testing.T) {
	f := newReviewFixture(t)
	order := f.createCompletedOrder(t)

	ctx := context.Background()
	_, err := f.usecase.CreateReview(ctx, "buyer-1", CreateReviewInput{OrderID: order.ID, Rating: 5})
	require.NoError(t, err)

	_, err = f.usecase.CreateReview(ctx, "buyer-1", CreateReviewInput{OrderID: order.ID, Rating: 1})
	assert.True(t, errors.Is(err, "CONFLICT"))
}

func TestCreateReviewIncompleteOrderRejected(t *testing.T) {
	f := newReviewFixture(t)
	order := f.createPaidOrder(t)

	_, err := f.usecase.CreateReview(context.Background(), "buyer-1", CreateReviewInput{OrderID: order.ID, Rating: 5})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestCreateReviewOutsiderForbidden(t *testing.T) {
	f := newReviewFixture(t)
	order := f.createCompletedOrder(t)

	_, err := f.usecase.CreateReview(context.Background(), "stranger-1", CreateReviewInput{OrderID: order.ID, Rating: 5})
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestSellerReviewSkipsGigAggregate(t *testing.T) {
	f := newReviewFixture(t)
	order := f.createCompletedOrder(t)

	ctx := context.Background()
	review, err := f.usecase.CreateReview(ctx, "seller-1", CreateReviewInput{
		OrderID: order.ID,
		Rating:  5,
		Comment: "great client",
	})
	require.NoError(t, err)

	assert.Equal(t, "buyer-1", review.RevieweeID)
	assert.Empty(t, review.GigID)

	gig, err := f.gigRepo.GetByID(ctx, f.gig.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, gig.Rating)
	assert.Equal(t, 0, gig.TotalReviews)

	buyer, err := f.userRepo.GetByID(ctx, "buyer-1")
	require.NoError(t, err)
	assert.Equal(t, 5.0, buyer.Rating)
	assert.Equal(t, 1, buyer.TotalReviews)
}

func TestBothPartiesReview(t *testing.T) {
	f := newReviewFixture(t)
	order := f.createCompletedOrder(t)

	ctx := context.Background()
	_, err := f.usecase.CreateReview(ctx, "buyer-1", CreateReviewInput{OrderID: order.ID, Rating: 5})
	require.NoError(t, err)
	_, err = f.usecase.CreateReview(ctx, "seller-1", CreateReviewInput{OrderID: order.ID, Rating: 3})
	require.NoError(t, err)

	updated, err := f.orderRepo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.True(t, updated.BuyerReviewed)
	assert.True(t, updated.SellerReviewed)
}
