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

type orderFixture struct {
	orderRepo        *fakeOrderRepo
	gigRepo          *fakeGigRepo
	userRepo         *fakeUserRepo
	notificationRepo *fakeNotificationRepo
	usecase          *OrderUsecase
	gig              *entity.Gig
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()

	orderRepo := newFakeOrderRepo()
	gigRepo := newFakeGigRepo()
	userRepo := newFakeUserRepo()
	notificationRepo := newFakeNotificationRepo()

	notificationUsecase := NewNotificationUsecase(notificationRepo, &fakePusher{})
	orderUsecase := NewOrderUsecase(orderRepo, gigRepo, userRepo, notificationUsecase, 3)

	ctx := context.Background()
	require.NoError(t, userRepo.Create(ctx, &entity.User{ID: "seller-1", Email: "seller@example.com", Role: "freelancer"}))
	require.NoError(t, userRepo.Create(ctx, &entity.User{ID: "buyer-1", Email: "buyer@example.com", Role: "client"}))

	gig := &entity.Gig{
		SellerID: "seller-1",
		Title:    "I will design your logo",
		Status:   "active",
		Basic: entity.GigPackage{
			Price:        150,
			DeliveryDays: 5,
			Revisions:    1,
		},
	}
	require.NoError(t, gigRepo.Create(ctx, gig))

	return &orderFixture{
		orderRepo:        orderRepo,
		gigRepo:          gigRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		usecase:          orderUsecase,
		gig:              gig,
	}
}

func (f *orderFixture) createPaidOrder(t *testing.T) *entity.Order {
	t.Helper()

	order, err := f.usecase.CreateOrder(context.Background(), "buyer-1", CreateOrderInput{
		GigID:       f.gig.ID,
		PackageType: entity.PackageTierBasic,
	})
	require.NoError(t, err)

	order.PaymentStatus = entity.PaymentStatusPaid
	order.Status = entity.OrderStatusRequirementsPending
	require.NoError(t, f.orderRepo.Update(context.Background(), order))

	return order
}

func TestCalculateFinancials(t *testing.T) {
	serviceFee, netAmount, totalAmount := CalculateFinancials(150)
	assert.Equal(t, 7.50, serviceFee)
	assert.Equal(t, 120.00, netAmount)
	assert.Equal(t, 157.50, totalAmount)
}

func TestCalculateFinancialsFeeFloor(t *testing.T) {
	serviceFee, netAmount, totalAmount := CalculateFinancials(10)
	assert.Equal(t, 2.00, serviceFee)
	assert.Equal(t, 8.00, netAmount)
	assert.Equal(t, 12.00, totalAmount)
}

func TestCreateOrderStoresFinancials(t *testing.T) {
	f := newOrderFixture(t)

	order, err := f.usecase.CreateOrder(context.Background(), "buyer-1", CreateOrderInput{
		GigID:       f.gig.ID,
		PackageType: entity.PackageTierBasic,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusPending, order.Status)
	assert.Equal(t, entity.PaymentStatusPending, order.PaymentStatus)
	assert.Equal(t, 150.00, order.Subtotal)
	assert.Equal(t, order.Subtotal+order.ServiceFee, order.TotalAmount)
	assert.GreaterOrEqual(t, order.ServiceFee, 2.00)

	// Raising the gig price later must not touch the stored financials.
	f.gig.Basic.Price = 300
	require.NoError(t, f.gigRepo.Update(context.Background(), f.gig))

	stored, err := f.usecase.GetOrder(context.Background(), "buyer-1", order.ID)
	require.NoError(t, err)
	assert.Equal(t, 150.00, stored.Subtotal)
	assert.Equal(t, 157.50, stored.TotalAmount)
}

func TestCreateOrderOwnGigForbidden(t *testing.T) {
	f := newOrderFixture(t)

	_, err := f.usecase.CreateOrder(context.Background(), "seller-1", CreateOrderInput{
		GigID:       f.gig.ID,
		PackageType: entity.PackageTierBasic,
	})
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestCreateOrderUnknownPackage(t *testing.T) {
	f := newOrderFixture(t)

	_, err := f.usecase.CreateOrder(context.Background(), "buyer-1", CreateOrderInput{
		GigID:       f.gig.ID,
		PackageType: entity.PackageTierPremium,
	})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestTransitionTableExhaustive(t *testing.T) {
	allStatuses := []string{
		entity.OrderStatusPending,
		entity.OrderStatusRequirementsPending,
		entity.OrderStatusInProgress,
		entity.OrderStatusDelivered,
		entity.OrderStatusRevisionRequested,
		entity.OrderStatusCompleted,
		entity.OrderStatusCancelled,
		entity.OrderStatusDisputed,
	}

	allowed := map[string]map[string]bool{
		entity.OrderStatusPending:             {entity.OrderStatusRequirementsPending: true, entity.OrderStatusInProgress: true, entity.OrderStatusCancelled: true},
		entity.OrderStatusRequirementsPending: {entity.OrderStatusInProgress: true, entity.OrderStatusCancelled: true},
		entity.OrderStatusInProgress:          {entity.OrderStatusDelivered: true, entity.OrderStatusCancelled: true},
		entity.OrderStatusDelivered:           {entity.OrderStatusCompleted: true, entity.OrderStatusRevisionRequested: true, entity.OrderStatusCancelled: true},
		entity.OrderStatusRevisionRequested:   {entity.OrderStatusInProgress: true, entity.OrderStatusDelivered: true},
	}

	for _, from := range allStatuses {
		for _, to := range allStatuses {
			assert.Equal(t, allowed[from][to], canTransition(from, to), "transition %s -> %s", from, to)
		}
	}
}

func TestGenericUpdateStatusRejectsInvalidTransition(t *testing.T) {
	f := newOrderFixture(t)
	order := f.createPaidOrder(t)

	_, err := f.usecase.UpdateStatus(context.Background(), "seller-1", order.ID, entity.OrderStatusDelivered)
	assert.True(t, errors.Is(err, "INVALID_TRANSITION"))
}

func TestGenericUpdateStatusSellerOnly(t *testing.T) {
	f := newOrderFixture(t)
	order := f.createPaidOrder(t)

	_, err := f.usecase.UpdateStatus(context.Background(), "buyer-1", order.ID, entity.OrderStatusInProgress)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestDeliverSchedulesAutoComplete(t *testing.T) {
	f := newOrderFixture(t)
	order := f.createPaidOrder(t)

	ctx := context.Background()
	_, err := f.usecase.SubmitRequirements(ctx, "buyer-1", order.ID, "please use blue")
	require.NoError(t, err)

	order, err = f.usecase.Deliver(ctx, "seller-1", order.ID, "here is your logo", []string{"logo.png"})
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusDelivered, order.Status)
	require.NotNil(t, order.DeliveryDate)
	require.NotNil(t, order.AutoCompleteAt)
	assert.Equal(t, order.DeliveryDate.Add(72*time.Hour), *order.AutoCompleteAt)
	assert.Len(t, order.Deliveries, 1)

	assert.Equal(t, 1, f.notificationRepo.countByType("buyer-1", entity.NotificationOrderDelivered))
}

func TestAcceptCreditsSeller(t *testing.T) {
	f := newOrderFixture(t)
	order := f.createPaidOrder(t)

	ctx := context.Background()
	_, err := f.usecase.SubmitRequirements(ctx, "buyer-1", order.ID, "brief")
	require.NoError(t, err)
	_, err = f.usecase.Deliver(ctx, "seller-1", order.ID, "done", nil)
	require.NoError(t, err)

	order, err = f.usecase.Accept(ctx, "buyer-1", order.ID)
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusCompleted, order.Status)
	require.NotNil(t, order.CompletedAt)
	assert.Nil(t, order.AutoCompleteAt)

	seller, err := f.userRepo.GetByID(ctx, "seller-1")
	require.NoError(t, err)
	assert.Equal(t, 120.00, seller.TotalEarnings)
	assert.Equal(t, 1, seller.CompletedOrders)

	gig, err := f.gigRepo.GetByID(ctx, f.gig.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, gig.TotalOrders)

	assert.Equal(t, 1, f.notificationRepo.countByType("seller-1", entity.NotificationOrderCompleted))
}

func TestAcceptSellerForbidden(t *testing.T) {
	f := newOrderFixture(t)
	order := f.createPaidOrder(t)

	ctx := context.Background()
	_, err := f.usecase.SubmitRequirements(ctx, "buyer-1", order.ID, "brief")
	require.NoError(t, err)
	_, err = f.usecase.Deliver(ctx, "seller-1", order.ID, "done", nil)
	require.NoError(t, err)

	_, err = f.usecase.Accept(ctx, "seller-1", order.ID)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestRevisionLimit(t *testing.T) {
	f := newOrderFixture(t)
	order := f.createPaidOrder(t)

	ctx := context.Background()
	_, err := f.usecase.SubmitRequirements(ctx, "buyer-1", order.ID, "brief")
	require.NoError(t, err)
	_, err = f.usecase.Deliver(ctx, "seller-1", order.ID, "first draft", nil)
	require.NoError(t, err)

	// Package allows 1 revision.
	order, err = f.usecase.RequestRevision(ctx, "buyer-1", order.ID, "make it bigger")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusRevisionRequested, order.Status)
	assert.Equal(t, 1, f.notificationRepo.countByType("seller-1", entity.NotificationRevisionRequested))

	order, err = f.usecase.Deliver(ctx, "seller-1", order.ID, "bigger now", nil)
	require.NoError(t, err)
	require.Len(t, order.RevisionRequests, 1)
	assert.NotNil(t, order.RevisionRequests[0].RespondedAt)

	_, err = f.usecase.RequestRevision(ctx, "buyer-1", order.ID, "one more")
	assert.True(t, errors.Is(err, "LIMIT_EXCEEDED"))
}

func TestCancelFromTerminalRejected(t *testing.T) {
	f := newOrderFixture(t)
	order := f.createPaidOrder(t)

	ctx := context.Background()
	_, err := f.usecase.Cancel(ctx, "buyer-1", order.ID, "changed my mind")
	require.NoError(t, err)

	_, err = f.usecase.Cancel(ctx, "buyer-1", order.ID, "again")
	assert.True(t, errors.Is(err, "INVALID_TRANSITION"))
}

func TestCancelNotifiesCounterparty(t *testing.T) {
	f := newOrderFixture(t)
	order := f.createPaidOrder(t)

	ctx := context.Background()
	_, err := f.usecase.Cancel(ctx, "seller-1", order.ID, "unavailable")
	require.NoError(t, err)

	assert.Equal(t, 1, f.notificationRepo.countByType("buyer-1", entity.NotificationOrderCancelled))
	assert.Equal(t, 0, f.notificationRepo.countByType("seller-1", entity.NotificationOrderCancelled))
}

func TestGetOrderOutsiderForbidden(t *testing.T) {
	f := newOrderFixture(t)
	order := f.createPaidOrder(t)

	_, err := f.usecase.GetOrder(context.Background(), "stranger-1", order.ID)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}
