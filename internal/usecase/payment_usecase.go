package usecase

import (
	"context"
	"fmt"
	"time"

	"freelancehub/internal/domain/entity"
	"freelancehub/internal/domain/repository"
	"freelancehub/internal/domain/service"
	"freelancehub/pkg/errors"
	"freelancehub/pkg/logger"
)

type PaymentUsecase struct {
	orderRepo           repository.OrderRepository
	userRepo            repository.UserRepository
	orderUsecase        *OrderUsecase
	notificationUsecase *NotificationUsecase
	gateway             service.PaymentGateway
	frontendURL         string
}

func NewPaymentUsecase(
	orderRepo repository.OrderRepository,
	userRepo repository.UserRepository,
	orderUsecase *OrderUsecase,
	notificationUsecase *NotificationUsecase,
	gateway service.PaymentGateway,
	frontendURL string,
) *PaymentUsecase {
	return &PaymentUsecase{
		orderRepo:           orderRepo,
		userRepo:            userRepo,
		orderUsecase:        orderUsecase,
		notificationUsecase: notificationUsecase,
		gateway:             gateway,
		frontendURL:         frontendURL,
	}
}

type CheckoutResult struct {
	Order       *entity.Order `json:"order"`
	CheckoutURL string        `json:"checkout_url"`
}

// CreateCheckout creates a pending order for a gig package and opens a
// hosted checkout session for it.
func (u *PaymentUsecase) CreateCheckout(ctx context.Context, buyerID string, input CreateOrderInput) (*CheckoutResult, error) {
	order, err := u.orderUsecase.CreateOrder(ctx, buyerID, input)
	if err != nil {
		return nil, err
	}

	return u.openSession(ctx, buyerID, order)
}

// CreateCustomOrderCheckout converts an accepted custom offer into an order
// and opens its checkout session. Called by the chat usecase.
func (u *PaymentUsecase) CreateCustomOrderCheckout(ctx context.Context, buyerID, sellerID string, offer *entity.CustomOffer) (*CheckoutResult, error) {
	order, err := u.orderUsecase.CreateCustomOrder(ctx, buyerID, sellerID, offer)
	if err != nil {
		return nil, err
	}

	return u.openSession(ctx, buyerID, order)
}

func (u *PaymentUsecase) openSession(ctx context.Context, buyerID string, order *entity.Order) (*CheckoutResult, error) {
	buyer, err := u.userRepo.GetByID(ctx, buyerID)
	if err != nil {
		return nil, err
	}

	session, err := u.gateway.CreateCheckoutSession(ctx, service.CheckoutSessionRequest{
		OrderID:     order.ID,
		Title:       order.Title,
		Description: fmt.Sprintf("%s package", order.PackageType),
		Amount:      order.TotalAmount,
		BuyerEmail:  buyer.Email,
		SuccessURL:  fmt.Sprintf("%s/orders/%s?session_id={CHECKOUT_SESSION_ID}", u.frontendURL, order.ID),
		CancelURL:   fmt.Sprintf("%s/orders/%s/cancelled", u.frontendURL, order.ID),
	})
	if err != nil {
		return nil, errors.Internal("Failed to create checkout session", err)
	}

	order.CheckoutSessionID = session.ID
	order.PaymentIntentID = session.PaymentIntentID
	if err := u.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	logger.Info("Checkout session %s opened for order %s", session.ID, order.ID)

	return &CheckoutResult{
		Order:       order,
		CheckoutURL: session.URL,
	}, nil
}

// HandleCheckoutCompleted applies a successful payment to the order behind
// the session. Idempotent: redelivery of an event for an already-paid order
// is a silent no-op with no duplicate notifications.
func (u *PaymentUsecase) HandleCheckoutCompleted(ctx context.Context, sessionID, paymentIntentID string) error {
	order, err := u.orderRepo.GetByCheckoutSessionID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, "NOT_FOUND") {
			logger.Warn("Checkout completed for unknown session %s", sessionID)
			return nil
		}
		return err
	}

	if order.PaymentStatus == entity.PaymentStatusPaid {
		logger.Info("Order %s already paid; ignoring duplicate event", order.ID)
		return nil
	}

	now := time.Now()
	order.PaymentStatus = entity.PaymentStatusPaid
	order.PaymentIntentID = paymentIntentID
	order.PaidAt = &now
	order.Status = entity.OrderStatusRequirementsPending

	if err := u.orderRepo.Update(ctx, order); err != nil {
		return err
	}

	logger.Info("Order %s marked paid (session %s)", order.ID, sessionID)

	data := map[string]interface{}{"order_id": order.ID}

	if _, err := u.notificationUsecase.Notify(ctx, order.SellerID, order.BuyerID,
		entity.NotificationNewOrder, "New order",
		fmt.Sprintf("You received a new order for %q", order.Title), data); err != nil {
		logger.Error("Failed to notify seller for order %s: %v", order.ID, err)
	}

	if _, err := u.notificationUsecase.Notify(ctx, order.BuyerID, "",
		entity.NotificationPaymentReceived, "Payment received",
		fmt.Sprintf("Your payment of $%.2f for %q was received", order.TotalAmount, order.Title), data); err != nil {
		logger.Error("Failed to notify buyer for order %s: %v", order.ID, err)
	}

	return nil
}

// HandlePaymentFailed cancels the order behind a failed payment intent.
// The terminal state makes re-application harmless.
func (u *PaymentUsecase) HandlePaymentFailed(ctx context.Context, paymentIntentID string) error {
	order, err := u.orderRepo.GetByPaymentIntentID(ctx, paymentIntentID)
	if err != nil {
		if errors.Is(err, "NOT_FOUND") {
			logger.Warn("Payment failed for unknown payment intent %s", paymentIntentID)
			return nil
		}
		return err
	}

	if order.PaymentStatus == entity.PaymentStatusFailed && order.Status == entity.OrderStatusCancelled {
		return nil
	}

	now := time.Now()
	order.PaymentStatus = entity.PaymentStatusFailed
	order.Status = entity.OrderStatusCancelled
	order.CancelledAt = &now

	if err := u.orderRepo.Update(ctx, order); err != nil {
		return err
	}

	logger.Info("Order %s cancelled after payment failure", order.ID)

	if _, err := u.notificationUsecase.Notify(ctx, order.BuyerID, "",
		entity.NotificationOrderCancelled, "Payment failed",
		fmt.Sprintf("Payment for %q failed and the order was cancelled", order.Title),
		map[string]interface{}{"order_id": order.ID}); err != nil {
		logger.Error("Failed to notify buyer for order %s: %v", order.ID, err)
	}

	return nil
}

// ConfirmCheckoutSession is the synchronous companion to the webhook: the
// buyer lands on the success page and confirms the session directly. Both
// paths share the already-paid guard, so whichever fires first wins and the
// other becomes a no-op.
func (u *PaymentUsecase) ConfirmCheckoutSession(ctx context.Context, buyerID, sessionID string) (*entity.Order, error) {
	order, err := u.orderRepo.GetByCheckoutSessionID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	// Ownership is checked before touching the gateway so a stranger
	// holding a session id cannot trigger reconciliation.
	if order.BuyerID != buyerID {
		return nil, errors.Forbidden("You do not have access to this order", nil)
	}

	if order.PaymentStatus == entity.PaymentStatusPaid {
		return order, nil
	}

	session, err := u.gateway.RetrieveSession(ctx, sessionID)
	if err != nil {
		return nil, errors.Internal("Failed to retrieve checkout session", err)
	}

	if session.PaymentStatus == "paid" {
		if err := u.HandleCheckoutCompleted(ctx, sessionID, session.PaymentIntentID); err != nil {
			return nil, err
		}
		return u.orderRepo.GetByCheckoutSessionID(ctx, sessionID)
	}

	return order, nil
}
