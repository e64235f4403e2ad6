package usecase

import (
	"context"
	"fmt"
	"math"
	"time"

	"freelancehub/internal/domain/entity"
	"freelancehub/internal/domain/repository"
	"freelancehub/pkg/errors"
	"freelancehub/pkg/logger"
	"freelancehub/pkg/utils"
)

// allowedTransitions gates every order status change. Statuses absent from
// the map are terminal. Cancellation is a specialized path with its own
// guard (see CancelOrder) and is additionally listed where the generic
// transition may reach it.
var allowedTransitions = map[string][]string{
	entity.OrderStatusPending:             {entity.OrderStatusRequirementsPending, entity.OrderStatusInProgress, entity.OrderStatusCancelled},
	entity.OrderStatusRequirementsPending: {entity.OrderStatusInProgress, entity.OrderStatusCancelled},
	entity.OrderStatusInProgress:          {entity.OrderStatusDelivered, entity.OrderStatusCancelled},
	entity.OrderStatusDelivered:           {entity.OrderStatusCompleted, entity.OrderStatusRevisionRequested, entity.OrderStatusCancelled},
	entity.OrderStatusRevisionRequested:   {entity.OrderStatusInProgress, entity.OrderStatusDelivered},
}

func canTransition(from, to string) bool {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// CalculateFinancials derives the stored money fields from a subtotal.
// serviceFee is the buyer-paid surcharge with a $2 floor; netAmount is what
// the seller receives after the 20% platform cut. All three are persisted
// at order creation and never recomputed, so later gig price edits cannot
// drift an existing order.
func CalculateFinancials(subtotal float64) (serviceFee, netAmount, totalAmount float64) {
	serviceFee = round2(subtotal * 0.05)
	if serviceFee < 2.00 {
		serviceFee = 2.00
	}
	netAmount = subtotal - round2(subtotal*0.20)
	totalAmount = subtotal + serviceFee
	return serviceFee, netAmount, totalAmount
}

type OrderUsecase struct {
	orderRepo           repository.OrderRepository
	gigRepo             repository.GigRepository
	userRepo            repository.UserRepository
	notificationUsecase *NotificationUsecase
	autoCompleteDays    int64
}

func NewOrderUsecase(
	orderRepo repository.OrderRepository,
	gigRepo repository.GigRepository,
	userRepo repository.UserRepository,
	notificationUsecase *NotificationUsecase,
	autoCompleteDays int64,
) *OrderUsecase {
	return &OrderUsecase{
		orderRepo:           orderRepo,
		gigRepo:             gigRepo,
		userRepo:            userRepo,
		notificationUsecase: notificationUsecase,
		autoCompleteDays:    autoCompleteDays,
	}
}

type CreateOrderInput struct {
	GigID        string `json:"gig_id" validate:"required"`
	PackageType  string `json:"package_type" validate:"required,oneof=basic standard premium"`
	Requirements string `json:"requirements"`
}

// CreateOrder creates a pending order for a gig package. Payment is not yet
// confirmed; the payment usecase attaches the checkout session and the
// webhook moves the order forward.
func (u *OrderUsecase) CreateOrder(ctx context.Context, buyerID string, input CreateOrderInput) (*entity.Order, error) {
	gig, err := u.gigRepo.GetByID(ctx, input.GigID)
	if err != nil {
		return nil, err
	}

	if gig.Status != "active" {
		return nil, errors.BadRequest("Gig is not available for purchase", nil)
	}
	if gig.SellerID == buyerID {
		return nil, errors.Forbidden("You cannot order your own gig", nil)
	}

	pkg := gig.Package(input.PackageType)
	if pkg == nil {
		return nil, errors.BadRequest(fmt.Sprintf("Gig does not offer a %s package", input.PackageType), nil)
	}

	serviceFee, netAmount, totalAmount := CalculateFinancials(pkg.Price)

	order := &entity.Order{
		GigID:          gig.ID,
		BuyerID:        buyerID,
		SellerID:       gig.SellerID,
		Title:          gig.Title,
		PackageType:    input.PackageType,
		PackageDetails: *pkg,
		Requirements:   input.Requirements,
		Subtotal:       pkg.Price,
		ServiceFee:     serviceFee,
		NetAmount:      netAmount,
		TotalAmount:    totalAmount,
		Status:         entity.OrderStatusPending,
		PaymentStatus:  entity.PaymentStatusPending,
	}

	if err := u.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	logger.Info("Order %s created for gig %s (%s, total %.2f)", order.ID, gig.ID, input.PackageType, totalAmount)
	return order, nil
}

// CreateCustomOrder creates a pending order from an accepted custom offer.
func (u *OrderUsecase) CreateCustomOrder(ctx context.Context, buyerID, sellerID string, offer *entity.CustomOffer) (*entity.Order, error) {
	if buyerID == sellerID {
		return nil, errors.Forbidden("You cannot order from yourself", nil)
	}

	serviceFee, netAmount, totalAmount := CalculateFinancials(offer.Price)

	order := &entity.Order{
		GigID:       offer.GigID,
		BuyerID:     buyerID,
		SellerID:    sellerID,
		Title:       offer.Title,
		PackageType: entity.PackageTierCustom,
		PackageDetails: entity.GigPackage{
			Price:        offer.Price,
			DeliveryDays: offer.DeliveryDays,
			Revisions:    offer.Revisions,
		},
		Requirements:  offer.Description,
		Subtotal:      offer.Price,
		ServiceFee:    serviceFee,
		NetAmount:     netAmount,
		TotalAmount:   totalAmount,
		Status:        entity.OrderStatusPending,
		PaymentStatus: entity.PaymentStatusPending,
	}

	if err := u.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	logger.Info("Custom order %s created (buyer %s, seller %s, total %.2f)", order.ID, buyerID, sellerID, totalAmount)
	return order, nil
}

func (u *OrderUsecase) GetOrder(ctx context.Context, userID, orderID string) (*entity.Order, error) {
	order, err := u.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !order.IsParticipant(userID) {
		return nil, errors.Forbidden("You do not have access to this order", nil)
	}

	return order, nil
}

func (u *OrderUsecase) ListOrders(ctx context.Context, userID, role, status string, pagination utils.PaginationParams) ([]*entity.Order, int64, error) {
	if role != "buyer" && role != "seller" {
		return nil, 0, errors.BadRequest("Role must be buyer or seller", nil)
	}

	return u.orderRepo.ListByUserID(ctx, userID, role, status, pagination.PageSize, pagination.Offset)
}

// SubmitRequirements records the buyer's brief and starts the work.
func (u *OrderUsecase) SubmitRequirements(ctx context.Context, buyerID, orderID, requirements string) (*entity.Order, error) {
	order, err := u.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.BuyerID != buyerID {
		return nil, errors.Forbidden("Only the buyer can submit requirements", nil)
	}
	if !canTransition(order.Status, entity.OrderStatusInProgress) {
		return nil, errors.InvalidTransition(order.Status, entity.OrderStatusInProgress)
	}

	order.Requirements = requirements

	if err := u.applyTransition(ctx, order, entity.OrderStatusInProgress, buyerID); err != nil {
		return nil, err
	}

	return order, nil
}

// UpdateStatus is the generic seller-driven transition. Specialized
// operations (deliver, revision, accept, cancel) have their own entry
// points with extra validation.
func (u *OrderUsecase) UpdateStatus(ctx context.Context, sellerID, orderID, newStatus string) (*entity.Order, error) {
	order, err := u.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.SellerID != sellerID {
		return nil, errors.Forbidden("Only the seller can update the order status", nil)
	}
	if !canTransition(order.Status, newStatus) {
		return nil, errors.InvalidTransition(order.Status, newStatus)
	}

	if err := u.applyTransition(ctx, order, newStatus, sellerID); err != nil {
		return nil, err
	}

	return order, nil
}

// Deliver appends a delivery record and moves the order to delivered. A
// redelivery after a revision request also answers the open revision.
func (u *OrderUsecase) Deliver(ctx context.Context, sellerID, orderID, message string, files []string) (*entity.Order, error) {
	order, err := u.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.SellerID != sellerID {
		return nil, errors.Forbidden("Only the seller can deliver the order", nil)
	}
	if !canTransition(order.Status, entity.OrderStatusDelivered) {
		return nil, errors.InvalidTransition(order.Status, entity.OrderStatusDelivered)
	}

	now := time.Now()
	order.Deliveries = append(order.Deliveries, entity.Delivery{
		Message:     message,
		Files:       files,
		DeliveredAt: now,
	})

	if order.Status == entity.OrderStatusRevisionRequested && len(order.RevisionRequests) > 0 {
		last := &order.RevisionRequests[len(order.RevisionRequests)-1]
		if last.RespondedAt == nil {
			last.Response = message
			last.RespondedAt = &now
		}
	}

	if err := u.applyTransition(ctx, order, entity.OrderStatusDelivered, sellerID); err != nil {
		return nil, err
	}

	return order, nil
}

// RequestRevision appends a revision record when the buyer still has
// revisions left on the purchased package.
func (u *OrderUsecase) RequestRevision(ctx context.Context, buyerID, orderID, message string) (*entity.Order, error) {
	order, err := u.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.BuyerID != buyerID {
		return nil, errors.Forbidden("Only the buyer can request a revision", nil)
	}
	if !canTransition(order.Status, entity.OrderStatusRevisionRequested) {
		return nil, errors.InvalidTransition(order.Status, entity.OrderStatusRevisionRequested)
	}
	if len(order.RevisionRequests) >= order.PackageDetails.Revisions {
		return nil, errors.LimitExceeded("Revision limit reached for this order")
	}

	order.RevisionRequests = append(order.RevisionRequests, entity.RevisionRequest{
		Message:     message,
		RequestedAt: time.Now(),
	})

	if err := u.applyTransition(ctx, order, entity.OrderStatusRevisionRequested, buyerID); err != nil {
		return nil, err
	}

	return order, nil
}

// Accept completes the order and credits the seller.
func (u *OrderUsecase) Accept(ctx context.Context, buyerID, orderID string) (*entity.Order, error) {
	order, err := u.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.BuyerID != buyerID {
		return nil, errors.Forbidden("Only the buyer can accept the delivery", nil)
	}
	if !canTransition(order.Status, entity.OrderStatusCompleted) {
		return nil, errors.InvalidTransition(order.Status, entity.OrderStatusCompleted)
	}

	if err := u.applyTransition(ctx, order, entity.OrderStatusCompleted, buyerID); err != nil {
		return nil, err
	}

	return order, nil
}

// Cancel is allowed to either participant from any non-terminal status.
// There is no approval workflow; cancellation takes effect immediately.
func (u *OrderUsecase) Cancel(ctx context.Context, userID, orderID, reason string) (*entity.Order, error) {
	order, err := u.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !order.IsParticipant(userID) {
		return nil, errors.Forbidden("You do not have access to this order", nil)
	}
	if order.IsTerminal() {
		return nil, errors.InvalidTransition(order.Status, entity.OrderStatusCancelled)
	}

	order.Cancellation = &entity.Cancellation{
		Reason:      reason,
		RequestedBy: userID,
		RequestedAt: time.Now(),
	}

	if err := u.applyTransition(ctx, order, entity.OrderStatusCancelled, userID); err != nil {
		return nil, err
	}

	return order, nil
}

// applyTransition mutates the order into its new status, persists it, runs
// side effects and fires the counterparty notification. Callers have
// already validated the transition and the actor's role.
func (u *OrderUsecase) applyTransition(ctx context.Context, order *entity.Order, newStatus, actorID string) error {
	from := order.Status
	now := time.Now()
	order.Status = newStatus

	switch newStatus {
	case entity.OrderStatusDelivered:
		order.DeliveryDate = &now
		autoComplete := now.Add(time.Duration(u.autoCompleteDays) * 24 * time.Hour)
		order.AutoCompleteAt = &autoComplete
	case entity.OrderStatusCompleted:
		order.CompletedAt = &now
		order.AutoCompleteAt = nil
	case entity.OrderStatusCancelled:
		order.CancelledAt = &now
		order.AutoCompleteAt = nil
	}

	if err := u.orderRepo.Update(ctx, order); err != nil {
		return err
	}

	logger.Info("Order %s: %s -> %s (by %s)", order.ID, from, newStatus, actorID)

	if newStatus == entity.OrderStatusCompleted {
		u.creditSeller(ctx, order)
	}

	u.notifyTransition(ctx, order, newStatus, actorID)
	return nil
}

// creditSeller updates the seller's running earnings and counters and the
// gig's order count. These writes are per-document and not atomic with the
// order update; a crash in between leaves the aggregates behind until the
// next completion.
func (u *OrderUsecase) creditSeller(ctx context.Context, order *entity.Order) {
	seller, err := u.userRepo.GetByID(ctx, order.SellerID)
	if err != nil {
		logger.Error("Failed to load seller %s for crediting: %v", order.SellerID, err)
		return
	}

	seller.TotalEarnings = round2(seller.TotalEarnings + order.NetAmount)
	seller.CompletedOrders++

	if err := u.userRepo.Update(ctx, seller); err != nil {
		logger.Error("Failed to credit seller %s: %v", order.SellerID, err)
	}

	if order.GigID == "" {
		return
	}

	gig, err := u.gigRepo.GetByID(ctx, order.GigID)
	if err != nil {
		logger.Error("Failed to load gig %s for order count: %v", order.GigID, err)
		return
	}

	gig.TotalOrders++
	if err := u.gigRepo.Update(ctx, gig); err != nil {
		logger.Error("Failed to update gig %s order count: %v", order.GigID, err)
	}
}

func (u *OrderUsecase) notifyTransition(ctx context.Context, order *entity.Order, newStatus, actorID string) {
	data := map[string]interface{}{"order_id": order.ID}

	var recipientID, notificationType, title, message string

	switch newStatus {
	case entity.OrderStatusDelivered:
		recipientID = order.BuyerID
		notificationType = entity.NotificationOrderDelivered
		title = "Order delivered"
		message = fmt.Sprintf("Your order %q has been delivered", order.Title)
	case entity.OrderStatusCompleted:
		recipientID = order.SellerID
		notificationType = entity.NotificationOrderCompleted
		title = "Order completed"
		message = fmt.Sprintf("Order %q was completed. You earned $%.2f", order.Title, order.NetAmount)
	case entity.OrderStatusRevisionRequested:
		recipientID = order.SellerID
		notificationType = entity.NotificationRevisionRequested
		title = "Revision requested"
		message = fmt.Sprintf("The buyer requested a revision on %q", order.Title)
	case entity.OrderStatusCancelled:
		// Notify the counterparty of whoever cancelled.
		recipientID = order.SellerID
		if actorID == order.SellerID {
			recipientID = order.BuyerID
		}
		notificationType = entity.NotificationOrderCancelled
		title = "Order cancelled"
		message = fmt.Sprintf("Order %q was cancelled", order.Title)
	default:
		return
	}

	if _, err := u.notificationUsecase.Notify(ctx, recipientID, actorID, notificationType, title, message, data); err != nil {
		logger.Error("Failed to send %s notification for order %s: %v", notificationType, order.ID, err)
	}
}
