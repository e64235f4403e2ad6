package service

import (
	"context"
)

// CheckoutSessionRequest describes a hosted checkout session to create.
type CheckoutSessionRequest struct {
	OrderID     string
	Title       string
	Description string
	Amount      float64 // total charged to the buyer, in the platform currency
	BuyerEmail  string
	SuccessURL  string
	CancelURL   string
}

// CheckoutSession is the provider's view of a session. PaymentStatus and
// PaymentIntentID are populated on retrieval.
type CheckoutSession struct {
	ID              string
	URL             string
	PaymentStatus   string // unpaid, paid
	PaymentIntentID string
}

// PaymentGateway abstracts the checkout-session provider.
type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, req CheckoutSessionRequest) (*CheckoutSession, error)
	RetrieveSession(ctx context.Context, sessionID string) (*CheckoutSession, error)
}
