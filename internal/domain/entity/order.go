package entity

import (
	"time"
)

// Order statuses. Transitions between them are gated by the order usecase.
const (
	OrderStatusPending             = "pending"
	OrderStatusRequirementsPending = "requirements_pending"
	OrderStatusInProgress          = "in_progress"
	OrderStatusDelivered           = "delivered"
	OrderStatusRevisionRequested   = "revision_requested"
	OrderStatusCompleted           = "completed"
	OrderStatusCancelled           = "cancelled"
	OrderStatusDisputed            = "disputed"
)

const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusRefunded = "refunded"
	PaymentStatusFailed   = "failed"
)

const (
	PackageTierBasic    = "basic"
	PackageTierStandard = "standard"
	PackageTierPremium  = "premium"
	PackageTierCustom   = "custom"
)

// Delivery is one delivery event appended by the seller.
type Delivery struct {
	Message     string    `json:"message" firestore:"message"`
	Files       []string  `json:"files,omitempty" firestore:"files,omitempty"`
	DeliveredAt time.Time `json:"delivered_at" firestore:"deliveredAt"`
}

// RevisionRequest is one buyer revision request, append-only.
type RevisionRequest struct {
	Message     string     `json:"message" firestore:"message"`
	Response    string     `json:"response,omitempty" firestore:"response,omitempty"`
	RequestedAt time.Time  `json:"requested_at" firestore:"requestedAt"`
	RespondedAt *time.Time `json:"responded_at,omitempty" firestore:"respondedAt,omitempty"`
}

type Cancellation struct {
	Reason      string    `json:"reason" firestore:"reason"`
	RequestedBy string    `json:"requested_by" firestore:"requestedBy"`
	RequestedAt time.Time `json:"requested_at" firestore:"requestedAt"`
}

type Order struct {
	ID       string `json:"id" firestore:"id"`
	GigID    string `json:"gig_id,omitempty" firestore:"gigId,omitempty"` // empty for custom offers
	BuyerID  string `json:"buyer_id" firestore:"buyerId"`
	SellerID string `json:"seller_id" firestore:"sellerId"`

	Title          string     `json:"title" firestore:"title"`
	PackageType    string     `json:"package_type" firestore:"packageType"` // basic, standard, premium, custom
	PackageDetails GigPackage `json:"package_details" firestore:"packageDetails"`
	Requirements   string     `json:"requirements,omitempty" firestore:"requirements,omitempty"`

	// Financials are stored at creation time and never recomputed, so a
	// later gig price change cannot drift an existing order.
	Subtotal    float64 `json:"subtotal" firestore:"subtotal"`
	ServiceFee  float64 `json:"service_fee" firestore:"serviceFee"`
	NetAmount   float64 `json:"net_amount" firestore:"netAmount"`
	TotalAmount float64 `json:"total_amount" firestore:"totalAmount"`

	Status        string `json:"status" firestore:"status"`
	PaymentStatus string `json:"payment_status" firestore:"paymentStatus"`

	CheckoutSessionID string `json:"-" firestore:"checkoutSessionId,omitempty"`
	PaymentIntentID   string `json:"-" firestore:"paymentIntentId,omitempty"`

	Deliveries       []Delivery        `json:"deliveries,omitempty" firestore:"deliveries,omitempty"`
	RevisionRequests []RevisionRequest `json:"revision_requests,omitempty" firestore:"revisionRequests,omitempty"`
	Cancellation     *Cancellation     `json:"cancellation,omitempty" firestore:"cancellation,omitempty"`

	BuyerReviewed  bool `json:"buyer_reviewed" firestore:"buyerReviewed"`
	SellerReviewed bool `json:"seller_reviewed" firestore:"sellerReviewed"`

	DeliveryDate   *time.Time `json:"delivery_date,omitempty" firestore:"deliveryDate,omitempty"`
	AutoCompleteAt *time.Time `json:"auto_complete_at,omitempty" firestore:"autoCompleteAt,omitempty"`
	CompletedAt    *time.Time `json:"completed_at,omitempty" firestore:"completedAt,omitempty"`
	CancelledAt    *time.Time `json:"cancelled_at,omitempty" firestore:"cancelledAt,omitempty"`
	PaidAt         *time.Time `json:"paid_at,omitempty" firestore:"paidAt,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

// IsTerminal reports whether the order can no longer change status.
func (o *Order) IsTerminal() bool {
	return o.Status == OrderStatusCompleted ||
		o.Status == OrderStatusCancelled ||
		o.Status == OrderStatusDisputed
}

func (o *Order) IsParticipant(userID string) bool {
	return o.BuyerID == userID || o.SellerID == userID
}
