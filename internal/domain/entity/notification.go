package entity

import (
	"time"
)

// Notification event kinds.
const (
	NotificationNewOrder          = "new_order"
	NotificationOrderDelivered    = "order_delivered"
	NotificationOrderCompleted    = "order_completed"
	NotificationOrderCancelled    = "order_cancelled"
	NotificationRevisionRequested = "revision_requested"
	NotificationPaymentReceived   = "payment_received"
	NotificationNewMessage        = "new_message"
	NotificationNewReview         = "new_review"
)

// Notification is the durable record; real-time push is best-effort on top.
// Only IsRead is mutable after creation.
type Notification struct {
	ID          string                 `json:"id" firestore:"id"`
	RecipientID string                 `json:"recipient_id" firestore:"recipientId"`
	SenderID    string                 `json:"sender_id,omitempty" firestore:"senderId,omitempty"`
	Type        string                 `json:"type" firestore:"type"`
	Title       string                 `json:"title" firestore:"title"`
	Message     string                 `json:"message" firestore:"message"`
	Data        map[string]interface{} `json:"data,omitempty" firestore:"data,omitempty"`
	IsRead      bool                   `json:"is_read" firestore:"isRead"`
	CreatedAt   time.Time              `json:"created_at" firestore:"createdAt"`
}
