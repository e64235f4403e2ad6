package entity

import (
	"time"
)

// Custom offer statuses, independent of any order created from the offer.
const (
	OfferStatusPending  = "pending"
	OfferStatusAccepted = "accepted"
	OfferStatusDeclined = "declined"
	OfferStatusExpired  = "expired"
)

// CustomOffer is an ad-hoc priced proposal carried inside a message,
// convertible into an order upon acceptance.
type CustomOffer struct {
	GigID        string    `json:"gig_id,omitempty" firestore:"gigId,omitempty"`
	Title        string    `json:"title" firestore:"title"`
	Description  string    `json:"description,omitempty" firestore:"description,omitempty"`
	Price        float64   `json:"price" firestore:"price"`
	DeliveryDays int       `json:"delivery_days" firestore:"deliveryDays"`
	Revisions    int       `json:"revisions" firestore:"revisions"`
	Status       string    `json:"status" firestore:"status"`
	ExpiresAt    time.Time `json:"expires_at" firestore:"expiresAt"`
}

type Message struct {
	ID             string       `json:"id" firestore:"id"`
	ConversationID string       `json:"conversation_id" firestore:"conversationId"`
	SenderID       string       `json:"sender_id" firestore:"senderId"`
	ReceiverID     string       `json:"receiver_id" firestore:"receiverId"`
	Content        string       `json:"content" firestore:"content"`
	Type           string       `json:"type" firestore:"type"` // text, file, offer, system
	Attachments    []string     `json:"attachments,omitempty" firestore:"attachments,omitempty"`
	CustomOffer    *CustomOffer `json:"custom_offer,omitempty" firestore:"customOffer,omitempty"`
	IsRead         bool         `json:"is_read" firestore:"isRead"`
	CreatedAt      time.Time    `json:"created_at" firestore:"createdAt"`
}
