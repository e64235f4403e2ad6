package entity

import (
	"time"
)

// Review is left once per (order, reviewer) pair; uniqueness is checked at
// write time by the review usecase.
type Review struct {
	ID         string `json:"id" firestore:"id"`
	OrderID    string `json:"order_id" firestore:"orderId"`
	GigID      string `json:"gig_id,omitempty" firestore:"gigId,omitempty"`
	ReviewerID string `json:"reviewer_id" firestore:"reviewerId"`
	RevieweeID string `json:"reviewee_id" firestore:"revieweeId"`

	Rating  int    `json:"rating" firestore:"rating"` // 1-5
	Comment string `json:"comment" firestore:"comment"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}
