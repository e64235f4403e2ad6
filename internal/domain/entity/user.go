package entity

import (
	"time"
)

type User struct {
	ID       string `json:"id" firestore:"id"`
	Email    string `json:"email" firestore:"email"`
	Username string `json:"username" firestore:"username"`
	FullName string `json:"full_name,omitempty" firestore:"fullName,omitempty"`
	Bio      string `json:"bio,omitempty" firestore:"bio,omitempty"`
	Role     string `json:"role" firestore:"role"` // client, freelancer
	Status   string `json:"status" firestore:"status"`

	AvatarURL string   `json:"avatar_url,omitempty" firestore:"avatarURL,omitempty"`
	Skills    []string `json:"skills,omitempty" firestore:"skills,omitempty"`

	// Denormalized aggregates, recomputed by the rating aggregator and
	// credited by the order lifecycle on completion.
	Rating          float64 `json:"rating" firestore:"rating"`
	TotalReviews    int     `json:"total_reviews" firestore:"totalReviews"`
	TotalEarnings   float64 `json:"total_earnings" firestore:"totalEarnings"`
	CompletedOrders int     `json:"completed_orders" firestore:"completedOrders"`

	LastSeen  time.Time `json:"last_seen" firestore:"lastSeen"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}
