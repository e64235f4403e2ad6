package entity

import (
	"time"
)

// GigPackage is one pricing tier of a gig. A copy of the purchased tier is
// embedded into the order at checkout time.
type GigPackage struct {
	Price        float64  `json:"price" firestore:"price"`
	DeliveryDays int      `json:"delivery_days" firestore:"deliveryDays"`
	Revisions    int      `json:"revisions" firestore:"revisions"`
	Features     []string `json:"features,omitempty" firestore:"features,omitempty"`
}

type GigImage struct {
	URL          string `json:"url" firestore:"url"`
	DisplayOrder int    `json:"display_order" firestore:"displayOrder"`
}

type Gig struct {
	ID          string   `json:"id" firestore:"id"`
	SellerID    string   `json:"seller_id" firestore:"sellerId"`
	Title       string   `json:"title" firestore:"title"`
	Description string   `json:"description" firestore:"description"`
	Category    string   `json:"category" firestore:"category"`
	Tags        []string `json:"tags,omitempty" firestore:"tags,omitempty"`

	// Basic is required; standard and premium are optional tiers.
	Basic    GigPackage  `json:"basic" firestore:"basic"`
	Standard *GigPackage `json:"standard,omitempty" firestore:"standard,omitempty"`
	Premium  *GigPackage `json:"premium,omitempty" firestore:"premium,omitempty"`

	Images []GigImage `json:"images,omitempty" firestore:"images,omitempty"`
	Status string     `json:"status" firestore:"status"` // active, paused, deleted

	// Denormalized aggregates, recomputed on review creation and completion.
	Rating       float64 `json:"rating" firestore:"rating"`
	TotalReviews int     `json:"total_reviews" firestore:"totalReviews"`
	TotalOrders  int     `json:"total_orders" firestore:"totalOrders"`

	CreatedAt time.Time  `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time  `json:"updated_at" firestore:"updatedAt"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" firestore:"deletedAt,omitempty"`
}

// Package returns the tier matching packageType, or nil if the gig does not
// offer it.
func (g *Gig) Package(packageType string) *GigPackage {
	switch packageType {
	case PackageTierBasic:
		return &g.Basic
	case PackageTierStandard:
		return g.Standard
	case PackageTierPremium:
		return g.Premium
	}
	return nil
}
