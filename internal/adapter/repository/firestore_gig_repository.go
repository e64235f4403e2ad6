package repository

import (
	"context"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"freelancehub/internal/domain/entity"
	"freelancehub/internal/domain/repository"
	"freelancehub/pkg/errors"
)

type firestoreGigRepository struct {
	client *firestore.Client
}

func NewFirestoreGigRepository(client *firestore.Client) repository.GigRepository {
	return &firestoreGigRepository{
		client: client,
	}
}

func (r *firestoreGigRepository) Create(ctx context.Context, gig *entity.Gig) error {
	if gig.ID == "" {
		gig.ID = uuid.New().String()
	}

	now := time.Now()
	gig.CreatedAt = now
	gig.UpdatedAt = now

	_, err := r.client.Collection("gigs").Doc(gig.ID).Set(ctx, gig)
	if err != nil {
		return errors.Internal("Failed to create gig", err)
	}

	return nil
}

func (r *firestoreGigRepository) GetByID(ctx context.Context, id string) (*entity.Gig, error) {
	doc, err := r.client.Collection("gigs").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Gig", err)
		}
		return nil, errors.Internal("Failed to get gig", err)
	}

	var gig entity.Gig
	if err := doc.DataTo(&gig); err != nil {
		return nil, errors.Internal("Failed to parse gig data", err)
	}

	return &gig, nil
}

func (r *firestoreGigRepository) Update(ctx context.Context, gig *entity.Gig) error {
	gig.UpdatedAt = time.Now()

	_, err := r.client.Collection("gigs").Doc(gig.ID).Set(ctx, gig)
	if err != nil {
		return errors.Internal("Failed to update gig", err)
	}

	return nil
}

// Delete soft-deletes by stamping deletedAt; listings filter it out.
func (r *firestoreGigRepository) Delete(ctx context.Context, id string) error {
	now := time.Now()
	_, err := r.client.Collection("gigs").Doc(id).Update(ctx, []firestore.Update{
		{Path: "deletedAt", Value: now},
		{Path: "status", Value: "deleted"},
		{Path: "updatedAt", Value: now},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Gig", err)
		}
		return errors.Internal("Failed to delete gig", err)
	}

	return nil
}

func (r *firestoreGigRepository) List(ctx context.Context, filter map[string]interface{}, sort string, limit, offset int) ([]*entity.Gig, int64, error) {
	query := r.client.Collection("gigs").Query

	for key, value := range filter {
		query = query.Where(key, "==", value)
	}
	query = query.Where("deletedAt", "==", nil)

	if sort != "" {
		parts := strings.Split(sort, "_")
		field := parts[0]
		order := firestore.Asc
		if len(parts) > 1 && parts[1] == "desc" {
			order = firestore.Desc
		}
		query = query.OrderBy(field, order)
	} else {
		query = query.OrderBy("createdAt", firestore.Desc)
	}

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count gigs", err)
	}
	total := int64(len(allDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var gigs []*entity.Gig

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate gigs", err)
		}

		var gig entity.Gig
		if err := doc.DataTo(&gig); err != nil {
			return nil, 0, errors.Internal("Failed to parse gig data", err)
		}
		gigs = append(gigs, &gig)
	}

	return gigs, total, nil
}

// Search does a case-insensitive substring match on title and tags.
// Firestore has no native text search, so active gigs are scanned and
// filtered in memory; acceptable at catalog sizes this service targets.
func (r *firestoreGigRepository) Search(ctx context.Context, search string, limit, offset int) ([]*entity.Gig, int64, error) {
	query := r.client.Collection("gigs").
		Where("status", "==", "active").
		Where("deletedAt", "==", nil).
		OrderBy("rating", firestore.Desc)

	iter := query.Documents(ctx)
	needle := strings.ToLower(search)
	var matched []*entity.Gig

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to search gigs", err)
		}

		var gig entity.Gig
		if err := doc.DataTo(&gig); err != nil {
			return nil, 0, errors.Internal("Failed to parse gig data", err)
		}

		if strings.Contains(strings.ToLower(gig.Title), needle) || matchesTag(gig.Tags, needle) {
			matched = append(matched, &gig)
		}
	}

	total := int64(len(matched))

	if offset > len(matched) {
		offset = len(matched)
	}
	matched = matched[offset:]
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}

	return matched, total, nil
}

func matchesTag(tags []string, needle string) bool {
	for _, tag := range tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

func (r *firestoreGigRepository) ListBySellerID(ctx context.Context, sellerID string, limit, offset int) ([]*entity.Gig, int64, error) {
	return r.List(ctx, map[string]interface{}{"sellerId": sellerID}, "", limit, offset)
}
