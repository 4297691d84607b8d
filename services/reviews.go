package services

import (
	"context"
	"math"
	"time"

	"auroxa/models"
	"auroxa/store"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReviewStore is the persistence contract the review service depends on.
type ReviewStore interface {
	Insert(ctx context.Context, review *models.Review) (*models.Review, error)
	Find(ctx context.Context, productID *primitive.ObjectID, limit, skip int64) ([]models.Review, error)
	RatingForProduct(ctx context.Context, productID primitive.ObjectID) (*store.ProductRating, error)
}

// Reviews manages product reviews and the aggregate-on-write rating rollup
// on the product record.
type Reviews struct {
	reviews  ReviewStore
	products ProductStore
	logger   zerolog.Logger
	now      func() time.Time
}

// NewReviews creates the review service.
func NewReviews(reviews ReviewStore, products ProductStore, logger zerolog.Logger) *Reviews {
	return &Reviews{
		reviews:  reviews,
		products: products,
		logger:   logger.With().Str("service", "reviews").Logger(),
		now:      time.Now,
	}
}

// Create validates and persists a review, snapshots the product title onto
// it, then recomputes the product's rolling rating and review count.
func (s *Reviews) Create(ctx context.Context, review *models.Review) (*models.Review, error) {
	if err := review.Validate(); err != nil {
		return nil, err
	}

	product, err := s.products.FindByID(ctx, review.ProductID.Hex())
	if err != nil {
		return nil, err
	}

	review.ProductName = product.Title
	if review.UserEmail == "" {
		review.UserEmail = "no-email@provided.com"
	}
	review.CreatedAt = s.now()

	saved, err := s.reviews.Insert(ctx, review)
	if err != nil {
		return nil, err
	}

	rating, err := s.reviews.RatingForProduct(ctx, review.ProductID)
	if err != nil {
		return nil, err
	}
	if rating.Count > 0 {
		rounded := math.Round(rating.Average*10) / 10
		if err := s.products.SetRating(ctx, review.ProductID, rounded, rating.Count); err != nil {
			return nil, err
		}
	}

	s.logger.Info().
		Str("product", product.Title).
		Int("rating", review.Rating).
		Msg("review created")
	return saved, nil
}

// List returns reviews, optionally narrowed to one product.
func (s *Reviews) List(ctx context.Context, productID string, limit, skip int64) ([]models.Review, error) {
	var oid *primitive.ObjectID
	if productID != "" {
		parsed, err := primitive.ObjectIDFromHex(productID)
		if err != nil {
			return nil, store.ErrInvalidID
		}
		oid = &parsed
	}
	return s.reviews.Find(ctx, oid, limit, skip)
}
