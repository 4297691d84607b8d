package store

import (
	"context"

	"auroxa/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Reviews is the MongoDB-backed review store.
type Reviews struct {
	collection *mongo.Collection
}

// NewReviews creates a review store on the given database.
func NewReviews(db *mongo.Database) *Reviews {
	return &Reviews{collection: db.Collection("reviews")}
}

// Insert persists a new review.
func (s *Reviews) Insert(ctx context.Context, review *models.Review) (*models.Review, error) {
	result, err := s.collection.InsertOne(ctx, review)
	if err != nil {
		return nil, err
	}
	review.ID = result.InsertedID.(primitive.ObjectID)
	return review, nil
}

// Find returns reviews, optionally narrowed to a product, newest first.
// limit is clamped to 100.
func (s *Reviews) Find(ctx context.Context, productID *primitive.ObjectID, limit, skip int64) ([]models.Review, error) {
	query := bson.M{}
	if productID != nil {
		query["productId"] = *productID
	}
	if limit <= 0 || limit > 100 {
		limit = 100
	}

	opts := options.Find().
		SetSort(bson.M{"createdAt": -1}).
		SetSkip(skip).
		SetLimit(limit)
	cursor, err := s.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// ProductRating is the per-product review aggregate written back onto the
// product record.
type ProductRating struct {
	Count   int     `bson:"count"`
	Average float64 `bson:"avg"`
}

// RatingForProduct aggregates review count and average rating for a product.
func (s *Reviews) RatingForProduct(ctx context.Context, productID primitive.ObjectID) (*ProductRating, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"productId": productID}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$productId",
			"count": bson.M{"$sum": 1},
			"avg":   bson.M{"$avg": "$rating"},
		}}},
	}
	cursor, err := s.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	rating := &ProductRating{}
	if cursor.Next(ctx) {
		if err := cursor.Decode(rating); err != nil {
			return nil, err
		}
	}
	return rating, nil
}

// ReviewStats summarizes the whole review collection.
type ReviewStats struct {
	TotalReviews  int     `bson:"totalReviews"`
	AverageRating float64 `bson:"averageRating"`
}

// Stats aggregates review totals for the statistics page.
func (s *Reviews) Stats(ctx context.Context) (*ReviewStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":           nil,
			"totalReviews":  bson.M{"$sum": 1},
			"averageRating": bson.M{"$avg": "$rating"},
		}}},
	}
	cursor, err := s.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	stats := &ReviewStats{}
	if cursor.Next(ctx) {
		if err := cursor.Decode(stats); err != nil {
			return nil, err
		}
	}
	return stats, nil
}

// RecentTopRated returns the newest reviews rated 4 or higher.
func (s *Reviews) RecentTopRated(ctx context.Context, limit int64) ([]models.Review, error) {
	opts := options.Find().
		SetSort(bson.M{"createdAt": -1}).
		SetLimit(limit)
	cursor, err := s.collection.Find(ctx, bson.M{"rating": bson.M{"$gte": 4}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}
