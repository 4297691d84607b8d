package store

import (
	"context"
	"errors"

	"auroxa/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProductFilter narrows a catalog listing.
type ProductFilter struct {
	Category       string
	TargetAudience string
	Featured       bool
	Search         string
}

// Products is the MongoDB-backed product store.
type Products struct {
	collection *mongo.Collection
}

// NewProducts creates a product store on the given database.
func NewProducts(db *mongo.Database) *Products {
	return &Products{collection: db.Collection("products")}
}

// Insert persists a new product and returns it with its generated id.
func (s *Products) Insert(ctx context.Context, product *models.Product) (*models.Product, error) {
	result, err := s.collection.InsertOne(ctx, product)
	if err != nil {
		return nil, err
	}
	product.ID = result.InsertedID.(primitive.ObjectID)
	return product, nil
}

// FindByID fetches one product by its ObjectID hex string.
func (s *Products) FindByID(ctx context.Context, id string) (*models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var product models.Product
	err = s.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// Find returns active products matching the filter, newest first. Documents
// without an isActive field predate the flag and count as active.
func (s *Products) Find(ctx context.Context, filter ProductFilter) ([]models.Product, error) {
	query := bson.M{"$or": bson.A{
		bson.M{"isActive": true},
		bson.M{"isActive": bson.M{"$exists": false}},
	}}

	if filter.Category != "" && filter.Category != "all" {
		query["category"] = filter.Category
	}
	if filter.TargetAudience != "" && filter.TargetAudience != "all" {
		query["targetAudience"] = filter.TargetAudience
	}
	if filter.Featured {
		query["isFeatured"] = true
	}
	// free-text search combines with the isActive clause rather than
	// replacing it
	if filter.Search != "" {
		pattern := primitive.Regex{Pattern: filter.Search, Options: "i"}
		query = bson.M{"$and": bson.A{query, bson.M{"$or": bson.A{
			bson.M{"title": pattern},
			bson.M{"description": pattern},
			bson.M{"tags": bson.M{"$in": bson.A{pattern}}},
		}}}}
	}

	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := s.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Names returns a short id+title listing used by admin pickers.
func (s *Products) Names(ctx context.Context, limit int64) ([]models.Product, error) {
	opts := options.Find().
		SetProjection(bson.M{"title": 1}).
		SetLimit(limit)
	cursor, err := s.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// CountFeatured counts products currently flagged as featured.
func (s *Products) CountFeatured(ctx context.Context) (int64, error) {
	return s.collection.CountDocuments(ctx, bson.M{"isFeatured": true})
}

// Update replaces the mutable fields of a product and returns the updated
// document.
func (s *Products) Update(ctx context.Context, id string, product *models.Product) (*models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	update := bson.M{"$set": bson.M{
		"title":          product.Title,
		"slug":           product.Slug,
		"description":    product.Description,
		"category":       product.Category,
		"targetAudience": product.TargetAudience,
		"image":          product.Image,
		"images":         product.Images,
		"price":          product.Price,
		"discountPrice":  product.DiscountPrice,
		"colors":         product.Colors,
		"sizes":          product.Sizes,
		"tags":           product.Tags,
		"stock":          product.Stock,
		"isFeatured":     product.IsFeatured,
		"isActive":       product.IsActive,
		"updatedAt":      product.UpdatedAt,
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Product
	err = s.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// SetRating writes the denormalized review aggregate onto the product.
func (s *Products) SetRating(ctx context.Context, id primitive.ObjectID, rating float64, reviewCount int) error {
	update := bson.M{"$set": bson.M{
		"rating":      rating,
		"reviewCount": reviewCount,
	}}
	result, err := s.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a product permanently.
func (s *Products) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}
	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
