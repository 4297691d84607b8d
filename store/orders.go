package store

import (
	"context"
	"errors"
	"time"

	"auroxa/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Orders is the MongoDB-backed order store.
type Orders struct {
	collection *mongo.Collection
}

// NewOrders creates an order store on the given database.
func NewOrders(db *mongo.Database) *Orders {
	return &Orders{collection: db.Collection("orders")}
}

// Insert persists a new order and returns it with its generated id.
func (s *Orders) Insert(ctx context.Context, order *models.Order) (*models.Order, error) {
	result, err := s.collection.InsertOne(ctx, order)
	if err != nil {
		return nil, err
	}
	order.ID = result.InsertedID.(primitive.ObjectID)
	return order, nil
}

// FindByID fetches one order by its ObjectID hex string.
func (s *Orders) FindByID(ctx context.Context, id string) (*models.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var order models.Order
	err = s.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// FindByNumber fetches one order by its human-facing order number.
func (s *Orders) FindByNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	var order models.Order
	err := s.collection.FindOne(ctx, bson.M{"orderNumber": orderNumber}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// FindAll returns every order, newest first.
func (s *Orders) FindAll(ctx context.Context) ([]models.Order, error) {
	return s.find(ctx, bson.M{})
}

// FindByUser returns the orders placed by the given identity-provider user id,
// matched against the snapshotted user.id, newest first.
func (s *Orders) FindByUser(ctx context.Context, userID string) ([]models.Order, error) {
	return s.find(ctx, bson.M{"user.id": userID})
}

func (s *Orders) find(ctx context.Context, filter bson.M) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// SetStatus persists a status change with a fresh updatedAt and returns the
// updated order.
func (s *Orders) SetStatus(ctx context.Context, id string, status models.OrderStatus, at time.Time) (*models.Order, error) {
	update := bson.M{"$set": bson.M{
		"status":    status,
		"updatedAt": at,
	}}
	return s.findOneAndUpdate(ctx, id, update)
}

// SetShipped moves an order to shipped and attaches its shipping details in a
// single update, so there is no window where status is shipped but the
// details are absent.
func (s *Orders) SetShipped(ctx context.Context, id string, details models.ShippingDetails, at time.Time) (*models.Order, error) {
	update := bson.M{"$set": bson.M{
		"status":          models.StatusShipped,
		"shippingDetails": details,
		"updatedAt":       at,
	}}
	return s.findOneAndUpdate(ctx, id, update)
}

func (s *Orders) findOneAndUpdate(ctx context.Context, id string, update bson.M) (*models.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var order models.Order
	err = s.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// OrderStats summarizes the full order collection for the statistics page.
type OrderStats struct {
	TotalOrders     int `bson:"totalOrders"`
	DeliveredOrders int `bson:"deliveredOrders"`
	ProductsSold    int `bson:"productsSold"`
}

// Stats aggregates order totals: overall count, delivered count and the sum
// of all line-item quantities.
func (s *Orders) Stats(ctx context.Context) (*OrderStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":         nil,
			"totalOrders": bson.M{"$sum": 1},
			"deliveredOrders": bson.M{"$sum": bson.M{
				"$cond": bson.A{bson.M{"$eq": bson.A{"$status", models.StatusDelivered}}, 1, 0},
			}},
		}}},
	}
	cursor, err := s.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	stats := &OrderStats{}
	if cursor.Next(ctx) {
		if err := cursor.Decode(stats); err != nil {
			return nil, err
		}
	}

	soldPipeline := mongo.Pipeline{
		{{Key: "$unwind", Value: "$items"}},
		{{Key: "$group", Value: bson.M{
			"_id":          nil,
			"productsSold": bson.M{"$sum": "$items.quantity"},
		}}},
	}
	soldCursor, err := s.collection.Aggregate(ctx, soldPipeline)
	if err != nil {
		return nil, err
	}
	defer soldCursor.Close(ctx)

	if soldCursor.Next(ctx) {
		var sold struct {
			ProductsSold int `bson:"productsSold"`
		}
		if err := soldCursor.Decode(&sold); err != nil {
			return nil, err
		}
		stats.ProductsSold = sold.ProductsSold
	}

	return stats, nil
}
