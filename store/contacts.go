package store

import (
	"context"

	"auroxa/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Contacts is the MongoDB-backed contact-message store.
type Contacts struct {
	collection *mongo.Collection
}

// NewContacts creates a contact-message store on the given database.
func NewContacts(db *mongo.Database) *Contacts {
	return &Contacts{collection: db.Collection("contact_messages")}
}

// Insert persists a new contact message.
func (s *Contacts) Insert(ctx context.Context, message *models.ContactMessage) (*models.ContactMessage, error) {
	result, err := s.collection.InsertOne(ctx, message)
	if err != nil {
		return nil, err
	}
	message.ID = result.InsertedID.(primitive.ObjectID)
	return message, nil
}

// FindAll returns every contact message, newest first.
func (s *Contacts) FindAll(ctx context.Context) ([]models.ContactMessage, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := s.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var messages []models.ContactMessage
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// MarkRead flips a message to the read state.
func (s *Contacts) MarkRead(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}
	result, err := s.collection.UpdateOne(ctx, bson.M{"_id": oid},
		bson.M{"$set": bson.M{"status": models.ContactRead}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a contact message permanently.
func (s *Contacts) Delete(ctx context.Context, id string) error {
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
