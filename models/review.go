package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review is a product review. The product title and reviewer identity are
// snapshotted at write time; each review feeds the rolling rating/reviewCount
// on the product record.
type Review struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	ProductID   primitive.ObjectID `bson:"productId" json:"productId"`
	ProductName string             `bson:"productName" json:"productName"`
	UserID      string             `bson:"userId" json:"userId"`
	UserName    string             `bson:"userName" json:"userName"`
	UserEmail   string             `bson:"userEmail" json:"userEmail"`
	UserAvatar  string             `bson:"userAvatar,omitempty" json:"userAvatar,omitempty"`
	Rating      int                `bson:"rating" json:"rating"`
	Comment     string             `bson:"comment" json:"comment"`
	IsVerified  bool               `bson:"isVerified" json:"isVerified"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// Validate checks required review fields.
func (r *Review) Validate() error {
	if r.ProductID.IsZero() {
		return NewValidationError("productId is required")
	}
	if r.UserID == "" {
		return NewValidationError("userId is required")
	}
	if r.UserName == "" {
		return NewValidationError("userName is required")
	}
	if r.Rating < 1 || r.Rating > 5 {
		return NewValidationError("rating must be between 1 and 5")
	}
	if r.Comment == "" {
		return NewValidationError("comment is required")
	}
	return nil
}
