package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Contact message statuses.
const (
	ContactUnread = "unread"
	ContactRead   = "read"
)

// ContactMessage is a customer enquiry submitted through the contact form.
type ContactMessage struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID    string             `bson:"userId" json:"userId"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Subject   string             `bson:"subject" json:"subject"`
	Message   string             `bson:"message" json:"message"`
	Status    string             `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// Validate checks required contact-message fields.
func (m *ContactMessage) Validate() error {
	if m.Name == "" || m.Email == "" || m.Subject == "" || m.Message == "" {
		return NewValidationError("name, email, subject and message are required")
	}
	return nil
}
