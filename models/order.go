package models

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusConfirmed  OrderStatus = "confirmed"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

// PaymentMethod values. Only cash on delivery is wired end-to-end;
// card and bank are recorded as labels.
const (
	PaymentCOD  = "cod"
	PaymentCard = "card"
	PaymentBank = "bank"
)

// EstimatedDelivery is the fixed delivery window attached to every shipment.
const EstimatedDelivery = "7-14 business days"

// Delivery fee schedule. Orders at or above the threshold ship free.
const (
	StandardDeliveryFee   = 200
	FreeDeliveryThreshold = 14000
)

// DeliveryFeeFor returns the delivery fee owed for a cart subtotal.
func DeliveryFeeFor(subtotal float64) float64 {
	if subtotal >= FreeDeliveryThreshold {
		return 0
	}
	return StandardDeliveryFee
}

// allStatuses is the closed set of persistable status values.
var allStatuses = map[OrderStatus]bool{
	StatusPending:    true,
	StatusConfirmed:  true,
	StatusProcessing: true,
	StatusShipped:    true,
	StatusDelivered:  true,
	StatusCancelled:  true,
}

// forwardEdges is the allowed forward transition for each state.
// cancelled is handled separately: reachable from any non-terminal state.
var forwardEdges = map[OrderStatus]OrderStatus{
	StatusPending:    StatusConfirmed,
	StatusConfirmed:  StatusProcessing,
	StatusProcessing: StatusShipped,
	StatusShipped:    StatusDelivered,
}

// ValidStatus reports whether s is one of the six enumerated statuses.
func ValidStatus(s OrderStatus) bool {
	return allStatuses[s]
}

// IsTerminal reports whether s admits no further transitions.
func IsTerminal(s OrderStatus) bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransition reports whether from -> to is an allowed edge.
func CanTransition(from, to OrderStatus) bool {
	if !ValidStatus(from) || !ValidStatus(to) {
		return false
	}
	if to == StatusCancelled {
		return !IsTerminal(from)
	}
	return forwardEdges[from] == to
}

// OrderUser is a snapshot of the purchaser at order time. Deliberately
// denormalized so historical orders stay readable if the identity record
// changes.
type OrderUser struct {
	ID    string `bson:"id" json:"id"`
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email" json:"email"`
}

// OrderItem is a line item with title and price snapshotted at order time.
type OrderItem struct {
	ProductID string  `bson:"productId" json:"productId"`
	Title     string  `bson:"title" json:"title"`
	Quantity  int     `bson:"quantity" json:"quantity"`
	Price     float64 `bson:"price" json:"price"`
	Image     string  `bson:"image,omitempty" json:"image,omitempty"`
	Color     string  `bson:"color,omitempty" json:"color,omitempty"`
	Size      string  `bson:"size,omitempty" json:"size,omitempty"`
}

// ShippingAddress is the delivery destination captured at checkout.
type ShippingAddress struct {
	FullName string `bson:"fullName" json:"fullName"`
	Phone    string `bson:"phone" json:"phone"`
	Address  string `bson:"address" json:"address"`
	City     string `bson:"city" json:"city"`
	State    string `bson:"state" json:"state"`
	ZipCode  string `bson:"zipCode" json:"zipCode"`
	Country  string `bson:"country" json:"country"`
}

// ShippingDetails is attached once an order ships. Immutable after that;
// a re-ship is not modeled.
type ShippingDetails struct {
	TrackingID        string    `bson:"trackingId" json:"trackingId"`
	CourierCompany    string    `bson:"courierCompany" json:"courierCompany"`
	CourierName       string    `bson:"courierName" json:"courierName"`
	TrackingURL       string    `bson:"trackingUrl,omitempty" json:"trackingUrl,omitempty"`
	ShippedDate       time.Time `bson:"shippedDate" json:"shippedDate"`
	EstimatedDelivery string    `bson:"estimatedDelivery" json:"estimatedDelivery"`
}

// Order is the central entity of the storefront.
type Order struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	OrderNumber         string             `bson:"orderNumber" json:"orderNumber"`
	User                OrderUser          `bson:"user" json:"user"`
	Items               []OrderItem        `bson:"items" json:"items"`
	ShippingAddress     ShippingAddress    `bson:"shippingAddress" json:"shippingAddress"`
	PaymentMethod       string             `bson:"paymentMethod" json:"paymentMethod"`
	SpecialInstructions string             `bson:"specialInstructions,omitempty" json:"specialInstructions,omitempty"`
	Subtotal            float64            `bson:"subtotal" json:"subtotal"`
	DeliveryFee         float64            `bson:"deliveryFee" json:"deliveryFee"`
	Total               float64            `bson:"total" json:"total"`
	Status              OrderStatus        `bson:"status" json:"status"`
	ShippingDetails     *ShippingDetails   `bson:"shippingDetails,omitempty" json:"shippingDetails,omitempty"`
	CreatedAt           time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time          `bson:"updatedAt" json:"updatedAt"`
}

const orderNumberCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewOrderNumber generates a human-facing order number in the format
// ORD-<unix-millis>-<9-char-uppercase-alphanumeric>. The format is an
// external contract consumed by courier-facing tooling.
func NewOrderNumber() string {
	suffix := make([]byte, 9)
	for i := range suffix {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(orderNumberCharset))))
		if err != nil {
			// crypto/rand never fails on supported platforms
			panic(err)
		}
		suffix[i] = orderNumberCharset[n.Int64()]
	}
	return fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), string(suffix))
}

// Validate checks the creation-time invariants of an order.
func (o *Order) Validate() error {
	if len(o.Items) == 0 {
		return NewValidationError("order must contain at least one item")
	}
	for i, item := range o.Items {
		if item.ProductID == "" {
			return NewValidationError(fmt.Sprintf("item %d: productId is required", i))
		}
		if item.Title == "" {
			return NewValidationError(fmt.Sprintf("item %d: title is required", i))
		}
		if item.Quantity < 1 {
			return NewValidationError(fmt.Sprintf("item %d: quantity must be a positive integer", i))
		}
		if item.Price < 0 {
			return NewValidationError(fmt.Sprintf("item %d: price cannot be negative", i))
		}
	}

	if missing := o.ShippingAddress.missingFields(); len(missing) > 0 {
		return NewValidationError("missing address fields: " + strings.Join(missing, ", "))
	}

	switch o.PaymentMethod {
	case PaymentCOD, PaymentCard, PaymentBank:
	default:
		return NewValidationError("invalid payment method: " + o.PaymentMethod)
	}

	if o.Subtotal < 0 || o.DeliveryFee < 0 || o.Total < 0 {
		return NewValidationError("amounts cannot be negative")
	}
	if o.Total != o.Subtotal+o.DeliveryFee {
		return NewValidationError("total must equal subtotal plus delivery fee")
	}

	return nil
}

func (a *ShippingAddress) missingFields() []string {
	var missing []string
	checks := []struct {
		name  string
		value string
	}{
		{"fullName", a.FullName},
		{"phone", a.Phone},
		{"address", a.Address},
		{"city", a.City},
		{"state", a.State},
		{"zipCode", a.ZipCode},
		{"country", a.Country},
	}
	for _, c := range checks {
		if c.value == "" {
			missing = append(missing, c.name)
		}
	}
	return missing
}
