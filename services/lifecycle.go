package services

import (
	"context"
	"fmt"
	"time"

	"auroxa/models"
	"auroxa/utils"

	"github.com/rs/zerolog"
)

// DeliveredRetention is how long a delivered order stays in the active admin
// working set before the read-time filter hides it.
const DeliveredRetention = 7 * 24 * time.Hour

// OrderStore is the persistence contract the lifecycle core depends on.
type OrderStore interface {
	Insert(ctx context.Context, order *models.Order) (*models.Order, error)
	FindByID(ctx context.Context, id string) (*models.Order, error)
	FindByNumber(ctx context.Context, orderNumber string) (*models.Order, error)
	FindAll(ctx context.Context) ([]models.Order, error)
	FindByUser(ctx context.Context, userID string) ([]models.Order, error)
	SetStatus(ctx context.Context, id string, status models.OrderStatus, at time.Time) (*models.Order, error)
	SetShipped(ctx context.Context, id string, details models.ShippingDetails, at time.Time) (*models.Order, error)
}

// NotifyResult reports the outcome of the notification dispatch that follows
// a successful transition. A failed dispatch never rolls back the status
// change; callers surface it as a secondary warning.
type NotifyResult struct {
	Attempted bool
	Sent      bool
	MessageID string
	Err       error
}

// CreateOrderInput is the order-creation payload constructed by the checkout
// flow. Item titles, prices and the purchaser identity are snapshots taken at
// order time.
type CreateOrderInput struct {
	User                models.OrderUser       `json:"user"`
	Items               []models.OrderItem     `json:"items"`
	ShippingAddress     models.ShippingAddress `json:"shippingAddress"`
	PaymentMethod       string                 `json:"paymentMethod"`
	SpecialInstructions string                 `json:"specialInstructions"`
	Subtotal            float64                `json:"subtotal"`
	DeliveryFee         float64                `json:"deliveryFee"`
	Total               float64                `json:"total"`
}

// ShipInput carries the shipping-detail capture for the ship transition.
type ShipInput struct {
	TrackingID     string `json:"trackingId"`
	CourierCompany string `json:"courierCompany"`
	CourierName    string `json:"courierName"`
	TrackingURL    string `json:"trackingUrl"`
}

// OrderCounts is the per-status breakdown of the active working set.
type OrderCounts struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	Confirmed  int `json:"confirmed"`
	Processing int `json:"processing"`
	Shipped    int `json:"shipped"`
	Delivered  int `json:"delivered"`
	Cancelled  int `json:"cancelled"`
}

// OrderLifecycle owns the order state machine: it validates transitions,
// applies status changes, captures shipping details and triggers status
// notifications.
type OrderLifecycle struct {
	orders  OrderStore
	mailer  utils.EmailSender
	baseURL string
	logger  zerolog.Logger
	now     func() time.Time
}

// NewOrderLifecycle creates the lifecycle service.
func NewOrderLifecycle(orders OrderStore, mailer utils.EmailSender, baseURL string, logger zerolog.Logger) *OrderLifecycle {
	return &OrderLifecycle{
		orders:  orders,
		mailer:  mailer,
		baseURL: baseURL,
		logger:  logger.With().Str("service", "orders").Logger(),
		now:     time.Now,
	}
}

// Create validates and persists a new order with status pending and a
// freshly generated order number.
func (s *OrderLifecycle) Create(ctx context.Context, in *CreateOrderInput) (*models.Order, error) {
	if in.User.ID == "" || in.User.Email == "" {
		return nil, models.NewValidationError("user id and email are required")
	}

	paymentMethod := in.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = models.PaymentCOD
	}

	// checkout computes the amounts client-side; derive them from the fee
	// schedule only when the payload omits them
	if in.Total == 0 && in.Subtotal > 0 {
		in.DeliveryFee = models.DeliveryFeeFor(in.Subtotal)
		in.Total = in.Subtotal + in.DeliveryFee
	}

	now := s.now()
	order := &models.Order{
		OrderNumber:         models.NewOrderNumber(),
		User:                in.User,
		Items:               in.Items,
		ShippingAddress:     in.ShippingAddress,
		PaymentMethod:       paymentMethod,
		SpecialInstructions: in.SpecialInstructions,
		Subtotal:            in.Subtotal,
		DeliveryFee:         in.DeliveryFee,
		Total:               in.Total,
		Status:              models.StatusPending,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := order.Validate(); err != nil {
		return nil, err
	}

	saved, err := s.orders.Insert(ctx, order)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("order_number", saved.OrderNumber).
		Int("item_count", len(saved.Items)).
		Msg("order created")
	return saved, nil
}

// Transition moves an order to the target status along the allowed edges and
// dispatches the matching status notification. The status write commits
// before dispatch; a failed dispatch is reported in NotifyResult, never
// rolled back.
func (s *OrderLifecycle) Transition(ctx context.Context, orderID string, target models.OrderStatus) (*models.Order, NotifyResult, error) {
	if !models.ValidStatus(target) {
		return nil, NotifyResult{}, models.NewValidationError(fmt.Sprintf("invalid status: %s", target))
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, NotifyResult{}, err
	}

	if !models.CanTransition(order.Status, target) {
		return nil, NotifyResult{}, models.NewValidationError(
			fmt.Sprintf("cannot transition order from %s to %s", order.Status, target))
	}

	updated, err := s.orders.SetStatus(ctx, orderID, target, s.now())
	if err != nil {
		return nil, NotifyResult{}, err
	}

	s.logger.Info().
		Str("order_number", updated.OrderNumber).
		Str("from", string(order.Status)).
		Str("to", string(target)).
		Msg("order status updated")

	return updated, s.notify(updated, target), nil
}

// Ship moves an order to shipped and attaches its shipping details in a
// single store update, then dispatches the shipped notification using the
// freshly updated snapshot so the email carries the tracking fields.
func (s *OrderLifecycle) Ship(ctx context.Context, orderID string, in *ShipInput) (*models.Order, NotifyResult, error) {
	if in.TrackingID == "" || in.CourierCompany == "" || in.CourierName == "" {
		return nil, NotifyResult{}, models.NewValidationError(
			"tracking ID, courier company, and courier name are required")
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, NotifyResult{}, err
	}

	if !models.CanTransition(order.Status, models.StatusShipped) {
		return nil, NotifyResult{}, models.NewValidationError(
			fmt.Sprintf("cannot transition order from %s to %s", order.Status, models.StatusShipped))
	}

	now := s.now()
	details := models.ShippingDetails{
		TrackingID:        in.TrackingID,
		CourierCompany:    in.CourierCompany,
		CourierName:       in.CourierName,
		TrackingURL:       in.TrackingURL,
		ShippedDate:       now,
		EstimatedDelivery: models.EstimatedDelivery,
	}

	updated, err := s.orders.SetShipped(ctx, orderID, details, now)
	if err != nil {
		return nil, NotifyResult{}, err
	}

	s.logger.Info().
		Str("order_number", updated.OrderNumber).
		Str("tracking_id", in.TrackingID).
		Str("courier", in.CourierName).
		Msg("order shipped")

	return updated, s.notify(updated, models.StatusShipped), nil
}

// notify renders and dispatches the status email for a committed transition.
// pending and cancelled have no template and dispatch nothing.
func (s *OrderLifecycle) notify(order *models.Order, status models.OrderStatus) NotifyResult {
	template := utils.StatusEmailTemplate(status, order, s.baseURL)
	if template == nil {
		return NotifyResult{}
	}

	messageID, err := s.mailer.Send(order.User.Email, template.Subject, template.HTML)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("order_number", order.OrderNumber).
			Str("status", string(status)).
			Str("to", order.User.Email).
			Msg("status email dispatch failed")
		return NotifyResult{Attempted: true, Err: err}
	}

	return NotifyResult{Attempted: true, Sent: true, MessageID: messageID}
}

// SendStatusEmail renders and dispatches a status email on demand (manual
// resend). Only confirmed, processing, shipped and delivered have templates.
func (s *OrderLifecycle) SendStatusEmail(ctx context.Context, order *models.Order, status models.OrderStatus) (string, error) {
	template := utils.StatusEmailTemplate(status, order, s.baseURL)
	if template == nil {
		return "", models.NewValidationError("invalid status for email")
	}
	return s.mailer.Send(order.User.Email, template.Subject, template.HTML)
}

// SendStatusEmailByID loads the order and dispatches its status email.
func (s *OrderLifecycle) SendStatusEmailByID(ctx context.Context, orderID string, status models.OrderStatus) (string, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return "", err
	}
	return s.SendStatusEmail(ctx, order, status)
}

// Get fetches one order by id.
func (s *OrderLifecycle) Get(ctx context.Context, orderID string) (*models.Order, error) {
	return s.orders.FindByID(ctx, orderID)
}

// GetByNumber fetches one order by its human-facing order number.
func (s *OrderLifecycle) GetByNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	return s.orders.FindByNumber(ctx, orderNumber)
}

// List returns every order, newest first.
func (s *OrderLifecycle) List(ctx context.Context) ([]models.Order, error) {
	return s.orders.FindAll(ctx)
}

// ListForUser returns the caller's orders, newest first.
func (s *OrderLifecycle) ListForUser(ctx context.Context, userID string) ([]models.Order, error) {
	return s.orders.FindByUser(ctx, userID)
}

// ListActive returns the admin working set: every non-delivered order plus
// delivered orders younger than the retention window. This is a read-time
// filter evaluated against the current clock; nothing is deleted or archived.
func (s *OrderLifecycle) ListActive(ctx context.Context) ([]models.Order, error) {
	orders, err := s.orders.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	cutoff := s.now().Add(-DeliveredRetention)
	active := make([]models.Order, 0, len(orders))
	for _, order := range orders {
		if order.Status == models.StatusDelivered {
			reference := order.UpdatedAt
			if reference.IsZero() {
				reference = order.CreatedAt
			}
			if !reference.After(cutoff) {
				continue
			}
		}
		active = append(active, order)
	}
	return active, nil
}

// Counts returns the total and per-status breakdown of the active set.
func (s *OrderLifecycle) Counts(ctx context.Context) (*OrderCounts, error) {
	active, err := s.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	counts := &OrderCounts{Total: len(active)}
	for _, order := range active {
		switch order.Status {
		case models.StatusPending:
			counts.Pending++
		case models.StatusConfirmed:
			counts.Confirmed++
		case models.StatusProcessing:
			counts.Processing++
		case models.StatusShipped:
			counts.Shipped++
		case models.StatusDelivered:
			counts.Delivered++
		case models.StatusCancelled:
			counts.Cancelled++
		}
	}
	return counts, nil
}
