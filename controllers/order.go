package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"auroxa/middleware"
	"auroxa/models"
	"auroxa/services"
	"auroxa/utils"

	"github.com/gorilla/mux"
)

// OrderController handles order-related requests.
type OrderController struct {
	lifecycle *services.OrderLifecycle
}

// NewOrderController creates a new OrderController.
func NewOrderController(lifecycle *services.OrderLifecycle) *OrderController {
	return &OrderController{lifecycle: lifecycle}
}

func requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), 10*time.Second)
}

// CreateOrder places a new order with status pending.
func (oc *OrderController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.UserFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var input services.CreateOrderInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// the purchaser snapshot comes from the verified token; the payload may
	// refine name/email but never the id
	input.User.ID = claims.UserID
	if input.User.Name == "" {
		input.User.Name = claims.Name
	}
	if input.User.Email == "" {
		input.User.Email = claims.Email
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	order, err := oc.lifecycle.Create(ctx, &input)
	if err != nil {
		handleError(w, err, "order")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"message":     "Order placed successfully",
		"orderId":     order.ID.Hex(),
		"orderNumber": order.OrderNumber,
	})
}

// GetOrders retrieves every order for the admin console.
func (oc *OrderController) GetOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	orders, err := oc.lifecycle.List(ctx)
	if err != nil {
		handleError(w, err, "order")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"orders":  orders,
	})
}

// GetActiveOrders retrieves the admin working set: delivered orders older
// than the retention window are filtered out at read time.
func (oc *OrderController) GetActiveOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	orders, err := oc.lifecycle.ListActive(ctx)
	if err != nil {
		handleError(w, err, "order")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"orders":  orders,
	})
}

// GetOrderCounts returns the per-status breakdown of the active set.
func (oc *OrderController) GetOrderCounts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	counts, err := oc.lifecycle.Counts(ctx)
	if err != nil {
		handleError(w, err, "order")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"counts":  counts,
	})
}

// GetOrder fetches one order by id.
func (oc *OrderController) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	order, err := oc.lifecycle.Get(ctx, mux.Vars(r)["id"])
	if err != nil {
		handleError(w, err, "order")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"order":   order,
	})
}

// GetOrderByNumber looks an order up by its human-facing order number, used
// for customer-facing tracking.
func (oc *OrderController) GetOrderByNumber(w http.ResponseWriter, r *http.Request) {
	orderNumber := r.URL.Query().Get("orderNumber")
	if orderNumber == "" {
		utils.WriteError(w, http.StatusBadRequest, "Order number is required")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	order, err := oc.lifecycle.GetByNumber(ctx, orderNumber)
	if err != nil {
		handleError(w, err, "order")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"order":   order,
	})
}

// GetMyOrders retrieves the authenticated user's orders.
func (oc *OrderController) GetMyOrders(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.UserFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	orders, err := oc.lifecycle.ListForUser(ctx, claims.UserID)
	if err != nil {
		handleError(w, err, "order")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"orders":  orders,
	})
}

// UpdateOrderStatus transitions an order along the lifecycle state machine.
// The status write and the notification dispatch are independent outcomes:
// emailSent reports the dispatch result without affecting the committed
// transition.
func (oc *OrderController) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status models.OrderStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	order, notify, err := oc.lifecycle.Transition(ctx, mux.Vars(r)["id"], body.Status)
	if err != nil {
		handleError(w, err, "order")
		return
	}

	response := map[string]interface{}{
		"success": true,
		"message": "Order status updated successfully",
		"order":   order,
	}
	if notify.Attempted {
		response["emailSent"] = notify.Sent
		if notify.Err != nil {
			response["emailError"] = notify.Err.Error()
		}
	}
	utils.WriteJSON(w, http.StatusOK, response)
}

// ShipOrder captures shipping details and moves the order to shipped in one
// update, then reports the shipped-notification outcome.
func (oc *OrderController) ShipOrder(w http.ResponseWriter, r *http.Request) {
	var input services.ShipInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	order, notify, err := oc.lifecycle.Ship(ctx, mux.Vars(r)["id"], &input)
	if err != nil {
		handleError(w, err, "order")
		return
	}

	response := map[string]interface{}{
		"success": true,
		"message": "Order shipped successfully",
		"order":   order,
	}
	if notify.Attempted {
		response["emailSent"] = notify.Sent
		if notify.Err != nil {
			response["emailError"] = notify.Err.Error()
		}
	}
	utils.WriteJSON(w, http.StatusOK, response)
}

// SendNotification dispatches a status email on demand. The body carries
// either an orderId to load, or a full orderData snapshot (used right after
// shipping so the email embeds the fresh tracking fields).
func (oc *OrderController) SendNotification(w http.ResponseWriter, r *http.Request) {
	var body struct {
		OrderID   string             `json:"orderId"`
		Status    models.OrderStatus `json:"status"`
		OrderData *models.Order      `json:"orderData"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	var messageID string
	var err error
	var recipient string

	if body.OrderData != nil {
		recipient = body.OrderData.User.Email
		messageID, err = oc.lifecycle.SendStatusEmail(ctx, body.OrderData, body.Status)
	} else {
		order, findErr := oc.lifecycle.Get(ctx, body.OrderID)
		if findErr != nil {
			handleError(w, findErr, "order")
			return
		}
		recipient = order.User.Email
		messageID, err = oc.lifecycle.SendStatusEmail(ctx, order, body.Status)
	}

	if err != nil {
		var validationErr *models.ValidationError
		if errors.As(err, &validationErr) {
			utils.WriteError(w, http.StatusBadRequest, validationErr.Message)
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "Failed to send email",
			"error":   err.Error(),
		})
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"message":   fmt.Sprintf("Email sent successfully to %s", recipient),
		"emailSent": true,
		"messageId": messageID,
	})
}

// GetOrderSummary renders the plain-text fulfillment hand-off block.
func (oc *OrderController) GetOrderSummary(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	order, err := oc.lifecycle.Get(ctx, mux.Vars(r)["id"])
	if err != nil {
		handleError(w, err, "order")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(services.FormatOrderSummary(order)))
}
