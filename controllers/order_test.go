package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"auroxa/middleware"
	"auroxa/models"
	"auroxa/services"
	"auroxa/store"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type memOrderStore struct {
	orders map[string]*models.Order
}

func newMemOrderStore() *memOrderStore {
	return &memOrderStore{orders: make(map[string]*models.Order)}
}

func (m *memOrderStore) Insert(ctx context.Context, order *models.Order) (*models.Order, error) {
	order.ID = primitive.NewObjectID()
	copied := *order
	m.orders[order.ID.Hex()] = &copied
	return order, nil
}

func (m *memOrderStore) FindByID(ctx context.Context, id string) (*models.Order, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, store.ErrInvalidID
	}
	order, ok := m.orders[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *order
	return &copied, nil
}

func (m *memOrderStore) FindByNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	for _, order := range m.orders {
		if order.OrderNumber == orderNumber {
			copied := *order
			return &copied, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memOrderStore) FindAll(ctx context.Context) ([]models.Order, error) {
	orders := make([]models.Order, 0, len(m.orders))
	for _, order := range m.orders {
		orders = append(orders, *order)
	}
	return orders, nil
}

func (m *memOrderStore) FindByUser(ctx context.Context, userID string) ([]models.Order, error) {
	var orders []models.Order
	for _, order := range m.orders {
		if order.User.ID == userID {
			orders = append(orders, *order)
		}
	}
	return orders, nil
}

func (m *memOrderStore) SetStatus(ctx context.Context, id string, status models.OrderStatus, at time.Time) (*models.Order, error) {
	order, ok := m.orders[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	order.Status = status
	order.UpdatedAt = at
	copied := *order
	return &copied, nil
}

func (m *memOrderStore) SetShipped(ctx context.Context, id string, details models.ShippingDetails, at time.Time) (*models.Order, error) {
	order, ok := m.orders[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	order.Status = models.StatusShipped
	order.ShippingDetails = &details
	order.UpdatedAt = at
	copied := *order
	return &copied, nil
}

type memMailer struct {
	sent int
}

func (m *memMailer) Send(to, subject, html string) (string, error) {
	m.sent++
	return "msg-test", nil
}

func newOrderRouter(orders *memOrderStore, mailer *memMailer) *mux.Router {
	lifecycle := services.NewOrderLifecycle(orders, mailer, "https://auroxa.example.com", zerolog.Nop())
	oc := NewOrderController(lifecycle)

	router := mux.NewRouter()
	router.HandleFunc("/orders", oc.CreateOrder).Methods(http.MethodPost)
	router.HandleFunc("/orders", oc.GetOrders).Methods(http.MethodGet)
	router.HandleFunc("/orders/by-number", oc.GetOrderByNumber).Methods(http.MethodGet)
	router.HandleFunc("/orders/{id}", oc.GetOrder).Methods(http.MethodGet)
	router.HandleFunc("/orders/{id}/status", oc.UpdateOrderStatus).Methods(http.MethodPatch)
	router.HandleFunc("/orders/{id}/ship", oc.ShipOrder).Methods(http.MethodPatch)
	router.HandleFunc("/orders/{id}/summary", oc.GetOrderSummary).Methods(http.MethodGet)
	router.HandleFunc("/notifications/send", oc.SendNotification).Methods(http.MethodPost)
	return router
}

func seedControllerOrder(t *testing.T, orders *memOrderStore, status models.OrderStatus) *models.Order {
	t.Helper()
	order := &models.Order{
		OrderNumber: models.NewOrderNumber(),
		User:        models.OrderUser{ID: "user_1", Name: "Ayesha Khan", Email: "ayesha@example.com"},
		Items: []models.OrderItem{
			{ProductID: "p1", Title: "Linen Kurta", Quantity: 1, Price: 100},
		},
		ShippingAddress: models.ShippingAddress{
			FullName: "Ayesha Khan", Phone: "+92 300 1234567", Address: "14 Mall Road",
			City: "Lahore", State: "Punjab", ZipCode: "54000", Country: "Pakistan",
		},
		PaymentMethod: models.PaymentCOD,
		Subtotal:      100,
		Total:         100,
		Status:        status,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	saved, err := orders.Insert(context.Background(), order)
	require.NoError(t, err)
	return saved
}

func withClaims(r *http.Request, claims *middleware.Claims) *http.Request {
	ctx := context.WithValue(r.Context(), middleware.UserContextKey, claims)
	return r.WithContext(ctx)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestCreateOrderHandler(t *testing.T) {
	orders := newMemOrderStore()
	router := newOrderRouter(orders, &memMailer{})

	payload := `{
		"items": [{"productId": "p1", "title": "Linen Kurta", "quantity": 1, "price": 100}],
		"shippingAddress": {
			"fullName": "Ayesha Khan", "phone": "+92 300 1234567", "address": "14 Mall Road",
			"city": "Lahore", "state": "Punjab", "zipCode": "54000", "country": "Pakistan"
		},
		"subtotal": 100,
		"total": 100
	}`

	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(payload))
	req = withClaims(req, &middleware.Claims{UserID: "user_1", Name: "Ayesha Khan", Email: "ayesha@example.com"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["orderId"])
	assert.Regexp(t, `^ORD-\d{13}-[A-Z0-9]{9}$`, body["orderNumber"])

	stored, err := orders.FindByID(context.Background(), body["orderId"].(string))
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, stored.Status)
	assert.Equal(t, "user_1", stored.User.ID)
	assert.Equal(t, "ayesha@example.com", stored.User.Email)
}

func TestCreateOrderHandlerUnauthorized(t *testing.T) {
	router := newOrderRouter(newMemOrderStore(), &memMailer{})

	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateOrderHandlerIgnoresSpoofedUserID(t *testing.T) {
	orders := newMemOrderStore()
	router := newOrderRouter(orders, &memMailer{})

	payload := `{
		"user": {"id": "someone-else", "name": "Mallory", "email": "mallory@example.com"},
		"items": [{"productId": "p1", "title": "Linen Kurta", "quantity": 1, "price": 100}],
		"shippingAddress": {
			"fullName": "Ayesha Khan", "phone": "+92 300 1234567", "address": "14 Mall Road",
			"city": "Lahore", "state": "Punjab", "zipCode": "54000", "country": "Pakistan"
		},
		"subtotal": 100,
		"total": 100
	}`

	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(payload))
	req = withClaims(req, &middleware.Claims{UserID: "user_1", Name: "Ayesha Khan", Email: "ayesha@example.com"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	stored, err := orders.FindByID(context.Background(), body["orderId"].(string))
	require.NoError(t, err)
	assert.Equal(t, "user_1", stored.User.ID)
}

func TestUpdateOrderStatusHandler(t *testing.T) {
	orders := newMemOrderStore()
	mailer := &memMailer{}
	router := newOrderRouter(orders, mailer)
	order := seedControllerOrder(t, orders, models.StatusPending)

	req := httptest.NewRequest(http.MethodPatch, "/orders/"+order.ID.Hex()+"/status",
		strings.NewReader(`{"status": "confirmed"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, true, body["emailSent"])
	assert.Equal(t, 1, mailer.sent)

	stored, err := orders.FindByID(context.Background(), order.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, stored.Status)
}

func TestUpdateOrderStatusHandlerInvalidTransition(t *testing.T) {
	orders := newMemOrderStore()
	mailer := &memMailer{}
	router := newOrderRouter(orders, mailer)
	order := seedControllerOrder(t, orders, models.StatusShipped)

	req := httptest.NewRequest(http.MethodPatch, "/orders/"+order.ID.Hex()+"/status",
		strings.NewReader(`{"status": "pending"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, mailer.sent)

	stored, err := orders.FindByID(context.Background(), order.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, models.StatusShipped, stored.Status)
}

func TestUpdateOrderStatusHandlerUnknownOrder(t *testing.T) {
	router := newOrderRouter(newMemOrderStore(), &memMailer{})

	req := httptest.NewRequest(http.MethodPatch, "/orders/"+primitive.NewObjectID().Hex()+"/status",
		strings.NewReader(`{"status": "confirmed"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestShipOrderHandler(t *testing.T) {
	orders := newMemOrderStore()
	mailer := &memMailer{}
	router := newOrderRouter(orders, mailer)
	order := seedControllerOrder(t, orders, models.StatusProcessing)

	payload := `{"trackingId": "TRK123", "courierCompany": "tcs", "courierName": "TCS Express"}`
	req := httptest.NewRequest(http.MethodPatch, "/orders/"+order.ID.Hex()+"/ship",
		strings.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	assert.Equal(t, "Order shipped successfully", body["message"])
	assert.Equal(t, 1, mailer.sent)

	stored, err := orders.FindByID(context.Background(), order.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, models.StatusShipped, stored.Status)
	require.NotNil(t, stored.ShippingDetails)
	assert.Equal(t, "TRK123", stored.ShippingDetails.TrackingID)
}

func TestShipOrderHandlerMissingFields(t *testing.T) {
	orders := newMemOrderStore()
	router := newOrderRouter(orders, &memMailer{})
	order := seedControllerOrder(t, orders, models.StatusProcessing)

	req := httptest.NewRequest(http.MethodPatch, "/orders/"+order.ID.Hex()+"/ship",
		strings.NewReader(`{"trackingId": "TRK123"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	stored, err := orders.FindByID(context.Background(), order.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, models.StatusProcessing, stored.Status)
	assert.Nil(t, stored.ShippingDetails)
}

func TestGetOrderByNumberHandler(t *testing.T) {
	orders := newMemOrderStore()
	router := newOrderRouter(orders, &memMailer{})
	order := seedControllerOrder(t, orders, models.StatusConfirmed)

	req := httptest.NewRequest(http.MethodGet, "/orders/by-number?orderNumber="+order.OrderNumber, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
}

func TestGetOrderByNumberHandlerMissingParam(t *testing.T) {
	router := newOrderRouter(newMemOrderStore(), &memMailer{})

	req := httptest.NewRequest(http.MethodGet, "/orders/by-number", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetOrderByNumberHandlerNotFound(t *testing.T) {
	router := newOrderRouter(newMemOrderStore(), &memMailer{})

	req := httptest.NewRequest(http.MethodGet, "/orders/by-number?orderNumber=ORD-0000000000000-XXXXXXXXX", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetOrderHandlerInvalidID(t *testing.T) {
	router := newOrderRouter(newMemOrderStore(), &memMailer{})

	req := httptest.NewRequest(http.MethodGet, "/orders/not-a-hex-id", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Invalid order ID", body["message"])
}

func TestSendNotificationHandlerByID(t *testing.T) {
	orders := newMemOrderStore()
	mailer := &memMailer{}
	router := newOrderRouter(orders, mailer)
	order := seedControllerOrder(t, orders, models.StatusConfirmed)

	payload, err := json.Marshal(map[string]interface{}{
		"orderId": order.ID.Hex(),
		"status":  "confirmed",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/notifications/send", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["emailSent"])
	assert.Contains(t, body["message"], "ayesha@example.com")
	assert.Equal(t, 1, mailer.sent)
}

func TestSendNotificationHandlerInvalidStatus(t *testing.T) {
	orders := newMemOrderStore()
	mailer := &memMailer{}
	router := newOrderRouter(orders, mailer)
	order := seedControllerOrder(t, orders, models.StatusPending)

	payload, err := json.Marshal(map[string]interface{}{
		"orderId": order.ID.Hex(),
		"status":  "pending",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/notifications/send", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, mailer.sent)
}

func TestSendNotificationHandlerWithOrderData(t *testing.T) {
	orders := newMemOrderStore()
	mailer := &memMailer{}
	router := newOrderRouter(orders, mailer)

	snapshot := seedControllerOrder(t, orders, models.StatusShipped)
	snapshot.ShippingDetails = &models.ShippingDetails{
		TrackingID:        "TRK777",
		CourierCompany:    "tcs",
		CourierName:       "TCS Express",
		EstimatedDelivery: models.EstimatedDelivery,
	}

	payload, err := json.Marshal(map[string]interface{}{
		"orderData": snapshot,
		"status":    "shipped",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/notifications/send", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 1, mailer.sent)
}

func TestGetOrderSummaryHandler(t *testing.T) {
	orders := newMemOrderStore()
	router := newOrderRouter(orders, &memMailer{})
	order := seedControllerOrder(t, orders, models.StatusConfirmed)

	req := httptest.NewRequest(http.MethodGet, "/orders/"+order.ID.Hex()+"/summary", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
	assert.Contains(t, rec.Body.String(), order.OrderNumber)
	assert.Contains(t, rec.Body.String(), "ITEMS TO DELIVER")
}
