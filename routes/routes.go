package routes

import (
	"net/http"

	"auroxa/controllers"
	"auroxa/middleware"

	"github.com/gorilla/mux"
)

// Controllers bundles every controller registered on the router.
type Controllers struct {
	Health   *controllers.HealthController
	Orders   *controllers.OrderController
	Products *controllers.ProductController
	Contacts *controllers.ContactController
	Reviews  *controllers.ReviewController
	Stats    *controllers.StatsController
}

// Register sets up all the routes for the application. jwtSecret verifies
// identity-provider bearer tokens.
func Register(router *mux.Router, c Controllers, jwtSecret []byte) {
	auth := middleware.Auth(jwtSecret)

	// Public routes
	router.HandleFunc("/health", c.Health.Health).Methods(http.MethodGet)
	router.HandleFunc("/statistics", c.Stats.GetStatistics).Methods(http.MethodGet)
	router.HandleFunc("/products", c.Products.GetProducts).Methods(http.MethodGet)
	router.HandleFunc("/products/names", c.Products.GetProductNames).Methods(http.MethodGet)
	router.HandleFunc("/products/{id}", c.Products.GetProductByID).Methods(http.MethodGet)
	router.HandleFunc("/reviews", c.Reviews.GetReviews).Methods(http.MethodGet)
	// order tracking by human-facing order number is public
	router.HandleFunc("/orders/by-number", c.Orders.GetOrderByNumber).Methods(http.MethodGet)

	// Authenticated customer routes
	authed := router.PathPrefix("/").Subrouter()
	authed.Use(auth)
	authed.HandleFunc("/orders", c.Orders.CreateOrder).Methods(http.MethodPost)
	authed.HandleFunc("/my-orders", c.Orders.GetMyOrders).Methods(http.MethodGet)
	authed.HandleFunc("/contact", c.Contacts.CreateMessage).Methods(http.MethodPost)
	authed.HandleFunc("/reviews", c.Reviews.CreateReview).Methods(http.MethodPost)

	// Admin routes
	admin := router.PathPrefix("/").Subrouter()
	admin.Use(auth)
	admin.Use(middleware.Admin)
	admin.HandleFunc("/orders", c.Orders.GetOrders).Methods(http.MethodGet)
	admin.HandleFunc("/orders/active", c.Orders.GetActiveOrders).Methods(http.MethodGet)
	admin.HandleFunc("/orders/counts", c.Orders.GetOrderCounts).Methods(http.MethodGet)
	admin.HandleFunc("/orders/{id}", c.Orders.GetOrder).Methods(http.MethodGet)
	admin.HandleFunc("/orders/{id}/status", c.Orders.UpdateOrderStatus).Methods(http.MethodPatch)
	admin.HandleFunc("/orders/{id}/ship", c.Orders.ShipOrder).Methods(http.MethodPatch)
	admin.HandleFunc("/orders/{id}/summary", c.Orders.GetOrderSummary).Methods(http.MethodGet)
	admin.HandleFunc("/notifications/send", c.Orders.SendNotification).Methods(http.MethodPost)

	admin.HandleFunc("/products", c.Products.CreateProduct).Methods(http.MethodPost)
	admin.HandleFunc("/products/{id}", c.Products.UpdateProduct).Methods(http.MethodPut)
	admin.HandleFunc("/products/{id}", c.Products.DeleteProduct).Methods(http.MethodDelete)

	admin.HandleFunc("/contact", c.Contacts.GetMessages).Methods(http.MethodGet)
	admin.HandleFunc("/contact/status", c.Contacts.MarkMessageRead).Methods(http.MethodPatch)
	admin.HandleFunc("/contact/{id}", c.Contacts.DeleteMessage).Methods(http.MethodDelete)
}
