package controllers

import (
	"encoding/json"
	"net/http"

	"auroxa/models"
	"auroxa/services"
	"auroxa/store"
	"auroxa/utils"

	"github.com/gorilla/mux"
)

// ProductController handles catalog requests.
type ProductController struct {
	catalog *services.Catalog
}

// NewProductController creates a new ProductController.
func NewProductController(catalog *services.Catalog) *ProductController {
	return &ProductController{catalog: catalog}
}

// CreateProduct adds a new product (admin only).
func (pc *ProductController) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var product models.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	saved, err := pc.catalog.Create(ctx, &product)
	if err != nil {
		handleError(w, err, "product")
		return
	}

	utils.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "Product created successfully",
		"data":    saved,
	})
}

// GetProducts retrieves active products with optional filters: category,
// audience, featured and free-text search.
func (pc *ProductController) GetProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := store.ProductFilter{
		Category:       query.Get("category"),
		TargetAudience: query.Get("audience"),
		Featured:       query.Get("featured") == "true",
		Search:         query.Get("search"),
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	products, err := pc.catalog.List(ctx, filter)
	if err != nil {
		handleError(w, err, "product")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    products,
	})
}

// GetProductNames returns a short id+title listing for admin pickers.
func (pc *ProductController) GetProductNames(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	products, err := pc.catalog.Names(ctx)
	if err != nil {
		handleError(w, err, "product")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    products,
	})
}

// GetProductByID fetches one product.
func (pc *ProductController) GetProductByID(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	product, err := pc.catalog.Get(ctx, mux.Vars(r)["id"])
	if err != nil {
		handleError(w, err, "product")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    product,
	})
}

// UpdateProduct replaces the mutable fields of a product (admin only).
func (pc *ProductController) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var product models.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	updated, err := pc.catalog.Update(ctx, mux.Vars(r)["id"], &product)
	if err != nil {
		handleError(w, err, "product")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Product updated successfully",
		"data":    updated,
	})
}

// DeleteProduct removes a product (admin only). Placed orders keep their own
// snapshots and are unaffected.
func (pc *ProductController) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	if err := pc.catalog.Delete(ctx, mux.Vars(r)["id"]); err != nil {
		handleError(w, err, "product")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Product deleted successfully",
	})
}
