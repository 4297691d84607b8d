package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"auroxa/middleware"
	"auroxa/models"
	"auroxa/services"
	"auroxa/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReviewController handles product-review requests.
type ReviewController struct {
	reviews *services.Reviews
}

// NewReviewController creates a new ReviewController.
func NewReviewController(reviews *services.Reviews) *ReviewController {
	return &ReviewController{reviews: reviews}
}

// CreateReview submits a product review and updates the product's rolling
// rating.
func (rc *ReviewController) CreateReview(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.UserFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var body struct {
		ProductID  string `json:"productId"`
		Rating     int    `json:"rating"`
		Comment    string `json:"comment"`
		UserAvatar string `json:"userAvatar"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	productID, err := primitive.ObjectIDFromHex(body.ProductID)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	review := models.Review{
		ProductID:  productID,
		UserID:     claims.UserID,
		UserName:   claims.Name,
		UserEmail:  claims.Email,
		UserAvatar: body.UserAvatar,
		Rating:     body.Rating,
		Comment:    body.Comment,
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	saved, err := rc.reviews.Create(ctx, &review)
	if err != nil {
		handleError(w, err, "review")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    saved,
	})
}

// GetReviews lists reviews, optionally narrowed to one product.
func (rc *ReviewController) GetReviews(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	limit, _ := strconv.ParseInt(query.Get("limit"), 10, 64)
	skip, _ := strconv.ParseInt(query.Get("skip"), 10, 64)
	if limit <= 0 {
		limit = 50
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	reviews, err := rc.reviews.List(ctx, query.Get("productId"), limit, skip)
	if err != nil {
		handleError(w, err, "review")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    reviews,
	})
}
