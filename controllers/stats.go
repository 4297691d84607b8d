package controllers

import (
	"math"
	"net/http"

	"auroxa/store"
	"auroxa/utils"
)

// StatsController serves aggregate storefront statistics.
type StatsController struct {
	orders  *store.Orders
	reviews *store.Reviews
}

// NewStatsController creates a new StatsController.
func NewStatsController(orders *store.Orders, reviews *store.Reviews) *StatsController {
	return &StatsController{orders: orders, reviews: reviews}
}

// GetStatistics aggregates review and order totals for the storefront's
// social-proof section.
func (sc *StatsController) GetStatistics(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	reviewStats, err := sc.reviews.Stats(ctx)
	if err != nil {
		handleError(w, err, "statistics")
		return
	}

	orderStats, err := sc.orders.Stats(ctx)
	if err != nil {
		handleError(w, err, "statistics")
		return
	}

	recentReviews, err := sc.reviews.RecentTopRated(ctx, 5)
	if err != nil {
		handleError(w, err, "statistics")
		return
	}

	// defaults shown before any orders or reviews exist
	satisfactionRate := 99
	if orderStats.TotalOrders > 0 {
		satisfactionRate = int(math.Round(float64(orderStats.DeliveredOrders) / float64(orderStats.TotalOrders) * 100))
	}
	averageRating := 4.9
	if reviewStats.TotalReviews > 0 {
		averageRating = math.Round(reviewStats.AverageRating*10) / 10
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data": map[string]interface{}{
			"happyCustomers":   reviewStats.TotalReviews,
			"averageRating":    averageRating,
			"productsSold":     orderStats.ProductsSold,
			"satisfactionRate": satisfactionRate,
			"recentReviews":    recentReviews,
		},
	})
}
