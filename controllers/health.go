package controllers

import (
	"net/http"

	"auroxa/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// HealthController serves the liveness endpoint.
type HealthController struct {
	client *mongo.Client
}

// NewHealthController creates a new HealthController.
func NewHealthController(client *mongo.Client) *HealthController {
	return &HealthController{client: client}
}

// Health reports process liveness and store reachability.
func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	if err := hc.client.Ping(ctx, readpref.Primary()); err != nil {
		utils.WriteJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"success": false,
			"status":  "degraded",
			"error":   err.Error(),
		})
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"status":  "ok",
	})
}
