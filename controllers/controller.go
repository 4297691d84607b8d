package controllers

import (
	"errors"
	"net/http"

	"auroxa/models"
	"auroxa/store"
	"auroxa/utils"
)

// handleError maps service and store errors onto the response envelope:
// validation errors become 400, missing documents 404, everything else 500.
func handleError(w http.ResponseWriter, err error, resource string) {
	var validationErr *models.ValidationError
	switch {
	case errors.As(err, &validationErr):
		utils.WriteError(w, http.StatusBadRequest, validationErr.Message)
	case errors.Is(err, store.ErrInvalidID):
		utils.WriteError(w, http.StatusBadRequest, "Invalid "+resource+" ID")
	case errors.Is(err, store.ErrNotFound):
		utils.WriteError(w, http.StatusNotFound, resource+" not found")
	default:
		utils.WriteError(w, http.StatusInternalServerError, "Failed to process "+resource+" request")
	}
}
