package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"auroxa/middleware"
	"auroxa/models"
	"auroxa/store"
	"auroxa/utils"

	"github.com/gorilla/mux"
)

// ContactController handles contact-message requests.
type ContactController struct {
	contacts *store.Contacts
}

// NewContactController creates a new ContactController.
func NewContactController(contacts *store.Contacts) *ContactController {
	return &ContactController{contacts: contacts}
}

// CreateMessage submits a contact-form message.
func (cc *ContactController) CreateMessage(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.UserFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var message models.ContactMessage
	if err := json.NewDecoder(r.Body).Decode(&message); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := message.Validate(); err != nil {
		handleError(w, err, "contact message")
		return
	}

	message.UserID = claims.UserID
	message.Status = models.ContactUnread
	message.CreatedAt = time.Now()

	ctx, cancel := requestContext(r)
	defer cancel()

	if _, err := cc.contacts.Insert(ctx, &message); err != nil {
		handleError(w, err, "contact message")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Message sent successfully",
	})
}

// GetMessages lists all contact messages, newest first (admin only).
func (cc *ContactController) GetMessages(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	messages, err := cc.contacts.FindAll(ctx)
	if err != nil {
		handleError(w, err, "contact message")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    messages,
	})
}

// MarkMessageRead flips a message to the read state (admin only).
func (cc *ContactController) MarkMessageRead(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.ID == "" {
		utils.WriteError(w, http.StatusBadRequest, "ID is required")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	if err := cc.contacts.MarkRead(ctx, body.ID); err != nil {
		handleError(w, err, "contact message")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Message marked as read",
	})
}

// DeleteMessage removes a contact message (admin only).
func (cc *ContactController) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	if err := cc.contacts.Delete(ctx, mux.Vars(r)["id"]); err != nil {
		handleError(w, err, "contact message")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}
