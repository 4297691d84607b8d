package services

import (
	"testing"
	"time"

	"auroxa/models"

	"github.com/stretchr/testify/assert"
)

func summaryOrder() *models.Order {
	return &models.Order{
		OrderNumber: "ORD-1735000000000-AB12CD34E",
		User:        models.OrderUser{ID: "user_1", Name: "Ayesha Khan", Email: "ayesha@example.com"},
		Items: []models.OrderItem{
			{ProductID: "p1", Title: "Linen Kurta", Quantity: 2, Price: 50},
			{ProductID: "p2", Title: "Silk Scarf", Quantity: 1, Price: 30},
		},
		ShippingAddress: models.ShippingAddress{
			FullName: "Ayesha Khan",
			Phone:    "+92 300 1234567",
			Address:  "14 Mall Road",
			City:     "Lahore",
			State:    "Punjab",
			ZipCode:  "54000",
			Country:  "Pakistan",
		},
		PaymentMethod: models.PaymentCOD,
		Subtotal:      130,
		Total:         130,
		Status:        models.StatusConfirmed,
		CreatedAt:     time.Date(2026, time.March, 5, 12, 0, 0, 0, time.UTC),
	}
}

func TestFormatOrderSummary(t *testing.T) {
	summary := FormatOrderSummary(summaryOrder())

	assert.Contains(t, summary, "ORD-1735000000000-AB12CD34E")
	assert.Contains(t, summary, "March 5, 2026")
	assert.Contains(t, summary, "CONFIRMED")
	assert.Contains(t, summary, "COD")

	assert.Contains(t, summary, "Ayesha Khan")
	assert.Contains(t, summary, "ayesha@example.com")
	assert.Contains(t, summary, "+92 300 1234567")

	assert.Contains(t, summary, "14 Mall Road")
	assert.Contains(t, summary, "Lahore, Punjab 54000")
	assert.Contains(t, summary, "Pakistan")

	assert.Contains(t, summary, "1. Linen Kurta")
	assert.Contains(t, summary, "Qty: 2 | Price: $50.00")
	assert.Contains(t, summary, "Total: $100.00")
	assert.Contains(t, summary, "2. Silk Scarf")

	assert.Contains(t, summary, "Total Amount: $130.00")
}

func TestFormatOrderSummarySpecialInstructions(t *testing.T) {
	order := summaryOrder()
	assert.Contains(t, FormatOrderSummary(order), "No special instructions")

	order.SpecialInstructions = "Leave at the gate"
	summary := FormatOrderSummary(order)
	assert.Contains(t, summary, "Leave at the gate")
	assert.NotContains(t, summary, "No special instructions")
}
