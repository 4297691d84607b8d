package services

import (
	"fmt"
	"strings"

	"auroxa/models"
)

// FormatOrderSummary renders a plain-text hand-off block for a fulfillment
// or courier partner. Pure formatting; no persistence effect.
func FormatOrderSummary(order *models.Order) string {
	var b strings.Builder

	b.WriteString("NEW ORDER DETAILS\n")
	b.WriteString("===================\n\n")

	b.WriteString("ORDER INFO:\n")
	fmt.Fprintf(&b, "Order Number: %s\n", order.OrderNumber)
	fmt.Fprintf(&b, "Order Date: %s\n", order.CreatedAt.Format("January 2, 2006"))
	fmt.Fprintf(&b, "Status: %s\n", strings.ToUpper(string(order.Status)))
	fmt.Fprintf(&b, "Payment: %s\n\n", strings.ToUpper(order.PaymentMethod))

	b.WriteString("CUSTOMER INFO:\n")
	fmt.Fprintf(&b, "Name: %s\n", order.ShippingAddress.FullName)
	fmt.Fprintf(&b, "Email: %s\n", order.User.Email)
	fmt.Fprintf(&b, "Phone: %s\n\n", order.ShippingAddress.Phone)

	b.WriteString("DELIVERY ADDRESS:\n")
	fmt.Fprintf(&b, "%s\n", order.ShippingAddress.FullName)
	fmt.Fprintf(&b, "%s\n", order.ShippingAddress.Address)
	fmt.Fprintf(&b, "%s, %s %s\n", order.ShippingAddress.City, order.ShippingAddress.State, order.ShippingAddress.ZipCode)
	fmt.Fprintf(&b, "%s\n\n", order.ShippingAddress.Country)

	b.WriteString("ITEMS TO DELIVER:\n")
	for i, item := range order.Items {
		fmt.Fprintf(&b, "%d. %s\n", i+1, item.Title)
		fmt.Fprintf(&b, "   Qty: %d | Price: $%.2f\n", item.Quantity, item.Price)
		fmt.Fprintf(&b, "   Total: $%.2f\n", item.Price*float64(item.Quantity))
		if i < len(order.Items)-1 {
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")

	b.WriteString("PAYMENT SUMMARY:\n")
	fmt.Fprintf(&b, "Total Amount: $%.2f\n", order.Total)
	fmt.Fprintf(&b, "Payment Method: %s\n\n", strings.ToUpper(order.PaymentMethod))

	b.WriteString("SPECIAL INSTRUCTIONS:\n")
	if order.SpecialInstructions != "" {
		b.WriteString(order.SpecialInstructions + "\n")
	} else {
		b.WriteString("No special instructions\n")
	}

	b.WriteString("\n===================\n")
	return b.String()
}
