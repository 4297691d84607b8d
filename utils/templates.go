package utils

import (
	"fmt"

	"auroxa/models"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// EmailTemplate is a rendered notification: subject plus HTML body.
type EmailTemplate struct {
	Subject string
	HTML    string
}

var amountPrinter = message.NewPrinter(language.English)

// formatAmount renders a monetary amount with thousands separators, matching
// the storefront's display format.
func formatAmount(v float64) string {
	return amountPrinter.Sprintf("%.0f", v)
}

// StatusEmailTemplate maps (order, target status) to a rendered notification.
// Templates exist only for confirmed, processing, shipped and delivered;
// every other status returns nil.
func StatusEmailTemplate(status models.OrderStatus, order *models.Order, baseURL string) *EmailTemplate {
	switch status {
	case models.StatusConfirmed:
		return confirmedTemplate(order, baseURL)
	case models.StatusProcessing:
		return processingTemplate(order, baseURL)
	case models.StatusShipped:
		return shippedTemplate(order)
	case models.StatusDelivered:
		return deliveredTemplate(order, baseURL)
	default:
		return nil
	}
}

func confirmedTemplate(order *models.Order, baseURL string) *EmailTemplate {
	return &EmailTemplate{
		Subject: fmt.Sprintf("Order Confirmed - %s | Auroxa", order.OrderNumber),
		HTML: fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Order Confirmed</title></head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
  <div style="background: linear-gradient(135deg, #667eea 0%%, #764ba2 100%%); padding: 30px; text-align: center; border-radius: 10px 10px 0 0;">
    <h1 style="color: white; margin: 0; font-size: 28px;">Order Confirmed!</h1>
  </div>
  <div style="background: #f8f9fa; padding: 30px; border-radius: 0 0 10px 10px;">
    <p style="font-size: 18px;">Dear <strong>%s</strong>,</p>
    <p style="font-size: 16px; color: #28a745; font-weight: bold;">Great news! Your order has been confirmed and is now being processed!</p>
    <div style="background: white; padding: 25px; border-radius: 8px; margin: 25px 0; border-left: 4px solid #28a745;">
      <h3 style="margin-top: 0;">Order Details</h3>
      <table style="width: 100%%; border-collapse: collapse;">
        <tr><td style="padding: 8px 0; font-weight: bold;">Order Number:</td><td style="padding: 8px 0;">%s</td></tr>
        <tr><td style="padding: 8px 0; font-weight: bold;">Order Date:</td><td style="padding: 8px 0;">%s</td></tr>
        <tr><td style="padding: 8px 0; font-weight: bold;">Total Amount:</td><td style="padding: 8px 0; color: #e74c3c; font-weight: bold;">$%s</td></tr>
        <tr><td style="padding: 8px 0; font-weight: bold;">Status:</td><td style="padding: 8px 0; color: #28a745; font-weight: bold;">Confirmed</td></tr>
      </table>
    </div>
    <div style="background: #e3f2fd; padding: 20px; border-radius: 8px; margin: 25px 0;">
      <h4 style="color: #1976d2; margin-top: 0;">What's Next?</h4>
      <ul style="padding-left: 20px;">
        <li>Our team is preparing your items for shipment</li>
        <li>Getting ready for shipment (7-14 days delivery)</li>
        <li>We'll keep you updated via email at every step</li>
      </ul>
    </div>
    <div style="text-align: center; margin: 30px 0;">
      <a href="%s/my-orders" style="background: #667eea; color: white; padding: 15px 30px; text-decoration: none; border-radius: 25px; font-weight: bold; display: inline-block;">View Order Details</a>
    </div>
    <p style="font-size: 16px;">Thank you for choosing <strong>Auroxa</strong>!</p>
    <hr style="border: none; border-top: 1px solid #eee; margin: 30px 0;">
    <p style="font-size: 14px; color: #666;">Best regards,<br><strong>The Auroxa Team</strong><br>support@auroxa.com</p>
  </div>
</body>
</html>`,
			order.ShippingAddress.FullName,
			order.OrderNumber,
			order.CreatedAt.Format("January 2, 2006"),
			formatAmount(order.Total),
			baseURL,
		),
	}
}

func processingTemplate(order *models.Order, baseURL string) *EmailTemplate {
	return &EmailTemplate{
		Subject: fmt.Sprintf("Order Processing - %s | Auroxa", order.OrderNumber),
		HTML: fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Order Processing</title></head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
  <div style="background: linear-gradient(135deg, #8b5cf6 0%%, #667eea 100%%); padding: 30px; text-align: center; border-radius: 10px 10px 0 0;">
    <h1 style="color: white; margin: 0; font-size: 28px;">Order Processing!</h1>
  </div>
  <div style="background: #f8f9fa; padding: 30px; border-radius: 0 0 10px 10px;">
    <p style="font-size: 18px;">Dear <strong>%s</strong>,</p>
    <p style="font-size: 16px; color: #8b5cf6; font-weight: bold;">Your order is now being processed by our fulfillment team!</p>
    <div style="background: white; padding: 25px; border-radius: 8px; margin: 25px 0; border-left: 4px solid #8b5cf6;">
      <h3 style="margin-top: 0;">Order Details</h3>
      <table style="width: 100%%; border-collapse: collapse;">
        <tr><td style="padding: 8px 0; font-weight: bold;">Order Number:</td><td style="padding: 8px 0;">%s</td></tr>
        <tr><td style="padding: 8px 0; font-weight: bold;">Status:</td><td style="padding: 8px 0; color: #8b5cf6; font-weight: bold;">Processing</td></tr>
        <tr><td style="padding: 8px 0; font-weight: bold;">Total Amount:</td><td style="padding: 8px 0; color: #e74c3c; font-weight: bold;">$%s</td></tr>
      </table>
    </div>
    <div style="background: #f3e5f5; padding: 20px; border-radius: 8px; margin: 25px 0;">
      <h4 style="color: #8b5cf6; margin-top: 0;">Current Status</h4>
      <ul style="padding-left: 20px;">
        <li>Items are being picked from our warehouse</li>
        <li>Quality check in progress</li>
        <li>Preparing for secure packaging</li>
        <li>Getting ready for shipment (7-14 days delivery)</li>
      </ul>
    </div>
    <div style="text-align: center; margin: 30px 0;">
      <a href="%s/track-order" style="background: #8b5cf6; color: white; padding: 15px 30px; text-decoration: none; border-radius: 25px; font-weight: bold; display: inline-block;">Track Your Order</a>
    </div>
    <p style="font-size: 16px;">You'll receive tracking information once your order is shipped!</p>
    <hr style="border: none; border-top: 1px solid #eee; margin: 30px 0;">
    <p style="font-size: 14px; color: #666;">Best regards,<br><strong>The Auroxa Team</strong></p>
  </div>
</body>
</html>`,
			order.ShippingAddress.FullName,
			order.OrderNumber,
			formatAmount(order.Total),
			baseURL,
		),
	}
}

func shippedTemplate(order *models.Order) *EmailTemplate {
	trackingID := "N/A"
	courierName := "Standard Delivery"
	trackingBlock := `<div style="background: #fff4e6; padding: 20px; border-radius: 8px; margin: 25px 0; text-align: center;">
      <h4 style="color: #f97316; margin-top: 0;">Tracking Details</h4>
      <p style="margin: 10px 0;">Your package is being prepared for shipment.</p>
      <p style="color: #666; font-size: 14px;">Tracking information will be available soon!</p>
    </div>`

	if order.ShippingDetails != nil {
		if order.ShippingDetails.TrackingID != "" {
			trackingID = order.ShippingDetails.TrackingID
		}
		if order.ShippingDetails.CourierName != "" {
			courierName = order.ShippingDetails.CourierName
		}
		if order.ShippingDetails.TrackingURL != "" {
			trackingBlock = fmt.Sprintf(`<div style="text-align: center; margin: 30px 0;">
      <a href="%s" style="background: #f97316; color: white; padding: 15px 30px; text-decoration: none; border-radius: 25px; font-weight: bold; display: inline-block;">Track Your Package</a>
    </div>`, order.ShippingDetails.TrackingURL)
		}
	}

	bodyTrackingID := "Processing..."
	if trackingID != "N/A" {
		bodyTrackingID = trackingID
	}

	return &EmailTemplate{
		Subject: fmt.Sprintf("Order Shipped - %s | Track: %s", order.OrderNumber, trackingID),
		HTML: fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Order Shipped</title></head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
  <div style="background: linear-gradient(135deg, #f97316 0%%, #ea580c 100%%); padding: 30px; text-align: center; border-radius: 10px 10px 0 0;">
    <h1 style="color: white; margin: 0; font-size: 28px;">Order Shipped!</h1>
  </div>
  <div style="background: #f8f9fa; padding: 30px; border-radius: 0 0 10px 10px;">
    <p style="font-size: 18px;">Dear <strong>%s</strong>,</p>
    <p style="font-size: 16px; color: #f97316; font-weight: bold;">Great news! Your order has been shipped and is on its way to you!</p>
    <div style="background: white; padding: 25px; border-radius: 8px; margin: 25px 0; border-left: 4px solid #f97316;">
      <h3 style="margin-top: 0;">Tracking Information</h3>
      <table style="width: 100%%; border-collapse: collapse;">
        <tr><td style="padding: 8px 0; font-weight: bold;">Order Number:</td><td style="padding: 8px 0;">%s</td></tr>
        <tr><td style="padding: 8px 0; font-weight: bold;">Tracking ID:</td><td style="padding: 8px 0; color: #f97316; font-weight: bold; font-size: 18px;">%s</td></tr>
        <tr><td style="padding: 8px 0; font-weight: bold;">Courier Company:</td><td style="padding: 8px 0;">%s</td></tr>
        <tr><td style="padding: 8px 0; font-weight: bold;">Expected Delivery:</td><td style="padding: 8px 0; color: #28a745; font-weight: bold;">%s</td></tr>
        <tr><td style="padding: 8px 0; font-weight: bold;">Status:</td><td style="padding: 8px 0; color: #f97316; font-weight: bold;">Shipped</td></tr>
      </table>
    </div>
    %s
    <div style="background: #fff4e6; padding: 20px; border-radius: 8px; margin: 25px 0;">
      <h4 style="color: #f97316; margin-top: 0;">Delivery Instructions</h4>
      <ul style="padding-left: 20px;">
        <li>You may receive SMS updates from %s</li>
        <li>Courier may call before delivery</li>
        <li>Please ensure someone is available to receive the package</li>
        <li>Check items immediately upon delivery</li>
      </ul>
    </div>
    <hr style="border: none; border-top: 1px solid #eee; margin: 30px 0;">
    <p style="font-size: 14px; color: #666;">Best regards,<br><strong>The Auroxa Team</strong></p>
  </div>
</body>
</html>`,
			order.ShippingAddress.FullName,
			order.OrderNumber,
			bodyTrackingID,
			courierName,
			models.EstimatedDelivery,
			trackingBlock,
			courierName,
		),
	}
}

func deliveredTemplate(order *models.Order, baseURL string) *EmailTemplate {
	return &EmailTemplate{
		Subject: fmt.Sprintf("Order Delivered - %s | Auroxa", order.OrderNumber),
		HTML: fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Order Delivered</title></head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
  <div style="background: linear-gradient(135deg, #22c55e 0%%, #16a34a 100%%); padding: 30px; text-align: center; border-radius: 10px 10px 0 0;">
    <h1 style="color: white; margin: 0; font-size: 28px;">Order Delivered!</h1>
  </div>
  <div style="background: #f8f9fa; padding: 30px; border-radius: 0 0 10px 10px;">
    <p style="font-size: 18px;">Dear <strong>%s</strong>,</p>
    <p style="font-size: 16px; color: #22c55e; font-weight: bold;">Congratulations! Your order has been successfully delivered!</p>
    <div style="background: white; padding: 25px; border-radius: 8px; margin: 25px 0; border-left: 4px solid #22c55e;">
      <h3 style="margin-top: 0;">Delivery Confirmation</h3>
      <table style="width: 100%%; border-collapse: collapse;">
        <tr><td style="padding: 8px 0; font-weight: bold;">Order Number:</td><td style="padding: 8px 0;">%s</td></tr>
        <tr><td style="padding: 8px 0; font-weight: bold;">Delivered On:</td><td style="padding: 8px 0; color: #22c55e; font-weight: bold;">%s</td></tr>
        <tr><td style="padding: 8px 0; font-weight: bold;">Total Amount:</td><td style="padding: 8px 0; color: #e74c3c; font-weight: bold;">$%s</td></tr>
        <tr><td style="padding: 8px 0; font-weight: bold;">Status:</td><td style="padding: 8px 0; color: #22c55e; font-weight: bold;">Delivered</td></tr>
      </table>
    </div>
    <div style="background: #f0fdf4; padding: 20px; border-radius: 8px; margin: 25px 0;">
      <h4 style="color: #22c55e; margin-top: 0;">We Hope You Love Your Purchase!</h4>
      <ul style="padding-left: 20px;">
        <li>Please check your items carefully</li>
        <li>Contact us immediately if you have any issues</li>
        <li>Don't forget to rate your experience</li>
      </ul>
    </div>
    <div style="text-align: center; margin: 30px 0;">
      <a href="%s/contact-us" style="background: #22c55e; color: white; padding: 15px 30px; text-decoration: none; border-radius: 25px; font-weight: bold; display: inline-block; margin: 5px;">Rate Experience</a>
      <a href="%s" style="background: #667eea; color: white; padding: 15px 30px; text-decoration: none; border-radius: 25px; font-weight: bold; display: inline-block; margin: 5px;">Shop Again</a>
    </div>
    <p style="font-size: 16px;">Thank you for choosing <strong>Auroxa</strong>! We look forward to serving you again!</p>
    <hr style="border: none; border-top: 1px solid #eee; margin: 30px 0;">
    <p style="font-size: 14px; color: #666;">Best regards,<br><strong>The Auroxa Team</strong></p>
  </div>
</body>
</html>`,
			order.ShippingAddress.FullName,
			order.OrderNumber,
			order.UpdatedAt.Format("January 2, 2006"),
			formatAmount(order.Total),
			baseURL,
			baseURL,
		),
	}
}
