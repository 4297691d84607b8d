package utils

import (
	"fmt"

	"auroxa/config"

	"github.com/keighl/postmark"
)

// EmailSender delivers a rendered email and reports the transport message id.
// The lifecycle core depends on this interface so dispatch can be faked in
// tests.
type EmailSender interface {
	Send(toEmail, subject, htmlContent string) (messageID string, err error)
}

// EmailService sends emails through Postmark.
type EmailService struct {
	client *postmark.Client
	sender string
}

// NewEmailService creates a Postmark-backed email service.
func NewEmailService(cfg config.EmailConfig) *EmailService {
	return &EmailService{
		client: postmark.NewClient(cfg.PostmarkToken, ""),
		sender: cfg.Sender,
	}
}

// Send delivers one email and returns the Postmark message id.
func (es *EmailService) Send(toEmail, subject, htmlContent string) (string, error) {
	resp, err := es.client.SendEmail(postmark.Email{
		From:     es.sender,
		To:       toEmail,
		Subject:  subject,
		HtmlBody: htmlContent,
	})
	if err != nil {
		return "", fmt.Errorf("failed to send email: %w", err)
	}
	return resp.MessageID, nil
}
