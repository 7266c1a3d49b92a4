package email

import (
	"context"
	"errors"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridConfig holds SendGrid configuration
type SendGridConfig struct {
	APIKey    string
	FromEmail string
	FromName  string
}

// Message is a rendered email
type Message struct {
	To          string
	ToName      string
	Subject     string
	HTMLContent string
	TextContent string
}

// Sender delivers a rendered email
type Sender interface {
	Send(ctx context.Context, msg *Message) error
}

// SendGridClient sends emails via the SendGrid API
type SendGridClient struct {
	client *sendgrid.Client
	from   *mail.Email
}

var errNoRecipient = errors.New("email has no recipient")

// NewSendGridClient creates a SendGrid sender
func NewSendGridClient(config SendGridConfig) *SendGridClient {
	return &SendGridClient{
		client: sendgrid.NewSendClient(config.APIKey),
		from:   mail.NewEmail(config.FromName, config.FromEmail),
	}
}

// Send sends an email via SendGrid
func (c *SendGridClient) Send(ctx context.Context, msg *Message) error {
	if msg.To == "" {
		return errNoRecipient
	}

	text := msg.TextContent
	if text == "" {
		text = msg.Subject
	}
	message := mail.NewSingleEmail(c.from, msg.Subject, mail.NewEmail(msg.ToName, msg.To), text, msg.HTMLContent)

	resp, err := c.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid returned status %d", resp.StatusCode)
	}
	return nil
}
