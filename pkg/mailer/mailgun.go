package mailer

import (
	"context"
	"fmt"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"
)

const defaultSendTimeout = 10 * time.Second

// Mailgun sends rendered notifications through the Mailgun HTTP API.
type Mailgun struct {
	client  *mg.MailgunImpl
	sender  string
	tag     string
	timeout time.Duration
}

func NewMailgun(domain, apiKey, sender string) *Mailgun {
	return &Mailgun{
		client:  mg.NewMailgun(domain, apiKey),
		sender:  sender,
		tag:     "employee-notification",
		timeout: defaultSendTimeout,
	}
}

// Send delivers one message to a single recipient. An empty html sends text only.
func (m *Mailgun) Send(ctx context.Context, to, subject, text, html string) error {
	msg := m.client.NewMessage(m.sender, subject, text, to)
	if html != "" {
		msg.SetHtml(html)
	}
	if err := msg.AddTag(m.tag); err != nil {
		return fmt.Errorf("mailgun tag: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	if _, _, err := m.client.Send(ctx, msg); err != nil {
		return fmt.Errorf("mailgun send to %s: %w", to, err)
	}
	return nil
}
