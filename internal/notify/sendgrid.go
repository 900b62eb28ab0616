package notify

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type SendGridClient struct {
	apiKey    string
	fromLabel string
}

func NewSendGridClient(apiKey, fromLabel string) *SendGridClient {
	return &SendGridClient{apiKey: apiKey, fromLabel: fromLabel}
}

func (c *SendGridClient) Send(ctx context.Context, from, to, subject, body string) error {
	if c.apiKey == "" {
		return fmt.Errorf("sendgrid: api key is empty")
	}
	if from == "" || to == "" {
		return fmt.Errorf("sendgrid: from and to are required")
	}

	msg := mail.NewSingleEmail(
		mail.NewEmail(c.fromLabel, from),
		subject,
		mail.NewEmail("", to),
		body,
		fmt.Sprintf("<pre>%s</pre>", body),
	)

	resp, err := sendgrid.NewSendClient(c.apiKey).SendWithContext(ctx, msg)
	if err != nil {
		return fmt.Errorf("sendgrid: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid: status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}
