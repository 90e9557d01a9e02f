package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultWebhookTimeout = 10 * time.Second

// Webhook posts events as JSON.
type Webhook struct {
	client *resty.Client
	url    string
}

type webhookPayload struct {
	Event
	Message string    `json:"text"`
	SentAt  time.Time `json:"sentAt"`
}

func NewWebhook(url string, timeout time.Duration) *Webhook {
	if timeout <= 0 {
		timeout = defaultWebhookTimeout
	}
	c := resty.New().
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)
	return &Webhook{client: c, url: url}
}

func (w *Webhook) Notify(ctx context.Context, e Event) error {
	resp, err := w.client.R().
		SetContext(ctx).
		SetBody(webhookPayload{Event: e, Message: e.Text(), SentAt: time.Now().UTC()}).
		Post(w.url)
	if err != nil {
		return fmt.Errorf("webhook post: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("webhook post: status %d: %s", resp.StatusCode(), resp.String())
	}
	return nil
}
