package notify

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"carbontrack/internal/report"
)

// WebhookPayload is the JSON body posted to the webhook.
type WebhookPayload struct {
	To         string            `json:"to"`
	Subject    string            `json:"subject"`
	Body       string            `json:"body"`
	Attachment WebhookAttachment `json:"attachment"`
}

// WebhookAttachment carries the document base64-encoded.
type WebhookAttachment struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Content     string `json:"content"`
}

// WebhookDispatcher posts reports to an HTTP endpoint that performs delivery.
type WebhookDispatcher struct {
	url    string
	client *http.Client
}

// NewWebhookDispatcher creates a WebhookDispatcher posting to url.
func NewWebhookDispatcher(url string) *WebhookDispatcher {
	return &WebhookDispatcher{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (d *WebhookDispatcher) Channel() string { return "webhook" }

func (d *WebhookDispatcher) Send(ctx context.Context, to string, doc *report.Document) error {
	body, err := json.Marshal(WebhookPayload{
		To:      to,
		Subject: reportSubject,
		Body:    reportBody,
		Attachment: WebhookAttachment{
			Filename:    doc.Filename,
			ContentType: doc.ContentType,
			Content:     base64.StdEncoding.EncodeToString(doc.Content),
		},
	})
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook responded with status %d", resp.StatusCode)
	}
	return nil
}
