// Package notify posts celebratory chapter-done messages to a
// user-configured Slack/Discord-style webhook. Delivery is best
// effort: failures are logged and surfaced as a notice, never fatal.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
)

// defaultTimeout bounds a webhook delivery attempt.
const defaultTimeout = 5 * time.Second

// Notifier delivers messages to a single webhook URL.
type Notifier struct {
	url    string
	client *http.Client
}

// New creates a Notifier for the given webhook URL. An empty URL
// yields a disabled notifier whose deliveries are silently skipped.
func New(url string) *Notifier {
	return &Notifier{
		url:    url,
		client: &http.Client{Timeout: defaultTimeout},
	}
}

// Enabled reports whether a webhook URL is configured.
func (n *Notifier) Enabled() bool {
	return n != nil && n.url != ""
}

// payload is the minimal message shape both Slack and Discord-style
// webhooks accept.
type payload struct {
	Text string `json:"text"`
}

// ChapterDone announces that a chapter's status reached Done.
func (n *Notifier) ChapterDone(ctx context.Context, title string) error {
	return n.send(ctx, fmt.Sprintf("Chapter done: %s", title))
}

func (n *Notifier) send(ctx context.Context, text string) error {
	if !n.Enabled() {
		return nil
	}

	body, err := json.Marshal(payload{Text: text})
	if err != nil {
		return fmt.Errorf("encoding webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		log.Warn("webhook delivery failed", "err", err)
		return fmt.Errorf("posting webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Warn("webhook rejected", "status", resp.StatusCode)
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
