// Package notifications posts bot-run completions to externally configured
// webhook URLs so ops channels can watch the scraping bots without polling
// the admin panel.
package notifications

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"fundlens/database"
)

// WebhookManager delivers bot run notifications
type WebhookManager struct {
	urls   []string
	client *http.Client
}

// RunPayload is the JSON body sent to each webhook
type RunPayload struct {
	LogID         string    `json:"log_id"`
	BotName       string    `json:"bot_name"`
	Status        string    `json:"status"`
	ExecutionTime float64   `json:"execution_time"`
	Timestamp     time.Time `json:"timestamp"`
	Result        string    `json:"result,omitempty"`
}

// NewWebhookManager creates a new webhook manager
func NewWebhookManager(urls []string) *WebhookManager {
	return &WebhookManager{
		urls: urls,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// NotifyRun sends the completed run to every configured webhook. Delivery
// is fire-and-forget: a webhook failure is logged, never surfaced to the
// bot run itself.
func (wm *WebhookManager) NotifyRun(entry *database.BotLog) {
	if len(wm.urls) == 0 || entry == nil {
		return
	}

	payload := RunPayload{
		LogID:         entry.ID,
		BotName:       entry.BotName,
		Status:        entry.Status,
		ExecutionTime: entry.ExecutionTime,
		Timestamp:     entry.Timestamp,
		Result:        entry.Result,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("⚠️  Failed to marshal webhook payload: %v", err)
		return
	}

	for _, url := range wm.urls {
		go wm.deliver(url, body)
	}
}

func (wm *WebhookManager) deliver(url string, body []byte) {
	resp, err := wm.client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		log.Printf("⚠️  Webhook delivery to %s failed: %v", url, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		log.Printf("⚠️  Webhook %s responded with status %d", url, resp.StatusCode)
	}
}
