package reports

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// GeneratePayload is the body posted to the report-generation webhook.
type GeneratePayload struct {
	UserID        string  `json:"user_id"`
	Date          string  `json:"date"`
	Scheduled     bool    `json:"scheduled"`
	ScheduledTime *string `json:"scheduled_time"`
	Timestamp     string  `json:"timestamp"`
}

// Dispatcher posts generate-report commands to the external automation
// webhook. The contract is fire-and-forget: a nil error means the request
// was dispatched and accepted at the network level, not that a report was
// (or will be) produced. The response body is never read.
type Dispatcher struct {
	URL    string
	Client *http.Client
	now    func() time.Time
}

// NewDispatcher builds a Dispatcher for the given webhook URL.
func NewDispatcher(url string) *Dispatcher {
	return &Dispatcher{
		URL:    url,
		Client: &http.Client{Timeout: 15 * time.Second},
		now:    time.Now,
	}
}

// Dispatch sends one generate-report command. No retries on failure.
func (d *Dispatcher) Dispatch(ctx context.Context, userID, date string, scheduled bool, scheduledTime string) error {
	if d == nil || strings.TrimSpace(d.URL) == "" {
		return errors.New("webhook url not configured")
	}

	now := time.Now
	if d.now != nil {
		now = d.now
	}
	payload := GeneratePayload{
		UserID:    userID,
		Date:      date,
		Scheduled: scheduled,
		Timestamp: now().UTC().Format(time.RFC3339),
	}
	if scheduled && strings.TrimSpace(scheduledTime) != "" {
		t := scheduledTime
		payload.ScheduledTime = &t
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	client := d.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("dispatch webhook: %w", err)
	}
	// Outcome is intentionally opaque; discard the body unread.
	resp.Body.Close()
	return nil
}
