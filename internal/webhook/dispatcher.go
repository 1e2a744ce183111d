package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DispatchResult reports delivery of a single event. Failures are
// values, not errors: the caller decides whether to degrade or retry.
// The dispatcher itself never retries.
type DispatchResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Dispatcher posts events to a single webhook endpoint as JSON.
type Dispatcher struct {
	url    string
	client *http.Client
	log    zerolog.Logger
}

// NewDispatcher creates a dispatcher for the given endpoint URL.
func NewDispatcher(url string, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		url: url,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

// Send serializes the event and POSTs it. Every payload value is a
// string on the wire; the envelope adds event_type, delivery_id and
// sent_at. Any non-2xx status counts as a failed delivery.
func (d *Dispatcher) Send(ctx context.Context, event Event) DispatchResult {
	body := event.payload()
	body["event_type"] = event.EventType()
	body["delivery_id"] = uuid.NewString()
	body["sent_at"] = time.Now().UTC().Format(time.RFC3339)

	data, err := json.Marshal(body)
	if err != nil {
		return DispatchResult{Error: fmt.Sprintf("marshal payload: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(data))
	if err != nil {
		return DispatchResult{Error: fmt.Sprintf("build request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		d.log.Error().Err(err).Str("event_type", event.EventType()).Msg("Webhook delivery failed")
		return DispatchResult{Error: fmt.Sprintf("post webhook: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		d.log.Warn().
			Str("event_type", event.EventType()).
			Int("status", resp.StatusCode).
			Msg("Webhook endpoint rejected event")
		return DispatchResult{Error: fmt.Sprintf("webhook returned status %d", resp.StatusCode)}
	}

	d.log.Info().
		Str("event_type", event.EventType()).
		Str("delivery_id", body["delivery_id"]).
		Msg("Webhook event delivered")
	return DispatchResult{Success: true}
}
