package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"boxoffice/internal/config"
)

const userAgent = "boxoffice/0.1"

// Event names a notification kind.
type Event string

const (
	EventReportCompleted Event = "report_completed"
	EventReportFailed    Event = "report_failed"
	EventTest            Event = "test"
)

// Payload carries event fields. Keys used per event:
//   - report_completed: runID, year, artifacts, manifest
//   - report_failed: runID, error
type Payload map[string]any

// Service publishes events.
type Service interface {
	Publish(ctx context.Context, event Event, payload Payload) error
}

// NewService builds an ntfy-backed service, or a noop one when no topic is set.
func NewService(cfg *config.Config) Service {
	if cfg == nil {
		return noopService{}
	}
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}
	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ntfyService{
		endpoint: topic,
		client:   &http.Client{Timeout: timeout},
	}
}

type message struct {
	title    string
	body     string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
}

func (n *ntfyService) Publish(ctx context.Context, event Event, payload Payload) error {
	msg, ok := format(event, payload)
	if !ok {
		return nil
	}
	return n.send(ctx, msg)
}

func format(event Event, payload Payload) (message, bool) {
	switch event {
	case EventReportCompleted:
		body := fmt.Sprintf("📊 Report %v ready: %v artifacts", text(payload, "year"), text(payload, "artifacts"))
		if manifest := text(payload, "manifest"); manifest != "" {
			body += "\nManifest: " + manifest
		}
		return message{
			title: "Boxoffice - Report Ready",
			body:  body,
			tags:  []string{"boxoffice", "report", "completed"},
		}, true
	case EventReportFailed:
		return message{
			title:    "Boxoffice - Report Failed",
			body:     "❌ Report " + text(payload, "runID") + " failed: " + text(payload, "error"),
			tags:     []string{"boxoffice", "error", "alert"},
			priority: "high",
		}, true
	case EventTest:
		return message{
			title: "Boxoffice - Test",
			body:  "🔔 Test notification from boxoffice",
			tags:  []string{"boxoffice", "test"},
		}, true
	default:
		return message{}, false
	}
}

func text(payload Payload, key string) string {
	value, ok := payload[key]
	if !ok || value == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(value))
}

func (n *ntfyService) send(ctx context.Context, msg message) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(msg.body))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if msg.title != "" {
		req.Header.Set("Title", msg.title)
	}
	if len(msg.tags) > 0 {
		req.Header.Set("Tags", strings.Join(msg.tags, ","))
	}
	if msg.priority != "" {
		req.Header.Set("Priority", msg.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) Publish(context.Context, Event, Payload) error { return nil }
