// Package notify delivers one-shot session notices. Delivery is best
// effort: callers log failures and never treat them as application
// errors, so a broken notifier can never abort session logging.
package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const userAgent = "terapi/0.1.0"

// Notifier is the notification surface used by the session controller.
type Notifier interface {
	SessionCompleted(ctx context.Context, therapyLabel string, durationSeconds int) error
	SessionStopped(ctx context.Context, therapyLabel string, elapsedSeconds int) error
}

// NewNotifier builds a notifier backed by an ntfy topic when configured.
// When topic is empty (or notifications are disabled in config), a noop
// implementation is returned.
func NewNotifier(topic string, timeout time.Duration) Notifier {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return noopNotifier{}
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ntfyNotifier{
		endpoint: topic,
		client:   &http.Client{Timeout: timeout},
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyNotifier struct {
	endpoint string
	client   *http.Client
}

func (n *ntfyNotifier) SessionCompleted(ctx context.Context, therapyLabel string, durationSeconds int) error {
	data := payload{
		title:    "Terapi - Session Complete",
		message:  fmt.Sprintf("%s finished: %d seconds delivered", therapyLabel, durationSeconds),
		tags:     []string{"terapi", "session", "completed"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyNotifier) SessionStopped(ctx context.Context, therapyLabel string, elapsedSeconds int) error {
	data := payload{
		title:   "Terapi - Session Stopped",
		message: fmt.Sprintf("%s stopped after %d seconds", therapyLabel, elapsedSeconds),
		tags:    []string{"terapi", "session", "stopped"},
	}
	return n.send(ctx, data)
}

func (n *ntfyNotifier) send(ctx context.Context, data payload) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
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

type noopNotifier struct{}

func (noopNotifier) SessionCompleted(context.Context, string, int) error { return nil }
func (noopNotifier) SessionStopped(context.Context, string, int) error   { return nil }
