package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"tvhshrink/internal/config"
)

const userAgent = "tvhshrink/0.1.0"

// Service defines the notification surface exposed to the pipeline. Both
// calls are best effort: the pipeline logs failures and moves on.
type Service interface {
	NotifyRunComplete(ctx context.Context, title, finalPath string) error
	NotifyRunFailed(ctx context.Context, title, stage string, runErr error) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
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

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
}

func (n *ntfyService) NotifyRunComplete(ctx context.Context, title, finalPath string) error {
	title = strings.TrimSpace(title)
	finalPath = strings.TrimSpace(finalPath)
	message := fmt.Sprintf("✅ Transcode complete: %s", title)
	if finalPath != "" {
		message = fmt.Sprintf("%s\nFile: %s", message, finalPath)
	}
	data := payload{
		title:   "tvhshrink - Complete",
		message: message,
		tags:    []string{"tvhshrink", "transcode", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyRunFailed(ctx context.Context, title, stage string, runErr error) error {
	var builder strings.Builder
	builder.WriteString("❌ Failed")
	if stage = strings.TrimSpace(stage); stage != "" {
		builder.WriteString(" at ")
		builder.WriteString(stage)
	}
	if title = strings.TrimSpace(title); title != "" {
		builder.WriteString(": ")
		builder.WriteString(title)
	}
	builder.WriteString(": ")
	if runErr != nil {
		builder.WriteString(strings.TrimSpace(runErr.Error()))
	} else {
		builder.WriteString("unknown")
	}

	data := payload{
		title:    "tvhshrink - Error",
		message:  builder.String(),
		tags:     []string{"tvhshrink", "error", "alert"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

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

type noopService struct{}

func (noopService) NotifyRunComplete(context.Context, string, string) error      { return nil }
func (noopService) NotifyRunFailed(context.Context, string, string, error) error { return nil }
