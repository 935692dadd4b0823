package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"maku/internal/config"
)

const userAgent = "maku/0.1.0"

// Service defines the notification surface exposed to run orchestration.
type Service interface {
	NotifyRunStarted(ctx context.Context, seriesName string, episodes int) error
	NotifyEpisodeSkipped(ctx context.Context, episodeName, reason string) error
	NotifyRunCompleted(ctx context.Context, processed, skipped int, duration time.Duration) error
	NotifyError(ctx context.Context, err error, label string) error
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
		settings: cfg.Notifications,
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
	settings config.Notifications
}

func (n *ntfyService) NotifyRunStarted(ctx context.Context, seriesName string, episodes int) error {
	if !n.settings.RunStarted {
		return nil
	}
	seriesName = strings.TrimSpace(seriesName)
	data := payload{
		title:   "maku - Run Started",
		message: fmt.Sprintf("Analyzing %s: %d episodes", seriesName, episodes),
		tags:    []string{"maku", "run", "started"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyEpisodeSkipped(ctx context.Context, episodeName, reason string) error {
	if !n.settings.EpisodeSkipped {
		return nil
	}
	episodeName = strings.TrimSpace(episodeName)
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = "unknown"
	}
	data := payload{
		title:   "maku - Episode Skipped",
		message: fmt.Sprintf("Skipped %s: %s", episodeName, reason),
		tags:    []string{"maku", "episode", "skipped"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyRunCompleted(ctx context.Context, processed, skipped int, duration time.Duration) error {
	if !n.settings.RunCompleted {
		return nil
	}
	duration = duration.Round(time.Second)
	if duration < 0 {
		duration = 0
	}

	var title, message string
	if skipped == 0 {
		title = "maku - Run Complete"
		message = fmt.Sprintf("Run complete: %d episodes processed in %s", processed, duration)
	} else {
		title = "maku - Run Complete (with skips)"
		message = fmt.Sprintf("Run complete: %d processed, %d skipped in %s", processed, skipped, duration)
	}

	data := payload{
		title:   title,
		message: message,
		tags:    []string{"maku", "run", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyError(ctx context.Context, err error, contextLabel string) error {
	if !n.settings.Errors {
		return nil
	}
	var builder strings.Builder
	builder.WriteString("Error")
	if contextLabel = strings.TrimSpace(contextLabel); contextLabel != "" {
		builder.WriteString(" with ")
		builder.WriteString(contextLabel)
	}
	builder.WriteString(": ")
	if err != nil {
		builder.WriteString(strings.TrimSpace(err.Error()))
	} else {
		builder.WriteString("unknown")
	}

	data := payload{
		title:    "maku - Error",
		message:  builder.String(),
		tags:     []string{"maku", "error", "alert"},
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

func (noopService) NotifyRunStarted(context.Context, string, int) error               { return nil }
func (noopService) NotifyEpisodeSkipped(context.Context, string, string) error        { return nil }
func (noopService) NotifyRunCompleted(context.Context, int, int, time.Duration) error { return nil }
func (noopService) NotifyError(context.Context, error, string) error                  { return nil }
