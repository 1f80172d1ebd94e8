package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"vidgrab/internal/config"
)

const userAgent = "vidgrab"

// Job describes the download a notification is about.
type Job struct {
	DownloadID string
	URL        string
}

func (j Job) label() string {
	if url := strings.TrimSpace(j.URL); url != "" {
		return url
	}
	return j.DownloadID
}

// Service publishes job outcomes.
type Service interface {
	NotifyCompleted(ctx context.Context, job Job) error
	NotifyFailed(ctx context.Context, job Job, reason string) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}
	return &ntfyService{
		endpoint:  topic,
		client:    &http.Client{Timeout: cfg.NotifyTimeout()},
		onSuccess: cfg.Notifications.OnSuccess,
		onFailure: cfg.Notifications.OnFailure,
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint  string
	client    *http.Client
	onSuccess bool
	onFailure bool
}

func (n *ntfyService) NotifyCompleted(ctx context.Context, job Job) error {
	if !n.onSuccess {
		return nil
	}
	return n.send(ctx, payload{
		title:   "vidgrab - Download Complete",
		message: fmt.Sprintf("Downloaded: %s\nID: %s", job.label(), job.DownloadID),
		tags:    []string{"vidgrab", "download", "completed"},
	})
}

func (n *ntfyService) NotifyFailed(ctx context.Context, job Job, reason string) error {
	if !n.onFailure {
		return nil
	}
	var builder strings.Builder
	fmt.Fprintf(&builder, "Download failed: %s", job.label())
	if reason = strings.TrimSpace(reason); reason != "" {
		fmt.Fprintf(&builder, "\nReason: %s", reason)
	}
	if job.DownloadID != "" {
		fmt.Fprintf(&builder, "\nID: %s", job.DownloadID)
	}
	return n.send(ctx, payload{
		title:    "vidgrab - Download Failed",
		message:  builder.String(),
		tags:     []string{"vidgrab", "error", "alert"},
		priority: "high",
	})
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	return n.send(ctx, payload{
		title:    "vidgrab - Test",
		message:  "Notification system test",
		tags:     []string{"vidgrab", "test"},
		priority: "low",
	})
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

func (noopService) NotifyCompleted(context.Context, Job) error      { return nil }
func (noopService) NotifyFailed(context.Context, Job, string) error { return nil }
func (noopService) TestNotification(context.Context) error          { return nil }
