package notifications_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"maku/internal/config"
	"maku/internal/notifications"
)

func TestNewServiceReturnsNoopWhenTopicMissing(t *testing.T) {
	cfg := config.Default()
	cfg.Notifications.NtfyTopic = ""
	svc := notifications.NewService(&cfg)
	if err := svc.NotifyRunCompleted(context.Background(), 3, 0, time.Minute); err != nil {
		t.Fatalf("expected noop notifier to return nil, got %v", err)
	}
}

type captured struct {
	title    string
	tags     string
	priority string
	body     string
}

func newCapturingService(t *testing.T, sink *[]captured) notifications.Service {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		*sink = append(*sink, captured{
			title:    r.Header.Get("Title"),
			tags:     r.Header.Get("Tags"),
			priority: r.Header.Get("Priority"),
			body:     string(body),
		})
	}))
	t.Cleanup(server.Close)

	cfg := config.Default()
	cfg.Notifications.NtfyTopic = server.URL
	return notifications.NewService(&cfg)
}

func TestNtfyServiceFormatsPayloads(t *testing.T) {
	var sink []captured
	svc := newCapturingService(t, &sink)
	ctx := context.Background()

	if err := svc.NotifyRunStarted(ctx, "镇魂", 36); err != nil {
		t.Fatalf("NotifyRunStarted() error = %v", err)
	}
	if err := svc.NotifyEpisodeSkipped(ctx, "第三集", "no staff identified"); err != nil {
		t.Fatalf("NotifyEpisodeSkipped() error = %v", err)
	}
	if err := svc.NotifyRunCompleted(ctx, 34, 2, 95*time.Second); err != nil {
		t.Fatalf("NotifyRunCompleted() error = %v", err)
	}
	if err := svc.NotifyError(ctx, errors.New("boom"), "episode fetch"); err != nil {
		t.Fatalf("NotifyError() error = %v", err)
	}

	if len(sink) != 4 {
		t.Fatalf("sent %d notifications, want 4", len(sink))
	}

	tests := []struct {
		idx      string
		got      captured
		title    string
		body     string
		priority string
	}{
		{"started", sink[0], "maku - Run Started", "Analyzing 镇魂: 36 episodes", ""},
		{"skipped", sink[1], "maku - Episode Skipped", "Skipped 第三集: no staff identified", ""},
		{"completed", sink[2], "maku - Run Complete (with skips)", "Run complete: 34 processed, 2 skipped in 1m35s", ""},
		{"error", sink[3], "maku - Error", "Error with episode fetch: boom", "high"},
	}
	for _, tt := range tests {
		if tt.got.title != tt.title {
			t.Errorf("%s title = %q, want %q", tt.idx, tt.got.title, tt.title)
		}
		if tt.got.body != tt.body {
			t.Errorf("%s body = %q, want %q", tt.idx, tt.got.body, tt.body)
		}
		if tt.got.priority != tt.priority {
			t.Errorf("%s priority = %q, want %q", tt.idx, tt.got.priority, tt.priority)
		}
	}
}

func TestNtfyServiceHonorsSectionToggles(t *testing.T) {
	var sink []captured
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sink = append(sink, captured{})
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.Notifications.NtfyTopic = server.URL
	cfg.Notifications.EpisodeSkipped = false
	svc := notifications.NewService(&cfg)

	if err := svc.NotifyEpisodeSkipped(context.Background(), "第三集", "whatever"); err != nil {
		t.Fatalf("NotifyEpisodeSkipped() error = %v", err)
	}
	if len(sink) != 0 {
		t.Errorf("disabled notification still sent %d requests", len(sink))
	}
}

func TestNtfyServiceSurfacesHTTPFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.Notifications.NtfyTopic = server.URL
	svc := notifications.NewService(&cfg)

	if err := svc.NotifyRunStarted(context.Background(), "镇魂", 1); err == nil {
		t.Fatal("expected error for 403 response")
	}
}
