package missevan

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func noSleep(context.Context, time.Duration) error { return nil }

func TestEpisodeList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/dramaapi/getdrama" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.URL.Query().Get("drama_id") != "12345" {
			t.Errorf("drama_id = %q", r.URL.Query().Get("drama_id"))
		}
		if !strings.Contains(r.UserAgent(), "Mozilla") {
			t.Errorf("user agent = %q", r.UserAgent())
		}
		w.Write([]byte(`{
			"info": {"episodes": {"episode": [
				{"name": "第一集", "sound_id": 1001},
				{"name": "第二集", "sound_id": "1002"},
				{"name": "", "sound_id": 1003}
			]}}
		}`))
	}))
	defer server.Close()

	client := NewClient(
		WithBaseURL(server.URL),
		WithUserAgent("Mozilla/5.0 test"),
		WithSleeper(noSleep),
	)

	episodes, err := client.EpisodeList(context.Background(), 12345)
	if err != nil {
		t.Fatalf("EpisodeList() error = %v", err)
	}
	if len(episodes) != 2 {
		t.Fatalf("EpisodeList() = %d episodes, want 2 (blank names dropped)", len(episodes))
	}
	if episodes[0].ID != "1001" || episodes[1].ID != "1002" {
		t.Errorf("episode ids = %q, %q", episodes[0].ID, episodes[1].ID)
	}
}

func TestCommentStreamRetriesTransientFailures(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`<information><d p="1,1,25,fff,0,0,a">你好</d></information>`))
	}))
	defer server.Close()

	sleeps := 0
	client := NewClient(
		WithBaseURL(server.URL),
		WithRetry(5, time.Millisecond),
		WithSleeper(func(context.Context, time.Duration) error {
			sleeps++
			return nil
		}),
	)

	raw, err := client.CommentStream(context.Background(), "1001")
	if err != nil {
		t.Fatalf("CommentStream() error = %v", err)
	}
	if !strings.Contains(raw, "你好") {
		t.Errorf("unexpected body %q", raw)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
	if sleeps != 2 {
		t.Errorf("sleeps = %d, want 2", sleeps)
	}
}

func TestCommentStreamGivesUpAfterAttempts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(
		WithBaseURL(server.URL),
		WithRetry(3, time.Millisecond),
		WithSleeper(noSleep),
	)

	_, err := client.CommentStream(context.Background(), "1001")
	if err == nil {
		t.Fatal("CommentStream() expected error")
	}
	if !strings.Contains(err.Error(), "after 3 attempts") {
		t.Errorf("error = %v", err)
	}
}

func TestCommentStreamDoesNotRetryClientErrors(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL), WithRetry(5, time.Millisecond), WithSleeper(noSleep))

	if _, err := client.CommentStream(context.Background(), "1001"); err == nil {
		t.Fatal("CommentStream() expected error")
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1 (404 is not retryable)", attempts)
	}
}

func TestCommentStreamEmptyBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("   "))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL), WithSleeper(noSleep))

	_, err := client.CommentStream(context.Background(), "1001")
	if !errors.Is(err, ErrEmptyStream) {
		t.Errorf("error = %v, want ErrEmptyStream", err)
	}
}

func TestCommentStreamRequiresID(t *testing.T) {
	client := NewClient(WithSleeper(noSleep))
	if _, err := client.CommentStream(context.Background(), "  "); err == nil {
		t.Fatal("CommentStream() expected error for blank id")
	}
}

func TestBackoffDelayCapped(t *testing.T) {
	client := NewClient(WithRetry(10, time.Second))
	if got := client.backoffDelay(1); got != time.Second {
		t.Errorf("attempt 1 delay = %v", got)
	}
	if got := client.backoffDelay(3); got != 4*time.Second {
		t.Errorf("attempt 3 delay = %v", got)
	}
	if got := client.backoffDelay(30); got != defaultRetryMaxDelay {
		t.Errorf("attempt 30 delay = %v, want cap %v", got, defaultRetryMaxDelay)
	}
}
