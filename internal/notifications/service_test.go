package notifications_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"tvhshrink/internal/config"
	"tvhshrink/internal/notifications"
)

func TestNewServiceReturnsNoopWhenTopicMissing(t *testing.T) {
	cfg := config.Default()
	cfg.Notifications.NtfyTopic = ""
	svc := notifications.NewService(&cfg)
	if err := svc.NotifyRunComplete(context.Background(), "Evening News", "/srv/rec/news.mp4"); err != nil {
		t.Fatalf("expected noop notifier to return nil, got %v", err)
	}
}

func TestNtfyServiceFormatsPayloads(t *testing.T) {
	tests := []struct {
		name           string
		notify         func(svc notifications.Service) error
		expectTitle    string
		expectMessage  string
		expectTags     string
		expectPriority string
	}{
		{
			name: "run complete",
			notify: func(svc notifications.Service) error {
				return svc.NotifyRunComplete(context.Background(), "Evening News", "/srv/rec/news.mp4")
			},
			expectTitle:   "tvhshrink - Complete",
			expectMessage: "✅ Transcode complete: Evening News\nFile: /srv/rec/news.mp4",
			expectTags:    "tvhshrink,transcode,completed",
		},
		{
			name: "run complete without path",
			notify: func(svc notifications.Service) error {
				return svc.NotifyRunComplete(context.Background(), "Evening News", "")
			},
			expectTitle:   "tvhshrink - Complete",
			expectMessage: "✅ Transcode complete: Evening News",
			expectTags:    "tvhshrink,transcode,completed",
		},
		{
			name: "run failed",
			notify: func(svc notifications.Service) error {
				return svc.NotifyRunFailed(context.Background(), "Evening News", "encode", errors.New("ffmpeg exited 1"))
			},
			expectTitle:    "tvhshrink - Error",
			expectMessage:  "❌ Failed at encode: Evening News: ffmpeg exited 1",
			expectTags:     "tvhshrink,error,alert",
			expectPriority: "high",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var captured struct {
				title    string
				tags     string
				priority string
				body     string
			}

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Fatalf("unexpected method: %s", r.Method)
				}
				captured.title = r.Header.Get("Title")
				captured.tags = r.Header.Get("Tags")
				captured.priority = r.Header.Get("Priority")
				body, err := io.ReadAll(r.Body)
				if err != nil {
					t.Fatalf("read body: %v", err)
				}
				captured.body = string(body)
				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			cfg := config.Default()
			cfg.Notifications.NtfyTopic = server.URL
			cfg.Notifications.RequestTimeout = 5

			svc := notifications.NewService(&cfg)
			if err := tc.notify(svc); err != nil {
				t.Fatalf("notification returned error: %v", err)
			}

			if captured.title != tc.expectTitle {
				t.Fatalf("expected title %q, got %q", tc.expectTitle, captured.title)
			}
			if captured.body != tc.expectMessage {
				t.Fatalf("expected message %q, got %q", tc.expectMessage, captured.body)
			}
			if captured.tags != tc.expectTags {
				t.Fatalf("expected tags %q, got %q", tc.expectTags, captured.tags)
			}
			if captured.priority != tc.expectPriority {
				t.Fatalf("expected priority %q, got %q", tc.expectPriority, captured.priority)
			}
		})
	}
}

func TestNtfyServiceReportsServerErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "topic quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.Notifications.NtfyTopic = server.URL

	svc := notifications.NewService(&cfg)
	if err := svc.NotifyRunComplete(context.Background(), "Evening News", ""); err == nil {
		t.Fatal("expected error for non-2xx response")
	}
}
