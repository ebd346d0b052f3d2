package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestConciergeMessage(t *testing.T) {
	msg := ConciergeMessage(ConciergeNotification{
		Name:         "Aïcha <b>",
		Phone:        "+222 32 29 19 08",
		Message:      "  Which oud lasts longest?  ",
		Locale:       "ar",
		ProductName:  "Midnight Oud",
		ProductPrice: 4500,
	})

	for _, want := range []string{
		"Aïcha &lt;b&gt;",
		"+222 32 29 19 08",
		"AR",
		"Midnight Oud (4,500 MRU)",
		"Which oud lasts longest?\n",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestConciergeMessageOmitsEmptySections(t *testing.T) {
	msg := ConciergeMessage(ConciergeNotification{Name: "Sidi", Phone: "48000000"})
	if strings.Contains(msg, "Product") || strings.Contains(msg, "Message") || strings.Contains(msg, "Language") {
		t.Fatalf("unexpected sections:\n%s", msg)
	}
}

func TestNotifyConciergePostsToBot(t *testing.T) {
	var got telegramMessage
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	svc := NewTelegramService("token123", "-1001")
	svc.apiBase = srv.URL

	if err := svc.NotifyConcierge(context.Background(), ConciergeNotification{Name: "Sidi", Phone: "48000000"}); err != nil {
		t.Fatalf("NotifyConcierge: %v", err)
	}
	if path != "/bottoken123/sendMessage" {
		t.Fatalf("path = %q", path)
	}
	if got.ChatID != "-1001" || got.ParseMode != "HTML" || !strings.Contains(got.Text, "Sidi") {
		t.Fatalf("payload = %+v", got)
	}
}

func TestNotifyConciergeStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	svc := NewTelegramService("token123", "-1001")
	svc.apiBase = srv.URL
	if err := svc.NotifyConcierge(context.Background(), ConciergeNotification{Name: "x"}); err == nil {
		t.Fatal("expected error for non-200 status")
	}
}

func TestNotifyConciergeDisabled(t *testing.T) {
	svc := NewTelegramService("", "")
	if svc.Enabled() {
		t.Fatal("service without token must be disabled")
	}
	if err := svc.NotifyConcierge(context.Background(), ConciergeNotification{}); err != nil {
		t.Fatalf("disabled notify: %v", err)
	}
}
