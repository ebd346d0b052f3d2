package middleware

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/example/fatales/internal/locale"
	"github.com/example/fatales/internal/utils"
)

type memoryCounter struct {
	mu   sync.Mutex
	hits map[string]int64
	err  error
}

func (m *memoryCounter) Hit(_ context.Context, key string, _ time.Duration) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.hits == nil {
		m.hits = map[string]int64{}
	}
	m.hits[key]++
	return m.hits[key], nil
}

func TestLocale(t *testing.T) {
	app := fiber.New()
	app.Use(Locale())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(LocaleFrom(c).String())
	})

	tests := []struct {
		name   string
		target string
		accept string
		want   string
	}{
		{"query wins", "/?locale=ar-MR", "fr-FR", "ar"},
		{"accept language", "/", "fr-CA,fr;q=0.9,en;q=0.5", "fr"},
		{"unknown query", "/?locale=de", "ar", "en"},
		{"padded query", "/?locale=%20fr", "ar", "en"},
		{"nothing", "/", "", "en"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.target, nil)
			if tt.accept != "" {
				req.Header.Set("Accept-Language", tt.accept)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			body, _ := io.ReadAll(resp.Body)
			if string(body) != tt.want {
				t.Fatalf("locale = %q, want %q", body, tt.want)
			}
			if got := resp.Header.Get("Content-Language"); got != tt.want {
				t.Fatalf("Content-Language = %q", got)
			}
		})
	}
}

func TestLocaleFromWithoutMiddleware(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(LocaleFrom(c).String())
	})
	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	if locale.Locale(body) != locale.Default {
		t.Fatalf("locale = %q", body)
	}
}

func TestAdminAuth(t *testing.T) {
	app := fiber.New()
	app.Get("/admin", AdminAuth("secret"), func(c *fiber.Ctx) error {
		name, _ := CurrentAdmin(c)
		return c.SendString(name)
	})

	valid, err := utils.GenerateToken("secret", "admin", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	forged, err := utils.GenerateToken("other", "admin", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	tests := []struct {
		header string
		status int
	}{
		{"", fiber.StatusUnauthorized},
		{"Token abc", fiber.StatusUnauthorized},
		{"Bearer " + forged, fiber.StatusUnauthorized},
		{"Bearer " + valid, fiber.StatusOK},
		{"bearer " + valid, fiber.StatusOK},
	}

	for _, tt := range tests {
		req := httptest.NewRequest("GET", "/admin", nil)
		if tt.header != "" {
			req.Header.Set("Authorization", tt.header)
		}
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		if resp.StatusCode != tt.status {
			t.Errorf("Authorization %q: status = %d, want %d", tt.header, resp.StatusCode, tt.status)
		}
		if tt.status == fiber.StatusOK {
			body, _ := io.ReadAll(resp.Body)
			if string(body) != "admin" {
				t.Errorf("admin = %q", body)
			}
		}
	}
}

func TestRateLimit(t *testing.T) {
	counter := &memoryCounter{}
	app := fiber.New()
	app.Post("/concierge", RateLimit(counter, "concierge", 2, time.Minute), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusCreated)
	})

	want := []int{fiber.StatusCreated, fiber.StatusCreated, fiber.StatusTooManyRequests}
	for i, status := range want {
		resp, err := app.Test(httptest.NewRequest("POST", "/concierge", nil))
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		if resp.StatusCode != status {
			t.Fatalf("request %d: status = %d, want %d", i+1, resp.StatusCode, status)
		}
		if status == fiber.StatusTooManyRequests && resp.Header.Get("Retry-After") != "60" {
			t.Fatalf("Retry-After = %q", resp.Header.Get("Retry-After"))
		}
	}
}

func TestRateLimitFailsOpen(t *testing.T) {
	counter := &memoryCounter{err: errors.New("redis down")}
	app := fiber.New()
	app.Get("/", RateLimit(counter, "x", 1, time.Minute), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("status = %d", resp.StatusCode)
		}
	}
}
