package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func TestMiddleware(t *testing.T) {
	t.Run("requests over the rate are rejected", func(t *testing.T) {
		cfg := &Config{
			Store:  NewMemoryStore(),
			Rate:   2,
			Period: time.Minute,
			KeyGenerator: func(c echo.Context) string {
				return "test-key"
			},
		}

		middleware := Middleware(cfg)

		e := echo.New()
		handler := func(c echo.Context) error {
			return c.String(http.StatusOK, "test")
		}

		for i := 0; i < 2; i++ {
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			if err := middleware(handler)(c); err != nil {
				t.Errorf("request %d: unexpected error: %v", i, err)
			}
		}

		req := httptest.NewRequest(http.MethodPost, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := middleware(handler)(c)
		if err == nil {
			t.Fatal("expected rate limit error")
		}
		httpErr, ok := err.(*echo.HTTPError)
		if !ok {
			t.Fatalf("expected echo.HTTPError, got %T", err)
		}
		if httpErr.Code != http.StatusTooManyRequests {
			t.Errorf("expected status %d, got %d", http.StatusTooManyRequests, httpErr.Code)
		}
		if rec.Header().Get("X-RateLimit-Remaining") != "0" {
			t.Errorf("expected zero remaining, got %q", rec.Header().Get("X-RateLimit-Remaining"))
		}
	})

	t.Run("defaults are applied", func(t *testing.T) {
		cfg := &Config{}
		Middleware(cfg)

		if cfg.Store == nil {
			t.Error("expected default store to be set")
		}
		if cfg.Rate != 10 {
			t.Errorf("expected default rate 10, got %d", cfg.Rate)
		}
		if cfg.Period != time.Minute {
			t.Errorf("expected default period 1 minute, got %v", cfg.Period)
		}
		if cfg.KeyGenerator == nil {
			t.Error("expected default key generator to be set")
		}
		if cfg.OnLimitReached == nil {
			t.Error("expected default limit reached handler to be set")
		}
	})

	t.Run("separate keys are limited independently", func(t *testing.T) {
		cfg := &Config{
			Store:  NewMemoryStore(),
			Rate:   1,
			Period: time.Minute,
			KeyGenerator: func(c echo.Context) string {
				return c.Request().Header.Get("X-Test-Key")
			},
		}

		middleware := Middleware(cfg)

		e := echo.New()
		handler := func(c echo.Context) error {
			return c.String(http.StatusOK, "test")
		}

		for _, key := range []string{"a", "b"} {
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			req.Header.Set("X-Test-Key", key)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			if err := middleware(handler)(c); err != nil {
				t.Errorf("key %q: unexpected error: %v", key, err)
			}
		}
	})
}

func TestDefaultKeyGenerator(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	c := e.NewContext(req, httptest.NewRecorder())

	key := DefaultKeyGenerator(c)
	if key != "rate_limit:192.0.2.1" {
		t.Errorf("unexpected key: %q", key)
	}
}
