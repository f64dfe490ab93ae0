package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func newTestContext(method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRequestID_GeneratesWhenMissing(t *testing.T) {
	c, rec := newTestContext(http.MethodGet, "/doctors", "")

	h := RequestID()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rid, _ := c.Get("request_id").(string)
	if rid == "" {
		t.Error("expected request_id to be set")
	}
	if rec.Header().Get("X-Request-ID") != rid {
		t.Error("expected X-Request-ID header to match context value")
	}
}

func TestRequestID_PropagatesIncoming(t *testing.T) {
	c, rec := newTestContext(http.MethodGet, "/doctors", "")
	c.Request().Header.Set("X-Request-ID", "upstream-id-123")

	h := RequestID()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rec.Header().Get("X-Request-ID") != "upstream-id-123" {
		t.Errorf("expected incoming request ID to be kept, got %s", rec.Header().Get("X-Request-ID"))
	}
}

func TestRecovery_ConvertsPanicTo500(t *testing.T) {
	c, _ := newTestContext(http.MethodGet, "/doctors", "")

	h := Recovery(zerolog.Nop())(func(c echo.Context) error {
		panic("boom")
	})

	err := h(c)
	if err == nil {
		t.Fatal("expected error from recovered panic")
	}
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T", err)
	}
	if he.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", he.Code)
	}
}

func TestLogger_PassesThroughHandlerError(t *testing.T) {
	c, _ := newTestContext(http.MethodGet, "/doctors", "")
	c.Set("request_id", "rid-1")

	want := echo.NewHTTPError(http.StatusNotFound, "missing")
	h := Logger(zerolog.Nop())(func(c echo.Context) error {
		return want
	})

	if got := h(c); got != want {
		t.Errorf("expected handler error to be returned, got %v", got)
	}
}

func TestRateLimit_ExhaustsBurst(t *testing.T) {
	cfg := RateLimitConfig{RequestsPerSecond: 0.001, BurstSize: 2}
	mw := RateLimit(cfg)
	h := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	for i := 0; i < 2; i++ {
		c, _ := newTestContext(http.MethodGet, "/doctors", "")
		if err := h(c); err != nil {
			t.Fatalf("request %d should be allowed: %v", i, err)
		}
	}

	c, rec := newTestContext(http.MethodGet, "/doctors", "")
	err := h(c)
	if err == nil {
		t.Fatal("expected rate limit error on third request")
	}
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %v", err)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After header on limited request")
	}
}

func TestRequestTimeout_ReturnsGatewayTimeout(t *testing.T) {
	c, rec := newTestContext(http.MethodGet, "/doctors", "")

	h := RequestTimeout(10 * time.Millisecond)(func(c echo.Context) error {
		select {
		case <-c.Request().Context().Done():
			return c.Request().Context().Err()
		case <-time.After(time.Second):
			return c.NoContent(http.StatusOK)
		}
	})

	if err := h(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusGatewayTimeout {
		t.Errorf("expected 504, got %d", rec.Code)
	}
}

func TestRequestTimeout_FastHandlerUnaffected(t *testing.T) {
	c, rec := newTestContext(http.MethodGet, "/doctors", "")

	h := RequestTimeout(time.Second)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	if err := h(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestBodyLimit_RejectsOversizedContentLength(t *testing.T) {
	body := strings.Repeat("x", 2048)
	c, rec := newTestContext(http.MethodPost, "/appointments", body)
	c.Request().ContentLength = int64(len(body))

	h := BodyLimit("1K")(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	if err := h(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("expected 413, got %d", rec.Code)
	}
}

func TestBodyLimit_AllowsSmallBody(t *testing.T) {
	c, rec := newTestContext(http.MethodPost, "/appointments", `{"ok":true}`)

	h := BodyLimit("1M")(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	if err := h(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestParseLimit(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"1M", 1 << 20},
		{"512K", 512 << 10},
		{"2G", 2 << 30},
		{"1024", 1024},
		{"", 1 << 20},
		{"garbage", 1 << 20},
	}
	for _, tc := range cases {
		if got := parseLimit(tc.in); got != tc.want {
			t.Errorf("parseLimit(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestSecurityHeaders(t *testing.T) {
	c, rec := newTestContext(http.MethodGet, "/doctors", "")

	h := SecurityHeaders()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("expected nosniff header")
	}
	if rec.Header().Get("Cache-Control") != "no-store" {
		t.Error("expected no-store cache control")
	}
}
