package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

var testSecret = []byte("test-secret")

func newAuthContext(header string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/appointments", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec)
}

func okHandler(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func TestMiddleware_ValidToken(t *testing.T) {
	token, err := IssueToken(testSecret, "admin@clinic.example", "admin", time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	c := newAuthContext("Bearer " + token)
	if err := Middleware(testSecret)(okHandler)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got, _ := c.Get(SubjectKey).(string); got != "admin@clinic.example" {
		t.Errorf("expected subject set, got %q", got)
	}
	if got, _ := c.Get(RoleKey).(string); got != "admin" {
		t.Errorf("expected role admin, got %q", got)
	}
}

func TestMiddleware_MissingHeader(t *testing.T) {
	c := newAuthContext("")
	err := Middleware(testSecret)(okHandler)(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %v", err)
	}
}

func TestMiddleware_WrongSecret(t *testing.T) {
	token, _ := IssueToken([]byte("other-secret"), "x", "admin", time.Hour)
	c := newAuthContext("Bearer " + token)
	err := Middleware(testSecret)(okHandler)(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for wrong secret, got %v", err)
	}
}

func TestMiddleware_ExpiredToken(t *testing.T) {
	token, _ := IssueToken(testSecret, "x", "admin", -time.Minute)
	c := newAuthContext("Bearer " + token)
	err := Middleware(testSecret)(okHandler)(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for expired token, got %v", err)
	}
}

func TestRequireRole(t *testing.T) {
	c := newAuthContext("")
	c.Set(RoleKey, "staff")

	err := RequireRole("admin")(okHandler)(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusForbidden {
		t.Errorf("expected 403 for staff on admin route, got %v", err)
	}

	c.Set(RoleKey, "admin")
	if err := RequireRole("admin")(okHandler)(c); err != nil {
		t.Errorf("unexpected error for admin: %v", err)
	}
}

func TestDevMiddleware_GrantsAdmin(t *testing.T) {
	c := newAuthContext("")
	if err := DevMiddleware()(okHandler)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, _ := c.Get(RoleKey).(string); got != "admin" {
		t.Errorf("expected admin role in dev mode, got %q", got)
	}
}
