package auth

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const (
	// SubjectKey and RoleKey are the echo context keys populated by Middleware.
	SubjectKey = "auth_subject"
	RoleKey    = "auth_role"
)

// Claims are the JWT claims the server issues and verifies. Role is either
// "admin" or "staff"; admin is required for doctor management and deletes.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// Middleware verifies a Bearer token signed with HS256 and stores the subject
// and role in the request context. Requests without a valid token get 401.
func Middleware(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "malformed authorization header")
			}

			claims := &Claims{}
			token, err := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
				}
				return secret, nil
			})
			if err != nil || !token.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(SubjectKey, claims.Subject)
			c.Set(RoleKey, claims.Role)
			return next(c)
		}
	}
}

// RequireRole rejects requests whose authenticated role does not match.
func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			got, _ := c.Get(RoleKey).(string)
			if got != role {
				return echo.NewHTTPError(http.StatusForbidden, "insufficient role")
			}
			return next(c)
		}
	}
}

// DevMiddleware grants every request admin access. Used only when the server
// runs with ENV=development and no JWT secret configured.
func DevMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(SubjectKey, "dev")
			c.Set(RoleKey, "admin")
			return next(c)
		}
	}
}

// IssueToken signs a token for the given subject and role. Exposed for tests
// and local tooling.
func IssueToken(secret []byte, subject, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Role: role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}
