package api

import (
	"net/http"
	"strings"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"jewelry-store/internal/auth"
	"jewelry-store/internal/entity"
)

// Auth verifies the bearer token on every request in the group. The client
// may send the raw token or prefix it with "Bearer "; both forms appear in
// the wild.
func Auth(signer *auth.Signer) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		TokenLookup: "header:Authorization",
		ParseTokenFunc: func(c echo.Context, tokenStr string) (interface{}, error) {
			return signer.Parse(strings.TrimPrefix(tokenStr, "Bearer "))
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
		},
	})
}

// RequireAdmin gates admin-only routes. It must run after Auth.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := claimsFrom(c)
		if claims == nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
		}
		if claims.Role != entity.RoleAdmin {
			return c.JSON(http.StatusForbidden, map[string]string{"error": "Forbidden"})
		}
		return next(c)
	}
}

// claimsFrom returns the verified claims Auth stored on the context, or nil
// on an unauthenticated request.
func claimsFrom(c echo.Context) *auth.Claims {
	claims, _ := c.Get("user").(*auth.Claims)
	return claims
}
