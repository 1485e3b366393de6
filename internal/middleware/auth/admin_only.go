package auth

import (
	"net/http"
	"strings"

	"github.com/beggab/storechina/internal/tokens"
	"github.com/labstack/echo/v4"
)

// AdminOnly guards the admin group. It accepts a bearer token or the
// accessToken cookie and requires the admin role.
func AdminOnly(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := bearerToken(c)
			if raw == "" {
				if ck, err := c.Cookie("accessToken"); err == nil {
					raw = ck.Value
				}
			}
			if raw == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing token")
			}

			claims, err := tokens.AccessClaimsFromToken(raw, secret)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			if claims.Role != "admin" {
				return echo.NewHTTPError(http.StatusForbidden, "not enough rights")
			}

			c.Set("role", claims.Role)
			return next(c)
		}
	}
}

func bearerToken(c echo.Context) string {
	h := c.Request().Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}
