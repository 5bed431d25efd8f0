package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/pagebound/bookstore-api/internal/core/ports"
)

// PrincipalKey is the echo context key under which the resolved principal is
// stored for the duration of the request.
const PrincipalKey = "principal"

// Principal resolves the request's bearer token to a Principal and stores it
// in the context. It never rejects a request: a missing, malformed, revoked,
// or dangling token resolves to the anonymous principal, and route-level
// guards decide what anonymous callers may do.
func Principal(resolver ports.PrincipalResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c)
			p := resolver.ResolvePrincipal(c.Request().Context(), token)
			c.Set(PrincipalKey, p)
			return next(c)
		}
	}
}

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
