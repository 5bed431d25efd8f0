package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/pagebound/bookstore-api/internal/api/middleware"
	"github.com/pagebound/bookstore-api/internal/core/domain"
)

// principalFrom extracts the principal resolved by the Principal middleware.
// When the middleware did not run (open routes mounted outside the group)
// the zero value — anonymous — is returned, which is exactly the privilege
// level such a request should have.
func principalFrom(c echo.Context) domain.Principal {
	p, _ := c.Get(middleware.PrincipalKey).(domain.Principal)
	return p
}
