package http

import (
	"strings"

	"github.com/labstack/echo/v4"

	"revamp/internal/domain"
	"revamp/internal/ports/input"
	"revamp/internal/ports/output"
)

const contextIdentityKey = "identity"

func authMiddleware(verifier output.IdentityVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return domain.ErrUnauthenticated
			}
			id, err := verifier.Verify(c.Request().Context(), token)
			if err != nil {
				return err
			}
			c.Set(contextIdentityKey, id)
			return next(c)
		}
	}
}

// adminMiddleware admits tokens with the admin claim, the configured admin
// email, or a stored admin role.
func adminMiddleware(adminEmail string, users input.UserUseCase) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, err := identityFrom(c)
			if err != nil {
				return err
			}
			if id.IsAdmin || (adminEmail != "" && strings.EqualFold(id.Email, adminEmail)) {
				return next(c)
			}
			user, err := users.GetProfile(c.Request().Context(), id.UID)
			if err == nil && user.IsAdmin() {
				return next(c)
			}
			return domain.ErrForbidden
		}
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func identityFrom(c echo.Context) (output.Identity, error) {
	if id, ok := c.Get(contextIdentityKey).(output.Identity); ok {
		return id, nil
	}
	return output.Identity{}, domain.ErrUnauthenticated
}
