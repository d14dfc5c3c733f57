// Package middleware holds the access guard gating protected routes.
package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// TokenCookie is the name of the cookie carrying the session token.
const TokenCookie = "token"

// UserIDKey is the echo context key the guard stores the caller's id under.
const UserIDKey = "userID"

// TokenParser verifies a session token and returns the user id it binds.
type TokenParser interface {
	Parse(token string) (string, error)
}

// Protect rejects requests without a valid session token cookie and attaches
// the resolved user id to the request context otherwise.
func Protect(tokens TokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(TokenCookie)
			if err != nil || cookie.Value == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized, no token")
			}
			userID, err := tokens.Parse(cookie.Value)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized, token failed")
			}
			c.Set(UserIDKey, userID)
			return next(c)
		}
	}
}

// UserID returns the caller id attached by Protect, or "" on an unguarded
// route.
func UserID(c echo.Context) string {
	id, _ := c.Get(UserIDKey).(string)
	return id
}
