package middleware

// identity.go holds small helpers shared across middleware files for
// extracting the authenticated user from the Echo context.

import (
	"fmt"

	"github.com/labstack/echo/v4"
)

// contextUserID returns the "user_id" context value as a string, or "anon"
// when no user is authenticated. JWT numeric claims decode as float64, so
// the value is normalised through fmt.
func contextUserID(c echo.Context) string {
	v := c.Get("user_id")
	if v == nil {
		return "anon"
	}
	switch t := v.(type) {
	case string:
		if t != "" {
			return t
		}
		return "anon"
	case float64:
		return fmt.Sprintf("%.0f", t)
	default:
		return fmt.Sprint(t)
	}
}
