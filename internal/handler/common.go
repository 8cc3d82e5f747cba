package handler // handler defines the HTTP handlers of the marketplace API

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/buscaaquibdc/marketplace-api/internal/repository"
)

// dbTimeout bounds every per-request database call.
const dbTimeoutSeconds = 5

// pagination is the envelope returned alongside admin list data.
type pagination struct {
	Total  int64 `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}

// getUserID extracts the authenticated user's id from the Echo context.
// JWT numeric claims decode as float64; older tokens may carry strings.
func getUserID(c echo.Context) (uint64, error) {
	switch t := c.Get("user_id").(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// queryInt parses an integer query parameter, falling back to def when
// absent or malformed.
func queryInt(c echo.Context, name string, def int) int {
	if v := c.QueryParam(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// repoError translates repository sentinel errors into the JSON error
// envelope with the matching HTTP status. Unknown errors become 500 with a
// generic message so driver details never leak to clients.
func repoError(c echo.Context, err error, what string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": what + " not found"})
	case errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"success": false, "error": "forbidden"})
	case errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"success": false, "error": what + " conflict"})
	case errors.Is(err, repository.ErrQuotaExceeded):
		return c.JSON(http.StatusPaymentRequired, echo.Map{"success": false, "error": "plan ad quota exceeded"})
	case errors.Is(err, repository.ErrFreeAdCooldown):
		return c.JSON(http.StatusConflict, echo.Map{"success": false, "error": "free ad cooldown active"})
	case errors.Is(err, repository.ErrCouponExhausted):
		return c.JSON(http.StatusConflict, echo.Map{"success": false, "error": "coupon not redeemable"})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": what + " failed"})
}

// pathID parses the :id route parameter.
func pathID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}
