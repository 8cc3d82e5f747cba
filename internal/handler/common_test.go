package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/buscaaquibdc/marketplace-api/internal/repository"
)

func newTestContext(t *testing.T) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRepoErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", repository.ErrNotFound, http.StatusNotFound},
		{"forbidden", repository.ErrForbidden, http.StatusForbidden},
		{"conflict", repository.ErrConflict, http.StatusConflict},
		{"quota", repository.ErrQuotaExceeded, http.StatusPaymentRequired},
		{"cooldown", repository.ErrFreeAdCooldown, http.StatusConflict},
		{"exhausted coupon", repository.ErrCouponExhausted, http.StatusConflict},
		{"unknown", errFake, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newTestContext(t)
			if err := repoError(c, tc.err, "thing"); err != nil {
				t.Fatalf("repoError returned %v", err)
			}
			if rec.Code != tc.want {
				t.Fatalf("status = %d, want %d", rec.Code, tc.want)
			}
		})
	}
}

var errFake = &fakeError{}

type fakeError struct{}

func (*fakeError) Error() string { return "boom" }

func TestGetUserIDAcceptsNumericShapes(t *testing.T) {
	for _, v := range []any{uint64(7), int(7), int64(7), float64(7), "7"} {
		c, _ := newTestContext(t)
		c.Set("user_id", v)
		id, err := getUserID(c)
		if err != nil || id != 7 {
			t.Fatalf("getUserID(%T) = %d, %v", v, id, err)
		}
	}
	c, _ := newTestContext(t)
	c.Set("user_id", "not a number")
	if _, err := getUserID(c); err == nil {
		t.Fatal("expected error for junk user_id")
	}
}

func TestQueryIntFallsBack(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?limit=15&bad=x", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	if got := queryInt(c, "limit", 20); got != 15 {
		t.Fatalf("limit = %d, want 15", got)
	}
	if got := queryInt(c, "bad", 20); got != 20 {
		t.Fatalf("bad = %d, want fallback 20", got)
	}
	if got := queryInt(c, "missing", 20); got != 20 {
		t.Fatalf("missing = %d, want fallback 20", got)
	}
}
