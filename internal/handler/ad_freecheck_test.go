package handler

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/buscaaquibdc/marketplace-api/internal/repository"
)

// Canned database/sql driver so the handler can be exercised end to end
// without MySQL. Each canned result answers the first query containing its
// match substring; everything else returns zero rows.
type cannedResult struct {
	match string
	cols  []string
	rows  [][]driver.Value
}

type cannedConn struct{ results []cannedResult }

func (c *cannedConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("prepare not supported")
}
func (c *cannedConn) Close() error { return nil }
func (c *cannedConn) Begin() (driver.Tx, error) {
	return nil, errors.New("transactions not supported")
}

func (c *cannedConn) QueryContext(_ context.Context, query string, _ []driver.NamedValue) (driver.Rows, error) {
	for _, r := range c.results {
		if strings.Contains(query, r.match) {
			return &cannedRows{cols: r.cols, rows: r.rows}, nil
		}
	}
	return &cannedRows{}, nil
}

type cannedRows struct {
	cols []string
	rows [][]driver.Value
	pos  int
}

func (r *cannedRows) Columns() []string { return r.cols }
func (r *cannedRows) Close() error      { return nil }
func (r *cannedRows) Next(dest []driver.Value) error {
	if r.pos >= len(r.rows) {
		return io.EOF
	}
	copy(dest, r.rows[r.pos])
	r.pos++
	return nil
}

type cannedDriver struct{}

func (cannedDriver) Open(string) (driver.Conn, error) { return &cannedConn{}, nil }

type cannedConnector struct{ conn *cannedConn }

func (c cannedConnector) Connect(context.Context) (driver.Conn, error) { return c.conn, nil }
func (c cannedConnector) Driver() driver.Driver                        { return cannedDriver{} }

func cannedDB(results ...cannedResult) *sql.DB {
	return sql.OpenDB(cannedConnector{conn: &cannedConn{results: results}})
}

var userCols = []string{
	"id", "name", "email", "password_hash", "phone", "whatsapp", "role", "plan",
	"plan_started_at", "plan_expires_at", "free_ad_used", "last_free_ad_at",
	"is_verified", "verified_reason", "verified_at", "is_blocked", "created_at", "updated_at",
}

// A first-time advertiser has no free-ad history at all; the check must
// answer 200 with an open window, not an error.
func TestFreeAdCheckFirstTimeUser(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	db := cannedDB(cannedResult{
		match: "FROM users",
		cols:  userCols,
		rows: [][]driver.Value{{
			int64(42), "Ana", "ana@example.com", "x", "", "", "user", "FREE",
			nil, nil, false, nil,
			false, nil, nil, false, now, now,
		}},
	}, cannedResult{
		match: "COUNT(*)",
		cols:  []string{"count"},
		rows:  [][]driver.Value{{int64(0)}},
	})
	defer db.Close()

	h := NewAdHandler(repository.NewAdRepo(db), repository.NewUserRepo(db))

	c, rec := newTestContext(t)
	c.Set("user_id", uint64(42))
	if err := h.FreeAdCheck(c); err != nil {
		t.Fatalf("FreeAdCheck returned %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, http.StatusOK, rec.Body.String())
	}

	var body struct {
		Success bool `json:"success"`
		FreeAd  struct {
			Used      bool `json:"used"`
			CanCreate bool `json:"canCreate"`
		} `json:"freeAd"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !body.Success || !body.FreeAd.CanCreate || body.FreeAd.Used {
		t.Fatalf("freeAd = %+v, want canCreate=true used=false", body.FreeAd)
	}
}
