package repository

// A minimal database/sql driver for exercising repository error contracts
// and query shapes without a MySQL server. Results are canned per query
// substring; unmatched queries return zero rows.

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"strings"
)

type stubResult struct {
	match string // substring of the SQL text this result answers
	cols  []string
	rows  [][]driver.Value
}

type stubConn struct {
	results []stubResult
	queries []string // every query seen, in order
}

func (c *stubConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("prepare not supported")
}
func (c *stubConn) Close() error { return nil }
func (c *stubConn) Begin() (driver.Tx, error) {
	return nil, errors.New("transactions not supported")
}

func (c *stubConn) QueryContext(_ context.Context, query string, _ []driver.NamedValue) (driver.Rows, error) {
	c.queries = append(c.queries, query)
	for _, r := range c.results {
		if strings.Contains(query, r.match) {
			return &stubRows{cols: r.cols, rows: r.rows}, nil
		}
	}
	return &stubRows{}, nil
}

type stubRows struct {
	cols []string
	rows [][]driver.Value
	pos  int
}

func (r *stubRows) Columns() []string { return r.cols }
func (r *stubRows) Close() error      { return nil }
func (r *stubRows) Next(dest []driver.Value) error {
	if r.pos >= len(r.rows) {
		return io.EOF
	}
	copy(dest, r.rows[r.pos])
	r.pos++
	return nil
}

type stubDriver struct{}

func (stubDriver) Open(string) (driver.Conn, error) { return &stubConn{}, nil }

type stubConnector struct{ conn *stubConn }

func (s stubConnector) Connect(context.Context) (driver.Conn, error) { return s.conn, nil }
func (s stubConnector) Driver() driver.Driver                        { return stubDriver{} }

func newStubDB(results ...stubResult) (*sql.DB, *stubConn) {
	conn := &stubConn{results: results}
	return sql.OpenDB(stubConnector{conn: conn}), conn
}
