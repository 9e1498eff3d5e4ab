// Package client is the external server collaborator the oracle engine
// and update pipeline hand statements to (spec.md treats this as an
// external system; this repo supplies concrete implementations). Modeled
// on internal/apply.Applier's connect/exec/close pattern, adapted from a
// one-shot migration apply into a long-lived fuzzing session.
package client

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"

	"fuzzql/internal/fuzzerrors"
)

// Rows is a materialized query result, already read off the wire so the
// caller (the oracle engine) can compute a digest without holding a
// connection open.
type Rows struct {
	Columns []string
	Values  [][]string
}

// Lines renders each row as a single comma-joined line, the shape
// internal/digest.OfStrings digests.
func (r Rows) Lines() []string {
	lines := make([]string, len(r.Values))
	for i, row := range r.Values {
		line := ""
		for j, v := range row {
			if j > 0 {
				line += ","
			}
			line += v
		}
		lines[i] = line
	}
	return lines
}

// Client is the minimal surface the generator needs from a SQL server: run
// a statement that returns no rows, or run a query and get rows back.
// The database/sql client returns every failure, rejection or not, as a
// fuzzerrors.ClientError; MockClient returns a plain error for a rejection.
// Callers treat any error as a rejected statement; the update pipeline (C9)
// is what decides a rejection is not a fuzzer bug.
type Client interface {
	Exec(ctx context.Context, stmt string) error
	Query(ctx context.Context, query string) (Rows, error)
	Close() error
}

// sqlClient adapts database/sql to Client. Used for both the MySQL target
// (go-sql-driver/mysql) and the SQLite target (modernc.org/sqlite): the
// driver name is the only difference.
type sqlClient struct {
	db *sql.DB
}

// NewMySQL connects to dsn via go-sql-driver/mysql, the teacher's own
// driver dependency, adapted from internal/apply.Applier.Connect.
func NewMySQL(ctx context.Context, dsn string) (Client, error) {
	return newSQLClient(ctx, "mysql", dsn)
}

// NewLite opens a modernc.org/sqlite database at path (":memory:" for an
// ephemeral one), a Docker-free stand-in target for fast unit tests.
func NewLite(ctx context.Context, path string) (Client, error) {
	if path == "" {
		path = ":memory:"
	}
	return newSQLClient(ctx, "sqlite", path)
}

func newSQLClient(ctx context.Context, driver, dsn string) (Client, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fuzzerrors.NewClientError("open", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fuzzerrors.NewClientError("ping", err)
	}
	return &sqlClient{db: db}, nil
}

func (c *sqlClient) Exec(ctx context.Context, stmt string) error {
	if _, err := c.db.ExecContext(ctx, stmt); err != nil {
		return fuzzerrors.NewClientError("exec", err)
	}
	return nil
}

func (c *sqlClient) Query(ctx context.Context, query string) (Rows, error) {
	rs, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return Rows{}, fuzzerrors.NewClientError("query", err)
	}
	defer rs.Close()

	cols, err := rs.Columns()
	if err != nil {
		return Rows{}, fuzzerrors.NewClientError("columns", err)
	}

	var out Rows
	out.Columns = cols
	for rs.Next() {
		raw := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		if err := rs.Scan(ptrs...); err != nil {
			return Rows{}, fuzzerrors.NewClientError("scan", err)
		}
		row := make([]string, len(cols))
		for i, v := range raw {
			row[i] = fmt.Sprintf("%v", v)
		}
		out.Values = append(out.Values, row)
	}
	if err := rs.Err(); err != nil {
		return Rows{}, fuzzerrors.NewClientError("rows", err)
	}
	return out, nil
}

func (c *sqlClient) Close() error {
	return c.db.Close()
}
