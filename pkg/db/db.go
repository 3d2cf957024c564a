package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Row holds one result row grouped by table.
// Columns named "table.field" are stored under Row["table"]["field"],
// unqualified columns under Row[""].
type Row map[string]map[string]any

// Get returns the value of a "table.field" or "field" key.
func (r Row) Get(key string) any {
	table, field := splitColumn(key)
	return r[table][field]
}

type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Conn implements the query helpers shared by DB and Tx.
type Conn struct {
	q      queryer
	driver string
	sqlLog bool
	logger *slog.Logger
}

// DB is an open connection (pool) to one database.
type DB struct {
	*Conn
	sql  *sql.DB
	pool *pgxpool.Pool
}

// Tx is a transaction started by DB.WithTx.
type Tx struct {
	*Conn
	tx *sql.Tx
}

func newDB(sqlDB *sql.DB, pool *pgxpool.Pool, driver string, sqlLog bool, log *slog.Logger) *DB {
	return &DB{
		Conn: &Conn{q: sqlDB, driver: driver, sqlLog: sqlLog, logger: log},
		sql:  sqlDB,
		pool: pool,
	}
}

// SQL returns the underlying *sql.DB.
func (d *DB) SQL() *sql.DB { return d.sql }

// Pool returns the pgx pool backing a postgres connection, nil otherwise.
func (d *DB) Pool() *pgxpool.Pool { return d.pool }

// Close closes the connection and its pool.
func (d *DB) Close() error {
	err := d.sql.Close()
	if d.pool != nil {
		d.pool.Close()
	}
	return err
}

// Driver returns the normalized driver name.
func (c *Conn) Driver() string { return c.driver }

// Exec runs a statement. INSERT statements return the id of the new row,
// other statements the number of affected rows. On postgres the id is read
// from a RETURNING clause; without one the affected row count is returned.
func (c *Conn) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	query = Rebind(c.driver, query)
	defer c.log(ctx, query, args, time.Now())

	insert := isInsert(query)
	if insert && c.driver == DriverPostgres && hasReturning(query) {
		rows, err := c.q.QueryContext(ctx, query, args...)
		if err != nil {
			return 0, errors.Join(ErrQuery, err)
		}
		defer rows.Close()

		var id any
		if rows.Next() {
			if err := rows.Scan(&id); err != nil {
				return 0, errors.Join(ErrQuery, err)
			}
		}
		if err := rows.Err(); err != nil {
			return 0, errors.Join(ErrQuery, err)
		}
		return toInt64(id), nil
	}

	res, err := c.q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, errors.Join(ErrQuery, err)
	}
	if insert && c.driver == DriverSQLite {
		return res.LastInsertId()
	}
	return res.RowsAffected()
}

// FindAll returns every row of the query.
func (c *Conn) FindAll(ctx context.Context, query string, args ...any) ([]Row, error) {
	var out []Row
	err := c.Each(ctx, query, args, func(r Row) error {
		out = append(out, r)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// FindAllIndexed returns rows keyed by the string form of indexField
// ("table.field" or "field"). Later rows win on duplicate keys.
func (c *Conn) FindAllIndexed(ctx context.Context, indexField, query string, args ...any) (map[string]Row, error) {
	out := make(map[string]Row)
	err := c.Each(ctx, query, args, func(r Row) error {
		out[fmt.Sprint(r.Get(indexField))] = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Each streams rows to fn. Iteration stops at the first error fn returns.
func (c *Conn) Each(ctx context.Context, query string, args []any, fn func(Row) error) error {
	query = Rebind(c.driver, query)
	defer c.log(ctx, query, args, time.Now())

	rows, err := c.q.QueryContext(ctx, query, args...)
	if err != nil {
		return errors.Join(ErrQuery, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return errors.Join(ErrQuery, err)
	}
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return errors.Join(ErrQuery, err)
		}

		row := make(Row)
		for i, col := range cols {
			table, field := splitColumn(col)
			if row[table] == nil {
				row[table] = make(map[string]any)
			}
			row[table][field] = normalizeValue(values[i])
		}
		if err := fn(row); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return errors.Join(ErrQuery, err)
	}
	return nil
}

// FindFirst returns the first row, or an empty Row when there is none.
func (c *Conn) FindFirst(ctx context.Context, query string, args ...any) (Row, error) {
	row := Row{}
	errStop := errors.New("stop")
	err := c.Each(ctx, query, args, func(r Row) error {
		row = r
		return errStop
	})
	if err != nil && !errors.Is(err, errStop) {
		return nil, err
	}
	return row, nil
}

// FindValues returns the first column of every row.
func (c *Conn) FindValues(ctx context.Context, query string, args ...any) ([]any, error) {
	query = Rebind(c.driver, query)
	defer c.log(ctx, query, args, time.Now())

	rows, err := c.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Join(ErrQuery, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, errors.Join(ErrQuery, err)
	}
	if len(cols) == 0 {
		return nil, errors.Join(ErrQuery, ErrNoColumns)
	}

	var out []any
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, errors.Join(ErrQuery, err)
		}
		out = append(out, normalizeValue(values[0]))
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrQuery, err)
	}
	return out, nil
}

// FindValue returns the first column of the first row, or nil.
func (c *Conn) FindValue(ctx context.Context, query string, args ...any) (any, error) {
	values, err := c.FindValues(ctx, query, args...)
	if err != nil || len(values) == 0 {
		return nil, err
	}
	return values[0], nil
}

func (c *Conn) log(ctx context.Context, query string, args []any, start time.Time) {
	if !c.sqlLog {
		return
	}
	c.logger.DebugContext(ctx, "sql",
		slog.String("query", query),
		slog.Any("args", args),
		slog.Duration("duration", time.Since(start)),
	)
}

// Rebind rewrites "?" placeholders to "$1", "$2"... for postgres.
// Question marks inside single-quoted literals are left alone.
func Rebind(driver, query string) string {
	if driver != DriverPostgres || !strings.Contains(query, "?") {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	quoted := false
	for _, r := range query {
		switch {
		case r == '\'':
			quoted = !quoted
			b.WriteRune(r)
		case r == '?' && !quoted:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func splitColumn(col string) (table, field string) {
	if t, f, ok := strings.Cut(col, "."); ok {
		return t, f
	}
	return "", col
}

func isInsert(query string) bool {
	q := strings.TrimSpace(query)
	return len(q) >= 6 && strings.EqualFold(q[:6], "insert")
}

func hasReturning(query string) bool {
	for _, f := range strings.Fields(query) {
		if strings.EqualFold(f, "returning") {
			return true
		}
	}
	return false
}

func normalizeValue(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}

func toInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int32:
		return int64(n)
	case int:
		return int64(n)
	case string:
		i, _ := strconv.ParseInt(n, 10, 64)
		return i
	case []byte:
		i, _ := strconv.ParseInt(string(n), 10, 64)
		return i
	}
	return 0
}
