package db

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/datastax/sql-datatables/log"
	"github.com/datastax/sql-datatables/types"
)

// Supported driver names
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Db represents a connection to a db
type Db struct {
	conn   *sqlx.DB
	logger log.Logger
}

// NewDb opens and pings a connection using one of the supported drivers
func NewDb(driver string, dsn string, logger log.Logger) (*Db, error) {
	if driver != DriverSQLite && driver != DriverPostgres {
		return nil, fmt.Errorf("unsupported driver '%s'", driver)
	}

	conn, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, err
	}

	if conn == nil {
		return nil, errors.New("failed to create connection")
	}

	return NewDbWithConnectedInstance(conn, logger), nil
}

// NewDbWithConnectedInstance wraps an already connected instance
func NewDbWithConnectedInstance(conn *sqlx.DB, logger log.Logger) *Db {
	return &Db{
		conn:   conn,
		logger: log.OrNop(logger),
	}
}

// DriverName returns the driver used by the underlying connection
func (db *Db) DriverName() string {
	return db.conn.DriverName()
}

// Conn exposes the underlying connection
func (db *Db) Conn() *sqlx.DB {
	return db.conn
}

// Close closes the underlying connection
func (db *Db) Close() error {
	return db.conn.Close()
}

// Select starts a new query selecting columns, or every column when none is provided
func (db *Db) Select(columns ...string) *SelectQuery {
	if len(columns) == 0 {
		columns = []string{"*"}
	}
	return newSelectQuery(db, sq.Select(escapeAll(columns)...))
}

// FromBuilder starts a new query from an existing squirrel select builder. The builder's SQL is
// used as is: literal colons must already be doubled.
func (db *Db) FromBuilder(builder sq.SelectBuilder) *SelectQuery {
	return newSelectQuery(db, builder)
}

func (db *Db) queryRows(ctx context.Context, query string, values []interface{}) ([]map[string]interface{}, error) {
	db.logger.Debug("executing query", "query", query, "values", values)

	rows, err := db.conn.QueryxContext(ctx, query, values...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]map[string]interface{}, 0)
	for rows.Next() {
		row := make(map[string]interface{})
		if err := rows.MapScan(row); err != nil {
			return nil, err
		}
		items = append(items, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return types.ToJsonValues(items), nil
}

func (db *Db) queryInt(ctx context.Context, query string, values []interface{}) (int64, error) {
	db.logger.Debug("executing scalar query", "query", query, "values", values)

	var result int64
	if err := db.conn.QueryRowxContext(ctx, query, values...).Scan(&result); err != nil {
		return 0, err
	}
	return result, nil
}
