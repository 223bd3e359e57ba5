package testutil

import (
	"os"
	"strings"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	// Registers the "sqlite" driver
	_ "modernc.org/sqlite"

	"github.com/datastax/sql-datatables/internal/testutil/schemas"
	"github.com/datastax/sql-datatables/log"
)

// NewSQLiteFixture returns a private in-memory database with the users schema loaded
func NewSQLiteFixture() *sqlx.DB {
	conn, err := sqlx.Connect("sqlite", ":memory:")
	PanicIfError(err)

	// Every pooled connection would get its own in-memory database
	conn.SetMaxOpenConns(1)

	for _, stmt := range schemas.Users() {
		_, err := conn.Exec(stmt)
		PanicIfError(err)
	}

	return conn
}

func PanicIfError(err error) {
	if err != nil {
		panic(err)
	}
}

func TestLogger() log.Logger {
	if strings.ToUpper(os.Getenv("TEST_TRACE")) == "ON" {
		logger, err := zap.NewDevelopment()
		if err != nil {
			panic(err)
		}
		return log.NewZapLogger(logger)
	}

	return log.NewZapLogger(zap.NewNop())
}
