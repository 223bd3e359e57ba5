package db

import (
	// Registers the "postgres" driver
	_ "github.com/lib/pq"
	// Registers the "sqlite" driver
	_ "modernc.org/sqlite"
)
