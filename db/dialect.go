package db

import "strconv"

// limitClause renders pagination for the given driver. SQLite refuses OFFSET without LIMIT, so an
// unbounded page there uses LIMIT -1.
func limitClause(driver string, hasLimit bool, limit int, offset int) string {
	clause := ""
	if hasLimit {
		clause = " LIMIT " + strconv.Itoa(limit)
	} else if offset > 0 && driver == DriverSQLite {
		clause = " LIMIT -1"
	}

	if offset > 0 {
		clause += " OFFSET " + strconv.Itoa(offset)
	}

	return clause
}
