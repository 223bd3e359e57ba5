package schemas

import "fmt"

const (
	// UsersCount is the number of rows in the users table
	UsersCount = 100
	// UsersFooCount is the number of users whose first name contains "foo"
	UsersFooCount = 20
	// UsersCities is the number of distinct cities
	UsersCities = 4
)

var firstNames = []string{"Alice", "Bob", "Carol", "Dave", "Eve", "Foo", "Foobar", "Grace", "Heidi", "Ivan"}

var cities = []string{"Austin", "Boston", "Chicago", "Denver"}

// Users returns the statements creating and filling the users table.
//
// Row i (1..100) has first_name firstNames[i%10], last_name "Last%03d", age 20+i%30 and
// city cities[i%4].
func Users() []string {
	stmts := []string{
		`CREATE TABLE users (
			id INTEGER PRIMARY KEY,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			email TEXT NOT NULL,
			age INTEGER NOT NULL,
			city TEXT NOT NULL
		)`,
	}

	for i := 1; i <= UsersCount; i++ {
		stmts = append(stmts, fmt.Sprintf(
			"INSERT INTO users (id, first_name, last_name, email, age, city) VALUES (%d, '%s', 'Last%03d', 'user%03d@example.com', %d, '%s')",
			i, firstNames[i%10], i, i, 20+i%30, cities[i%4]))
	}

	return stmts
}
