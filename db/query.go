package db

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lann/builder"

	"github.com/datastax/sql-datatables/types"
)

// ErrPositionalArgs is returned when the underlying builder carries positional arguments.
// Values must be bound with SetParameter so they can be shared across predicates.
var ErrPositionalArgs = errors.New("positional arguments are not supported, use named parameters")

const generatedParameterPrefix = "dcValue"

// SelectQuery implements types.Query on top of a squirrel select builder. Predicates reference
// parameters by name (":name"); names are compiled to driver bind vars by sqlx at execution time.
//
// Every SQL fragment handed to a SelectQuery goes through escapeColons, so casts ("age::text") and
// colons inside quoted literals reach the database unchanged. Only ":name" outside quotes binds.
type SelectQuery struct {
	db         *Db
	builder    sq.SelectBuilder
	parameters map[string]interface{}
	generated  int
	offset     int
	limit      int
	hasLimit   bool
}

func newSelectQuery(db *Db, b sq.SelectBuilder) *SelectQuery {
	return &SelectQuery{
		db:         db,
		builder:    b,
		parameters: make(map[string]interface{}),
	}
}

// From sets the FROM clause
func (q *SelectQuery) From(from string) *SelectQuery {
	q.builder = q.builder.From(escapeColons(from))
	return q
}

// Where adds a raw predicate to the WHERE clause
func (q *SelectQuery) Where(predicate string) *SelectQuery {
	q.builder = q.builder.Where(escapeColons(predicate))
	return q
}

// GroupBy adds GROUP BY expressions
func (q *SelectQuery) GroupBy(groupBys ...string) *SelectQuery {
	q.builder = q.builder.GroupBy(escapeAll(groupBys)...)
	return q
}

// Having adds a raw predicate to the HAVING clause
func (q *SelectQuery) Having(predicate string) *SelectQuery {
	q.builder = q.builder.Having(escapeColons(predicate))
	return q
}

func (q *SelectQuery) Clone() types.Query {
	parameters := make(map[string]interface{}, len(q.parameters))
	for k, v := range q.parameters {
		parameters[k] = v
	}

	// squirrel builders are persistent values, copying the struct is enough
	clone := *q
	clone.parameters = parameters
	return &clone
}

func (q *SelectQuery) Expr() types.ExpressionBuilder {
	return expressionBuilder{}
}

func (q *SelectQuery) SetParameter(name string, value interface{}) types.Query {
	q.parameters[name] = value
	return q
}

func (q *SelectQuery) CreateNamedParameter(value interface{}) string {
	q.generated++
	name := fmt.Sprintf("%s%d", generatedParameterPrefix, q.generated)
	q.parameters[name] = value
	return name
}

func (q *SelectQuery) Parameters() map[string]interface{} {
	return q.parameters
}

func (q *SelectQuery) AndWhere(expression types.Expression) types.Query {
	q.builder = q.builder.Where(expression)
	return q
}

func (q *SelectQuery) AddOrderBy(field string, direction string) types.Query {
	q.builder = q.builder.OrderBy(escapeColons(field) + " " + direction)
	return q
}

func (q *SelectQuery) SetFirstResult(offset int) types.Query {
	q.offset = offset
	return q
}

func (q *SelectQuery) SetMaxResults(limit int) types.Query {
	q.limit = limit
	q.hasLimit = true
	return q
}

func (q *SelectQuery) ResetSelect() types.Query {
	q.builder = q.builder.RemoveColumns()
	return q
}

func (q *SelectQuery) Select(columns ...string) types.Query {
	q.builder = q.builder.Columns(escapeAll(columns)...)
	return q
}

func (q *SelectQuery) ResetGroupBy() types.Query {
	q.builder = builder.Delete(q.builder, "GroupBys").(sq.SelectBuilder)
	return q
}

func (q *SelectQuery) ResetHaving() types.Query {
	q.builder = builder.Delete(q.builder, "HavingParts").(sq.SelectBuilder)
	return q
}

// SQL renders the statement in sqlx's named syntax, before driver specific binding.
func (q *SelectQuery) SQL() (string, error) {
	stmt, args, err := q.builder.ToSql()
	if err != nil {
		return "", err
	}

	if len(args) > 0 {
		return "", ErrPositionalArgs
	}

	return stmt + limitClause(q.db.DriverName(), q.hasLimit, q.limit, q.offset), nil
}

// IsGeneratedParameter reports whether name has the shape of the names CreateNamedParameter returns.
func IsGeneratedParameter(name string) bool {
	suffix := strings.TrimPrefix(name, generatedParameterPrefix)
	if suffix == name || suffix == "" {
		return false
	}
	_, err := strconv.Atoi(suffix)
	return err == nil
}

// escapeColons doubles the colons sqlx would otherwise read as bind names or collapse. ":name"
// outside of quotes stays a parameter reference.
func escapeColons(sql string) string {
	if strings.IndexByte(sql, ':') < 0 {
		return sql
	}

	var sb strings.Builder
	sb.Grow(len(sql) + 8)

	var quote byte
	for i := 0; i < len(sql); i++ {
		c := sql[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == ':' && i+1 < len(sql) && sql[i+1] == ':':
			sb.WriteString("::::")
			i++
			continue
		case c == ':' && i+1 < len(sql) && isNameStart(sql[i+1]):
			end := i + 1
			for end < len(sql) && isNamePart(sql[end]) {
				end++
			}
			sb.WriteString(sql[i:end])
			if end < len(sql) && sql[end] == ':' {
				// sqlx rejects a colon right after a name
				sb.WriteByte(' ')
			}
			i = end - 1
			continue
		}

		if c == ':' {
			sb.WriteString("::")
		} else {
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

func escapeAll(fragments []string) []string {
	escaped := make([]string, len(fragments))
	for i, fragment := range fragments {
		escaped[i] = escapeColons(fragment)
	}
	return escaped
}

func isNameStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isNamePart(c byte) bool {
	return isNameStart(c) || c == '.' || (c >= '0' && c <= '9')
}

// compile returns the statement and its values ready to be sent to the driver
func (q *SelectQuery) compile() (string, []interface{}, error) {
	stmt, err := q.SQL()
	if err != nil {
		return "", nil, err
	}

	stmt, values, err := sqlx.Named(stmt, q.parameters)
	if err != nil {
		return "", nil, fmt.Errorf("unable to bind named parameters: %w", err)
	}

	return q.db.conn.Rebind(stmt), values, nil
}

func (q *SelectQuery) FetchAll(ctx context.Context) ([]map[string]interface{}, error) {
	stmt, values, err := q.compile()
	if err != nil {
		return nil, err
	}
	return q.db.queryRows(ctx, stmt, values)
}

func (q *SelectQuery) FetchInt(ctx context.Context) (int64, error) {
	stmt, values, err := q.compile()
	if err != nil {
		return 0, err
	}
	return q.db.queryInt(ctx, stmt, values)
}
