// types package contains the public API types
// that are shared between the translator, the query capability and the transports
package types

import (
	"context"
	"net/http"
)

// Expression is a predicate fragment that renders to SQL with named parameter placeholders.
// It has the same method set as squirrel's Sqlizer.
type Expression interface {
	ToSql() (string, []interface{}, error)
}

// ExpressionBuilder creates predicates against a field and a named parameter. The param is the
// parameter name without the leading colon.
type ExpressionBuilder interface {
	Eq(field string, param string) Expression
	Neq(field string, param string) Expression
	Lt(field string, param string) Expression
	Gt(field string, param string) Expression
	Like(field string, param string) Expression
	And(expressions ...Expression) Expression
	Or(expressions ...Expression) Expression
}

// Query is a composable select statement. Mutating methods return the receiver to allow chaining,
// Clone returns an independent copy.
type Query interface {
	Clone() Query
	Expr() ExpressionBuilder

	SetParameter(name string, value interface{}) Query
	// CreateNamedParameter binds value on a generated parameter name and returns that name
	CreateNamedParameter(value interface{}) string
	Parameters() map[string]interface{}

	AndWhere(expression Expression) Query
	AddOrderBy(field string, direction string) Query
	SetFirstResult(offset int) Query
	SetMaxResults(limit int) Query

	ResetSelect() Query
	Select(columns ...string) Query
	ResetGroupBy() Query
	ResetHaving() Query

	FetchAll(ctx context.Context) ([]map[string]interface{}, error)
	FetchInt(ctx context.Context) (int64, error)
}

// Route represents a request route to be served
type Route struct {
	Method  string
	Pattern string
	Handler http.Handler
}
