package translator

import (
	"strings"

	"github.com/datastax/sql-datatables/types"
)

// PredicateBuilder replaces the default predicate of a column. Implementations bind their own
// parameters on the query they receive.
type PredicateBuilder interface {
	BuildPredicate(query types.Query, value string) types.Expression
}

// PredicateBuilderFunc adapts a function to PredicateBuilder
type PredicateBuilderFunc func(query types.Query, value string) types.Expression

func (f PredicateBuilderFunc) BuildPredicate(query types.Query, value string) types.Expression {
	return f(query, value)
}

// Predicates contains the built-in predicate builders that can be referenced by name from the
// configuration, keyed by name and created for a resolved column expression
var Predicates = map[string]func(field string) PredicateBuilder{
	"exact":  ExactPredicate,
	"prefix": PrefixPredicate,
	"ilike":  ILikePredicate,
}

// ExactPredicate matches the value with equality, whatever the search phase
func ExactPredicate(field string) PredicateBuilder {
	return PredicateBuilderFunc(func(query types.Query, value string) types.Expression {
		return query.Expr().Eq(field, query.CreateNamedParameter(value))
	})
}

// PrefixPredicate matches values starting with the search value
func PrefixPredicate(field string) PredicateBuilder {
	return PredicateBuilderFunc(func(query types.Query, value string) types.Expression {
		return query.Expr().Like(field, query.CreateNamedParameter(value+"%"))
	})
}

// ILikePredicate matches values containing the search value, ignoring case
func ILikePredicate(field string) PredicateBuilder {
	return PredicateBuilderFunc(func(query types.Query, value string) types.Expression {
		param := query.CreateNamedParameter("%" + strings.ToLower(value) + "%")
		return query.Expr().Like("lower("+field+")", param)
	})
}
