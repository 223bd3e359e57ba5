package db

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/datastax/sql-datatables/types"
)

type expressionBuilder struct{}

func comparison(field string, operator string, param string) types.Expression {
	return sq.Expr(escapeColons(field) + " " + operator + " :" + param)
}

func (expressionBuilder) Eq(field string, param string) types.Expression {
	return comparison(field, "=", param)
}

func (expressionBuilder) Neq(field string, param string) types.Expression {
	return comparison(field, "<>", param)
}

func (expressionBuilder) Lt(field string, param string) types.Expression {
	return comparison(field, "<", param)
}

func (expressionBuilder) Gt(field string, param string) types.Expression {
	return comparison(field, ">", param)
}

func (expressionBuilder) Like(field string, param string) types.Expression {
	return comparison(field, "LIKE", param)
}

func (expressionBuilder) And(expressions ...types.Expression) types.Expression {
	return sq.And(toSqlizers(expressions))
}

func (expressionBuilder) Or(expressions ...types.Expression) types.Expression {
	return sq.Or(toSqlizers(expressions))
}

func toSqlizers(expressions []types.Expression) []sq.Sqlizer {
	result := make([]sq.Sqlizer, 0, len(expressions))
	for _, e := range expressions {
		result = append(result, e)
	}
	return result
}
