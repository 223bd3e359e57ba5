package translator

import (
	"regexp"

	"github.com/datastax/sql-datatables/types"
)

type filterOperator int

const (
	opEquals filterOperator = iota
	opNotEquals
	opContains
	opLessThan
	opGreaterThan
)

var filterOperatorPattern = regexp.MustCompile(`^\[(!=|=|%|<|>)\]`)

// parseFilterOperator splits an optional "[op]" prefix from a column search value
func parseFilterOperator(value string) (filterOperator, string) {
	match := filterOperatorPattern.FindStringSubmatch(value)
	if match == nil {
		return opEquals, value
	}

	operand := value[len(match[0]):]
	switch match[1] {
	case "!=":
		return opNotEquals, operand
	case "%":
		return opContains, operand
	case "<":
		return opLessThan, operand
	case ">":
		return opGreaterThan, operand
	default:
		return opEquals, operand
	}
}

func (op filterOperator) expression(expr types.ExpressionBuilder, field string, param string) types.Expression {
	switch op {
	case opNotEquals:
		return expr.Neq(field, param)
	case opContains:
		return expr.Like(field, param)
	case opLessThan:
		return expr.Lt(field, param)
	case opGreaterThan:
		return expr.Gt(field, param)
	default:
		return expr.Eq(field, param)
	}
}
