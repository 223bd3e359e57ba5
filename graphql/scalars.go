package graphql

import (
	"encoding/json"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"
)

// row is an output only scalar, rows have a shape that depends on the table projection
var row = graphql.NewScalar(graphql.ScalarConfig{
	Name: "Row",
	Description: "The `Row` scalar type represents a result row as a JSON object," +
		" keyed by column name.",
	Serialize:    serializeRow,
	ParseValue:   parseRow,
	ParseLiteral: parseRowLiteral,
})

func serializeRow(value interface{}) interface{} {
	switch value := value.(type) {
	case map[string]interface{}:
		return value
	case []byte:
		return json.RawMessage(value)
	default:
		return nil
	}
}

func parseRow(value interface{}) interface{} {
	switch value := value.(type) {
	case map[string]interface{}:
		return value
	case string:
		var parsed map[string]interface{}
		if err := json.Unmarshal([]byte(value), &parsed); err != nil {
			return nil
		}
		return parsed
	default:
		return nil
	}
}

func parseRowLiteral(valueAST ast.Value) interface{} {
	switch valueAST := valueAST.(type) {
	case *ast.StringValue:
		return parseRow(valueAST.Value)
	}
	return nil
}
