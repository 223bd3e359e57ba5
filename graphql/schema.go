package graphql

import (
	"fmt"

	"github.com/graphql-go/graphql"

	m "github.com/datastax/sql-datatables/models"
	"github.com/datastax/sql-datatables/schema"
)

var searchInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "SearchInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"value": &graphql.InputObjectFieldConfig{Type: graphql.String},
		"regex": &graphql.InputObjectFieldConfig{Type: graphql.Boolean},
	},
})

var columnInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "ColumnInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"data":       &graphql.InputObjectFieldConfig{Type: graphql.String},
		"name":       &graphql.InputObjectFieldConfig{Type: graphql.String},
		"searchable": &graphql.InputObjectFieldConfig{Type: graphql.Boolean},
		"orderable":  &graphql.InputObjectFieldConfig{Type: graphql.Boolean},
		"search":     &graphql.InputObjectFieldConfig{Type: searchInput},
	},
})

var orderInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "OrderInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"column": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Int)},
		"dir":    &graphql.InputObjectFieldConfig{Type: graphql.String},
	},
})

var tableResultType = graphql.NewObject(graphql.ObjectConfig{
	Name: "TableResult",
	Fields: graphql.Fields{
		"draw":            &graphql.Field{Type: graphql.String},
		"recordsTotal":    &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"recordsFiltered": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"data":            &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(row)))},
	},
})

// BuildSchema creates the schema exposing the tables of the registry
func BuildSchema(tables *schema.Registry) (graphql.Schema, error) {
	return graphql.NewSchema(graphql.SchemaConfig{
		Query: graphql.NewObject(graphql.ObjectConfig{
			Name: "Query",
			Fields: graphql.Fields{
				"tables": &graphql.Field{
					Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.String))),
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						return tables.Names(), nil
					},
				},
				"table": &graphql.Field{
					Type: tableResultType,
					Args: graphql.FieldConfigArgument{
						"name":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
						"draw":    &graphql.ArgumentConfig{Type: graphql.String},
						"start":   &graphql.ArgumentConfig{Type: graphql.Int},
						"length":  &graphql.ArgumentConfig{Type: graphql.Int},
						"search":  &graphql.ArgumentConfig{Type: searchInput},
						"columns": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(columnInput)))},
						"order":   &graphql.ArgumentConfig{Type: graphql.NewList(graphql.NewNonNull(orderInput))},
					},
					Resolve: tableResolver(tables),
				},
			},
		}),
	})
}

func tableResolver(tables *schema.Registry) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		name := p.Args["name"].(string)
		table := tables.Table(name)
		if table == nil {
			return nil, fmt.Errorf("table '%s' not found", name)
		}

		request, err := m.DecodeRequest(p.Args)
		if err != nil {
			return nil, err
		}

		if err := request.Validate(); err != nil {
			return nil, err
		}

		return table.Response(p.Context, request)
	}
}
