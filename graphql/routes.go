package graphql

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/graphql-go/graphql"

	"github.com/datastax/sql-datatables/config"
	"github.com/datastax/sql-datatables/log"
	"github.com/datastax/sql-datatables/schema"
	"github.com/datastax/sql-datatables/types"
)

type executeQueryFunc func(query string, variables map[string]interface{}, ctx context.Context) *graphql.Result

type RouteGenerator struct {
	tables *schema.Registry
	logger log.Logger
}

type RequestBody struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

func NewRouteGenerator(tables *schema.Registry, cfg config.Config) *RouteGenerator {
	return &RouteGenerator{
		tables: tables,
		logger: log.OrNop(cfg.Logger()),
	}
}

// Routes builds the schema of the tables and returns the GET and POST routes serving it on pattern
func (rg *RouteGenerator) Routes(pattern string) ([]types.Route, error) {
	schema, err := BuildSchema(rg.tables)
	if err != nil {
		return nil, fmt.Errorf("unable to build graphql schema: %s", err)
	}

	return routesForSchema(pattern, func(query string, variables map[string]interface{}, ctx context.Context) *graphql.Result {
		return rg.executeQuery(query, variables, ctx, schema)
	}), nil
}

func routesForSchema(pattern string, execute executeQueryFunc) []types.Route {
	return []types.Route{
		{
			Method:  http.MethodGet,
			Pattern: pattern,
			Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				var variables map[string]interface{}
				if value := r.URL.Query().Get("variables"); value != "" {
					if err := json.Unmarshal([]byte(value), &variables); err != nil {
						http.Error(w, "Variables are invalid", 400)
						return
					}
				}

				result := execute(r.URL.Query().Get("query"), variables, r.Context())
				writeResult(w, result)
			}),
		},
		{
			Method:  http.MethodPost,
			Pattern: pattern,
			Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Body == nil {
					http.Error(w, "No request body", 400)
					return
				}

				var body RequestBody
				err := json.NewDecoder(r.Body).Decode(&body)
				if err != nil {
					http.Error(w, "Request body is invalid", 400)
					return
				}

				result := execute(body.Query, body.Variables, r.Context())
				writeResult(w, result)
			}),
		},
	}
}

func writeResult(w http.ResponseWriter, result *graphql.Result) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	err := json.NewEncoder(w).Encode(result)
	if err != nil {
		http.Error(w, "response could not be encoded: "+err.Error(), 500)
	}
}

func (rg *RouteGenerator) executeQuery(
	query string, variables map[string]interface{}, ctx context.Context, schema graphql.Schema,
) *graphql.Result {
	result := graphql.Do(graphql.Params{
		Schema:         schema,
		RequestString:  query,
		VariableValues: variables,
		Context:        ctx,
	})
	if len(result.Errors) > 0 {
		rg.logger.Error("unexpected errors processing graphql query", "errors", result.Errors)
	}
	return result
}
