package rest

import (
	"fmt"
	"net/http"
	"path"

	"github.com/julienschmidt/httprouter"

	"github.com/datastax/sql-datatables/config"
	"github.com/datastax/sql-datatables/log"
	m "github.com/datastax/sql-datatables/models"
	e "github.com/datastax/sql-datatables/rest/errors"
	"github.com/datastax/sql-datatables/schema"
	"github.com/datastax/sql-datatables/types"
)

type RouteGenerator struct {
	tables *schema.Registry
	config config.Config
}

func NewRouteGenerator(tables *schema.Registry, cfg config.Config) *RouteGenerator {
	return &RouteGenerator{
		tables: tables,
		config: cfg,
	}
}

type routeList struct {
	tables *schema.Registry
	logger log.Logger
	params func(*http.Request, string) string
}

// Routes returns the REST routes under prefix: the table listing and the grid endpoint of each table
func (g *RouteGenerator) Routes(prefix string) []types.Route {
	rl := routeList{
		tables: g.tables,
		logger: log.OrNop(g.config.Logger()),
		params: func(r *http.Request, name string) string {
			return httprouter.ParamsFromContext(r.Context()).ByName(name)
		},
	}

	tablesPattern := path.Join("/", prefix, "tables")
	tablePattern := path.Join(tablesPattern, ":tableName")

	return []types.Route{
		{
			Method:  http.MethodGet,
			Pattern: tablesPattern,
			Handler: http.HandlerFunc(rl.GetTables),
		},
		{
			Method:  http.MethodGet,
			Pattern: tablePattern,
			Handler: http.HandlerFunc(rl.QueryTable),
		},
		{
			Method:  http.MethodPost,
			Pattern: tablePattern,
			Handler: http.HandlerFunc(rl.QueryTable),
		},
	}
}

func (s *routeList) GetTables(w http.ResponseWriter, r *http.Request) {
	RespondJSONObjectWithCode(w, http.StatusOK, m.TablesResponse{Tables: s.tables.Names()})
}

func (s *routeList) QueryTable(w http.ResponseWriter, r *http.Request) {
	request, err := DecodeRequest(r)
	if err != nil {
		s.respondWithError(w, nil, err)
		return
	}

	tableName := s.params(r, "tableName")
	table := s.tables.Table(tableName)
	if table == nil {
		s.respondWithError(w, request.Draw, e.NewNotFoundError(fmt.Sprintf("table '%s' not found", tableName)))
		return
	}

	response, err := table.Response(r.Context(), request)
	if err != nil {
		s.respondWithError(w, request.Draw, err)
		return
	}

	RespondJSONObjectWithCode(w, http.StatusOK, response)
}

func (s *routeList) respondWithError(w http.ResponseWriter, draw interface{}, err error) {
	code, err := errorStatus(err, s.logger)
	RespondWithError(w, draw, err, code)
}
