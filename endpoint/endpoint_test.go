package endpoint

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/julienschmidt/httprouter"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datastax/sql-datatables/config"
	"github.com/datastax/sql-datatables/db"
	"github.com/datastax/sql-datatables/graphql"
	. "github.com/datastax/sql-datatables/internal/testutil"
	"github.com/datastax/sql-datatables/internal/testutil/schemas"
	"github.com/datastax/sql-datatables/types"
)

const (
	getIndex  = 0
	postIndex = 1
)

func usersTables() []config.TableConfig {
	return []config.TableConfig{
		{
			Name:        "users",
			From:        "users",
			Select:      []string{"id", "first_name", "city"},
			IndexColumn: "id",
			Columns: []config.ColumnConfig{
				{Expression: "id"},
				{Expression: "first_name", Transform: "lower"},
				{Expression: "city", Aliases: []string{"town"}, Predicate: "exact"},
			},
		},
		{
			Name:          "cities",
			From:          "users",
			Select:        []string{"city", "count(*) AS total"},
			GroupBy:       []string{"city"},
			IndexColumn:   "city",
			CountDistinct: true,
			Columns:       []config.ColumnConfig{{Expression: "city"}},
		},
	}
}

func newTestEndpoint(naming string) *DataEndpoint {
	namingConvention, err := config.NewNaming(naming)
	PanicIfError(err)

	cfg := NewEndpointConfigWithLogger(TestLogger(), db.DriverSQLite, ":memory:").
		WithTables(usersTables()).
		WithNaming(namingConvention)

	endpoint, err := cfg.newEndpointWithDb(db.NewDbWithConnectedInstance(NewSQLiteFixture(), TestLogger()))
	PanicIfError(err)
	return endpoint
}

func newRouter(routes ...[]types.Route) *httprouter.Router {
	router := httprouter.New()
	for _, group := range routes {
		for _, route := range group {
			router.Handler(route.Method, route.Pattern, route.Handler)
		}
	}
	return router
}

func serve(handler http.Handler, r *http.Request) map[string]interface{} {
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	var body map[string]interface{}
	PanicIfError(json.NewDecoder(w.Body).Decode(&body))
	return body
}

var _ = Describe("DataEndpoint", func() {
	var endpoint *DataEndpoint

	AfterEach(func() {
		if endpoint != nil {
			Expect(endpoint.Close()).To(Succeed())
		}
	})

	Describe("RoutesRest()", func() {
		var router *httprouter.Router

		BeforeEach(func() {
			endpoint = newTestEndpoint(config.NamingSnake)
			router = newRouter(endpoint.RoutesRest("/v1"))
		})

		It("Should list the tables", func() {
			body := serve(router, httptest.NewRequest(http.MethodGet, "/v1/tables", nil))
			Expect(body).To(Equal(map[string]interface{}{"tables": []interface{}{"cities", "users"}}))
		})

		It("Should filter with transforms and predicates", func() {
			values := url.Values{}
			values.Set("draw", "12")
			values.Set("columns[0][data]", "firstName")
			values.Set("columns[0][searchable]", "true")
			values.Set("columns[0][search][value]", "FOOBAR")
			values.Set("columns[1][data]", "town")
			values.Set("columns[1][searchable]", "true")
			values.Set("columns[1][search][value]", "Chicago")
			values.Set("columns[2][data]", "id")
			values.Set("columns[2][searchable]", "false")
			values.Set("order[0][column]", "2")
			values.Set("order[0][dir]", "DESC")
			values.Set("length", "2")

			body := serve(router, httptest.NewRequest(http.MethodGet, "/v1/tables/users?"+values.Encode(), nil))

			// Chicago is cities[i%4 == 2], "Foobar" is firstNames[i%10 == 6]: 6, 26, 46, 66 and 86
			Expect(body["draw"]).To(Equal("12"))
			Expect(body["recordsTotal"]).To(BeNumerically("==", schemas.UsersCount))
			Expect(body["recordsFiltered"]).To(BeNumerically("==", 5))
			Expect(body["data"]).To(Equal([]interface{}{
				map[string]interface{}{"id": float64(86), "firstName": "Foobar", "city": "Chicago"},
				map[string]interface{}{"id": float64(66), "firstName": "Foobar", "city": "Chicago"},
			}))
		})

		It("Should count groups of a grouped table", func() {
			values := url.Values{}
			values.Set("draw", "1")
			values.Set("columns[0][data]", "city")
			values.Set("columns[0][searchable]", "true")
			values.Set("columns[0][search][value]", "[!=]Austin")
			values.Set("order[0][column]", "0")

			body := serve(router, httptest.NewRequest(http.MethodGet, "/v1/tables/cities?"+values.Encode(), nil))
			Expect(body["recordsTotal"]).To(BeNumerically("==", schemas.UsersCities))
			Expect(body["recordsFiltered"]).To(BeNumerically("==", schemas.UsersCities-1))
			Expect(body["data"]).To(ConsistOf(
				map[string]interface{}{"city": "Boston", "total": float64(25)},
				map[string]interface{}{"city": "Chicago", "total": float64(25)},
				map[string]interface{}{"city": "Denver", "total": float64(25)},
			))
		})

		It("Should reject columns outside the table", func() {
			values := url.Values{}
			values.Set("draw", "2")
			values.Set("columns[0][data]", "email")
			values.Set("columns[0][searchable]", "true")

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/tables/users?"+values.Encode(), nil))
			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(w.Body.String()).To(MatchJSON(`{"draw": "2", "error": "unknown column 'email' at position 0"}`))
		})
	})

	Describe("RoutesGraphQL()", func() {
		var routes []types.Route

		BeforeEach(func() {
			endpoint = newTestEndpoint(config.NamingNone)
			var err error
			routes, err = endpoint.RoutesGraphQL("/graphql")
			Expect(err).ToNot(HaveOccurred())
			Expect(routes).To(HaveLen(2))
		})

		It("Should serve the table query", func() {
			b, err := json.Marshal(graphql.RequestBody{
				Query: `{
					table(name: "users", draw: "5", start: 1, length: 1,
						columns: [{data: "town", searchable: true, search: {value: "Denver"}}, {data: "id"}],
						order: [{column: 1}]) {
						draw recordsTotal recordsFiltered data
					}
				}`,
			})
			Expect(err).ToNot(HaveOccurred())

			body := serve(routes[postIndex].Handler, httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewReader(b)))

			// Denver is cities[i%4 == 3]: 3, 7, 11...
			Expect(body).To(Equal(map[string]interface{}{
				"data": map[string]interface{}{
					"table": map[string]interface{}{
						"draw":            "5",
						"recordsTotal":    float64(schemas.UsersCount),
						"recordsFiltered": float64(25),
						"data": []interface{}{
							map[string]interface{}{"id": float64(7), "first_name": "Grace", "city": "Denver"},
						},
					},
				},
			}))
		})

		It("Should list the tables", func() {
			target := "/graphql?query=" + url.QueryEscape("{ tables }")
			body := serve(routes[getIndex].Handler, httptest.NewRequest(http.MethodGet, target, nil))
			Expect(body).To(Equal(map[string]interface{}{
				"data": map[string]interface{}{"tables": []interface{}{"cities", "users"}},
			}))
		})
	})
})

func TestNewEndpoint(t *testing.T) {
	cfg := NewEndpointConfigWithLogger(TestLogger(), db.DriverSQLite, ":memory:").WithTables(usersTables())
	endpoint, err := cfg.NewEndpoint()
	require.NoError(t, err)
	defer endpoint.Close()

	assert.Equal(t, []string{"cities", "users"}, endpoint.Tables())
	assert.Len(t, endpoint.RoutesRest("/"), 3)
}

func TestNewEndpointErrors(t *testing.T) {
	_, err := NewEndpointConfigWithLogger(TestLogger(), "mysql", "").NewEndpoint()
	assert.Error(t, err)

	tables := usersTables()
	tables[0].Columns[0].Transform = "reverse"
	_, err = NewEndpointConfigWithLogger(TestLogger(), db.DriverSQLite, ":memory:").WithTables(tables).NewEndpoint()
	assert.EqualError(t, err, "unable to build table 'users': unknown transform 'reverse' for column 'id'")
}

func TestEndpoint(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Endpoint test suite")
}
