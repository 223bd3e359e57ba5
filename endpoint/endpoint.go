package endpoint

import (
	"go.uber.org/zap"

	"github.com/datastax/sql-datatables/config"
	"github.com/datastax/sql-datatables/db"
	"github.com/datastax/sql-datatables/graphql"
	"github.com/datastax/sql-datatables/log"
	"github.com/datastax/sql-datatables/rest"
	"github.com/datastax/sql-datatables/schema"
	"github.com/datastax/sql-datatables/types"
)

type DataEndpointConfig struct {
	dbDriver string
	dbDSN    string
	tables   []config.TableConfig
	naming   config.NamingConvention
	logger   log.Logger
}

func (cfg DataEndpointConfig) Naming() config.NamingConvention {
	return cfg.naming
}

func (cfg DataEndpointConfig) Logger() log.Logger {
	return cfg.logger
}

func (cfg DataEndpointConfig) Tables() []config.TableConfig {
	return cfg.tables
}

func (cfg *DataEndpointConfig) WithTables(tables []config.TableConfig) *DataEndpointConfig {
	cfg.tables = tables
	return cfg
}

func (cfg *DataEndpointConfig) WithNaming(naming config.NamingConvention) *DataEndpointConfig {
	cfg.naming = naming
	return cfg
}

func (cfg DataEndpointConfig) NewEndpoint() (*DataEndpoint, error) {
	dbClient, err := db.NewDb(cfg.dbDriver, cfg.dbDSN, cfg.logger)
	if err != nil {
		return nil, err
	}

	endpoint, err := cfg.newEndpointWithDb(dbClient)
	if err != nil {
		_ = dbClient.Close()
		return nil, err
	}
	return endpoint, nil
}

func (cfg DataEndpointConfig) newEndpointWithDb(dbClient *db.Db) (*DataEndpoint, error) {
	tables, err := schema.NewRegistry(dbClient, cfg.tables, cfg)
	if err != nil {
		return nil, err
	}

	return &DataEndpoint{
		dbClient:        dbClient,
		tables:          tables,
		graphQLRouteGen: graphql.NewRouteGenerator(tables, cfg),
		restRouteGen:    rest.NewRouteGenerator(tables, cfg),
	}, nil
}

type DataEndpoint struct {
	dbClient        *db.Db
	tables          *schema.Registry
	graphQLRouteGen *graphql.RouteGenerator
	restRouteGen    *rest.RouteGenerator
}

func NewEndpointConfig(driver string, dsn string) (*DataEndpointConfig, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return NewEndpointConfigWithLogger(log.NewZapLogger(logger), driver, dsn), nil
}

func NewEndpointConfigWithLogger(logger log.Logger, driver string, dsn string) *DataEndpointConfig {
	return &DataEndpointConfig{
		dbDriver: driver,
		dbDSN:    dsn,
		naming:   config.NewDefaultNaming(),
		logger:   logger,
	}
}

// Tables gets the names of the exposed tables
func (e *DataEndpoint) Tables() []string {
	return e.tables.Names()
}

func (e *DataEndpoint) RoutesGraphQL(pattern string) ([]types.Route, error) {
	return e.graphQLRouteGen.Routes(pattern)
}

func (e *DataEndpoint) RoutesRest(prefix string) []types.Route {
	return e.restRouteGen.Routes(prefix)
}

// Close releases the database connections
func (e *DataEndpoint) Close() error {
	return e.dbClient.Close()
}
