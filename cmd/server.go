package cmd

import (
	"errors"
	"fmt"
	log2 "log"
	"net/http"
	"os"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/datastax/sql-datatables/config"
	"github.com/datastax/sql-datatables/db"
	"github.com/datastax/sql-datatables/endpoint"
	"github.com/datastax/sql-datatables/graphql"
	"github.com/datastax/sql-datatables/log"
)

const defaultGraphQLPath = "/graphql"
const defaultGraphQLPlaygroundPath = "/graphql-playground"
const defaultRESTPath = "/"

// Environment variables prefixed with "DATATABLES_" can override settings e.g. "DATATABLES_DSN"
const envVarPrefix = "datatables"

var cfgFile string
var logger log.Logger

var serverCmd = &cobra.Command{
	Use:   os.Args[0] + " --driver [sqlite|postgres] --dsn [DSN] --config [FILE] [OPTIONS]",
	Short: "Server-side processing endpoints for data grids over SQL databases",
	Args: func(cmd *cobra.Command, args []string) error {
		driver := viper.GetString("driver")
		if driver != db.DriverSQLite && driver != db.DriverPostgres {
			return fmt.Errorf("driver must be either '%s' or '%s'", db.DriverSQLite, db.DriverPostgres)
		}

		if viper.GetString("dsn") == "" {
			return errors.New("dsn is required")
		}

		if !viper.GetBool("start-rest") && !viper.GetBool("start-graphql") {
			return errors.New("at least one endpoint type should be started")
		}

		if viper.GetBool("start-rest") && viper.GetBool("start-graphql") &&
			viper.GetString("graphql-path") == viper.GetString("rest-path") {
			return errors.New("graphql and rest paths can not be the same")
		}

		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		endpoint := createEndpoint()
		defer endpoint.Close()

		router := createRouter()
		endpointNames := make([]string, 0, 2)
		if viper.GetBool("start-rest") {
			addRESTRoutes(router, endpoint)
			endpointNames = append(endpointNames, "REST")
		}
		if viper.GetBool("start-graphql") {
			addGraphQLRoutes(router, endpoint)
			endpointNames = append(endpointNames, "GraphQL")
		}

		listenAndServe(router, viper.GetInt("port"), strings.Join(endpointNames, "/"))
	},
}

// Execute starts the REST/GraphQL endpoints
func Execute() {
	zapLogger, err := zap.NewProduction()
	if err != nil {
		log2.Fatalf("unable to initialize logger: %v", err)
	}

	logger = log.NewZapLogger(zapLogger)

	flags := serverCmd.PersistentFlags()

	// General endpoint flags
	flags.StringVarP(&cfgFile, "config", "c", "", "config file, declares the exposed tables")
	flags.String("driver", db.DriverSQLite, "database driver: sqlite or postgres")
	flags.String("dsn", "", "data source name used to connect to the database")
	flags.Int("port", 8080, "endpoint port")
	flags.String("naming", config.NamingNone, "naming convention of the grid fields: none or snake")
	flags.Bool("request-logging", false, "enable request logging")
	flags.String("access-control-allow-origin", "", "Access-Control-Allow-Origin header value")

	// REST specific flags
	flags.Bool("start-rest", true, "start the REST endpoint")
	flags.String("rest-path", defaultRESTPath, "REST endpoint path")

	// GraphQL specific flags
	flags.Bool("start-graphql", false, "start the GraphQL endpoint")
	flags.String("graphql-path", defaultGraphQLPath, "GraphQL endpoint path")
	flags.Bool("graphql-playground", true, "expose a GraphQL playground route")
	flags.String("graphql-playground-path", defaultGraphQLPlaygroundPath, "path for the GraphQL playground static file")

	flags.VisitAll(func(flag *pflag.Flag) {
		if flag.Name != "config" {
			_ = viper.BindPFlag(flag.Name, flags.Lookup(flag.Name))
		}
	})

	cobra.OnInitialize(initialize)

	viper.SetEnvPrefix(envVarPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := serverCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func createEndpoint() *endpoint.DataEndpoint {
	naming, err := config.NewNaming(viper.GetString("naming"))
	if err != nil {
		logger.Fatal("invalid naming convention", "error", err)
	}

	tables, err := config.DecodeTables(viper.Get("tables"))
	if err != nil {
		logger.Fatal("invalid tables configuration", "error", err)
	}

	if len(tables) == 0 {
		logger.Warn("no tables are declared, use a config file with a 'tables' section")
	}

	cfg := endpoint.NewEndpointConfigWithLogger(logger, viper.GetString("driver"), viper.GetString("dsn"))
	cfg.
		WithTables(tables).
		WithNaming(naming)

	endpoint, err := cfg.NewEndpoint()
	if err != nil {
		logger.Fatal("unable create new endpoint",
			"error", err)
	}

	return endpoint
}

func addGraphQLRoutes(router *httprouter.Router, endpoint *endpoint.DataEndpoint) {
	rootPath := viper.GetString("graphql-path")

	routes, err := endpoint.RoutesGraphQL(rootPath)
	if err != nil {
		logger.Fatal("unable to generate graphql routes",
			"error", err)
	}

	for _, route := range routes {
		router.Handler(route.Method, route.Pattern, route.Handler)
	}

	if viper.GetBool("graphql-playground") {
		playgroundPath := viper.GetString("graphql-playground-path")
		hostAndPort := fmt.Sprintf("http://localhost:%d", viper.GetInt("port"))
		logger.Info("get started by visiting the GraphQL playground",
			"url", fmt.Sprintf("%s%s", hostAndPort, playgroundPath))
		router.GET(playgroundPath, graphql.GetPlaygroundHandle(hostAndPort+rootPath, endpoint.Tables()))
	}
}

func addRESTRoutes(router *httprouter.Router, endpoint *endpoint.DataEndpoint) {
	for _, route := range endpoint.RoutesRest(viper.GetString("rest-path")) {
		router.Handler(route.Method, route.Pattern, route.Handler)
	}
}

func maybeAddRequestLogging(handler http.Handler) http.Handler {
	if viper.GetBool("request-logging") {
		handler = log.NewLoggingHandler(handler, logger)
	}
	return handler
}

func maybeAddCORS(handler http.Handler) http.Handler {
	if value := viper.GetString("access-control-allow-origin"); value != "" {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", value)
			handler.ServeHTTP(w, r)
		})
	}
	return handler
}

func initialize() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			logger.Fatal("unable to read config file",
				"file", cfgFile,
				"error", err)
		}
		logger.Info("using config file",
			"file", viper.ConfigFileUsed())
	}
}

func createRouter() *httprouter.Router {
	router := httprouter.New()
	if value := viper.GetString("access-control-allow-origin"); value != "" {
		router.GlobalOPTIONS = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Access-Control-Request-Method") != "" {
				header := w.Header()
				header.Set("Access-Control-Allow-Methods", r.Header.Get("Access-Control-Request-Method"))
				header.Set("Access-Control-Allow-Headers", r.Header.Get("Access-Control-Request-Headers"))
				header.Set("Access-Control-Allow-Origin", value)
			}

			w.WriteHeader(http.StatusNoContent)
		})
	}
	return router
}

func listenAndServe(handler http.Handler, port int, endpointNames string) {
	logger.Info("server listening",
		"port", port,
		"type", endpointNames)
	handler = maybeAddCORS(maybeAddRequestLogging(handler))
	err := http.ListenAndServe(fmt.Sprintf(":%d", port), handler)
	if err != nil {
		logger.Fatal("unable to start server",
			"port", port,
			"error", err)
	}
}
