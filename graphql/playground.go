package graphql

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/julienschmidt/httprouter"
)

const playgroundPage = `<!DOCTYPE html>
<html>
<head>
  <meta charset=utf-8/>
  <meta name="viewport" content="user-scalable=no, initial-scale=1.0, minimum-scale=1.0, maximum-scale=1.0, minimal-ui">
  <title>Data Tables GraphQL Playground</title>
  <link rel="stylesheet" href="//cdn.jsdelivr.net/npm/graphql-playground-react@1.7.20/build/static/css/index.css" />
  <link rel="shortcut icon" href="//cdn.jsdelivr.net/npm/graphql-playground-react@1.7.20/build/favicon.png" />
  <script src="//cdn.jsdelivr.net/npm/graphql-playground-react@1.7.20/build/static/js/middleware.js"></script>
</head>
<body>
  <div id="root"></div>
  <script>window.addEventListener('load', function () {
      GraphQLPlayground.init(document.getElementById('root'), %s)
    })</script>
</body>
</html>
`

type playgroundTab struct {
	Endpoint string `json:"endpoint"`
	Query    string `json:"query"`
}

type playgroundSettings struct {
	Endpoint string          `json:"endpoint"`
	Tabs     []playgroundTab `json:"tabs,omitempty"`
}

// GetPlaygroundHandle serves a GraphQL playground targeting endpointUrl, with an example query
// over each table
func GetPlaygroundHandle(endpointUrl string, tables []string) httprouter.Handle {
	settings := playgroundSettings{Endpoint: endpointUrl}
	for _, table := range tables {
		settings.Tabs = append(settings.Tabs, playgroundTab{
			Endpoint: endpointUrl,
			Query:    exampleQuery(table),
		})
	}

	encoded, err := json.Marshal(settings)
	if err != nil {
		panic(err)
	}
	page := fmt.Sprintf(playgroundPage, encoded)

	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "text/html; charset=UTF-8")
		_, _ = fmt.Fprint(w, page)
	}
}

func exampleQuery(table string) string {
	return fmt.Sprintf(`query {
  table(name: %q, draw: "1", start: 0, length: 10, columns: [{data: "*", searchable: false}]) {
    draw
    recordsTotal
    recordsFiltered
    data
  }
}
`, table)
}
