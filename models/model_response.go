package models

// Response is the envelope the data grid expects back.
type Response struct {
	Data            []map[string]interface{} `json:"data"`
	Draw            interface{}              `json:"draw"`
	RecordsFiltered int64                    `json:"recordsFiltered"`
	RecordsTotal    int64                    `json:"recordsTotal"`
}

// ErrorResponse is sent instead of Response when the request could not be served.
type ErrorResponse struct {
	Draw  interface{} `json:"draw"`
	Error string      `json:"error"`
}

// TablesResponse lists the tables exposed by the endpoint.
type TablesResponse struct {
	Tables []string `json:"tables"`
}
