package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/datastax/sql-datatables/log"
	m "github.com/datastax/sql-datatables/models"
	e "github.com/datastax/sql-datatables/rest/errors"
	"github.com/datastax/sql-datatables/schema"
	"github.com/datastax/sql-datatables/translator"
)

// RespondJSONObjectWithCode writes obj as the JSON body of the response
func RespondJSONObjectWithCode(w http.ResponseWriter, code int, obj interface{}) {
	setCommonHeaders(w)
	jsonBytes, err := json.Marshal(obj)
	if err != nil {
		code = http.StatusInternalServerError
		jsonBytes, _ = json.Marshal(m.ErrorResponse{Error: "unable to marshal response"})
	}

	w.WriteHeader(code)
	_, _ = w.Write(jsonBytes)
}

// RespondWithError writes the error envelope the grid understands, echoing draw
func RespondWithError(w http.ResponseWriter, draw interface{}, err error, code int) {
	RespondJSONObjectWithCode(w, code, m.ErrorResponse{
		Draw:  draw,
		Error: err.Error(),
	})
}

func setCommonHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
}

// errorStatus maps a failure to the status code and the message exposed to the client
func errorStatus(err error, logger log.Logger) (int, error) {
	var badRequest *e.BadRequestError
	var notFound *e.NotFoundError

	switch {
	case errors.As(err, &badRequest):
		return http.StatusBadRequest, err
	case errors.As(err, &notFound):
		return http.StatusNotFound, err
	case errors.Is(err, schema.ErrUnknownColumn),
		errors.Is(err, translator.ErrColumnIndex),
		errors.Is(err, translator.ErrSortDirection):
		return http.StatusBadRequest, err
	default:
		logger.Error("unable to serve request", "error", err)
		return http.StatusInternalServerError, e.NewInternalError("unable to serve request")
	}
}
