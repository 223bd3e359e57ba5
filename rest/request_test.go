package rest

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/datastax/sql-datatables/models"
	e "github.com/datastax/sql-datatables/rest/errors"
)

func intToPointer(val int) *int {
	return &val
}

func gridValues() url.Values {
	values := url.Values{}
	values.Set("draw", "2")
	values.Set("columns[0][data]", "first_name")
	values.Set("columns[0][name]", "")
	values.Set("columns[0][searchable]", "true")
	values.Set("columns[0][orderable]", "true")
	values.Set("columns[0][search][value]", "")
	values.Set("columns[0][search][regex]", "false")
	values.Set("columns[1][data]", "id")
	values.Set("columns[1][searchable]", "false")
	values.Set("order[0][column]", "1")
	values.Set("order[0][dir]", "desc")
	values.Set("start", "10")
	values.Set("length", "5")
	values.Set("search[value]", "foo")
	values.Set("search[regex]", "false")
	return values
}

func TestParseBracketed(t *testing.T) {
	values := url.Values{}
	values.Set("columns[1][data]", "b")
	values.Set("columns[0][data]", "a")
	values.Set("columns[0][search][value]", "x")
	values.Set("columns[2][data]", "c")
	values.Set("search[value]", "foo")
	values.Set("extra[key][1]", "v")
	values.Set("extra[key][name]", "n")
	values.Set("draw", "1")
	values.Set("weird[", "kept")

	parsed, err := parseBracketed(values)
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{
		"draw": "1",
		"columns": []interface{}{
			map[string]interface{}{"data": "a", "search": map[string]interface{}{"value": "x"}},
			map[string]interface{}{"data": "b"},
			map[string]interface{}{"data": "c"},
		},
		"search": map[string]interface{}{"value": "foo"},
		"extra":  map[string]interface{}{"key": map[string]interface{}{"1": "v", "name": "n"}},
		"weird[": "kept",
	}, parsed)
}

func TestParseBracketedSparseIndexes(t *testing.T) {
	values := url.Values{}
	values.Set("columns[0][data]", "id")
	values.Set("columns[2][data]", "city")
	values.Set("order[0][column]", "2")

	_, err := parseBracketed(values)
	require.Error(t, err)
	assert.Equal(t, "'columns' has no entry at index 1", err.Error())

	values = url.Values{}
	values.Set("columns[0][search][1]", "x")

	_, err = parseBracketed(values)
	require.Error(t, err)
	assert.Equal(t, "'columns[0][search]' has no entry at index 0", err.Error())
}

func TestDecodeRequestQueryString(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/tables/users?"+gridValues().Encode(), nil)

	request, err := DecodeRequest(r)
	require.NoError(t, err)
	assert.Equal(t, m.Request{
		Columns: []m.Column{
			{Data: "first_name", Searchable: "true", Orderable: "true", Search: m.Search{Value: "", Regex: "false"}},
			{Data: "id", Searchable: "false"},
		},
		Order:  []m.Order{{Column: 1, Dir: "desc"}},
		Search: &m.Search{Value: "foo", Regex: "false"},
		Start:  intToPointer(10),
		Length: intToPointer(5),
		Draw:   "2",
	}, request)
}

func TestDecodeRequestForm(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/tables/users", strings.NewReader(gridValues().Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	request, err := DecodeRequest(r)
	require.NoError(t, err)
	assert.Equal(t, "2", request.Draw)
	assert.Len(t, request.Columns, 2)
	assert.True(t, request.Columns[0].IsSearchable())
	assert.Equal(t, "foo", request.Search.Value)
}

func TestDecodeRequestJSON(t *testing.T) {
	body := `{
		"draw": 3,
		"columns": [
			{"data": "first_name", "name": "", "searchable": true, "orderable": true, "search": {"value": "[=]Foo", "regex": false}},
			{"data": "id", "searchable": false}
		],
		"order": [{"column": 0, "dir": "asc"}],
		"start": 0,
		"length": -1,
		"search": {"value": "", "regex": false}
	}`
	r := httptest.NewRequest(http.MethodPost, "/tables/users", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json; charset=utf-8")

	request, err := DecodeRequest(r)
	require.NoError(t, err)
	assert.Equal(t, m.Request{
		Columns: []m.Column{
			{Data: "first_name", Searchable: "true", Orderable: "true", Search: m.Search{Value: "[=]Foo", Regex: "false"}},
			{Data: "id", Searchable: "false"},
		},
		Order:  []m.Order{{Column: 0, Dir: "asc"}},
		Search: &m.Search{Value: "", Regex: "false"},
		Start:  intToPointer(0),
		Length: intToPointer(-1),
		Draw:   float64(3),
	}, request)
}

func TestDecodeRequestErrors(t *testing.T) {
	jsonRequest := func(body string) *http.Request {
		r := httptest.NewRequest(http.MethodPost, "/tables/users", strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
		return r
	}

	tests := []struct {
		name    string
		request *http.Request
		wantErr string
	}{
		{
			name:    "Invalid JSON",
			request: jsonRequest(`{"draw": `),
			wantErr: "request body is invalid",
		}, {
			name:    "Wrong shape",
			request: jsonRequest(`{"columns": "first_name"}`),
			wantErr: "unable to decode request",
		}, {
			name:    "Negative start",
			request: httptest.NewRequest(http.MethodGet, "/tables/users?start=-3", nil),
			wantErr: "Start must be 0 or greater",
		}, {
			name:    "Negative order column",
			request: httptest.NewRequest(http.MethodGet, "/tables/users?"+url.Values{"order[0][column]": {"-1"}}.Encode(), nil),
			wantErr: "Column must be 0 or greater",
		}, {
			name:    "Column indexes with a gap",
			request: httptest.NewRequest(http.MethodGet, "/tables/users?columns[0][data]=id&columns[2][data]=city&order[0][column]=2", nil),
			wantErr: "request parameters are invalid: 'columns' has no entry at index 1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeRequest(tt.request)
			require.Error(t, err)
			assert.IsType(t, &e.BadRequestError{}, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
