package rest

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	m "github.com/datastax/sql-datatables/models"
	e "github.com/datastax/sql-datatables/rest/errors"
)

// DecodeRequest reads a grid request from the query string, a form body or a JSON body
func DecodeRequest(r *http.Request) (m.Request, error) {
	var raw map[string]interface{}

	if isJSON(r) {
		if r.Body == nil {
			return m.Request{}, e.NewBadRequestError("no request body")
		}
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			return m.Request{}, e.NewBadRequestError("request body is invalid: " + err.Error())
		}
	} else {
		if err := r.ParseForm(); err != nil {
			return m.Request{}, e.NewBadRequestError("request parameters are invalid: " + err.Error())
		}
		var err error
		if raw, err = parseBracketed(r.Form); err != nil {
			return m.Request{}, e.NewBadRequestError("request parameters are invalid: " + err.Error())
		}
	}

	request, err := m.DecodeRequest(raw)
	if err != nil {
		return m.Request{}, e.NewBadRequestError(err.Error())
	}

	if err := request.Validate(); err != nil {
		return m.Request{}, err
	}

	return request, nil
}

func isJSON(r *http.Request) bool {
	if r.Method != http.MethodPost {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/json"
}

// parseBracketed turns keys such as "columns[0][search][value]" into nested maps. Maps whose keys
// are all indexes become slices; indexes must run from 0 without gaps.
func parseBracketed(values url.Values) (map[string]interface{}, error) {
	root := map[string]interface{}{}

	for key, value := range values {
		if len(value) == 0 {
			continue
		}

		path := splitKey(key)
		node := root
		for i, segment := range path {
			if i == len(path)-1 {
				if _, isMap := node[segment].(map[string]interface{}); !isMap {
					node[segment] = value[0]
				}
				break
			}

			child, ok := node[segment].(map[string]interface{})
			if !ok {
				child = map[string]interface{}{}
				node[segment] = child
			}
			node = child
		}
	}

	node, err := toSlices("", root)
	if err != nil {
		return nil, err
	}
	return node.(map[string]interface{}), nil
}

func splitKey(key string) []string {
	open := strings.IndexByte(key, '[')
	if open <= 0 || !strings.HasSuffix(key, "]") {
		return []string{key}
	}

	return append([]string{key[:open]}, strings.Split(key[open+1:len(key)-1], "][")...)
}

func toSlices(path string, node interface{}) (interface{}, error) {
	children, ok := node.(map[string]interface{})
	if !ok {
		return node, nil
	}

	indexed := make(map[int]interface{}, len(children))
	for key, child := range children {
		childPath := key
		if path != "" {
			childPath = path + "[" + key + "]"
		}

		converted, err := toSlices(childPath, child)
		if err != nil {
			return nil, err
		}
		children[key] = converted

		if index, err := strconv.Atoi(key); err == nil && index >= 0 {
			indexed[index] = converted
		}
	}

	if len(indexed) == 0 || len(indexed) != len(children) {
		return children, nil
	}

	list := make([]interface{}, len(indexed))
	for index, child := range indexed {
		if index >= len(list) {
			return nil, fmt.Errorf("'%s' has no entry at index %d", path, missingIndex(indexed))
		}
		list[index] = child
	}
	return list, nil
}

func missingIndex(indexed map[int]interface{}) int {
	for i := 0; ; i++ {
		if _, ok := indexed[i]; !ok {
			return i
		}
	}
}
