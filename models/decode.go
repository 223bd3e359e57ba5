package models

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/mitchellh/mapstructure"
)

// DecodeRequest decodes a request from its generic representation, as produced by a JSON decoder,
// form parsing or GraphQL arguments. Numbers given as strings are accepted.
func DecodeRequest(raw map[string]interface{}) (Request, error) {
	var request Request
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       boolToStringHook,
		WeaklyTypedInput: true,
		Result:           &request,
	})
	if err != nil {
		return request, err
	}

	if err := decoder.Decode(raw); err != nil {
		return request, fmt.Errorf("unable to decode request: %w", err)
	}

	return request, nil
}

// boolToStringHook keeps booleans readable as the "true"/"false" strings the grid sends in forms,
// weak decoding would turn them into "1"/"0"
func boolToStringHook(from reflect.Kind, to reflect.Kind, data interface{}) (interface{}, error) {
	if from == reflect.Bool && to == reflect.String {
		return strconv.FormatBool(data.(bool)), nil
	}
	return data, nil
}
