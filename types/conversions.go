package types

import (
	"encoding/base64"
	"fmt"
	"time"
	"unicode/utf8"
)

// ToJsonValues converts driver values of the rows in place to values that encode naturally in
// JSON responses
func ToJsonValues(rows []map[string]interface{}) []map[string]interface{} {
	for _, row := range rows {
		for columnName, value := range row {
			if value != nil {
				row[columnName] = ToJsonValue(value)
			}
		}
	}
	return rows
}

// ToJsonValue converts a single driver value, values with no special handling are returned as is
func ToJsonValue(value interface{}) interface{} {
	switch value := value.(type) {
	case []byte:
		return ByteArrayToString(value)
	case time.Time:
		return TimeAsString(value)
	case *time.Time:
		if value == nil {
			return nil
		}
		return TimeAsString(*value)
	case fmt.Stringer:
		return StringerToString(value)
	default:
		return value
	}
}

// ByteArrayToString returns text columns, some drivers scan them as raw bytes, as strings and
// binary content as base64
func ByteArrayToString(value []byte) string {
	if utf8.Valid(value) {
		return string(value)
	}
	return base64.StdEncoding.EncodeToString(value)
}

func TimeAsString(value time.Time) string {
	return value.Format(time.RFC3339Nano)
}

// StringerToString is used for arbitrary precision numbers such as *inf.Dec or *big.Int
func StringerToString(value fmt.Stringer) interface{} {
	if value == nil {
		return nil
	}
	return value.String()
}
