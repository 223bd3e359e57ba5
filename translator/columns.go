package translator

import (
	"fmt"

	m "github.com/datastax/sql-datatables/models"
)

// ColumnField selects which column attribute is the primary identifier of a column.
type ColumnField int

const (
	// DataField uses the "data" attribute (default)
	DataField ColumnField = iota
	// NameField uses the "name" attribute
	NameField
)

// ParseColumnField maps the configuration values "data" and "name" to a ColumnField.
// An empty value selects DataField.
func ParseColumnField(value string) (ColumnField, error) {
	switch value {
	case "", "data":
		return DataField, nil
	case "name":
		return NameField, nil
	default:
		return DataField, fmt.Errorf("invalid column field '%s', expected 'data' or 'name'", value)
	}
}

func (f ColumnField) String() string {
	if f == NameField {
		return "name"
	}
	return "data"
}

// ResolveColumn returns the expression used to filter and order by column. An alias keyed by the
// column name wins over one keyed by the primary field; without any alias the primary field is
// used as is.
func ResolveColumn(column m.Column, aliases map[string]string, field ColumnField) string {
	primary := column.Data
	if field == NameField {
		primary = column.Name
	}

	if column.Name != "" {
		if alias, ok := aliases[column.Name]; ok {
			return alias
		}
	}

	if alias, ok := aliases[primary]; ok {
		return alias
	}

	return primary
}
