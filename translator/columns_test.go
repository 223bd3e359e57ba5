package translator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	m "github.com/datastax/sql-datatables/models"
)

func TestResolveColumn(t *testing.T) {
	aliases := map[string]string{
		"firstName":    "u.first_name",
		"fn":           "lower(u.first_name)",
		"u.first_name": "chained",
	}

	tests := []struct {
		name   string
		column m.Column
		field  ColumnField
		want   string
	}{
		{"No alias", m.Column{Data: "city"}, DataField, "city"},
		{"Alias by data", m.Column{Data: "firstName"}, DataField, "u.first_name"},
		{"Alias by name", m.Column{Data: "firstName", Name: "fn"}, DataField, "lower(u.first_name)"},
		{"Unknown name falls back to data", m.Column{Data: "firstName", Name: "unknown"}, DataField, "u.first_name"},
		{"Name as primary field", m.Column{Data: "0", Name: "city"}, NameField, "city"},
		{"Name as primary field with alias", m.Column{Data: "0", Name: "firstName"}, NameField, "u.first_name"},
		{"Empty name as primary field", m.Column{Data: "firstName"}, NameField, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveColumn(tt.column, aliases, tt.field)
			assert.Equal(t, tt.want, got)
			// Resolution never feeds its own output back
			assert.Equal(t, got, ResolveColumn(tt.column, aliases, tt.field))
		})
	}
}

func TestParseColumnField(t *testing.T) {
	field, err := ParseColumnField("")
	assert.NoError(t, err)
	assert.Equal(t, DataField, field)

	field, err = ParseColumnField("name")
	assert.NoError(t, err)
	assert.Equal(t, NameField, field)
	assert.Equal(t, "name", field.String())

	_, err = ParseColumnField("title")
	assert.Error(t, err)
}
