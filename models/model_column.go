package models

// Column is one displayed column as declared by the grid.
//
// Searchable and Orderable are kept as the literal strings the grid sends; only the exact value
// "true" enables a column.
type Column struct {
	Data       string `mapstructure:"data" json:"data"`
	Name       string `mapstructure:"name" json:"name,omitempty"`
	Searchable string `mapstructure:"searchable" json:"searchable"`
	Orderable  string `mapstructure:"orderable" json:"orderable,omitempty"`
	Search     Search `mapstructure:"search" json:"search"`
}

// IsSearchable reports whether the grid flagged the column as searchable.
func (c Column) IsSearchable() bool {
	return c.Searchable == "true"
}
