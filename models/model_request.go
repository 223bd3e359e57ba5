package models

// Request is the server-side processing request sent by the data grid.
type Request struct {
	Columns []Column    `mapstructure:"columns" json:"columns"`
	Order   []Order     `mapstructure:"order" json:"order,omitempty" validate:"dive"`
	Search  *Search     `mapstructure:"search" json:"search,omitempty"`
	Start   *int        `mapstructure:"start" json:"start,omitempty" validate:"omitempty,min=0"`
	Length  *int        `mapstructure:"length" json:"length,omitempty"` // -1 asks for every row
	Draw    interface{} `mapstructure:"draw" json:"draw"`
}

// Search carries a search term, either global or scoped to a column.
type Search struct {
	Value string `mapstructure:"value" json:"value"`
	Regex string `mapstructure:"regex" json:"regex,omitempty"`
}

// Order references a column by its position in Request.Columns.
type Order struct {
	Column int    `mapstructure:"column" json:"column" validate:"min=0"`
	Dir    string `mapstructure:"dir" json:"dir"`
}
