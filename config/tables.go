package config

import (
	"fmt"
	"regexp"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/mitchellh/mapstructure"

	e "github.com/datastax/sql-datatables/rest/errors"
)

var (
	tableValidator *validator.Validate
	trans          ut.Translator
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

func init() {
	tableValidator = validator.New()

	uni := ut.New(en.New(), en.New())
	trans, _ = uni.GetTranslator("en")

	_ = enTranslations.RegisterDefaultTranslations(tableValidator, trans)

	_ = tableValidator.RegisterValidation("tablename", func(fl validator.FieldLevel) bool {
		return tableNamePattern.MatchString(fl.Field().String())
	})

	_ = tableValidator.RegisterTranslation("tablename", trans, func(ut ut.Translator) error {
		return ut.Add("tablename", "{0} must only contain letters, digits, '_' and '-'", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("tablename", fe.Field())
		return t
	})
}

// TableConfig declares a table, or any from-expression, exposed to the grid
type TableConfig struct {
	Name   string   `mapstructure:"name" validate:"required,tablename"`
	From   string   `mapstructure:"from" validate:"required"`
	Select []string `mapstructure:"select"`
	// Where is an optional base predicate, values must be given as named parameters in Parameters
	Where      string                 `mapstructure:"where"`
	Parameters map[string]interface{} `mapstructure:"parameters"`
	GroupBy    []string               `mapstructure:"groupBy"`
	Columns    []ColumnConfig         `mapstructure:"columns" validate:"required,min=1,dive"`

	IndexColumn        string `mapstructure:"indexColumn"`
	CountDistinct      bool   `mapstructure:"countDistinct"`
	ColumnField        string `mapstructure:"columnField" validate:"omitempty,oneof=data name"`
	LegacyEqualsFilter bool   `mapstructure:"legacyEqualsFilter"`
}

// ColumnConfig declares an expression the grid may search and order by
type ColumnConfig struct {
	Expression string `mapstructure:"expression" validate:"required"`
	// Aliases are the grid field names resolving to Expression
	Aliases   []string `mapstructure:"aliases"`
	Transform string   `mapstructure:"transform"`
	Predicate string   `mapstructure:"predicate"`
}

// Validate checks the table declaration is complete
func (t TableConfig) Validate() error {
	if err := tableValidator.Struct(t); err != nil {
		return fmt.Errorf("invalid table '%s': %w", t.Name, e.TranslateValidatorError(err, trans))
	}
	return nil
}

// DecodeTables decodes and validates table declarations, usually read from the configuration file
func DecodeTables(raw interface{}) ([]TableConfig, error) {
	var tables []TableConfig
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &tables,
	})
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("unable to decode tables: %w", err)
	}

	names := make(map[string]bool, len(tables))
	for _, table := range tables {
		if err := table.Validate(); err != nil {
			return nil, err
		}
		if names[table.Name] {
			return nil, fmt.Errorf("table '%s' is declared more than once", table.Name)
		}
		names[table.Name] = true
	}

	return tables, nil
}
