package schema

import (
	"context"
	"errors"
	"fmt"

	"github.com/datastax/sql-datatables/config"
	"github.com/datastax/sql-datatables/db"
	"github.com/datastax/sql-datatables/log"
	m "github.com/datastax/sql-datatables/models"
	"github.com/datastax/sql-datatables/translator"
)

// ErrUnknownColumn is returned when a request references an expression that is not declared
// in the table columns
var ErrUnknownColumn = errors.New("unknown column")

// Table is a configured table, ready to serve grid requests
type Table struct {
	name    string
	base    *db.SelectQuery
	options translator.Options
	allowed map[string]bool
	naming  config.NamingConvention
	logger  log.Logger
}

func newTable(dbClient *db.Db, cfg config.TableConfig, naming config.NamingConvention, logger log.Logger) (*Table, error) {
	columnField, err := translator.ParseColumnField(cfg.ColumnField)
	if err != nil {
		return nil, err
	}

	options := translator.Options{
		ColumnAliases:      map[string]string{},
		ColumnTransforms:   map[string]translator.ValueTransformer{},
		ColumnPredicates:   map[string]translator.PredicateBuilder{},
		IndexColumn:        cfg.IndexColumn,
		CountDistinct:      cfg.CountDistinct,
		ColumnField:        columnField,
		LegacyEqualsFilter: cfg.LegacyEqualsFilter,
		Logger:             logger,
	}

	allowed := make(map[string]bool, len(cfg.Columns))
	for _, column := range cfg.Columns {
		expression := column.Expression
		allowed[expression] = true

		if field := naming.ToField(expression); field != expression {
			options.ColumnAliases[field] = expression
		}

		for _, alias := range column.Aliases {
			if alias == "" || alias == expression {
				continue
			}
			if previous, ok := options.ColumnAliases[alias]; ok && previous != expression {
				return nil, fmt.Errorf("alias '%s' is used for both '%s' and '%s'", alias, previous, expression)
			}
			options.ColumnAliases[alias] = expression
		}

		if column.Transform != "" {
			transformer, ok := translator.Transforms[column.Transform]
			if !ok {
				return nil, fmt.Errorf("unknown transform '%s' for column '%s'", column.Transform, expression)
			}
			options.ColumnTransforms[expression] = transformer
		}

		if column.Predicate != "" {
			factory, ok := translator.Predicates[column.Predicate]
			if !ok {
				return nil, fmt.Errorf("unknown predicate '%s' for column '%s'", column.Predicate, expression)
			}
			options.ColumnPredicates[expression] = factory(expression)
		}
	}

	base := dbClient.Select(cfg.Select...).From(cfg.From)
	if cfg.Where != "" {
		base.Where(cfg.Where)
	}
	if len(cfg.GroupBy) > 0 {
		base.GroupBy(cfg.GroupBy...)
	}
	for name, value := range cfg.Parameters {
		if translator.IsReservedParameter(name) || db.IsGeneratedParameter(name) {
			return nil, fmt.Errorf("parameter '%s' is reserved, choose another name", name)
		}
		base.SetParameter(name, value)
	}

	return &Table{
		name:    cfg.Name,
		base:    base,
		options: options,
		allowed: allowed,
		naming:  naming,
		logger:  logger,
	}, nil
}

// Name returns the name the table is exposed with
func (t *Table) Name() string {
	return t.name
}

// Validate checks that every column the request searches or orders by resolves to a declared
// expression
func (t *Table) Validate(request m.Request) error {
	used := make(map[int]bool, len(request.Columns))
	for i, column := range request.Columns {
		if column.IsSearchable() {
			used[i] = true
		}
	}
	for _, order := range request.Order {
		if order.Column >= 0 && order.Column < len(request.Columns) {
			used[order.Column] = true
		}
	}

	for i := range used {
		column := request.Columns[i]
		field := translator.ResolveColumn(column, t.options.ColumnAliases, t.options.ColumnField)
		if !t.allowed[field] {
			return fmt.Errorf("%w '%s' at position %d", ErrUnknownColumn, field, i)
		}
	}

	return nil
}

// Translator returns a translator of request over the table base query
func (t *Table) Translator(request m.Request) (*translator.Translator, error) {
	if err := t.Validate(request); err != nil {
		return nil, err
	}
	return translator.New(t.base, request, t.options), nil
}

// Response serves a grid request, row keys follow the configured naming convention
func (t *Table) Response(ctx context.Context, request m.Request) (*m.Response, error) {
	tr, err := t.Translator(request)
	if err != nil {
		return nil, err
	}

	response, err := tr.Response(ctx)
	if err != nil {
		return nil, err
	}

	if t.naming.Renames() {
		response.Data = t.renameRows(response.Data)
	}

	return response, nil
}

func (t *Table) renameRows(rows []map[string]interface{}) []map[string]interface{} {
	for i, row := range rows {
		renamed := make(map[string]interface{}, len(row))
		for key, value := range row {
			renamed[t.naming.ToField(key)] = value
		}
		rows[i] = renamed
	}
	return rows
}
