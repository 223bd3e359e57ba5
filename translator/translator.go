package translator

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/datastax/sql-datatables/log"
	m "github.com/datastax/sql-datatables/models"
	"github.com/datastax/sql-datatables/types"
)

const (
	searchParameter       = "search"
	columnSearchParameter = "search_%d"
	filterParameter       = "filter_%d"
	defaultIndexColumn    = "*"
)

var reservedParameter = regexp.MustCompile(`^(search|search_\d+|filter_\d+)$`)

// IsReservedParameter reports whether the translator binds name itself, overriding any value the
// base query set for it.
func IsReservedParameter(name string) bool {
	return reservedParameter.MatchString(name)
}

// Options holds the per table settings of a Translator
type Options struct {
	// ColumnAliases maps a column name or data value to the expression used in queries
	ColumnAliases map[string]string
	// ColumnTransforms rewrite search values of a resolved column before binding
	ColumnTransforms map[string]ValueTransformer
	// ColumnPredicates replace the default predicate of a resolved column
	ColumnPredicates map[string]PredicateBuilder
	// IndexColumn is counted by the row count queries, "*" when empty
	IndexColumn string
	// CountDistinct counts distinct values of IndexColumn
	CountDistinct bool
	// ColumnField selects the primary column attribute
	ColumnField ColumnField
	// LegacyEqualsFilter adds an equality predicate to every column filter, whatever its operator
	LegacyEqualsFilter bool
	Logger             log.Logger
}

// Translator serves as a translator for going from a data grid request to queries over a base query.
//
// A Translator is meant to serve a single request and must not be shared between goroutines.
type Translator struct {
	query   types.Query
	request m.Request
	options Options
	logger  log.Logger
}

// New creates a translator for request. The base query is never modified.
func New(query types.Query, request m.Request, options Options) *Translator {
	if options.IndexColumn == "" {
		options.IndexColumn = defaultIndexColumn
	}

	return &Translator{
		query:   query,
		request: request,
		options: options,
		logger:  log.OrNop(options.Logger),
	}
}

func (t *Translator) resolve(column m.Column) string {
	return ResolveColumn(column, t.options.ColumnAliases, t.options.ColumnField)
}

func (t *Translator) predicateBuilder(field string) PredicateBuilder {
	builder, ok := t.options.ColumnPredicates[field]
	if !ok || builder == nil {
		return nil
	}
	return builder
}

func (t *Translator) transformer(field string) ValueTransformer {
	transformer, ok := t.options.ColumnTransforms[field]
	if !ok || transformer == nil {
		return nil
	}
	return transformer
}

// FilteredQuery returns a copy of the base query with the global search and the column filters
// applied, without ordering nor pagination.
func (t *Translator) FilteredQuery() types.Query {
	query := t.query.Clone()
	t.applyGlobalSearch(query)
	t.applyColumnFilters(query)
	return query
}

func (t *Translator) applyGlobalSearch(query types.Query) {
	if t.request.Search == nil {
		return
	}

	value := strings.TrimSpace(t.request.Search.Value)
	if value == "" {
		return
	}

	expr := query.Expr()
	var predicates []types.Expression
	for i, column := range t.request.Columns {
		if !column.IsSearchable() {
			continue
		}

		field := t.resolve(column)
		if builder := t.predicateBuilder(field); builder != nil {
			predicates = append(predicates, builder.BuildPredicate(query, value))
			continue
		}

		param := searchParameter
		if transformer := t.transformer(field); transformer != nil {
			param = fmt.Sprintf(columnSearchParameter, i)
			query.SetParameter(param, "%"+transformer.TransformValue(value)+"%")
		}
		predicates = append(predicates, expr.Like(field, param))
	}

	if len(predicates) == 0 {
		return
	}

	query.AndWhere(expr.Or(predicates...))
	query.SetParameter(searchParameter, "%"+value+"%")
	t.logger.Debug("global search applied", "value", value, "predicates", len(predicates))
}

func (t *Translator) applyColumnFilters(query types.Query) {
	expr := query.Expr()
	for i, column := range t.request.Columns {
		if !column.IsSearchable() {
			continue
		}

		value := strings.TrimSpace(column.Search.Value)
		if value == "" {
			continue
		}

		field := t.resolve(column)

		var predicates []types.Expression
		if builder := t.predicateBuilder(field); builder != nil {
			predicates = append(predicates, builder.BuildPredicate(query, value))
		} else {
			op, operand := parseFilterOperator(value)
			if transformer := t.transformer(field); transformer != nil {
				operand = transformer.TransformValue(operand)
			}
			if op == opContains {
				operand = "%" + operand + "%"
			}

			param := fmt.Sprintf(filterParameter, i)
			predicates = append(predicates, op.expression(expr, field, param))
			if t.options.LegacyEqualsFilter {
				predicates = append(predicates, expr.Eq(field, param))
			}
			query.SetParameter(param, operand)
		}

		if len(predicates) > 0 {
			query.AndWhere(expr.And(predicates...))
			t.logger.Debug("column filter applied", "column", i, "field", field, "value", value)
		}
	}
}

// Data fetches the requested page of the filtered rows, in the requested order
func (t *Translator) Data(ctx context.Context) ([]map[string]interface{}, error) {
	query := t.FilteredQuery()

	for _, order := range t.request.Order {
		if order.Column < 0 || order.Column >= len(t.request.Columns) {
			return nil, fmt.Errorf("%w: %d", ErrColumnIndex, order.Column)
		}

		direction, err := sortDirection(order.Dir)
		if err != nil {
			return nil, err
		}

		query.AddOrderBy(t.resolve(t.request.Columns[order.Column]), direction)
	}

	if t.request.Start != nil {
		query.SetFirstResult(*t.request.Start)
	}

	if t.request.Length != nil && *t.request.Length > 0 {
		query.SetMaxResults(*t.request.Length)
	}

	return query.FetchAll(ctx)
}

func sortDirection(dir string) (string, error) {
	switch strings.ToLower(dir) {
	case "", "asc":
		return "ASC", nil
	case "desc":
		return "DESC", nil
	default:
		return "", fmt.Errorf("%w, got '%s'", ErrSortDirection, dir)
	}
}

// RecordsFiltered counts the rows matching the search and the column filters
func (t *Translator) RecordsFiltered(ctx context.Context) (int64, error) {
	return t.count(ctx, t.FilteredQuery())
}

// RecordsTotal counts the rows of the base query, before any filtering
func (t *Translator) RecordsTotal(ctx context.Context) (int64, error) {
	return t.count(ctx, t.query.Clone())
}

func (t *Translator) count(ctx context.Context, query types.Query) (int64, error) {
	query.ResetSelect().ResetGroupBy().ResetHaving().Select(t.countExpression())
	return query.FetchInt(ctx)
}

func (t *Translator) countExpression() string {
	if t.options.CountDistinct {
		return fmt.Sprintf("count(distinct(%s))", t.options.IndexColumn)
	}
	return fmt.Sprintf("count(%s)", t.options.IndexColumn)
}

// Response runs the data, filtered count and total count queries, one after the other, and
// assembles the envelope expected by the grid.
func (t *Translator) Response(ctx context.Context) (*m.Response, error) {
	data, err := t.Data(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch data: %w", err)
	}

	filtered, err := t.RecordsFiltered(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to count filtered records: %w", err)
	}

	total, err := t.RecordsTotal(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to count total records: %w", err)
	}

	return &m.Response{
		Data:            data,
		Draw:            t.request.Draw,
		RecordsFiltered: filtered,
		RecordsTotal:    total,
	}, nil
}
