package types

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// QueryMock is a testify mock of Query. Chaining methods record the call and return the mock itself.
type QueryMock struct {
	mock.Mock
}

func NewQueryMock() *QueryMock {
	return &QueryMock{}
}

func (o *QueryMock) Clone() Query {
	args := o.Called()
	return args.Get(0).(Query)
}

func (o *QueryMock) Expr() ExpressionBuilder {
	args := o.Called()
	builder, _ := args.Get(0).(ExpressionBuilder)
	return builder
}

func (o *QueryMock) SetParameter(name string, value interface{}) Query {
	o.Called(name, value)
	return o
}

func (o *QueryMock) CreateNamedParameter(value interface{}) string {
	return o.Called(value).String(0)
}

func (o *QueryMock) Parameters() map[string]interface{} {
	args := o.Called()
	return args.Get(0).(map[string]interface{})
}

func (o *QueryMock) AndWhere(expression Expression) Query {
	o.Called(expression)
	return o
}

func (o *QueryMock) AddOrderBy(field string, direction string) Query {
	o.Called(field, direction)
	return o
}

func (o *QueryMock) SetFirstResult(offset int) Query {
	o.Called(offset)
	return o
}

func (o *QueryMock) SetMaxResults(limit int) Query {
	o.Called(limit)
	return o
}

func (o *QueryMock) ResetSelect() Query {
	o.Called()
	return o
}

func (o *QueryMock) Select(columns ...string) Query {
	o.Called(columns)
	return o
}

func (o *QueryMock) ResetGroupBy() Query {
	o.Called()
	return o
}

func (o *QueryMock) ResetHaving() Query {
	o.Called()
	return o
}

func (o *QueryMock) FetchAll(ctx context.Context) ([]map[string]interface{}, error) {
	args := o.Called(ctx)
	rows, _ := args.Get(0).([]map[string]interface{})
	return rows, args.Error(1)
}

func (o *QueryMock) FetchInt(ctx context.Context) (int64, error) {
	args := o.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
