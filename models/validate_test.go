package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestValidate(t *testing.T) {
	negative, zero := -1, 0

	assert.NoError(t, Request{Start: &zero, Length: &negative, Order: []Order{{Column: 0, Dir: "asc"}}}.Validate())
	assert.NoError(t, Request{}.Validate())
	assert.EqualError(t, Request{Start: &negative}.Validate(), "Start must be 0 or greater")
	assert.EqualError(t, Request{Order: []Order{{Column: 1}, {Column: -2}}}.Validate(), "Column must be 0 or greater")
}
