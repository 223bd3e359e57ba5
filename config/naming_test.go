package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnakeNamingToField(t *testing.T) {
	nc, err := NewNaming(NamingSnake)
	assert.NoError(t, err)
	assert.True(t, nc.Renames())
	assert.Equal(t, "a", nc.ToField("a"))
	assert.Equal(t, "firstName", nc.ToField("first_name"))
	assert.Equal(t, "addressStreet", nc.ToField("address_street"))
	assert.Equal(t, "email", nc.ToField("email"))

	// Expressions are not identifiers and keep their form
	assert.Equal(t, "u.first_name", nc.ToField("u.first_name"))
	assert.Equal(t, "lower(city)", nc.ToField("lower(city)"))
}

func TestDefaultNaming(t *testing.T) {
	nc, err := NewNaming("")
	assert.NoError(t, err)
	assert.False(t, nc.Renames())
	assert.Equal(t, "first_name", nc.ToField("first_name"))
	assert.Equal(t, nc, NewDefaultNaming())

	_, err = NewNaming("kebab")
	assert.Error(t, err)
}
