package config

import (
	"fmt"
	"regexp"

	"github.com/iancoleman/strcase"
)

// NamingConvention maps database column names to the field names used by the grid
type NamingConvention interface {
	// ToField returns the grid field for a database column
	ToField(column string) string
	// Renames reports whether ToField can return something else than its input
	Renames() bool
}

// Naming convention names accepted by NewNaming
const (
	NamingNone  = "none"
	NamingSnake = "snake"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

type identityNaming struct{}

func (identityNaming) ToField(column string) string {
	return column
}

func (identityNaming) Renames() bool {
	return false
}

type snakeNaming struct{}

// ToField converts plain snake_case identifiers to lowerCamelCase, other expressions are left as is
func (snakeNaming) ToField(column string) string {
	if !identifierPattern.MatchString(column) {
		return column
	}
	return strcase.ToLowerCamel(column)
}

func (snakeNaming) Renames() bool {
	return true
}

// NewNaming returns the naming convention registered under name
func NewNaming(name string) (NamingConvention, error) {
	switch name {
	case "", NamingNone:
		return identityNaming{}, nil
	case NamingSnake:
		return snakeNaming{}, nil
	default:
		return nil, fmt.Errorf("invalid naming convention '%s', expected '%s' or '%s'", name, NamingNone, NamingSnake)
	}
}

// NewDefaultNaming returns the naming convention that keeps column names unchanged
func NewDefaultNaming() NamingConvention {
	return identityNaming{}
}
