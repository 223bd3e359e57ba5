package translator

import (
	"strings"

	inf "gopkg.in/inf.v0"
)

// ValueTransformer rewrites a search value before it is bound to a column predicate
type ValueTransformer interface {
	TransformValue(value string) string
}

// ValueTransformerFunc adapts a function to ValueTransformer
type ValueTransformerFunc func(value string) string

func (f ValueTransformerFunc) TransformValue(value string) string {
	return f(value)
}

// Transforms contains the built-in transforms that can be referenced by name from the configuration
var Transforms = map[string]ValueTransformer{
	"lower":   ValueTransformerFunc(strings.ToLower),
	"upper":   ValueTransformerFunc(strings.ToUpper),
	"trim":    ValueTransformerFunc(strings.TrimSpace),
	"decimal": ValueTransformerFunc(canonicalDecimal),
}

// canonicalDecimal drops insignificant trailing zeros so "1.50" searches like "1.5".
// Values that are not decimals are returned unchanged.
func canonicalDecimal(value string) string {
	d, ok := new(inf.Dec).SetString(strings.TrimSpace(value))
	if !ok {
		return value
	}

	for d.Scale() > 0 {
		reduced := new(inf.Dec).Round(d, d.Scale()-1, inf.RoundExact)
		if reduced == nil {
			break
		}
		d = reduced
	}

	return d.String()
}
