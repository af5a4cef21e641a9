package cgen

import (
	"github.com/canopener/canopener/pkg/ctype"
	"github.com/canopener/canopener/pkg/od"
)

// SizeExpr returns the sizeof() expression for variable.
// VISIBLE_STRING size depends on the value itself, e.g. sizeof("hello"),
// any other type uses its C type e.g. sizeof(uint32_t).
func SizeExpr(variable *od.Variable) string {
	if ctype.IsString(variable.DataType) {
		text := ""
		if variable.Value != nil {
			text = valueText(variable.Value)
		}
		return `sizeof("` + text + `")`
	}
	return "sizeof(" + ctype.CType(variable.DataType) + ")"
}

// valueText is the unquoted text of a value
func valueText(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	literal := FormatValue(value)
	if len(literal) >= 2 && literal[0] == '"' {
		return literal[1 : len(literal)-1]
	}
	return literal
}
