package cgen

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatValue renders an OD value as a C literal :
//   - nil => 0
//   - positive integers => hex e.g. 0x0A
//   - negative integers => decimal e.g. -5
//   - floats => double quoted shortest decimal e.g. "1.5", "1e+20"
//   - anything else => double quoted text
//
// Strings are not escaped.
func FormatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return "0"
	case bool:
		if v {
			return formatUnsigned(1)
		}
		return formatUnsigned(0)
	case int:
		return formatSigned(int64(v))
	case int8:
		return formatSigned(int64(v))
	case int16:
		return formatSigned(int64(v))
	case int32:
		return formatSigned(int64(v))
	case int64:
		return formatSigned(v)
	case uint:
		return formatUnsigned(uint64(v))
	case uint8:
		return formatUnsigned(uint64(v))
	case uint16:
		return formatUnsigned(uint64(v))
	case uint32:
		return formatUnsigned(uint64(v))
	case uint64:
		return formatUnsigned(v)
	case float32:
		return quote(formatFloat(float64(v), 32))
	case float64:
		return quote(formatFloat(v, 64))
	case string:
		return quote(v)
	case []byte:
		var sb strings.Builder
		for _, c := range v {
			fmt.Fprintf(&sb, "\\x%02X", c)
		}
		return quote(sb.String())
	default:
		return quote(fmt.Sprint(v))
	}
}

func formatSigned(v int64) string {
	if v < 0 {
		return strconv.FormatInt(v, 10)
	}
	return formatUnsigned(uint64(v))
}

func formatUnsigned(v uint64) string {
	return fmt.Sprintf("0x%02X", v)
}

// formatFloat gives the shortest text of v, in exponent form when
// the exponent is below -4 or at least 16, e.g. 1.5, 100.0, 1e+20, 1e-05
func formatFloat(v float64, bitSize int) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	text := strconv.FormatFloat(v, 'e', -1, bitSize)
	exp, err := strconv.Atoi(text[strings.IndexByte(text, 'e')+1:])
	if err == nil && (exp < -4 || exp >= 16) {
		return text
	}
	text = strconv.FormatFloat(v, 'f', -1, bitSize)
	if !strings.ContainsRune(text, '.') {
		text += ".0"
	}
	return text
}

func quote(s string) string {
	return `"` + s + `"`
}
