// Package ctype maps CiA 301 data type codes to C types.
//
// The mapping is total: any code, known or not, resolves to a [Type].
// Unknown or malformed codes resolve to [Unknown] whose C type is "void".
package ctype

import (
	"strconv"
	"strings"

	"github.com/canopener/canopener/pkg/od"
)

// SizePointer is the Size of types represented by a pointer in C
const SizePointer = -1

// Type binds a CiA 301 data type code to its C representation
type Type struct {
	// CiA 301 data type code
	Code uint8
	// CiA 301 name e.g. UNSIGNED32
	Name string
	// C type name e.g. uint32_t
	CName string
	// Storage size in bytes, SizePointer for strings and domains,
	// 0 when no fixed size applies (structural types, unknown)
	Size int
	// Native is false for C type names that are not defined by
	// the C standard library (int24_t, identity_t, ...)
	Native bool
}

// Unknown is returned for any code without a mapping
var Unknown = Type{Code: od.UNKNOWN, Name: "UNKNOWN", CName: "void", Native: true}

var registry = []Type{
	{od.BOOLEAN, "BOOLEAN", "bool", 1, true},
	{od.INTEGER8, "INTEGER8", "int8_t", 1, true},
	{od.INTEGER16, "INTEGER16", "int16_t", 2, true},
	{od.INTEGER32, "INTEGER32", "int32_t", 4, true},
	{od.UNSIGNED8, "UNSIGNED8", "uint8_t", 1, true},
	{od.UNSIGNED16, "UNSIGNED16", "uint16_t", 2, true},
	{od.UNSIGNED32, "UNSIGNED32", "uint32_t", 4, true},
	{od.REAL32, "REAL32", "float", 4, true},
	{od.VISIBLE_STRING, "VISIBLE_STRING", "char*", SizePointer, true},
	{od.OCTET_STRING, "OCTET_STRING", "uint8_t*", SizePointer, true},
	{od.UNICODE_STRING, "UNICODE_STRING", "wchar_t*", SizePointer, true},
	{od.TIME_OF_DAY, "TIME_OF_DAY", "time_t", 6, true},
	{od.TIME_DIFFERENCE, "TIME_DIFFERENCE", "time_t", 6, true},
	{od.DOMAIN, "DOMAIN", "void*", SizePointer, true},
	{od.INTEGER24, "INTEGER24", "int24_t", 3, false},
	{od.REAL64, "REAL64", "double", 8, true},
	{od.INTEGER40, "INTEGER40", "int40_t", 5, false},
	{od.INTEGER48, "INTEGER48", "int48_t", 6, false},
	{od.INTEGER56, "INTEGER56", "int56_t", 7, false},
	{od.INTEGER64, "INTEGER64", "int64_t", 8, true},
	{od.UNSIGNED24, "UNSIGNED24", "uint24_t", 3, false},
	{od.UNSIGNED40, "UNSIGNED40", "uint40_t", 5, false},
	{od.UNSIGNED48, "UNSIGNED48", "uint48_t", 6, false},
	{od.UNSIGNED56, "UNSIGNED56", "uint56_t", 7, false},
	{od.UNSIGNED64, "UNSIGNED64", "uint64_t", 8, true},
	{od.PDO_COMMUNICATION_PARAMETER, "PDO_COMMUNICATION_PARAMETER", "pdo_comm_param_t", 0, false},
	{od.PDO_MAPPING, "PDO_MAPPING", "pdo_mapping_t", 0, false},
	{od.SDO_PARAMETER, "SDO_PARAMETER", "sdo_param_t", 0, false},
	{od.IDENTITY, "IDENTITY", "identity_t", 0, false},
}

var byCode = func() map[uint8]Type {
	m := make(map[uint8]Type, len(registry))
	for _, t := range registry {
		m[t.Code] = t
	}
	return m
}()

// Lookup returns the [Type] for code.
// code can be a [Type], any integer type, or a string holding
// an integer e.g. "7" or "0x0007". Anything else, or an
// unknown code, returns [Unknown].
func Lookup(code any) Type {
	var value uint64
	switch c := code.(type) {
	case Type:
		value = uint64(c.Code)
	case uint8:
		value = uint64(c)
	case uint16:
		value = uint64(c)
	case uint32:
		value = uint64(c)
	case uint64:
		value = c
	case uint:
		value = uint64(c)
	case int:
		if c < 0 {
			return Unknown
		}
		value = uint64(c)
	case int64:
		if c < 0 {
			return Unknown
		}
		value = uint64(c)
	case string:
		parsed, err := strconv.ParseUint(strings.TrimSpace(c), 0, 8)
		if err != nil {
			return Unknown
		}
		value = parsed
	default:
		return Unknown
	}
	if value > 0xFF {
		return Unknown
	}
	t, ok := byCode[uint8(value)]
	if !ok {
		return Unknown
	}
	return t
}

// CType returns the C type name for code, "void" if unknown.
// See [Lookup] for accepted inputs.
func CType(code any) string {
	return Lookup(code).CName
}

// ByCName returns the first [Type] whose C type name is name
func ByCName(name string) (Type, bool) {
	for _, t := range registry {
		if t.CName == name {
			return t, true
		}
	}
	return Unknown, false
}

// All returns every known type, ordered by code
func All() []Type {
	all := make([]Type, len(registry))
	copy(all, registry)
	return all
}

// IsString returns true for the visible string type, whose size
// depends on its value
func IsString(code any) bool {
	return Lookup(code).Code == od.VISIBLE_STRING
}

func (t Type) String() string {
	return t.Name
}
